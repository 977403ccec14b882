// Package poker implements the card model and hand classification used by the
// equity simulator: a Cactus-Kev style card encoding, a memoising 5-card
// classifier and a brute-force best-of-seven selector.
package poker

import (
	"fmt"
	"math/bits"
	"strings"
	"unicode/utf8"
)

// Rank is a card rank, 0 for a deuce up to 12 for an ace.
type Rank uint8

// Suit is one of the four card suits.
type Suit uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const (
	NumRanks = 13
	NumSuits = 4
	NumCards = NumRanks * NumSuits
)

const rankChars = "23456789TJQKA"
const suitChars = "cdhs"

// String returns the single character for the rank ("T" for ten).
func (r Rank) String() string {
	if r > Ace {
		return "?"
	}
	return string(rankChars[r])
}

// Valid reports whether r is one of the thirteen ranks.
func (r Rank) Valid() bool {
	return r <= Ace
}

// String returns the lower-case suit letter.
func (s Suit) String() string {
	if s > Spades {
		return "?"
	}
	return string(suitChars[s])
}

// Symbol returns the unicode suit symbol.
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s <= Spades
}

// Card is an immutable playing card. Cards compare equal by rank and suit.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard returns the card for rank and suit.
func NewCard(rank Rank, suit Suit) (Card, error) {
	if !rank.Valid() || !suit.Valid() {
		return Card{}, fmt.Errorf("rank %d suit %d: %w", rank, suit, ErrInvalidCard)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// Valid reports whether c is one of the 52 cards.
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit.Valid()
}

// String returns the short notation, e.g. "As" or "Td".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Pretty returns the card with a unicode suit, e.g. "A♠".
func (c Card) Pretty() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// index returns the card's position in the canonical 52-card order.
func (c Card) index() int {
	return int(c.Suit)*NumRanks + int(c.Rank)
}

// AllCards returns the 52-card universe, clubs first and deuce to ace within a suit.
func AllCards() []Card {
	cards := make([]Card, 0, NumCards)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}

// ParseRank parses a rank symbol. "10" is accepted as well as "T".
func ParseRank(s string) (Rank, error) {
	if s == "10" {
		return Ten, nil
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("rank %q: %w", s, ErrInvalidCard)
	}
	idx := strings.IndexByte(rankChars, upper(s[0]))
	if idx < 0 {
		return 0, fmt.Errorf("rank %q: %w", s, ErrInvalidCard)
	}
	return Rank(idx), nil
}

// ParseSuit parses a suit letter (any case) or unicode suit symbol.
func ParseSuit(s string) (Suit, error) {
	switch s {
	case "c", "C", "♣", "♧":
		return Clubs, nil
	case "d", "D", "♦", "♢":
		return Diamonds, nil
	case "h", "H", "♥", "♡":
		return Hearts, nil
	case "s", "S", "♠", "♤":
		return Spades, nil
	default:
		return 0, fmt.Errorf("suit %q: %w", s, ErrInvalidCard)
	}
}

// ParseCard parses a single card such as "As", "10h", "Td" or "A♠".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("card %q: %w", s, ErrInvalidCard)
	}
	rankLen := 1
	if strings.HasPrefix(s, "10") {
		rankLen = 2
	}
	rank, err := ParseRank(s[:rankLen])
	if err != nil {
		return Card{}, err
	}
	suit, err := ParseSuit(s[rankLen:])
	if err != nil {
		return Card{}, err
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a list of cards. Cards may be concatenated ("AsKd") or
// separated by spaces or commas ("As Kd", "As,Kd").
func ParseCards(s string) ([]Card, error) {
	var cards []Card
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	for _, field := range fields {
		for len(field) > 0 {
			n := cardTokenLen(field)
			card, err := ParseCard(field[:n])
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
			field = field[n:]
		}
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// cardTokenLen returns the byte length of the first card in s: a one or two
// character rank followed by a suit letter or a multi-byte suit symbol.
func cardTokenLen(s string) int {
	rankLen := 1
	if strings.HasPrefix(s, "10") {
		rankLen = 2
	}
	if len(s) <= rankLen {
		return len(s)
	}
	_, n := utf8.DecodeRuneInString(s[rankLen:])
	return rankLen + n
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// CardSet is a bitset over the 52 cards.
type CardSet uint64

// NewCardSet returns the set holding cards.
func NewCardSet(cards ...Card) CardSet {
	var cs CardSet
	for _, c := range cards {
		cs.Add(c)
	}
	return cs
}

// Add adds a card to the set
func (cs *CardSet) Add(c Card) {
	*cs |= 1 << c.index()
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(c Card) bool {
	return cs&(1<<c.index()) != 0
}

// Len returns the number of cards in the set.
func (cs CardSet) Len() int {
	return bits.OnesCount64(uint64(cs))
}

// Intersects reports whether the two sets share a card.
func (cs CardSet) Intersects(other CardSet) bool {
	return cs&other != 0
}

// CheckDistinct fails with ErrDuplicateCard if any card appears twice across
// the given groups, and with ErrInvalidCard if any card is malformed.
func CheckDistinct(groups ...[]Card) (CardSet, error) {
	var seen CardSet
	for _, group := range groups {
		for _, c := range group {
			if !c.Valid() {
				return 0, fmt.Errorf("card %v: %w", c, ErrInvalidCard)
			}
			if seen.Contains(c) {
				return 0, fmt.Errorf("card %s: %w", c, ErrDuplicateCard)
			}
			seen.Add(c)
		}
	}
	return seen, nil
}
