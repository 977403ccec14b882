package poker

import (
	"fmt"
	rand "math/rand/v2"
)

// Deck is the 52-card universe minus any excluded cards, dealt from the top.
type Deck struct {
	cards [NumCards]Card
	size  int
	next  int
	rng   *rand.Rand
}

// NewDeck creates an unshuffled deck in canonical order without the excluded
// cards. The rng drives Shuffle.
func NewDeck(rng *rand.Rand, exclude CardSet) *Deck {
	d := &Deck{rng: rng}
	d.Reset(exclude)
	return d
}

// Reset rebuilds the deck in canonical order without the excluded cards.
func (d *Deck) Reset(exclude CardSet) {
	d.size = 0
	d.next = 0
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			card := Card{Rank: rank, Suit: suit}
			if !exclude.Contains(card) {
				d.cards[d.size] = card
				d.size++
			}
		}
	}
}

// Shuffle shuffles the undealt cards using Fisher-Yates
func (d *Deck) Shuffle() {
	cards := d.cards[d.next:d.size]
	for i := len(cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Deal returns the next n cards. The returned slice aliases the deck and is
// only valid until the next Reset.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > d.size {
		return nil, fmt.Errorf("deal %d of %d remaining: %w", n, d.Remaining(), ErrDeckExhausted)
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return d.size - d.next
}
