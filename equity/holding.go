package equity

import (
	"fmt"
	"strings"

	"github.com/lox/pokerequity/poker"
)

// Holding is a player's two hole cards.
type Holding [2]poker.Card

// ParseHolding parses exactly two cards, e.g. "AsKd".
func ParseHolding(s string) (Holding, error) {
	cards, err := poker.ParseCards(s)
	if err != nil {
		return Holding{}, err
	}
	return HoldingOf(cards)
}

// MustParseHolding parses a holding and panics on error (for tests)
func MustParseHolding(s string) Holding {
	h, err := ParseHolding(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse holding '%s': %v", s, err))
	}
	return h
}

// HoldingOf builds a holding from exactly two distinct cards.
func HoldingOf(cards []poker.Card) (Holding, error) {
	if len(cards) != 2 {
		return Holding{}, fmt.Errorf("holding needs 2 cards, got %d: %w", len(cards), poker.ErrInvalidHandSize)
	}
	if _, err := poker.CheckDistinct(cards); err != nil {
		return Holding{}, err
	}
	return Holding{cards[0], cards[1]}, nil
}

// Cards returns the holding as a slice.
func (h Holding) Cards() []poker.Card {
	return []poker.Card{h[0], h[1]}
}

// Set returns the holding as a card set.
func (h Holding) Set() poker.CardSet {
	return poker.NewCardSet(h[0], h[1])
}

func (h Holding) String() string {
	return h[0].String() + h[1].String()
}

// Range is a list of candidate holdings, sampled uniformly.
type Range []Holding

// ParseRange builds a range from standard notation. Parts are comma separated
// and may be classes ("AA", "AKs", "AKo", "AK"), plus ranges ("TT+", "ATs+",
// "KJo+"), dash ranges ("22-66", "A5s-A2s") or explicit holdings ("AsKd").
// Holdings named more than once are kept once.
func ParseRange(notation string) (Range, error) {
	b := newRangeBuilder()
	for _, part := range strings.Split(notation, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if err := b.addPart(part); err != nil {
			return nil, fmt.Errorf("invalid range part %q: %w", part, err)
		}
	}
	if len(b.hands) == 0 {
		return nil, fmt.Errorf("range %q: %w", notation, ErrEmptyRange)
	}
	return b.hands, nil
}

// MustParseRange parses a range and panics on error (for tests)
func MustParseRange(notation string) Range {
	r, err := ParseRange(notation)
	if err != nil {
		panic(fmt.Sprintf("failed to parse range '%s': %v", notation, err))
	}
	return r
}

type rangeBuilder struct {
	hands Range
	seen  map[poker.CardSet]bool
}

func newRangeBuilder() *rangeBuilder {
	return &rangeBuilder{seen: make(map[poker.CardSet]bool)}
}

func (b *rangeBuilder) add(h Holding) {
	key := h.Set()
	if b.seen[key] {
		return
	}
	b.seen[key] = true
	b.hands = append(b.hands, h)
}

func (b *rangeBuilder) addClass(sh poker.StartingHand) {
	for _, cards := range sh.Holdings() {
		b.add(Holding(cards))
	}
}

func (b *rangeBuilder) addPart(part string) error {
	switch {
	case strings.HasSuffix(part, "+"):
		return b.addPlusRange(strings.TrimSuffix(part, "+"))
	case strings.Contains(part, "-"):
		return b.addDashRange(part)
	case len(part) == 4 && isSuitChar(part[1]) && isSuitChar(part[3]):
		h, err := ParseHolding(part)
		if err != nil {
			return err
		}
		b.add(h)
		return nil
	default:
		return b.addClasses(part)
	}
}

func isSuitChar(c byte) bool {
	return strings.IndexByte("cdhsCDHS", c) >= 0
}

// addClasses handles "AA", "AKs", "AKo" and the unmodified "AK" (suited and offsuit).
func (b *rangeBuilder) addClasses(label string) error {
	classes, err := classesOf(label)
	if err != nil {
		return err
	}
	for _, sh := range classes {
		b.addClass(sh)
	}
	return nil
}

func classesOf(label string) ([]poker.StartingHand, error) {
	if len(label) == 2 && label[0] != label[1] {
		suited, err := poker.ParseStartingHand(label + "s")
		if err != nil {
			return nil, err
		}
		offsuit := suited
		offsuit.Suited = false
		return []poker.StartingHand{suited, offsuit}, nil
	}
	sh, err := poker.ParseStartingHand(label)
	if err != nil {
		return nil, err
	}
	return []poker.StartingHand{sh}, nil
}

// addPlusRange handles notations like "TT+" (all pairs TT and higher) or
// "KTs+" (the kicker climbs to one below the top card).
func (b *rangeBuilder) addPlusRange(base string) error {
	classes, err := classesOf(base)
	if err != nil {
		return err
	}
	for _, sh := range classes {
		if sh.IsPair() {
			for rank := sh.High; rank <= poker.Ace; rank++ {
				b.addClass(poker.StartingHand{High: rank, Low: rank})
			}
			continue
		}
		for low := sh.Low; low < sh.High; low++ {
			b.addClass(poker.StartingHand{High: sh.High, Low: low, Suited: sh.Suited})
		}
	}
	return nil
}

// addDashRange handles notations like "22-66" or "A5s-A2s"
func (b *rangeBuilder) addDashRange(notation string) error {
	parts := strings.Split(notation, "-")
	if len(parts) != 2 {
		return fmt.Errorf("invalid dash range format: %w", poker.ErrInvalidCard)
	}
	start, err := classesOf(strings.TrimSpace(parts[0]))
	if err != nil {
		return err
	}
	end, err := classesOf(strings.TrimSpace(parts[1]))
	if err != nil {
		return err
	}
	if len(start) != len(end) {
		return fmt.Errorf("mismatched dash range %q: %w", notation, poker.ErrInvalidCard)
	}

	for i := range start {
		s, e := start[i], end[i]
		switch {
		case s.IsPair() && e.IsPair():
			lo, hi := min(s.High, e.High), max(s.High, e.High)
			for rank := lo; rank <= hi; rank++ {
				b.addClass(poker.StartingHand{High: rank, Low: rank})
			}
		case !s.IsPair() && !e.IsPair() && s.High == e.High && s.Suited == e.Suited:
			lo, hi := min(s.Low, e.Low), max(s.Low, e.Low)
			for low := lo; low <= hi; low++ {
				b.addClass(poker.StartingHand{High: s.High, Low: low, Suited: s.Suited})
			}
		default:
			return fmt.Errorf("unsupported range format %q: %w", notation, poker.ErrInvalidCard)
		}
	}
	return nil
}

// RangeOf builds a range from explicit holdings, dropping repeats.
func RangeOf(holdings ...Holding) Range {
	b := newRangeBuilder()
	for _, h := range holdings {
		b.add(h)
	}
	return b.hands
}

// Without returns the holdings that share no card with dead.
func (r Range) Without(dead poker.CardSet) Range {
	out := make(Range, 0, len(r))
	for _, h := range r {
		if !h.Set().Intersects(dead) {
			out = append(out, h)
		}
	}
	return out
}
