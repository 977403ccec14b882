package poker

import "fmt"

// StartingHand is one of the 169 hole-card classes: a pocket pair, or two
// distinct ranks either suited or offsuit.
type StartingHand struct {
	High   Rank
	Low    Rank
	Suited bool
}

// Combos per class out of the 1326 two-card holdings.
const (
	PairCombos    = 6
	SuitedCombos  = 4
	OffsuitCombos = 12
	TotalHoldings = 1326
)

// StartingHandOf returns the class of two hole cards.
func StartingHandOf(a, b Card) StartingHand {
	high, low := a.Rank, b.Rank
	if low > high {
		high, low = low, high
	}
	return StartingHand{High: high, Low: low, Suited: high != low && a.Suit == b.Suit}
}

// IsPair reports whether the class is a pocket pair.
func (s StartingHand) IsPair() bool {
	return s.High == s.Low
}

// Combos returns how many of the 1326 holdings belong to the class.
func (s StartingHand) Combos() int {
	switch {
	case s.IsPair():
		return PairCombos
	case s.Suited:
		return SuitedCombos
	default:
		return OffsuitCombos
	}
}

// String returns the class label, e.g. "AA", "AKs" or "T9o".
func (s StartingHand) String() string {
	switch {
	case s.IsPair():
		return s.High.String() + s.Low.String()
	case s.Suited:
		return s.High.String() + s.Low.String() + "s"
	default:
		return s.High.String() + s.Low.String() + "o"
	}
}

// Holdings lists every two-card holding in the class in canonical order.
func (s StartingHand) Holdings() [][2]Card {
	var out [][2]Card
	for s1 := Clubs; s1 <= Spades; s1++ {
		for s2 := Clubs; s2 <= Spades; s2++ {
			switch {
			case s.IsPair() && s2 <= s1:
				continue
			case !s.IsPair() && s.Suited && s1 != s2:
				continue
			case !s.IsPair() && !s.Suited && s1 == s2:
				continue
			}
			out = append(out, [2]Card{{Rank: s.High, Suit: s1}, {Rank: s.Low, Suit: s2}})
		}
	}
	return out
}

// ParseStartingHand parses labels such as "AA", "AKs" or "72o".
func ParseStartingHand(label string) (StartingHand, error) {
	if len(label) < 2 || len(label) > 3 {
		return StartingHand{}, fmt.Errorf("starting hand %q: %w", label, ErrInvalidCard)
	}
	r1, err := ParseRank(label[:1])
	if err != nil {
		return StartingHand{}, err
	}
	r2, err := ParseRank(label[1:2])
	if err != nil {
		return StartingHand{}, err
	}
	if r2 > r1 {
		r1, r2 = r2, r1
	}
	sh := StartingHand{High: r1, Low: r2}
	if len(label) == 2 {
		if r1 != r2 {
			return StartingHand{}, fmt.Errorf("starting hand %q needs s or o: %w", label, ErrInvalidCard)
		}
		return sh, nil
	}
	if r1 == r2 {
		return StartingHand{}, fmt.Errorf("pocket pair %q cannot be suited or offsuit: %w", label, ErrInvalidCard)
	}
	switch label[2] {
	case 's':
		sh.Suited = true
	case 'o':
	default:
		return StartingHand{}, fmt.Errorf("starting hand %q: invalid modifier %q: %w", label, label[2], ErrInvalidCard)
	}
	return sh, nil
}

// StartingHands returns all 169 classes, strongest ranks first.
func StartingHands() []StartingHand {
	out := make([]StartingHand, 0, 169)
	for high := Ace; ; high-- {
		for low := high; ; low-- {
			if low == high {
				out = append(out, StartingHand{High: high, Low: low})
			} else {
				out = append(out,
					StartingHand{High: high, Low: low, Suited: true},
					StartingHand{High: high, Low: low})
			}
			if low == Two {
				break
			}
		}
		if high == Two {
			break
		}
	}
	return out
}
