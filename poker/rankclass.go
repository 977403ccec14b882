package poker

// RankClass is one of the nine hand categories, declared weakest first so the
// numeric order is the strength order. Kickers are not modelled: two hands of
// the same class compare equal.
type RankClass uint8

const (
	HighCard RankClass = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// NumRankClasses is the number of hand categories.
const NumRankClasses = 9

var rankClassNames = [NumRankClasses]string{
	"High Card",
	"One Pair",
	"Two Pair",
	"Three of a Kind",
	"Straight",
	"Flush",
	"Full House",
	"Four of a Kind",
	"Straight Flush",
}

// String returns a human-readable hand description.
func (rc RankClass) String() string {
	if int(rc) >= NumRankClasses {
		return "Unknown"
	}
	return rankClassNames[rc]
}

// Compare returns 1 if rc is stronger than other, -1 if weaker and 0 if equal.
func (rc RankClass) Compare(other RankClass) int {
	switch {
	case rc > other:
		return 1
	case rc < other:
		return -1
	default:
		return 0
	}
}

// RankClasses returns all categories from weakest to strongest.
func RankClasses() []RankClass {
	out := make([]RankClass, NumRankClasses)
	for i := range out {
		out[i] = RankClass(i)
	}
	return out
}
