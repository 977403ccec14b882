package poker

import (
	"fmt"
	"slices"
	"sync"
)

// straightPatterns holds the ten five-rank runs in the 13-bit rank window,
// ace-high first and the wheel (A-2-3-4-5) last.
var straightPatterns = func() [10]uint16 {
	var patterns [10]uint16
	mask := uint16(0x1F00) // A-K-Q-J-T
	for i := 0; i < 9; i++ {
		patterns[i] = mask
		mask >>= 1
	}
	patterns[9] = 0x100F
	return patterns
}()

// Classifier assigns a RankClass to five cards, memoising count-based
// classes in a Cache.
type Classifier struct {
	cache *Cache
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithCache makes the classifier use cache instead of a private one.
func WithCache(cache *Cache) ClassifierOption {
	return func(c *Classifier) {
		c.cache = cache
	}
}

// NewClassifier returns a classifier with its own cache unless WithCache is given.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = NewCache()
	}
	return c
}

var (
	defaultOnce       sync.Once
	defaultClassifier *Classifier
)

// DefaultClassifier returns the process-wide classifier, created on first use.
func DefaultClassifier() *Classifier {
	defaultOnce.Do(func() {
		defaultClassifier = NewClassifier()
	})
	return defaultClassifier
}

// Cache returns the classifier's cache.
func (c *Classifier) Cache() *Cache {
	return c.cache
}

// Classify5 classifies exactly five distinct cards using the default classifier.
func Classify5(cards []Card) (RankClass, error) {
	return DefaultClassifier().Classify5(cards)
}

// Classify5 classifies exactly five distinct cards.
func (c *Classifier) Classify5(cards []Card) (RankClass, error) {
	if len(cards) != 5 {
		return 0, fmt.Errorf("classify %d cards: %w", len(cards), ErrInvalidHandSize)
	}
	if _, err := CheckDistinct(cards); err != nil {
		return 0, err
	}
	var hand [5]EncodedCard
	for i, card := range cards {
		hand[i] = encode(card)
	}
	return c.classifyEncoded(&hand), nil
}

// classifyEncoded assumes five valid, distinct cards.
func (c *Classifier) classifyEncoded(h *[5]EncodedCard) RankClass {
	flush := h[0]&h[1]&h[2]&h[3]&h[4]&suitMask != 0
	rankBits := uint16((h[0]|h[1]|h[2]|h[3]|h[4])>>rankBitShift) & rankBitMask
	straight := isStraight(rankBits)

	switch {
	case flush && straight:
		return StraightFlush
	case flush:
		return Flush
	case straight:
		return Straight
	}

	product := h[0].Prime() * h[1].Prime() * h[2].Prime() * h[3].Prime() * h[4].Prime()
	if rc, ok := c.cache.Get(product); ok {
		return rc
	}
	rc := classifyCounts(h)
	c.cache.Put(product, rc)
	return rc
}

func isStraight(rankBits uint16) bool {
	for _, pattern := range straightPatterns {
		if rankBits&pattern == pattern {
			return true
		}
	}
	return false
}

// classifyCounts maps the sorted rank-count pattern to a class.
func classifyCounts(h *[5]EncodedCard) RankClass {
	var counts [NumRanks]int
	for _, e := range h {
		counts[e.RankIndex()]++
	}
	pattern := make([]int, 0, 5)
	for _, n := range counts {
		if n > 0 {
			pattern = append(pattern, n)
		}
	}
	slices.Sort(pattern)
	slices.Reverse(pattern)

	switch {
	case slices.Equal(pattern, []int{4, 1}):
		return FourOfAKind
	case slices.Equal(pattern, []int{3, 2}):
		return FullHouse
	case slices.Equal(pattern, []int{3, 1, 1}):
		return ThreeOfAKind
	case slices.Equal(pattern, []int{2, 2, 1}):
		return TwoPair
	case slices.Equal(pattern, []int{2, 1, 1, 1}):
		return OnePair
	default:
		return HighCard
	}
}
