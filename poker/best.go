package poker

import "fmt"

// Combinations5 returns every 5-element index subset of 0..n-1 in
// lexicographic order. It returns nil for n < 5.
func Combinations5(n int) [][5]int {
	if n < 5 {
		return nil
	}
	var out [][5]int
	idx := [5]int{0, 1, 2, 3, 4}
	for {
		out = append(out, idx)
		// Advance the rightmost index that still has room.
		i := 4
		for i >= 0 && idx[i] == n-5+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < 5; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

var subsetTable = [8][][5]int{
	5: Combinations5(5),
	6: Combinations5(6),
	7: Combinations5(7),
}

// BestOf7 returns the strongest class reachable from 5 to 7 cards using the
// default classifier.
func BestOf7(cards []Card) (RankClass, error) {
	return DefaultClassifier().BestOf(cards)
}

// BestOf classifies every five-card subset of 5, 6 or 7 distinct cards and
// returns the maximum.
func (c *Classifier) BestOf(cards []Card) (RankClass, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return 0, fmt.Errorf("best of %d cards: %w", len(cards), ErrInvalidHandSize)
	}
	if _, err := CheckDistinct(cards); err != nil {
		return 0, err
	}
	var encoded [7]EncodedCard
	for i, card := range cards {
		encoded[i] = encode(card)
	}
	return c.bestEncoded(encoded[:len(cards)]), nil
}

func (c *Classifier) bestEncoded(encoded []EncodedCard) RankClass {
	best := HighCard
	var hand [5]EncodedCard
	for _, subset := range subsetTable[len(encoded)] {
		for i, idx := range subset {
			hand[i] = encoded[idx]
		}
		if rc := c.classifyEncoded(&hand); rc > best {
			best = rc
			if best == StraightFlush {
				break
			}
		}
	}
	return best
}
