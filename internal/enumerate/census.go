// Package enumerate walks every five card hand and tallies the categories.
package enumerate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerequity/poker"
)

// TotalHands is C(52,5).
const TotalHands = 2598960

// Totals holds how many five card hands fall in each category.
type Totals struct {
	Counts [poker.NumRankClasses]int
	Hands  int
}

// Count returns the number of hands in rc.
func (t Totals) Count(rc poker.RankClass) int {
	if int(rc) >= len(t.Counts) {
		return 0
	}
	return t.Counts[rc]
}

// Percent returns the share of all hands in rc, as a percentage.
func (t Totals) Percent(rc poker.RankClass) float64 {
	if t.Hands == 0 {
		return 0
	}
	return float64(t.Count(rc)) * 100 / float64(t.Hands)
}

func (t *Totals) merge(o Totals) {
	for i, n := range o.Counts {
		t.Counts[i] += n
	}
	t.Hands += o.Hands
}

// Visitor receives each hand with its category. Returning an error stops the walk.
type Visitor func(hand [5]poker.Card, class poker.RankClass) error

// Deck returns the 52 cards in rank-major order (2c 2d 2h 2s 3c ...), the
// order hands are visited in.
func Deck() []poker.Card {
	cards := make([]poker.Card, 0, poker.NumCards)
	for rank := poker.Two; rank <= poker.Ace; rank++ {
		for suit := poker.Clubs; suit <= poker.Spades; suit++ {
			cards = append(cards, poker.Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}

// Census classifies all 2,598,960 hands. With a visitor the walk runs on the
// calling goroutine in lexicographic order over Deck; without one the first
// card is striped across workers.
func Census(ctx context.Context, classifier *poker.Classifier, workers int, visit Visitor) (Totals, error) {
	if classifier == nil {
		classifier = poker.DefaultClassifier()
	}
	deck := Deck()

	if visit != nil {
		workers = 1
	}
	workers = max(workers, 1)

	parts := make([]Totals, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			for first := w; first < len(deck); first += workers {
				if err := walkFrom(ctx, classifier, deck, first, &parts[w], visit); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Totals{}, err
	}

	var totals Totals
	for _, p := range parts {
		totals.merge(p)
	}
	return totals, nil
}

// walkFrom visits every hand whose lowest deck position is first.
func walkFrom(ctx context.Context, classifier *poker.Classifier, deck []poker.Card, first int, t *Totals, visit Visitor) error {
	n := len(deck)
	var hand [5]poker.Card
	hand[0] = deck[first]
	for b := first + 1; b < n; b++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		hand[1] = deck[b]
		for c := b + 1; c < n; c++ {
			hand[2] = deck[c]
			for d := c + 1; d < n; d++ {
				hand[3] = deck[d]
				for e := d + 1; e < n; e++ {
					hand[4] = deck[e]
					rc, err := classifier.Classify5(hand[:])
					if err != nil {
						return err
					}
					t.Counts[rc]++
					t.Hands++
					if visit != nil {
						if err := visit(hand, rc); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	return nil
}
