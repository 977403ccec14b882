package enumerate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerequity/poker"
)

func TestCensusTotals(t *testing.T) {
	if testing.Short() {
		t.Skip("full enumeration skipped in short mode")
	}
	t.Parallel()

	totals, err := Census(context.Background(), poker.NewClassifier(), 4, nil)
	require.NoError(t, err)

	expected := map[poker.RankClass]int{
		poker.StraightFlush: 40,
		poker.FourOfAKind:   624,
		poker.FullHouse:     3744,
		poker.Flush:         5108,
		poker.Straight:      10200,
		poker.ThreeOfAKind:  54912,
		poker.TwoPair:       123552,
		poker.OnePair:       1098240,
		poker.HighCard:      1302540,
	}
	for rc, want := range expected {
		assert.Equal(t, want, totals.Count(rc), rc.String())
	}
	assert.Equal(t, TotalHands, totals.Hands)
	assert.InDelta(t, 50.117739, totals.Percent(poker.HighCard), 1e-6)
	assert.InDelta(t, 0.001539, totals.Percent(poker.StraightFlush), 1e-6)
}

func TestCensusVisitorOrder(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	var seen [][5]poker.Card
	_, err := Census(context.Background(), nil, 8, func(hand [5]poker.Card, rc poker.RankClass) error {
		seen = append(seen, hand)
		if len(seen) == 2 {
			assert.Equal(t, poker.FourOfAKind, rc)
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Len(t, seen, 2)

	assert.Equal(t, poker.MustParseCards("2c 2d 2h 2s 3c"), seen[0][:])
	assert.Equal(t, poker.MustParseCards("2c 2d 2h 2s 3d"), seen[1][:])
}

func TestCensusCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Census(ctx, nil, 2, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeckOrder(t *testing.T) {
	t.Parallel()

	deck := Deck()
	require.Len(t, deck, poker.NumCards)
	assert.Equal(t, "2c", deck[0].String())
	assert.Equal(t, "2s", deck[3].String())
	assert.Equal(t, "As", deck[51].String())
}
