package poker

import (
	"errors"
	"testing"

	"github.com/lox/pokerequity/internal/randutil"
	ph "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinations5(t *testing.T) {
	assert.Nil(t, Combinations5(4))
	assert.Len(t, Combinations5(5), 1)
	assert.Len(t, Combinations5(6), 6)

	combos := Combinations5(7)
	require.Len(t, combos, 21)
	seen := map[[5]int]bool{}
	for _, c := range combos {
		assert.False(t, seen[c], "duplicate subset %v", c)
		seen[c] = true
		for i := 1; i < 5; i++ {
			assert.Less(t, c[i-1], c[i])
		}
		assert.Less(t, c[4], 7)
	}
	assert.Equal(t, [5]int{0, 1, 2, 3, 4}, combos[0])
	assert.Equal(t, [5]int{2, 3, 4, 5, 6}, combos[20])
}

func TestBestOf7RoyalOnBoard(t *testing.T) {
	got, err := BestOf7(MustParseCards("AsKsQsJsTs2c3d"))
	require.NoError(t, err)
	assert.Equal(t, StraightFlush, got)
}

func TestBestOfFixtures(t *testing.T) {
	tests := []struct {
		cards string
		want  RankClass
	}{
		{"AhAd2c7s9dJhKc", OnePair},
		{"AhAdAc7s7dJhKc", FullHouse},
		{"AhAdAcAs7dJhKc", FourOfAKind},
		{"2h3h4h5h9h", Flush},
		{"2h3d4h5c9hAs", Straight},
		{"2h3d7h9cJhKs", HighCard},
		{"7h7d7c9c9hKsKd", FullHouse},
		{"2c4c6c8cTc3c5c", StraightFlush},
	}

	c := NewClassifier()
	for _, tt := range tests {
		got, err := c.BestOf(MustParseCards(tt.cards))
		require.NoError(t, err, tt.cards)
		assert.Equal(t, tt.want, got, tt.cards)
	}
}

func TestBestOfIsMaximumOfSubsets(t *testing.T) {
	c := NewClassifier()
	rng := randutil.New(2024)
	all := AllCards()

	for i := 0; i < 300; i++ {
		rng.Shuffle(len(all), func(a, b int) { all[a], all[b] = all[b], all[a] })
		seven := append([]Card(nil), all[:7]...)

		best, err := c.BestOf(seven)
		require.NoError(t, err)

		max := HighCard
		for _, subset := range Combinations5(7) {
			five := make([]Card, 5)
			for j, idx := range subset {
				five[j] = seven[idx]
			}
			rc, err := c.Classify5(five)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, best, rc)
			if rc > max {
				max = rc
			}
		}
		assert.Equal(t, max, best, "%v", seven)
	}
}

func TestBestOfErrors(t *testing.T) {
	c := NewClassifier()

	_, err := c.BestOf(MustParseCards("AsKsQsJs"))
	assert.True(t, errors.Is(err, ErrInvalidHandSize))

	_, err = c.BestOf(MustParseCards("AsKsQsJsTs9s8s7s"))
	assert.True(t, errors.Is(err, ErrInvalidHandSize))

	_, err = c.BestOf(MustParseCards("AsKsQsJsTsAs"))
	assert.True(t, errors.Is(err, ErrDuplicateCard))
}

// toOracle converts a card to github.com/paulhankin/poker, where aces are rank 1.
func toOracle(t *testing.T, c Card) ph.Card {
	t.Helper()
	suits := [NumSuits]ph.Suit{ph.Club, ph.Diamond, ph.Heart, ph.Spade}
	rank := ph.Rank(int(c.Rank) + 2)
	if c.Rank == Ace {
		rank = ph.Rank(1)
	}
	card, err := ph.MakeCard(suits[c.Suit], rank)
	require.NoError(t, err)
	return card
}

// Category order must agree with a full evaluator whenever categories differ.
func TestBestOfAgreesWithReferenceEvaluator(t *testing.T) {
	c := NewClassifier()
	rng := randutil.New(11)
	all := AllCards()

	for i := 0; i < 2000; i++ {
		rng.Shuffle(len(all), func(a, b int) { all[a], all[b] = all[b], all[a] })
		board := all[:5]
		hero := append([]Card{all[5], all[6]}, board...)
		villain := append([]Card{all[7], all[8]}, board...)

		heroClass, err := c.BestOf(hero)
		require.NoError(t, err)
		villainClass, err := c.BestOf(villain)
		require.NoError(t, err)
		if heroClass == villainClass {
			continue
		}

		var heroRef, villainRef [7]ph.Card
		for j := range hero {
			heroRef[j] = toOracle(t, hero[j])
			villainRef[j] = toOracle(t, villain[j])
		}
		heroScore := ph.Eval7(&heroRef)
		villainScore := ph.Eval7(&villainRef)

		if heroClass > villainClass {
			assert.Greater(t, heroScore, villainScore, "%v (%s) vs %v (%s)", hero, heroClass, villain, villainClass)
		} else {
			assert.Less(t, heroScore, villainScore, "%v (%s) vs %v (%s)", hero, heroClass, villain, villainClass)
		}
	}
}
