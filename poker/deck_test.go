package poker

import (
	"errors"
	"testing"

	"github.com/lox/pokerequity/internal/randutil"
)

func TestDeckExcludesCards(t *testing.T) {
	t.Parallel()
	used := NewCardSet(MustParseCards("AsKsQh")...)
	d := NewDeck(randutil.New(1), used)

	if d.Remaining() != 49 {
		t.Fatalf("Remaining() = %d, want 49", d.Remaining())
	}
	cards, err := d.Deal(49)
	if err != nil {
		t.Fatalf("Deal: %v", err)
	}
	for _, c := range cards {
		if used.Contains(c) {
			t.Errorf("excluded card %s was dealt", c)
		}
	}
}

func TestDeckShuffleIsPermutation(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(5), 0)
	d.Shuffle()
	cards, err := d.Deal(NumCards)
	if err != nil {
		t.Fatalf("Deal: %v", err)
	}
	if got := NewCardSet(cards...).Len(); got != NumCards {
		t.Errorf("shuffled deck has %d distinct cards", got)
	}

	inOrder := true
	for i, c := range AllCards() {
		if cards[i] != c {
			inOrder = false
			break
		}
	}
	if inOrder {
		t.Error("deck was not shuffled")
	}
}

func TestDeckShuffleDeterministic(t *testing.T) {
	t.Parallel()
	a := NewDeck(randutil.New(77), 0)
	b := NewDeck(randutil.New(77), 0)
	a.Shuffle()
	b.Shuffle()
	ca, _ := a.Deal(10)
	cb, _ := b.Deal(10)
	for i := range ca {
		if ca[i] != cb[i] {
			t.Fatalf("decks diverged at %d: %s vs %s", i, ca[i], cb[i])
		}
	}
}

func TestDeckExhausted(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(1), 0)
	if _, err := d.Deal(50); err != nil {
		t.Fatalf("Deal(50): %v", err)
	}
	if _, err := d.Deal(3); !errors.Is(err, ErrDeckExhausted) {
		t.Errorf("expected ErrDeckExhausted, got %v", err)
	}
	if d.Remaining() != 2 {
		t.Errorf("failed deal must not consume cards, remaining %d", d.Remaining())
	}
}

func TestDeckShuffleUniformFirstCard(t *testing.T) {
	t.Parallel()
	rng := randutil.New(8)
	d := NewDeck(rng, 0)
	counts := make(map[Card]int)
	const rounds = 52 * 400
	for i := 0; i < rounds; i++ {
		d.Reset(0)
		d.Shuffle()
		c, _ := d.Deal(1)
		counts[c[0]]++
	}
	for _, c := range AllCards() {
		// Expected 400 per card; allow a wide margin.
		if counts[c] < 250 || counts[c] > 550 {
			t.Errorf("card %s drawn first %d times", c, counts[c])
		}
	}
}
