package poker

import (
	"errors"
	"testing"
)

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    Card
		wantErr bool
	}{
		{name: "ace of spades", input: "As", want: Card{Ace, Spades}},
		{name: "two of hearts", input: "2h", want: Card{Two, Hearts}},
		{name: "ten with T", input: "Tc", want: Card{Ten, Clubs}},
		{name: "ten with 10", input: "10d", want: Card{Ten, Diamonds}},
		{name: "lower case rank", input: "kd", want: Card{King, Diamonds}},
		{name: "upper case suit", input: "QH", want: Card{Queen, Hearts}},
		{name: "unicode suit", input: "A♠", want: Card{Ace, Spades}},
		{name: "invalid rank", input: "Xs", wantErr: true},
		{name: "invalid suit", input: "Ax", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "too short", input: "A", wantErr: true},
		{name: "too long", input: "Asd", wantErr: true},
		{name: "one is not a rank", input: "1s", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			card, err := ParseCard(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidCard) {
					t.Fatalf("ParseCard(%q) error = %v, want ErrInvalidCard", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCard(%q) unexpected error: %v", tc.input, err)
			}
			if card != tc.want {
				t.Errorf("ParseCard(%q) = %v, want %v", tc.input, card, tc.want)
			}
		})
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"AsKd10h", "As Kd Th", "As,Kd,Th", "A♠K♦10♥"} {
		cards, err := ParseCards(input)
		if err != nil {
			t.Fatalf("ParseCards(%q): %v", input, err)
		}
		want := []Card{{Ace, Spades}, {King, Diamonds}, {Ten, Hearts}}
		if len(cards) != len(want) {
			t.Fatalf("ParseCards(%q) = %v, want %v", input, cards, want)
		}
		for i := range want {
			if cards[i] != want[i] {
				t.Errorf("ParseCards(%q)[%d] = %v, want %v", input, i, cards[i], want[i])
			}
		}
	}

	if _, err := ParseCards("AsK"); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("expected ErrInvalidCard for truncated input, got %v", err)
	}
}

func TestAll52Cards(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for _, card := range AllCards() {
		str := card.String()
		if seen[str] {
			t.Errorf("Duplicate card: %s", str)
		}
		seen[str] = true

		parsed, err := ParseCard(str)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", str, err)
		}
		if parsed != card {
			t.Errorf("Round-trip failed for %s", str)
		}
	}
	if len(seen) != NumCards {
		t.Errorf("Expected 52 unique cards, got %d", len(seen))
	}
}

func TestNewCardRejectsOutOfRange(t *testing.T) {
	t.Parallel()
	if _, err := NewCard(13, Spades); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("rank 13: got %v", err)
	}
	if _, err := NewCard(Ace, 4); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("suit 4: got %v", err)
	}
}

func TestCheckDistinct(t *testing.T) {
	t.Parallel()
	hero := MustParseCards("AsKs")
	villain := MustParseCards("QhQd")
	board := MustParseCards("2c3c4c")

	set, err := CheckDistinct(hero, villain, board)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Len() != 7 {
		t.Errorf("set has %d cards, want 7", set.Len())
	}

	_, err = CheckDistinct(hero, MustParseCards("AsQd"))
	if !errors.Is(err, ErrDuplicateCard) {
		t.Errorf("expected ErrDuplicateCard, got %v", err)
	}

	_, err = CheckDistinct([]Card{{Rank: 20, Suit: Clubs}})
	if !errors.Is(err, ErrInvalidCard) {
		t.Errorf("expected ErrInvalidCard, got %v", err)
	}
}

func TestCardSet(t *testing.T) {
	t.Parallel()
	as := Card{Ace, Spades}
	ah := Card{Ace, Hearts}
	two := Card{Two, Clubs}

	cs := NewCardSet(as, two)
	if !cs.Contains(as) || !cs.Contains(two) || cs.Contains(ah) {
		t.Errorf("unexpected membership for %b", cs)
	}
	if !cs.Intersects(NewCardSet(two)) {
		t.Error("expected sets to intersect")
	}
	if cs.Intersects(NewCardSet(ah)) {
		t.Error("expected disjoint sets")
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()
	_, err := ParseCard("Zz")
	if got := ErrorKind(err); got != "InvalidCard" {
		t.Errorf("ErrorKind = %q", got)
	}
	if got := ErrorKind(errors.New("other")); got != "" {
		t.Errorf("ErrorKind = %q, want empty", got)
	}
}
