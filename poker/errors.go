package poker

import "errors"

var (
	// ErrInvalidCard reports an unrecognised rank or suit.
	ErrInvalidCard = errors.New("invalid card")
	// ErrInvalidHandSize reports a card list of the wrong cardinality.
	ErrInvalidHandSize = errors.New("invalid hand size")
	// ErrDuplicateCard reports the same card appearing more than once.
	ErrDuplicateCard = errors.New("duplicate card")
	// ErrDeckExhausted reports too few cards left to complete the board.
	ErrDeckExhausted = errors.New("deck exhausted")
)

// ErrorKind returns the taxonomy name of a poker error ("InvalidCard",
// "InvalidHandSize", "DuplicateCard", "DeckExhausted") or "" for anything else.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCard):
		return "InvalidCard"
	case errors.Is(err, ErrInvalidHandSize):
		return "InvalidHandSize"
	case errors.Is(err, ErrDuplicateCard):
		return "DuplicateCard"
	case errors.Is(err, ErrDeckExhausted):
		return "DeckExhausted"
	default:
		return ""
	}
}
