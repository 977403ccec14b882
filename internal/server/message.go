package server

import (
	"context"
	"errors"
	"time"

	"github.com/lox/pokerequity/equity"
	"github.com/lox/pokerequity/poker"
)

// Op names a request operation.
type Op string

const (
	OpClassify     Op = "classify"
	OpBest         Op = "best"
	OpHandVsHand   Op = "hand_vs_hand"
	OpHandVsField  Op = "hand_vs_field"
	OpRangeVsRange Op = "range_vs_range"
	OpHeatmap      Op = "heatmap"
	OpCombos       Op = "combos"
)

// Request is one client call. Card fields use the usual notation ("As Kd",
// "AsKd"); ranges use range notation ("TT+,AKs"). A nil Trials means the
// server default; any explicit value is checked as given.
type Request struct {
	ID           string `json:"id,omitempty"`
	Op           Op     `json:"op"`
	Cards        string `json:"cards,omitempty"`
	Hero         string `json:"hero,omitempty"`
	Villain      string `json:"villain,omitempty"`
	HeroRange    string `json:"hero_range,omitempty"`
	VillainRange string `json:"villain_range,omitempty"`
	Board        string `json:"board,omitempty"`
	Trials       *int   `json:"trials,omitempty"`
	Seed         *int64 `json:"seed,omitempty"`
}

// Response answers a Request with either a result or an error.
type Response struct {
	ID        string     `json:"id"`
	Op        Op         `json:"op"`
	Result    any        `json:"result,omitempty"`
	Error     *ErrorData `json:"error,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
	ElapsedMS int64      `json:"elapsed_ms"`
}

// ErrorData carries an error kind and a human-readable message.
type ErrorData struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ClassResult is the result of classify and best.
type ClassResult struct {
	Class string `json:"class"`
	Rank  int    `json:"rank"`
}

// Error kinds beyond the poker taxonomy
const (
	KindInvalidTrials = "InvalidTrials"
	KindEmptyRange    = "EmptyRange"
	KindUnknownOp     = "UnknownOp"
	KindBadRequest    = "BadRequest"
	KindCancelled     = "Cancelled"
	KindInternal      = "Internal"
)

var errUnknownOp = errors.New("unknown op")

func errorData(err error) *ErrorData {
	kind := poker.ErrorKind(err)
	if kind == "" {
		switch {
		case errors.Is(err, equity.ErrInvalidTrials):
			kind = KindInvalidTrials
		case errors.Is(err, equity.ErrEmptyRange):
			kind = KindEmptyRange
		case errors.Is(err, errUnknownOp):
			kind = KindUnknownOp
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			kind = KindCancelled
		default:
			kind = KindInternal
		}
	}
	return &ErrorData{Kind: kind, Message: err.Error()}
}
