package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lox/pokerequity/equity"
	"github.com/lox/pokerequity/heatmap"
	"github.com/lox/pokerequity/poker"
)

// Handle runs one request to completion. It never fails; errors are
// reported in the response.
func (s *Server) Handle(ctx context.Context, req Request) Response {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	start := s.clock.Now()

	result, err := s.dispatch(ctx, req)

	resp := Response{
		ID:        req.ID,
		Op:        req.Op,
		Timestamp: start,
		ElapsedMS: s.clock.Since(start).Milliseconds(),
	}
	if err != nil {
		resp.Error = errorData(err)
		s.logger.Debug("Request failed", "id", req.ID, "op", req.Op, "kind", resp.Error.Kind, "error", err)
		return resp
	}
	resp.Result = result
	s.logger.Debug("Request finished", "id", req.ID, "op", req.Op, "elapsed_ms", resp.ElapsedMS)
	return resp
}

func (s *Server) dispatch(ctx context.Context, req Request) (any, error) {
	switch req.Op {
	case OpClassify:
		cards, err := poker.ParseCards(req.Cards)
		if err != nil {
			return nil, err
		}
		rc, err := s.classifier.Classify5(cards)
		if err != nil {
			return nil, err
		}
		return ClassResult{Class: rc.String(), Rank: int(rc)}, nil

	case OpBest:
		cards, err := poker.ParseCards(req.Cards)
		if err != nil {
			return nil, err
		}
		rc, err := s.classifier.BestOf(cards)
		if err != nil {
			return nil, err
		}
		return ClassResult{Class: rc.String(), Rank: int(rc)}, nil

	case OpHandVsHand:
		hero, err := equity.ParseHolding(req.Hero)
		if err != nil {
			return nil, fmt.Errorf("hero: %w", err)
		}
		villain, err := equity.ParseHolding(req.Villain)
		if err != nil {
			return nil, fmt.Errorf("villain: %w", err)
		}
		board, err := parseBoard(req.Board)
		if err != nil {
			return nil, err
		}
		trials, err := s.trials(req)
		if err != nil {
			return nil, err
		}
		return s.simulator(req).HandVsHand(ctx, hero, villain, board, trials)

	case OpHandVsField:
		hero, err := equity.ParseHolding(req.Hero)
		if err != nil {
			return nil, fmt.Errorf("hero: %w", err)
		}
		board, err := parseBoard(req.Board)
		if err != nil {
			return nil, err
		}
		trials, err := s.trials(req)
		if err != nil {
			return nil, err
		}
		return s.simulator(req).HandVsField(ctx, hero, board, trials)

	case OpRangeVsRange:
		heroRange, err := equity.ParseRange(req.HeroRange)
		if err != nil {
			return nil, fmt.Errorf("hero range: %w", err)
		}
		villainRange, err := equity.ParseRange(req.VillainRange)
		if err != nil {
			return nil, fmt.Errorf("villain range: %w", err)
		}
		board, err := parseBoard(req.Board)
		if err != nil {
			return nil, err
		}
		trials, err := s.trials(req)
		if err != nil {
			return nil, err
		}
		return s.simulator(req).RangeVsRange(ctx, heroRange, villainRange, board, trials)

	case OpHeatmap:
		return heatmap.Strength(), nil

	case OpCombos:
		return heatmap.Combos(), nil

	default:
		return nil, fmt.Errorf("%w %q", errUnknownOp, req.Op)
	}
}

func parseBoard(s string) ([]poker.Card, error) {
	if s == "" {
		return nil, nil
	}
	board, err := poker.ParseCards(s)
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	return board, nil
}

// trials falls back to the configured default when the request leaves it
// unset. Explicit values pass through to the simulator, which rejects
// non-positive counts; counts above the server limit are rejected here.
func (s *Server) trials(req Request) (int, error) {
	if req.Trials == nil {
		return s.defaultTrials, nil
	}
	n := *req.Trials
	if s.maxTrials > 0 && n > s.maxTrials {
		return 0, fmt.Errorf("%w: %d exceeds server limit of %d", equity.ErrInvalidTrials, n, s.maxTrials)
	}
	return n, nil
}

// simulator returns a seeded simulator when the request asks for one, and
// the shared simulator otherwise.
func (s *Server) simulator(req Request) *equity.Simulator {
	if req.Seed == nil {
		return s.sim
	}
	return equity.NewSimulator(
		equity.WithClassifier(s.classifier),
		equity.WithSeed(*req.Seed),
		equity.WithWorkers(s.sim.Workers()),
		equity.WithLogger(s.logger),
	)
}
