package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/pokerequity/equity"
	"github.com/lox/pokerequity/heatmap"
	"github.com/lox/pokerequity/internal/enumerate"
	"github.com/lox/pokerequity/internal/fileutil"
	"github.com/lox/pokerequity/internal/report"
	"github.com/lox/pokerequity/internal/server"
	"github.com/lox/pokerequity/poker"
)

// ClassifyCmd classifies exactly five cards.
type ClassifyCmd struct {
	Cards []string `arg:"" help:"Five cards, e.g. 'As Ks Qs Js Ts'"`
}

func (c *ClassifyCmd) Run(g *Globals) error {
	a, err := g.app()
	if err != nil {
		return err
	}
	cards, err := poker.ParseCards(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	rc, err := poker.Classify5(cards)
	if err != nil {
		return err
	}
	a.printer.Classification(cards, rc)
	return nil
}

// BestCmd reports the best category among five to seven cards.
type BestCmd struct {
	Cards []string `arg:"" help:"Five to seven cards"`
}

func (c *BestCmd) Run(g *Globals) error {
	a, err := g.app()
	if err != nil {
		return err
	}
	cards, err := poker.ParseCards(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	rc, err := poker.BestOf7(cards)
	if err != nil {
		return err
	}
	a.printer.Classification(cards, rc)
	return nil
}

// EquityCmd runs hand versus hand.
type EquityCmd struct {
	Hero    string `arg:"" help:"Hero hole cards, e.g. AsKs"`
	Villain string `arg:"" help:"Villain hole cards, e.g. QdQc"`
	Board   string `short:"b" help:"Community cards (up to five)"`
}

func (c *EquityCmd) Run(g *Globals) error {
	a, err := g.app()
	if err != nil {
		return err
	}
	hero, err := equity.ParseHolding(c.Hero)
	if err != nil {
		return fmt.Errorf("hero: %w", err)
	}
	villain, err := equity.ParseHolding(c.Villain)
	if err != nil {
		return fmt.Errorf("villain: %w", err)
	}
	board, err := parseBoard(c.Board)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := a.clock.Now()
	res, err := a.simulator().HandVsHand(ctx, hero, villain, board, a.cfg.Simulation.Trials)
	if err != nil {
		return err
	}
	a.printer.Board(board)
	a.printer.Matchup(hero.String(), villain.String(), res, a.clock.Since(start))
	return nil
}

// FieldCmd runs a hand against one random opponent.
type FieldCmd struct {
	Hero  string `arg:"" help:"Hero hole cards, e.g. AsKs"`
	Board string `short:"b" help:"Community cards (up to five)"`
}

func (c *FieldCmd) Run(g *Globals) error {
	a, err := g.app()
	if err != nil {
		return err
	}
	hero, err := equity.ParseHolding(c.Hero)
	if err != nil {
		return fmt.Errorf("hero: %w", err)
	}
	board, err := parseBoard(c.Board)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := a.clock.Now()
	res, err := a.simulator().HandVsField(ctx, hero, board, a.cfg.Simulation.Trials)
	if err != nil {
		return err
	}
	a.printer.Board(board)
	a.printer.Field(hero.String(), res, a.clock.Since(start))
	return nil
}

// RangeCmd runs range versus range.
type RangeCmd struct {
	Hero    string `arg:"" help:"Hero range, e.g. 'TT+,AKs'"`
	Villain string `arg:"" help:"Villain range, e.g. '22-99,A5s-A2s'"`
	Board   string `short:"b" help:"Community cards (up to five)"`
}

func (c *RangeCmd) Run(g *Globals) error {
	a, err := g.app()
	if err != nil {
		return err
	}
	heroRange, err := equity.ParseRange(c.Hero)
	if err != nil {
		return fmt.Errorf("hero range: %w", err)
	}
	villainRange, err := equity.ParseRange(c.Villain)
	if err != nil {
		return fmt.Errorf("villain range: %w", err)
	}
	board, err := parseBoard(c.Board)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := a.clock.Now()
	res, err := a.simulator().RangeVsRange(ctx, heroRange, villainRange, board, a.cfg.Simulation.Trials)
	if err != nil {
		return err
	}
	a.printer.Board(board)
	a.printer.Matchup(c.Hero, c.Villain, res, a.clock.Since(start))
	return nil
}

// HeatmapCmd prints the illustrative strength grid or the combo chart.
type HeatmapCmd struct {
	Combos bool `help:"Print the combo chart instead of the strength grid"`
}

func (c *HeatmapCmd) Run(g *Globals) error {
	a, err := g.app()
	if err != nil {
		return err
	}
	if c.Combos {
		a.printer.Combos(heatmap.Combos())
		return nil
	}
	a.printer.Strength(heatmap.Strength())
	return nil
}

// CensusCmd enumerates every five card hand.
type CensusCmd struct {
	TotalsCSV string `type:"path" help:"Write category totals as CSV"`
	HandsCSV  string `type:"path" help:"Write every hand as CSV (about 2.6 million rows)"`
}

func (c *CensusCmd) Run(g *Globals) error {
	a, err := g.app()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	classifier := poker.DefaultClassifier()
	start := a.clock.Now()
	totals, err := enumerate.Census(ctx, classifier, a.cfg.Simulation.Workers, nil)
	if err != nil {
		return err
	}
	a.printer.Census(totals, a.clock.Since(start))

	if c.TotalsCSV != "" {
		if err := fileutil.WriteAtomic(c.TotalsCSV, 0o644, func(w io.Writer) error {
			return report.WriteTotalsCSV(w, totals)
		}); err != nil {
			return err
		}
		a.logger.Info("Wrote category totals", "path", c.TotalsCSV)
	}

	if c.HandsCSV != "" {
		// Second pass in deck order, now that the category shares are known
		if err := fileutil.WriteAtomic(c.HandsCSV, 0o644, func(w io.Writer) error {
			hw, err := report.NewHandWriter(w, totals)
			if err != nil {
				return err
			}
			if _, err := enumerate.Census(ctx, classifier, 1, hw.Visit); err != nil {
				return err
			}
			return hw.Flush()
		}); err != nil {
			return err
		}
		a.logger.Info("Wrote hands", "path", c.HandsCSV, "hands", totals.Hands)
	}
	return nil
}

// ServeCmd runs the websocket server.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	a, err := g.app()
	if err != nil {
		return err
	}
	addr := a.cfg.Server.Address
	if c.Addr != "" {
		addr = c.Addr
	}

	ctx, cancel := signalContext()
	defer cancel()

	srv := server.NewServer(addr,
		server.WithClock(a.clock),
		server.WithLogger(a.logger),
		server.WithSimulator(a.simulator()),
		server.WithDefaultTrials(a.cfg.Simulation.Trials),
	)
	return srv.Start(ctx)
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
