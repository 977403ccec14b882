package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/lox/pokerequity/equity"
	"github.com/lox/pokerequity/internal/config"
	"github.com/lox/pokerequity/internal/randutil"
	"github.com/lox/pokerequity/internal/report"
	"github.com/lox/pokerequity/poker"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config  string `short:"c" type:"path" help:"HCL config file (missing file means defaults)" default:"pokerequity.hcl"`
	Seed    *int64 `help:"Deterministic RNG seed (overrides config)"`
	Trials  int    `short:"n" help:"Number of Monte Carlo trials (overrides config)"`
	Workers int    `short:"w" help:"Worker goroutines per simulation (overrides config)"`
	NoColor bool   `help:"Disable colored output"`
	Debug   bool   `help:"Enable debug logging"`

	stdout io.Writer
	stderr io.Writer
	clock  quartz.Clock
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Classify ClassifyCmd      `cmd:"" help:"Classify exactly five cards"`
	Best     BestCmd          `cmd:"" help:"Best category from five to seven cards"`
	Equity   EquityCmd        `cmd:"" help:"Hand versus hand equity"`
	Field    FieldCmd         `cmd:"" help:"Hand versus one random opponent"`
	Range    RangeCmd         `cmd:"" help:"Range versus range equity"`
	Heatmap  HeatmapCmd       `cmd:"" help:"Print the starting hand grids"`
	Census   CensusCmd        `cmd:"" help:"Enumerate all five card hands"`
	Serve    ServeCmd         `cmd:"" help:"Run the websocket server"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerequity"),
		kong.Description("Poker hand classification and Monte Carlo equity"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// app is what a command needs at run time, built from flags and config.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	printer *report.Printer
	clock   quartz.Clock
	stdout  io.Writer
	seed    int64
}

func (g *Globals) app() (*app, error) {
	stdout, stderr := g.stdout, g.stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	clock := g.clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if g.Trials != 0 {
		cfg.Simulation.Trials = g.Trials
	}
	if g.Workers != 0 {
		cfg.Simulation.Workers = g.Workers
	}
	if g.Seed != nil {
		cfg.Simulation.Seed = *g.Seed
	}

	level := cfg.Level()
	if g.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "pokerequity",
	})

	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = randutil.NewSeed()
	}
	logger.Debug("Configured", "seed", seed, "trials", cfg.Simulation.Trials, "workers", cfg.Simulation.Workers)

	return &app{
		cfg:     cfg,
		logger:  logger,
		printer: report.NewPrinter(stdout),
		clock:   clock,
		stdout:  stdout,
		seed:    seed,
	}, nil
}

func (a *app) simulator() *equity.Simulator {
	return equity.NewSimulator(
		equity.WithClassifier(poker.DefaultClassifier()),
		equity.WithSeed(a.seed),
		equity.WithWorkers(a.cfg.Simulation.Workers),
		equity.WithLogger(a.logger),
	)
}

// signalContext is cancelled on interrupt or terminate.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
