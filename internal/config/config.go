// Package config loads pokerequity settings from an HCL file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. POKEREQUITY_SIMULATION_TRIALS
// or POKEREQUITY_LOG_LEVEL.
const EnvPrefix = "pokerequity"

// Config is the complete runtime configuration
type Config struct {
	Simulation SimulationSettings
	Server     ServerSettings
	LogLevel   string `split_words:"true"`
}

// SimulationSettings controls the equity simulator.
type SimulationSettings struct {
	Trials  int   `hcl:"trials,optional"`
	Workers int   `hcl:"workers,optional"`
	Seed    int64 `hcl:"seed,optional"` // 0 picks a seed from the clock
}

// ServerSettings controls the websocket server.
type ServerSettings struct {
	Address string `hcl:"address,optional"`
}

// fileConfig mirrors the HCL layout. Blocks are pointers so each is optional.
type fileConfig struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Server     *ServerSettings     `hcl:"server,block"`
	LogLevel   string              `hcl:"log_level,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Simulation: SimulationSettings{
			Trials:  10000,
			Workers: 1,
		},
		Server: ServerSettings{
			Address: "localhost:8080",
		},
		LogLevel: "info",
	}
}

// Load reads filename over the defaults, then applies environment overrides.
// An empty or missing filename yields the defaults.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		if err := cfg.loadFile(filename); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(filename string) error {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Zero values in the file leave the defaults alone
	if s := fc.Simulation; s != nil {
		if s.Trials != 0 {
			c.Simulation.Trials = s.Trials
		}
		if s.Workers != 0 {
			c.Simulation.Workers = s.Workers
		}
		c.Simulation.Seed = s.Seed
	}
	if fc.Server != nil && fc.Server.Address != "" {
		c.Server.Address = fc.Server.Address
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	return nil
}

// Validate checks the settings are usable.
func (c *Config) Validate() error {
	if c.Simulation.Trials <= 0 {
		return fmt.Errorf("simulation trials must be positive, got %d", c.Simulation.Trials)
	}
	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("simulation workers must be positive, got %d", c.Simulation.Workers)
	}
	if c.Server.Address == "" {
		return errors.New("server address is required")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
