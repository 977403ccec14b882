package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokerequity.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
simulation {
  trials  = 5000
  workers = 4
  seed    = 42
}

server {
  address = "0.0.0.0:9000"
}

log_level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Simulation.Trials)
	assert.Equal(t, 4, cfg.Simulation.Workers)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Address)
	assert.Equal(t, log.DebugLevel, cfg.Level())
}

func TestLoadPartialFile(t *testing.T) {
	path := writeConfig(t, `
simulation {
  workers = 8
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10000, cfg.Simulation.Trials)
	assert.Equal(t, 8, cfg.Simulation.Workers)
	assert.Equal(t, "localhost:8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
simulation {
  trials = 5000
}
`)
	t.Setenv("POKEREQUITY_SIMULATION_TRIALS", "250")
	t.Setenv("POKEREQUITY_SERVER_ADDRESS", "127.0.0.1:7777")
	t.Setenv("POKEREQUITY_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Simulation.Trials)
	assert.Equal(t, "127.0.0.1:7777", cfg.Server.Address)
	assert.Equal(t, log.WarnLevel, cfg.Level())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, `simulation {`))
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Load(writeConfig(t, `unknown = 1`))
	assert.ErrorContains(t, err, "failed to decode HCL")

	_, err = Load(writeConfig(t, `simulation { trials = -1 }`))
	assert.ErrorContains(t, err, "trials must be positive")

	_, err = Load(writeConfig(t, `log_level = "loud"`))
	assert.ErrorContains(t, err, "invalid log_level")

	t.Setenv("POKEREQUITY_SIMULATION_WORKERS", "many")
	_, err = Load("")
	assert.ErrorContains(t, err, "failed to read environment")
}
