package config

import (
	"os"
	"strconv"

	"abdesign/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	Simulation SimulationConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// SimulationConfig holds defaults for simulation-backed analyses
type SimulationConfig struct {
	// DefaultSimCount is the replicate count used when a request does not
	// specify one. Empirical thresholds want at least tens of thousands.
	DefaultSimCount int

	// DefaultSeed seeds analyses that do not supply their own; derived
	// per-condition seeds are offset from it.
	DefaultSeed int64

	// SweepWorkers bounds concurrent power-sweep evaluations.
	SweepWorkers int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Simulation: SimulationConfig{
			DefaultSimCount: 100000,
			DefaultSeed:     42,
			SweepWorkers:    4,
		},
	}

	if v := os.Getenv("SIM_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrap(err, "invalid SIM_COUNT")
		}
		cfg.Simulation.DefaultSimCount = n
	}
	if v := os.Getenv("SIM_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "invalid SIM_SEED")
		}
		cfg.Simulation.DefaultSeed = n
	}
	if v := os.Getenv("SWEEP_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrap(err, "invalid SWEEP_WORKERS")
		}
		cfg.Simulation.SweepWorkers = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.ConfigInvalid("server port must be set")
	}
	if c.Simulation.DefaultSimCount <= 0 {
		return errors.ConfigInvalid("simulation count must be positive")
	}
	if c.Simulation.SweepWorkers <= 0 {
		return errors.ConfigInvalid("sweep workers must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
