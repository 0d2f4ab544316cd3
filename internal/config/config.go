// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/storage"
)

type Config struct {
	// DataDir holds the state document; defaults to ~/.sisyphus.
	DataDir string `env:"SISYPHUS_DATA_DIR"`
	// VaultDir holds the quest notes; defaults to <DataDir>/vault.
	VaultDir string `env:"SISYPHUS_VAULT_DIR"`
	// StoreEngine is json or sqlite.
	StoreEngine string `env:"SISYPHUS_STORE" envDefault:"sqlite"`
	// Seed forces a deterministic RNG when non-zero.
	Seed uint64 `env:"SISYPHUS_SEED"`
	// Quiet suppresses the terminal bell cues.
	Quiet bool `env:"SISYPHUS_QUIET"`
}

// Load parses the environment and fills in defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		dir, err := storage.DefaultDataDir()
		if err != nil {
			return cfg, err
		}
		cfg.DataDir = dir
	}
	if cfg.VaultDir == "" {
		cfg.VaultDir = filepath.Join(cfg.DataDir, "vault")
	}
	return cfg, nil
}

// StorePath is the state document location for the configured backend.
func (c Config) StorePath() string {
	if c.StoreEngine == storage.EngineJSON {
		return filepath.Join(c.DataDir, "state.json")
	}
	return filepath.Join(c.DataDir, "state.db")
}
