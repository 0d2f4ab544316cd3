// Package storage persists the engine state document as one unit.
// Two backends share the engine.Store contract: a plain JSON file and
// a SQLite database that also keeps a snapshot history.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/engine"
)

const (
	EngineJSON   = "json"
	EngineSQLite = "sqlite"
)

// Closer is implemented by stores holding resources.
type Closer interface {
	Close() error
}

// NewByEngine builds a store for the configured backend.
func NewByEngine(kind, path string) (engine.Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", EngineSQLite:
		return NewSQLiteStore(path)
	case EngineJSON:
		return NewJSONStore(path)
	default:
		return nil, errors.New("unsupported store engine: " + kind)
	}
}

// DefaultDataDir returns the default location of the state document
// and vault.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".sisyphus"), nil
}
