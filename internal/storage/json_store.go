package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/engine"
)

// JSONStore keeps the state document in a single JSON file, written
// atomically via a temp file rename.
type JSONStore struct {
	filePath string
}

func NewJSONStore(filePath string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &JSONStore{filePath: filePath}, nil
}

func (s *JSONStore) Load(ctx context.Context) (*engine.State, bool, error) {
	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read state: %w", err)
	}
	var st engine.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, false, fmt.Errorf("decode state: %w", err)
	}
	return &st, true, nil
}

func (s *JSONStore) Save(ctx context.Context, st *engine.State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }
