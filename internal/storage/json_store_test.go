package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/engine"
)

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	ctx := context.Background()

	if _, found, err := s.Load(ctx); err != nil || found {
		t.Fatalf("empty store: found=%v err=%v", found, err)
	}

	st := engine.NewState(time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC))
	st.Player.Gold = 42
	st.Player.Level = 3
	st.Skills["writing"] = &engine.Skill{Name: "writing", Level: 2, XP: 12.5, XPToNext: 58}

	if err := s.Save(ctx, st); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, found, err := s.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load: found=%v err=%v", found, err)
	}
	if got.Player.Gold != 42 || got.Player.Level != 3 {
		t.Fatalf("player round trip: %+v", got.Player)
	}
	sk := got.Skills["writing"]
	if sk == nil || sk.XP != 12.5 {
		t.Fatalf("fractional skill xp lost: %+v", sk)
	}
	if len(got.Analytics.Bosses) != 4 {
		t.Fatalf("boss milestones lost: %d", len(got.Analytics.Bosses))
	}
}

func TestJSONStoreOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	ctx := context.Background()

	st := engine.NewState(time.Now())
	for gold := 1; gold <= 3; gold++ {
		st.Player.Gold = gold
		if err := s.Save(ctx, st); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	got, _, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Player.Gold != 3 {
		t.Fatalf("gold = %d, want the latest save", got.Player.Gold)
	}
}

func TestNewByEngine(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewByEngine(EngineJSON, filepath.Join(dir, "a.json")); err != nil {
		t.Fatalf("json backend: %v", err)
	}
	if _, err := NewByEngine("SQLite", filepath.Join(dir, "a.db")); err != nil {
		t.Fatalf("case-insensitive sqlite backend: %v", err)
	}
	if _, err := NewByEngine("dbase", filepath.Join(dir, "a.dbf")); err == nil {
		t.Fatalf("unknown backend must error")
	}
}
