package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/engine"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	if _, found, err := s.Load(ctx); err != nil || found {
		t.Fatalf("empty store: found=%v err=%v", found, err)
	}

	st := engine.NewState(time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC))
	st.Player.XP = 77
	st.Research.TasksCompleted = 4
	if err := s.Save(ctx, st); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, found, err := s.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load: found=%v err=%v", found, err)
	}
	if got.Player.XP != 77 || got.Research.TasksCompleted != 4 {
		t.Fatalf("round trip: %+v", got.Player)
	}
}

func TestSQLiteStoreSingleRow(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	st := engine.NewState(time.Now())
	for i := 1; i <= 3; i++ {
		st.Player.Level = i
		if err := s.Save(ctx, st); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	got, _, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Player.Level != 3 {
		t.Fatalf("level = %d, want the latest save", got.Player.Level)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM state`).Scan(&count); err != nil {
		t.Fatalf("count state rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("state rows = %d, want exactly 1", count)
	}
}

func TestSQLiteSnapshotHistory(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	st := engine.NewState(time.Now())
	for i := 0; i < snapshotKeep+5; i++ {
		if err := s.Save(ctx, st); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	snaps, err := s.Snapshots(ctx)
	if err != nil {
		t.Fatalf("Snapshots: %v", err)
	}
	if len(snaps) != snapshotKeep {
		t.Fatalf("snapshots = %d, want pruned to %d", len(snaps), snapshotKeep)
	}
}
