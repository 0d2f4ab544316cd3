package vault

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/engine"
)

func openTestVault(t *testing.T) *Vault {
	t.Helper()
	v, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return v
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	v := openTestVault(t)
	ctx := context.Background()

	due := time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC)
	meta := engine.TaskMeta{
		Title:      "Write the report",
		XP:         20,
		Gold:       10,
		Skill:      "writing",
		Skill2:     "focus",
		Difficulty: engine.DifficultyMedium,
		Deadline:   &due,
		HighStakes: true,
		CreatedAt:  time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
	}
	id, err := v.Create(ctx, meta)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec, err := v.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.ID != id {
		t.Fatalf("id = %s, want %s", rec.ID, id)
	}
	got := rec.Meta
	if got.Title != meta.Title || got.XP != 20 || got.Gold != 10 || got.Difficulty != engine.DifficultyMedium {
		t.Fatalf("meta round trip: %+v", got)
	}
	if !got.HighStakes || got.Skill != "writing" || got.Skill2 != "focus" {
		t.Fatalf("flags/skills lost: %+v", got)
	}
	if got.Deadline == nil || !got.Deadline.Equal(due) {
		t.Fatalf("deadline = %v, want %v", got.Deadline, due)
	}
	if !got.CreatedAt.Equal(meta.CreatedAt) {
		t.Fatalf("created = %v, want %v", got.CreatedAt, meta.CreatedAt)
	}
}

func TestNoteIsReadableMarkdown(t *testing.T) {
	v := openTestVault(t)
	ctx := context.Background()

	id, err := v.Create(ctx, engine.TaskMeta{Title: "Push the boulder", XP: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(v.dir, id+".md"))
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "---\n") {
		t.Fatalf("note must open with frontmatter:\n%s", text)
	}
	if !strings.Contains(text, "# Push the boulder") {
		t.Fatalf("note body must carry the title heading:\n%s", text)
	}
}

func TestArchiveMovesNote(t *testing.T) {
	v := openTestVault(t)
	ctx := context.Background()

	id, err := v.Create(ctx, engine.TaskMeta{Title: "Done with this", XP: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := v.Archive(ctx, id); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if _, err := v.Get(ctx, id); err == nil {
		t.Fatalf("archived quest must not resolve by id")
	}
	if _, err := os.Stat(filepath.Join(v.dir, archiveDir, id+".md")); err != nil {
		t.Fatalf("archived note missing: %v", err)
	}

	recs, err := v.Outstanding(ctx)
	if err != nil {
		t.Fatalf("Outstanding: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("archived quests must not be outstanding, got %d", len(recs))
	}
}

func TestDeleteRemovesNote(t *testing.T) {
	v := openTestVault(t)
	ctx := context.Background()

	id, err := v.Create(ctx, engine.TaskMeta{Title: "Mistake", XP: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := v.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := v.Delete(ctx, id); err == nil {
		t.Fatalf("deleting a missing note must fail")
	}
}

func TestOutstandingOrderAndSkip(t *testing.T) {
	v := openTestVault(t)
	ctx := context.Background()

	older := engine.TaskMeta{Title: "First", XP: 1, CreatedAt: time.Date(2026, 8, 27, 8, 0, 0, 0, time.UTC)}
	newer := engine.TaskMeta{Title: "Second", XP: 1, CreatedAt: time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)}
	if _, err := v.Create(ctx, newer); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := v.Create(ctx, older); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A stray file without frontmatter is skipped, not fatal.
	if err := os.WriteFile(filepath.Join(v.dir, "scratch.md"), []byte("just notes"), 0o644); err != nil {
		t.Fatalf("write stray file: %v", err)
	}

	recs, err := v.Outstanding(ctx)
	if err != nil {
		t.Fatalf("Outstanding: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("outstanding = %d, want 2", len(recs))
	}
	if recs[0].Meta.Title != "First" || recs[1].Meta.Title != "Second" {
		t.Fatalf("order = %s, %s; want oldest first", recs[0].Meta.Title, recs[1].Meta.Title)
	}
}

func TestDeadlineLookup(t *testing.T) {
	v := openTestVault(t)
	ctx := context.Background()

	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	withDue, err := v.Create(ctx, engine.TaskMeta{Title: "Dated", XP: 1, Deadline: &due})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	without, err := v.Create(ctx, engine.TaskMeta{Title: "Open ended", XP: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, ok, err := v.Deadline(ctx, withDue)
	if err != nil || !ok || !got.Equal(due) {
		t.Fatalf("Deadline = %v, %v, %v", got, ok, err)
	}
	_, ok, err = v.Deadline(ctx, without)
	if err != nil || ok {
		t.Fatalf("quest without a deadline reported one")
	}
}

func TestParseFrontmatterErrors(t *testing.T) {
	if _, err := parseFrontmatter([]byte("# no frontmatter here")); err == nil {
		t.Fatalf("missing frontmatter must error")
	}
	if _, err := parseFrontmatter([]byte("---\ntitle: x\nno closing fence")); err == nil {
		t.Fatalf("unterminated frontmatter must error")
	}
}
