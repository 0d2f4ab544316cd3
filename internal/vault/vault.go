// Package vault implements the quest file store as markdown notes with
// YAML frontmatter, one file per quest, inside a vault directory.
// Archived quests move to an archive/ subfolder instead of being
// deleted so the note history survives the engine.
package vault

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/engine"
)

const archiveDir = "archive"

type Vault struct {
	dir string
	log *slog.Logger
}

// Open prepares a vault directory, creating it if missing.
func Open(dir string, log *slog.Logger) (*Vault, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(filepath.Join(dir, archiveDir), 0o755); err != nil {
		return nil, fmt.Errorf("create vault dir: %w", err)
	}
	return &Vault{dir: dir, log: log}, nil
}

// frontmatter is the on-disk metadata block.
type frontmatter struct {
	Title      string     `yaml:"title"`
	XP         int        `yaml:"xp"`
	Gold       int        `yaml:"gold"`
	Skill      string     `yaml:"skill,omitempty"`
	Skill2     string     `yaml:"skill2,omitempty"`
	Difficulty int        `yaml:"difficulty"`
	Deadline   *time.Time `yaml:"deadline,omitempty"`
	HighStakes bool       `yaml:"high_stakes,omitempty"`
	Boss       bool       `yaml:"boss,omitempty"`
	Created    time.Time  `yaml:"created"`
}

func toMeta(fm frontmatter) engine.TaskMeta {
	return engine.TaskMeta{
		Title:      fm.Title,
		XP:         fm.XP,
		Gold:       fm.Gold,
		Skill:      fm.Skill,
		Skill2:     fm.Skill2,
		Difficulty: engine.Difficulty(fm.Difficulty),
		Deadline:   fm.Deadline,
		HighStakes: fm.HighStakes,
		Boss:       fm.Boss,
		CreatedAt:  fm.Created,
	}
}

func fromMeta(m engine.TaskMeta) frontmatter {
	return frontmatter{
		Title:      m.Title,
		XP:         m.XP,
		Gold:       m.Gold,
		Skill:      m.Skill,
		Skill2:     m.Skill2,
		Difficulty: int(m.Difficulty),
		Deadline:   m.Deadline,
		HighStakes: m.HighStakes,
		Boss:       m.Boss,
		Created:    m.CreatedAt,
	}
}

func (v *Vault) path(id string) string {
	return filepath.Join(v.dir, id+".md")
}

// Create writes a new quest note and returns its opaque id.
func (v *Vault) Create(ctx context.Context, meta engine.TaskMeta) (string, error) {
	id := uuid.NewString()

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fromMeta(meta)); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	buf.WriteString("---\n\n# " + meta.Title + "\n")

	if err := os.WriteFile(v.path(id), buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write quest note: %w", err)
	}
	v.log.Debug("quest created", "id", id, "title", meta.Title)
	return id, nil
}

// Get reads one quest note by id.
func (v *Vault) Get(ctx context.Context, id string) (engine.TaskRecord, error) {
	data, err := os.ReadFile(v.path(id))
	if err != nil {
		return engine.TaskRecord{}, fmt.Errorf("read quest note: %w", err)
	}
	fm, err := parseFrontmatter(data)
	if err != nil {
		return engine.TaskRecord{}, fmt.Errorf("quest %s: %w", id, err)
	}
	return engine.TaskRecord{ID: id, Meta: toMeta(fm)}, nil
}

// Archive moves a quest note into the archive folder.
func (v *Vault) Archive(ctx context.Context, id string) error {
	src := v.path(id)
	dst := filepath.Join(v.dir, archiveDir, id+".md")
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("archive quest note: %w", err)
	}
	v.log.Debug("quest archived", "id", id)
	return nil
}

// Delete removes a quest note permanently.
func (v *Vault) Delete(ctx context.Context, id string) error {
	if err := os.Remove(v.path(id)); err != nil {
		return fmt.Errorf("delete quest note: %w", err)
	}
	v.log.Debug("quest deleted", "id", id)
	return nil
}

// Outstanding lists every non-archived quest, oldest first.
func (v *Vault) Outstanding(ctx context.Context) ([]engine.TaskRecord, error) {
	entries, err := os.ReadDir(v.dir)
	if err != nil {
		return nil, fmt.Errorf("read vault dir: %w", err)
	}
	var recs []engine.TaskRecord
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".md")
		rec, err := v.Get(ctx, id)
		if err != nil {
			v.log.Warn("skipping unreadable quest note", "file", e.Name(), "err", err)
			continue
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].Meta.CreatedAt.Equal(recs[j].Meta.CreatedAt) {
			return recs[i].Meta.CreatedAt.Before(recs[j].Meta.CreatedAt)
		}
		return recs[i].ID < recs[j].ID
	})
	return recs, nil
}

// Deadline looks up a quest's deadline, reporting whether one is set.
func (v *Vault) Deadline(ctx context.Context, id string) (time.Time, bool, error) {
	rec, err := v.Get(ctx, id)
	if err != nil {
		return time.Time{}, false, err
	}
	if rec.Meta.Deadline == nil {
		return time.Time{}, false, nil
	}
	return *rec.Meta.Deadline, true, nil
}

func parseFrontmatter(data []byte) (frontmatter, error) {
	var fm frontmatter
	rest, ok := bytes.CutPrefix(data, []byte("---\n"))
	if !ok {
		return fm, fmt.Errorf("missing frontmatter")
	}
	block, _, ok := bytes.Cut(rest, []byte("\n---"))
	if !ok {
		return fm, fmt.Errorf("unterminated frontmatter")
	}
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return fm, fmt.Errorf("parse frontmatter: %w", err)
	}
	return fm, nil
}
