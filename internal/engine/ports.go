package engine

import (
	"context"
	"time"
)

// Clock supplies the current time. Injectable so daily-rollover and
// lockdown-expiry logic can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// DayKey formats a time as a calendar-day key (local time).
func DayKey(t time.Time) string { return t.Format("2006-01-02") }

// Notifier receives every user-visible outcome. Fire-and-forget; it
// must never block engine logic.
type Notifier interface {
	Notify(msg string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(string) {}

// AudioPort plays cosmetic cues. Implementations must not affect state.
type AudioPort interface {
	PlayCue(c Cue)
}

// NopAudio discards cues.
type NopAudio struct{}

func (NopAudio) PlayCue(Cue) {}

// RNG is the injectable randomness source behind every probabilistic
// branch (modifier roll, mission draw, taunt selection).
type RNG interface {
	Float64() float64
	IntN(n int) int
	Perm(n int) []int
}

// FileStore models the note-taking backing store that owns quest
// records. The engine only ever sees opaque ids plus metadata
// snapshots.
type FileStore interface {
	Create(ctx context.Context, meta TaskMeta) (string, error)
	Get(ctx context.Context, id string) (TaskRecord, error)
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Outstanding(ctx context.Context) ([]TaskRecord, error)
	Deadline(ctx context.Context, id string) (time.Time, bool, error)
}

// Store persists the whole state document as one unit.
type Store interface {
	Load(ctx context.Context) (*State, bool, error)
	Save(ctx context.Context, st *State) error
}

// Observer is notified after every successful mutation. Presentation
// code subscribes here; the engine never knows what renders it.
type Observer interface {
	StateChanged(st *State)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(st *State)

func (f ObserverFunc) StateChanged(st *State) { f(st) }
