package engine

import (
	"fmt"
	"time"
)

const (
	lockdownDuration      = 6 * time.Hour
	lockdownReduction     = 1 * time.Hour
	meditationCycleTarget = 10
	meditationDebounce    = 5 * time.Second

	freeDeletionsPerDay = 3
	deletionCost        = 10
)

// Meditation owns the lockdown/recovery state machine and the daily
// task-deletion quota. It is the sole writer of MeditationState.
//
// The breathing debounce is a clock comparison like every other timed
// window: a cycle stamps DebounceUntil and further cycles are rejected
// until it passes. No live timer, so the window survives a process
// restart, cannot fire against reborn state, and needs no locking
// beyond the Game mutex that serializes every engine call.
type Meditation struct {
	st       *MeditationState
	clock    Clock
	debounce time.Duration
}

func newMeditation(st *MeditationState, clock Clock) *Meditation {
	return &Meditation{st: st, clock: clock, debounce: meditationDebounce}
}

// LockedDown reports whether the lockdown window is still open.
func (m *Meditation) LockedDown() bool {
	return m.clock.Now().Before(m.st.LockdownUntil)
}

// Remaining is the time left on the lockdown, zero when not locked.
func (m *Meditation) Remaining() time.Duration {
	d := m.st.LockdownUntil.Sub(m.clock.Now())
	if d < 0 {
		return 0
	}
	return d
}

// beginLockdown opens a fresh lockdown window and resets the cycle
// counter.
func (m *Meditation) beginLockdown() {
	m.st.LockdownUntil = m.clock.Now().Add(lockdownDuration)
	m.st.Cycles = 0
}

// MeditateOutcome is the structured result of one meditation cycle.
type MeditateOutcome struct {
	Outcome
	CyclesDone      int
	CyclesRemaining int
	Reduced         bool
	Message         string
}

// Meditate performs one breathing cycle. Cycles stamped inside the
// debounce window bounce; the cycle counter saturates at the target
// and a full set shortens the lockdown and starts over.
func (m *Meditation) Meditate() MeditateOutcome {
	if !m.LockedDown() {
		return MeditateOutcome{Outcome: reject(ReasonNotMeditating)}
	}
	now := m.clock.Now()
	if now.Before(m.st.DebounceUntil) {
		return MeditateOutcome{Outcome: reject(ReasonBreathe)}
	}
	m.st.DebounceUntil = now.Add(m.debounce)

	m.st.Cycles++
	out := MeditateOutcome{CyclesDone: m.st.Cycles}
	if m.st.Cycles >= meditationCycleTarget {
		m.st.Cycles = 0
		m.st.LockdownUntil = m.st.LockdownUntil.Add(-lockdownReduction)
		out.CyclesDone = meditationCycleTarget
		out.Reduced = true
		out.Message = fmt.Sprintf("A full set. The lockdown recedes by %s.", lockdownReduction)
	} else {
		out.CyclesRemaining = meditationCycleTarget - m.st.Cycles
		out.Message = fmt.Sprintf("Breathe. %d cycles to go.", out.CyclesRemaining)
	}
	return out
}

// Reset clears all recovery state. Called on rebirth and on daily
// rollover so no window leaks into the next run or day.
func (m *Meditation) Reset() {
	m.st.DebounceUntil = time.Time{}
	m.st.Cycles = 0
	m.st.LockdownUntil = time.Time{}
}

// rollover wipes the recovery slate and the per-day deletion quota.
func (m *Meditation) rollover() {
	m.Reset()
	m.st.DeletionsToday = 0
}

// DeletionCost returns the gold price of the next task deletion and
// records it against today's quota.
func (m *Meditation) DeletionCost() int {
	m.st.DeletionsToday++
	if m.st.DeletionsToday <= freeDeletionsPerDay {
		return 0
	}
	return deletionCost
}
