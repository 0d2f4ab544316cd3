package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestMeditateRequiresLockdown(t *testing.T) {
	tg := newTestGame(t)

	out, err := tg.g.Meditate(context.Background())
	if err != nil {
		t.Fatalf("Meditate: %v", err)
	}
	if !out.Rejected || out.Reason != ReasonNotMeditating {
		t.Fatalf("meditation outside a lockdown must be rejected, got %+v", out)
	}
}

func TestMeditateDebounceBlocksRapidCycles(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	tg.g.Meditation().beginLockdown()
	out, err := tg.g.Meditate(ctx)
	if err != nil {
		t.Fatalf("Meditate: %v", err)
	}
	if out.Rejected || out.CyclesDone != 1 || out.CyclesRemaining != meditationCycleTarget-1 {
		t.Fatalf("first cycle: %+v", out)
	}

	out, err = tg.g.Meditate(ctx)
	if err != nil {
		t.Fatalf("Meditate: %v", err)
	}
	if !out.Rejected || out.Reason != ReasonBreathe {
		t.Fatalf("second immediate cycle must bounce, got %+v", out)
	}
}

func TestMeditateDebounceExpires(t *testing.T) {
	tg := newTestGame(t)

	m := tg.g.Meditation()
	m.beginLockdown()

	if out := m.Meditate(); out.Rejected {
		t.Fatalf("first cycle rejected: %s", out.Reason)
	}
	tg.clock.advance(meditationDebounce)
	if out := m.Meditate(); out.Rejected {
		t.Fatalf("cycle after the debounce rejected: %s", out.Reason)
	}
}

func TestMeditationUsableAfterDocumentReload(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	tg.g.Meditation().beginLockdown()
	out, err := tg.g.Meditate(ctx)
	if err != nil {
		t.Fatalf("Meditate: %v", err)
	}
	if out.Rejected {
		t.Fatalf("first cycle rejected: %s", out.Reason)
	}

	// Every command runs in a fresh process: the document goes through
	// the store and a brand-new Game picks it up later.
	data, err := json.Marshal(tg.g.State())
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	clock := &testClock{now: tg.clock.now.Add(10 * time.Minute)}
	g2, err := New(&st, Options{Store: tg.store, Files: tg.vault, Clock: clock, RNG: tg.rng})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err = g2.Meditate(ctx)
	if err != nil {
		t.Fatalf("Meditate after reload: %v", err)
	}
	if out.Rejected {
		t.Fatalf("meditation must stay usable after a reload, got %s", out.Reason)
	}
	if out.CyclesDone != 2 {
		t.Fatalf("cycle count must survive the reload, got %d", out.CyclesDone)
	}
}

func TestMeditationSaturatesAndReducesLockdown(t *testing.T) {
	tg := newTestGame(t)

	m := tg.g.Meditation()
	m.beginLockdown()
	until := tg.g.State().Meditation.LockdownUntil

	var last MeditateOutcome
	for i := 0; i < meditationCycleTarget; i++ {
		last = m.Meditate()
		if last.Rejected {
			t.Fatalf("cycle %d rejected: %s", i+1, last.Reason)
		}
		tg.clock.advance(meditationDebounce)
	}
	if !last.Reduced || last.CyclesDone != meditationCycleTarget {
		t.Fatalf("tenth cycle should saturate: %+v", last)
	}
	got := tg.g.State().Meditation.LockdownUntil
	if want := until.Add(-lockdownReduction); !got.Equal(want) {
		t.Fatalf("lockdown until %v, want %v", got, want)
	}
	if tg.g.State().Meditation.Cycles != 0 {
		t.Fatalf("cycle counter must restart after a full set")
	}
}

func TestRebirthCancelsMeditationState(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	m := tg.g.Meditation()
	m.beginLockdown()
	m.Meditate()

	if _, err := tg.g.TriggerRebirth(ctx); err != nil {
		t.Fatalf("TriggerRebirth: %v", err)
	}
	ms := tg.g.State().Meditation
	if m.LockedDown() || !ms.DebounceUntil.IsZero() || ms.Cycles != 0 {
		t.Fatalf("rebirth must clear meditation state, got %+v", ms)
	}
}

func TestDeletionQuota(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < freeDeletionsPerDay+1; i++ {
		ids = append(ids, tg.addQuest(t, TaskMeta{Title: "Disposable", XP: 1}))
	}

	for i := 0; i < freeDeletionsPerDay; i++ {
		out, err := tg.g.DeleteTask(ctx, ids[i])
		if err != nil {
			t.Fatalf("DeleteTask: %v", err)
		}
		if out.Cost != 0 {
			t.Fatalf("deletion %d should be free, cost %d", i+1, out.Cost)
		}
	}

	out, err := tg.g.DeleteTask(ctx, ids[freeDeletionsPerDay])
	if err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if out.Cost != deletionCost {
		t.Fatalf("deletion past the quota should cost %d, got %d", deletionCost, out.Cost)
	}
	if got := tg.g.State().Player.Gold; got != -deletionCost {
		t.Fatalf("gold = %d, want %d", got, -deletionCost)
	}

	// Rollover resets the quota.
	tg.clock.advance(24 * time.Hour)
	if _, err := tg.g.RollDailyLogin(ctx); err != nil {
		t.Fatalf("RollDailyLogin: %v", err)
	}
	id := tg.addQuest(t, TaskMeta{Title: "Fresh day", XP: 1})
	out, err = tg.g.DeleteTask(ctx, id)
	if err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if out.Cost != 0 {
		t.Fatalf("quota must reset at rollover, cost %d", out.Cost)
	}
}
