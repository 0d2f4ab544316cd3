package engine

import (
	"context"
	"testing"
	"time"
)

func TestDrawMissionsDistinct(t *testing.T) {
	rng := &stubRNG{}
	ms := drawMissions(rng, "2026-03-02")

	if len(ms.Missions) != missionsPerDay {
		t.Fatalf("drew %d missions, want %d", len(ms.Missions), missionsPerDay)
	}
	seen := map[string]bool{}
	for _, m := range ms.Missions {
		if seen[m.DefID] {
			t.Fatalf("mission %s drawn twice", m.DefID)
		}
		seen[m.DefID] = true
		if _, ok := MissionDefByID(m.DefID); !ok {
			t.Fatalf("drawn mission %s is not in the pool", m.DefID)
		}
	}
}

func TestMissionCompletesExactlyOnce(t *testing.T) {
	ms := MissionsState{Missions: []DailyMission{{DefID: "finish_three"}}}

	for i := 0; i < 2; i++ {
		if done := applyEvent(&ms, TaskCompleted{}); len(done) != 0 {
			t.Fatalf("mission done after %d completions", i+1)
		}
	}
	done := applyEvent(&ms, TaskCompleted{})
	if len(done) != 1 || done[0].Def.ID != "finish_three" {
		t.Fatalf("third completion should finish the mission, got %v", done)
	}
	if done := applyEvent(&ms, TaskCompleted{}); len(done) != 0 {
		t.Fatalf("a finished mission must not pay twice")
	}
	if ms.Missions[0].Progress != 3 {
		t.Fatalf("progress capped at target, got %d", ms.Missions[0].Progress)
	}
}

func TestMissionProgressClampsAtZero(t *testing.T) {
	ms := MissionsState{Missions: []DailyMission{{DefID: "untouched"}}}

	applyEvent(&ms, TaskCompleted{})
	if ms.Missions[0].Progress != 1 {
		t.Fatalf("progress = %d, want 1", ms.Missions[0].Progress)
	}
	applyEvent(&ms, TaskFailed{Damage: 10})
	if ms.Missions[0].Progress != 0 {
		t.Fatalf("a failure must reset progress to 0, got %d", ms.Missions[0].Progress)
	}
	applyEvent(&ms, TaskCompleted{})
	done := applyEvent(&ms, TaskCompleted{})
	if len(done) != 1 {
		t.Fatalf("two clean completions after the reset should finish it")
	}
}

func TestMissionAccumulatesAmounts(t *testing.T) {
	ms := MissionsState{Missions: []DailyMission{{DefID: "earn_gold"}}}

	applyEvent(&ms, GoldEarned{Amount: 12})
	if ms.Missions[0].Progress != 12 {
		t.Fatalf("progress = %d, want 12", ms.Missions[0].Progress)
	}
	done := applyEvent(&ms, GoldEarned{Amount: 20})
	if len(done) != 1 {
		t.Fatalf("32 gold should finish the 30-gold mission")
	}
}

func TestMissionRewardPaidThroughGame(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	def, _ := MissionDefByID("hard_one")
	tg.g.State().Missions = MissionsState{
		Date:     DayKey(tg.clock.now),
		Missions: []DailyMission{{DefID: def.ID}},
	}

	id := tg.addQuest(t, TaskMeta{Title: "Slay it", XP: 10, Difficulty: DifficultyHard})
	if _, err := tg.g.CompleteTask(ctx, id); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if got := tg.g.State().Player.XP; got != 10+def.RewardXP {
		t.Fatalf("xp = %d, want quest 10 plus mission %d", got, def.RewardXP)
	}
}

func TestRolloverRedrawsMissionsOncePerDay(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	tg.clock.advance(24 * time.Hour)
	if _, err := tg.g.RollDailyLogin(ctx); err != nil {
		t.Fatalf("RollDailyLogin: %v", err)
	}
	ms := tg.g.State().Missions
	if ms.Date != DayKey(tg.clock.now) || len(ms.Missions) != missionsPerDay {
		t.Fatalf("missions not drawn at rollover: %+v", ms)
	}

	out, err := tg.g.RollDailyLogin(ctx)
	if err != nil {
		t.Fatalf("RollDailyLogin: %v", err)
	}
	if !out.AlreadyRolled {
		t.Fatalf("same-day rollover must be a no-op")
	}
}
