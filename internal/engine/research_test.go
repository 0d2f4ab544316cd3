package engine

import (
	"context"
	"testing"
)

func TestResearchGateStartsClosed(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	// Zero completions, zero research: ratio is 0/1, not a crash.
	if r := tg.g.ResearchEngine().Ratio(); r != 0 {
		t.Fatalf("ratio = %v, want 0", r)
	}
	out, err := tg.g.CreateResearch(ctx, "Read the manual", ResearchShort, "", "")
	if err != nil {
		t.Fatalf("CreateResearch: %v", err)
	}
	if !out.Rejected || out.Reason != ReasonRatioNotMet {
		t.Fatalf("expected ratio rejection, got %+v", out)
	}
}

func TestResearchGateOpensAtTwoToOne(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	tg.g.State().Research.TasksCompleted = 2

	out, err := tg.g.CreateResearch(ctx, "First deep dive", ResearchShort, "writing", "")
	if err != nil {
		t.Fatalf("CreateResearch: %v", err)
	}
	if out.Rejected {
		t.Fatalf("2 quests per 0 research must pass the gate: %s", out.Reason)
	}
	if out.Item.WordTarget != shortWordTarget {
		t.Fatalf("word target = %d, want %d", out.Item.WordTarget, shortWordTarget)
	}

	// 2 quests per 1 research is exactly 2:1; still allowed.
	out, err = tg.g.CreateResearch(ctx, "Second dive", ResearchShort, "", "")
	if err != nil {
		t.Fatalf("CreateResearch: %v", err)
	}
	if out.Rejected {
		t.Fatalf("ratio exactly 2.0 must pass: %s", out.Reason)
	}

	// 2 quests per 2 research is 1:1; gate closes.
	out, err = tg.g.CreateResearch(ctx, "Third dive", ResearchShort, "", "")
	if err != nil {
		t.Fatalf("CreateResearch: %v", err)
	}
	if !out.Rejected {
		t.Fatalf("ratio 1.0 must be rejected")
	}
}

func TestResearchWordCountBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		count   int
		reject  bool
		reason  string
		penalty int
	}{
		{name: "just under floor", count: 159, reject: true, reason: ReasonTooShort},
		{name: "exact floor", count: 160},
		{name: "exact target", count: 200},
		{name: "halfway into overage", count: 225, penalty: 5},
		{name: "exact ceiling", count: 250, penalty: shortRewardGold},
		{name: "just past ceiling", count: 251, reject: true, reason: ReasonOverLocked},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tg := newTestGame(t)
			tg.g.State().Research.TasksCompleted = 2
			created := tg.g.ResearchEngine().Create("Boundary check", ResearchShort, "", "")
			if created.Rejected {
				t.Fatalf("setup create rejected: %s", created.Reason)
			}

			out := tg.g.ResearchEngine().Complete(created.Item.ID, tc.count)
			if tc.reject {
				if !out.Rejected || out.Reason != tc.reason {
					t.Fatalf("count %d: got %+v, want rejection %q", tc.count, out.Outcome, tc.reason)
				}
				if created.Item.Completed {
					t.Fatalf("rejected item must stay open")
				}
				return
			}
			if out.Rejected {
				t.Fatalf("count %d rejected: %s", tc.count, out.Reason)
			}
			if out.GoldPenalty != tc.penalty {
				t.Fatalf("count %d: penalty = %d, want %d", tc.count, out.GoldPenalty, tc.penalty)
			}
			if !created.Item.Completed || created.Item.WordCount != tc.count {
				t.Fatalf("item not marked complete: %+v", created.Item)
			}
		})
	}
}

func TestCompleteResearchPaysPlayerAndSkill(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	tg.g.State().Research.TasksCompleted = 2
	created, err := tg.g.CreateResearch(ctx, "Long form", ResearchLong, "writing", "")
	if err != nil {
		t.Fatalf("CreateResearch: %v", err)
	}

	out, err := tg.g.CompleteResearch(ctx, created.Item.ID, longWordTarget)
	if err != nil {
		t.Fatalf("CompleteResearch: %v", err)
	}
	if out.Rejected {
		t.Fatalf("unexpected rejection: %s", out.Reason)
	}
	p := tg.g.State().Player
	if p.XP != longRewardXP || p.Gold != longRewardGold {
		t.Fatalf("player got %d/%d, want %d/%d", p.XP, p.Gold, longRewardXP, longRewardGold)
	}
	sk := tg.g.State().Skills["writing"]
	if sk == nil {
		t.Fatalf("linked skill never credited")
	}
	// 60 xp against the 50-xp requirement levels the skill once.
	if sk.Level != 2 || sk.XP != 10 {
		t.Fatalf("skill level/xp = %d/%v, want 2/10", sk.Level, sk.XP)
	}
}

func TestCompleteResearchAppliesPenaltyToGold(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	tg.g.State().Research.TasksCompleted = 2
	created, err := tg.g.CreateResearch(ctx, "Rambling", ResearchShort, "", "")
	if err != nil {
		t.Fatalf("CreateResearch: %v", err)
	}

	out, err := tg.g.CompleteResearch(ctx, created.Item.ID, 225)
	if err != nil {
		t.Fatalf("CompleteResearch: %v", err)
	}
	if out.GoldPenalty != 5 {
		t.Fatalf("penalty = %d, want 5", out.GoldPenalty)
	}
	if got := tg.g.State().Player.Gold; got != shortRewardGold-5 {
		t.Fatalf("gold = %d, want %d", got, shortRewardGold-5)
	}
}

func TestCompleteResearchTwiceRejected(t *testing.T) {
	tg := newTestGame(t)

	tg.g.State().Research.TasksCompleted = 2
	r := tg.g.ResearchEngine()
	created := r.Create("Once only", ResearchShort, "", "")
	if out := r.Complete(created.Item.ID, shortWordTarget); out.Rejected {
		t.Fatalf("first completion rejected: %s", out.Reason)
	}
	if out := r.Complete(created.Item.ID, shortWordTarget); !out.Rejected {
		t.Fatalf("second completion must be rejected")
	}
}

func TestDeleteResearchAdjustsTotals(t *testing.T) {
	tg := newTestGame(t)

	st := &tg.g.State().Research
	st.TasksCompleted = 4
	r := tg.g.ResearchEngine()

	open := r.Create("Open", ResearchShort, "", "")
	done := r.Create("Done", ResearchShort, "", "")
	r.Complete(done.Item.ID, shortWordTarget)

	if st.ResearchTotal != 2 || st.ResearchDone != 1 {
		t.Fatalf("totals = %d/%d, want 2/1", st.ResearchTotal, st.ResearchDone)
	}
	r.Delete(open.Item.ID)
	if st.ResearchTotal != 1 {
		t.Fatalf("deleting an open item must decrement the total, got %d", st.ResearchTotal)
	}
	r.Delete(done.Item.ID)
	if st.ResearchDone != 0 {
		t.Fatalf("deleting a done item must decrement the done count, got %d", st.ResearchDone)
	}
	if out := r.Delete(99); !out.Rejected {
		t.Fatalf("deleting a missing id must be rejected")
	}
}
