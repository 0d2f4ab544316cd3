package engine

import (
	"context"
	"testing"
)

func TestRollModifierDistribution(t *testing.T) {
	if m := rollModifier(&stubRNG{floats: []float64{0.49}}); m.Name != defaultModifier.Name {
		t.Fatalf("low roll must yield the default, got %s", m.Name)
	}
	m := rollModifier(&stubRNG{floats: []float64{0.9}, ints: []int{1}})
	if m.Name != "Gold Rush" {
		t.Fatalf("high roll picks from the table, got %s", m.Name)
	}
}

func TestModifierByNameFallback(t *testing.T) {
	if m := ModifierByName("Muse's Favor"); m.XPMult != 2 {
		t.Fatalf("known modifier not resolved: %+v", m)
	}
	if m := ModifierByName("Forgotten Omen"); m.Name != defaultModifier.Name {
		t.Fatalf("unknown names must fall back to the default, got %s", m.Name)
	}
}

func TestModifierMultipliesRewards(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	tg.g.State().Player.ModifierName = "Muse's Favor"
	id := tg.addQuest(t, TaskMeta{Title: "Inspired", XP: 10, Gold: 4})
	out, err := tg.g.CompleteTask(ctx, id)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if out.XP != 20 || out.Gold != 4 {
		t.Fatalf("got %d/%d, want doubled xp 20 and plain gold 4", out.XP, out.Gold)
	}
}

func TestIronPriceCostsHealth(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	tg.g.State().Player.ModifierName = "Iron Price"
	id := tg.addQuest(t, TaskMeta{Title: "Paid in blood", XP: 10})
	out, err := tg.g.CompleteTask(ctx, id)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if out.XP != 15 {
		t.Fatalf("xp = %d, want 15", out.XP)
	}
	if got := tg.g.State().Player.Health; got != startHealth-2 {
		t.Fatalf("health = %d, want %d", got, startHealth-2)
	}
}

func TestTaxDayTakesACut(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	tg.g.State().Player.Gold = 100
	tg.rng.floats = []float64{0.9}
	tg.rng.ints = []int{3} // Tax Day

	mod, err := tg.g.RollModifier(ctx, false)
	if err != nil {
		t.Fatalf("RollModifier: %v", err)
	}
	if mod.Name != "Tax Day" {
		t.Fatalf("rolled %s, want Tax Day", mod.Name)
	}
	if got := tg.g.State().Player.Gold; got != 95 {
		t.Fatalf("gold = %d, want 95 after the 5%% tax", got)
	}
}

func TestApplyTaxNeverFree(t *testing.T) {
	if got := applyTax(1); got != 0 {
		t.Fatalf("tax on 1 gold = %d, want it rounded up to a full coin", got)
	}
	if got := applyTax(-20); got != -20 {
		t.Fatalf("debt is not taxed, got %d", got)
	}
}

func TestInflationRaisesPrices(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	tg.g.State().Player.ModifierName = "Inflation"
	tg.g.State().Player.Gold = 200

	out, err := tg.g.ActivateShield(ctx)
	if err != nil {
		t.Fatalf("ActivateShield: %v", err)
	}
	if out.Rejected {
		t.Fatalf("shield rejected: %s", out.Reason)
	}
	if out.Cost != 2*shieldCost {
		t.Fatalf("cost = %d, want doubled %d", out.Cost, 2*shieldCost)
	}
}
