package engine

import (
	"context"
	"testing"
)

func TestFilterMatches(t *testing.T) {
	tg := newTestGame(t)
	f := tg.g.FiltersEngine()

	f.Tag("Deep work", EnergyHigh, ContextHome, []string{"focus"})
	f.Tag("Groceries", EnergyLow, ContextOut, nil)

	if !f.Matches("Never tagged") {
		t.Fatalf("untagged quests always pass")
	}
	if !f.Matches("Deep work") || !f.Matches("Groceries") {
		t.Fatalf("the default any/any filter passes everything")
	}

	f.SetEnergy(EnergyHigh)
	if !f.Matches("Deep work") {
		t.Fatalf("matching energy must pass")
	}
	if f.Matches("Groceries") {
		t.Fatalf("low-energy quest must not pass a high-energy filter")
	}

	f.SetEnergy(FilterAny)
	f.SetContext(ContextOut)
	if f.Matches("Deep work") || !f.Matches("Groceries") {
		t.Fatalf("context dimension not applied")
	}

	f.ClearActive()
	f.ToggleTag("focus")
	if !f.Matches("Deep work") {
		t.Fatalf("overlapping tag must pass")
	}
	if f.Matches("Groceries") {
		t.Fatalf("quest without the active tag must not pass")
	}
	f.ToggleTag("focus")
	if !f.Matches("Groceries") {
		t.Fatalf("toggling the tag off restores the match")
	}
}

func TestOutstandingFiltered(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	tg.addQuest(t, TaskMeta{Title: "Deep work", XP: 10})
	tg.addQuest(t, TaskMeta{Title: "Groceries", XP: 5})

	if err := tg.g.TagTask(ctx, "Deep work", EnergyHigh, ContextHome, nil); err != nil {
		t.Fatalf("TagTask: %v", err)
	}
	if err := tg.g.TagTask(ctx, "Groceries", EnergyLow, ContextOut, nil); err != nil {
		t.Fatalf("TagTask: %v", err)
	}
	if err := tg.g.SetActiveFilter(ctx, EnergyLow, "", nil); err != nil {
		t.Fatalf("SetActiveFilter: %v", err)
	}

	recs, err := tg.g.OutstandingFiltered(ctx)
	if err != nil {
		t.Fatalf("OutstandingFiltered: %v", err)
	}
	if len(recs) != 1 || recs[0].Meta.Title != "Groceries" {
		t.Fatalf("filtered list = %+v, want only Groceries", recs)
	}
}

func TestArchivalForgetsFilterRecord(t *testing.T) {
	tg := newTestGame(t)
	ctx := context.Background()

	id := tg.addQuest(t, TaskMeta{Title: "Done soon", XP: 5})
	if err := tg.g.TagTask(ctx, "Done soon", EnergyLow, ContextHome, nil); err != nil {
		t.Fatalf("TagTask: %v", err)
	}
	if _, err := tg.g.CompleteTask(ctx, id); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if _, ok := tg.g.State().Filters.Tasks["Done soon"]; ok {
		t.Fatalf("completing a quest must drop its filter record")
	}
}
