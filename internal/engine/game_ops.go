package engine

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Meditate runs one recovery cycle through the meditation engine and
// feeds the result into missions and persistence.
func (g *Game) Meditate(ctx context.Context) (MeditateOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := g.meditation.Meditate()
	if out.Rejected {
		g.notify.Notify(out.Reason)
		return out, nil
	}
	g.audio.PlayCue(CueMeditate)
	g.applyMissions(Meditated{CyclesDone: out.CyclesDone})
	g.notify.Notify(out.Message)
	if err := g.persist(ctx); err != nil {
		return out, err
	}
	g.publish()
	return out, nil
}

// CreateResearch opens a research item behind the 2:1 quota gate.
func (g *Game) CreateResearch(ctx context.Context, title string, typ ResearchType, skill, taskRef string) (CreateResearchOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := g.research.Create(title, typ, skill, taskRef)
	if out.Rejected {
		g.notify.Notify(fmt.Sprintf("%s (ratio %.2f, need %.0f:1)", out.Reason, g.research.Ratio(), researchRatioRequired))
		return out, nil
	}
	if err := g.persist(ctx); err != nil {
		return out, err
	}
	g.publish()
	return out, nil
}

// CompleteResearch validates the word count and pays out; the linked
// skill's reward crosses back into the orchestrator's skill table.
func (g *Game) CompleteResearch(ctx context.Context, id, finalCount int) (CompleteResearchOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := g.research.Complete(id, finalCount)
	if out.Rejected {
		g.notify.Notify(out.Reason)
		return out, nil
	}

	g.st.Player.XP += out.XP
	g.st.Player.Gold += out.Gold - out.GoldPenalty
	if out.GoldPenalty > 0 {
		g.notify.Notify(fmt.Sprintf("Ran long past the target: %d gold forfeited.", out.GoldPenalty))
	}
	if out.SkillName != "" {
		g.awardSkillXP(g.skill(out.SkillName), float64(out.SkillXP))
	}
	g.analytics.recordCompletion(out.XP, out.Gold-out.GoldPenalty)
	g.applyMissions(ResearchCompleted{Words: finalCount})
	g.checkLevelUp()

	if err := g.persist(ctx); err != nil {
		return out, err
	}
	g.audio.PlayCue(CueSuccess)
	g.publish()
	return out, nil
}

// DeleteResearch removes a research item.
func (g *Game) DeleteResearch(ctx context.Context, id int) (DeleteResearchOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := g.research.Delete(id)
	if out.Rejected {
		return out, nil
	}
	if err := g.persist(ctx); err != nil {
		return out, err
	}
	g.publish()
	return out, nil
}

// CreateChain starts a new ordered quest sequence.
func (g *Game) CreateChain(ctx context.Context, name string, taskNames []string) (CreateChainOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := g.chains.Create(name, taskNames)
	if out.Rejected {
		g.notify.Notify(out.Reason)
		return out, nil
	}
	if err := g.persist(ctx); err != nil {
		return out, err
	}
	g.publish()
	return out, nil
}

// BreakChain ends the active chain early with a prorated bonus.
func (g *Game) BreakChain(ctx context.Context) (BreakOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := g.chains.Break()
	if out.Rejected {
		g.notify.Notify(out.Reason)
		return out, nil
	}
	g.st.Player.XP += out.BonusXP
	g.st.Player.Gold += out.BonusGold
	g.analytics.recordBonus(out.BonusXP, out.BonusGold)
	if out.BonusGold > 0 {
		g.applyMissions(GoldEarned{Amount: out.BonusGold})
	}
	g.checkLevelUp()
	g.notify.Notify(fmt.Sprintf("Chain %q broken at %d/%d. Kept +%d xp, +%d gold.", out.Name, out.Done, out.Total, out.BonusXP, out.BonusGold))
	if err := g.persist(ctx); err != nil {
		return out, err
	}
	g.publish()
	return out, nil
}

// DefeatBoss resolves a boss milestone fight.
func (g *Game) DefeatBoss(ctx context.Context, level int) (DefeatBossOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := g.analytics.DefeatBoss(level)
	if out.Rejected {
		g.notify.Notify(out.Reason)
		return out, nil
	}
	g.st.Player.XP += out.RewardXP
	g.checkLevelUp()
	g.notify.Notify(fmt.Sprintf("%s falls. +%d xp.", out.Name, out.RewardXP))
	if out.Won {
		g.notify.Notify("The boulder rests at the summit. You have won.")
	}
	if err := g.persist(ctx); err != nil {
		return out, err
	}
	g.audio.PlayCue(CueSuccess)
	g.publish()
	return out, nil
}

// Shield and rest-day windows, bought with gold at the day's prices.
const (
	shieldCost     = 50
	shieldDuration = 24 * time.Hour

	restDayCost     = 30
	restDayDuration = 24 * time.Hour
)

type WindowOutcome struct {
	Outcome
	Cost  int
	Until time.Time
}

// ActivateShield buys a one-failure shield window.
func (g *Game) ActivateShield(ctx context.Context) (WindowOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buyWindow(ctx, shieldCost, shieldDuration, &g.st.Player.ShieldUntil, "Shield raised")
}

// ActivateRestDay buys a rest window: failures are no-ops and rust
// pauses, but high-stakes creation is blocked.
func (g *Game) ActivateRestDay(ctx context.Context) (WindowOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buyWindow(ctx, restDayCost, restDayDuration, &g.st.Player.RestDayUntil, "Rest day declared")
}

func (g *Game) buyWindow(ctx context.Context, cost int, d time.Duration, until *time.Time, label string) (WindowOutcome, error) {
	now := g.clock.Now()
	if now.Before(*until) {
		return WindowOutcome{Outcome: reject("already active"), Until: *until}, nil
	}
	price := int(math.Round(float64(cost) * g.Modifier().PriceMult))
	if g.st.Player.Gold < price {
		return WindowOutcome{Outcome: reject(fmt.Sprintf("need %d gold", price))}, nil
	}
	g.st.Player.Gold -= price
	*until = now.Add(d)
	g.notify.Notify(fmt.Sprintf("%s until %s (-%d gold).", label, until.Format(time.Kitchen), price))
	if err := g.persist(ctx); err != nil {
		return WindowOutcome{Cost: price, Until: *until}, err
	}
	g.publish()
	return WindowOutcome{Cost: price, Until: *until}, nil
}

// TagTask stores a filter record for a quest and persists.
func (g *Game) TagTask(ctx context.Context, taskName, energy, contextTag string, tags []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.filters.Tag(taskName, energy, contextTag, tags)
	if err := g.persist(ctx); err != nil {
		return err
	}
	g.publish()
	return nil
}

// SetActiveFilter updates the active selection dimensions; empty
// strings leave a dimension untouched.
func (g *Game) SetActiveFilter(ctx context.Context, energy, contextTag string, toggleTags []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if energy != "" {
		g.filters.SetEnergy(energy)
	}
	if contextTag != "" {
		g.filters.SetContext(contextTag)
	}
	for _, t := range toggleTags {
		g.filters.ToggleTag(t)
	}
	if err := g.persist(ctx); err != nil {
		return err
	}
	g.publish()
	return nil
}

// OutstandingFiltered lists outstanding quests that pass the active
// filter.
func (g *Game) OutstandingFiltered(ctx context.Context) ([]TaskRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	recs, err := g.files.Outstanding(ctx)
	if err != nil {
		return nil, fmt.Errorf("list outstanding quests: %w", err)
	}
	var out []TaskRecord
	for _, r := range recs {
		if g.filters.Matches(r.Meta.Title) {
			out = append(out, r)
		}
	}
	return out, nil
}
