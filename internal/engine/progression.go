package engine

import (
	"context"
	"fmt"
	"math"
	"time"
)

type CompleteTaskOutcome struct {
	Outcome
	Title          string
	XP             int
	Gold           int
	LevelUp        bool
	Level          int
	SkillLevels    int
	ChainAdvanced  bool
	ChainCompleted bool
	Died           bool
}

// CompleteTask resolves a quest completion: chain order, modifier
// multipliers, skill rewards, level-ups, mission progress, the
// research ratio, and finally archival of the underlying record.
func (g *Game) CompleteTask(ctx context.Context, id string) (CompleteTaskOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.meditation.LockedDown() {
		g.notify.Notify(ReasonLockedDown)
		return CompleteTaskOutcome{Outcome: reject(ReasonLockedDown)}, nil
	}

	rec, err := g.files.Get(ctx, id)
	if err != nil {
		return CompleteTaskOutcome{}, fmt.Errorf("read quest %s: %w", id, err)
	}
	meta := rec.Meta
	out := CompleteTaskOutcome{Title: meta.Title}

	// Chain order is checked before anything is paid out.
	if g.chains.Contains(meta.Title) {
		if !g.chains.CanStart(meta.Title) {
			g.notify.Notify(fmt.Sprintf("%q is not next in the chain (%s)", meta.Title, g.chains.Describe()))
			return CompleteTaskOutcome{Outcome: reject(ReasonNotNextInChain), Title: meta.Title}, nil
		}
		adv := g.chains.Advance(meta.Title)
		out.ChainAdvanced = true
		g.applyMissions(ChainAdvanced{Completed: adv.Completed})
		if adv.Completed {
			out.ChainCompleted = true
			g.st.Player.XP += adv.BonusXP
			g.st.Player.Gold += adv.BonusGold
			g.analytics.recordChainCompleted()
			g.analytics.recordBonus(adv.BonusXP, adv.BonusGold)
			g.applyMissions(GoldEarned{Amount: adv.BonusGold})
			g.notify.Notify(fmt.Sprintf("Chain complete! +%d xp, +%d gold", adv.BonusXP, adv.BonusGold))
		}
	}

	mod := g.Modifier()
	xp := int(math.Round(float64(meta.XP) * mod.XPMult))
	gold := int(math.Round(float64(meta.Gold) * mod.GoldMult))
	out.XP, out.Gold = xp, gold

	g.st.Player.XP += xp
	g.st.Player.Gold += gold

	if meta.Skill != "" {
		out.SkillLevels += g.useSkill(meta.Skill, xp)
	}
	if meta.Skill2 != "" && meta.Skill != "" {
		out.SkillLevels += g.synergyBonus(meta.Skill, meta.Skill2)
	}

	if mod.HealthCost > 0 {
		g.st.Player.Health -= mod.HealthCost
		if g.st.Player.Health <= 0 {
			g.st.Player.Health = 0
		}
	}

	g.st.Player.TasksDoneToday++
	g.research.recordTaskCompletion()
	g.analytics.recordCompletion(xp, gold)
	g.recordDaySummary(xp)

	g.applyMissions(TaskCompleted{Difficulty: meta.Difficulty, Skill: meta.Skill, XP: xp, Gold: gold})
	if gold > 0 {
		g.applyMissions(GoldEarned{Amount: gold})
	}

	out.LevelUp = g.checkLevelUp()
	out.Level = g.st.Player.Level

	if g.st.Player.Health == 0 {
		g.rebirthLocked()
		out.Died = true
	}

	g.filters.forget(meta.Title)
	if err := g.files.Archive(ctx, id); err != nil {
		return out, fmt.Errorf("archive quest %s: %w", id, err)
	}
	if err := g.persist(ctx); err != nil {
		return out, err
	}
	g.audio.PlayCue(CueSuccess)
	g.publish()
	return out, nil
}

// checkLevelUp resolves pending level-ups. Experience resets on each
// level (overflow is discarded, as the curve intends a clean slate),
// health refills to the raised maximum, and the rival grows with you.
func (g *Game) checkLevelUp() bool {
	p := &g.st.Player
	leveled := false
	for p.XP >= p.XPToNext {
		p.Level++
		p.XP = 0
		p.XPToNext = NextLevelRequirement(p.XPToNext)
		p.MaxHealth += levelUpHealthGain
		p.Health = p.MaxHealth
		p.RivalDamage += levelUpRivalGain
		leveled = true
		g.notify.Notify(fmt.Sprintf("Level up! You are now level %d.", p.Level))
		for _, msg := range g.analytics.CheckBossMilestones(p.Level) {
			g.notify.Notify(msg)
		}
	}
	return leveled
}

type FailTaskOutcome struct {
	Outcome
	Title           string
	Damage          int
	Shielded        bool
	RestDay         bool
	LockdownEngaged bool
	Died            bool
}

// FailTask resolves a quest failure. Rest days absorb it entirely; a
// shield absorbs one hit; otherwise damage scales with the rival and
// doubles under crushing debt.
func (g *Game) FailTask(ctx context.Context, id string, manual bool) (FailTaskOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.failLocked(ctx, id, manual)
}

func (g *Game) failLocked(ctx context.Context, id string, manual bool) (FailTaskOutcome, error) {
	rec, err := g.files.Get(ctx, id)
	if err != nil {
		return FailTaskOutcome{}, fmt.Errorf("read quest %s: %w", id, err)
	}
	out := FailTaskOutcome{Title: rec.Meta.Title}
	now := g.clock.Now()
	p := &g.st.Player

	if now.Before(p.RestDayUntil) {
		out.RestDay = true
		return out, nil
	}
	if now.Before(p.ShieldUntil) {
		p.ShieldUntil = time.Time{}
		out.Shielded = true
		if manual {
			g.notify.Notify("The shield takes the blow.")
		}
		if err := g.archiveAndPersist(ctx, id, rec.Meta.Title); err != nil {
			return out, err
		}
		g.publish()
		return out, nil
	}

	damage := baseFailDamage + p.RivalDamage/2
	if p.Gold < debtThreshold {
		damage *= 2
	}
	out.Damage = damage

	p.Health -= damage
	if p.Health < 0 {
		p.Health = 0
	}
	p.DamageToday += damage
	if !manual {
		p.RivalDamage++
	}

	g.analytics.recordFailure(damage)
	g.applyMissions(TaskFailed{Damage: damage})
	g.notify.Notify(g.taunt())
	g.audio.PlayCue(CueFail)

	if p.DamageToday > damageCeiling && !g.meditation.LockedDown() {
		g.meditation.beginLockdown()
		out.LockdownEngaged = true
		g.notify.Notify(fmt.Sprintf("Too much damage today. Locked down until %s.", g.st.Meditation.LockdownUntil.Format(time.Kitchen)))
		g.audio.PlayCue(CueHeartbeat)
	}

	if p.Health == 0 {
		g.rebirthLocked()
		out.Died = true
	}

	if err := g.archiveAndPersist(ctx, id, rec.Meta.Title); err != nil {
		return out, err
	}
	g.publish()
	return out, nil
}

func (g *Game) archiveAndPersist(ctx context.Context, id, title string) error {
	g.filters.forget(title)
	if err := g.files.Archive(ctx, id); err != nil {
		return fmt.Errorf("archive quest %s: %w", id, err)
	}
	return g.persist(ctx)
}

type CreateTaskInput struct {
	Title      string
	Difficulty Difficulty
	Skill      string
	Skill2     string
	Deadline   *time.Time
	HighStakes bool
	Boss       bool
}

type CreateTaskOutcome struct {
	Outcome
	ID   string
	XP   int
	Gold int
}

// CreateTask freezes the reward schedule into a new quest record and
// delegates file creation to the store.
func (g *Game) CreateTask(ctx context.Context, in CreateTaskInput) (CreateTaskOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.meditation.LockedDown() {
		return CreateTaskOutcome{Outcome: reject(ReasonLockedDown)}, nil
	}
	if in.HighStakes && g.clock.Now().Before(g.st.Player.RestDayUntil) {
		return CreateTaskOutcome{Outcome: reject(ReasonRestDay)}, nil
	}
	if !in.Difficulty.IsValid() {
		in.Difficulty = DefaultDifficulty
	}

	xp, gold := QuestReward(in.Difficulty, g.st.Player.XPToNext, in.HighStakes, in.Boss)
	meta := TaskMeta{
		Title:      in.Title,
		XP:         xp,
		Gold:       gold,
		Skill:      in.Skill,
		Skill2:     in.Skill2,
		Difficulty: in.Difficulty,
		Deadline:   in.Deadline,
		HighStakes: in.HighStakes,
		Boss:       in.Boss,
		CreatedAt:  g.clock.Now(),
	}
	id, err := g.files.Create(ctx, meta)
	if err != nil {
		return CreateTaskOutcome{}, fmt.Errorf("create quest: %w", err)
	}
	g.publish()
	return CreateTaskOutcome{ID: id, XP: xp, Gold: gold}, nil
}

type DeleteTaskOutcome struct {
	Outcome
	Cost int
}

// DeleteTask removes a quest record. A few deletions per day are free;
// the rest cost gold, scaled by the day's price modifier.
func (g *Game) DeleteTask(ctx context.Context, id string) (DeleteTaskOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, err := g.files.Get(ctx, id)
	if err != nil {
		return DeleteTaskOutcome{}, fmt.Errorf("read quest %s: %w", id, err)
	}
	cost := g.meditation.DeletionCost()
	if cost > 0 {
		cost = int(math.Round(float64(cost) * g.Modifier().PriceMult))
		g.st.Player.Gold -= cost
	}
	g.filters.forget(rec.Meta.Title)
	if err := g.files.Delete(ctx, id); err != nil {
		return DeleteTaskOutcome{}, fmt.Errorf("delete quest %s: %w", id, err)
	}
	if err := g.persist(ctx); err != nil {
		return DeleteTaskOutcome{Cost: cost}, err
	}
	g.publish()
	return DeleteTaskOutcome{Cost: cost}, nil
}

type RolloverOutcome struct {
	Outcome
	AlreadyRolled bool
	MissedDays    int
	RotDamage     int
	Streak        int
	Modifier      Modifier
	Died          bool
}

// RollDailyLogin performs the once-per-day rollover: rot damage for
// missed days, counter resets, partial heal, lockdown clear, rust
// accrual, a fresh mission draw, and the day's modifier roll.
func (g *Game) RollDailyLogin(ctx context.Context) (RolloverOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	today := DayKey(now)
	p := &g.st.Player

	if DayKey(p.LastLogin) == today {
		return RolloverOutcome{AlreadyRolled: true}, nil
	}

	out := RolloverOutcome{}
	out.MissedDays = int(now.Sub(p.LastLogin).Hours() / 24)
	if out.MissedDays > 1 {
		out.RotDamage = rotDamagePerDay * (out.MissedDays - 1)
		p.Health -= out.RotDamage
		if p.Health < 0 {
			p.Health = 0
		}
		g.notify.Notify(fmt.Sprintf("%d days away. Rot takes %d health.", out.MissedDays, out.RotDamage))
	}

	p.TasksDoneToday = 0
	p.SkillUseToday = map[string]int{}
	p.DamageToday = 0

	p.Health += dailyHeal
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}

	g.meditation.rollover()

	if !now.Before(p.RestDayUntil) {
		g.advanceRust()
	}

	if g.st.Missions.Date != today {
		g.st.Missions = drawMissions(g.rng, today)
	}

	out.Modifier = g.rollModifierLocked(true)
	out.Streak = g.analytics.UpdateStreak()
	g.analytics.PruneDays(90 * 24 * time.Hour)
	p.LastLogin = now

	if p.Health == 0 {
		g.rebirthLocked()
		out.Died = true
	}

	if err := g.persist(ctx); err != nil {
		return out, err
	}
	g.publish()
	return out, nil
}

// RollModifier draws a fresh daily modifier on demand.
func (g *Game) RollModifier(ctx context.Context, showNotification bool) (Modifier, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	mod := g.rollModifierLocked(showNotification)
	if err := g.persist(ctx); err != nil {
		return mod, err
	}
	g.publish()
	return mod, nil
}

func (g *Game) rollModifierLocked(show bool) Modifier {
	mod := rollModifier(g.rng)
	g.st.Player.ModifierName = mod.Name
	if mod.TaxesGold {
		before := g.st.Player.Gold
		g.st.Player.Gold = applyTax(g.st.Player.Gold)
		if show && before != g.st.Player.Gold {
			g.notify.Notify(fmt.Sprintf("Tax Day: the collector takes %d gold.", before-g.st.Player.Gold))
		}
	}
	if show {
		g.notify.Notify(fmt.Sprintf("%s Today: %s — %s", mod.Icon, mod.Name, mod.Desc))
	}
	return mod
}

type RebirthOutcome struct {
	Payout int
	Deaths int
}

// TriggerRebirth converts the run into legacy currency and starts
// over. Exposed for the explicit command; death paths call the same
// internal transition.
func (g *Game) TriggerRebirth(ctx context.Context) (RebirthOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.rebirthLocked()
	if err := g.persist(ctx); err != nil {
		return out, err
	}
	g.publish()
	return out, nil
}

// rebirthLocked resets all per-run state. The legacy payout decays by
// 0.9 per prior death; the meditation windows are cleared so nothing
// leaks into the fresh run.
func (g *Game) rebirthLocked() RebirthOutcome {
	p := &g.st.Player
	payout := LegacyPayout(p.Level, p.Gold, p.Legacy.Deaths)
	legacy := Legacy{
		Currency: p.Legacy.Currency + payout,
		Deaths:   p.Legacy.Deaths + 1,
	}

	now := g.clock.Now()
	g.st.Player = newPlayerState(now)
	g.st.Player.Legacy = legacy
	g.st.Skills = map[string]*Skill{}
	g.st.Research = ResearchState{}
	g.st.Chains = ChainsState{}
	g.st.Missions = MissionsState{}
	g.st.Filters = FilterState{
		Tasks:  map[string]TaskFilter{},
		Active: ActiveFilter{Energy: FilterAny, Context: FilterAny},
	}
	for i := range g.st.Analytics.Bosses {
		g.st.Analytics.Bosses[i].Unlocked = false
		g.st.Analytics.Bosses[i].Defeated = false
		g.st.Analytics.Bosses[i].DefeatedAt = time.Time{}
	}
	g.st.Analytics.Won = false
	g.meditation.Reset()

	g.notify.Notify(fmt.Sprintf("You fall. The boulder rolls back. +%d legacy (death %d).", payout, legacy.Deaths))
	g.audio.PlayCue(CueDeath)
	return RebirthOutcome{Payout: payout, Deaths: legacy.Deaths}
}

type SweepOutcome struct {
	Failed []string
}

// SweepDeadlines fails every outstanding quest whose deadline has
// passed. Driven by a periodic external trigger; the Game mutex
// serializes it with any in-flight completion or failure.
func (g *Game) SweepDeadlines(ctx context.Context) (SweepOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	recs, err := g.files.Outstanding(ctx)
	if err != nil {
		return SweepOutcome{}, fmt.Errorf("list outstanding quests: %w", err)
	}
	now := g.clock.Now()
	var out SweepOutcome
	for _, rec := range recs {
		if rec.Meta.Deadline == nil || !rec.Meta.Deadline.Before(now) {
			continue
		}
		g.notify.Notify(fmt.Sprintf("Deadline passed: %q", rec.Meta.Title))
		if _, err := g.failLocked(ctx, rec.ID, false); err != nil {
			return out, err
		}
		out.Failed = append(out.Failed, rec.Meta.Title)
	}
	return out, nil
}

// recordDaySummary keeps the rolling daily history on the player.
func (g *Game) recordDaySummary(xp int) {
	today := DayKey(g.clock.Now())
	p := &g.st.Player
	if n := len(p.History); n > 0 && p.History[n-1].Date == today {
		p.History[n-1].TasksDone++
		p.History[n-1].XPEarned += xp
		return
	}
	p.History = append(p.History, DaySummary{Date: today, TasksDone: 1, XPEarned: xp})
	if len(p.History) > historyDays {
		p.History = p.History[len(p.History)-historyDays:]
	}
}

var taunts = []string{
	"The rival grins.",
	"The boulder slips an inch.",
	"That one stings.",
	"Tomorrow it costs more.",
	"The hill does not care.",
}

func (g *Game) taunt() string {
	return taunts[g.rng.IntN(len(taunts))]
}
