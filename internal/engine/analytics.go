package engine

import (
	"fmt"
	"sort"
	"time"
)

// Analytics owns daily metrics, the login streak, boss milestones and
// the win condition.
type Analytics struct {
	st    *AnalyticsState
	clock Clock
}

func newAnalytics(st *AnalyticsState, clock Clock) *Analytics {
	return &Analytics{st: st, clock: clock}
}

// day returns today's metrics record, created lazily.
func (a *Analytics) day() *DayMetrics {
	key := DayKey(a.clock.Now())
	m, ok := a.st.Days[key]
	if !ok {
		m = &DayMetrics{Date: key}
		a.st.Days[key] = m
	}
	return m
}

func (a *Analytics) recordCompletion(xp, gold int) {
	m := a.day()
	m.TasksCompleted++
	m.XPEarned += xp
	m.GoldEarned += gold
}

func (a *Analytics) recordFailure(damage int) {
	m := a.day()
	m.TasksFailed++
	m.DamageTaken += damage
}

// recordBonus folds windfall rewards (chain bonuses and the like) into
// the day's totals without counting an extra task.
func (a *Analytics) recordBonus(xp, gold int) {
	m := a.day()
	m.XPEarned += xp
	m.GoldEarned += gold
}

func (a *Analytics) recordSkillLevel() {
	a.day().SkillsLeveled++
}

func (a *Analytics) recordChainCompleted() {
	a.day().ChainsCompleted++
}

// UpdateStreak advances the login streak: +1 when yesterday was the
// last active day, otherwise back to 1.
func (a *Analytics) UpdateStreak() int {
	now := a.clock.Now()
	today := DayKey(now)
	if a.st.LastActiveDay == today {
		return a.st.Streak
	}
	yesterday := DayKey(now.AddDate(0, 0, -1))
	if a.st.LastActiveDay == yesterday {
		a.st.Streak++
	} else {
		a.st.Streak = 1
	}
	a.st.LastActiveDay = today
	if a.st.Streak > a.st.LongestStreak {
		a.st.LongestStreak = a.st.Streak
	}
	return a.st.Streak
}

// CheckBossMilestones unlocks every milestone the player's level has
// reached, returning one message per fresh unlock.
func (a *Analytics) CheckBossMilestones(level int) []string {
	var msgs []string
	for i := range a.st.Bosses {
		b := &a.st.Bosses[i]
		if b.Unlocked || level < b.Level {
			continue
		}
		b.Unlocked = true
		msgs = append(msgs, fmt.Sprintf("%s awaits at level %d. Face it when ready.", b.Name, b.Level))
	}
	return msgs
}

type DefeatBossOutcome struct {
	Outcome
	Name     string
	RewardXP int
	Won      bool
}

// DefeatBoss marks a milestone defeated exactly once. Felling the
// final boss wins the run.
func (a *Analytics) DefeatBoss(level int) DefeatBossOutcome {
	for i := range a.st.Bosses {
		b := &a.st.Bosses[i]
		if b.Level != level {
			continue
		}
		if !b.Unlocked {
			return DefeatBossOutcome{Outcome: reject(fmt.Sprintf("%s is not unlocked yet", b.Name))}
		}
		if b.Defeated {
			return DefeatBossOutcome{Outcome: reject(fmt.Sprintf("%s is already defeated", b.Name))}
		}
		b.Defeated = true
		b.DefeatedAt = a.clock.Now()
		if b.Level == finalBossLevel {
			a.st.Won = true
		}
		return DefeatBossOutcome{Name: b.Name, RewardXP: b.RewardXP, Won: a.st.Won}
	}
	return DefeatBossOutcome{Outcome: reject(fmt.Sprintf("no boss at level %d", level))}
}

// WeeklyReport aggregates the current calendar week (Monday-based).
type WeeklyReport struct {
	WeekStart   string
	Completed   int
	Failed      int
	SuccessRate float64
	XPEarned    int
	GoldEarned  int
	DamageTaken int
	TopSkills   []string
	BestDay     string
	WorstDay    string
}

// GenerateWeeklyReport synthesizes the current week's metrics. Skills
// are ranked by level, ties broken by name.
func (a *Analytics) GenerateWeeklyReport(skills map[string]*Skill) WeeklyReport {
	now := a.clock.Now()
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week it ends
	}
	start := now.AddDate(0, 0, -(weekday - 1))

	rep := WeeklyReport{WeekStart: DayKey(start)}
	bestCompleted, worstFailed := -1, -1
	for i := 0; i < 7; i++ {
		key := DayKey(start.AddDate(0, 0, i))
		m, ok := a.st.Days[key]
		if !ok {
			continue
		}
		rep.Completed += m.TasksCompleted
		rep.Failed += m.TasksFailed
		rep.XPEarned += m.XPEarned
		rep.GoldEarned += m.GoldEarned
		rep.DamageTaken += m.DamageTaken
		if m.TasksCompleted > bestCompleted {
			bestCompleted = m.TasksCompleted
			rep.BestDay = key
		}
		if m.TasksFailed > worstFailed {
			worstFailed = m.TasksFailed
			rep.WorstDay = key
		}
	}
	if total := rep.Completed + rep.Failed; total > 0 {
		rep.SuccessRate = float64(rep.Completed) / float64(total)
	}

	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		si, sj := skills[names[i]], skills[names[j]]
		if si.Level != sj.Level {
			return si.Level > sj.Level
		}
		return names[i] < names[j]
	})
	if len(names) > 3 {
		names = names[:3]
	}
	rep.TopSkills = names
	return rep
}

// PruneDays drops metric records older than the retention window so
// the document does not grow without bound.
func (a *Analytics) PruneDays(keep time.Duration) {
	cutoff := DayKey(a.clock.Now().Add(-keep))
	for key := range a.st.Days {
		if key < cutoff {
			delete(a.st.Days, key)
		}
	}
}
