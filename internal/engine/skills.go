package engine

import (
	"math"
	"sort"
	"time"
)

// skill returns the named skill, creating it on demand. Skills are
// player-defined; the engine never seeds them.
func (g *Game) skill(name string) *Skill {
	s, ok := g.st.Skills[name]
	if !ok {
		s = &Skill{Name: name, Level: 1, XPToNext: skillBaseXPToNext}
		g.st.Skills[name] = s
	}
	return s
}

// awardSkillXP adds experience to a skill and resolves any level-ups
// against the rust-adjusted requirement. Returns the number of levels
// gained.
func (g *Game) awardSkillXP(s *Skill, xp float64) int {
	s.XP += xp
	s.LastUsed = g.clock.Now()
	levels := 0
	for s.XP >= skillRequirement(s) {
		s.XP -= skillRequirement(s)
		s.Level++
		s.XPToNext = int(math.Ceil(float64(s.XPToNext) * skillXPGrowth))
		levels++
		g.analytics.recordSkillLevel()
	}
	return levels
}

// useSkill is the primary-skill path on a completion: using a skill
// clears its rust, discounting the level-up cost back to baseline.
func (g *Game) useSkill(name string, xp int) int {
	s := g.skill(name)
	s.Rust = 0
	g.st.Player.SkillUseToday[name]++
	return g.awardSkillXP(s, float64(xp))
}

// synergyBonus is the secondary-skill path: half the skill's own level
// as bonus experience, kept fractional, plus a one-time synergy link
// recorded on the primary skill.
func (g *Game) synergyBonus(primary, secondary string) int {
	s := g.skill(secondary)
	bonus := float64(s.Level) / 2
	levels := g.awardSkillXP(s, bonus)

	p := g.skill(primary)
	if p.Synergy == nil {
		p.Synergy = map[string]bool{}
	}
	if !p.Synergy[secondary] {
		p.Synergy[secondary] = true
	}
	return levels
}

// advanceRust adds a rust stack to every skill unused beyond the grace
// period. Called at rollover, skipped during a rest window.
func (g *Game) advanceRust() {
	now := g.clock.Now()
	for _, s := range g.st.Skills {
		if s.LastUsed.IsZero() {
			continue
		}
		if now.Sub(s.LastUsed) > rustGraceDays*24*time.Hour {
			s.Rust++
		}
	}
}

// SkillsByLevel returns skills sorted by level descending, names
// ascending on ties.
func (g *Game) SkillsByLevel() []*Skill {
	out := make([]*Skill, 0, len(g.st.Skills))
	for _, s := range g.st.Skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level > out[j].Level
		}
		return out[i].Name < out[j].Name
	})
	return out
}
