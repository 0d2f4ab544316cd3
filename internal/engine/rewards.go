package engine

import "math"

// Numeric tuning for the whole progression curve. Kept in one place so
// the balance can be read top to bottom.
const (
	startHealth  = 100
	baseXPToNext = 100

	// Level-up effects.
	xpGrowth          = 1.2
	levelUpHealthGain = 5
	levelUpRivalGain  = 2

	// Failure damage.
	baseFailDamage = 10
	debtThreshold  = -100
	damageCeiling  = 50

	// Daily rollover.
	rotDamagePerDay = 5
	dailyHeal       = 10
	historyDays     = 14

	// Skills.
	skillBaseXPToNext = 50
	skillXPGrowth     = 1.15
	rustGraceDays     = 3
	rustCostStep      = 0.10

	// Quest payouts.
	bossRewardXP       = 150
	bossRewardGold     = 75
	highStakesGoldMult = 3

	// Rebirth.
	legacyDecay = 0.9

	// Research.
	shortWordTarget       = 200
	longWordTarget        = 500
	wordFloorRatio        = 0.80
	wordCeilingRatio      = 1.25
	researchRatioRequired = 2.0
	shortRewardXP         = 25
	shortRewardGold       = 10
	longRewardXP          = 60
	longRewardGold        = 25

	// Chains.
	chainMinTasks  = 2
	chainBonusXP   = 100
	chainBonusGold = 50

	// Missions and modifiers.
	missionsPerDay        = 3
	defaultModifierChance = 0.5
	modifierTaxRate       = 0.05
)

// QuestReward computes the frozen payout for a new quest. Rewards are
// proportional to the current level-up requirement so quests keep pace
// with the player; bosses pay a flat bounty instead.
func QuestReward(d Difficulty, xpToNext int, highStakes, boss bool) (xp, gold int) {
	if boss {
		xp, gold = bossRewardXP, bossRewardGold
	} else {
		xp = int(math.Round(float64(xpToNext) * d.rewardShare()))
		if xp < 1 {
			xp = 1
		}
		gold = xp / 2
	}
	if highStakes {
		gold *= highStakesGoldMult
	}
	return xp, gold
}

// NextLevelRequirement grows the XP requirement after a level-up.
func NextLevelRequirement(current int) int {
	return int(math.Ceil(float64(current) * xpGrowth))
}

// skillRequirement is the effective XP a skill needs to level, raised
// by 10% per rust stack.
func skillRequirement(s *Skill) float64 {
	return float64(s.XPToNext) * (1.0 + rustCostStep*float64(s.Rust))
}

// LegacyPayout converts a run into carried-over currency. The decay
// factor is 0.9^deaths, counting deaths before this one.
func LegacyPayout(level, gold, deaths int) int {
	base := float64(level * 10)
	if gold > 0 {
		base += float64(gold)
	}
	return int(math.Round(base * math.Pow(legacyDecay, float64(deaths))))
}

func seedBossMilestones() []BossMilestone {
	return []BossMilestone{
		{Level: 5, Name: "The Procrastinator", RewardXP: 50},
		{Level: 10, Name: "The Doubt", RewardXP: 100},
		{Level: 20, Name: "The Burnout", RewardXP: 200},
		{Level: 40, Name: "The Boulder", RewardXP: 400},
	}
}

// finalBossLevel is the milestone whose defeat wins the run.
const finalBossLevel = 40
