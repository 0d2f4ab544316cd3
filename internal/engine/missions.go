package engine

// MissionDef is a daily objective template. Progress reports how much
// a single event advances the mission; zero means the event is not the
// kind this mission watches.
type MissionDef struct {
	ID         string
	Name       string
	Desc       string
	Target     int
	RewardXP   int
	RewardGold int
	Progress   func(ev Event) int
}

var missionPool = []MissionDef{
	{
		ID: "finish_three", Name: "Clear the Board", Desc: "Complete 3 quests", Target: 3, RewardXP: 30,
		Progress: func(ev Event) int {
			if _, ok := ev.(TaskCompleted); ok {
				return 1
			}
			return 0
		},
	},
	{
		ID: "hard_one", Name: "Heavy Lifting", Desc: "Complete a hard or epic quest", Target: 1, RewardXP: 40,
		Progress: func(ev Event) int {
			if e, ok := ev.(TaskCompleted); ok && e.Difficulty >= DifficultyHard {
				return 1
			}
			return 0
		},
	},
	{
		ID: "earn_gold", Name: "Day Wages", Desc: "Earn 30 gold", Target: 30, RewardXP: 20, RewardGold: 10,
		Progress: func(ev Event) int {
			if e, ok := ev.(GoldEarned); ok {
				return e.Amount
			}
			return 0
		},
	},
	{
		ID: "earn_xp", Name: "Study Hour", Desc: "Earn 60 experience", Target: 60, RewardGold: 15,
		Progress: func(ev Event) int {
			if e, ok := ev.(TaskCompleted); ok {
				return e.XP
			}
			return 0
		},
	},
	{
		ID: "chain_step", Name: "Link by Link", Desc: "Advance a chain", Target: 1, RewardXP: 25,
		Progress: func(ev Event) int {
			if _, ok := ev.(ChainAdvanced); ok {
				return 1
			}
			return 0
		},
	},
	{
		ID: "research_words", Name: "Scribe's Duty", Desc: "Submit 200 research words", Target: 200, RewardXP: 35,
		Progress: func(ev Event) int {
			if e, ok := ev.(ResearchCompleted); ok {
				return e.Words
			}
			return 0
		},
	},
	{
		ID: "breathe", Name: "Inner Calm", Desc: "Complete 5 meditation cycles", Target: 5, RewardXP: 15,
		Progress: func(ev Event) int {
			if _, ok := ev.(Meditated); ok {
				return 1
			}
			return 0
		},
	},
	{
		ID: "untouched", Name: "Unscathed", Desc: "Complete 2 quests without failing any", Target: 2, RewardXP: 25, RewardGold: 10,
		Progress: func(ev Event) int {
			switch ev.(type) {
			case TaskCompleted:
				return 1
			case TaskFailed:
				return -100 // a failure resets progress (clamped to zero below)
			}
			return 0
		},
	},
}

// MissionDefByID resolves a stored mission reference.
func MissionDefByID(id string) (MissionDef, bool) {
	for _, d := range missionPool {
		if d.ID == id {
			return d, true
		}
	}
	return MissionDef{}, false
}

// drawMissions picks missionsPerDay distinct missions from the pool
// (fewer if the pool is smaller).
func drawMissions(rng RNG, date string) MissionsState {
	n := missionsPerDay
	if n > len(missionPool) {
		n = len(missionPool)
	}
	perm := rng.Perm(len(missionPool))
	ms := MissionsState{Date: date}
	for _, idx := range perm[:n] {
		ms.Missions = append(ms.Missions, DailyMission{DefID: missionPool[idx].ID})
	}
	return ms
}

// CompletedMission pairs a finished mission with its definition so the
// caller can pay the reward.
type CompletedMission struct {
	Def MissionDef
}

// applyEvent advances today's missions and returns any that just
// completed. Progress never regresses below zero and completion flips
// exactly once.
func applyEvent(ms *MissionsState, ev Event) []CompletedMission {
	var done []CompletedMission
	for i := range ms.Missions {
		m := &ms.Missions[i]
		if m.Done {
			continue
		}
		def, ok := MissionDefByID(m.DefID)
		if !ok {
			continue
		}
		delta := def.Progress(ev)
		if delta == 0 {
			continue
		}
		m.Progress += delta
		if m.Progress < 0 {
			m.Progress = 0
		}
		if m.Progress >= def.Target {
			m.Progress = def.Target
			m.Done = true
			done = append(done, CompletedMission{Def: def})
		}
	}
	return done
}
