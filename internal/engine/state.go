package engine

import "time"

// State is the single serializable document holding everything the
// engine owns. It is persisted as one unit; no slice of it is ever
// saved on its own. Each sub-engine is handed only the slice it owns
// and is the sole writer of that slice.
type State struct {
	Player     PlayerState       `json:"player"`
	Skills     map[string]*Skill `json:"skills"`
	Research   ResearchState     `json:"research"`
	Chains     ChainsState       `json:"chains"`
	Meditation MeditationState   `json:"meditation"`
	Analytics  AnalyticsState    `json:"analytics"`
	Filters    FilterState       `json:"filters"`
	Missions   MissionsState     `json:"missions"`
}

type PlayerState struct {
	Health      int `json:"health"`
	MaxHealth   int `json:"maxHealth"`
	XP          int `json:"xp"`
	XPToNext    int `json:"xpToNext"`
	Gold        int `json:"gold"`
	Level       int `json:"level"`
	RivalDamage int `json:"rivalDamage"`

	Legacy Legacy `json:"legacy"`

	// Rolling daily summaries, newest last, capped at historyDays.
	History []DaySummary `json:"history"`

	ModifierName string `json:"modifierName"`

	TasksDoneToday int            `json:"tasksDoneToday"`
	SkillUseToday  map[string]int `json:"skillUseToday"`
	DamageToday    int            `json:"damageToday"`

	ShieldUntil  time.Time `json:"shieldUntil"`
	RestDayUntil time.Time `json:"restDayUntil"`
	LastLogin    time.Time `json:"lastLogin"`
}

// Legacy is carried across rebirths.
type Legacy struct {
	Currency int `json:"currency"`
	Deaths   int `json:"deaths"`
}

type DaySummary struct {
	Date      string `json:"date"`
	TasksDone int    `json:"tasksDone"`
	XPEarned  int    `json:"xpEarned"`
}

type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	// XP is fractional: secondary-skill synergy bonuses award half a
	// level as experience, which is not a whole number at odd levels.
	XP       float64         `json:"xp"`
	XPToNext int             `json:"xpToNext"`
	Rust     int             `json:"rust"`
	LastUsed time.Time       `json:"lastUsed"`
	Synergy  map[string]bool `json:"synergy,omitempty"`
}

type ResearchState struct {
	Items  []*ResearchItem `json:"items"`
	NextID int             `json:"nextId"`
	// Running totals behind the creation gate.
	TasksCompleted int `json:"tasksCompleted"`
	ResearchTotal  int `json:"researchTotal"`
	ResearchDone   int `json:"researchDone"`
}

type ResearchItem struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Type        ResearchType `json:"type"`
	WordTarget  int          `json:"wordTarget"`
	WordCount   int          `json:"wordCount"`
	Skill       string       `json:"skill,omitempty"`
	TaskRef     string       `json:"taskRef,omitempty"`
	Completed   bool         `json:"completed"`
	CompletedAt time.Time    `json:"completedAt,omitempty"`
}

type ChainsState struct {
	Chains  []*Chain      `json:"chains"`
	NextID  int           `json:"nextId"`
	History []ChainRecord `json:"history"`
}

type Chain struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Tasks     []string `json:"tasks"`
	Index     int      `json:"index"`
	Completed bool     `json:"completed"`
	Boss      bool     `json:"boss"`
}

type ChainRecord struct {
	Name   string    `json:"name"`
	Done   int       `json:"done"`
	Total  int       `json:"total"`
	Broken bool      `json:"broken"`
	When   time.Time `json:"when"`
}

type MeditationState struct {
	LockdownUntil time.Time `json:"lockdownUntil"`
	// DebounceUntil rejects breathing cycles stamped too close
	// together. A timestamp rather than a flag so a half-finished
	// window expires on its own after a process restart.
	DebounceUntil time.Time `json:"debounceUntil"`
	Cycles        int       `json:"cycles"`
	// Task-deletion quota, reset at rollover.
	DeletionsToday int `json:"deletionsToday"`
}

type AnalyticsState struct {
	Days          map[string]*DayMetrics `json:"days"`
	Streak        int                    `json:"streak"`
	LongestStreak int                    `json:"longestStreak"`
	LastActiveDay string                 `json:"lastActiveDay"`
	Bosses        []BossMilestone        `json:"bosses"`
	Won           bool                   `json:"won"`
}

type DayMetrics struct {
	Date            string `json:"date"`
	TasksCompleted  int    `json:"tasksCompleted"`
	TasksFailed     int    `json:"tasksFailed"`
	XPEarned        int    `json:"xpEarned"`
	GoldEarned      int    `json:"goldEarned"`
	DamageTaken     int    `json:"damageTaken"`
	SkillsLeveled   int    `json:"skillsLeveled"`
	ChainsCompleted int    `json:"chainsCompleted"`
}

type BossMilestone struct {
	Level      int       `json:"level"`
	Name       string    `json:"name"`
	Unlocked   bool      `json:"unlocked"`
	Defeated   bool      `json:"defeated"`
	RewardXP   int       `json:"rewardXp"`
	DefeatedAt time.Time `json:"defeatedAt,omitempty"`
}

type MissionsState struct {
	Date     string         `json:"date"`
	Missions []DailyMission `json:"missions"`
}

type DailyMission struct {
	DefID    string `json:"defId"`
	Progress int    `json:"progress"`
	Done     bool   `json:"done"`
}

type FilterState struct {
	Tasks  map[string]TaskFilter `json:"tasks"`
	Active ActiveFilter          `json:"active"`
}

type TaskFilter struct {
	Energy  string          `json:"energy,omitempty"`
	Context string          `json:"context,omitempty"`
	Tags    map[string]bool `json:"tags,omitempty"`
}

type ActiveFilter struct {
	Energy  string          `json:"energy"`
	Context string          `json:"context"`
	Tags    map[string]bool `json:"tags,omitempty"`
}

// NewState returns a fresh document at starting values.
func NewState(now time.Time) *State {
	st := &State{
		Skills: map[string]*Skill{},
	}
	st.Player = newPlayerState(now)
	st.Analytics = AnalyticsState{
		Days:   map[string]*DayMetrics{},
		Bosses: seedBossMilestones(),
	}
	st.Filters = FilterState{
		Tasks:  map[string]TaskFilter{},
		Active: ActiveFilter{Energy: FilterAny, Context: FilterAny},
	}
	return st
}

func newPlayerState(now time.Time) PlayerState {
	return PlayerState{
		Health:        startHealth,
		MaxHealth:     startHealth,
		XPToNext:      baseXPToNext,
		Level:         1,
		ModifierName:  defaultModifier.Name,
		SkillUseToday: map[string]int{},
		LastLogin:     now,
	}
}

// normalize repairs nil maps after a JSON round-trip so the engines
// never have to check for them.
func (st *State) normalize() {
	if st.Skills == nil {
		st.Skills = map[string]*Skill{}
	}
	if st.Player.SkillUseToday == nil {
		st.Player.SkillUseToday = map[string]int{}
	}
	if st.Analytics.Days == nil {
		st.Analytics.Days = map[string]*DayMetrics{}
	}
	if len(st.Analytics.Bosses) == 0 {
		st.Analytics.Bosses = seedBossMilestones()
	}
	if st.Filters.Tasks == nil {
		st.Filters.Tasks = map[string]TaskFilter{}
	}
	if st.Filters.Active.Energy == "" {
		st.Filters.Active.Energy = FilterAny
	}
	if st.Filters.Active.Context == "" {
		st.Filters.Active.Context = FilterAny
	}
	if st.Player.ModifierName == "" {
		st.Player.ModifierName = defaultModifier.Name
	}
}
