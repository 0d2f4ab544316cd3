package engine

import "time"

type Difficulty int

const (
	DifficultyTrivial Difficulty = 1
	DifficultyEasy    Difficulty = 2
	DifficultyMedium  Difficulty = 3
	DifficultyHard    Difficulty = 4
	DifficultyEpic    Difficulty = 5
)

func (d Difficulty) IsValid() bool {
	return d >= DifficultyTrivial && d <= DifficultyEpic
}

// DefaultDifficulty is used when user input is missing/invalid.
const DefaultDifficulty Difficulty = DifficultyEasy

// rewardShare is the fraction of the current level-up requirement paid
// as XP for a quest of the given difficulty. Gold is half the XP.
func (d Difficulty) rewardShare() float64 {
	switch d {
	case DifficultyTrivial:
		return 0.05
	case DifficultyEasy:
		return 0.10
	case DifficultyMedium:
		return 0.20
	case DifficultyHard:
		return 0.35
	case DifficultyEpic:
		return 0.50
	default:
		return 0.10
	}
}

type ResearchType string

const (
	ResearchShort ResearchType = "short"
	ResearchLong  ResearchType = "long"
)

func (t ResearchType) IsValid() bool {
	return t == ResearchShort || t == ResearchLong
}

// WordTarget returns the word-count target for the research type.
func (t ResearchType) WordTarget() int {
	if t == ResearchLong {
		return longWordTarget
	}
	return shortWordTarget
}

// Cue identifies a cosmetic audio cue. Cues never affect state.
type Cue string

const (
	CueSuccess   Cue = "success"
	CueFail      Cue = "fail"
	CueDeath     Cue = "death"
	CueClick     Cue = "click"
	CueHeartbeat Cue = "heartbeat"
	CueMeditate  Cue = "meditate"
)

// TaskMeta is the metadata snapshot written to a quest record at
// creation time. Rewards are frozen here so later level-ups do not
// retroactively change a quest's payout.
type TaskMeta struct {
	Title      string
	XP         int
	Gold       int
	Skill      string
	Skill2     string
	Difficulty Difficulty
	Deadline   *time.Time
	HighStakes bool
	Boss       bool
	CreatedAt  time.Time
}

// TaskRecord is a quest as the file store reports it back.
type TaskRecord struct {
	ID   string
	Meta TaskMeta
}
