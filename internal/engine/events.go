package engine

// Event is the tagged union describing one engine occurrence. Each
// case carries exactly the fields its kind needs; daily-mission
// predicates switch on the concrete type instead of probing optional
// fields.
type Event interface {
	event()
}

type TaskCompleted struct {
	Difficulty Difficulty
	Skill      string
	XP         int
	Gold       int
}

type TaskFailed struct {
	Damage int
}

type ChainAdvanced struct {
	Completed bool
}

type ResearchCompleted struct {
	Words int
}

type Meditated struct {
	CyclesDone int
}

type GoldEarned struct {
	Amount int
}

func (TaskCompleted) event()     {}
func (TaskFailed) event()        {}
func (ChainAdvanced) event()     {}
func (ResearchCompleted) event() {}
func (Meditated) event()         {}
func (GoldEarned) event()        {}
