package engine

import (
	"fmt"
	"math"
)

// Research owns the secondary-activity lifecycle: quota-gated creation
// and word-count validated completion. It is the sole writer of
// ResearchState; skill rewards earned here are returned to the
// orchestrator, which owns skills.
type Research struct {
	st    *ResearchState
	clock Clock
}

func newResearch(st *ResearchState, clock Clock) *Research {
	return &Research{st: st, clock: clock}
}

// Ratio is completed primary tasks per research item. researchTotal=0
// never divides by zero.
func (r *Research) Ratio() float64 {
	return float64(r.st.TasksCompleted) / math.Max(1, float64(r.st.ResearchTotal))
}

// CanCreate reports whether the 2:1 quest-to-research gate is met.
func (r *Research) CanCreate() bool {
	return r.Ratio() >= researchRatioRequired
}

// recordTaskCompletion feeds the gate's primary-side counter.
func (r *Research) recordTaskCompletion() {
	r.st.TasksCompleted++
}

type CreateResearchOutcome struct {
	Outcome
	Item *ResearchItem
}

// Create opens a new research item behind the ratio gate.
func (r *Research) Create(title string, typ ResearchType, skill, taskRef string) CreateResearchOutcome {
	if !typ.IsValid() {
		typ = ResearchShort
	}
	if !r.CanCreate() {
		return CreateResearchOutcome{Outcome: reject(ReasonRatioNotMet)}
	}
	r.st.NextID++
	item := &ResearchItem{
		ID:         r.st.NextID,
		Title:      title,
		Type:       typ,
		WordTarget: typ.WordTarget(),
		Skill:      skill,
		TaskRef:    taskRef,
	}
	r.st.Items = append(r.st.Items, item)
	r.st.ResearchTotal++
	return CreateResearchOutcome{Item: item}
}

// Get returns the item with the given id, if any.
func (r *Research) Get(id int) (*ResearchItem, bool) {
	for _, it := range r.st.Items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// Items returns all items, open first.
func (r *Research) Items() []*ResearchItem {
	return r.st.Items
}

type CompleteResearchOutcome struct {
	Outcome
	Item        *ResearchItem
	XP          int
	Gold        int
	GoldPenalty int
	// SkillXP goes to the linked skill; applied by the orchestrator.
	SkillName string
	SkillXP   int
}

// Complete validates the final word count against [80%, 125%] of the
// target, boundaries inclusive. Overage between 100% and 125% costs a
// proportional share of the gold reward.
func (r *Research) Complete(id, finalCount int) CompleteResearchOutcome {
	item, ok := r.Get(id)
	if !ok {
		return CompleteResearchOutcome{Outcome: reject(fmt.Sprintf("no research item %d", id))}
	}
	if item.Completed {
		return CompleteResearchOutcome{Outcome: reject(fmt.Sprintf("research item %d is already done", id))}
	}

	target := float64(item.WordTarget)
	count := float64(finalCount)
	if count < target*wordFloorRatio {
		return CompleteResearchOutcome{Outcome: reject(ReasonTooShort), Item: item}
	}
	if count > target*wordCeilingRatio {
		return CompleteResearchOutcome{Outcome: reject(ReasonOverLocked), Item: item}
	}

	xp, gold := shortRewardXP, shortRewardGold
	if item.Type == ResearchLong {
		xp, gold = longRewardXP, longRewardGold
	}

	penalty := 0
	if count > target {
		overage := (count - target) / (target * (wordCeilingRatio - 1))
		penalty = int(math.Floor(overage * float64(gold)))
	}

	item.WordCount = finalCount
	item.Completed = true
	item.CompletedAt = r.clock.Now()
	r.st.ResearchDone++

	return CompleteResearchOutcome{
		Item:        item,
		XP:          xp,
		Gold:        gold,
		GoldPenalty: penalty,
		SkillName:   item.Skill,
		SkillXP:     xp,
	}
}

type DeleteResearchOutcome struct {
	Outcome
}

// Delete removes an item and decrements the matching running total for
// its completion state.
func (r *Research) Delete(id int) DeleteResearchOutcome {
	for i, it := range r.st.Items {
		if it.ID != id {
			continue
		}
		r.st.Items = append(r.st.Items[:i], r.st.Items[i+1:]...)
		if it.Completed {
			r.st.ResearchDone--
		} else {
			r.st.ResearchTotal--
		}
		return DeleteResearchOutcome{}
	}
	return DeleteResearchOutcome{Outcome: reject(fmt.Sprintf("no research item %d", id))}
}
