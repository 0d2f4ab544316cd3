package engine

import (
	"fmt"
	"math"
	"strings"
)

// Chains owns ordered multi-quest sequences. At most one chain is
// active at a time; its quests must be completed strictly in order.
type Chains struct {
	st    *ChainsState
	clock Clock
}

func newChains(st *ChainsState, clock Clock) *Chains {
	return &Chains{st: st, clock: clock}
}

type CreateChainOutcome struct {
	Outcome
	Chain *Chain
}

// Create starts a new chain. A chain shorter than two quests is not a
// chain. The boss flag is derived from the final quest's name.
func (c *Chains) Create(name string, taskNames []string) CreateChainOutcome {
	if len(taskNames) < chainMinTasks {
		return CreateChainOutcome{Outcome: reject(ReasonChainTooShort)}
	}
	if c.Active() != nil {
		return CreateChainOutcome{Outcome: reject("finish or break the active chain first")}
	}
	c.st.NextID++
	ch := &Chain{
		ID:    c.st.NextID,
		Name:  name,
		Tasks: append([]string(nil), taskNames...),
		Boss:  strings.Contains(strings.ToLower(taskNames[len(taskNames)-1]), "boss"),
	}
	c.st.Chains = append(c.st.Chains, ch)
	return CreateChainOutcome{Chain: ch}
}

// Active returns the single in-progress chain, if any.
func (c *Chains) Active() *Chain {
	for _, ch := range c.st.Chains {
		if !ch.Completed {
			return ch
		}
	}
	return nil
}

// NextTask is the quest the active chain expects next.
func (c *Chains) NextTask() (string, bool) {
	ch := c.Active()
	if ch == nil || ch.Index >= len(ch.Tasks) {
		return "", false
	}
	return ch.Tasks[ch.Index], true
}

// Contains reports whether the active chain includes the named quest.
func (c *Chains) Contains(taskName string) bool {
	ch := c.Active()
	if ch == nil {
		return false
	}
	for _, t := range ch.Tasks {
		if t == taskName {
			return true
		}
	}
	return false
}

// CanStart reports whether a quest may be completed given chain order:
// any quest when no chain is active, otherwise only the current one.
func (c *Chains) CanStart(taskName string) bool {
	ch := c.Active()
	if ch == nil || !c.Contains(taskName) {
		return true
	}
	next, _ := c.NextTask()
	return next == taskName
}

type AdvanceOutcome struct {
	Outcome
	Completed bool
	Progress  float64
	BonusXP   int
	BonusGold int
}

// Advance moves the active chain past the named quest. Completing the
// final quest completes the chain and pays the fixed bonus.
func (c *Chains) Advance(taskName string) AdvanceOutcome {
	ch := c.Active()
	if ch == nil {
		return AdvanceOutcome{Outcome: reject("no active chain")}
	}
	next, ok := c.NextTask()
	if !ok || next != taskName {
		return AdvanceOutcome{Outcome: reject(ReasonNotNextInChain)}
	}

	ch.Index++
	if ch.Index == len(ch.Tasks) {
		ch.Completed = true
		c.st.History = append(c.st.History, ChainRecord{
			Name:  ch.Name,
			Done:  len(ch.Tasks),
			Total: len(ch.Tasks),
			When:  c.clock.Now(),
		})
		return AdvanceOutcome{Completed: true, Progress: 1, BonusXP: chainBonusXP, BonusGold: chainBonusGold}
	}
	return AdvanceOutcome{Progress: float64(ch.Index) / float64(len(ch.Tasks))}
}

type BreakOutcome struct {
	Outcome
	Name      string
	Done      int
	Total     int
	BonusXP   int
	BonusGold int
}

// Break ends the active chain early, keeping the prorated share of the
// completion bonus for quests already done.
func (c *Chains) Break() BreakOutcome {
	ch := c.Active()
	if ch == nil {
		return BreakOutcome{Outcome: reject("no active chain")}
	}
	share := float64(ch.Index) / float64(len(ch.Tasks))
	ch.Completed = true
	c.st.History = append(c.st.History, ChainRecord{
		Name:   ch.Name,
		Done:   ch.Index,
		Total:  len(ch.Tasks),
		Broken: true,
		When:   c.clock.Now(),
	})
	return BreakOutcome{
		Name:      ch.Name,
		Done:      ch.Index,
		Total:     len(ch.Tasks),
		BonusXP:   int(math.Floor(float64(chainBonusXP) * share)),
		BonusGold: int(math.Floor(float64(chainBonusGold) * share)),
	}
}

// Describe renders a short progress line for the active chain.
func (c *Chains) Describe() string {
	ch := c.Active()
	if ch == nil {
		return "no active chain"
	}
	next, _ := c.NextTask()
	return fmt.Sprintf("%s: %d/%d, next %q", ch.Name, ch.Index, len(ch.Tasks), next)
}
