package engine

// FilterAny matches every value of a filter dimension.
const FilterAny = "any"

// Energy and context vocabularies. Free-form tags are unconstrained.
const (
	EnergyHigh = "high"
	EnergyLow  = "low"

	ContextHome = "home"
	ContextWork = "work"
	ContextOut  = "out"
)

// Filters owns per-task {energy, context, tags} records and the active
// filter selection. Read-mostly: Matches is pure over current state.
type Filters struct {
	st *FilterState
}

func newFilters(st *FilterState) *Filters {
	return &Filters{st: st}
}

// Tag stores (or replaces) the filter record for a task name.
func (f *Filters) Tag(taskName, energy, context string, tags []string) {
	tf := TaskFilter{Energy: energy, Context: context}
	if len(tags) > 0 {
		tf.Tags = map[string]bool{}
		for _, t := range tags {
			tf.Tags[t] = true
		}
	}
	f.st.Tasks[taskName] = tf
}

// SetEnergy sets the active energy dimension; FilterAny disables it.
func (f *Filters) SetEnergy(energy string) {
	f.st.Active.Energy = energy
}

// SetContext sets the active context dimension.
func (f *Filters) SetContext(context string) {
	f.st.Active.Context = context
}

// ToggleTag flips one tag in the active selection.
func (f *Filters) ToggleTag(tag string) {
	if f.st.Active.Tags == nil {
		f.st.Active.Tags = map[string]bool{}
	}
	if f.st.Active.Tags[tag] {
		delete(f.st.Active.Tags, tag)
	} else {
		f.st.Active.Tags[tag] = true
	}
}

// ClearActive resets the selection to match everything.
func (f *Filters) ClearActive() {
	f.st.Active = ActiveFilter{Energy: FilterAny, Context: FilterAny}
}

// Active returns the current selection.
func (f *Filters) Active() ActiveFilter {
	return f.st.Active
}

// Matches reports whether a task passes the active filter. Tasks with
// no filter record always pass; otherwise active energy and context
// must match (when not "any") and at least one active tag must overlap
// when any tags are selected.
func (f *Filters) Matches(taskName string) bool {
	tf, ok := f.st.Tasks[taskName]
	if !ok {
		return true
	}
	a := f.st.Active
	if a.Energy != FilterAny && a.Energy != "" && a.Energy != tf.Energy {
		return false
	}
	if a.Context != FilterAny && a.Context != "" && a.Context != tf.Context {
		return false
	}
	if len(a.Tags) > 0 {
		for t := range a.Tags {
			if tf.Tags[t] {
				return true
			}
		}
		return false
	}
	return true
}

// forget drops the filter record for a deleted or archived task.
func (f *Filters) forget(taskName string) {
	delete(f.st.Tasks, taskName)
}
