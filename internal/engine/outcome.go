package engine

// Outcome is embedded in every operation result. Domain rule
// violations (locked down, wrong chain order, ratio not met, ...) are
// expected and frequent, so they are reported here as rejections
// rather than errors; errors are reserved for I/O failures.
type Outcome struct {
	Rejected bool
	Reason   string
}

func reject(reason string) Outcome {
	return Outcome{Rejected: true, Reason: reason}
}

// Rejection reasons reused across engines.
const (
	ReasonLockedDown     = "you are locked down; meditate or wait it out"
	ReasonNotNextInChain = "not next in chain"
	ReasonRestDay        = "rest day: high-stakes quests can wait"
	ReasonRatioNotMet    = "complete more quests before starting new research"
	ReasonTooShort       = "too short to submit"
	ReasonOverLocked     = "over 125% of target: locked"
	ReasonChainTooShort  = "a chain needs at least two quests"
	ReasonNotMeditating  = "you are not locked down"
	ReasonBreathe        = "still breathing; give it a moment"
)
