package entities

// Decision is the operator's answer to a single update confirmation.
type Decision int

const (
	// DecisionSkip leaves the package untouched and moves on.
	DecisionSkip Decision = iota
	// DecisionApply confirms the update.
	DecisionApply
	// DecisionQuit terminates the entire run immediately.
	DecisionQuit
)
