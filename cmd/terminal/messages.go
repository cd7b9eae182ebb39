package main

// reviewDoneMsg carries the outcome of a review request.
type reviewDoneMsg struct {
	review string
	err    error
}

// copyResetMsg clears the copy feedback set by the MarkCopied call that
// returned seq.
type copyResetMsg struct{ seq int }

// copyFailedMsg reports a clipboard error.
type copyFailedMsg struct{ err error }
