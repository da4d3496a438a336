package checkout

import "fmt"

// SubmissionState tracks how far a submission got. The writes are not
// transactional: a failure after the header (or mid-lines) leaves the order
// partially persisted, and that outcome is reported as PartiallyWritten
// rather than being an accident of the loop.
type SubmissionState string

const (
	StatePending          SubmissionState = "PENDING"
	StateHeaderWritten    SubmissionState = "HEADER_WRITTEN"
	StateLinesWriting     SubmissionState = "LINES_WRITING"
	StateCommitted        SubmissionState = "COMMITTED"
	StatePartiallyWritten SubmissionState = "PARTIALLY_WRITTEN"
)

var validNext = map[SubmissionState]map[SubmissionState]bool{
	StatePending:          {StateHeaderWritten: true},
	StateHeaderWritten:    {StateLinesWriting: true, StatePartiallyWritten: true},
	StateLinesWriting:     {StateCommitted: true, StatePartiallyWritten: true},
	StateCommitted:        {},
	StatePartiallyWritten: {},
}

func CanTransition(from, to SubmissionState) bool {
	return validNext[from][to]
}

func (s SubmissionState) IsTerminal() bool {
	return s == StateCommitted || s == StatePartiallyWritten
}

// advance moves the submission to the next state, panicking on a transition
// the table does not allow. Submit only ever requests legal moves, so a
// panic here is a programming error, not a runtime condition.
func (r *Result) advance(to SubmissionState) {
	if !CanTransition(r.State, to) {
		panic(fmt.Sprintf("checkout: illegal transition %s -> %s", r.State, to))
	}
	r.State = to
}
