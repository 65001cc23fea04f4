package domain

import (
	"errors"
	"fmt"
)

// ErrExtractionFailed is returned when the repair loop runs out of attempts.
var ErrExtractionFailed = errors.New("extraction failed")

// ErrNotConverged is returned when a run exceeds its step ceiling.
var ErrNotConverged = errors.New("workflow did not converge")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrRunFinished is returned when Run is called on a state that already completed or failed.
var ErrRunFinished = errors.New("run already finished")

// ErrUnknownStep is returned when a state points at a step the graph does not define.
var ErrUnknownStep = errors.New("unknown step")

// ErrBranchMismatch is returned when a state would resume at a step of the other branch,
// or at a branch step before its user type is known.
var ErrBranchMismatch = errors.New("step does not belong to the state's branch")

// ExtractionError carries the diagnostics of an exhausted repair loop.
type ExtractionError struct {
	// Target names the schema being extracted (e.g. "owner_details").
	Target string
	// Attempts is the number of completion calls made.
	Attempts int
	// Payload is the last malformed response, verbatim.
	Payload string
	// Err is the last parse error.
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to parse %s after %d attempts: %v; last payload: %q", e.Target, e.Attempts, e.Err, e.Payload)
}

func (e *ExtractionError) Unwrap() []error {
	return []error{ErrExtractionFailed, e.Err}
}

// ConvergenceError is returned when the step ceiling is exceeded.
type ConvergenceError struct {
	Limit      int
	LastStep   StepID
	Transcript []string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: %d steps executed, last step %s", ErrNotConverged, e.Limit, e.LastStep)
}

func (e *ConvergenceError) Unwrap() error {
	return ErrNotConverged
}
