package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter         EventType = "step_enter"
	EventStepLeave         EventType = "step_leave"
	EventExtractionAttempt EventType = "extraction_attempt"
	EventRunFinish         EventType = "run_finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// StepEvent represents entry or exit from a step.
type StepEvent struct {
	EventBase
	StepID StepID `json:"step_id"`
	// Next is the step selected by routing. Only set on leave, empty for terminal steps.
	Next StepID `json:"next,omitempty"`
	// Diff holds what the step changed. Only set on leave.
	Diff *StateDiff `json:"diff,omitempty"`
}

// ExtractionEvent represents one completion call of the repair loop.
type ExtractionEvent struct {
	EventBase
	StepID  StepID `json:"step_id"`
	Target  string `json:"target"`
	Attempt int    `json:"attempt"`
	IsError bool   `json:"is_error,omitempty"`
}

// RunEvent is emitted once when a run ends.
type RunEvent struct {
	EventBase
	Status RunStatus `json:"status"`
	Steps  int       `json:"steps"`
	Err    error     `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStepEnter         func(context.Context, *StepEvent)
	OnStepLeave         func(context.Context, *StepEvent)
	OnExtractionAttempt func(context.Context, *ExtractionEvent)
	OnRunFinish         func(context.Context, *RunEvent)
}
