package domain

import "maps"

// RunStatus defines where a run is in its lifecycle.
type RunStatus string

const (
	StatusActive    RunStatus = "active"    // Steps are still being executed
	StatusCompleted RunStatus = "completed" // A terminal step was reached
	StatusFailed    RunStatus = "failed"    // Extraction or convergence failure
)

// UserType is the branch the conversation settled on.
type UserType string

const (
	UserUnknown  UserType = ""
	UserOwner    UserType = "owner"
	UserResident UserType = "resident"
)

// OwnerDetails is the structured record collected on the owner branch.
// A non-nil value always carries all five keys.
type OwnerDetails struct {
	FullName     string `json:"full_name" mapstructure:"full_name"`
	ContactInfo  string `json:"contact_info" mapstructure:"contact_info"`
	HomeAddress  string `json:"home_address" mapstructure:"home_address"`
	HasUtilities bool   `json:"has_utilities" mapstructure:"has_utilities"`
	IsVacant     bool   `json:"is_vacant" mapstructure:"is_vacant"`
}

// State represents the conversation record of a single run.
type State struct {
	// SessionID identifies the run (checkpoint key, log correlation).
	SessionID string `json:"session_id"`

	// CurrentStep is the step last executed. It is StepStart until the first step runs.
	CurrentStep StepID `json:"current_step"`

	// Steps counts executed steps, including repeated ones.
	Steps int `json:"steps"`

	// Status indicates if the run is still active, completed or failed.
	Status RunStatus `json:"status"`

	// UserType is set once by detect_user_type and never reverted.
	UserType UserType `json:"user_type,omitempty"`

	// Owner branch.
	OwnerDetails   *OwnerDetails `json:"owner_details,omitempty"`
	InspectionDate string        `json:"inspection_date,omitempty"`

	// Resident branch.
	ResidentPreferences string `json:"resident_preferences,omitempty"`
	Properties          string `json:"properties,omitempty"`

	// Messages is the append-only transcript: prompts, replies and summaries.
	Messages []string `json:"messages"`

	// LastHumanInput is the most recent raw reply, overwritten each turn.
	LastHumanInput string `json:"last_human_input,omitempty"`

	// Annotations is free-form data owned by adapters and store middleware.
	// The engine neither reads nor writes it.
	Annotations map[string]string `json:"annotations,omitempty"`
}

// NewState creates a clean state for a new run.
func NewState(sessionID string) *State {
	return &State{
		SessionID:   sessionID,
		CurrentStep: StepStart,
		Status:      StatusActive,
		Messages:    []string{},
	}
}

// Append adds entries to the transcript.
func (s *State) Append(msgs ...string) {
	s.Messages = append(s.Messages, msgs...)
}

// LastMessage returns the most recent transcript entry, or "" if there is none.
func (s *State) LastMessage() string {
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[len(s.Messages)-1]
}

// Clone returns a deep copy so callers (stores, hooks) can't mutate the run.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	c := *s
	if s.OwnerDetails != nil {
		d := *s.OwnerDetails
		c.OwnerDetails = &d
	}
	c.Messages = append([]string(nil), s.Messages...)
	c.Annotations = maps.Clone(s.Annotations)
	return &c
}
