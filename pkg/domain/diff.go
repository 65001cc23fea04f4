package domain

// StateDiff represents the changes a step made to the conversation record.
// It is designed to be serialized to JSON for logs and lifecycle hooks.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	CurrentStep *StepID    `json:"current_step,omitempty"`
	Status      *RunStatus `json:"status,omitempty"`
	UserType    *UserType  `json:"user_type,omitempty"`

	// Fields contains the branch fields that were added or modified,
	// keyed by their JSON name.
	Fields map[string]any `json:"fields,omitempty"`

	// Messages contains the transcript entries appended by the step.
	Messages *MessagesDelta `json:"messages,omitempty"`
}

// MessagesDelta represents changes to the transcript.
type MessagesDelta struct {
	Appended []string `json:"appended,omitempty"`
	// Rewritten is set when the old transcript is not a prefix of the new one.
	Rewritten bool `json:"rewritten,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState.
// It returns nil when nothing changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{
		SessionID: newState.SessionID,
	}

	if oldState == nil || oldState.CurrentStep != newState.CurrentStep {
		diff.CurrentStep = &newState.CurrentStep
	}
	if oldState == nil || oldState.Status != newState.Status {
		diff.Status = &newState.Status
	}
	if oldState == nil && newState.UserType != UserUnknown ||
		oldState != nil && oldState.UserType != newState.UserType {
		diff.UserType = &newState.UserType
	}

	diff.Fields = diffFields(oldState, newState)
	diff.Messages = diffMessages(oldState, newState)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffFields(old *State, new *State) map[string]any {
	if old == nil {
		old = &State{}
	}
	delta := make(map[string]any)

	if !sameOwnerDetails(old.OwnerDetails, new.OwnerDetails) {
		delta["owner_details"] = new.OwnerDetails
	}
	if old.InspectionDate != new.InspectionDate {
		delta["inspection_date"] = new.InspectionDate
	}
	if old.ResidentPreferences != new.ResidentPreferences {
		delta["resident_preferences"] = new.ResidentPreferences
	}
	if old.Properties != new.Properties {
		delta["properties"] = new.Properties
	}
	if old.LastHumanInput != new.LastHumanInput {
		delta["last_human_input"] = new.LastHumanInput
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

func sameOwnerDetails(a, b *OwnerDetails) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// diffMessages assumes append-only behavior for the transcript and flags anything else.
func diffMessages(old *State, new *State) *MessagesDelta {
	if old == nil {
		if len(new.Messages) == 0 {
			return nil
		}
		return &MessagesDelta{Appended: new.Messages}
	}

	oldLen := len(old.Messages)
	newLen := len(new.Messages)

	if newLen < oldLen {
		return &MessagesDelta{Rewritten: true}
	}
	for i := range old.Messages {
		if old.Messages[i] != new.Messages[i] {
			return &MessagesDelta{Rewritten: true}
		}
	}
	if newLen > oldLen {
		return &MessagesDelta{Appended: new.Messages[oldLen:]}
	}
	return nil
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.CurrentStep == nil &&
		d.Status == nil &&
		d.UserType == nil &&
		len(d.Fields) == 0 &&
		d.Messages == nil
}
