package domain

// Step describes a node of the workflow graph for introspection.
// The executable part lives in the runtime; this is what diagrams and validators see.
type Step struct {
	ID StepID `json:"id" yaml:"id"`

	// Description is a one-line summary of what the step does.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Transitions defines the possible paths from this step.
	// A step without transitions is terminal.
	Transitions []Transition `json:"transitions" yaml:"transitions"`
}

// Terminal reports whether reaching the step ends the run.
func (s Step) Terminal() bool {
	return len(s.Transitions) == 0
}
