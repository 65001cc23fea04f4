package domain

// Transition defines an edge from one step to another.
type Transition struct {
	ToStepID StepID `json:"to" yaml:"to"`

	// Label is the routing result that selects this edge.
	// If empty, the edge is unconditional.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}
