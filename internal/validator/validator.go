package validator

import (
	"errors"
	"fmt"

	"github.com/aretw0/intake/pkg/domain"
)

// ValidateGraph checks that a graph description is sound: the entry exists, every
// edge points at a defined step, labels are unique per step, at least one
// terminal step exists and every step is reachable from the entry.
func ValidateGraph(steps []domain.Step, entry domain.StepID) error {
	byID := make(map[domain.StepID]domain.Step, len(steps))
	for _, s := range steps {
		if _, dup := byID[s.ID]; dup {
			return fmt.Errorf("step %s defined twice", s.ID)
		}
		byID[s.ID] = s
	}

	if _, ok := byID[entry]; !ok {
		return fmt.Errorf("entry step %s: %w", entry, domain.ErrUnknownStep)
	}

	var errs []error
	terminals := 0
	for _, s := range steps {
		if s.Terminal() {
			terminals++
		}
		labels := make(map[string]bool, len(s.Transitions))
		for _, t := range s.Transitions {
			if labels[t.Label] {
				errs = append(errs, fmt.Errorf("step %s: duplicate label %q", s.ID, t.Label))
			}
			labels[t.Label] = true
			if _, ok := byID[t.ToStepID]; !ok {
				errs = append(errs, fmt.Errorf("step %s -> %s: %w", s.ID, t.ToStepID, domain.ErrUnknownStep))
			}
		}
	}
	if terminals == 0 {
		errs = append(errs, errors.New("graph has no terminal step"))
	}

	seen := map[domain.StepID]bool{entry: true}
	queue := []domain.StepID{entry}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, t := range byID[id].Transitions {
			if !seen[t.ToStepID] {
				seen[t.ToStepID] = true
				queue = append(queue, t.ToStepID)
			}
		}
	}
	for _, s := range steps {
		if !seen[s.ID] {
			errs = append(errs, fmt.Errorf("step %s is unreachable from %s", s.ID, entry))
		}
	}

	return errors.Join(errs...)
}
