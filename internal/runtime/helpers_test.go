package runtime_test

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/intake/pkg/domain"
)

const validOwnerJSON = `{"full_name":"Jane Doe","contact_info":"jane@x.com","home_address":"123 Main St","has_utilities":true,"is_vacant":true}`

const notVacantOwnerJSON = `{"full_name":"Jane Doe","contact_info":"jane@x.com","home_address":"123 Main St","has_utilities":true,"is_vacant":false}`

const listingOneJSON = `[
  {
    "id": 1,
    "address": "123 Oak Street, Downtown",
    "bedrooms": 2,
    "bathrooms": 2,
    "price": 2500,
    "area": "Downtown",
    "features": ["Parking", "Balcony", "Pet-friendly"]
  }
]`

func fixedClock() time.Time {
	return time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
}

// recorder captures lifecycle events for assertions.
type recorder struct {
	mu       sync.Mutex
	entered  []domain.StepID
	left     []*domain.StepEvent
	msgLens  []int
	attempts []*domain.ExtractionEvent
	finished []*domain.RunEvent
}

func (r *recorder) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.entered = append(r.entered, e.StepID)
		},
		OnStepLeave: func(_ context.Context, e *domain.StepEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.left = append(r.left, e)
		},
		OnExtractionAttempt: func(_ context.Context, e *domain.ExtractionEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.attempts = append(r.attempts, e)
		},
		OnRunFinish: func(_ context.Context, e *domain.RunEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.finished = append(r.finished, e)
		},
	}
}
