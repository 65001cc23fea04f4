package ports

import (
	"context"

	"github.com/aretw0/intake/pkg/domain"
)

// StateStore defines the interface for checkpointing a running conversation.
// Checkpoints live only as long as the run; the engine deletes them when it ends.
type StateStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.State) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.State, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of the sessions currently checkpointed.
	List(ctx context.Context) ([]string, error)
}
