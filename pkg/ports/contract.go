package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewState(sessionID)
		state.CurrentStep = domain.StepCollectOwnerDetails
		state.UserType = domain.UserOwner
		state.OwnerDetails = &domain.OwnerDetails{
			FullName:     "Jane Doe",
			ContactInfo:  "jane@x.com",
			HomeAddress:  "123 Main St",
			HasUtilities: true,
			IsVacant:     true,
		}
		state.Append("AI: owner or resident?", "User: owner")

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state.CurrentStep, loaded.CurrentStep)
		assert.Equal(t, state.UserType, loaded.UserType)
		require.NotNil(t, loaded.OwnerDetails)
		assert.Equal(t, *state.OwnerDetails, *loaded.OwnerDetails)
		assert.Equal(t, state.Messages, loaded.Messages)
	})

	t.Run("Saved Copy Is Isolated", func(t *testing.T) {
		state := domain.NewState(sessionID)
		state.Append("first")
		require.NoError(t, store.Save(ctx, sessionID, state))

		state.Append("second")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, []string{"first"}, loaded.Messages)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewState(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewState(id1))
		_ = store.Save(ctx, id2, domain.NewState(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
