package intake_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/intake"
	"github.com/aretw0/intake/pkg/adapters/redis"
	"github.com/aretw0/intake/pkg/adapters/scripted"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/listings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresOracles(t *testing.T) {
	_, err := intake.New(nil, scripted.NewAsker())
	assert.Error(t, err)
	_, err = intake.New(scripted.NewCompleter(), nil)
	assert.Error(t, err)
}

func TestEngine_Start(t *testing.T) {
	eng, err := intake.New(scripted.NewCompleter(), scripted.NewAsker())
	require.NoError(t, err)

	s := eng.Start("fixed")
	assert.Equal(t, "fixed", s.SessionID)
	assert.Equal(t, domain.StepStart, s.CurrentStep)
	assert.Equal(t, domain.StatusActive, s.Status)

	a, b := eng.Start(""), eng.Start("")
	assert.NotEmpty(t, a.SessionID)
	assert.NotEqual(t, a.SessionID, b.SessionID)
}

func TestEngine_RunOwner(t *testing.T) {
	asker := scripted.NewAsker("I own a flat", "Jane Doe, jane@x.com, 1 Main St, power on, nobody lives there", "tomorrow works")
	completer := scripted.NewCompleter(
		"owner",
		`{"full_name":"Jane Doe","contact_info":"jane@x.com","home_address":"1 Main St","has_utilities":true,"is_vacant":true}`,
		"2025-03-02 09:30",
	)
	clock := func() time.Time { return time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC) }

	eng, err := intake.New(completer, asker, intake.WithClock(clock))
	require.NoError(t, err)

	state, err := eng.Run(context.Background(), eng.Start("owner-1"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, state.Status)
	assert.Equal(t, "2025-03-02 09:30", state.InspectionDate)
	assert.Contains(t, state.LastMessage(), "Thank you for providing your property details!")

	ids, err := eng.Sessions().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids, "no checkpoint outlives the run")
}

func TestEngine_RunFailureKeepsTranscript(t *testing.T) {
	replies := []string{"hm", "hm", "hm"}
	eng, err := intake.New(scripted.NewCompleter("?", "?", "?"), scripted.NewAsker(replies...), intake.WithMaxSteps(3))
	require.NoError(t, err)

	state, err := eng.Run(context.Background(), eng.Start(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotConverged))
	assert.Len(t, state.Messages, 9, "question, reply and re-ask per attempt")
}

func TestEngine_CustomCatalog(t *testing.T) {
	catalog, err := listings.Parse([]byte(`
- id: 7
  address: 9 Harbour Rd, Seaside
  bedrooms: 1
  bathrooms: 1
  price: 1200
  area: Seaside
  features: [Sea view]
`))
	require.NoError(t, err)

	completer := scripted.NewCompleter("resident", `[{"id": 7}]`, "Sea views!")
	eng, err := intake.New(completer, scripted.NewAsker("renting", "seaside"), intake.WithCatalog(catalog))
	require.NoError(t, err)

	_, err = eng.Run(context.Background(), eng.Start(""))
	require.NoError(t, err)
	assert.Contains(t, completer.Prompts()[1], "9 Harbour Rd, Seaside")
	assert.NotContains(t, completer.Prompts()[1], "123 Oak Street")
}

func TestEngine_RedisCheckpointsAndLock(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redis.New(mr.Addr(), "", 0)
	locker := redis.NewLocker(store.Client(), redis.DefaultPrefix)

	var seen []string
	hooks := domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			seen = append(seen, mr.Keys()...)
		},
	}

	completer := scripted.NewCompleter("resident", "[]", "Nothing yet.")
	eng, err := intake.New(completer, scripted.NewAsker("rent", "cheap"),
		intake.WithStore(store),
		intake.WithLocker(locker),
		intake.WithLifecycleHooks(hooks),
	)
	require.NoError(t, err)

	_, err = eng.Run(context.Background(), eng.Start("redis-run"))
	require.NoError(t, err)

	assert.Contains(t, seen, redis.DefaultPrefix+"lock:redis-run")
	assert.Contains(t, seen, store.StateKey("redis-run"))
	assert.False(t, mr.Exists(store.StateKey("redis-run")), "checkpoint is gone after the run")
	assert.False(t, mr.Exists(redis.DefaultPrefix+"lock:redis-run"), "lock is released after the run")
}
