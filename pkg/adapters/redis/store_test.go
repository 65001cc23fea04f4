package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/intake/pkg/adapters/redis"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunStateStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute), redis.WithClock(clock))
	ctx := context.Background()

	state := domain.NewState("session-ttl")
	state.Append("hello")
	require.NoError(t, store.Save(ctx, "session-ttl", state))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"session-ttl"}, sessions)

	// Redis expires the key, the store clock expires the index entry.
	mr.FastForward(2 * time.Minute)
	now = now.Add(2 * time.Minute)

	_, err = store.Load(ctx, "session-ttl")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	sessions, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRedisStore_SaveRefreshesIndex(t *testing.T) {
	_, client := newClient(t)

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute), redis.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "old", domain.NewState("old")))
	now = now.Add(40 * time.Second)
	require.NoError(t, store.Save(ctx, "new", domain.NewState("new")))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"old", "new"}, sessions, "ordered by last save")

	// "old" is past its TTL, "new" is not.
	now = now.Add(30 * time.Second)
	sessions, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, sessions)
}

func TestRedisStore_LoadDropsExpiredIndexEntry(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "gone", domain.NewState("gone")))

	mr.Del(store.StateKey("gone"))

	_, err := store.Load(ctx, "gone")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "my-session", domain.NewState("my-session")))

	assert.True(t, mr.Exists("custom:app:state:my-session"), "checkpoint key uses the prefix")
	assert.True(t, mr.Exists("custom:app:sessions"), "index key uses the prefix")

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, list, "my-session")
}

func TestRedisStore_IndexNameIsAValidSessionID(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sessions", domain.NewState("sessions")))
	require.NoError(t, store.Save(ctx, "other", domain.NewState("other")))

	loaded, err := store.Load(ctx, "sessions")
	require.NoError(t, err)
	assert.Equal(t, "sessions", loaded.SessionID)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sessions", "other"}, list)
}

func TestRedisStore_DefaultPrefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client)
	require.NoError(t, store.Save(context.Background(), "abc", domain.NewState("abc")))

	assert.True(t, mr.Exists(redis.DefaultPrefix+"state:abc"))
	assert.Equal(t, redis.DefaultPrefix+"state:abc", store.StateKey("abc"))
}
