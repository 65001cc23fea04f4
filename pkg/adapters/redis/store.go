package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/intake/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces checkpoint, index and lock keys.
const DefaultPrefix = "intake:run:"

// Key layout under the prefix:
//
//	<prefix>state:<session>  checkpoint JSON, expires after the TTL
//	<prefix>sessions         ZSET of sessions scored by last save (unix ms)
//	<prefix>lock:<session>   run lock, owned by Locker
const (
	stateSegment = "state:"
	indexSegment = "sessions"
)

// Store implements ports.StateStore on Redis.
//
// A checkpoint is written together with its index entry in one MULTI/EXEC, so a
// listed session always had a checkpoint at the time of the save. Index entries
// older than the TTL are treated as gone and pruned lazily by List and Load.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithTTL expires checkpoints that were not saved again within ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithPrefix sets the key namespace.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithClock overrides the clock used to score and expire index entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New dials Redis at address and returns a Store over the new client.
func New(address, password string, db int, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewFromClient returns a Store sharing an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: DefaultPrefix, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Client exposes the underlying client so a Locker can share the connection pool.
func (s *Store) Client() *backend.Client {
	return s.client
}

// StateKey returns the key holding the checkpoint of sessionID.
func (s *Store) StateKey(sessionID string) string {
	return s.prefix + stateSegment + sessionID
}

// IndexKey returns the key of the session index.
func (s *Store) IndexKey() string {
	return s.prefix + indexSegment
}

// Save writes the checkpoint and bumps the session in the index.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	savedAt := float64(s.now().UnixMilli())

	_, err = s.client.TxPipelined(ctx, func(tx backend.Pipeliner) error {
		tx.Set(ctx, s.StateKey(sessionID), data, s.ttl)
		tx.ZAdd(ctx, s.IndexKey(), backend.Z{Score: savedAt, Member: sessionID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save checkpoint %s: %w", sessionID, err)
	}
	return nil
}

// Load reads the checkpoint of sessionID. A missing checkpoint also drops its index entry.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	data, err := s.client.Get(ctx, s.StateKey(sessionID)).Bytes()
	if errors.Is(err, backend.Nil) {
		// The key expired on its own; keep the index consistent.
		_ = s.client.ZRem(ctx, s.IndexKey(), sessionID).Err()
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint %s: %w", sessionID, err)
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkpoint %s: %w", sessionID, err)
	}
	return &state, nil
}

// Delete removes the checkpoint and its index entry. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	_, err := s.client.TxPipelined(ctx, func(tx backend.Pipeliner) error {
		tx.Del(ctx, s.StateKey(sessionID))
		tx.ZRem(ctx, s.IndexKey(), sessionID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete checkpoint %s: %w", sessionID, err)
	}
	return nil
}

// List returns the sessions saved within the TTL, oldest save first.
// Entries older than the TTL are pruned from the index first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if s.ttl > 0 {
		cutoff := strconv.FormatInt(s.now().Add(-s.ttl).UnixMilli(), 10)
		if err := s.client.ZRemRangeByScore(ctx, s.IndexKey(), "-inf", cutoff).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune session index: %w", err)
		}
	}

	ids, err := s.client.ZRange(ctx, s.IndexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ids, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
