package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/intake"
	"github.com/aretw0/intake/internal/config"
	"github.com/aretw0/intake/pkg/adapters/file"
	"github.com/aretw0/intake/pkg/adapters/gemini"
	"github.com/aretw0/intake/pkg/adapters/redis"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/listings"
	"github.com/aretw0/intake/pkg/observability"
	"github.com/aretw0/intake/pkg/persistence/middleware"
	"github.com/aretw0/intake/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// components is everything a command builds from the configuration.
type components struct {
	engine  *intake.Engine
	metrics *observability.Metrics
	redis   *backend.Client
}

func (c *components) Close() {
	if c.redis != nil {
		_ = c.redis.Close()
	}
}

// createEngine wires the engine from configuration with standard CLI conventions.
// A nil completer means the Gemini API is used.
func createEngine(ctx context.Context, cfg config.Config, completer ports.Completer, asker ports.Asker, logger *slog.Logger, extra domain.LifecycleHooks) (*components, error) {
	c := &components{metrics: observability.NewMetrics()}

	if completer == nil {
		g, err := gemini.New(ctx, gemini.Config{
			APIKey:      cfg.Model.APIKey,
			Model:       cfg.Model.Name,
			Temperature: cfg.Model.Temperature,
		})
		if err != nil {
			return nil, err
		}
		completer = g
	}

	hooks := observability.Compose(
		observability.LoggingHooks(logger),
		c.metrics.Hooks(),
		extra,
	)

	opts := []intake.Option{
		intake.WithLogger(logger),
		intake.WithLifecycleHooks(hooks),
		intake.WithMaxSteps(cfg.Workflow.MaxSteps),
		intake.WithMaxRetries(cfg.Workflow.MaxRepairs),
	}

	if cfg.Listings != "" {
		catalog, err := listings.Load(cfg.Listings)
		if err != nil {
			return nil, err
		}
		opts = append(opts, intake.WithCatalog(catalog))
	}

	if cfg.Redis.Addr != "" {
		store := newRedisStore(cfg.Redis)
		if err := store.Client().Ping(ctx).Err(); err != nil {
			_ = store.Client().Close()
			return nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		c.redis = store.Client()
		protected, err := protectCheckpoints(store, cfg.Checkpoints)
		if err != nil {
			c.Close()
			return nil, err
		}
		opts = append(opts,
			intake.WithStore(protected),
			intake.WithLocker(redis.NewLocker(store.Client(), cfg.Redis.Prefix)),
		)
	} else if cfg.Checkpoints.Dir != "" {
		protected, err := protectCheckpoints(file.New(cfg.Checkpoints.Dir), cfg.Checkpoints)
		if err != nil {
			return nil, err
		}
		opts = append(opts, intake.WithStore(protected))
	}

	eng, err := intake.New(completer, asker, opts...)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	c.engine = eng
	return c, nil
}

func newRedisStore(cfg config.RedisConfig) *redis.Store {
	return redis.New(cfg.Addr, "", 0,
		redis.WithPrefix(cfg.Prefix),
		redis.WithTTL(cfg.TTL),
	)
}

// protectCheckpoints wraps a shared store with PII masking and encryption as configured.
func protectCheckpoints(store ports.StateStore, cfg config.CheckpointConfig) (ports.StateStore, error) {
	var mws []middleware.Middleware
	if cfg.MaskPII {
		mw, err := middleware.NewPIIMiddleware(middleware.DefaultPIIPatterns)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	if cfg.EncryptionKey != "" {
		key, err := middleware.ParseKey(cfg.EncryptionKey)
		if err != nil {
			return nil, err
		}
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	return middleware.Chain(store, mws...), nil
}
