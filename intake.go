package intake

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/intake/internal/logging"
	"github.com/aretw0/intake/internal/runtime"
	"github.com/aretw0/intake/internal/validator"
	"github.com/aretw0/intake/pkg/adapters/memory"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/listings"
	"github.com/aretw0/intake/pkg/ports"
	"github.com/aretw0/intake/pkg/session"
	"github.com/google/uuid"
)

// Engine is the high-level entry point for the intake library.
// It wraps the internal runtime and guards each session so only one run drives it.
type Engine struct {
	runtime     *runtime.Engine
	sessions    *session.Manager
	store       ports.StateStore
	locker      ports.DistributedLocker
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	runtimeOpts []runtime.EngineOption
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore checkpoints running sessions in store instead of memory.
func WithStore(store ports.StateStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker adds a distributed lock around every run.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithCatalog replaces the built-in listings.
func WithCatalog(c *listings.Catalog) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithCatalog(c))
	}
}

// WithMaxSteps sets the step ceiling of a run.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithMaxSteps(n))
	}
}

// WithMaxRetries sets how many repair prompts one extraction may issue.
func WithMaxRetries(n int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithMaxRetries(n))
	}
}

// WithClock overrides the clock used to propose inspection dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithClock(now))
	}
}

// New initializes an Engine over the two oracles.
func New(completer ports.Completer, asker ports.Asker, opts ...Option) (*Engine, error) {
	if completer == nil {
		return nil, errors.New("intake: completer is required")
	}
	if asker == nil {
		return nil, errors.New("intake: asker is required")
	}

	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	var sessionOpts []session.Option
	sessionOpts = append(sessionOpts, session.WithLogger(eng.logger))
	if eng.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(eng.locker))
	}
	eng.sessions = session.NewManager(eng.store, sessionOpts...)

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithStore(eng.store),
	}
	runtimeOpts = append(runtimeOpts, eng.runtimeOpts...)
	eng.runtime = runtime.NewEngine(completer, asker, runtimeOpts...)

	if err := validator.ValidateGraph(eng.runtime.Inspect(), eng.runtime.Entry()); err != nil {
		return nil, err
	}
	return eng, nil
}

// Start creates the state of a new conversation. An empty sessionID gets a random one.
func (e *Engine) Start(sessionID string) *domain.State {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return domain.NewState(sessionID)
}

// Run drives the conversation to its end while holding the session lock.
// The state is returned even on failure so callers can show the transcript.
func (e *Engine) Run(ctx context.Context, state *domain.State) (*domain.State, error) {
	if state == nil {
		return nil, errors.New("intake: nil state")
	}
	var out *domain.State
	err := e.sessions.WithLock(ctx, state.SessionID, func(ctx context.Context) error {
		var err error
		out, err = e.runtime.Run(ctx, state)
		return err
	})
	if out == nil {
		out = state
	}
	return out, err
}

// Inspect returns the workflow definition for visualization.
func (e *Engine) Inspect() []domain.Step {
	return e.runtime.Inspect()
}

// Entry returns the first step of a fresh run.
func (e *Engine) Entry() domain.StepID {
	return e.runtime.Entry()
}

// Sessions exposes the manager of in-flight sessions.
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}

// Workflow returns the step table and entry step without requiring oracles.
func Workflow() ([]domain.Step, domain.StepID) {
	return runtime.Describe(), domain.StepDetectUserType
}
