package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/intake/internal/logging"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/extract"
	"github.com/aretw0/intake/pkg/listings"
	"github.com/aretw0/intake/pkg/ports"
)

// DefaultMaxSteps bounds the number of steps a run may execute.
const DefaultMaxSteps = 10

// Engine is the core state machine runner.
// It holds no per-run state, so one Engine may drive many runs concurrently
// as long as its oracles are reentrant.
type Engine struct {
	completer ports.Completer
	asker     ports.Asker
	catalog   *listings.Catalog
	store     ports.StateStore
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time

	entry      domain.StepID
	maxSteps   int
	maxRetries int

	graph *graph
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithStore checkpoints the state after every step.
// Checkpoints are deleted when the run ends.
func WithStore(store ports.StateStore) EngineOption {
	return func(e *Engine) {
		e.store = store
	}
}

// WithCatalog replaces the built-in listing catalog.
func WithCatalog(c *listings.Catalog) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// WithMaxSteps sets the step ceiling (default 10).
func WithMaxSteps(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxSteps = n
		}
	}
}

// WithMaxRetries sets how many repair prompts an extraction may issue (default 3).
func WithMaxRetries(n int) EngineOption {
	return func(e *Engine) {
		if n >= 0 {
			e.maxRetries = n
		}
	}
}

// WithClock overrides the clock used to propose inspection dates.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithEntryStep configures the first step of a fresh run (default: detect_user_type).
func WithEntryStep(id domain.StepID) EngineOption {
	return func(e *Engine) {
		e.entry = id
	}
}

// NewEngine creates a new engine with its two oracles.
func NewEngine(completer ports.Completer, asker ports.Asker, opts ...EngineOption) *Engine {
	e := &Engine{
		completer:  completer,
		asker:      asker,
		catalog:    listings.Default(),
		logger:     logging.NewNop(),
		now:        time.Now,
		entry:      domain.StepDetectUserType,
		maxSteps:   DefaultMaxSteps,
		maxRetries: extract.DefaultMaxRetries,
		graph:      intakeGraph(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Inspect returns the graph definition for visualization and validation.
func (e *Engine) Inspect() []domain.Step {
	return e.graph.describe()
}

// Entry returns the step a fresh run starts at.
func (e *Engine) Entry() domain.StepID {
	return e.entry
}

// Run drives state through the graph until a terminal step is reached or the run fails.
// The returned state is always the state passed in, including on failure, so the
// transcript stays available for diagnostics.
func (e *Engine) Run(ctx context.Context, state *domain.State) (*domain.State, error) {
	if state == nil {
		return nil, errors.New("run: nil state")
	}
	if state.Status != "" && state.Status != domain.StatusActive {
		return state, fmt.Errorf("run %s: %w", state.SessionID, domain.ErrRunFinished)
	}
	state.Status = domain.StatusActive

	current, err := e.resolveEntry(state)
	if err != nil {
		return state, err
	}

	logger := e.logger.With("session_id", state.SessionID)
	if e.store != nil {
		defer e.discardCheckpoint(context.WithoutCancel(ctx), logger, state.SessionID)
	}

	for {
		if state.Steps >= e.maxSteps {
			err := &domain.ConvergenceError{
				Limit:      e.maxSteps,
				LastStep:   state.CurrentStep,
				Transcript: append([]string(nil), state.Messages...),
			}
			return e.fail(ctx, logger, state, err)
		}

		n := e.graph.nodes[current]
		before := state.Clone()

		e.emitStepEnter(ctx, state, current)
		logger.Debug("step enter", "step", current, "steps", state.Steps)

		state.CurrentStep = current
		state.Steps++
		if err := n.action(e, ctx, state); err != nil {
			return e.fail(ctx, logger, state, fmt.Errorf("step %s: %w", current, err))
		}

		var next domain.StepID
		if n.terminal() {
			state.Status = domain.StatusCompleted
		} else {
			label := n.route(state)
			target, ok := n.edges[label]
			if !ok {
				return e.fail(ctx, logger, state, fmt.Errorf("step %s: no edge for route %q", current, label))
			}
			next = target
		}

		diff := domain.Diff(before, state)
		if diff != nil && diff.Messages != nil && diff.Messages.Rewritten {
			return e.fail(ctx, logger, state, fmt.Errorf("step %s: transcript was rewritten", current))
		}

		e.emitStepLeave(ctx, state, current, next, diff)
		logger.Debug("step leave", "step", current, "next", next)

		if err := e.checkpoint(ctx, state); err != nil {
			return e.fail(ctx, logger, state, err)
		}

		if n.terminal() {
			e.emitRunFinish(ctx, state, nil)
			logger.Info("run completed", "step", current, "steps", state.Steps, "user_type", state.UserType)
			return state, nil
		}
		current = next
	}
}

// resolveEntry picks the first step: the entry for fresh states, CurrentStep otherwise.
// A branch step is only accepted when the state's user type selects that branch.
func (e *Engine) resolveEntry(state *domain.State) (domain.StepID, error) {
	id := state.CurrentStep
	if id == "" || id == domain.StepStart {
		id = e.entry
	}
	n, ok := e.graph.nodes[id]
	if !ok {
		return "", fmt.Errorf("run %s: %w: %s", state.SessionID, domain.ErrUnknownStep, id)
	}
	if n.branch != "" && n.branch != state.UserType {
		return "", fmt.Errorf("run %s: %w: %s needs user type %q, state has %q",
			state.SessionID, domain.ErrBranchMismatch, id, n.branch, state.UserType)
	}
	return id, nil
}

func (e *Engine) fail(ctx context.Context, logger *slog.Logger, state *domain.State, err error) (*domain.State, error) {
	state.Status = domain.StatusFailed
	e.emitRunFinish(ctx, state, err)
	logger.Error("run failed", "step", state.CurrentStep, "steps", state.Steps, "error", err)
	return state, err
}

func (e *Engine) checkpoint(ctx context.Context, state *domain.State) error {
	if e.store == nil || state.SessionID == "" {
		return nil
	}
	if err := e.store.Save(ctx, state.SessionID, state); err != nil {
		return fmt.Errorf("checkpoint %s: %w", state.SessionID, err)
	}
	return nil
}

func (e *Engine) discardCheckpoint(ctx context.Context, logger *slog.Logger, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := e.store.Delete(ctx, sessionID); err != nil {
		logger.Warn("failed to delete checkpoint", "error", err)
	}
}
