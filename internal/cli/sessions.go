package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/intake"
	"github.com/aretw0/intake/internal/config"
	"github.com/aretw0/intake/internal/presentation/graph"
	"github.com/aretw0/intake/pkg/adapters/file"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/session"
)

// ErrNoSharedStore is returned by session commands when checkpoints live only in memory.
var ErrNoSharedStore = errors.New("session commands need a redis address (--redis) or a checkpoint directory (INTAKE_CHECKPOINT_DIR)")

func openSessions(cfg config.Config) (*session.Manager, func(), error) {
	if cfg.Redis.Addr == "" {
		if cfg.Checkpoints.Dir == "" {
			return nil, nil, ErrNoSharedStore
		}
		protected, err := protectCheckpoints(file.New(cfg.Checkpoints.Dir), cfg.Checkpoints)
		if err != nil {
			return nil, nil, err
		}
		return session.NewManager(protected), func() {}, nil
	}
	store := newRedisStore(cfg.Redis)
	protected, err := protectCheckpoints(store, cfg.Checkpoints)
	if err != nil {
		_ = store.Client().Close()
		return nil, nil, err
	}
	return session.NewManager(protected), func() { _ = store.Client().Close() }, nil
}

// ListSessions prints the sessions currently running against the shared store.
func ListSessions(ctx context.Context, cfg config.Config, out io.Writer) error {
	mgr, closeFn, err := openSessions(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	ids, err := mgr.List(ctx)
	if err != nil {
		return fmt.Errorf("error listing sessions: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(out, "No active sessions found.")
		return nil
	}
	fmt.Fprintln(out, "Active Sessions:")
	for _, id := range ids {
		fmt.Fprintln(out, "- "+id)
	}
	return nil
}

// InspectSession prints the checkpoint of a running session, optionally as a highlighted diagram.
func InspectSession(ctx context.Context, cfg config.Config, sessionID string, asGraph bool, out io.Writer) error {
	mgr, closeFn, err := openSessions(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	state, err := mgr.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("error loading session '%s': %w", sessionID, err)
	}

	if asGraph {
		steps, entry := intake.Workflow()
		fmt.Fprint(out, graph.GenerateMermaid(steps, entry, &graph.GraphOverlay{
			VisitedSteps: visitedSteps(state),
			CurrentStep:  state.CurrentStep,
		}))
		return nil
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling state: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// RemoveSessions deletes leftover checkpoints, e.g. after a driver crashed.
func RemoveSessions(ctx context.Context, cfg config.Config, ids []string, out io.Writer) error {
	mgr, closeFn, err := openSessions(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	var errs []error
	for _, id := range ids {
		if err := mgr.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("error removing '%s': %w", id, err))
			continue
		}
		fmt.Fprintf(out, "Removed session '%s'\n", id)
	}
	return errors.Join(errs...)
}

// visitedSteps infers the path so far from the fields a run has populated.
func visitedSteps(s *domain.State) []domain.StepID {
	var visited []domain.StepID
	if s.Steps > 0 {
		visited = append(visited, domain.StepDetectUserType)
	}
	if s.OwnerDetails != nil {
		visited = append(visited, domain.StepCollectOwnerDetails)
	}
	if s.InspectionDate != "" {
		visited = append(visited, domain.StepScheduleInspection)
	}
	if s.ResidentPreferences != "" {
		visited = append(visited, domain.StepCollectResidentPreferences)
	}
	if s.Properties != "" {
		visited = append(visited, domain.StepMatchProperties)
	}
	return visited
}
