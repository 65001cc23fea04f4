package runtime

import (
	"context"
	"time"

	"github.com/aretw0/intake/pkg/domain"
)

func (e *Engine) base(t domain.EventType, s *domain.State) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		SessionID: s.SessionID,
	}
}

func (e *Engine) emitStepEnter(ctx context.Context, s *domain.State, id domain.StepID) {
	if e.hooks.OnStepEnter == nil {
		return
	}
	e.hooks.OnStepEnter(ctx, &domain.StepEvent{
		EventBase: e.base(domain.EventStepEnter, s),
		StepID:    id,
	})
}

func (e *Engine) emitStepLeave(ctx context.Context, s *domain.State, id, next domain.StepID, diff *domain.StateDiff) {
	if e.hooks.OnStepLeave == nil {
		return
	}
	e.hooks.OnStepLeave(ctx, &domain.StepEvent{
		EventBase: e.base(domain.EventStepLeave, s),
		StepID:    id,
		Next:      next,
		Diff:      diff,
	})
}

func (e *Engine) emitRunFinish(ctx context.Context, s *domain.State, err error) {
	if e.hooks.OnRunFinish == nil {
		return
	}
	e.hooks.OnRunFinish(ctx, &domain.RunEvent{
		EventBase: e.base(domain.EventRunFinish, s),
		Status:    s.Status,
		Steps:     s.Steps,
		Err:       err,
	})
}

// extractionObserver logs repair attempts and forwards them to the hooks.
func (e *Engine) extractionObserver(ctx context.Context, s *domain.State, target string) func(int, error) {
	return func(attempt int, err error) {
		if err != nil {
			e.logger.Warn("malformed structured output",
				"session_id", s.SessionID,
				"step", s.CurrentStep,
				"target", target,
				"attempt", attempt,
				"error", err)
		}
		if e.hooks.OnExtractionAttempt == nil {
			return
		}
		e.hooks.OnExtractionAttempt(ctx, &domain.ExtractionEvent{
			EventBase: e.base(domain.EventExtractionAttempt, s),
			StepID:    s.CurrentStep,
			Target:    target,
			Attempt:   attempt,
			IsError:   err != nil,
		})
	}
}
