package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/intake/pkg/domain"
)

// LoggingHooks logs every lifecycle event with the given logger.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.InfoContext(ctx, "step_enter", "session_id", e.SessionID, "step", e.StepID)
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			attrs := []any{"session_id", e.SessionID, "step", e.StepID, "next", e.Next}
			if e.Diff != nil && e.Diff.Messages != nil {
				attrs = append(attrs, "messages_appended", len(e.Diff.Messages.Appended))
			}
			logger.InfoContext(ctx, "step_leave", attrs...)
		},
		OnExtractionAttempt: func(ctx context.Context, e *domain.ExtractionEvent) {
			logger.InfoContext(ctx, "extraction_attempt",
				"session_id", e.SessionID,
				"target", e.Target,
				"attempt", e.Attempt,
				"is_error", e.IsError,
			)
		},
		OnRunFinish: func(ctx context.Context, e *domain.RunEvent) {
			level := slog.LevelInfo
			if e.Err != nil {
				level = slog.LevelError
			}
			logger.Log(ctx, level, "run_finish",
				"session_id", e.SessionID,
				"status", e.Status,
				"steps", e.Steps,
				"error", e.Err,
			)
		},
	}
}

// Compose fans each event out to every non-nil hook, in order.
func Compose(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range all {
		if h.OnStepEnter != nil {
			prev := out.OnStepEnter
			out.OnStepEnter = func(ctx context.Context, e *domain.StepEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnStepEnter(ctx, e)
			}
		}
		if h.OnStepLeave != nil {
			prev := out.OnStepLeave
			out.OnStepLeave = func(ctx context.Context, e *domain.StepEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnStepLeave(ctx, e)
			}
		}
		if h.OnExtractionAttempt != nil {
			prev := out.OnExtractionAttempt
			out.OnExtractionAttempt = func(ctx context.Context, e *domain.ExtractionEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnExtractionAttempt(ctx, e)
			}
		}
		if h.OnRunFinish != nil {
			prev := out.OnRunFinish
			out.OnRunFinish = func(ctx context.Context, e *domain.RunEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnRunFinish(ctx, e)
			}
		}
	}
	return out
}
