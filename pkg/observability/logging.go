package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/libstate/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that record events on logger.
// Runs are logged at info level, visits and transitions at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run started", "initial", e.Initial)
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			attrs := []any{"outcome", e.Outcome, "visits", e.Visits, "duration", e.Duration}
			if e.Err != nil {
				logger.ErrorContext(ctx, "run failed", append(attrs, "err", e.Err)...)
				return
			}
			logger.InfoContext(ctx, "run finished", attrs...)
		},
		OnVisit: func(ctx context.Context, e *domain.VisitEvent) {
			logger.DebugContext(ctx, "state visited", "state", e.StateID, "self_loop", e.SelfLoop)
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.DebugContext(ctx, "transition taken", "from", e.From, "to", e.To, "guarded", e.Guarded)
		},
	}
}
