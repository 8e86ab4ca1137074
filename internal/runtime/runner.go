package runtime

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/libstate/pkg/domain"
	"github.com/aretw0/libstate/pkg/graph"
)

// Runner drives a baked graph. Run must not be called concurrently; Stop may be
// called from any goroutine.
type Runner[K comparable] struct {
	plan   *plan[K]
	logger *slog.Logger
	hooks  domain.LifecycleHooks

	// snapshot is the initial state's memory as it was before the last run began.
	snapshot domain.Memory

	stop    atomic.Bool
	running atomic.Bool
}

// NewRunner bakes g and returns a runner for it.
func NewRunner[K comparable](g *graph.Graph[K], opts ...Option) (*Runner[K], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p, err := bake(g, cfg)
	if err != nil {
		return nil, err
	}

	return &Runner[K]{
		plan:   p,
		logger: cfg.logger,
		hooks:  cfg.hooks,
	}, nil
}

// Initial returns the state every run starts from.
func (r *Runner[K]) Initial() *domain.State[K] {
	return r.plan.initial
}

// Stop requests the current run to end after the visit in progress.
// A stop requested while idle ends the next run before its first visit.
func (r *Runner[K]) Stop() {
	r.stop.Store(true)
}

// Running reports whether a run is in progress.
func (r *Runner[K]) Running() bool {
	return r.running.Load()
}

// Run executes the graph from its initial state until a terminal state is reached,
// Stop is requested or ctx is canceled. Hook failures abort the run with a
// *domain.RunAbortedError; effects already applied are kept.
func (r *Runner[K]) Run(ctx context.Context) (domain.Report[K], error) {
	if !r.running.CompareAndSwap(false, true) {
		return domain.Report[K]{}, domain.ErrAlreadyRunning
	}
	defer r.running.Store(false)
	defer r.stop.Store(false)

	initial := r.plan.initial
	if r.snapshot != nil {
		initial.ReplaceMemory(r.snapshot)
	}
	r.snapshot = initial.CloneMemory()

	start := time.Now()
	r.emitRunStart(ctx, initial.ID(), start)

	var (
		report   domain.Report[K]
		runErr   error
		current  = initial
		incoming *domain.Transition[K]
	)

	for current != nil {
		if r.stop.Load() {
			break
		}
		if err := ctx.Err(); err != nil {
			report.Outcome = domain.OutcomeCanceled
			runErr = err
			break
		}

		report.Visits++
		report.Last = current.ID()

		next, err := r.visit(ctx, current, incoming)
		if err != nil {
			report.Outcome = domain.OutcomeAborted
			runErr = &domain.RunAbortedError{Visits: report.Visits, Err: err}
			break
		}

		incoming = next
		if next == nil {
			current = nil
		} else {
			current = next.Destination()
		}
	}

	if report.Outcome == "" {
		if current == nil {
			report.Outcome = domain.OutcomeCompleted
		} else {
			report.Outcome = domain.OutcomeStopped
		}
	}
	report.Duration = time.Since(start)

	r.logger.Debug("run finished",
		"outcome", report.Outcome,
		"visits", report.Visits,
		"duration", report.Duration,
		"err", runErr)
	r.emitRunEnd(ctx, initial.ID(), report, runErr)

	return report, runErr
}

// visit processes one state and returns the transition taken, or nil when the
// state is terminal.
func (r *Runner[K]) visit(ctx context.Context, state *domain.State[K], incoming *domain.Transition[K]) (*domain.Transition[K], error) {
	id := state.ID()
	selfLoop := false
	if incoming != nil {
		if src, ok := incoming.SourceID(); ok && src == id {
			selfLoop = true
		}
	}

	r.logger.Debug("visiting state", "state_id", id, "self_loop", selfLoop)
	r.emitVisit(ctx, id, selfLoop)

	if entry := state.EntryAction(); entry != nil && !selfLoop {
		if err := entry(ctx, state); err != nil {
			return nil, &domain.ActionError{Hook: domain.HookEntry, StateID: id, Err: err}
		}
	}

	if do := state.DoAction(); do != nil {
		if err := do(ctx, state); err != nil {
			return nil, &domain.ActionError{Hook: domain.HookDo, StateID: id, Err: err}
		}
	}

	selected, err := r.selectTransition(ctx, state)
	if err != nil {
		return nil, err
	}

	if exit := state.ExitAction(); exit != nil && (selected == nil || selected.DestinationID() != id) {
		if err := exit(ctx, state); err != nil {
			return nil, &domain.ActionError{Hook: domain.HookExit, StateID: id, Err: err}
		}
	}

	if selected == nil {
		return nil, nil
	}

	if action := selected.Action(); action != nil {
		if err := action(ctx, selected); err != nil {
			return nil, &domain.ActionError{Hook: domain.HookTransition, StateID: id, Err: err}
		}
	}

	// Hand-off is a copy so no two states share one memory.
	selected.Destination().ReplaceMemory(state.CloneMemory())

	r.logger.Debug("transition taken",
		"from", id,
		"to", selected.DestinationID(),
		"guarded", selected.Guarded())
	r.emitTransition(ctx, selected)

	return selected, nil
}

// selectTransition returns the first transition whose guard is absent or holds.
func (r *Runner[K]) selectTransition(ctx context.Context, state *domain.State[K]) (*domain.Transition[K], error) {
	for _, t := range r.plan.edges[state] {
		cond := t.Condition()
		if cond == nil {
			return t, nil
		}
		ok, err := cond(ctx, t)
		if err != nil {
			return nil, &domain.ActionError{Hook: domain.HookCondition, StateID: state.ID(), Err: err}
		}
		if ok {
			return t, nil
		}
	}
	return nil, nil
}

func (r *Runner[K]) emitRunStart(ctx context.Context, initial K, at time.Time) {
	if r.hooks.OnRunStart == nil {
		return
	}
	r.hooks.OnRunStart(ctx, &domain.RunEvent{
		Timestamp: at,
		Initial:   initial,
	})
}

func (r *Runner[K]) emitRunEnd(ctx context.Context, initial K, report domain.Report[K], err error) {
	if r.hooks.OnRunEnd == nil {
		return
	}
	r.hooks.OnRunEnd(ctx, &domain.RunEvent{
		Timestamp: time.Now(),
		Initial:   initial,
		Outcome:   report.Outcome,
		Visits:    report.Visits,
		Duration:  report.Duration,
		Err:       err,
	})
}

func (r *Runner[K]) emitVisit(ctx context.Context, id K, selfLoop bool) {
	if r.hooks.OnVisit == nil {
		return
	}
	r.hooks.OnVisit(ctx, &domain.VisitEvent{
		Timestamp: time.Now(),
		StateID:   id,
		SelfLoop:  selfLoop,
	})
}

func (r *Runner[K]) emitTransition(ctx context.Context, t *domain.Transition[K]) {
	if r.hooks.OnTransition == nil {
		return
	}
	from, _ := t.SourceID()
	r.hooks.OnTransition(ctx, &domain.TransitionEvent{
		Timestamp: time.Now(),
		From:      from,
		To:        t.DestinationID(),
		Guarded:   t.Guarded(),
	})
}
