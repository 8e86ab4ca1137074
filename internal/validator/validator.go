package validator

import (
	"fmt"

	"github.com/aretw0/libstate/pkg/graph"
)

// Severity ranks a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single problem detected in a graph.
type Finding struct {
	Severity Severity
	StateID  any
	Message  string
}

func (f Finding) Error() string {
	if f.StateID == nil {
		return f.Message
	}
	return fmt.Sprintf("state %v: %s", f.StateID, f.Message)
}

// AggregateError collects every error-level finding.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Report is the outcome of a validation pass.
type Report struct {
	Findings  []Finding
	Reachable int
}

// Err returns an AggregateError holding the error-level findings, or nil.
func (r Report) Err() error {
	var errs []error
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			errs = append(errs, f)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: errs}
}

// Warnings returns the warning-level findings.
func (r Report) Warnings() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			out = append(out, f)
		}
	}
	return out
}

// Option tunes validation.
type Option func(*config)

type config struct {
	strict bool
}

// Strict reports shadowed fallbacks as errors instead of warnings.
func Strict(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}

// Validate walks the graph from its entry transition and reports structural
// problems: entry count, dangling transitions, unreachable states and
// shadowed fallbacks.
func Validate[K comparable](d graph.Description[K], opts ...Option) Report {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		report   Report
		entries  []graph.TransitionInfo[K]
		outgoing = make(map[K][]graph.TransitionInfo[K])
	)
	add := func(sev Severity, id any, format string, args ...any) {
		report.Findings = append(report.Findings, Finding{Severity: sev, StateID: id, Message: fmt.Sprintf(format, args...)})
	}

	for _, t := range d.Transitions {
		if t.Entry {
			entries = append(entries, t)
			continue
		}
		if !d.Registered(t.Source) {
			add(SeverityWarning, t.Source, "transitions leave an unregistered state and are ignored")
			continue
		}
		if !d.Registered(t.Destination) {
			add(SeverityError, t.Source, "transition to %v references an unregistered state", t.Destination)
			continue
		}
		outgoing[t.Source] = append(outgoing[t.Source], t)
	}

	if len(entries) != 1 {
		add(SeverityError, nil, "expected exactly one entry transition, found %d", len(entries))
		return report
	}

	start := entries[0].Destination
	if !d.Registered(start) {
		add(SeverityError, start, "entry transition targets an unregistered state")
		return report
	}

	visited := map[K]bool{start: true}
	queue := []K{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		unguarded := 0
		for _, t := range outgoing[id] {
			if !t.Guarded {
				unguarded++
			}
			if !visited[t.Destination] {
				visited[t.Destination] = true
				queue = append(queue, t.Destination)
			}
		}
		if unguarded > 1 {
			sev := SeverityWarning
			if cfg.strict {
				sev = SeverityError
			}
			add(sev, id, "%d unguarded transitions; only the first is ever taken", unguarded)
		}
	}
	report.Reachable = len(visited)

	for _, s := range d.States {
		if !visited[s.ID] {
			add(SeverityWarning, s.ID, "unreachable from the entry transition")
		}
	}

	return report
}
