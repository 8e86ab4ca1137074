package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/libstate/pkg/domain"
	"github.com/aretw0/libstate/pkg/observability"
)

// Execute handles the 'run' command: it runs the graph opts.Runs times on the
// same runner and prints one line per run. The first SIGINT stops the current
// run gracefully and skips the remaining ones.
func Execute(ctx context.Context, opts RunOptions, out io.Writer) error {
	if opts.Runs < 1 {
		return fmt.Errorf("--runs must be at least 1 (got %d)", opts.Runs)
	}

	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return err
	}
	_, g, err := loadGraph(opts.Path, logger)
	if err != nil {
		return err
	}
	r, err := createRunner(g, opts.Options, logger, observability.LoggingHooks(logger))
	if err != nil {
		return err
	}

	sc := NewSignalContext(ctx, r.Stop)
	defer sc.Close()

	return runAll(sc, r, opts.Runs, out)
}

type runnable interface {
	Run(ctx context.Context) (domain.Report[string], error)
}

func runAll(ctx context.Context, r runnable, runs int, out io.Writer) error {
	for i := 1; i <= runs; i++ {
		report, err := r.Run(ctx)
		printReport(out, i, report)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if report.Outcome != domain.OutcomeCompleted {
			return nil
		}
	}
	return nil
}

func printReport(out io.Writer, n int, report domain.Report[string]) {
	last := "-"
	if report.Visits > 0 {
		last = report.Last
	}
	fmt.Fprintf(out, "run %d: %s after %d visits (last: %s, %s)\n",
		n, report.Outcome, report.Visits, last, report.Duration.Round(time.Microsecond))
}
