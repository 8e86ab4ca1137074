package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/libstate/internal/validator"
)

// Validate loads the definition and reports structural problems.
// Warnings are printed; error-level findings fail the command.
func Validate(opts Options, out io.Writer) error {
	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return err
	}
	_, g, err := loadGraph(opts.Path, logger)
	if err != nil {
		return err
	}

	report := validator.Validate(g.Inspect(), validator.Strict(opts.Strict))
	for _, w := range report.Warnings() {
		fmt.Fprintf(out, "warning: %s\n", w.Error())
	}
	if err := report.Err(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Graph is valid: %d states reachable.\n", report.Reachable)
	return nil
}
