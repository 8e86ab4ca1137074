package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/libstate/internal/presentation/tui"
	"github.com/aretw0/libstate/internal/validator"
)

// Inspect prints a markdown report of the definition's states, transitions and
// validation findings. render formats the markdown for the output.
func Inspect(opts Options, out io.Writer, render func(string) (string, error)) error {
	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return err
	}
	def, g, err := loadGraph(opts.Path, logger)
	if err != nil {
		return err
	}

	d := g.Inspect()
	md := tui.Markdown(tui.Summary[string]{
		Name:        def.Name,
		Description: def.Description,
		Graph:       d,
		Validation:  validator.Validate(d, validator.Strict(opts.Strict)),
	})
	rendered, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
