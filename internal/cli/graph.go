package cli

import (
	"fmt"
	"io"

	pgraph "github.com/aretw0/libstate/internal/presentation/graph"
)

// Graph prints the Mermaid flowchart of the definition.
func Graph(opts Options, out io.Writer) error {
	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return err
	}
	_, g, err := loadGraph(opts.Path, logger)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, pgraph.GenerateMermaid(g.Inspect(), nil))
	return err
}
