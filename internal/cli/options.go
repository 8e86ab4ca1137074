package cli

import (
	"log/slog"

	"github.com/aretw0/libstate/internal/logging"
)

// Options carries the settings shared by every command.
type Options struct {
	Path     string
	LogLevel string
	Strict   bool
}

// RunOptions configures the run command.
type RunOptions struct {
	Options
	Runs int
}

// ServeOptions configures the serve command.
type ServeOptions struct {
	Options
	Addr string
}

// createLogger configures the application logger. It writes to Stderr to keep
// Stdout free for reports.
func createLogger(level string) (*slog.Logger, error) {
	if level == "" {
		return logging.NewNop(), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}
