package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/threadsum/internal/cli"
	"github.com/agbru/threadsum/internal/config"
	apperrors "github.com/agbru/threadsum/internal/errors"
	"github.com/agbru/threadsum/internal/logging"
	"github.com/agbru/threadsum/internal/ui"
)

// Application represents the threadsum application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets a custom logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// The returned error is flag.ErrHelp when --help was requested.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "threadsum"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Logger == nil {
		app.Logger = newLogger(errWriter, cfg.Verbose)
	}
	return app, nil
}

// newLogger builds the stderr console logger. Info-level chatter is hidden
// unless --verbose is set, which also enables debug entries.
func newLogger(w io.Writer, verbose bool) logging.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
	return logging.NewZerologAdapter(zl)
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	// Reports piped or redirected into files stay free of ANSI escapes.
	ui.InitTheme(a.Config.NoColor || !ui.IsTerminal(out))
	return a.runCalculate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCodeFor maps a construction error to the process exit code.
func ExitCodeFor(err error) int {
	return apperrors.ExitCodeFor(err)
}
