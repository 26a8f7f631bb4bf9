package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/agbru/threadsum/internal/errors"
	"github.com/agbru/threadsum/internal/worker"
)

// EnvPrefix is prepended to every environment variable read by the config.
const EnvPrefix = "THREADSUM_"

// Default run parameters.
const (
	DefaultThreads = 10
	DefaultSamples = 100
	DefaultMin     = 1
	DefaultMax     = 1000
)

// Output formats accepted by --format.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Threads is the number of workers to spawn.
	Threads int
	// Samples is the number of draws per worker.
	Samples int
	// Min and Max are the inclusive bounds of each draw.
	Min int
	Max int

	// Format selects the result presenter.
	Format string
	// OutputFile, if set, receives a copy of the report.
	OutputFile string
	// MetricsFile, if set, receives the run metrics in Prometheus text format.
	MetricsFile string
	// Quiet prints only the winner.
	Quiet bool
	// Details adds per-worker durations and memory statistics.
	Details bool
	// Verbose enables debug logging on stderr.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// Completion, if set, names the shell to print a completion script for.
	Completion string
}

// Validate checks the configuration for semantic errors before any worker is
// spawned.
func (c AppConfig) Validate() error {
	if c.Threads < 1 {
		return apperrors.ValidationError{Field: "threads", Message: "must be at least 1"}
	}
	if err := (worker.Config{Samples: c.Samples, Min: c.Min, Max: c.Max}).Validate(); err != nil {
		return err
	}
	switch c.Format {
	case FormatText, FormatTable, FormatJSON:
	default:
		return apperrors.ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unknown format %q (want one of %s)", c.Format, strings.Join(Formats(), ", ")),
		}
	}
	return nil
}

// Formats lists the accepted output formats.
func Formats() []string {
	return []string{FormatText, FormatTable, FormatJSON}
}

// ParseConfig parses the command-line arguments, applies THREADSUM_*
// environment overrides for flags that were not set, and validates the result.
//
// Priority: CLI flags > environment variables > defaults.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	return parseConfig(programName, args, errorWriter, nil)
}

func parseConfig(programName string, args []string, errorWriter io.Writer, environ map[string]string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errorWriter, "Sums random samples on concurrent workers and reports the best worker.\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nEvery option can also be set through %s<NAME> environment variables.\n", EnvPrefix)
	}

	config := AppConfig{}
	fs.IntVar(&config.Threads, "threads", DefaultThreads, "Number of workers.")
	fs.IntVar(&config.Threads, "t", DefaultThreads, "Number of workers (shorthand).")
	fs.IntVar(&config.Samples, "samples", DefaultSamples, "Samples drawn by each worker.")
	fs.IntVar(&config.Samples, "s", DefaultSamples, "Samples drawn by each worker (shorthand).")
	fs.IntVar(&config.Min, "min", DefaultMin, "Inclusive lower bound of each sample; must be >= 0 (totals are unsigned).")
	fs.IntVar(&config.Max, "max", DefaultMax, "Inclusive upper bound of each sample.")
	fs.StringVar(&config.Format, "format", FormatText, "Output format: "+strings.Join(Formats(), ", ")+".")
	fs.StringVar(&config.Format, "f", FormatText, "Output format (shorthand).")
	fs.StringVar(&config.OutputFile, "output", "", "Also write the report to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Also write the report to this file (shorthand).")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the winning worker.")
	fs.BoolVar(&config.Quiet, "q", false, "Print only the winning worker (shorthand).")
	fs.BoolVar(&config.Details, "details", false, "Show per-worker durations and memory statistics.")
	fs.BoolVar(&config.Details, "d", false, "Show details (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable debug logging on stderr.")
	fs.BoolVar(&config.Verbose, "v", false, "Enable debug logging (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish) and exit.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if err := applyEnvOverrides(&config, fs, environ); err != nil {
		return AppConfig{}, err
	}
	config.Format = strings.ToLower(config.Format)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	return config, nil
}
