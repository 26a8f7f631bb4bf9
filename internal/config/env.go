// This file contains environment variable overrides for the configuration.

package config

import (
	"flag"

	"github.com/caarlos0/env/v11"

	apperrors "github.com/agbru/threadsum/internal/errors"
)

// envConfig mirrors the overridable part of AppConfig. Pointer fields stay nil
// when the variable is unset, which separates "absent" from "zero".
type envConfig struct {
	Threads     *int    `env:"THREADS"`
	Samples     *int    `env:"SAMPLES"`
	Min         *int    `env:"MIN"`
	Max         *int    `env:"MAX"`
	Format      *string `env:"FORMAT"`
	OutputFile  *string `env:"OUTPUT"`
	MetricsFile *string `env:"METRICS_FILE"`
	Quiet       *bool   `env:"QUIET"`
	Details     *bool   `env:"DETAILS"`
	Verbose     *bool   `env:"VERBOSE"`
	NoColor     *bool   `env:"NO_COLOR"`
}

// envOverride maps one envConfig field to the CLI flag name(s) that take
// precedence over it.
type envOverride struct {
	flags []string
	apply func(*AppConfig, envConfig)
}

var envOverrides = []envOverride{
	{[]string{"threads", "t"}, func(c *AppConfig, e envConfig) { setIfPresent(&c.Threads, e.Threads) }},
	{[]string{"samples", "s"}, func(c *AppConfig, e envConfig) { setIfPresent(&c.Samples, e.Samples) }},
	{[]string{"min"}, func(c *AppConfig, e envConfig) { setIfPresent(&c.Min, e.Min) }},
	{[]string{"max"}, func(c *AppConfig, e envConfig) { setIfPresent(&c.Max, e.Max) }},
	{[]string{"format", "f"}, func(c *AppConfig, e envConfig) { setIfPresent(&c.Format, e.Format) }},
	{[]string{"output", "o"}, func(c *AppConfig, e envConfig) { setIfPresent(&c.OutputFile, e.OutputFile) }},
	{[]string{"metrics-file"}, func(c *AppConfig, e envConfig) { setIfPresent(&c.MetricsFile, e.MetricsFile) }},
	{[]string{"quiet", "q"}, func(c *AppConfig, e envConfig) { setIfPresent(&c.Quiet, e.Quiet) }},
	{[]string{"details", "d"}, func(c *AppConfig, e envConfig) { setIfPresent(&c.Details, e.Details) }},
	{[]string{"verbose", "v"}, func(c *AppConfig, e envConfig) { setIfPresent(&c.Verbose, e.Verbose) }},
	{[]string{"no-color"}, func(c *AppConfig, e envConfig) { setIfPresent(&c.NoColor, e.NoColor) }},
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// applyEnvOverrides applies THREADSUM_* environment variables to the
// configuration for any flags that were not explicitly set on the command line.
// A nil environ reads the process environment.
//
// Supported variables: THREADS, SAMPLES, MIN, MAX, FORMAT, OUTPUT,
// METRICS_FILE, QUIET, DETAILS, VERBOSE, NO_COLOR.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet, environ map[string]string) error {
	var parsed envConfig
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&parsed, opts); err != nil {
		return apperrors.NewConfigError("invalid environment: %v", err)
	}

	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		o.apply(config, parsed)
	}
	return nil
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}
