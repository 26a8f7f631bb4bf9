// Package config parses command-line flags and THREADSUM_* environment
// variables into an AppConfig and validates it.
package config
