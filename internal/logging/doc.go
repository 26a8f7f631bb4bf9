// Package logging provides a unified logging interface for threadsum.
// It abstracts the underlying logging implementation so that the
// orchestration layer can emit structured diagnostics without depending on
// zerolog directly.
package logging
