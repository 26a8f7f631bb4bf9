// Package orchestration fans the worker tasks out onto goroutines, joins them
// and aggregates their totals. It decouples the run from presentation via the
// ProgressReporter and ResultPresenter interfaces.
package orchestration
