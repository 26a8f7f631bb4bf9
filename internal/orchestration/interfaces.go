package orchestration

import (
	"io"
	"sync"
	"time"
)

// Summary is the outcome of a single worker, read after the join barrier.
type Summary struct {
	// ID is the worker identifier (0..threads-1).
	ID int `json:"id"`
	// Total is the accumulated sum of the worker's samples.
	Total uint64 `json:"total"`
	// Duration is the time the worker spent drawing samples.
	Duration time.Duration `json:"duration_ns"`
}

// Report gathers everything a presenter needs to render a finished run.
type Report struct {
	Threads   int           `json:"threads"`
	Samples   int           `json:"samples_per_thread"`
	Min       int           `json:"min_value"`
	Max       int           `json:"max_value"`
	Summaries []Summary     `json:"workers"`
	Best      Summary       `json:"best"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// ProgressReporter displays activity while the coordinator waits on its join
// barrier. Workers never talk to the reporter; it only observes that the run
// is in flight.
type ProgressReporter interface {
	// DisplayProgress runs until done is closed, then calls wg.Done.
	// It should be called in a separate goroutine.
	DisplayProgress(wg *sync.WaitGroup, done <-chan struct{}, numWorkers int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, done <-chan struct{}, numWorkers int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, done <-chan struct{}, numWorkers int, out io.Writer) {
	f(wg, done, numWorkers, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress waits for done without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, done <-chan struct{}, _ int, _ io.Writer) {
	defer wg.Done()
	<-done
}

// ResultPresenter defines the interface for presenting a finished run,
// allowing different output formats (text, table, JSON) without modifying the
// orchestration logic.
type ResultPresenter interface {
	PresentReport(report Report, out io.Writer) error
}

// RunRecorder receives run statistics. Implementations must be safe for
// concurrent use since ObserveWorker is called from worker goroutines.
type RunRecorder interface {
	ObserveWorker(id int, samples int, total uint64, d time.Duration)
	ObserveRun(d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveWorker(int, int, uint64, time.Duration) {}
func (nopRecorder) ObserveRun(time.Duration)                      {}
