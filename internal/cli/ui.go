//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/threadsum/internal/format"
	"github.com/agbru/threadsum/internal/orchestration"
)

// ProgressRefreshRate defines the refresh frequency of the spinner.
const ProgressRefreshRate = 100 * time.Millisecond

// Spinner abstracts a terminal spinner so that DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner showing the elapsed time until the workers have joined.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress forwards to the package-level DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, done <-chan struct{}, numWorkers int, out io.Writer) {
	DisplayProgress(wg, done, numWorkers, out)
}

// DisplayProgress shows a spinner on out until done is closed. With no
// workers there is nothing to wait for and it returns as soon as done closes.
func DisplayProgress(wg *sync.WaitGroup, done <-chan struct{}, numWorkers int, out io.Writer) {
	defer wg.Done()
	if numWorkers <= 0 {
		<-done
		return
	}

	s := newSpinner(out)
	start := time.Now()
	s.UpdateSuffix(progressSuffix(numWorkers, 0))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(numWorkers, time.Since(start)))
		}
	}
}

func progressSuffix(numWorkers int, elapsed time.Duration) string {
	return fmt.Sprintf(" Waiting for %d workers... %s", numWorkers, format.FormatExecutionDuration(elapsed))
}
