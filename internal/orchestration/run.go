package orchestration

import (
	"context"
	"io"
	"sync"

	apperrors "github.com/agbru/threadsum/internal/errors"
)

// ExecuteRun runs every worker of c while reporter displays activity on out.
// It returns once the workers have joined and the reporter has stopped.
func ExecuteRun(ctx context.Context, c *Coordinator, reporter ProgressReporter, out io.Writer) error {
	done := make(chan struct{})

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, done, c.Len(), out)

	err := c.RunAll(ctx)
	close(done)
	displayWg.Wait()

	return err
}

// BuildReport collects the summaries and the winner of a finished run.
func BuildReport(c *Coordinator) (Report, error) {
	summaries, err := c.Summaries()
	if err != nil {
		return Report{}, err
	}
	best, err := c.Best()
	if err != nil {
		return Report{}, err
	}
	var samples, minValue, maxValue int
	if len(c.tasks) > 0 {
		cfg := c.tasks[0].Config()
		samples, minValue, maxValue = cfg.Samples, cfg.Min, cfg.Max
	}
	return Report{
		Threads:   len(summaries),
		Samples:   samples,
		Min:       minValue,
		Max:       maxValue,
		Summaries: summaries,
		Best:      best,
		Elapsed:   c.Elapsed(),
	}, nil
}

// PresentResults renders the report of a finished run and returns the exit
// code for the process.
func PresentResults(c *Coordinator, presenter ResultPresenter, out io.Writer) (Report, int) {
	report, err := BuildReport(c)
	if err != nil {
		return Report{}, apperrors.HandleError(err, out)
	}
	if err := presenter.PresentReport(report, out); err != nil {
		return report, apperrors.HandleError(apperrors.WrapError(err, "presenting results"), out)
	}
	return report, apperrors.ExitSuccess
}
