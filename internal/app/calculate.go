package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/threadsum/internal/cli"
	"github.com/agbru/threadsum/internal/config"
	apperrors "github.com/agbru/threadsum/internal/errors"
	"github.com/agbru/threadsum/internal/logging"
	"github.com/agbru/threadsum/internal/metrics"
	"github.com/agbru/threadsum/internal/orchestration"
	"github.com/agbru/threadsum/internal/sysmon"
	"github.com/agbru/threadsum/internal/ui"
)

// runCalculate builds the coordinator, runs every worker and presents the
// results.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	cfg := a.Config
	runMetrics := metrics.NewRunMetrics()
	memCollector := metrics.NewMemoryCollector()

	coord, err := orchestration.NewCoordinator(cfg.Threads, cfg.Samples, cfg.Min, cfg.Max,
		orchestration.WithLogger(a.Logger),
		orchestration.WithRecorder(runMetrics),
	)
	if err != nil {
		return apperrors.HandleError(err, a.ErrWriter)
	}

	if cfg.Details && !cfg.Quiet {
		cli.PrintExecutionConfig(cfg, out)
	}

	// The spinner goes to stderr so that stdout only carries the report.
	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	if cfg.Quiet || cfg.Format == config.FormatJSON || !ui.IsTerminal(a.ErrWriter) {
		progressReporter = orchestration.NullProgressReporter{}
	}

	window := sysmon.Begin()
	before := memCollector.Snapshot()
	if err := orchestration.ExecuteRun(ctx, coord, progressReporter, a.ErrWriter); err != nil {
		return apperrors.HandleError(err, a.ErrWriter)
	}
	memDelta := memCollector.Snapshot().Sub(before)
	usage := window.End()

	presenter, err := cli.NewPresenter(cfg.Format, cli.PresenterOptions{
		Details: cfg.Details,
		Color:   ui.GetCurrentTheme().Name != ui.NoColorTheme.Name,
	})
	if err != nil {
		return apperrors.HandleError(err, a.ErrWriter)
	}

	var report orchestration.Report
	if cfg.Quiet {
		report, err = orchestration.BuildReport(coord)
		if err != nil {
			return apperrors.HandleError(err, a.ErrWriter)
		}
		cli.DisplayQuietResult(out, report.Best)
	} else {
		var code int
		report, code = orchestration.PresentResults(coord, presenter, out)
		if code != apperrors.ExitSuccess {
			return code
		}
		if cfg.Details && cfg.Format != config.FormatJSON {
			cli.DisplayMemoryStats(memDelta, out)
			cli.DisplaySystemUsage(usage, out)
		}
	}
	runMetrics.ObserveBest(report.Best.Total)

	return a.writeArtifacts(report, runMetrics, out)
}

// writeArtifacts saves the optional report and metrics files.
func (a *Application) writeArtifacts(report orchestration.Report, runMetrics *metrics.RunMetrics, out io.Writer) int {
	cfg := a.Config
	if cfg.OutputFile != "" {
		// Files never carry ANSI colors.
		filePresenter, err := cli.NewPresenter(cfg.Format, cli.PresenterOptions{Details: cfg.Details})
		if err == nil {
			err = cli.WriteReportToFile(report, filePresenter, cfg.OutputFile)
		}
		if err != nil {
			a.Logger.Error("saving report", err, logging.String("path", cfg.OutputFile))
			return apperrors.HandleError(apperrors.WrapError(err, "saving report"), a.ErrWriter)
		}
		if !cfg.Quiet && cfg.Format != config.FormatJSON {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
		}
	}

	if cfg.MetricsFile != "" {
		if err := runMetrics.WriteTextfile(cfg.MetricsFile); err != nil {
			a.Logger.Error("saving metrics", err, logging.String("path", cfg.MetricsFile))
			return apperrors.HandleError(apperrors.WrapError(err, "saving metrics"), a.ErrWriter)
		}
		a.Logger.Info("metrics written", logging.String("path", cfg.MetricsFile))
	}
	return apperrors.ExitSuccess
}
