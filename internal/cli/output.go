// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
//   - Write* functions write data to files on the filesystem.

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agbru/threadsum/internal/format"
	"github.com/agbru/threadsum/internal/metrics"
	"github.com/agbru/threadsum/internal/orchestration"
	"github.com/agbru/threadsum/internal/sysmon"
)

// WriteReportToFile renders report with presenter into path, creating parent
// directories as needed.
func WriteReportToFile(report orchestration.Report, presenter orchestration.ResultPresenter, path string) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := presenter.PresentReport(report, file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return file.Close()
}

// DisplayMemoryStats shows memory statistics gathered around a run.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(snap.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", snap.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(snap.PauseTotalNs)/1e6)
}

// DisplaySystemUsage shows system-wide CPU usage over the run and the memory
// usage before and after it.
func DisplaySystemUsage(usage sysmon.Usage, out io.Writer) {
	fmt.Fprintf(out, "\nSystem Usage:\n")
	fmt.Fprintf(out, "  CPU during run:  %.1f%%\n", usage.CPUPercent)
	fmt.Fprintf(out, "  Memory in use:   %.1f%% -> %.1f%%\n", usage.MemStartPercent, usage.MemEndPercent)
}
