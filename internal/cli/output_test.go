package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/threadsum/internal/metrics"
	"github.com/agbru/threadsum/internal/sysmon"
)

func TestWriteReportToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	t.Run("writes into nested directory", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(tmpDir, "reports", "run.txt")
		if err := WriteReportToFile(sampleReport(), TextPresenter{}, path); err != nil {
			t.Fatalf("WriteReportToFile: %v", err)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if !strings.Contains(string(content), "El hilo con mayor puntaje es el #1 con 53210 puntos.") {
			t.Errorf("file should contain the winner line, got:\n%s", content)
		}
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		t.Parallel()
		if err := WriteReportToFile(sampleReport(), TextPresenter{}, ""); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("unwritable path", func(t *testing.T) {
		t.Parallel()
		blocker := filepath.Join(tmpDir, "blocker")
		if err := os.WriteFile(blocker, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		if err := WriteReportToFile(sampleReport(), TextPresenter{}, filepath.Join(blocker, "out.txt")); err == nil {
			t.Error("expected an error when the parent is a regular file")
		}
	})
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemorySnapshot{HeapAlloc: 2048, TotalAlloc: 1 << 20, NumGC: 3, PauseTotalNs: 1_500_000}, &buf)
	for _, want := range []string{"2.0 KiB", "1.0 MiB", "GC cycles:       3", "1.50ms"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output should contain %q, got:\n%s", want, buf.String())
		}
	}
}

func TestDisplaySystemUsage(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplaySystemUsage(sysmon.Usage{CPUPercent: 87.5, MemStartPercent: 41, MemEndPercent: 42.5}, &buf)
	for _, want := range []string{"System Usage:", "87.5%", "41.0% -> 42.5%"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output should contain %q, got:\n%s", want, buf.String())
		}
	}
}
