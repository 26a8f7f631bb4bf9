package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRunMetrics_ObserveWorker(t *testing.T) {
	t.Parallel()

	m := NewRunMetrics()
	m.ObserveWorker(0, 100, 50_000, 2*time.Millisecond)
	m.ObserveWorker(1, 100, 48_000, 3*time.Millisecond)

	if got := testutil.ToFloat64(m.workersCompleted); got != 2 {
		t.Errorf("workers_completed_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.samplesDrawn); got != 200 {
		t.Errorf("samples_drawn_total = %v, want 200", got)
	}
	if got := testutil.ToFloat64(m.workerTotal.WithLabelValues("1")); got != 48_000 {
		t.Errorf("worker_total{worker=\"1\"} = %v, want 48000", got)
	}

	count, err := testutil.GatherAndCount(m.Gatherer(), "threadsum_worker_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 worker_total series, got %d", count)
	}
}

func TestRunMetrics_WriteTextfile(t *testing.T) {
	t.Parallel()

	m := NewRunMetrics()
	m.ObserveWorker(0, 5, 35, time.Microsecond)
	m.ObserveRun(time.Millisecond)
	m.ObserveBest(35)

	path := filepath.Join(t.TempDir(), "threadsum.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	body := string(data)
	for _, want := range []string{
		"threadsum_best_total 35",
		"threadsum_run_duration_seconds 0.001",
		"threadsum_samples_drawn_total 5",
		`threadsum_worker_total{worker="0"} 35`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("textfile should contain %q, got:\n%s", want, body)
		}
	}
}
