package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	apperrors "github.com/agbru/threadsum/internal/errors"
	"github.com/agbru/threadsum/internal/orchestration"
)

// run builds and runs the application, returning stdout, stderr and the exit code.
func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	application, err := New(append([]string{"threadsum", "--no-color"}, args...), &stderr)
	if err != nil {
		return "", stderr.String(), ExitCodeFor(err)
	}
	code := application.Run(context.Background(), &stdout)
	return stdout.String(), stderr.String(), code
}

func TestRun_DefaultReport(t *testing.T) {
	stdout, _, code := run(t)
	if code != apperrors.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}

	if !strings.HasPrefix(stdout, "Resultados por hilo (suma de 100 numeros entre 1 y 1000):\n") {
		t.Errorf("unexpected header:\n%s", stdout)
	}
	lines := regexp.MustCompile(`(?m)^  Hilo #(\d+) -> total = (\d+)$`).FindAllStringSubmatch(stdout, -1)
	if len(lines) != 10 {
		t.Fatalf("expected 10 worker lines, got %d:\n%s", len(lines), stdout)
	}
	for i, m := range lines {
		if m[1] != strconv.Itoa(i) {
			t.Errorf("line %d has id %s", i, m[1])
		}
	}
	if !regexp.MustCompile(`El hilo con mayor puntaje es el #\d+ con \d+ puntos\.\n$`).MatchString(stdout) {
		t.Errorf("missing winner line:\n%s", stdout)
	}
}

func TestRun_ConstantRangeQuiet(t *testing.T) {
	stdout, stderr, code := run(t, "-t", "1", "-s", "5", "--min", "7", "--max", "7", "-q")
	if code != apperrors.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if stdout != "0 35\n" {
		t.Errorf("expected %q, got %q", "0 35\n", stdout)
	}
	if stderr != "" {
		t.Errorf("a quiet run must leave stderr empty, got %q", stderr)
	}
}

// TestRun_PlainOutputWhenNotATerminal runs without --no-color: the report goes
// to a buffer, so it must carry no ANSI escapes and the winner line must be
// byte-exact.
func TestRun_PlainOutputWhenNotATerminal(t *testing.T) {
	var stdout, stderr bytes.Buffer
	application, err := New([]string{"threadsum", "-t", "1", "-s", "5", "--min", "7", "--max", "7"}, &stderr)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if code := application.Run(context.Background(), &stdout); code != apperrors.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}

	want := "Resultados por hilo (suma de 5 numeros entre 7 y 7):\n" +
		"  Hilo #0 -> total = 35\n" +
		"\n" +
		"El hilo con mayor puntaje es el #0 con 35 puntos.\n"
	if stdout.String() != want {
		t.Errorf("unexpected report:\n got %q\nwant %q", stdout.String(), want)
	}
}

func TestRun_ZeroThreadsFailsValidation(t *testing.T) {
	stdout, stderr, code := run(t, "-t", "0")
	if code != apperrors.ExitErrorConfig {
		t.Errorf("expected exit %d, got %d", apperrors.ExitErrorConfig, code)
	}
	if stdout != "" {
		t.Errorf("nothing should be printed on stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, `"threads"`) {
		t.Errorf("stderr should name the field, got %q", stderr)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	_, _, code := run(t, "--bogus")
	if code != apperrors.ExitErrorConfig {
		t.Errorf("expected exit %d, got %d", apperrors.ExitErrorConfig, code)
	}
}

func TestNew_Help(t *testing.T) {
	var stderr bytes.Buffer
	_, err := New([]string{"threadsum", "--help"}, &stderr)
	if !IsHelpError(err) {
		t.Fatalf("expected help error, got %v", err)
	}
	if !strings.Contains(strings.ToLower(stderr.String()), "usage") {
		t.Errorf("expected usage text, got %q", stderr.String())
	}
}

func TestRun_JSON(t *testing.T) {
	stdout, _, code := run(t, "-t", "3", "-s", "4", "--min", "2", "--max", "2", "-f", "json")
	if code != apperrors.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var report orchestration.Report
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if report.Threads != 3 || report.Best.ID != 0 || report.Best.Total != 8 {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestRun_Table(t *testing.T) {
	stdout, _, code := run(t, "-t", "2", "-f", "table", "-d")
	if code != apperrors.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, want := range []string{"Execution Configuration", "Worker", "Duration", "Best: #", "Memory Stats", "System Usage"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout should contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestRun_Artifacts(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "out", "report.txt")
	metricsPath := filepath.Join(dir, "threadsum.prom")

	stdout, _, code := run(t, "-t", "2", "-s", "5", "--min", "7", "--max", "7", "-o", reportPath, "--metrics-file", metricsPath)
	if code != apperrors.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout, "Result saved to: "+reportPath) {
		t.Errorf("expected save notice, got:\n%s", stdout)
	}

	report, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(report), "El hilo con mayor puntaje es el #0 con 35 puntos.") {
		t.Errorf("unexpected report file:\n%s", report)
	}
	if strings.Contains(string(report), "\033[") {
		t.Error("report file must not contain ANSI escapes")
	}

	prom, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("metrics not written: %v", err)
	}
	for _, want := range []string{"threadsum_workers_completed_total 2", "threadsum_best_total 35"} {
		if !strings.Contains(string(prom), want) {
			t.Errorf("metrics should contain %q, got:\n%s", want, prom)
		}
	}
}

func TestRun_Completion(t *testing.T) {
	stdout, _, code := run(t, "--completion", "bash")
	if code != apperrors.ExitSuccess || !strings.Contains(stdout, "complete -F _threadsum threadsum") {
		t.Errorf("unexpected completion output (code %d):\n%s", code, stdout)
	}

	_, stderr, code := run(t, "--completion", "tcsh")
	if code != apperrors.ExitErrorConfig || !strings.Contains(stderr, "unsupported shell") {
		t.Errorf("expected unsupported shell error, got code %d, stderr %q", code, stderr)
	}
}

func TestRun_VerboseLogsToStderr(t *testing.T) {
	stdout, stderr, code := run(t, "-t", "2", "-v")
	if code != apperrors.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stderr, "workers joined") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
	if strings.Contains(stdout, "workers joined") {
		t.Error("logs must not leak into stdout")
	}
}

func TestVersion(t *testing.T) {
	if !HasVersionFlag([]string{"-t", "2", "--version"}) {
		t.Error("HasVersionFlag should detect --version")
	}
	if HasVersionFlag([]string{"-v"}) {
		t.Error("-v is verbose, not version")
	}
	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.HasPrefix(buf.String(), "threadsum ") {
		t.Errorf("unexpected banner %q", buf.String())
	}
}
