package worker

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/threadsum/internal/errors"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		cfg       Config
		wantField string
	}{
		{"valid defaults", Config{ID: 0, Samples: 100, Min: 1, Max: 1000}, ""},
		{"zero samples", Config{Samples: 0, Min: 1, Max: 1}, ""},
		{"negative samples", Config{Samples: -1, Min: 1, Max: 2}, "samples"},
		{"negative min", Config{Samples: 1, Min: -1, Max: 2}, "min"},
		{"min above max", Config{Samples: 1, Min: 5, Max: 4}, "min"},
		{"overflowing total", Config{Samples: math.MaxInt, Min: 0, Max: math.MaxInt}, "samples"},
		{"largest total that fits", Config{Samples: 2, Min: 0, Max: math.MaxInt}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var valErr apperrors.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if valErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, valErr.Field)
			}
		})
	}
}

func TestTaskRun_ConstantRange(t *testing.T) {
	t.Parallel()
	task := New(Config{ID: 0, Samples: 5, Min: 7, Max: 7})
	task.Run()

	if !task.Done() {
		t.Fatal("task should be done after Run")
	}
	if got := task.Result(); got != 35 {
		t.Errorf("expected 35, got %d", got)
	}
	if task.ID() != 0 {
		t.Errorf("expected id 0, got %d", task.ID())
	}
}

func TestTaskRun_ZeroSamples(t *testing.T) {
	t.Parallel()
	task := New(Config{ID: 4, Samples: 0, Min: 1, Max: 1000})
	task.Run()
	if task.Result() != 0 {
		t.Errorf("expected 0 with no samples, got %d", task.Result())
	}
}

func TestTaskRun_OnlyOnce(t *testing.T) {
	t.Parallel()
	task := New(Config{ID: 1, Samples: 10, Min: 1, Max: 1_000_000})
	task.Run()
	first := task.Result()
	task.Run()
	if task.Result() != first {
		t.Errorf("second Run changed the result: %d -> %d", first, task.Result())
	}
}

func TestTask_NotDoneBeforeRun(t *testing.T) {
	t.Parallel()
	task := New(Config{ID: 2, Samples: 3, Min: 1, Max: 2})
	if task.Done() {
		t.Error("task should not be done before Run")
	}
	if task.Result() != 0 {
		t.Error("result should start at zero")
	}
	if task.Config().Samples != 3 {
		t.Errorf("Config() should return the construction config, got %+v", task.Config())
	}
}

// TestTaskRun_Bounds_PropertyBased verifies min*samples <= total <= max*samples.
func TestTaskRun_Bounds_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("total lies within [min*samples, max*samples]", prop.ForAll(
		func(samples, lo, width int) bool {
			cfg := Config{ID: samples, Samples: samples, Min: lo, Max: lo + width}
			if cfg.Validate() != nil {
				return false
			}
			task := New(cfg)
			task.Run()
			got := task.Result()
			return got >= uint64(cfg.Min)*uint64(samples) && got <= uint64(cfg.Max)*uint64(samples)
		},
		gen.IntRange(0, 500),
		gen.IntRange(0, 10_000),
		gen.IntRange(0, 10_000),
	))

	properties.TestingRun(t)
}
