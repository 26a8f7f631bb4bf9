// Package worker holds the unit of work executed by each goroutine: draw a
// fixed number of uniform samples and accumulate their sum.
package worker

import (
	"math/bits"
	"sync"
	"time"

	apperrors "github.com/agbru/threadsum/internal/errors"
	"github.com/agbru/threadsum/internal/randsrc"
)

// Config describes one worker. It is immutable once the Task is built.
type Config struct {
	// ID identifies the worker and seeds its random source.
	ID int
	// Samples is the number of values drawn.
	Samples int
	// Min and Max are the inclusive bounds of each draw.
	Min int
	Max int
}

// Validate checks the bounds of a worker configuration. The accumulator is
// unsigned, so negative bounds are rejected, as is any configuration whose
// largest possible total would not fit in 64 bits.
func (c Config) Validate() error {
	switch {
	case c.Samples < 0:
		return apperrors.ValidationError{Field: "samples", Message: "must be non-negative"}
	case c.Min < 0:
		return apperrors.ValidationError{Field: "min", Message: "must be non-negative"}
	case c.Min > c.Max:
		return apperrors.ValidationError{Field: "min", Message: "must not exceed max"}
	}
	if hi, _ := bits.Mul64(uint64(c.Max), uint64(c.Samples)); hi != 0 {
		return apperrors.ValidationError{Field: "samples", Message: "max * samples overflows a 64-bit total"}
	}
	return nil
}

// Task accumulates the samples of a single worker. Result and Duration are
// written once by Run and must only be read after Run has returned, which the
// coordinator guarantees through its join barrier.
type Task struct {
	cfg      Config
	once     sync.Once
	result   uint64
	duration time.Duration
	done     bool
}

// New creates a Task. The configuration is expected to be valid.
func New(cfg Config) *Task {
	return &Task{cfg: cfg}
}

// Run draws the configured samples and stores their sum. Only the first call
// does any work.
func (t *Task) Run() {
	t.once.Do(func() {
		start := time.Now()
		src := randsrc.New(uint64(t.cfg.ID))
		var acc uint64
		for i := 0; i < t.cfg.Samples; i++ {
			acc += uint64(src.MustIntN(t.cfg.Min, t.cfg.Max))
		}
		t.result = acc
		t.duration = time.Since(start)
		t.done = true
	})
}

// ID returns the worker identifier.
func (t *Task) ID() int { return t.cfg.ID }

// Config returns the worker configuration.
func (t *Task) Config() Config { return t.cfg }

// Result returns the accumulated total.
func (t *Task) Result() uint64 { return t.result }

// Duration returns how long Run took.
func (t *Task) Duration() time.Duration { return t.duration }

// Done reports whether Run has completed. Read it only after the
// coordinator's join.
func (t *Task) Done() bool { return t.done }
