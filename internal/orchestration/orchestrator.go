package orchestration

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/threadsum/internal/errors"
	"github.com/agbru/threadsum/internal/logging"
	"github.com/agbru/threadsum/internal/worker"
)

const tracerName = "github.com/agbru/threadsum/internal/orchestration"

// Coordinator owns a fixed, id-ordered set of worker tasks. It is driven by a
// single goroutine: build it, call RunAll once, then read the aggregates.
type Coordinator struct {
	tasks    []*worker.Task
	spawned  int
	ran      bool
	elapsed  time.Duration
	logger   logging.Logger
	recorder RunRecorder
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithRecorder sets the sink for run statistics.
func WithRecorder(r RunRecorder) Option {
	return func(c *Coordinator) { c.recorder = r }
}

// NewCoordinator builds threads tasks with ids 0..threads-1 sharing the same
// sample count and bounds. Every configuration is validated before any task is
// created, so an invalid request never spawns a goroutine.
//
// threads == 0 is accepted and yields an empty coordinator whose Best returns
// ErrNoWorkers.
func NewCoordinator(threads, samples, minValue, maxValue int, opts ...Option) (*Coordinator, error) {
	if threads < 0 {
		return nil, apperrors.ValidationError{Field: "threads", Message: "must be non-negative"}
	}
	if err := (worker.Config{Samples: samples, Min: minValue, Max: maxValue}).Validate(); err != nil {
		return nil, err
	}

	c := &Coordinator{
		tasks:    make([]*worker.Task, 0, threads),
		logger:   logging.NopLogger{},
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	for i := 0; i < threads; i++ {
		c.tasks = append(c.tasks, worker.New(worker.Config{ID: i, Samples: samples, Min: minValue, Max: maxValue}))
	}
	return c, nil
}

// RunAll starts one goroutine per task and blocks until every one of them has
// returned. The join is unconditional: ctx only carries the trace span, it is
// never used to cancel workers.
func (c *Coordinator) RunAll(ctx context.Context) error {
	if c.ran {
		return apperrors.ErrAlreadyRun
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "Coordinator.RunAll",
		trace.WithAttributes(attribute.Int("threadsum.workers", len(c.tasks))))
	defer span.End()

	c.logger.Debug("spawning workers", logging.Int("workers", len(c.tasks)))
	start := time.Now()

	var g errgroup.Group
	for _, task := range c.tasks {
		g.Go(func() error {
			_, wspan := tracer.Start(ctx, "Task.Run",
				trace.WithAttributes(attribute.Int("threadsum.worker.id", task.ID())))
			task.Run()
			wspan.SetAttributes(attribute.String("threadsum.worker.total", strconv.FormatUint(task.Result(), 10)))
			wspan.End()
			c.recorder.ObserveWorker(task.ID(), task.Config().Samples, task.Result(), task.Duration())
			return nil
		})
		c.spawned++
	}
	// Workers never fail, so the group error is always nil.
	_ = g.Wait()

	c.elapsed = time.Since(start)
	c.ran = true
	c.recorder.ObserveRun(c.elapsed)

	for _, task := range c.tasks {
		c.logger.Debug("worker finished",
			logging.Int("worker", task.ID()),
			logging.Uint64("total", task.Result()),
			logging.Float64("elapsed_ms", float64(task.Duration().Microseconds())/1000))
	}
	c.logger.Info("workers joined",
		logging.Int("workers", len(c.tasks)),
		logging.Float64("elapsed_ms", float64(c.elapsed.Microseconds())/1000))
	return nil
}

// Summaries returns one entry per task, in id order.
func (c *Coordinator) Summaries() ([]Summary, error) {
	if !c.ran {
		return nil, apperrors.ErrNotRun
	}
	out := make([]Summary, 0, len(c.tasks))
	for _, task := range c.tasks {
		out = append(out, Summary{ID: task.ID(), Total: task.Result(), Duration: task.Duration()})
	}
	return out, nil
}

// Best returns the worker with the highest total; on ties the lowest id wins.
func (c *Coordinator) Best() (Summary, error) {
	summaries, err := c.Summaries()
	if err != nil {
		return Summary{}, err
	}
	best, ok := SelectBest(summaries)
	if !ok {
		return Summary{}, apperrors.ErrNoWorkers
	}
	return best, nil
}

// Len returns the number of tasks.
func (c *Coordinator) Len() int { return len(c.tasks) }

// Spawned returns the number of goroutines started by RunAll.
func (c *Coordinator) Spawned() int { return c.spawned }

// Elapsed returns the wall time between fan-out and join.
func (c *Coordinator) Elapsed() time.Duration { return c.elapsed }

// SelectBest scans left to right and keeps the first strictly greater total,
// so the earliest maximal entry wins. It returns false for an empty slice.
func SelectBest(summaries []Summary) (Summary, bool) {
	if len(summaries) == 0 {
		return Summary{}, false
	}
	best := summaries[0]
	for _, s := range summaries[1:] {
		if s.Total > best.Total {
			best = s
		}
	}
	return best, true
}
