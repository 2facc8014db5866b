package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"hypotest/domain/core"
	"hypotest/domain/stattest"
	"hypotest/domain/table"
	"hypotest/internal"
	"hypotest/internal/errors"
	"hypotest/internal/hypothesis"
	"hypotest/ports"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize is the number of rows handed to a worker at a time
const DefaultBatchSize = 4096

// RunObserver is notified once per run with its terminal status
type RunObserver interface {
	ObserveRun(kind stattest.Kind, status stattest.RunStatus, rows int64, elapsed time.Duration)
}

// StatTestService executes test jobs over row sources in a single pass
type StatTestService struct {
	sink      ports.ResultSink
	schemas   *hypothesis.ResultSchemas
	workers   int
	batchSize int
	logger    *internal.Logger
	observer  RunObserver
}

// Option configures a StatTestService
type Option func(*StatTestService)

// WithSink persists completed runs
func WithSink(sink ports.ResultSink) Option {
	return func(s *StatTestService) { s.sink = sink }
}

// WithWorkers sets the number of concurrent batch accumulators.
// One worker accumulates rows inline.
func WithWorkers(n int) Option {
	return func(s *StatTestService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithBatchSize sets the rows per batch of the parallel path
func WithBatchSize(n int) Option {
	return func(s *StatTestService) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithSchemas overrides the result table layout
func WithSchemas(schemas *hypothesis.ResultSchemas) Option {
	return func(s *StatTestService) { s.schemas = schemas }
}

func WithLogger(logger *internal.Logger) Option {
	return func(s *StatTestService) { s.logger = logger }
}

func WithObserver(observer RunObserver) Option {
	return func(s *StatTestService) { s.observer = observer }
}

// NewStatTestService creates the execution driver
func NewStatTestService(opts ...Option) *StatTestService {
	s := &StatTestService{
		schemas:   hypothesis.DefaultSchemas,
		workers:   1,
		batchSize: DefaultBatchSize,
		logger:    internal.DefaultLogger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("StatTest")
	return s
}

// Run validates job against the source schema, reads every row of src once
// and returns the completed run with its result tables. A canceled context
// aborts the pass; no tables are produced and the error wraps both
// core.ErrCanceled and the context error. The caller owns src.
func (s *StatTestService) Run(ctx context.Context, job stattest.Job, src ports.RowSource) (*stattest.Run, error) {
	started := time.Now()
	job = job.WithDefaults()

	test, err := hypothesis.New(job, src.Schema())
	if err != nil {
		s.observe(job.Kind, stattest.RunFailed, 0, started)
		return nil, errors.Wrapf(err, "invalid %s job", job.Kind)
	}

	s.logger.Info("starting %s run over %d input columns (workers=%d)", job.Kind, len(src.Schema()), s.workers)

	var rows int64
	if s.workers > 1 {
		rows, err = s.accumulateParallel(ctx, test, src)
	} else {
		rows, err = s.accumulate(ctx, test, src)
	}
	if err != nil {
		status := stattest.RunFailed
		if core.IsCanceled(err) {
			status = stattest.RunCanceled
		}
		s.observe(job.Kind, status, rows, started)
		s.logger.Warn("%s run stopped after %d rows: %v", job.Kind, rows, err)
		return nil, err
	}

	outcome, err := test.Finalize()
	if err != nil {
		s.observe(job.Kind, stattest.RunFailed, rows, started)
		return nil, errors.Wrap(err, "failed to finalize test")
	}
	tables, err := hypothesis.BuildTables(outcome, s.schemas)
	if err != nil {
		s.observe(job.Kind, stattest.RunFailed, rows, started)
		return nil, errors.Wrap(err, "failed to build result tables")
	}

	run := &stattest.Run{
		ID:          core.NewRunID(),
		Job:         job,
		Status:      stattest.RunCompleted,
		Rows:        outcome.Rows,
		StartedAt:   started,
		CompletedAt: time.Now(),
		Outcome:     outcome,
		Tables:      tables,
	}

	if s.sink != nil {
		if err := s.sink.SaveRun(ctx, run); err != nil {
			s.observe(job.Kind, stattest.RunFailed, rows, started)
			return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrapf(err, "failed to save run %s", run.ID))
		}
	}

	s.observe(job.Kind, stattest.RunCompleted, rows, started)
	s.logger.Info("%s run %s completed: %d rows, %d tables in %v", job.Kind, run.ID, rows, len(tables), run.Duration())
	return run, nil
}

func (s *StatTestService) observe(kind stattest.Kind, status stattest.RunStatus, rows int64, started time.Time) {
	if s.observer != nil {
		s.observer.ObserveRun(kind, status, rows, time.Since(started))
	}
}

// accumulate feeds every row into test, polling ctx before each row
func (s *StatTestService) accumulate(ctx context.Context, test hypothesis.Test, src ports.RowSource) (int64, error) {
	var rows int64
	for {
		if err := ctx.Err(); err != nil {
			return rows, canceled(err)
		}
		row, err := src.Next(ctx)
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, readError(ctx, err, rows)
		}
		if err := test.Add(row); err != nil {
			return rows, err
		}
		rows++
	}
}

// batch is one contiguous slice of the input accumulated by its own fork
type batch struct {
	index int
	rows  []table.Row
	test  hypothesis.Test
}

// accumulateParallel cuts the source into batches, accumulates them on
// forks of test concurrently and merges the forks in batch order.
func (s *StatTestService) accumulateParallel(ctx context.Context, test hypothesis.Test, src ports.RowSource) (int64, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	var (
		batches []*batch
		current = &batch{rows: make([]table.Row, 0, s.batchSize)}
		rows    int64
	)

	dispatch := func(b *batch) {
		batches = append(batches, b)
		g.Go(func() error {
			b.test = test.Fork()
			for _, row := range b.rows {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := b.test.Add(row); err != nil {
					return err
				}
			}
			s.logger.Debug("batch %d accumulated %d rows", b.index, len(b.rows))
			b.rows = nil
			return nil
		})
	}

	readErr := func() error {
		for {
			if err := gctx.Err(); err != nil {
				return err
			}
			row, err := src.Next(gctx)
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return readError(gctx, err, rows)
			}
			current.rows = append(current.rows, row)
			rows++
			if len(current.rows) == s.batchSize {
				dispatch(current)
				current = &batch{index: current.index + 1, rows: make([]table.Row, 0, s.batchSize)}
			}
		}
	}()
	if readErr == nil && len(current.rows) > 0 {
		dispatch(current)
	}

	workErr := g.Wait()
	if err := ctx.Err(); err != nil {
		return rows, canceled(err)
	}
	if workErr != nil {
		return rows, workErr
	}
	if readErr != nil {
		return rows, readErr
	}

	for _, b := range batches {
		if err := test.Merge(b.test); err != nil {
			return rows, errors.Wrapf(err, "failed to merge batch %d", b.index)
		}
	}
	return rows, nil
}

func canceled(err error) error {
	return fmt.Errorf("%w: %w", core.ErrCanceled, err)
}

func readError(ctx context.Context, err error, rows int64) error {
	if ctx.Err() != nil || stderrors.Is(err, context.Canceled) {
		return canceled(err)
	}
	return &errors.AppError{
		Code:    errors.CodeInvalidInput,
		Message: fmt.Sprintf("failed to read row %d", rows+1),
		Cause:   err,
	}
}
