// Package hypothesis implements the streaming hypothesis tests: one-sample,
// paired and independent two-sample t-tests, one-way ANOVA and Levene's test.
//
// Every test follows the same lifecycle. It is created bound to an input
// schema, accumulates rows in a single pass through Add, and is finalized
// once. Add after Finalize fails with core.ErrFinalized; repeated Finalize
// calls return the same Outcome. Numeric degeneracies (fewer than two values,
// zero variance) are not errors: they surface as NaN fields.
package hypothesis

import (
	"fmt"

	"hypotest/domain/core"
	"hypotest/domain/stattest"
	"hypotest/domain/table"
)

// Test is a single-pass hypothesis test
type Test interface {
	Kind() stattest.Kind
	// Add accumulates one input row
	Add(row table.Row) error
	// Fork returns an empty test with the same configuration, for
	// accumulating a disjoint batch of rows.
	Fork() Test
	// Merge folds a forked test into the receiver
	Merge(other Test) error
	// Finalize computes the result records
	Finalize() (*stattest.Outcome, error)
}

// New validates job and binds it to the input schema. Column resolution
// happens here, before any row is read.
func New(job stattest.Job, schema table.Schema) (Test, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	switch job.Kind {
	case stattest.KindOneSample:
		return newOneSample(job, schema)
	case stattest.KindPaired:
		return newPaired(job, schema)
	case stattest.KindTwoSample:
		return newTwoSample(job, schema)
	case stattest.KindANOVA:
		return newANOVA(job, schema)
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownKind, job.Kind)
	}
}

// lifecycle tracks Created/Accumulating -> Finalized
type lifecycle struct {
	rows      int64
	finalized bool
	outcome   *stattest.Outcome
}

func (l *lifecycle) accept() error {
	if l.finalized {
		return core.ErrFinalized
	}
	l.rows++
	return nil
}

func (l *lifecycle) mergeable(other *lifecycle) error {
	if l.finalized || other.finalized {
		return core.ErrFinalized
	}
	l.rows += other.rows
	return nil
}

func (l *lifecycle) finalize(compute func() *stattest.Outcome) *stattest.Outcome {
	if !l.finalized {
		l.outcome = compute()
		l.outcome.Rows = l.rows
		l.finalized = true
	}
	return l.outcome
}

func mergeMismatch(want stattest.Kind, got Test) error {
	return fmt.Errorf("%w: %s with %T", core.ErrMergeMismatch, want, got)
}

// numeric reads a test cell. Non-numeric text counts as missing.
func numeric(row table.Row, idx int) (float64, bool) {
	return row.Cell(idx).Float()
}
