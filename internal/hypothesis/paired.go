package hypothesis

import (
	"fmt"

	"hypotest/domain/stattest"
	"hypotest/domain/table"
	"hypotest/internal/accum"
)

// pairedColumns accumulates one (left, right) pair. Side statistics only see
// complete pairs; the side counters count that side's own missing cells.
type pairedColumns struct {
	pair         stattest.Pair
	left, right  int
	leftValues   *accum.Summary
	rightValues  *accum.Summary
	diffs        *accum.Summary
	missingLeft  int64
	missingRight int64
	missingPair  int64
}

func newPairedColumns(p stattest.Pair, left, right int) *pairedColumns {
	return &pairedColumns{
		pair:        p,
		left:        left,
		right:       right,
		leftValues:  accum.NewSummary(),
		rightValues: accum.NewSummary(),
		diffs:       accum.NewSummary(),
	}
}

// Paired tests the mean difference of column pairs
type Paired struct {
	lifecycle
	job   stattest.Job
	pairs []*pairedColumns
}

func newPaired(job stattest.Job, schema table.Schema) (*Paired, error) {
	t := &Paired{job: job}
	for _, p := range job.Pairs {
		idx, err := schema.Resolve(p.Left, p.Right)
		if err != nil {
			return nil, err
		}
		t.pairs = append(t.pairs, newPairedColumns(p, idx[0], idx[1]))
	}
	return t, nil
}

func (t *Paired) Kind() stattest.Kind { return stattest.KindPaired }

func (t *Paired) Add(row table.Row) error {
	if err := t.accept(); err != nil {
		return err
	}
	for _, p := range t.pairs {
		l, lok := numeric(row, p.left)
		r, rok := numeric(row, p.right)
		if !lok {
			p.missingLeft++
		}
		if !rok {
			p.missingRight++
		}
		if !lok || !rok {
			p.missingPair++
			continue
		}
		p.leftValues.Add(l)
		p.rightValues.Add(r)
		p.diffs.Add(l - r)
	}
	return nil
}

func (t *Paired) Fork() Test {
	f := &Paired{job: t.job}
	for _, p := range t.pairs {
		f.pairs = append(f.pairs, newPairedColumns(p.pair, p.left, p.right))
	}
	return f
}

func (t *Paired) Merge(other Test) error {
	o, ok := other.(*Paired)
	if !ok || len(o.pairs) != len(t.pairs) {
		return mergeMismatch(t.Kind(), other)
	}
	if err := t.mergeable(&o.lifecycle); err != nil {
		return err
	}
	for i, p := range t.pairs {
		q := o.pairs[i]
		p.leftValues.Merge(q.leftValues)
		p.rightValues.Merge(q.rightValues)
		p.diffs.Merge(q.diffs)
		p.missingLeft += q.missingLeft
		p.missingRight += q.missingRight
		p.missingPair += q.missingPair
	}
	return nil
}

func (t *Paired) Finalize() (*stattest.Outcome, error) {
	return t.finalize(t.compute), nil
}

func (t *Paired) compute() *stattest.Outcome {
	out := &stattest.Outcome{Kind: stattest.KindPaired}
	for _, p := range t.pairs {
		out.Descriptive = append(out.Descriptive,
			describe(p.pair.Left, "", p.leftValues, p.missingLeft, 0),
			describe(p.pair.Right, "", p.rightValues, p.missingRight, 0),
		)

		r := meanTest(p.diffs, t.job.Confidence)
		out.Paired = append(out.Paired, stattest.PairedResult{
			Left:       p.pair.Left,
			Right:      p.pair.Right,
			N:          p.diffs.N(),
			Missing:    p.missingPair,
			MeanDiff:   r.mean,
			StdDev:     r.sd,
			StdErr:     r.se,
			Confidence: t.job.Confidence,
			CILower:    r.lower,
			CIUpper:    r.upper,
			T:          r.t,
			DF:         r.df,
			P:          r.p,
		})
		out.Accounting = append(out.Accounting, stattest.ColumnAccounting{
			Column:  pairName(p.pair),
			Used:    p.diffs.N(),
			Missing: p.missingPair,
		})
	}
	return out
}

func pairName(p stattest.Pair) string {
	return fmt.Sprintf("%s - %s", p.Left, p.Right)
}
