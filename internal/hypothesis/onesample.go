package hypothesis

import (
	"hypotest/domain/stattest"
	"hypotest/domain/table"
	"hypotest/internal/accum"
)

type oneSampleColumn struct {
	name    string
	idx     int
	values  *accum.Summary
	diffs   *accum.Summary
	missing int64
}

// OneSample tests each column's mean against a fixed test value
type OneSample struct {
	lifecycle
	job     stattest.Job
	columns []*oneSampleColumn
}

func newOneSample(job stattest.Job, schema table.Schema) (*OneSample, error) {
	idx, err := schema.Resolve(job.TestColumns...)
	if err != nil {
		return nil, err
	}
	t := &OneSample{job: job}
	for i, name := range job.TestColumns {
		t.columns = append(t.columns, &oneSampleColumn{
			name:   name,
			idx:    idx[i],
			values: accum.NewSummary(),
			diffs:  accum.NewSummary(),
		})
	}
	return t, nil
}

func (t *OneSample) Kind() stattest.Kind { return stattest.KindOneSample }

func (t *OneSample) Add(row table.Row) error {
	if err := t.accept(); err != nil {
		return err
	}
	for _, c := range t.columns {
		v, ok := numeric(row, c.idx)
		if !ok {
			c.missing++
			continue
		}
		c.values.Add(v)
		c.diffs.Add(v - t.job.TestValue)
	}
	return nil
}

func (t *OneSample) Fork() Test {
	f := &OneSample{job: t.job}
	for _, c := range t.columns {
		f.columns = append(f.columns, &oneSampleColumn{
			name:   c.name,
			idx:    c.idx,
			values: accum.NewSummary(),
			diffs:  accum.NewSummary(),
		})
	}
	return f
}

func (t *OneSample) Merge(other Test) error {
	o, ok := other.(*OneSample)
	if !ok || len(o.columns) != len(t.columns) {
		return mergeMismatch(t.Kind(), other)
	}
	if err := t.mergeable(&o.lifecycle); err != nil {
		return err
	}
	for i, c := range t.columns {
		c.values.Merge(o.columns[i].values)
		c.diffs.Merge(o.columns[i].diffs)
		c.missing += o.columns[i].missing
	}
	return nil
}

func (t *OneSample) Finalize() (*stattest.Outcome, error) {
	return t.finalize(t.compute), nil
}

func (t *OneSample) compute() *stattest.Outcome {
	out := &stattest.Outcome{Kind: stattest.KindOneSample}
	for _, c := range t.columns {
		out.Descriptive = append(out.Descriptive, describe(c.name, "", c.values, c.missing, 0))

		r := meanTest(c.diffs, t.job.Confidence)
		out.OneSample = append(out.OneSample, stattest.OneSampleResult{
			Column:     c.name,
			TestValue:  t.job.TestValue,
			T:          r.t,
			DF:         r.df,
			P:          r.p,
			MeanDiff:   r.mean,
			Confidence: t.job.Confidence,
			CILower:    r.lower,
			CIUpper:    r.upper,
		})
		out.Accounting = append(out.Accounting, stattest.ColumnAccounting{
			Column:  c.name,
			Used:    c.values.N(),
			Missing: c.missing,
		})
	}
	return out
}
