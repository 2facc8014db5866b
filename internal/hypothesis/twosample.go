package hypothesis

import (
	"math"

	"hypotest/domain/grouping"
	"hypotest/domain/stattest"
	"hypotest/domain/table"
	"hypotest/internal/accum"
	"hypotest/internal/distributions"
)

type twoSampleColumn struct {
	name         string
	idx          int
	groups       [2]*accum.Summary
	values       [2][]float64
	missing      [2]int64
	missingGroup int64
	unmatched    int64
}

func newTwoSampleColumn(name string, idx int) *twoSampleColumn {
	return &twoSampleColumn{
		name:   name,
		idx:    idx,
		groups: [2]*accum.Summary{accum.NewSummary(), accum.NewSummary()},
	}
}

// TwoSample compares the means of two independent groups
type TwoSample struct {
	lifecycle
	job      stattest.Job
	grouping *grouping.Grouping
	groupIdx int
	columns  []*twoSampleColumn
	// keepValues retains raw values for the companion Levene test
	keepValues bool
}

func newTwoSample(job stattest.Job, schema table.Schema) (*TwoSample, error) {
	gr, err := grouping.New(job.GroupLabels[0], job.GroupLabels[1])
	if err != nil {
		return nil, err
	}
	idx, err := schema.Resolve(job.TestColumns...)
	if err != nil {
		return nil, err
	}
	gidx, err := schema.Resolve(job.GroupColumn)
	if err != nil {
		return nil, err
	}

	t := &TwoSample{
		job:        job,
		grouping:   gr,
		groupIdx:   gidx[0],
		keepValues: !job.SkipLevene,
	}
	for i, name := range job.TestColumns {
		t.columns = append(t.columns, newTwoSampleColumn(name, idx[i]))
	}
	return t, nil
}

func (t *TwoSample) Kind() stattest.Kind { return stattest.KindTwoSample }

func (t *TwoSample) Add(row table.Row) error {
	if err := t.accept(); err != nil {
		return err
	}
	class := t.grouping.Classify(row.Cell(t.groupIdx))
	for _, c := range t.columns {
		switch class {
		case grouping.ClassMissing:
			c.missingGroup++
			continue
		case grouping.ClassUnmatched:
			c.unmatched++
			continue
		}
		g, _ := class.Group()
		v, ok := numeric(row, c.idx)
		if !ok {
			c.missing[g]++
			continue
		}
		c.groups[g].Add(v)
		if t.keepValues {
			c.values[g] = append(c.values[g], v)
		}
	}
	return nil
}

func (t *TwoSample) Fork() Test {
	f := &TwoSample{
		job:        t.job,
		grouping:   t.grouping,
		groupIdx:   t.groupIdx,
		keepValues: t.keepValues,
	}
	for _, c := range t.columns {
		f.columns = append(f.columns, newTwoSampleColumn(c.name, c.idx))
	}
	return f
}

func (t *TwoSample) Merge(other Test) error {
	o, ok := other.(*TwoSample)
	if !ok || len(o.columns) != len(t.columns) {
		return mergeMismatch(t.Kind(), other)
	}
	if err := t.mergeable(&o.lifecycle); err != nil {
		return err
	}
	for i, c := range t.columns {
		oc := o.columns[i]
		for g := range c.groups {
			c.groups[g].Merge(oc.groups[g])
			c.values[g] = append(c.values[g], oc.values[g]...)
			c.missing[g] += oc.missing[g]
		}
		c.missingGroup += oc.missingGroup
		c.unmatched += oc.unmatched
	}
	return nil
}

func (t *TwoSample) Finalize() (*stattest.Outcome, error) {
	return t.finalize(t.compute), nil
}

func (t *TwoSample) compute() *stattest.Outcome {
	out := &stattest.Outcome{Kind: stattest.KindTwoSample}
	conf := t.job.Confidence
	for _, c := range t.columns {
		x, y := c.groups[grouping.GroupX], c.groups[grouping.GroupY]
		for _, g := range []grouping.Group{grouping.GroupX, grouping.GroupY} {
			out.Descriptive = append(out.Descriptive,
				describe(c.name, t.grouping.Label(g), c.groups[g], c.missing[g], c.missingGroup))
		}

		out.TwoSample = append(out.TwoSample,
			pooledTTest(c.name, x, y, conf),
			welchTTest(c.name, x, y, conf),
		)

		if t.keepValues {
			lev := LeveneTwoGroup(
				LeveneSample{Summary: x, Values: c.values[grouping.GroupX]},
				LeveneSample{Summary: y, Values: c.values[grouping.GroupY]},
			)
			out.Levene = append(out.Levene, stattest.LeveneResult{
				Column:    c.name,
				Statistic: lev.F,
				DF1:       lev.DF1,
				DF2:       lev.DF2,
				P:         lev.P,
			})
		}

		out.Accounting = append(out.Accounting, stattest.ColumnAccounting{
			Column:       c.name,
			Used:         x.N() + y.N(),
			Missing:      c.missing[0] + c.missing[1],
			MissingGroup: c.missingGroup,
			Unmatched:    c.unmatched,
		})
	}
	return out
}

// pooledTTest assumes equal variances: df = n₁+n₂-2
func pooledTTest(column string, x, y *accum.Summary, conf float64) stattest.TwoSampleResult {
	n1, n2 := float64(x.N()), float64(y.N())
	df := degreesOfFreedom(x.N() + y.N() - 2)
	pooled := ((n1-1)*x.Variance() + (n2-1)*y.Variance()) / df
	se := math.Sqrt(pooled * (1/n1 + 1/n2))
	return twoSampleResult(column, stattest.EqualVariances, x.Mean()-y.Mean(), se, df, conf)
}

// welchTTest does not assume equal variances; df follows Welch–Satterthwaite
func welchTTest(column string, x, y *accum.Summary, conf float64) stattest.TwoSampleResult {
	n1, n2 := float64(x.N()), float64(y.N())
	a, b := x.Variance()/n1, y.Variance()/n2
	se := math.Sqrt(a + b)
	df := (a + b) * (a + b) / (a*a/(n1-1) + b*b/(n2-1))
	return twoSampleResult(column, stattest.UnequalVariances, x.Mean()-y.Mean(), se, df, conf)
}

func twoSampleResult(column string, va stattest.VarianceAssumption, diff, se, df, conf float64) stattest.TwoSampleResult {
	t := diff / se
	lower, upper := distributions.ConfidenceInterval(diff, se, df, conf)
	return stattest.TwoSampleResult{
		Column:     column,
		Assumption: va,
		T:          t,
		DF:         df,
		P:          distributions.TTestPValue(t, df),
		MeanDiff:   diff,
		StdErrDiff: se,
		Confidence: conf,
		CILower:    lower,
		CIUpper:    upper,
	}
}
