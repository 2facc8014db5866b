package hypothesis

import (
	"math"

	"hypotest/domain/grouping"
	"hypotest/domain/stattest"
	"hypotest/domain/table"
	"hypotest/internal/accum"
	"hypotest/internal/distributions"
)

type anovaGroup struct {
	summary *accum.Summary
	values  []float64
	missing int64
}

func newANOVAGroup() *anovaGroup {
	return &anovaGroup{summary: accum.NewSummary()}
}

type anovaColumn struct {
	name         string
	idx          int
	overall      *accum.Summary
	groups       []*anovaGroup
	missingGroup int64
	unmatched    int64
}

// group returns the accumulator of label index i, growing the slice as new
// labels are discovered
func (c *anovaColumn) group(i int) *anovaGroup {
	for len(c.groups) <= i {
		c.groups = append(c.groups, newANOVAGroup())
	}
	return c.groups[i]
}

// ANOVA is a one-way analysis of variance over the groups of a nominal column
type ANOVA struct {
	lifecycle
	job        stattest.Job
	labels     *grouping.Labels
	groupIdx   int
	columns    []*anovaColumn
	keepValues bool
}

func newANOVA(job stattest.Job, schema table.Schema) (*ANOVA, error) {
	idx, err := schema.Resolve(job.TestColumns...)
	if err != nil {
		return nil, err
	}
	gidx, err := schema.Resolve(job.GroupColumn)
	if err != nil {
		return nil, err
	}
	t := &ANOVA{
		job:        job,
		labels:     grouping.NewLabels(job.GroupLabels...),
		groupIdx:   gidx[0],
		keepValues: !job.SkipLevene,
	}
	for i, name := range job.TestColumns {
		t.columns = append(t.columns, &anovaColumn{name: name, idx: idx[i], overall: accum.NewSummary()})
	}
	return t, nil
}

func (t *ANOVA) Kind() stattest.Kind { return stattest.KindANOVA }

func (t *ANOVA) Add(row table.Row) error {
	if err := t.accept(); err != nil {
		return err
	}
	gi, missing, ok := t.labels.Classify(row.Cell(t.groupIdx))
	for _, c := range t.columns {
		if missing {
			c.missingGroup++
			continue
		}
		if !ok {
			c.unmatched++
			continue
		}
		g := c.group(gi)
		v, vok := numeric(row, c.idx)
		if !vok {
			g.missing++
			continue
		}
		g.summary.Add(v)
		c.overall.Add(v)
		if t.keepValues {
			g.values = append(g.values, v)
		}
	}
	return nil
}

func (t *ANOVA) Fork() Test {
	f := &ANOVA{
		job:        t.job,
		labels:     grouping.NewLabels(t.job.GroupLabels...),
		groupIdx:   t.groupIdx,
		keepValues: t.keepValues,
	}
	for _, c := range t.columns {
		f.columns = append(f.columns, &anovaColumn{name: c.name, idx: c.idx, overall: accum.NewSummary()})
	}
	return f
}

// Merge folds other into t. Labels first seen by other are appended after
// the receiver's, so merging batches in input order preserves first-appearance order.
func (t *ANOVA) Merge(other Test) error {
	o, ok := other.(*ANOVA)
	if !ok || len(o.columns) != len(t.columns) {
		return mergeMismatch(t.Kind(), other)
	}
	if err := t.mergeable(&o.lifecycle); err != nil {
		return err
	}

	remap := make([]int, o.labels.Len())
	for i, l := range o.labels.All() {
		remap[i] = t.labels.Learn(l)
	}

	for ci, c := range t.columns {
		oc := o.columns[ci]
		c.overall.Merge(oc.overall)
		c.missingGroup += oc.missingGroup
		c.unmatched += oc.unmatched
		for i, og := range oc.groups {
			g := c.group(remap[i])
			g.summary.Merge(og.summary)
			g.values = append(g.values, og.values...)
			g.missing += og.missing
		}
	}
	return nil
}

func (t *ANOVA) Finalize() (*stattest.Outcome, error) {
	return t.finalize(t.compute), nil
}

func (t *ANOVA) compute() *stattest.Outcome {
	out := &stattest.Outcome{Kind: stattest.KindANOVA}
	conf := t.job.Confidence
	for _, c := range t.columns {
		var missing int64
		var samples []LeveneSample
		for i := 0; i < t.labels.Len(); i++ {
			g := c.group(i)
			missing += g.missing
			out.ANOVAGroups = append(out.ANOVAGroups,
				groupDescriptive(c.name, t.labels.At(i), g.summary, g.missing, c.missingGroup, conf))
			samples = append(samples, LeveneSample{Summary: g.summary, Values: g.values})
		}
		out.ANOVAGroups = append(out.ANOVAGroups,
			groupDescriptive(c.name, stattest.TotalGroup, c.overall, missing, c.missingGroup, conf))

		out.ANOVA = append(out.ANOVA, anovaTable(c)...)

		if t.keepValues {
			lev := Levene(samples)
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
			Used:         c.overall.N(),
			Missing:      missing,
			MissingGroup: c.missingGroup,
			Unmatched:    c.unmatched,
		})
	}
	return out
}

func groupDescriptive(column, group string, s *accum.Summary, missing, missingGroup int64, conf float64) stattest.ANOVAGroup {
	d := describe(column, group, s, missing, missingGroup)
	lower, upper := distributions.ConfidenceInterval(d.Mean, d.StdErr, degreesOfFreedom(s.N()-1), conf)
	return stattest.ANOVAGroup{
		Descriptive: d,
		Confidence:  conf,
		CILower:     lower,
		CIUpper:     upper,
	}
}

// anovaTable computes the Between/Within/Total rows. Groups without values do
// not count towards k. Within-group SS sums the squared deviations directly so
// that single-value groups contribute zero instead of NaN.
func anovaTable(c *anovaColumn) []stattest.ANOVARow {
	var k int64
	var ssBetween, ssWithin float64
	grand := c.overall.Mean()
	for _, g := range c.groups {
		n := g.summary.N()
		if n == 0 {
			continue
		}
		k++
		d := g.summary.Mean() - grand
		ssBetween += float64(n) * d * d
		ssWithin += g.summary.SumSquaredDeviations()
	}

	n := c.overall.N()
	dfBetween, dfWithin := k-1, n-k
	msBetween := meanSquare(ssBetween, dfBetween)
	msWithin := meanSquare(ssWithin, dfWithin)
	f := msBetween / msWithin
	p := distributions.FTestPValue(f, float64(dfBetween), float64(dfWithin))

	nan := math.NaN()
	return []stattest.ANOVARow{
		{Column: c.name, Source: stattest.SourceBetween, SumSquares: ssBetween, DF: dfBetween, MeanSquare: msBetween, F: f, P: p},
		{Column: c.name, Source: stattest.SourceWithin, SumSquares: ssWithin, DF: dfWithin, MeanSquare: msWithin, F: nan, P: nan},
		{Column: c.name, Source: stattest.SourceTotal, SumSquares: c.overall.SumSquaredDeviations(), DF: n - 1, MeanSquare: nan, F: nan, P: nan},
	}
}

// meanSquare is ss/df, undefined without degrees of freedom
func meanSquare(ss float64, df int64) float64 {
	if df <= 0 {
		return math.NaN()
	}
	return ss / float64(df)
}
