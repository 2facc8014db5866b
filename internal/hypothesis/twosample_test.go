package hypothesis

import (
	"math"
	"math/rand"
	"testing"

	"hypotest/domain/core"
	"hypotest/domain/stattest"
	"hypotest/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var groupSchema = table.NamesSchema([]string{"value", "group"})

func twoSampleJob(x, y string) stattest.Job {
	return stattest.Job{
		Kind:        stattest.KindTwoSample,
		TestColumns: []string{"value"},
		GroupColumn: "group",
		GroupLabels: []string{x, y},
		Confidence:  0.95,
	}
}

func findTwoSample(t *testing.T, out *stattest.Outcome, va stattest.VarianceAssumption) stattest.TwoSampleResult {
	t.Helper()
	for _, r := range out.TwoSample {
		if r.Assumption == va {
			return r
		}
	}
	t.Fatalf("no %q row", va)
	return stattest.TwoSampleResult{}
}

func TestTwoSampleEqualGroups(t *testing.T) {
	rows := groupedRows(map[string][]float64{"x": {1, 2, 3}, "y": {4, 5, 6}}, []string{"x", "y"})
	out := runTest(t, twoSampleJob("x", "y"), groupSchema, rows)

	require.Len(t, out.TwoSample, 2)
	pooled := findTwoSample(t, out, stattest.EqualVariances)
	welch := findTwoSample(t, out, stattest.UnequalVariances)

	for _, r := range []stattest.TwoSampleResult{pooled, welch} {
		assert.InDelta(t, -3.0, r.MeanDiff, 1e-12)
		assert.InDelta(t, math.Sqrt(2.0/3.0), r.StdErrDiff, 1e-12)
		assert.InDelta(t, -3.6742346141747673, r.T, 1e-9)
		assert.InDelta(t, 4.0, r.DF, 1e-12)
		assert.InDelta(t, 0.021311641128756734, r.P, 1e-9)
		assert.InDelta(t, -5.2669579355275165, r.CILower, 1e-8)
		assert.InDelta(t, -0.7330420644724831, r.CIUpper, 1e-8)
	}

	require.Len(t, out.Descriptive, 2)
	assert.Equal(t, "x", out.Descriptive[0].Group)
	assert.InDelta(t, 1.0, out.Descriptive[0].StdDev*out.Descriptive[0].StdDev, 1e-12)
	assert.Equal(t, "y", out.Descriptive[1].Group)
}

func TestTwoSampleWelchDiffers(t *testing.T) {
	rows := groupedRows(map[string][]float64{"a": {2, 1, 3, 4}, "b": {6, 5, 7, 9}}, []string{"a", "b"})
	out := runTest(t, twoSampleJob("a", "b"), groupSchema, rows)

	pooled := findTwoSample(t, out, stattest.EqualVariances)
	assert.InDelta(t, -3.9703446152237674, pooled.T, 1e-9)
	assert.Equal(t, 6.0, pooled.DF)
	assert.InDelta(t, 0.0073640592242113214, pooled.P, 1e-9)

	welch := findTwoSample(t, out, stattest.UnequalVariances)
	assert.InDelta(t, -3.9703446152237674, welch.T, 1e-9)
	assert.InDelta(t, 5.584615384615385, welch.DF, 1e-9)
	assert.InDelta(t, 0.0085128631313781695, welch.P, 1e-9)
}

func TestTwoSampleSwapSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	groups := map[string][]float64{}
	for i := 0; i < 30; i++ {
		groups["ctl"] = append(groups["ctl"], rng.NormFloat64()*2+10)
	}
	for i := 0; i < 45; i++ {
		groups["trt"] = append(groups["trt"], rng.NormFloat64()*4+11)
	}
	rows := groupedRows(groups, []string{"ctl", "trt"})

	fwd := runTest(t, twoSampleJob("ctl", "trt"), groupSchema, rows)
	rev := runTest(t, twoSampleJob("trt", "ctl"), groupSchema, rows)

	for i := range fwd.TwoSample {
		a, b := fwd.TwoSample[i], rev.TwoSample[i]
		assert.Equal(t, a.Assumption, b.Assumption)
		assert.InDelta(t, a.T, -b.T, 1e-12)
		assert.InDelta(t, a.MeanDiff, -b.MeanDiff, 1e-12)
		assert.InDelta(t, a.DF, b.DF, 1e-9)
		assert.InDelta(t, a.P, b.P, 1e-12)
		assert.InDelta(t, a.StdErrDiff, b.StdErrDiff, 1e-12)
		assert.InDelta(t, a.CILower, -b.CIUpper, 1e-9)
	}
	assert.InDelta(t, fwd.Levene[0].Statistic, rev.Levene[0].Statistic, 1e-9)
}

func TestTwoSampleAccounting(t *testing.T) {
	rows := []table.Row{
		{num(1), table.Text("x")},
		{num(2), table.Text("x")},
		{table.Missing(), table.Text("x")},
		{num(3), table.Text("y")},
		{num(4), table.Text("y")},
		{table.Missing(), table.Text("y")},
		{table.Missing(), table.Text("y")},
		{num(5), table.Missing()},
		{num(6), table.Text("X")},
		{num(7), table.Text("z")},
		{table.Missing(), table.Missing()},
	}
	out := runTest(t, twoSampleJob("x", "y"), groupSchema, rows)

	x, y := out.Descriptive[0], out.Descriptive[1]
	assert.Equal(t, int64(2), x.N)
	assert.Equal(t, int64(1), x.Missing)
	assert.Equal(t, int64(2), y.N)
	assert.Equal(t, int64(2), y.Missing)
	assert.Equal(t, int64(2), x.MissingGroup)

	acc := out.Accounting[0]
	assert.Equal(t, int64(4), acc.Used)
	assert.Equal(t, int64(3), acc.Missing)
	assert.Equal(t, int64(2), acc.MissingGroup)
	assert.Equal(t, int64(2), acc.Unmatched)
	assert.Equal(t, int64(len(rows)), acc.Total())
	assert.Equal(t, out.Rows, acc.Total())
}

func TestTwoSampleSingleValueGroupIsNaN(t *testing.T) {
	rows := groupedRows(map[string][]float64{"x": {1}, "y": {4, 5, 6}}, []string{"x", "y"})
	out := runTest(t, twoSampleJob("x", "y"), groupSchema, rows)

	for _, r := range out.TwoSample {
		assert.True(t, math.IsNaN(r.T), r.Assumption)
		assert.True(t, math.IsNaN(r.P), r.Assumption)
	}
	assert.InDelta(t, -4.0, out.TwoSample[0].MeanDiff, 1e-12)
}

func TestTwoSampleSkipLevene(t *testing.T) {
	rows := groupedRows(map[string][]float64{"x": {1, 2, 3}, "y": {4, 5, 6}}, []string{"x", "y"})
	job := twoSampleJob("x", "y")
	job.SkipLevene = true
	out := runTest(t, job, groupSchema, rows)
	assert.Empty(t, out.Levene)

	job.SkipLevene = false
	out = runTest(t, job, groupSchema, rows)
	require.Len(t, out.Levene, 1)
	// equal spreads: |deviations| are {1,0,1} in both groups
	assert.InDelta(t, 0.0, out.Levene[0].Statistic, 1e-12)
	assert.Equal(t, int64(1), out.Levene[0].DF1)
	assert.Equal(t, int64(4), out.Levene[0].DF2)
}

func TestTwoSampleUnresolvedGroupColumn(t *testing.T) {
	job := twoSampleJob("x", "y")
	job.GroupColumn = "nope"
	_, err := New(job, groupSchema)
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
}

func TestTwoSampleMergeMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	var rows []table.Row
	for i := 0; i < 300; i++ {
		g := []string{"x", "y", "w"}[rng.Intn(3)]
		v := num(rng.NormFloat64() + float64(len(g)))
		if rng.Intn(10) == 0 {
			v = table.Missing()
		}
		rows = append(rows, table.Row{v, table.Text(g)})
	}
	job := twoSampleJob("x", "y")

	seq := runTest(t, job, groupSchema, rows)
	par := runSplit(t, job, groupSchema, rows, 37)

	assert.Equal(t, seq.Accounting, par.Accounting)
	for i := range seq.TwoSample {
		assert.InDelta(t, seq.TwoSample[i].T, par.TwoSample[i].T, 1e-9)
		assert.InDelta(t, seq.TwoSample[i].DF, par.TwoSample[i].DF, 1e-9)
	}
	assert.InDelta(t, seq.Levene[0].Statistic, par.Levene[0].Statistic, 1e-9)
}
