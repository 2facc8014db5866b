package hypothesis

import (
	"testing"

	"hypotest/domain/stattest"
	"hypotest/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTablesOneSample(t *testing.T) {
	schema := table.NamesSchema([]string{"score"})
	out := runTest(t, oneSampleJob(10, "score"), schema, singleColumn(10, 12, 9, 11, 13))

	tables, err := BuildTables(out, DefaultSchemas)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	assert.Equal(t, TableDescriptive, tables[0].Name)
	assert.Equal(t, TableOneSample, tables[1].Name)
	assert.Equal(t, []string{
		"Test Column", "Test Value", "t", "df", "p-value (2-tailed)", "Mean Difference",
		"Confidence Interval Probability",
		"Confidence Interval of the Difference (Lower Bound)",
		"Confidence Interval of the Difference (Upper Bound)",
	}, tables[1].Schema.Names())

	df, ok := tables[1].Get(0, ColDF).Float()
	assert.True(t, ok)
	assert.Equal(t, 4.0, df)
	assert.Equal(t, "score", tables[1].Get(0, ColTestColumn).String())
}

func TestBuildTablesNaNIsMissing(t *testing.T) {
	schema := table.NamesSchema([]string{"x"})
	out := runTest(t, oneSampleJob(0, "x"), schema, singleColumn(1))

	tables, err := BuildTables(out, nil)
	require.NoError(t, err)
	assert.True(t, tables[1].Get(0, ColT).IsMissing())
	assert.True(t, tables[1].Get(0, ColPTwoTailed).IsMissing())
	assert.True(t, tables[0].Get(0, ColStdDev).IsMissing())
	assert.False(t, tables[0].Get(0, ColMean).IsMissing())
}

func TestBuildTablesTwoSample(t *testing.T) {
	rows := groupedRows(map[string][]float64{"x": {1, 2, 3}, "y": {4, 5, 7}}, []string{"x", "y"})
	out := runTest(t, twoSampleJob("x", "y"), groupSchema, rows)

	tables, err := BuildTables(out, DefaultSchemas)
	require.NoError(t, err)
	require.Len(t, tables, 3)
	assert.Equal(t, []string{TableGroupStatistics, TableIndependent, TableLevene},
		[]string{tables[0].Name, tables[1].Name, tables[2].Name})

	assert.Equal(t, 2, tables[1].Len())
	assert.Equal(t, "Equal variances assumed", tables[1].Get(0, ColVarianceAssumption).String())
	assert.Equal(t, "Equal variances not assumed", tables[1].Get(1, ColVarianceAssumption).String())
	assert.Equal(t, "Missing Count (Group Column)", tables[0].Schema[4].Name)
}

func TestBuildTablesANOVA(t *testing.T) {
	rows := groupedRows(map[string][]float64{"a": {1, 2, 3}, "b": {4, 5, 6}, "c": {7, 8, 10}}, []string{"a", "b", "c"})
	job := anovaJob()
	job.SkipLevene = true
	out := runTest(t, job, groupSchema, rows)

	tables, err := BuildTables(out, DefaultSchemas)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	anova := tables[1]
	sources, err := anova.Column(ColSource)
	require.NoError(t, err)
	assert.Equal(t, []table.Cell{
		table.Text("Between Groups"), table.Text("Within Groups"), table.Text("Total"),
	}, sources)
	assert.True(t, anova.Get(1, ColF).IsMissing())
	assert.Equal(t, "2", anova.Get(0, ColDF).String())
}

func TestBuildTablesPaired(t *testing.T) {
	schema := table.NamesSchema([]string{"l", "r"})
	out := runTest(t, pairedJob(stattest.Pair{Left: "l", Right: "r"}), schema,
		pairedRows([]float64{1, 2, 3}, []float64{2, 2, 5}))

	tables, err := BuildTables(out, DefaultSchemas)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, 2, tables[0].Len())
	assert.Equal(t, TablePaired, tables[1].Name)
	assert.Equal(t, "l", tables[1].Get(0, ColLeftColumn).String())
}

func TestBuildTablesRejectsNil(t *testing.T) {
	_, err := BuildTables(nil, DefaultSchemas)
	assert.Error(t, err)

	_, err = BuildTables(&stattest.Outcome{Kind: "bogus"}, DefaultSchemas)
	assert.Error(t, err)
}
