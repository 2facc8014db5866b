package hypothesis

import (
	"math"
	"testing"

	"hypotest/domain/stattest"
	"hypotest/domain/table"

	"github.com/stretchr/testify/require"
)

// num builds a numeric cell; NaN stands for a missing value
func num(v float64) table.Cell {
	return table.Number(v)
}

var na = math.NaN()

func runTest(t *testing.T, job stattest.Job, schema table.Schema, rows []table.Row) *stattest.Outcome {
	t.Helper()
	test, err := New(job, schema)
	require.NoError(t, err)
	for _, r := range rows {
		require.NoError(t, test.Add(r))
	}
	out, err := test.Finalize()
	require.NoError(t, err)
	return out
}

// runSplit accumulates rows in batches of size and merges them in order
func runSplit(t *testing.T, job stattest.Job, schema table.Schema, rows []table.Row, size int) *stattest.Outcome {
	t.Helper()
	root, err := New(job, schema)
	require.NoError(t, err)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		part := root.Fork()
		for _, r := range rows[start:end] {
			require.NoError(t, part.Add(r))
		}
		require.NoError(t, root.Merge(part))
	}
	out, err := root.Finalize()
	require.NoError(t, err)
	return out
}

// groupedRows builds (value, group) rows
func groupedRows(groups map[string][]float64, order []string) []table.Row {
	var rows []table.Row
	for _, g := range order {
		for _, v := range groups[g] {
			rows = append(rows, table.Row{num(v), table.Text(g)})
		}
	}
	return rows
}

func singleColumn(values ...float64) []table.Row {
	rows := make([]table.Row, len(values))
	for i, v := range values {
		rows[i] = table.Row{num(v)}
	}
	return rows
}
