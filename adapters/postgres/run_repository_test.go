package postgres

import (
	"math"
	"testing"
	"time"

	"hypotest/domain/core"
	"hypotest/domain/stattest"
	"hypotest/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	tbl := table.New("Levene's Test", table.MustSchema(
		table.Column{Name: "Test Column", Type: table.TypeString},
		table.Column{Name: "Levene Statistic", Type: table.TypeDouble},
		table.Column{Name: "df1", Type: table.TypeInt},
	))
	require.NoError(t, tbl.AppendRow(table.Text("score"), table.Number(0.516), table.Int(2)))
	require.NoError(t, tbl.AppendRow(table.Text("flat"), table.Number(math.NaN()), table.Int(1)))

	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	run := &stattest.Run{
		ID: core.NewRunID(),
		Job: stattest.Job{
			Kind:        stattest.KindANOVA,
			TestColumns: []string{"score", "flat"},
			GroupColumn: "g",
			Confidence:  0.95,
		},
		Status:      stattest.RunCompleted,
		Rows:        9,
		StartedAt:   started,
		CompletedAt: started.Add(time.Second),
		Tables:      []*table.Table{tbl},
	}

	rec, err := toRecord(run)
	require.NoError(t, err)
	assert.Equal(t, "anova", rec.Kind)
	assert.False(t, rec.ErrorMessage.Valid)
	assert.Contains(t, string(rec.ResultTables), "null")

	back, err := fromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, run.ID, back.ID)
	assert.Equal(t, run.Job, back.Job)
	assert.Equal(t, run.Rows, back.Rows)
	assert.True(t, run.StartedAt.Equal(back.StartedAt))
	require.Len(t, back.Tables, 1)
	assert.Equal(t, *tbl, *back.Tables[0])
}

func TestRecordWithoutTables(t *testing.T) {
	run := &stattest.Run{ID: core.NewRunID(), Job: stattest.Job{Kind: stattest.KindOneSample}, Status: stattest.RunFailed, Error: "boom"}
	rec, err := toRecord(run)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(rec.ResultTables))
	assert.True(t, rec.ErrorMessage.Valid)

	back, err := fromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, "boom", back.Error)
	assert.Empty(t, back.Tables)
}

func TestFromRecordRejectsBadID(t *testing.T) {
	_, err := fromRecord(runRecord{ID: "not-a-uuid", Job: []byte(`{}`)})
	assert.Error(t, err)
}

func TestEmbeddedMigrations(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, "001", migrations[0].Version)
	assert.Equal(t, "runs", migrations[0].Name)
	assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS test_runs")
	assert.Len(t, migrations[0].Checksum, 64)
}
