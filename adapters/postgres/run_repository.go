// Package postgres stores completed test runs in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hypotest/domain/core"
	"hypotest/domain/stattest"
	"hypotest/domain/table"
	"hypotest/ports"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
)

// runRecord is the row layout of test_runs
type runRecord struct {
	ID           string         `db:"id"`
	Kind         string         `db:"kind"`
	Status       string         `db:"status"`
	ErrorMessage sql.NullString `db:"error_message"`
	RowCount     int64          `db:"row_count"`
	Job          []byte         `db:"job"`
	ResultTables []byte         `db:"result_tables"`
	StartedAt    time.Time      `db:"started_at"`
	CompletedAt  time.Time      `db:"completed_at"`
}

const runColumns = `id, kind, status, error_message, row_count, job, result_tables, started_at, completed_at`

// RunRepositoryImpl implements RunRepository for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

// SaveRun inserts a run, replacing any earlier row with the same ID
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, run *stattest.Run) error {
	rec, err := toRecord(run)
	if err != nil {
		return err
	}
	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO test_runs (`+runColumns+`)
		VALUES (:id, :kind, :status, :error_message, :row_count, :job, :result_tables, :started_at, :completed_at)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			error_message = EXCLUDED.error_message,
			row_count = EXCLUDED.row_count,
			result_tables = EXCLUDED.result_tables,
			completed_at = EXCLUDED.completed_at
	`, rec)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun retrieves a run by ID
func (r *RunRepositoryImpl) GetRun(ctx context.Context, id core.RunID) (*stattest.Run, error) {
	var rec runRecord
	err := r.db.GetContext(ctx, &rec, `SELECT `+runColumns+` FROM test_runs WHERE id = $1`, id.String())
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return fromRecord(rec)
}

// ListRuns returns runs, most recently started first, optionally limited
func (r *RunRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]*stattest.Run, error) {
	query := `SELECT ` + runColumns + ` FROM test_runs ORDER BY started_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	var recs []runRecord
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	runs := make([]*stattest.Run, 0, len(recs))
	for _, rec := range recs {
		run, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func toRecord(run *stattest.Run) (runRecord, error) {
	job, err := json.Marshal(run.Job)
	if err != nil {
		return runRecord{}, fmt.Errorf("encode job: %w", err)
	}
	tables := run.Tables
	if tables == nil {
		tables = []*table.Table{}
	}
	payload, err := json.Marshal(tables)
	if err != nil {
		return runRecord{}, fmt.Errorf("encode result tables: %w", err)
	}
	rec := runRecord{
		ID:           run.ID.String(),
		Kind:         string(run.Job.Kind),
		Status:       string(run.Status),
		RowCount:     run.Rows,
		Job:          job,
		ResultTables: payload,
		StartedAt:    run.StartedAt.UTC(),
		CompletedAt:  run.CompletedAt.UTC(),
	}
	if run.Error != "" {
		rec.ErrorMessage = sql.NullString{String: run.Error, Valid: true}
	}
	return rec, nil
}

func fromRecord(rec runRecord) (*stattest.Run, error) {
	id, err := core.ParseRunID(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("stored run id %q: %w", rec.ID, err)
	}
	run := &stattest.Run{
		ID:          id,
		Status:      stattest.RunStatus(rec.Status),
		Error:       rec.ErrorMessage.String,
		Rows:        rec.RowCount,
		StartedAt:   rec.StartedAt,
		CompletedAt: rec.CompletedAt,
	}
	if err := json.Unmarshal(rec.Job, &run.Job); err != nil {
		return nil, fmt.Errorf("decode job of run %s: %w", rec.ID, err)
	}
	if len(rec.ResultTables) > 0 {
		if err := json.Unmarshal(rec.ResultTables, &run.Tables); err != nil {
			return nil, fmt.Errorf("decode result tables of run %s: %w", rec.ID, err)
		}
	}
	return run, nil
}
