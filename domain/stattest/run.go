package stattest

import (
	"time"

	"hypotest/domain/core"
	"hypotest/domain/table"
)

// RunStatus is the terminal state of a run
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
	RunCanceled  RunStatus = "canceled"
)

// Run is one complete execution of a Job over a row source. Tables are only
// set for completed runs. The Outcome records are kept in memory only; the
// tables are the persisted form.
type Run struct {
	ID          core.RunID     `json:"id"`
	Job         Job            `json:"job"`
	Status      RunStatus      `json:"status"`
	Error       string         `json:"error,omitempty"`
	Rows        int64          `json:"rows"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
	Outcome     *Outcome       `json:"-"`
	Tables      []*table.Table `json:"tables,omitempty"`
}

// Duration returns the wall time of the run
func (r *Run) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

// Table returns the result table with the given name
func (r *Run) Table(name string) (*table.Table, bool) {
	for _, t := range r.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}
