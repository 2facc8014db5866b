package ports

import (
	"context"

	"hypotest/domain/core"
	"hypotest/domain/stattest"
)

// ResultSink accepts completed runs. Runs that failed or were canceled are
// never written.
type ResultSink interface {
	SaveRun(ctx context.Context, run *stattest.Run) error
}

// RunRepository stores runs and their result tables for later retrieval
type RunRepository interface {
	ResultSink
	GetRun(ctx context.Context, id core.RunID) (*stattest.Run, error)
	ListRuns(ctx context.Context, limit int) ([]*stattest.Run, error)
}
