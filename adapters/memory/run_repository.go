package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"hypotest/domain/core"
	"hypotest/domain/stattest"
)

// RunRepository keeps completed runs in memory
type RunRepository struct {
	runs  map[core.RunID]*stattest.Run
	order []core.RunID
	mu    sync.RWMutex
}

func NewRunRepository() *RunRepository {
	return &RunRepository{runs: make(map[core.RunID]*stattest.Run)}
}

func (r *RunRepository) SaveRun(ctx context.Context, run *stattest.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.runs[run.ID]; !exists {
		r.order = append(r.order, run.ID)
	}
	r.runs[run.ID] = run
	return nil
}

func (r *RunRepository) GetRun(ctx context.Context, id core.RunID) (*stattest.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
	}
	return run, nil
}

// ListRuns returns up to limit runs, most recently started first.
// A non-positive limit returns every run.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*stattest.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]*stattest.Run, 0, len(r.order))
	for _, id := range r.order {
		runs = append(runs, r.runs[id])
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
