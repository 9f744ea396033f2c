package analyses

import (
	"context"
	"sync"
)

// MemoryRepo stores analyses in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu       sync.RWMutex
	byResume map[string][]Analysis
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byResume: make(map[string][]Analysis)}
}

func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byResume[analysis.ResumeID] = append(r.byResume[analysis.ResumeID], analysis)
	return nil
}

// LatestByResume returns the most recently created analysis; ties go to the later insert.
func (r *MemoryRepo) LatestByResume(ctx context.Context, resumeID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.byResume[resumeID]
	if len(list) == 0 {
		return Analysis{}, ErrNotFound
	}
	latest := list[0]
	for _, a := range list[1:] {
		if !a.CreatedAt.Before(latest.CreatedAt) {
			latest = a
		}
	}
	return latest, nil
}
