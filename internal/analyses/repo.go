package analyses

import "context"

// Repo persists analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	LatestByResume(ctx context.Context, resumeID string) (Analysis, error)
}
