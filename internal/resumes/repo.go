package resumes

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("resume not found")

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}
