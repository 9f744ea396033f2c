package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevate-backend/internal/extract"
	"elevate-backend/internal/extract/pdftest"
	"elevate-backend/internal/shared/auth"
	"elevate-backend/internal/shared/storage/object/local"
)

type stubScores map[string]int

func (s stubScores) LatestATSScore(ctx context.Context, resumeID string) (int, error) {
	return s[resumeID], nil
}

type failingScores struct{}

func (failingScores) LatestATSScore(ctx context.Context, resumeID string) (int, error) {
	return 0, errors.New("db down")
}

func newTestService(t *testing.T, scores ScoreSource) *Service {
	t.Helper()
	return NewService(local.New(t.TempDir()), NewMemoryRepo(), scores)
}

func TestUploadStoresTextAndOriginal(t *testing.T) {
	svc := newTestService(t, nil)
	id := auth.Identity{UserID: "user-1"}

	resume, err := svc.Upload(context.Background(), id, "cv.pdf", pdftest.Build("Go Engineer", ""))
	require.NoError(t, err)
	assert.NotEmpty(t, resume.ID)
	assert.Equal(t, "user-1", resume.UserID)
	assert.Contains(t, resume.ExtractedText, "Go Engineer")
	assert.NotEmpty(t, resume.StorageKey)

	rc, err := svc.Store.Open(context.Background(), resume.StorageKey)
	require.NoError(t, err)
	_ = rc.Close()

	count, err := svc.CountByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUploadRejectsInvalidFiles(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Upload(context.Background(), auth.Identity{}, "empty.pdf", nil)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, extract.ErrEmpty)

	_, err = svc.Upload(context.Background(), auth.Identity{}, "notes.txt", []byte("plain text"))
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, extract.ErrNotPDF)

	_, err = svc.Upload(context.Background(), auth.Identity{}, "huge.pdf", make([]byte, MaxUploadBytes+1))
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetHidesOtherUsersResumes(t *testing.T) {
	svc := newTestService(t, nil)
	owner := auth.Identity{UserID: "owner"}
	resume, err := svc.Upload(context.Background(), owner, "cv.pdf", pdftest.Build("text", ""))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), owner, resume.ID)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), auth.Identity{UserID: "intruder"}, resume.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), owner, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllowsAnonymousUploadsForAnyone(t *testing.T) {
	svc := newTestService(t, nil)
	resume, err := svc.Upload(context.Background(), auth.Identity{}, "cv.pdf", pdftest.Build("text", ""))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), auth.Identity{UserID: "someone"}, resume.ID)
	assert.NoError(t, err)
}

func TestHistoryNewestFirstWithScores(t *testing.T) {
	repo := NewMemoryRepo()
	older := Resume{ID: "r-old", UserID: "u", FileName: "old.pdf", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	newer := Resume{ID: "abcdef1234567890", UserID: "u", CreatedAt: time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Create(context.Background(), older))
	require.NoError(t, repo.Create(context.Background(), newer))

	svc := NewService(nil, repo, stubScores{"r-old": 72})
	items, err := svc.History(context.Background(), auth.Identity{UserID: "u"})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, HistoryItem{ID: "abcdef1234567890", FileName: "Resume #abcdef12", ATSScore: 0, CreatedAt: "May 09, 2024"}, items[0])
	assert.Equal(t, HistoryItem{ID: "r-old", FileName: "old.pdf", ATSScore: 72, CreatedAt: "Mar 01, 2024"}, items[1])
}

func TestHistoryPropagatesScoreErrors(t *testing.T) {
	repo := NewMemoryRepo()
	require.NoError(t, repo.Create(context.Background(), Resume{ID: "r", UserID: "u", CreatedAt: time.Now()}))

	svc := NewService(nil, repo, failingScores{})
	_, err := svc.History(context.Background(), auth.Identity{UserID: "u"})
	assert.Error(t, err)
}
