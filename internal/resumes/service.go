package resumes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"elevate-backend/internal/extract"
	"elevate-backend/internal/shared/auth"
	"elevate-backend/internal/shared/metrics"
	"elevate-backend/internal/shared/storage/object"
	"elevate-backend/internal/shared/telemetry"
)

const (
	MaxUploadBytes = 10 << 20

	historyDateLayout = "Jan 02, 2006"
	historyFanOut     = 4
)

var (
	ErrValidation = errors.New("validation error")
	// ErrTooLarge wraps ErrValidation for files over MaxUploadBytes.
	ErrTooLarge = fmt.Errorf("%w: file exceeds %d bytes", ErrValidation, MaxUploadBytes)
)

// ScoreSource reports the ATS score of the latest analysis of a resume, or 0 when there is none.
type ScoreSource interface {
	LatestATSScore(ctx context.Context, resumeID string) (int, error)
}

type Service struct {
	Store  object.Store
	Repo   Repo
	Scores ScoreSource

	now func() time.Time
}

func NewService(store object.Store, repo Repo, scores ScoreSource) *Service {
	return &Service{Store: store, Repo: repo, Scores: scores, now: time.Now}
}

// Upload extracts the text of a PDF, keeps the original bytes and records the resume.
// Extraction failures wrap ErrValidation together with one of the extract sentinels.
func (s *Service) Upload(ctx context.Context, id auth.Identity, fileName string, data []byte) (Resume, error) {
	if len(data) > MaxUploadBytes {
		metrics.IncUploadRejected()
		return Resume{}, ErrTooLarge
	}
	text, err := extract.PDFText(ctx, data)
	if err != nil {
		metrics.IncUploadRejected()
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Resume{}, err
		}
		return Resume{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		fileName = "resume.pdf"
	}

	resume := Resume{
		ID:            uuid.NewString(),
		UserID:        id.UserID,
		FileName:      fileName,
		MimeType:      extract.MimePDF,
		SizeBytes:     int64(len(data)),
		ExtractedText: text,
		CreatedAt:     s.clock().UTC(),
	}

	if s.Store != nil {
		key, err := s.Store.Put(ctx, object.Object{
			Owner:       id.UserID,
			FileName:    fileName,
			ContentType: extract.MimePDF,
			Body:        data,
		})
		if err != nil {
			return Resume{}, fmt.Errorf("store resume: %w", err)
		}
		resume.StorageKey = key
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, fmt.Errorf("create resume: %w", err)
	}
	metrics.IncUpload()
	telemetry.Info("resume.uploaded", map[string]any{
		"resume_id":  resume.ID,
		"user_id":    resume.UserID,
		"size_bytes": resume.SizeBytes,
		"text_chars": len(text),
	})
	return resume, nil
}

// Get loads a resume visible to id. Resumes owned by another user report ErrNotFound.
func (s *Service) Get(ctx context.Context, id auth.Identity, resumeID string) (Resume, error) {
	if strings.TrimSpace(resumeID) == "" {
		return Resume{}, ErrNotFound
	}
	resume, err := s.Repo.GetByID(ctx, resumeID)
	if err != nil {
		return Resume{}, err
	}
	if resume.UserID != "" && resume.UserID != id.UserID {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

// CountByUser is used by the profile endpoint.
func (s *Service) CountByUser(ctx context.Context, userID string) (int, error) {
	return s.Repo.CountByUser(ctx, userID)
}

// History lists the caller's resumes, newest first, with the score of each latest analysis.
func (s *Service) History(ctx context.Context, id auth.Identity) ([]HistoryItem, error) {
	if id.Anonymous() {
		return nil, ErrNotFound
	}
	list, err := s.Repo.ListByUser(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}

	items := make([]HistoryItem, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(historyFanOut)
	for i, resume := range list {
		items[i] = HistoryItem{
			ID:        resume.ID,
			FileName:  displayName(resume),
			CreatedAt: resume.CreatedAt.Format(historyDateLayout),
		}
		if s.Scores == nil {
			continue
		}
		g.Go(func() error {
			score, err := s.Scores.LatestATSScore(gctx, resume.ID)
			if err != nil {
				return fmt.Errorf("load score for %s: %w", resume.ID, err)
			}
			items[i].ATSScore = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func displayName(resume Resume) string {
	if name := strings.TrimSpace(resume.FileName); name != "" {
		return name
	}
	short := resume.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return "Resume #" + short
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
