package analyses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"elevate-backend/internal/resumes"
	"elevate-backend/internal/shared/auth"
	"elevate-backend/internal/shared/metrics"
	"elevate-backend/internal/shared/telemetry"
	"elevate-backend/internal/tier"
)

// ResumeLoader loads a resume visible to the caller.
type ResumeLoader interface {
	Get(ctx context.Context, id auth.Identity, resumeID string) (resumes.Resume, error)
}

// ScanRecorder counts completed analyses on the user's profile.
type ScanRecorder interface {
	RecordScan(ctx context.Context, userID string) error
}

type Service struct {
	Resumes  ResumeLoader
	Tiers    *tier.Resolver
	Analyzer *Analyzer
	Repo     Repo
	Scans    ScanRecorder

	now func() time.Time
}

func NewService(resumes ResumeLoader, tiers *tier.Resolver, analyzer *Analyzer, repo Repo, scans ScanRecorder) *Service {
	return &Service{
		Resumes:  resumes,
		Tiers:    tiers,
		Analyzer: analyzer,
		Repo:     repo,
		Scans:    scans,
		now:      time.Now,
	}
}

// Analyze scores a resume for the caller and stores the tier-shaped record.
// Model failures never surface here; only missing resumes and storage errors do.
func (s *Service) Analyze(ctx context.Context, id auth.Identity, resumeID string, req AnalyzeRequest) (Analysis, error) {
	if err := req.Validate(); err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	resume, err := s.Resumes.Get(ctx, id, resumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, fmt.Errorf("load resume: %w", err)
	}

	t := s.Tiers.Resolve(ctx, id)
	outcome := s.Analyzer.Run(ctx, resume.ExtractedText, req.JobDescription)

	analysis := Analysis{
		ID:        uuid.NewString(),
		UserID:    id.UserID,
		Source:    SourceAI,
		CreatedAt: s.clock().UTC(),
		Record:    Shape(outcome, t),
	}
	analysis.ResumeID = resume.ID
	if outcome.IsDegraded() {
		analysis.Source = SourceMock
		analysis.DegradedReason = outcome.Reason
		metrics.IncAnalysisDegraded(string(outcome.Reason))
		telemetry.Warn("analysis.degraded", map[string]any{
			"resume_id": resume.ID,
			"reason":    string(outcome.Reason),
			"err":       outcome.Err,
		})
	} else {
		metrics.IncAnalysisOk()
	}

	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, fmt.Errorf("save analysis: %w", err)
	}

	if !id.Anonymous() && s.Scans != nil {
		if err := s.Scans.RecordScan(ctx, id.UserID); err != nil {
			telemetry.Warn("analysis.record_scan_failed", map[string]any{"user_id": id.UserID, "err": err})
		}
	}

	telemetry.Info("analysis.completed", map[string]any{
		"analysis_id": analysis.ID,
		"resume_id":   resume.ID,
		"tier":        t.String(),
		"source":      string(analysis.Source),
	})
	return analysis, nil
}

// Latest returns the newest stored analysis, shaped for the caller's current tier.
func (s *Service) Latest(ctx context.Context, id auth.Identity, resumeID string) (Analysis, error) {
	resume, err := s.Resumes.Get(ctx, id, resumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, fmt.Errorf("load resume: %w", err)
	}
	analysis, err := s.Repo.LatestByResume(ctx, resume.ID)
	if err != nil {
		return Analysis{}, err
	}
	analysis.Record = ApplyTierPolicy(analysis.Record, s.Tiers.Resolve(ctx, id))
	return analysis, nil
}

// LatestATSScore returns 0 for resumes that were never analyzed.
func (s *Service) LatestATSScore(ctx context.Context, resumeID string) (int, error) {
	analysis, err := s.Repo.LatestByResume(ctx, resumeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return analysis.ATSScore, nil
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
