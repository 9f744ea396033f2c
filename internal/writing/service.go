// Package writing rewrites resume bullet points and drafts cover letters.
package writing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"elevate-backend/internal/llm"
	"elevate-backend/internal/resumes"
	"elevate-backend/internal/shared/auth"
	"elevate-backend/internal/shared/metrics"
	"elevate-backend/internal/shared/telemetry"
)

const (
	unconfiguredBullet      = "Accomplished [X] as measured by [Y], by doing [Z]. (Mocked test feature)"
	unconfiguredCoverLetter = "Dear Hiring Manager,\n\nI am writing to express my strong interest in the open position. Please find my resume attached.\n\nSincerely,\nCandidate (Mocked)"
	failedCoverLetter       = "Error generating cover letter. (Mocked fallback)"
)

var (
	ErrNotFound   = errors.New("resume not found")
	ErrValidation = errors.New("validation error")
)

// ResumeLoader loads a resume visible to the caller.
type ResumeLoader interface {
	Get(ctx context.Context, id auth.Identity, resumeID string) (resumes.Resume, error)
}

type Service struct {
	Resumes   ResumeLoader
	Generator llm.Generator
	Timeout   time.Duration
}

func NewService(resumes ResumeLoader, gen llm.Generator, timeout time.Duration) *Service {
	return &Service{Resumes: resumes, Generator: gen, Timeout: timeout}
}

// Enhance rewrites one bullet point. Model failures fall back to fixed text.
func (s *Service) Enhance(ctx context.Context, req EnhanceRequest) (EnhanceResponse, error) {
	if err := req.Validate(); err != nil {
		return EnhanceResponse{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	out := s.generate(ctx, llm.EnhancePrompt(req.BulletPoint, req.TargetJob))
	switch out.reason {
	case "":
		return EnhanceResponse{EnhancedBulletPoint: out.text}, nil
	case reasonUnconfigured:
		return EnhanceResponse{EnhancedBulletPoint: unconfiguredBullet}, nil
	default:
		s.logDegraded("writing.enhance_degraded", out)
		return EnhanceResponse{EnhancedBulletPoint: "Enhanced: " + req.BulletPoint + " (Mocked fallback)"}, nil
	}
}

// CoverLetter drafts a letter from the resume text and an optional job description.
func (s *Service) CoverLetter(ctx context.Context, id auth.Identity, resumeID string, req CoverLetterRequest) (CoverLetterResponse, error) {
	if err := req.Validate(); err != nil {
		return CoverLetterResponse{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	resume, err := s.Resumes.Get(ctx, id, resumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return CoverLetterResponse{}, ErrNotFound
		}
		return CoverLetterResponse{}, fmt.Errorf("load resume: %w", err)
	}

	out := s.generate(ctx, llm.CoverLetterPrompt(resume.ExtractedText, req.JobDescription))
	switch out.reason {
	case "":
		return CoverLetterResponse{CoverLetter: out.text}, nil
	case reasonUnconfigured:
		return CoverLetterResponse{CoverLetter: unconfiguredCoverLetter}, nil
	default:
		s.logDegraded("writing.cover_letter_degraded", out)
		return CoverLetterResponse{CoverLetter: failedCoverLetter}, nil
	}
}

const (
	reasonUnconfigured  = "unconfigured"
	reasonTimeout       = "timeout"
	reasonUpstreamError = "upstream_error"
	reasonEmpty         = "empty"
)

// generation is Ok when reason is empty and Degraded otherwise.
type generation struct {
	text   string
	reason string
	err    error
}

func (s *Service) generate(ctx context.Context, prompt string) generation {
	if s == nil || !llm.IsConfigured(s.Generator) {
		return generation{reason: reasonUnconfigured, err: llm.ErrNotConfigured}
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	text, err := s.Generator.Generate(ctx, prompt)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return generation{reason: reasonUnconfigured, err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return generation{reason: reasonTimeout, err: err}
	case err != nil:
		return generation{reason: reasonUpstreamError, err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return generation{reason: reasonEmpty}
	}
	return generation{text: text}
}

func (s *Service) logDegraded(event string, out generation) {
	metrics.IncWritingDegraded()
	telemetry.Warn(event, map[string]any{"reason": out.reason, "err": out.err})
}
