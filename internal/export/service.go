// Package export renders stored resumes as styled HTML previews and PDF downloads.
package export

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"elevate-backend/internal/analyses"
	"elevate-backend/internal/resumes"
	"elevate-backend/internal/shared/auth"
	"elevate-backend/internal/shared/metrics"
	"elevate-backend/internal/shared/telemetry"
	"elevate-backend/internal/shared/validation"
	"elevate-backend/internal/tier"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrRender     = errors.New("render failed")
)

// ResumeLoader loads a resume visible to the caller.
type ResumeLoader interface {
	Get(ctx context.Context, id auth.Identity, resumeID string) (resumes.Resume, error)
}

// AnalysisSource returns the latest stored analysis of a resume.
type AnalysisSource interface {
	Latest(ctx context.Context, id auth.Identity, resumeID string) (analyses.Analysis, error)
}

// Options are the caller's styling choices.
type Options struct {
	Template string `json:"template" form:"template" validate:"max=32"`
	Font     string `json:"font" form:"font" validate:"max=64"`
}

func (o Options) Validate() error {
	return validation.Struct(o)
}

type Service struct {
	Resumes  ResumeLoader
	Analyses AnalysisSource
	Tiers    *tier.Resolver
	Renderer Renderer
}

func NewService(resumes ResumeLoader, analyses AnalysisSource, tiers *tier.Resolver, renderer Renderer) *Service {
	return &Service{Resumes: resumes, Analyses: analyses, Tiers: tiers, Renderer: renderer}
}

// Preview renders the HTML shown in the editor. It needs a stored analysis for the scores.
func (s *Service) Preview(ctx context.Context, id auth.Identity, resumeID string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	resume, err := s.loadResume(ctx, id, resumeID)
	if err != nil {
		return "", err
	}
	analysis, err := s.Analyses.Latest(ctx, id, resumeID)
	if err != nil {
		if errors.Is(err, analyses.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("load analysis: %w", err)
	}

	t := s.Tiers.Resolve(ctx, id)
	return renderPage(Page{
		Template:  ResolveTemplate(t, opts.Template),
		Font:      ResolveFont(opts.Font),
		Title:     resumeTitle(resume),
		Text:      resume.ExtractedText,
		Watermark: !t.IsPrivileged(),
		Scores: &Scores{
			ATS:        analysis.ATSScore,
			Impact:     analysis.ImpactScore,
			Brevity:    analysis.BrevityScore,
			ActionVerb: analysis.ActionVerbScore,
		},
	})
}

// ExportPDF renders the resume without scores and prints it to PDF.
func (s *Service) ExportPDF(ctx context.Context, id auth.Identity, resumeID string, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	resume, err := s.loadResume(ctx, id, resumeID)
	if err != nil {
		return nil, err
	}

	t := s.Tiers.Resolve(ctx, id)
	template := ResolveTemplate(t, opts.Template)
	html, err := renderPage(Page{
		Template: template,
		Font:     ResolveFont(opts.Font),
		Title:    resumeTitle(resume),
		Text:     resume.ExtractedText,
	})
	if err != nil {
		return nil, err
	}
	if s.Renderer == nil {
		return nil, fmt.Errorf("%w: no renderer configured", ErrRender)
	}
	pdf, err := s.Renderer.RenderPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	metrics.IncExport()
	telemetry.Info("export.rendered", map[string]any{
		"resume_id": resume.ID,
		"template":  template,
		"bytes":     len(pdf),
	})
	return pdf, nil
}

func (s *Service) loadResume(ctx context.Context, id auth.Identity, resumeID string) (resumes.Resume, error) {
	resume, err := s.Resumes.Get(ctx, id, resumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return resumes.Resume{}, ErrNotFound
		}
		return resumes.Resume{}, fmt.Errorf("load resume: %w", err)
	}
	return resume, nil
}

func resumeTitle(resume resumes.Resume) string {
	name := strings.TrimSpace(resume.FileName)
	if name == "" {
		return "Resume"
	}
	return strings.TrimSuffix(path.Base(name), path.Ext(name))
}
