package writing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevate-backend/internal/llm"
	"elevate-backend/internal/resumes"
	"elevate-backend/internal/shared/auth"
)

type stubResumes map[string]resumes.Resume

func (s stubResumes) Get(ctx context.Context, id auth.Identity, resumeID string) (resumes.Resume, error) {
	r, ok := s[resumeID]
	if !ok {
		return resumes.Resume{}, resumes.ErrNotFound
	}
	return r, nil
}

func fixed(text string, err error) llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return text, err
	})
}

func newService(gen llm.Generator) *Service {
	return NewService(stubResumes{"r-1": {ID: "r-1", ExtractedText: "Go engineer"}}, gen, time.Second)
}

func TestEnhance(t *testing.T) {
	req := EnhanceRequest{BulletPoint: "Worked on APIs"}

	resp, err := newService(fixed("  Cut API latency 40% by caching hot paths.\n", nil)).Enhance(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Cut API latency 40% by caching hot paths.", resp.EnhancedBulletPoint)

	resp, err = newService(llm.Unconfigured{}).Enhance(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Accomplished [X] as measured by [Y], by doing [Z]. (Mocked test feature)", resp.EnhancedBulletPoint)

	resp, err = newService(fixed("", errors.New("quota"))).Enhance(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Enhanced: Worked on APIs (Mocked fallback)", resp.EnhancedBulletPoint)

	resp, err = newService(fixed("   ", nil)).Enhance(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Enhanced: Worked on APIs (Mocked fallback)", resp.EnhancedBulletPoint)
}

func TestEnhanceRequiresBulletPoint(t *testing.T) {
	_, err := newService(llm.Unconfigured{}).Enhance(context.Background(), EnhanceRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewEnhanceRequest("   ", "SRE")
	assert.Error(t, err)
}

func TestCoverLetter(t *testing.T) {
	id := auth.Identity{}

	resp, err := newService(fixed("Dear team,\n\nHire me.", nil)).CoverLetter(context.Background(), id, "r-1", CoverLetterRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Dear team,\n\nHire me.", resp.CoverLetter)

	resp, err = newService(llm.Unconfigured{}).CoverLetter(context.Background(), id, "r-1", CoverLetterRequest{})
	require.NoError(t, err)
	assert.Equal(t, unconfiguredCoverLetter, resp.CoverLetter)

	resp, err = newService(fixed("", context.DeadlineExceeded)).CoverLetter(context.Background(), id, "r-1", CoverLetterRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Error generating cover letter. (Mocked fallback)", resp.CoverLetter)

	_, err = newService(llm.Unconfigured{}).CoverLetter(context.Background(), id, "missing", CoverLetterRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCoverLetterPromptCarriesResumeText(t *testing.T) {
	var seen string
	gen := llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		seen = prompt
		return "ok", nil
	})
	_, err := newService(gen).CoverLetter(context.Background(), auth.Identity{}, "r-1", CoverLetterRequest{JobDescription: "Platform team"})
	require.NoError(t, err)
	assert.Contains(t, seen, "CANDIDATE RESUME:\nGo engineer")
	assert.Contains(t, seen, "TARGET JOB DESCRIPTION:\nPlatform team")
}
