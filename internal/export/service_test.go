package export

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevate-backend/internal/analyses"
	"elevate-backend/internal/resumes"
	"elevate-backend/internal/shared/auth"
	"elevate-backend/internal/tier"
)

type stubResumes map[string]resumes.Resume

func (s stubResumes) Get(ctx context.Context, id auth.Identity, resumeID string) (resumes.Resume, error) {
	r, ok := s[resumeID]
	if !ok {
		return resumes.Resume{}, resumes.ErrNotFound
	}
	return r, nil
}

type stubAnalyses map[string]analyses.Analysis

func (s stubAnalyses) Latest(ctx context.Context, id auth.Identity, resumeID string) (analyses.Analysis, error) {
	a, ok := s[resumeID]
	if !ok {
		return analyses.Analysis{}, analyses.ErrNotFound
	}
	return a, nil
}

type stubLookup map[string]bool

func (s stubLookup) LookupSubscription(ctx context.Context, userID string) (tier.Subscription, error) {
	return tier.Subscription{Privileged: s[userID]}, nil
}

type stubRenderer struct {
	html string
	err  error
}

func (r *stubRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	r.html = html
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func newService(renderer Renderer) *Service {
	analysis := analyses.Analysis{Record: analyses.Record{ATSScore: 88, ImpactScore: 61, BrevityScore: 90, ActionVerbScore: 72}}
	return NewService(
		stubResumes{
			"r-1": {ID: "r-1", FileName: "jane_doe.pdf", ExtractedText: "Jane Doe\nStaff Engineer"},
			"r-2": {ID: "r-2", FileName: "fresh.pdf", ExtractedText: "New"},
		},
		stubAnalyses{"r-1": analysis},
		tier.NewResolver(stubLookup{"pro": true}),
		renderer,
	)
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestPreviewStandardIsBasicWithWatermark(t *testing.T) {
	html, err := newService(nil).Preview(context.Background(), auth.Identity{}, "r-1", Options{Template: "executive", Font: "Georgia"})
	require.NoError(t, err)

	doc := parse(t, html)
	assert.True(t, doc.Find("body").HasClass("template-basic"))
	assert.Equal(t, 1, doc.Find(".watermark").Length())
	assert.Equal(t, "ATS 88", doc.Find(`[data-score="ats"]`).Text())
	assert.Equal(t, "jane_doe", doc.Find("h1").Text())
	assert.Contains(t, doc.Find("style").Text(), "Georgia")
}

func TestPreviewPrivilegedKeepsTemplate(t *testing.T) {
	html, err := newService(nil).Preview(context.Background(), auth.Identity{UserID: "pro"}, "r-1", Options{Template: "modern"})
	require.NoError(t, err)

	doc := parse(t, html)
	assert.True(t, doc.Find("body").HasClass("template-modern"))
	assert.Equal(t, 0, doc.Find(".watermark").Length())
	assert.Contains(t, doc.Find("style").Text(), "Helvetica")
}

func TestPreviewNeedsAnalysis(t *testing.T) {
	_, err := newService(nil).Preview(context.Background(), auth.Identity{}, "r-2", Options{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = newService(nil).Preview(context.Background(), auth.Identity{}, "missing", Options{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExportPDF(t *testing.T) {
	renderer := &stubRenderer{}
	pdf, err := newService(renderer).ExportPDF(context.Background(), auth.Identity{UserID: "pro"}, "r-2", Options{Template: "executive"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(pdf))

	doc := parse(t, renderer.html)
	assert.True(t, doc.Find("body").HasClass("template-executive"))
	assert.Equal(t, 0, doc.Find("[data-score]").Length())
	assert.Equal(t, 0, doc.Find(".watermark").Length())
}

func TestExportPDFRenderFailure(t *testing.T) {
	_, err := newService(&stubRenderer{err: errors.New("chrome missing")}).ExportPDF(context.Background(), auth.Identity{}, "r-1", Options{})
	assert.ErrorIs(t, err, ErrRender)

	_, err = newService(nil).ExportPDF(context.Background(), auth.Identity{}, "r-1", Options{})
	assert.ErrorIs(t, err, ErrRender)
}
