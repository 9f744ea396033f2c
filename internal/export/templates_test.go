package export

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevate-backend/internal/tier"
)

func TestResolveTemplate(t *testing.T) {
	assert.Equal(t, TemplateBasic, ResolveTemplate(tier.Standard, "modern"))
	assert.Equal(t, TemplateBasic, ResolveTemplate(tier.Standard, "executive"))
	assert.Equal(t, TemplateModern, ResolveTemplate(tier.Privileged, "Modern"))
	assert.Equal(t, TemplateExecutive, ResolveTemplate(tier.Privileged, "executive"))
	assert.Equal(t, TemplateBasic, ResolveTemplate(tier.Privileged, "fancy"))
	assert.Equal(t, TemplateBasic, ResolveTemplate(tier.Privileged, ""))
}

func TestResolveFont(t *testing.T) {
	assert.Equal(t, "Georgia", ResolveFont("georgia"))
	assert.Equal(t, "Times New Roman", ResolveFont(" Times New Roman "))
	assert.Equal(t, DefaultFont, ResolveFont("Comic Sans"))
	assert.Equal(t, DefaultFont, ResolveFont("x; background:url(evil)"))
}

func TestEveryTemplateRenders(t *testing.T) {
	for _, name := range []string{TemplateBasic, TemplateModern, TemplateExecutive} {
		html, err := renderPage(Page{
			Template:  name,
			Font:      "Roboto",
			Title:     "cv",
			Text:      "Jane Doe\n\nGo engineer",
			Watermark: true,
			Scores:    &Scores{ATS: 1, Impact: 2, Brevity: 3, ActionVerb: 4},
		})
		require.NoError(t, err, name)

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		require.NoError(t, err)
		assert.True(t, doc.Find("body").HasClass("template-"+name), name)
		assert.Equal(t, 2, doc.Find("p.line").Length(), name)
		assert.Equal(t, "ATS 1", doc.Find(`[data-score="ats"]`).Text(), name)
		assert.Equal(t, 1, doc.Find(".watermark").Length(), name)
		assert.Contains(t, doc.Find("style").Text(), "Roboto, Arial, sans-serif", name)
	}
}

func TestRenderEscapesResumeText(t *testing.T) {
	html, err := renderPage(Page{Template: TemplateBasic, Font: DefaultFont, Title: "cv", Text: "<script>alert(1)</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, "<script>alert(1)</script>", doc.Find("p.line").Text())
	assert.Equal(t, 0, doc.Find("[data-score]").Length())
	assert.Equal(t, 0, doc.Find(".watermark").Length())
}
