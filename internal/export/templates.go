package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"elevate-backend/internal/tier"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	TemplateBasic     = "basic"
	TemplateModern    = "modern"
	TemplateExecutive = "executive"

	DefaultFont = "Helvetica"
)

var fontStacks = map[string]string{
	"Helvetica":       `Helvetica, Arial, sans-serif`,
	"Arial":           `Arial, Helvetica, sans-serif`,
	"Georgia":         `Georgia, "Times New Roman", serif`,
	"Times New Roman": `"Times New Roman", Times, serif`,
	"Garamond":        `Garamond, Georgia, serif`,
	"Calibri":         `Calibri, Arial, sans-serif`,
	"Roboto":          `Roboto, Arial, sans-serif`,
}

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// ResolveTemplate returns the template to use. Standard callers always get basic.
func ResolveTemplate(t tier.Tier, name string) string {
	if !t.IsPrivileged() {
		return TemplateBasic
	}
	switch name = strings.ToLower(strings.TrimSpace(name)); name {
	case TemplateModern, TemplateExecutive:
		return name
	default:
		return TemplateBasic
	}
}

// ResolveFont maps a requested font onto the allowlist, defaulting to Helvetica.
func ResolveFont(name string) string {
	name = strings.TrimSpace(name)
	for font := range fontStacks {
		if strings.EqualFold(font, name) {
			return font
		}
	}
	return DefaultFont
}

// Scores are shown on previews only.
type Scores struct {
	ATS        int
	Impact     int
	Brevity    int
	ActionVerb int
}

type view struct {
	Title     string
	Lines     []string
	FontCSS   template.CSS
	Watermark bool
	Scores    *Scores
}

// Page is the input of renderPage. Font must already be resolved.
type Page struct {
	Template  string
	Font      string
	Title     string
	Text      string
	Watermark bool
	Scores    *Scores
}

func renderPage(p Page) (string, error) {
	stack, ok := fontStacks[p.Font]
	if !ok {
		stack = fontStacks[DefaultFont]
	}
	v := view{
		Title:     p.Title,
		Lines:     splitLines(p.Text),
		FontCSS:   template.CSS(stack),
		Watermark: p.Watermark,
		Scores:    p.Scores,
	}
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, p.Template+".html", v); err != nil {
		return "", fmt.Errorf("render %s: %w", p.Template, err)
	}
	return buf.String(), nil
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
