// Package landing renders the integration page served at "/".
package landing

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"regexp"
	texttemplate "text/template"

	"github.com/itchan-dev/feedback/backend/internal/widget"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed assets/instructions.md
var instructionsSource string

//go:embed assets/layout.html
var layoutSource string

const snippetSlug = "<slug>"

type Options struct {
	DemoSlug   string
	LiveReload bool // development only
}

type Page struct {
	md           goldmark.Markdown
	policy       *bluemonday.Policy
	instructions *texttemplate.Template
	layout       *template.Template
	opts         Options
}

func New(opts Options) *Page {
	if opts.DemoSlug == "" {
		opts.DemoSlug = "demo"
	}

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w-]+$`)).OnElements("code")

	return &Page{
		md:           goldmark.New(goldmark.WithExtensions(extension.Table)),
		policy:       policy,
		instructions: texttemplate.Must(texttemplate.New("instructions").Parse(instructionsSource)),
		layout:       template.Must(template.New("layout").Parse(layoutSource)),
		opts:         opts,
	}
}

// Render builds the page for a service reachable at baseURL.
func (p *Page) Render(baseURL string) ([]byte, error) {
	var markdown bytes.Buffer
	if err := p.instructions.Execute(&markdown, struct{ SnippetURL string }{
		SnippetURL: baseURL + "/feedback/" + snippetSlug + "/widget.js",
	}); err != nil {
		return nil, fmt.Errorf("render instructions: %w", err)
	}

	var rendered bytes.Buffer
	if err := p.md.Convert(markdown.Bytes(), &rendered); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	safeHTML := p.policy.SanitizeBytes(rendered.Bytes())

	var page bytes.Buffer
	err := p.layout.Execute(&page, struct {
		Instructions template.HTML
		DemoScript   string
		LiveReload   bool
	}{
		Instructions: template.HTML(safeHTML),
		DemoScript:   widget.ScriptURL(baseURL, p.opts.DemoSlug),
		LiveReload:   p.opts.LiveReload,
	})
	if err != nil {
		return nil, fmt.Errorf("render layout: %w", err)
	}
	return page.Bytes(), nil
}
