package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/sysmanage/docsite/pkg/sanitizer"
)

var (
	ErrFrontMatter = errors.New("markdown: invalid front matter")
	ErrRender      = errors.New("markdown: render failed")
)

// Meta is the YAML front matter of a Markdown page.
type Meta struct {
	Title       string `yaml:"title"`
	TitleKey    string `yaml:"title_key"`
	Description string `yaml:"description"`

	// Header and Footer request the shared chrome. Both default to true.
	Header *bool `yaml:"header"`
	Footer *bool `yaml:"footer"`

	// Active names the header link highlighted for this page.
	Active string `yaml:"active"`
}

// WantsHeader reports whether the header is injected.
func (m Meta) WantsHeader() bool { return m.Header == nil || *m.Header }

// WantsFooter reports whether the footer is injected.
func (m Meta) WantsFooter() bool { return m.Footer == nil || *m.Footer }

// Page is a rendered Markdown document.
type Page struct {
	Meta Meta
	Body template.HTML
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSanitize runs rendered HTML through the Markdown sanitizer policy.
func WithSanitize(on bool) Option {
	return func(r *Renderer) {
		r.sanitize = on
	}
}

// WithStylesheets sets site-absolute stylesheet paths linked from every page.
func WithStylesheets(paths ...string) Option {
	return func(r *Renderer) {
		r.stylesheets = paths
	}
}

// Renderer turns Markdown sources into full HTML documents carrying the same
// markers as hand-written pages. It is safe for concurrent use.
type Renderer struct {
	md          goldmark.Markdown
	stylesheets []string
	sanitize    bool
}

// New creates a Renderer with GFM, heading ids and root link marking.
// Raw HTML in sources is kept so authors can use data-i18n spans.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		stylesheets: []string{"/assets/css/styles.css"},
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote, RootLinks),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Convert parses front matter and renders the Markdown body.
func (r *Renderer) Convert(src []byte) (*Page, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	out := buf.String()
	if r.sanitize {
		out = sanitizer.Markdown(out)
	}

	return &Page{Meta: meta, Body: template.HTML(out)}, nil //nolint:gosec // sanitized above or trusted site content
}

// Render converts src into a complete HTML document.
func (r *Renderer) Render(src []byte) ([]byte, error) {
	page, err := r.Convert(src)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := layout.Execute(&buf, layoutData{
		Page:        page,
		Stylesheets: r.stylesheets,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

type layoutData struct {
	Page        *Page
	Stylesheets []string
}

var layout = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en"{{with .Page.Meta.TitleKey}} data-i18n-title="{{.}}"{{end}}>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Page.Meta.Title}}</title>
{{- with .Page.Meta.Description}}
<meta name="description" content="{{.}}">
{{- end}}
{{- range .Stylesheets}}
<link rel="stylesheet" href="{{.}}" data-root-path="href">
{{- end}}
</head>
<body{{if .Page.Meta.WantsHeader}} data-auto-header="{{.Page.Meta.Active}}"{{end}}{{if .Page.Meta.WantsFooter}} data-auto-footer{{end}}>
<main class="docs-content">
{{.Page.Body}}
</main>
</body>
</html>
`))
