// Package markup renders template and Markdown pages into HTML documents.
package markup

import (
	"bytes"
	"html/template"
	"path/filepath"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownHighlightStyle is returned when no chroma style has the configured name.
var ErrUnknownHighlightStyle = zerr.New("unknown highlight style")

const defaultDocument = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Content}}
</body>
</html>
`

// Renderer renders pages with html/template and goldmark.
type Renderer struct {
	md     goldmark.Markdown
	pretty bool
	data   map[string]any
}

// PageData is the value pages and layouts are executed with.
type PageData struct {
	// Title comes from front matter, or from the page name.
	Title string
	// Page is the name of the output document.
	Page string
	// Meta holds the front matter of a Markdown page.
	Meta map[string]any
	// Data holds the site data from the configuration.
	Data map[string]any
	// Content is the rendered body of a Markdown page.
	Content template.HTML
}

// NewRenderer creates a Renderer for cfg.
func NewRenderer(cfg domain.MarkupConfig) (*Renderer, error) {
	style := cfg.HighlightStyle
	if style == "" {
		style = domain.DefaultHighlightStyle
	}
	if _, ok := styles.Registry[style]; !ok {
		return nil, zerr.With(ErrUnknownHighlightStyle, "style", style)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			meta.Meta,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithGuessLanguage(true),
				highlighting.WithFormatOptions(chromahtml.TabWidth(2)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)

	return &Renderer{
		md:     md,
		pretty: cfg.Pretty,
		data:   cfg.Data,
	}, nil
}

// Render executes page with every partial available as a named template.
// Partials are named by their slash-separated path relative to their glob base.
func (r *Renderer) Render(page domain.Asset, partials []domain.Asset) ([]byte, error) {
	out, err := r.render(page, partials)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTemplateRenderFailed.Error()), "page", page.Path)
	}
	if !r.pretty {
		return out, nil
	}

	pretty, err := Pretty(out)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTemplateRenderFailed.Error()), "page", page.Path)
	}
	return pretty, nil
}

func (r *Renderer) render(page domain.Asset, partials []domain.Asset) ([]byte, error) {
	set, err := templates(page.Name(), partials)
	if err != nil {
		return nil, err
	}

	data := PageData{
		Title: titleFromName(page.Name()),
		Page:  domain.ReplaceExt(page.Name(), ".html"),
		Data:  r.data,
	}

	if strings.EqualFold(page.Ext(), ".md") {
		return r.renderMarkdown(set, page, data)
	}

	if _, err := set.Parse(string(page.Contents)); err != nil {
		return nil, err
	}
	return execute(set, data)
}

func (r *Renderer) renderMarkdown(set *template.Template, page domain.Asset, data PageData) ([]byte, error) {
	var body bytes.Buffer
	ctx := parser.NewContext()
	if err := r.md.Convert(page.Contents, &body, parser.WithContext(ctx)); err != nil {
		return nil, err
	}

	front, err := meta.TryGet(ctx)
	if err != nil {
		return nil, err
	}
	data.Meta = front
	data.Content = template.HTML(body.String()) //nolint:gosec // Markdown output is trusted site content.
	if title, ok := front["title"].(string); ok && title != "" {
		data.Title = title
	}

	layout, _ := front["layout"].(string)
	if layout == "" {
		if _, err := set.Parse(defaultDocument); err != nil {
			return nil, err
		}
		return execute(set, data)
	}

	t := set.Lookup(filepath.ToSlash(layout))
	if t == nil {
		return nil, zerr.With(zerr.New("layout not found"), "layout", layout)
	}
	return execute(t, data)
}

// templates parses partials into a set rooted at name.
func templates(name string, partials []domain.Asset) (*template.Template, error) {
	set := template.New(name).Funcs(template.FuncMap{
		"title": titleCase,
		"safe": func(s string) template.HTML {
			return template.HTML(s) //nolint:gosec // explicit opt-in from the template author.
		},
	})

	for _, p := range partials {
		if _, err := set.New(filepath.ToSlash(p.Path)).Parse(string(p.Contents)); err != nil {
			return nil, zerr.With(err, "partial", p.Path)
		}
	}
	return set, nil
}

func titleFromName(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return titleCase(strings.NewReplacer("-", " ", "_", " ").Replace(stem))
}

// titleCase builds a Caser per call; Casers hold state.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func execute(t *template.Template, data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
