package markup_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/press/internal/adapters/markup"
	"go.trai.ch/press/internal/core/domain"
)

const document = `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><title>Home</title>
<link rel="stylesheet" href="/assets/css/common.min.css"></head>
<body><header><nav><a href="/">Home</a> <a href="/about.html">About</a></nav></header>
<main><h1>Hello   <em>world</em></h1><p>First
paragraph.</p><ul><li>one</li><li>two</li></ul>
<pre>  keep
    this</pre></main><!-- footer --><script src="/assets/js/common.min.js"></script></body></html>`

func TestPretty(t *testing.T) {
	out, err := markup.Pretty([]byte(document))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "pretty_document", out)
}

func TestPretty_Idempotent(t *testing.T) {
	once, err := markup.Pretty([]byte(document))
	require.NoError(t, err)
	twice, err := markup.Pretty(once)
	require.NoError(t, err)
	assert.Equal(t, string(once), string(twice))
}

func layoutPartials() []domain.Asset {
	return []domain.Asset{
		{
			Path: "layout.html",
			Contents: []byte(`<!DOCTYPE html><html><head><title>{{.Title}}</title></head>` +
				`<body>{{template "partials/header.html" .}}{{block "content" .}}{{.Content}}{{end}}</body></html>`),
		},
		{
			Path:     "partials/header.html",
			Contents: []byte(`<header><h1>{{.Data.site}}</h1></header>`),
		},
	}
}

func TestRenderer_TemplatePage(t *testing.T) {
	r, err := markup.NewRenderer(domain.MarkupConfig{
		Pretty: true,
		Data:   map[string]any{"site": "Press"},
	})
	require.NoError(t, err)

	page := domain.Asset{
		Path:     "about-us.html",
		Contents: []byte(`{{template "layout.html" .}}{{define "content"}}<p>{{title "hello there"}}</p>{{end}}`),
	}

	out, err := r.Render(page, layoutPartials())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "render_layout", out)
}

func TestRenderer_Unformatted(t *testing.T) {
	r, err := markup.NewRenderer(domain.MarkupConfig{})
	require.NoError(t, err)

	page := domain.Asset{Path: "index.html", Contents: []byte(`<p>{{.Page}} {{.Title}}</p>`)}
	out, err := r.Render(page, nil)
	require.NoError(t, err)
	assert.Equal(t, "<p>index.html Index</p>", string(out))
}

func TestRenderer_Markdown(t *testing.T) {
	r, err := markup.NewRenderer(domain.MarkupConfig{Data: map[string]any{"site": "Press"}})
	require.NoError(t, err)

	t.Run("with layout", func(t *testing.T) {
		page := domain.Asset{
			Path: "guide.md",
			Contents: []byte("---\ntitle: Getting Started\nlayout: layout.html\n---\n" +
				"# Install\n\nRun it:\n\n```go\nfmt.Println(\"hi\")\n```\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"),
		}

		out, err := r.Render(page, layoutPartials())
		require.NoError(t, err)

		html := string(out)
		assert.Contains(t, html, "<title>Getting Started</title>")
		assert.Contains(t, html, "<h1>Press</h1>")
		assert.Contains(t, html, `<h1 id="install">Install</h1>`)
		assert.Contains(t, html, "<pre")
		assert.Contains(t, html, "<table>")
	})

	t.Run("default document", func(t *testing.T) {
		page := domain.Asset{Path: "release-notes.md", Contents: []byte("Some *notes*.\n")}

		out, err := r.Render(page, nil)
		require.NoError(t, err)

		html := string(out)
		assert.Contains(t, html, "<title>Release Notes</title>")
		assert.Contains(t, html, "<p>Some <em>notes</em>.</p>")
	})

	t.Run("missing layout", func(t *testing.T) {
		page := domain.Asset{Path: "a.md", Contents: []byte("---\nlayout: nope.html\n---\nx\n")}
		_, err := r.Render(page, nil)
		require.ErrorContains(t, err, "failed to render page")
		require.ErrorContains(t, err, "layout not found")
	})
}

func TestRenderer_Errors(t *testing.T) {
	_, err := markup.NewRenderer(domain.MarkupConfig{HighlightStyle: "no-such-style"})
	require.ErrorContains(t, err, "unknown highlight style")

	r, err := markup.NewRenderer(domain.MarkupConfig{})
	require.NoError(t, err)

	_, err = r.Render(domain.Asset{Path: "bad.html", Contents: []byte(`{{template "missing.html"}}`)}, nil)
	require.ErrorContains(t, err, "failed to render page")

	_, err = r.Render(domain.Asset{Path: "broken.html", Contents: []byte(`{{if}}`)}, nil)
	require.ErrorContains(t, err, "failed to render page")
}
