package esbuild_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/press/internal/adapters/esbuild"
	"go.trai.ch/press/internal/core/domain"
)

func TestParseEngines(t *testing.T) {
	engines, err := esbuild.ParseEngines([]string{"chrome58", "Safari11.1", "ios12"})
	require.NoError(t, err)
	assert.Equal(t, []api.Engine{
		{Name: api.EngineChrome, Version: "58"},
		{Name: api.EngineSafari, Version: "11.1"},
		{Name: api.EngineIOS, Version: "12"},
	}, engines)

	for _, bad := range []string{"netscape4", "chrome", "58"} {
		_, err := esbuild.ParseEngines([]string{bad})
		require.ErrorContains(t, err, "invalid browser target", bad)
	}
}

func TestStyleCompiler_Compile(t *testing.T) {
	c, err := esbuild.NewStyleCompiler(domain.StyleConfig{Targets: domain.DefaultStyleTargets()})
	require.NoError(t, err)

	src := domain.Asset{
		Path:     "common.css",
		Contents: []byte(".card { .title { color: red; } }\n.box { user-select: none; }\n"),
	}

	out, err := c.Compile(context.Background(), src)
	require.NoError(t, err)

	css := string(out.Contents)
	assert.Contains(t, css, ".card .title")
	assert.Contains(t, css, "-webkit-user-select: none")
	assert.Nil(t, out.SourceMap)
	assert.Equal(t, "common.css", out.Path)
}

func TestStyleCompiler_Minify(t *testing.T) {
	c, err := esbuild.NewStyleCompiler(domain.StyleConfig{Targets: []string{"chrome100"}})
	require.NoError(t, err)

	src := domain.Asset{
		Path:     "common.min.css",
		Contents: []byte("body {\n  margin: 0px;\n  color: #ff0000;\n}\n"),
	}

	t.Run("with map", func(t *testing.T) {
		out, err := c.Minify(context.Background(), src, true)
		require.NoError(t, err)
		assert.Contains(t, string(out.Contents), "body{")
		assert.Contains(t, string(out.Contents), "/*# sourceMappingURL=common.min.css.map */")
		assertSources(t, out.SourceMap, "common.css")
	})

	t.Run("without map", func(t *testing.T) {
		out, err := c.Minify(context.Background(), src, false)
		require.NoError(t, err)
		assert.NotContains(t, string(out.Contents), "sourceMappingURL")
		assert.Nil(t, out.SourceMap)
	})
}

func TestStyleCompiler_Errors(t *testing.T) {
	_, err := esbuild.NewStyleCompiler(domain.StyleConfig{Targets: []string{"lynx2"}})
	require.ErrorContains(t, err, "invalid browser target")

	c, err := esbuild.NewStyleCompiler(domain.StyleConfig{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Compile(ctx, domain.Asset{Path: "a.css"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestScriptMinifier(t *testing.T) {
	m, err := esbuild.NewScriptMinifier(domain.ScriptConfig{})
	require.NoError(t, err)

	src := domain.Asset{
		Path: "common.min.js",
		Contents: []byte(`(function () {
  var greeting = "hello";
  function shout(message) { return message.toUpperCase(); }
  console.log(shout(greeting));
})();
`),
	}

	t.Run("minifies identifiers", func(t *testing.T) {
		out, err := m.Minify(context.Background(), src, false)
		require.NoError(t, err)
		js := string(out.Contents)
		assert.Contains(t, js, "console.log")
		assert.NotContains(t, js, "message")
		assert.Less(t, len(out.Contents), len(src.Contents))
	})

	t.Run("is deterministic", func(t *testing.T) {
		a, err := m.Minify(context.Background(), src, true)
		require.NoError(t, err)
		b, err := m.Minify(context.Background(), src, true)
		require.NoError(t, err)
		assert.Equal(t, a.Contents, b.Contents)
		assert.Equal(t, a.SourceMap, b.SourceMap)
		assert.Contains(t, string(a.Contents), "//# sourceMappingURL=common.min.js.map")
		assertSources(t, a.SourceMap, "common.js")
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := m.Minify(context.Background(), domain.Asset{Path: "bad.js", Contents: []byte("function (")}, false)
		require.ErrorContains(t, err, "failed to minify script")
	})
}

func TestNewScriptMinifier_UnknownTarget(t *testing.T) {
	_, err := esbuild.NewScriptMinifier(domain.ScriptConfig{Target: "es3"})
	require.ErrorContains(t, err, "unknown script target")
}

// assertSources checks that a source map points at the unminified file.
func assertSources(t *testing.T, sourceMap []byte, want ...string) {
	t.Helper()
	var m struct {
		Sources []string `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(sourceMap, &m))
	assert.Equal(t, want, m.Sources)
}
