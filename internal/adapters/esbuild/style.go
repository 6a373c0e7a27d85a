package esbuild

import (
	"context"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/press/internal/core/domain"
)

// StyleCompiler lowers and minifies stylesheets for a set of browser engines.
type StyleCompiler struct {
	engines []api.Engine
}

// NewStyleCompiler creates a StyleCompiler for the configured browser targets.
func NewStyleCompiler(cfg domain.StyleConfig) (*StyleCompiler, error) {
	engines, err := ParseEngines(cfg.Targets)
	if err != nil {
		return nil, err
	}
	return &StyleCompiler{engines: engines}, nil
}

// Compile lowers nesting and adds the vendor prefixes the engines need.
// The output stays readable.
func (c *StyleCompiler) Compile(ctx context.Context, src domain.Asset) (domain.Asset, error) {
	return transform(ctx, src, c.options(), false, domain.ErrStyleCompileFailed)
}

// Minify returns a minified copy of src.
func (c *StyleCompiler) Minify(ctx context.Context, src domain.Asset, withMap bool) (domain.Asset, error) {
	opts := c.options()
	opts.MinifyWhitespace = true
	opts.MinifySyntax = true
	return transform(ctx, src, opts, withMap, domain.ErrStyleCompileFailed)
}

func (c *StyleCompiler) options() api.TransformOptions {
	return api.TransformOptions{
		Loader:   api.LoaderCSS,
		Engines:  c.engines,
		LogLevel: api.LogLevelSilent,
	}
}
