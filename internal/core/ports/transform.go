package ports

import (
	"context"

	"go.trai.ch/press/internal/core/domain"
)

// MarkupRenderer turns a template page into an HTML document.
type MarkupRenderer interface {
	// Render executes page with partials available as named templates.
	Render(page domain.Asset, partials []domain.Asset) ([]byte, error)
}

// StyleCompiler compiles and minifies stylesheets.
type StyleCompiler interface {
	// Compile lowers modern syntax and adds vendor prefixes for the
	// configured browser targets.
	Compile(ctx context.Context, src domain.Asset) (domain.Asset, error)

	// Minify returns a minified copy, with a source map attached when withMap is set.
	Minify(ctx context.Context, src domain.Asset, withMap bool) (domain.Asset, error)
}

// ScriptMinifier minifies scripts.
type ScriptMinifier interface {
	Minify(ctx context.Context, src domain.Asset, withMap bool) (domain.Asset, error)
}

// ImageCompressor optimizes image files.
type ImageCompressor interface {
	// Compress returns the smaller of the recompressed image and the original.
	Compress(src domain.Asset) (domain.Asset, error)
}

// Factories build the config-dependent transformers once per run.
type (
	MarkupRendererFactory  func(cfg domain.MarkupConfig) (MarkupRenderer, error)
	StyleCompilerFactory   func(cfg domain.StyleConfig) (StyleCompiler, error)
	ScriptMinifierFactory  func(cfg domain.ScriptConfig) (ScriptMinifier, error)
	ImageCompressorFactory func(cfg domain.ImageConfig) (ImageCompressor, error)
)
