package esbuild

import (
	"context"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/zerr"
)

// ErrUnknownScriptTarget is returned when the configured language level is not supported.
var ErrUnknownScriptTarget = zerr.New("unknown script target")

// ScriptMinifier minifies plain scripts down to a language level.
type ScriptMinifier struct {
	target api.Target
}

// NewScriptMinifier creates a ScriptMinifier for cfg.Target.
func NewScriptMinifier(cfg domain.ScriptConfig) (*ScriptMinifier, error) {
	name := strings.ToLower(cfg.Target)
	if name == "" {
		name = domain.DefaultScriptTarget
	}
	target, ok := languageTargets[name]
	if !ok {
		return nil, zerr.With(ErrUnknownScriptTarget, "target", cfg.Target)
	}
	return &ScriptMinifier{target: target}, nil
}

// Minify returns a minified copy of src.
func (m *ScriptMinifier) Minify(ctx context.Context, src domain.Asset, withMap bool) (domain.Asset, error) {
	opts := api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            m.target,
		MinifyWhitespace:  true,
		MinifySyntax:      true,
		MinifyIdentifiers: true,
		LegalComments:     api.LegalCommentsNone,
		LogLevel:          api.LogLevelSilent,
	}
	return transform(ctx, src, opts, withMap, domain.ErrScriptMinifyFailed)
}
