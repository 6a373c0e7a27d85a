// Package esbuild compiles and minifies stylesheets and scripts with the
// esbuild transform API.
package esbuild

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/zerr"
)

var targetRegex = regexp.MustCompile(`^([a-z]+)([0-9][0-9.]*)$`)

var engineNames = map[string]api.EngineName{
	"chrome":  api.EngineChrome,
	"edge":    api.EngineEdge,
	"firefox": api.EngineFirefox,
	"ie":      api.EngineIE,
	"ios":     api.EngineIOS,
	"node":    api.EngineNode,
	"opera":   api.EngineOpera,
	"safari":  api.EngineSafari,
}

var languageTargets = map[string]api.Target{
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"esnext": api.ESNext,
}

// ParseEngines converts targets such as "chrome58" into esbuild engines.
func ParseEngines(targets []string) ([]api.Engine, error) {
	engines := make([]api.Engine, 0, len(targets))
	for _, t := range targets {
		m := targetRegex.FindStringSubmatch(strings.ToLower(t))
		if m == nil {
			return nil, zerr.With(domain.ErrInvalidBrowserTarget, "target", t)
		}
		name, ok := engineNames[m[1]]
		if !ok {
			return nil, zerr.With(domain.ErrInvalidBrowserTarget, "target", t)
		}
		engines = append(engines, api.Engine{Name: name, Version: m[2]})
	}
	return engines, nil
}

// transform runs one esbuild transform and attaches the source map when requested.
func transform(
	ctx context.Context,
	src domain.Asset,
	opts api.TransformOptions,
	withMap bool,
	sentinel error,
) (domain.Asset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Asset{}, err
	}

	// The map lists the file the code came from, not the renamed output.
	opts.Sourcefile = domain.PlainName(src.Name())
	if withMap {
		opts.Sourcemap = api.SourceMapExternal
		opts.SourcesContent = api.SourcesContentInclude
	}

	result := api.Transform(string(src.Contents), opts)
	if len(result.Errors) > 0 {
		msgs := api.FormatMessages(result.Errors, api.FormatMessagesOptions{Kind: api.ErrorMessage})
		cause := zerr.New(strings.TrimSpace(strings.Join(msgs, "\n")))
		return domain.Asset{}, zerr.With(zerr.Wrap(cause, sentinel.Error()), "file", src.Path)
	}

	out := src
	out.Contents = result.Code
	out.SourceMap = nil
	if withMap && len(result.Map) > 0 {
		out.SourceMap = result.Map
		out.Contents = appendMapComment(result.Code, domain.MapName(src.Name()), opts.Loader == api.LoaderCSS)
	}
	return out, nil
}

// appendMapComment links the output to the map file written next to it.
// The map is named after the asset as it is at minify time; Dest renames
// both together.
func appendMapComment(code []byte, mapName string, css bool) []byte {
	if css {
		return fmt.Appendf(code, "/*# sourceMappingURL=%s */\n", mapName)
	}
	return fmt.Appendf(code, "//# sourceMappingURL=%s\n", mapName)
}
