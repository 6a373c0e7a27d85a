// Package config loads press.yaml and PRESS_ environment overrides with viper.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader implements ports.ConfigLoader with viper.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

var browserTargetRegex = regexp.MustCompile(`^(chrome|edge|firefox|ie|ios|node|opera|safari)[0-9]+(\.[0-9]+){0,2}$`)

// Load reads press.yaml from cwd when present and applies environment
// overrides on top of the defaults.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	root, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", cwd)
	}

	defaults := domain.DefaultConfig(root)

	v := viper.New()
	v.SetConfigName(domain.ConfigFileName)
	v.SetConfigType(domain.ConfigFileType)
	v.AddConfigPath(root)
	v.SetEnvPrefix(domain.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, defaults)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var parseErr viper.ConfigParseError
		switch {
		case errors.As(err, &notFound):
			// Defaults apply.
		case errors.As(err, &parseErr):
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", v.ConfigFileUsed())
		default:
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", v.ConfigFileUsed())
		}
	}

	var file File
	if err := v.Unmarshal(&file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", v.ConfigFileUsed())
	}

	return l.toDomain(root, &file, defaults)
}

func setDefaults(v *viper.Viper, cfg *domain.Config) {
	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.open", cfg.Server.Open)
	v.SetDefault("server.browser", cfg.Server.Browser)
	v.SetDefault("styles.targets", cfg.Styles.Targets)
	v.SetDefault("styles.source_maps", cfg.Styles.SourceMaps)
	v.SetDefault("scripts.target", cfg.Scripts.Target)
	v.SetDefault("scripts.source_maps", cfg.Scripts.SourceMaps)
	v.SetDefault("images.jpeg_quality", cfg.Images.JPEGQuality)
	v.SetDefault("markup.pretty", cfg.Markup.Pretty)
	v.SetDefault("markup.highlight_style", cfg.Markup.HighlightStyle)
	v.SetDefault("watch.debounce", cfg.Watch.Debounce)
	v.SetDefault("log.json", cfg.Log.JSON)
}

func (l *Loader) toDomain(root string, file *File, defaults *domain.Config) (*domain.Config, error) {
	for _, target := range file.Styles.Targets {
		if !browserTargetRegex.MatchString(target) {
			return nil, zerr.With(domain.ErrInvalidBrowserTarget, "target", target)
		}
	}
	if file.Server.Port < 0 || file.Server.Port > 65535 {
		return nil, zerr.With(domain.ErrConfigParseFailed, "server.port", file.Server.Port)
	}
	if file.Images.JPEGQuality < 1 || file.Images.JPEGQuality > 100 {
		return nil, zerr.With(domain.ErrConfigParseFailed, "images.jpeg_quality", file.Images.JPEGQuality)
	}

	cfg := &domain.Config{
		Root: root,
		Server: domain.ServerConfig{
			Host:    file.Server.Host,
			Port:    file.Server.Port,
			Open:    file.Server.Open,
			Browser: file.Server.Browser,
		},
		Styles: domain.StyleConfig{
			Targets:    slices.Clone(file.Styles.Targets),
			SourceMaps: file.Styles.SourceMaps,
		},
		Scripts: domain.ScriptConfig{
			Target:     file.Scripts.Target,
			SourceMaps: file.Scripts.SourceMaps,
		},
		Images: domain.ImageConfig{
			JPEGQuality: file.Images.JPEGQuality,
		},
		Markup: domain.MarkupConfig{
			Pretty:         file.Markup.Pretty,
			HighlightStyle: file.Markup.HighlightStyle,
			Data:           file.Markup.Data,
		},
		Watch: domain.WatchConfig{
			Debounce: file.Watch.Debounce,
		},
		Log: domain.LogConfig{
			JSON: file.Log.JSON,
		},
		Paths: l.applyOverrides(defaults.Paths, file.Paths),
	}

	return cfg, nil
}

// applyOverrides replaces individual registry categories. Unknown keys are
// reported and ignored.
func (l *Loader) applyOverrides(paths domain.Paths, overrides map[string]PathEntry) domain.Paths {
	if len(overrides) == 0 {
		return paths
	}

	entries := map[string]*domain.PathEntry{
		"pages":          &paths.Pages,
		"styles":         &paths.Styles,
		"scripts":        &paths.Scripts,
		"images":         &paths.Images,
	}
	// Vendor sources always come from the manifests; only the destination is configurable.
	vendor := map[string]*domain.PathEntry{
		"vendor_styles":  &paths.VendorStyles,
		"vendor_scripts": &paths.VendorScripts,
		"vendor_fonts":   &paths.VendorFonts,
	}
	lists := map[string]*[]string{
		"partials":      &paths.Partials,
		"watch_markup":  &paths.Watch.Markup,
		"watch_styles":  &paths.Watch.Styles,
		"watch_scripts": &paths.Watch.Scripts,
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		override := overrides[key]
		if entry, ok := entries[key]; ok {
			if len(override.Src) > 0 {
				entry.Src = slices.Clone(override.Src)
			}
			if override.Dest != "" {
				entry.Dest = override.Dest
			}
			continue
		}
		if entry, ok := vendor[key]; ok {
			if len(override.Src) > 0 {
				l.warn(fmt.Sprintf("ignoring paths.%s.src, vendor sources are read from the manifests", key))
			}
			if override.Dest != "" {
				entry.Dest = override.Dest
			}
			continue
		}
		if list, ok := lists[key]; ok {
			if len(override.Src) > 0 {
				*list = slices.Clone(override.Src)
			}
			continue
		}
		l.warn(fmt.Sprintf("ignoring unknown path category %q", key))
	}

	return paths
}

func (l *Loader) warn(msg string) {
	if l.Logger != nil {
		l.Logger.Warn(msg)
	}
}
