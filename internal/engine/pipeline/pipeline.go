// Package pipeline chains transformation stages over in-memory assets.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
)

// Stage transforms a batch of assets into the next batch.
type Stage func(ctx context.Context, assets []domain.Asset) ([]domain.Asset, error)

// Src reads every file matched by patterns, in match order.
func Src(resolver ports.SourceResolver, store ports.FileStore, patterns []string) ([]domain.Asset, error) {
	files, err := resolver.Resolve(patterns)
	if err != nil {
		return nil, err
	}

	assets := make([]domain.Asset, 0, len(files))
	for _, f := range files {
		data, err := store.Read(f.Path)
		if err != nil {
			return nil, err
		}
		assets = append(assets, domain.Asset{Path: f.Rel(), Base: f.Base, Contents: data})
	}
	return assets, nil
}

// Run applies stages in order and returns the final batch.
// It stops at the first failing stage or when ctx is cancelled.
func Run(ctx context.Context, assets []domain.Asset, stages ...Stage) ([]domain.Asset, error) {
	var err error
	for _, stage := range stages {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if assets, err = stage(ctx, assets); err != nil {
			return nil, err
		}
	}
	return assets, nil
}

// Concat joins all assets into one asset called name, separated by sep.
// An empty batch stays empty.
func Concat(name, sep string) Stage {
	return func(_ context.Context, assets []domain.Asset) ([]domain.Asset, error) {
		if len(assets) == 0 {
			return nil, nil
		}

		parts := make([][]byte, len(assets))
		for i, a := range assets {
			parts[i] = a.Contents
		}
		return []domain.Asset{{
			Path:     name,
			Contents: bytes.Join(parts, []byte(sep)),
		}}, nil
	}
}

// Rename replaces the path of every asset with fn(path).
func Rename(fn func(path string) string) Stage {
	return func(_ context.Context, assets []domain.Asset) ([]domain.Asset, error) {
		out := make([]domain.Asset, len(assets))
		for i, a := range assets {
			out[i] = a.WithPath(fn(a.Path))
		}
		return out, nil
	}
}

// Map transforms every asset with fn.
func Map(fn func(ctx context.Context, a domain.Asset) (domain.Asset, error)) Stage {
	return func(ctx context.Context, assets []domain.Asset) ([]domain.Asset, error) {
		out := make([]domain.Asset, len(assets))
		for i, a := range assets {
			next, err := fn(ctx, a)
			if err != nil {
				return nil, err
			}
			out[i] = next
		}
		return out, nil
	}
}

// Tap calls fn with the batch and passes it on unchanged.
func Tap(fn func(assets []domain.Asset)) Stage {
	return func(_ context.Context, assets []domain.Asset) ([]domain.Asset, error) {
		fn(assets)
		return assets, nil
	}
}

// Dest writes every asset below dir, plus "<name>.map" for assets carrying a
// source map. Each file written or left unchanged is reported on out.
func Dest(store ports.FileStore, dir string, out io.Writer) Stage {
	return func(_ context.Context, assets []domain.Asset) ([]domain.Asset, error) {
		for _, a := range assets {
			target := filepath.Join(dir, a.Path)
			if err := write(store, target, a.Path, a.Contents, out); err != nil {
				return nil, err
			}
			if a.SourceMap != nil {
				if err := write(store, domain.MapName(target), domain.MapName(a.Path), a.SourceMap, out); err != nil {
					return nil, err
				}
			}
		}
		return assets, nil
	}
}

// Targets returns the files Dest writes for assets below dir, maps excluded.
func Targets(dir string, assets []domain.Asset) []string {
	paths := make([]string, len(assets))
	for i, a := range assets {
		paths[i] = filepath.Join(dir, a.Path)
	}
	return paths
}

func write(store ports.FileStore, target, rel string, data []byte, out io.Writer) error {
	changed, err := store.Write(target, data)
	if err != nil {
		return err
	}
	if changed {
		_, _ = fmt.Fprintf(out, "wrote %s\n", filepath.ToSlash(rel))
	} else {
		_, _ = fmt.Fprintf(out, "unchanged %s\n", filepath.ToSlash(rel))
	}
	return nil
}
