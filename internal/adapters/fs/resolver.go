// Package fs provides the file system adapters: glob resolution and the
// build output store.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceResolver = (*Resolver)(nil)

// Resolver implements ports.SourceResolver with doublestar globs.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve expands patterns in declaration order.
func (r *Resolver) Resolve(patterns []string) ([]domain.SourceFile, error) {
	var files []domain.SourceFile
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		if negated, ok := strings.CutPrefix(pattern, "!"); ok {
			var err error
			if files, err = exclude(files, negated); err != nil {
				return nil, err
			}
			seen = make(map[string]bool, len(files))
			for _, f := range files {
				seen[f.Path] = true
			}
			continue
		}

		matches, err := expand(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if seen[m.Path] {
				continue
			}
			seen[m.Path] = true
			files = append(files, m)
		}
	}

	return files, nil
}

func expand(pattern string) ([]domain.SourceFile, error) {
	if !hasMeta(pattern) {
		info, err := os.Stat(pattern)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				return nil, zerr.With(domain.ErrSourceNotFound, "path", pattern)
			}
			return nil, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "path", pattern)
		}
		if info.IsDir() {
			return nil, nil
		}
		return []domain.SourceFile{{Path: pattern, Base: filepath.Dir(pattern)}}, nil
	}

	if !doublestar.ValidatePathPattern(filepath.ToSlash(pattern)) {
		return nil, zerr.With(domain.ErrInvalidPattern, "pattern", pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidPattern.Error()), "pattern", pattern)
	}
	slices.Sort(matches)

	base := globBase(pattern)
	files := make([]domain.SourceFile, len(matches))
	for i, m := range matches {
		files[i] = domain.SourceFile{Path: m, Base: base}
	}
	return files, nil
}

func exclude(files []domain.SourceFile, pattern string) ([]domain.SourceFile, error) {
	pattern = filepath.Clean(pattern)
	if !doublestar.ValidatePathPattern(filepath.ToSlash(pattern)) {
		return nil, zerr.With(domain.ErrInvalidPattern, "pattern", "!"+pattern)
	}
	return slices.DeleteFunc(files, func(f domain.SourceFile) bool {
		return doublestar.PathMatchUnvalidated(pattern, f.Path)
	}), nil
}

// globBase returns the directory portion of pattern before the first segment
// holding glob syntax.
func globBase(pattern string) string {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(filepath.Clean(pattern)))
	return filepath.FromSlash(base)
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
