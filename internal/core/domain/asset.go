package domain

import (
	"path/filepath"
	"strings"
)

// SourceFile is a file matched by a glob, together with the glob base it was
// matched under.
type SourceFile struct {
	Path string
	Base string
}

// Rel returns the path of the file relative to its glob base.
func (f SourceFile) Rel() string {
	rel, err := filepath.Rel(f.Base, f.Path)
	if err != nil {
		return filepath.Base(f.Path)
	}
	return rel
}

// Asset is an in-memory file travelling through a pipeline.
// Path is relative to Base and decides where Dest writes the file.
type Asset struct {
	Path      string
	Base      string
	Contents  []byte
	SourceMap []byte
}

// Name returns the base name of the asset.
func (a Asset) Name() string {
	return filepath.Base(a.Path)
}

// Ext returns the extension of the asset name, including the dot.
func (a Asset) Ext() string {
	return filepath.Ext(a.Path)
}

// WithPath returns a copy of a with a new relative path.
func (a Asset) WithPath(path string) Asset {
	a.Path = path
	return a
}

// MinName inserts ".min" before the final extension of name:
// "common.js" becomes "common.min.js".
func MinName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".min" + ext
}

// PlainName reverses MinName: "common.min.js" becomes "common.js".
// Names without a ".min" infix are returned unchanged.
func PlainName(name string) string {
	ext := filepath.Ext(name)
	if stem, ok := strings.CutSuffix(strings.TrimSuffix(name, ext), ".min"); ok {
		return stem + ext
	}
	return name
}

// ReplaceExt swaps the final extension of name for ext.
func ReplaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

// MapName returns the name of the source map written next to name.
func MapName(name string) string {
	return name + ".map"
}
