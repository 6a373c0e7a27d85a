package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// PathEntry pairs an ordered list of source globs with a destination directory.
// Patterns prefixed with "!" exclude matches of the preceding patterns.
type PathEntry struct {
	Src  []string
	Dest string
}

// Clone returns a copy of e that shares no backing array with it.
func (e PathEntry) Clone() PathEntry {
	return PathEntry{Src: slices.Clone(e.Src), Dest: e.Dest}
}

// IsZero reports whether the entry declares neither sources nor destination.
func (e PathEntry) IsZero() bool {
	return len(e.Src) == 0 && e.Dest == ""
}

// WatchPaths lists the globs observed by the watch loop.
type WatchPaths struct {
	Markup  []string
	Styles  []string
	Scripts []string
}

// ManifestPaths locates the three vendor manifest files.
type ManifestPaths struct {
	Styles  string
	Scripts string
	Fonts   string
}

// ProductionPaths lists the copy operations of the production assembly.
type ProductionPaths struct {
	Markup  PathEntry
	Styles  PathEntry
	Scripts PathEntry
	Fonts   PathEntry
}

// Paths is the path registry: every asset category mapped to its source
// globs and destination directory. Values are never mutated in place;
// WithVendor and Resolve return new registries.
type Paths struct {
	App    string
	Public string
	Build  string

	Watch WatchPaths

	Pages    PathEntry
	Partials []string

	Styles  PathEntry
	Scripts PathEntry

	VendorStyles  PathEntry
	VendorScripts PathEntry
	VendorFonts   PathEntry

	Images PathEntry

	Production ProductionPaths
	Manifests  ManifestPaths
}

// DefaultPaths returns the project layout relative to the project root.
func DefaultPaths() Paths {
	const (
		app       = AppDirName
		public    = PublicDirName
		build     = BuildDirName
		templates = app + "/templates"
		css       = public + "/assets/css"
		js        = public + "/assets/js"
		fonts     = public + "/assets/fonts"
	)

	return Paths{
		App:    app,
		Public: public,
		Build:  build,
		Watch: WatchPaths{
			Markup:  []string{templates + "/**/*"},
			Styles:  []string{app + "/styles/**/*.css"},
			Scripts: []string{app + "/scripts/**/*.js"},
		},
		Pages: PathEntry{
			Src:  []string{templates + "/pages/*.html", templates + "/pages/*.md"},
			Dest: public,
		},
		Partials: []string{templates + "/**/*.html", "!" + templates + "/pages/**"},
		Styles: PathEntry{
			Src:  []string{app + "/styles/**/*.css"},
			Dest: css,
		},
		Scripts: PathEntry{
			Src:  []string{app + "/scripts/**/*.js"},
			Dest: js,
		},
		VendorStyles:  PathEntry{Dest: css},
		VendorScripts: PathEntry{Dest: js},
		VendorFonts:   PathEntry{Dest: fonts},
		Images: PathEntry{
			Src:  []string{app + "/images/**/*.*"},
			Dest: public + "/images",
		},
		Production: ProductionPaths{
			// Minified bundles reference their maps by relative URL, so the maps travel with them.
			Markup:  PathEntry{Src: []string{public + "/*.html"}, Dest: build},
			Styles:  PathEntry{Src: []string{css + "/*.min.css", css + "/*.min.css.map"}, Dest: build + "/assets/css"},
			Scripts: PathEntry{Src: []string{js + "/*.min.js", js + "/*.min.js.map"}, Dest: build + "/assets/js"},
			Fonts:   PathEntry{Src: []string{fonts + "/**/*.*"}, Dest: build + "/assets/fonts"},
		},
		Manifests: ManifestPaths{
			Styles:  app + "/configs/lib_css.yaml",
			Scripts: app + "/configs/lib_js.yaml",
			Fonts:   app + "/configs/lib_fonts.yaml",
		},
	}
}

// WithVendor returns a copy of p with the vendor entries taken from m.
// A vendor list without a destination keeps the registry's default one.
func (p Paths) WithVendor(m VendorManifest) Paths {
	out := p.clone()
	out.VendorStyles = mergeVendor(p.VendorStyles, m.Styles)
	out.VendorScripts = mergeVendor(p.VendorScripts, m.Scripts)
	out.VendorFonts = mergeVendor(p.VendorFonts, m.Fonts)
	return out
}

func mergeVendor(entry PathEntry, list VendorList) PathEntry {
	merged := PathEntry{Src: slices.Clone(list.Src), Dest: entry.Dest}
	if list.Dest != "" {
		merged.Dest = list.Dest
	}
	return merged
}

// Resolve returns a copy of p with every directory and pattern anchored at root.
// Absolute paths are left untouched and exclusion prefixes are preserved.
func (p Paths) Resolve(root string) Paths {
	dir := func(d string) string { return joinRoot(root, d) }
	entry := func(e PathEntry) PathEntry {
		return PathEntry{Src: resolvePatterns(root, e.Src), Dest: dir(e.Dest)}
	}

	return Paths{
		App:    dir(p.App),
		Public: dir(p.Public),
		Build:  dir(p.Build),
		Watch: WatchPaths{
			Markup:  resolvePatterns(root, p.Watch.Markup),
			Styles:  resolvePatterns(root, p.Watch.Styles),
			Scripts: resolvePatterns(root, p.Watch.Scripts),
		},
		Pages:         entry(p.Pages),
		Partials:      resolvePatterns(root, p.Partials),
		Styles:        entry(p.Styles),
		Scripts:       entry(p.Scripts),
		VendorStyles:  entry(p.VendorStyles),
		VendorScripts: entry(p.VendorScripts),
		VendorFonts:   entry(p.VendorFonts),
		Images:        entry(p.Images),
		Production: ProductionPaths{
			Markup:  entry(p.Production.Markup),
			Styles:  entry(p.Production.Styles),
			Scripts: entry(p.Production.Scripts),
			Fonts:   entry(p.Production.Fonts),
		},
		Manifests: ManifestPaths{
			Styles:  dir(p.Manifests.Styles),
			Scripts: dir(p.Manifests.Scripts),
			Fonts:   dir(p.Manifests.Fonts),
		},
	}
}

// URLPath maps a file inside the public directory to the URL path the
// development server serves it under.
func (p Paths) URLPath(file string) (string, bool) {
	rel, err := filepath.Rel(p.Public, file)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return "/" + filepath.ToSlash(rel), true
}

// URLPaths maps every file through URLPath, dropping files outside public.
func (p Paths) URLPaths(files []string) []string {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		if u, ok := p.URLPath(f); ok {
			urls = append(urls, u)
		}
	}
	return urls
}

func (p Paths) clone() Paths {
	out := p
	out.Watch = WatchPaths{
		Markup:  slices.Clone(p.Watch.Markup),
		Styles:  slices.Clone(p.Watch.Styles),
		Scripts: slices.Clone(p.Watch.Scripts),
	}
	out.Pages = p.Pages.Clone()
	out.Partials = slices.Clone(p.Partials)
	out.Styles = p.Styles.Clone()
	out.Scripts = p.Scripts.Clone()
	out.VendorStyles = p.VendorStyles.Clone()
	out.VendorScripts = p.VendorScripts.Clone()
	out.VendorFonts = p.VendorFonts.Clone()
	out.Images = p.Images.Clone()
	out.Production = ProductionPaths{
		Markup:  p.Production.Markup.Clone(),
		Styles:  p.Production.Styles.Clone(),
		Scripts: p.Production.Scripts.Clone(),
		Fonts:   p.Production.Fonts.Clone(),
	}
	return out
}

func resolvePatterns(root string, patterns []string) []string {
	if patterns == nil {
		return nil
	}
	out := make([]string, len(patterns))
	for i, pattern := range patterns {
		if rest, ok := strings.CutPrefix(pattern, "!"); ok {
			out[i] = "!" + joinRoot(root, rest)
			continue
		}
		out[i] = joinRoot(root, pattern)
	}
	return out
}

func joinRoot(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, filepath.FromSlash(path))
}
