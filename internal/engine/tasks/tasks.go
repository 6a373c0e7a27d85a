// Package tasks defines the build tasks and task groups of a press project.
package tasks

import (
	"context"

	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/press/internal/engine/watchloop"
)

// Task and group names.
const (
	HTML        = "html"
	CSSCommon   = "cssCommon"
	JSCommon    = "jsCommon"
	CSSVendor   = "cssVendor"
	JSVendor    = "jsVendor"
	FontsVendor = "fontsVendor"
	Img         = "img"
	Clean       = "clean"
	Build       = "build"
	Webserver   = "webserver"
	Watch       = "watch"

	BuildDev = "buildDev"
	Default  = "default"
	Public   = "public"
)

// Separator placed between concatenated sources.
const concatSeparator = "\n"

// Bundle names.
const (
	commonStyles  = "common.css"
	commonScripts = "common.js"
	vendorStyles  = "vendor.min.css"
	vendorScripts = "vendor.min.js"
)

// WatchLoop re-runs tasks when their sources change.
type WatchLoop interface {
	Run(ctx context.Context, runner ports.TaskRunner, root string, bindings []watchloop.Binding) error
}

// Toolchain is everything the tasks read, write and transform with.
// Paths must already be resolved against the project root.
type Toolchain struct {
	Config   *domain.Config
	Paths    domain.Paths
	Resolver ports.SourceResolver
	Store    ports.FileStore
	Markup   ports.MarkupRenderer
	Styles   ports.StyleCompiler
	Scripts  ports.ScriptMinifier
	Images   ports.ImageCompressor
	Reloader ports.Reloader
	Server   ports.DevServer
	Loop     WatchLoop
}

// Register adds every task and group to reg. runner is used by the watch
// loop to re-run tasks after a change.
func Register(reg *domain.Registry, tc *Toolchain, runner ports.TaskRunner) error {
	entries := []domain.Entry{
		domain.NewTask(HTML, "Render pages into public", tc.html),
		domain.NewTask(CSSCommon, "Compile and minify project stylesheets", tc.cssCommon),
		domain.NewTask(JSCommon, "Concatenate and minify project scripts", tc.jsCommon),
		domain.NewTask(CSSVendor, "Bundle vendor stylesheets into vendor.min.css", tc.cssVendor),
		domain.NewTask(JSVendor, "Bundle vendor scripts into vendor.min.js", tc.jsVendor),
		domain.NewTask(FontsVendor, "Copy vendor fonts", tc.fontsVendor),
		domain.NewTask(Img, "Compress images (lossless PNG and GIF, re-encoded JPEG)", tc.img),
		domain.NewTask(Clean, "Empty the production directory", tc.clean),
		domain.NewTask(Build, "Copy minified assets and pages into the production directory", tc.build),
		domain.NewTask(Webserver, "Serve public with live reload and rebuild on change", tc.serve(runner)),
		domain.NewTask(Watch, "Rebuild on change without serving", tc.watch(runner)),

		domain.Parallel(BuildDev, "Development build",
			HTML, CSSCommon, JSCommon, CSSVendor, JSVendor, FontsVendor),
		domain.Series(Default, "Development build, then serve", BuildDev, Webserver),
		domain.Series(Public, "Production build", Clean, Img, Build),
	}

	for _, e := range entries {
		if err := reg.Register(e); err != nil {
			return err
		}
	}
	return reg.Validate()
}

// Bindings maps the watch globs to the tasks that rebuild them.
func (tc *Toolchain) Bindings() []watchloop.Binding {
	return []watchloop.Binding{
		{Task: HTML, Patterns: tc.Paths.Watch.Markup},
		{Task: CSSCommon, Patterns: tc.Paths.Watch.Styles},
		{Task: JSCommon, Patterns: tc.Paths.Watch.Scripts},
	}
}
