package tasks_test

import (
	"bytes"
	"context"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/press/internal/adapters/fs"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/press/internal/core/ports/mocks"
	"go.trai.ch/press/internal/engine/scheduler"
	"go.trai.ch/press/internal/engine/tasks"
	"go.trai.ch/press/internal/engine/watchloop"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// fakeMarkup wraps pages in a document listing the partials it received.
type fakeMarkup struct{}

func (fakeMarkup) Render(page domain.Asset, partials []domain.Asset) ([]byte, error) {
	names := make([]string, len(partials))
	for i, p := range partials {
		names[i] = filepath.ToSlash(p.Path)
	}
	return []byte("<html>" + strings.Join(names, ",") + "|" + string(page.Contents) + "</html>"), nil
}

// fakeStyles marks compiled output and strips whitespace when minifying.
type fakeStyles struct{}

func (fakeStyles) Compile(_ context.Context, a domain.Asset) (domain.Asset, error) {
	a.Contents = append([]byte("/*compiled*/\n"), a.Contents...)
	return a, nil
}

func (fakeStyles) Minify(_ context.Context, a domain.Asset, withMap bool) (domain.Asset, error) {
	a.Contents = []byte(strings.Join(strings.Fields(string(a.Contents)), ""))
	if withMap {
		a.SourceMap = []byte(`{"version":3}`)
		a.Contents = append(a.Contents, "/*# sourceMappingURL="+domain.MapName(a.Name())+" */"...)
	}
	return a, nil
}

type fakeScripts struct{}

func (fakeScripts) Minify(_ context.Context, a domain.Asset, _ bool) (domain.Asset, error) {
	a.Contents = []byte(strings.Join(strings.Fields(string(a.Contents)), ""))
	return a, nil
}

// fakeImages halves every image.
type fakeImages struct{}

func (fakeImages) Compress(a domain.Asset) (domain.Asset, error) {
	a.Contents = a.Contents[:len(a.Contents)/2]
	return a, nil
}

var projectFiles = map[string]string{
	"app/templates/pages/index.html":   "home",
	"app/templates/pages/about.md":     "# About",
	"app/templates/partials/head.html": "<title>x</title>",
	"app/styles/base.css":              "body { margin: 0 }",
	"app/styles/layout/grid.css":       ".grid { display: grid }",
	"app/scripts/main.js":              "main ( );",
	"app/scripts/util.js":              "util ( );",
	"app/images/logo.png":              "PNGDATA!",
	"app/images/icons/star.gif":        "GIF8",
	"vendor/b.css":                     ".b { color: blue }",
	"vendor/a.css":                     ".a { color: red }",
	"vendor/jquery.js":                 "jquery ( );",
	"vendor/plugin.js":                 "plugin ( );",
	"vendor/fonts/icons.woff2":         "WOFF",
}

var vendorManifest = domain.VendorManifest{
	Styles:  domain.VendorList{Src: []string{"vendor/b.css", "vendor/a.css"}},
	Scripts: domain.VendorList{Src: []string{"vendor/jquery.js", "vendor/plugin.js"}},
	Fonts:   domain.VendorList{Src: []string{"vendor/fonts/*.woff2"}},
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	}
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

// listFiles returns every file below dir, relative and slash separated.
func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(dir, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	slices.Sort(files)
	return files
}

type fixture struct {
	root     string
	reg      *domain.Registry
	tc       *tasks.Toolchain
	reloader *mocks.MockReloader
	runner   ports.TaskRunner
}

func newFixture(t *testing.T, files map[string]string, manifest domain.VendorManifest) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	root := t.TempDir()
	writeFiles(t, root, files)

	cfg := domain.DefaultConfig(root)
	reloader := mocks.NewMockReloader(ctrl)
	tc := &tasks.Toolchain{
		Config:   cfg,
		Paths:    cfg.Paths.WithVendor(manifest).Resolve(root),
		Resolver: fs.NewResolver(),
		Store:    fs.NewStore(),
		Markup:   fakeMarkup{},
		Styles:   fakeStyles{},
		Scripts:  fakeScripts{},
		Images:   fakeImages{},
		Reloader: reloader,
	}

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().Write(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
		return len(p), nil
	}).AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	reg := domain.NewRegistry()
	runner := scheduler.NewScheduler(reg, tracer)
	require.NoError(t, tasks.Register(reg, tc, runner))

	return &fixture{root: root, reg: reg, tc: tc, reloader: reloader, runner: runner}
}

func (f *fixture) run(t *testing.T, names ...string) error {
	t.Helper()
	return f.runner.Run(t.Context(), names...)
}

func TestRegister(t *testing.T) {
	f := newFixture(t, nil, domain.VendorManifest{})

	var names []string
	for e := range f.reg.Entries() {
		names = append(names, e.Name.String())
	}
	assert.ElementsMatch(t, []string{
		"html", "cssCommon", "jsCommon", "cssVendor", "jsVendor", "fontsVendor",
		"img", "clean", "build", "webserver", "watch", "buildDev", "default", "public",
	}, names)

	buildDev, err := f.reg.Lookup(tasks.BuildDev)
	require.NoError(t, err)
	assert.Equal(t, domain.KindParallel, buildDev.Kind)
	assert.Equal(t,
		[]string{"html", "cssCommon", "jsCommon", "cssVendor", "jsVendor", "fontsVendor"},
		domain.Strings(buildDev.Refs),
	)

	def, err := f.reg.Lookup(tasks.Default)
	require.NoError(t, err)
	assert.Equal(t, domain.KindSeries, def.Kind)
	assert.Equal(t, []string{"buildDev", "webserver"}, domain.Strings(def.Refs))

	public, err := f.reg.Lookup(tasks.Public)
	require.NoError(t, err)
	assert.Equal(t, domain.KindSeries, public.Kind)
	assert.Equal(t, []string{"clean", "img", "build"}, domain.Strings(public.Refs))
}

func TestHTML(t *testing.T) {
	f := newFixture(t, projectFiles, vendorManifest)
	f.reloader.EXPECT().Reload("/index.html", "/about.html")

	require.NoError(t, f.run(t, tasks.HTML))

	assert.Equal(t, "<html>partials/head.html|home</html>", readFile(t, f.root, "public/index.html"))
	assert.Equal(t, "<html>partials/head.html|# About</html>", readFile(t, f.root, "public/about.html"))
	assert.NoFileExists(t, filepath.Join(f.root, "public", "head.html"))
}

func TestCSSCommon(t *testing.T) {
	f := newFixture(t, projectFiles, vendorManifest)
	f.reloader.EXPECT().InjectCSS("/assets/css/common.css", "/assets/css/common.min.css").Times(1)

	require.NoError(t, f.run(t, tasks.CSSCommon))

	assert.Equal(t,
		"/*compiled*/\nbody { margin: 0 }\n.grid { display: grid }",
		readFile(t, f.root, "public/assets/css/common.css"),
	)
	assert.Equal(t,
		"/*compiled*/body{margin:0}.grid{display:grid}/*# sourceMappingURL=common.min.css.map */",
		readFile(t, f.root, "public/assets/css/common.min.css"),
	)
	assert.JSONEq(t, `{"version":3}`, readFile(t, f.root, "public/assets/css/common.min.css.map"))
}

func TestJSCommon_Deterministic(t *testing.T) {
	f := newFixture(t, projectFiles, vendorManifest)
	f.reloader.EXPECT().Reload("/assets/js/common.js", "/assets/js/common.min.js").Times(2)

	require.NoError(t, f.run(t, tasks.JSCommon))
	first := readFile(t, f.root, "public/assets/js/common.js")
	firstMin := readFile(t, f.root, "public/assets/js/common.min.js")

	require.NoError(t, f.run(t, tasks.JSCommon))
	assert.Equal(t, first, readFile(t, f.root, "public/assets/js/common.js"))
	assert.Equal(t, firstMin, readFile(t, f.root, "public/assets/js/common.min.js"))

	assert.Equal(t, "main ( );\nutil ( );", first)
	assert.Equal(t, "main();util();", firstMin)
}

func TestVendor_ManifestOrder(t *testing.T) {
	f := newFixture(t, projectFiles, vendorManifest)

	require.NoError(t, f.run(t, tasks.CSSVendor, tasks.JSVendor, tasks.FontsVendor))

	css := readFile(t, f.root, "public/assets/css/vendor.min.css")
	assert.Less(t, strings.Index(css, ".b{"), strings.Index(css, ".a{"))
	assert.Equal(t, "jquery();plugin();", readFile(t, f.root, "public/assets/js/vendor.min.js"))
	assert.Equal(t, "WOFF", readFile(t, f.root, "public/assets/fonts/icons.woff2"))

	assert.Equal(t,
		[]string{"css/vendor.min.css", "fonts/icons.woff2", "js/vendor.min.js"},
		listFiles(t, filepath.Join(f.root, "public", "assets")),
	)
}

func TestVendor_MissingFile(t *testing.T) {
	f := newFixture(t, projectFiles, domain.VendorManifest{
		Scripts: domain.VendorList{Src: []string{"vendor/jquery.js", "vendor/missing.js"}},
	})

	err := f.run(t, tasks.JSVendor)
	require.ErrorContains(t, err, "source file not found")
	assert.NoFileExists(t, filepath.Join(f.root, "public", "assets", "js", "vendor.min.js"))
}

func TestImg(t *testing.T) {
	f := newFixture(t, projectFiles, vendorManifest)

	require.NoError(t, f.run(t, tasks.Img))

	assert.Equal(t, "PNGD", readFile(t, f.root, "public/images/logo.png"))
	assert.Equal(t, "GI", readFile(t, f.root, "public/images/icons/star.gif"))

	img, err := f.reg.Lookup(tasks.Img)
	require.NoError(t, err)
	assert.Contains(t, img.Description, "lossless PNG")
}

func TestZeroMatches(t *testing.T) {
	// The reloader mock has no expectations: nothing may be announced.
	f := newFixture(t, map[string]string{"app/.keep": ""}, domain.VendorManifest{})

	require.NoError(t, f.run(t, tasks.BuildDev, tasks.Img))
	assert.NoDirExists(t, filepath.Join(f.root, "public"))
}

func TestClean(t *testing.T) {
	f := newFixture(t, map[string]string{
		"build/stale.html":         "old",
		"build/assets/js/old.js":   "old",
		"build/assets/css/.hidden": "old",
	}, domain.VendorManifest{})

	require.NoError(t, f.run(t, tasks.Clean))

	entries, err := os.ReadDir(filepath.Join(f.root, "build"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPublic(t *testing.T) {
	f := newFixture(t, projectFiles, vendorManifest)
	f.reloader.EXPECT().Reload(gomock.Any()).AnyTimes()
	f.reloader.EXPECT().InjectCSS(gomock.Any()).AnyTimes()
	writeFiles(t, f.root, map[string]string{"build/stale.html": "old"})

	require.NoError(t, f.run(t, tasks.BuildDev, tasks.Public))

	assert.Equal(t, []string{
		"about.html",
		"assets/css/common.min.css",
		"assets/css/common.min.css.map",
		"assets/css/vendor.min.css",
		"assets/fonts/icons.woff2",
		"assets/js/common.min.js",
		"assets/js/vendor.min.js",
		"index.html",
	}, listFiles(t, filepath.Join(f.root, "build")))
	assertMapsResolve(t, filepath.Join(f.root, "build"))

	assert.Equal(t, "PNGD", readFile(t, f.root, "public/images/logo.png"))
}

var mapURL = regexp.MustCompile(`sourceMappingURL=(\S+?)(?:\s|\*/|$)`)

// assertMapsResolve checks that every source map referenced below dir sits
// next to the file that references it.
func assertMapsResolve(t *testing.T, dir string) {
	t.Helper()
	refs := 0
	for _, rel := range listFiles(t, dir) {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		for _, m := range mapURL.FindAllStringSubmatch(string(data), -1) {
			refs++
			assert.FileExists(t, filepath.Join(filepath.Dir(path), filepath.FromSlash(m[1])), "referenced by %s", rel)
		}
	}
	assert.Positive(t, refs)
}

// fakeServer blocks until cancelled and records the directory it served.
type fakeServer struct {
	root string
	cfg  domain.ServerConfig
}

func (s *fakeServer) Serve(ctx context.Context, root string, cfg domain.ServerConfig) error {
	s.root, s.cfg = root, cfg
	<-ctx.Done()
	return nil
}

// fakeLoop records its arguments and cancels the run once started.
type fakeLoop struct {
	cancel   context.CancelFunc
	runner   ports.TaskRunner
	root     string
	bindings []watchloop.Binding
}

func (l *fakeLoop) Run(ctx context.Context, runner ports.TaskRunner, root string, bindings []watchloop.Binding) error {
	l.runner, l.root, l.bindings = runner, root, bindings
	l.cancel()
	<-ctx.Done()
	return nil
}

func TestWebserver(t *testing.T) {
	f := newFixture(t, nil, domain.VendorManifest{})
	ctx, cancel := context.WithCancel(t.Context())

	server := &fakeServer{}
	loop := &fakeLoop{cancel: cancel}
	f.tc.Server = server
	f.tc.Loop = loop

	require.NoError(t, f.runner.Run(ctx, tasks.Webserver))

	assert.Equal(t, filepath.Join(f.root, "public"), server.root)
	assert.Equal(t, domain.DefaultPort, server.cfg.Port)
	assert.Same(t, f.runner, loop.runner)
	assert.Equal(t, filepath.Join(f.root, "app"), loop.root)
	assert.Equal(t, f.tc.Bindings(), loop.bindings)
}

func TestBindings(t *testing.T) {
	f := newFixture(t, nil, domain.VendorManifest{})

	bindings := f.tc.Bindings()
	require.Len(t, bindings, 3)
	assert.Equal(t, "html", bindings[0].Task)
	assert.Equal(t, []string{filepath.Join(f.root, "app", "styles", "**", "*.css")}, bindings[1].Patterns)
	assert.Equal(t, "jsCommon", bindings[2].Task)
}

func TestBuild_ReportsProgress(t *testing.T) {
	f := newFixture(t, map[string]string{
		"public/index.html":             "<p>",
		"public/assets/js/app.min.js":   "x",
		"public/assets/js/app.js":       "x",
		"public/assets/css/app.min.css": "y",
	}, domain.VendorManifest{})

	entry, err := f.reg.Lookup(tasks.Build)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, entry.Run(t.Context(), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.ElementsMatch(t, []string{"wrote index.html", "wrote app.min.js", "wrote app.min.css"}, lines)
}

func TestBuild_ReportsEveryFailedCopy(t *testing.T) {
	f := newFixture(t, map[string]string{
		"public/assets/js/app.min.js": "x",
	}, domain.VendorManifest{})
	prod := &f.tc.Paths.Production
	prod.Markup.Src = []string{filepath.Join(f.root, "public", "home.html")}
	prod.Fonts.Src = []string{filepath.Join(f.root, "public", "assets", "fonts", "icons.woff2")}

	entry, err := f.reg.Lookup(tasks.Build)
	require.NoError(t, err)

	var out bytes.Buffer
	err = entry.Run(t.Context(), &out)
	require.ErrorContains(t, err, "source file not found")

	var joined interface{ Unwrap() []error }
	require.ErrorAs(t, err, &joined)
	var missing []string
	for _, e := range joined.Unwrap() {
		var z *zerr.Error
		require.ErrorAs(t, e, &z)
		missing = append(missing, filepath.Base(fmt.Sprint(z.Metadata()["path"])))
	}
	assert.ElementsMatch(t, []string{"home.html", "icons.woff2"}, missing)
	assert.Equal(t, "wrote app.min.js\n", out.String(), "copies that succeed still complete")
}
