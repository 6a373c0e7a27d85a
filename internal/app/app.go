// Package app implements the application layer for press.
package app

import (
	"context"
	"errors"
	"io"
	"os"

	"go.trai.ch/press/internal/adapters/linear"    //nolint:depguard // console renderer is chosen per run
	"go.trai.ch/press/internal/adapters/telemetry" //nolint:depguard // tracer is bound to the per-run renderer
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/press/internal/engine/scheduler"
	"go.trai.ch/press/internal/engine/tasks"
	"go.trai.ch/press/internal/engine/watchloop"
	"go.trai.ch/zerr"
)

// tracerName is the instrumentation scope of task spans.
const tracerName = "press"

// Adapters are the collaborators the application drives.
type Adapters struct {
	ConfigLoader   ports.ConfigLoader
	ManifestLoader ports.ManifestLoader
	Logger         ports.Logger
	Resolver       ports.SourceResolver
	Store          ports.FileStore
	Markup         ports.MarkupRendererFactory
	Styles         ports.StyleCompilerFactory
	Scripts        ports.ScriptMinifierFactory
	Images         ports.ImageCompressorFactory
	Reload         ports.LiveReload
	Server         ports.DevServer
	Watcher        ports.Watcher
}

// App represents the main application logic.
type App struct {
	Adapters

	cwd string
	out io.Writer
}

// New creates a new App rooted at the working directory.
func New(adapters Adapters) *App {
	return &App{
		Adapters: adapters,
		cwd:      ".",
		out:      os.Stdout,
	}
}

// WithDir sets the project directory. Used for testing.
func (a *App) WithDir(dir string) *App {
	a.cwd = dir
	return a
}

// WithOutput sets the writer task progress is rendered to.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Open launches a browser once the dev server listens.
	Open bool
	// Port overrides the dev server port when non-zero.
	Port int
}

// TaskInfo describes a registry entry for listing.
type TaskInfo struct {
	Name        string
	Kind        domain.EntryKind
	Description string
	Refs        []string
}

// Run executes the named tasks in order. With no names the default group runs.
func (a *App) Run(ctx context.Context, targetNames []string, opts RunOptions) error {
	// 1. Load the configuration
	cfg, err := a.ConfigLoader.Load(a.cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Open {
		cfg.Server.Open = true
	}
	if opts.Port != 0 {
		cfg.Server.Port = opts.Port
	}
	if j, ok := a.Logger.(interface{ SetJSON(enable bool) }); ok {
		j.SetJSON(cfg.Log.JSON)
	}

	if len(targetNames) == 0 {
		targetNames = []string{tasks.Default}
	}

	// 2. Build the toolchain; manifest errors abort before any task runs
	tc, err := a.toolchain(cfg)
	if err != nil {
		return err
	}

	// 3. Initialize the renderer and telemetry
	renderer := linear.NewRenderer(a.out)
	provider := telemetry.NewTracerProvider(renderer)
	defer func() {
		_ = provider.Shutdown(context.WithoutCancel(ctx))
		_ = renderer.Stop()
	}()
	tracer := telemetry.NewOTelTracer(tracerName,
		telemetry.WithProvider(provider),
		telemetry.WithRenderer(renderer),
	)

	// 4. Register tasks on the scheduler
	reg := domain.NewRegistry()
	sched := scheduler.NewScheduler(reg, tracer)
	if err := tasks.Register(reg, tc, sched); err != nil {
		return err
	}
	if _, err := reg.Plan(targetNames...); err != nil {
		return err
	}

	// 5. Run
	if err := sched.Run(ctx, targetNames...); err != nil {
		a.Logger.Error(err)
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}
	return nil
}

// Tasks lists every registered task and group sorted by name.
func (a *App) Tasks(_ context.Context) ([]TaskInfo, error) {
	cfg, err := a.ConfigLoader.Load(a.cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	reg := domain.NewRegistry()
	// Bodies never run here, so no adapters or runner are needed.
	tc := &tasks.Toolchain{Config: cfg, Paths: cfg.Paths.Resolve(cfg.Root)}
	if err := tasks.Register(reg, tc, nil); err != nil {
		return nil, err
	}

	infos := make([]TaskInfo, 0, reg.Len())
	for e := range reg.Entries() {
		infos = append(infos, TaskInfo{
			Name:        e.Name.String(),
			Kind:        e.Kind,
			Description: e.Description,
			Refs:        domain.Strings(e.Refs),
		})
	}
	return infos, nil
}

// toolchain loads the vendor manifests and builds the configured transformers.
func (a *App) toolchain(cfg *domain.Config) (*tasks.Toolchain, error) {
	manifest, err := a.ManifestLoader.Load(cfg.Paths.Resolve(cfg.Root).Manifests)
	if err != nil {
		return nil, err
	}

	markup, err := a.Markup(cfg.Markup)
	if err != nil {
		return nil, err
	}
	styles, err := a.Styles(cfg.Styles)
	if err != nil {
		return nil, err
	}
	scripts, err := a.Scripts(cfg.Scripts)
	if err != nil {
		return nil, err
	}
	images, err := a.Images(cfg.Images)
	if err != nil {
		return nil, err
	}

	return &tasks.Toolchain{
		Config:   cfg,
		Paths:    cfg.Paths.WithVendor(manifest).Resolve(cfg.Root),
		Resolver: a.Resolver,
		Store:    a.Store,
		Markup:   markup,
		Styles:   styles,
		Scripts:  scripts,
		Images:   images,
		Reloader: a.Reload,
		Server:   a.Server,
		Loop:     watchloop.New(a.Watcher, a.Logger, cfg.Watch.Debounce),
	}, nil
}
