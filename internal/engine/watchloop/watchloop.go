// Package watchloop re-runs tasks when their source files change.
package watchloop

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/press/internal/adapters/watcher" //nolint:depguard // debouncer is shared with the watcher adapter
	"go.trai.ch/press/internal/core/ports"
)

// Binding ties a set of globs to the task that rebuilds them.
type Binding struct {
	Task     string
	Patterns []string
}

// Matches reports whether path matches one of the binding's patterns.
// Patterns prefixed with "!" exclude paths matched earlier.
func (b Binding) Matches(path string) bool {
	matched := false
	for _, pattern := range b.Patterns {
		if negated, ok := strings.CutPrefix(pattern, "!"); ok {
			if matched && doublestar.PathMatchUnvalidated(filepath.Clean(negated), path) {
				matched = false
			}
			continue
		}
		if !matched && doublestar.PathMatchUnvalidated(filepath.Clean(pattern), path) {
			matched = true
		}
	}
	return matched
}

// Loop watches a directory tree and runs the bound task after a change.
// Runs of one binding never overlap; a change arriving during a run queues
// exactly one more run.
type Loop struct {
	watcher  ports.Watcher
	logger   ports.Logger
	debounce time.Duration
}

// New creates a Loop that waits debounce after the last change before running.
func New(w ports.Watcher, logger ports.Logger, debounce time.Duration) *Loop {
	return &Loop{
		watcher:  w,
		logger:   logger,
		debounce: debounce,
	}
}

// Run watches root until ctx is cancelled. Task failures are logged and do
// not stop the loop.
func (l *Loop) Run(ctx context.Context, runner ports.TaskRunner, root string, bindings []Binding) error {
	if err := l.watcher.Start(ctx, root); err != nil {
		return err
	}
	defer func() {
		_ = l.watcher.Stop()
	}()

	var wg sync.WaitGroup
	debouncers := make([]*watcher.Debouncer, len(bindings))
	for i, b := range bindings {
		trigger := make(chan struct{}, 1)
		debouncers[i] = watcher.NewDebouncer(l.debounce, func([]string) {
			select {
			case trigger <- struct{}{}:
			default:
			}
		})

		wg.Go(func() {
			l.work(ctx, runner, b.Task, trigger)
		})
	}
	defer func() {
		for _, d := range debouncers {
			d.Stop()
		}
		wg.Wait()
	}()

	l.logger.Info("watching " + root)
	for event := range l.watcher.Events() {
		for i, b := range bindings {
			if b.Matches(event.Path) {
				debouncers[i].Add(event.Path)
			}
		}
	}

	<-ctx.Done()
	return nil
}

func (l *Loop) work(ctx context.Context, runner ports.TaskRunner, task string, trigger <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-trigger:
		}

		if err := runner.Run(ctx, task); err != nil {
			if ctx.Err() != nil {
				return
			}
			l.logger.Error(err)
		}
	}
}

// Root returns the deepest directory containing the static base of every
// pattern. Exclusions are ignored.
func Root(patterns []string) string {
	var root string
	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "!") {
			continue
		}
		base, _ := doublestar.SplitPattern(filepath.ToSlash(filepath.Clean(pattern)))
		base = filepath.FromSlash(base)
		if root == "" {
			root = base
			continue
		}
		root = commonDir(root, base)
	}
	if root == "" {
		return "."
	}
	return root
}

func commonDir(a, b string) string {
	for {
		rel, err := filepath.Rel(a, b)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return a
		}
		parent := filepath.Dir(a)
		if parent == a {
			return a
		}
		a = parent
	}
}
