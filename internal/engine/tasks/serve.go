package tasks

import (
	"context"
	"io"
	"slices"

	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/press/internal/engine/watchloop"
	"golang.org/x/sync/errgroup"
)

// serve runs the dev server and the watch loop until ctx is cancelled.
func (tc *Toolchain) serve(runner ports.TaskRunner) domain.TaskFunc {
	return func(ctx context.Context, _ io.Writer) error {
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return tc.Server.Serve(ctx, tc.Paths.Public, tc.Config.Server)
		})
		g.Go(func() error {
			return tc.runLoop(ctx, runner)
		})
		return g.Wait()
	}
}

// watch runs the watch loop alone.
func (tc *Toolchain) watch(runner ports.TaskRunner) domain.TaskFunc {
	return func(ctx context.Context, _ io.Writer) error {
		return tc.runLoop(ctx, runner)
	}
}

func (tc *Toolchain) runLoop(ctx context.Context, runner ports.TaskRunner) error {
	bindings := tc.Bindings()
	var patterns []string
	for _, b := range bindings {
		patterns = slices.Concat(patterns, b.Patterns)
	}
	return tc.Loop.Run(ctx, runner, watchloop.Root(patterns), bindings)
}
