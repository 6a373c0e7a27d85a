// Package scheduler runs registry entries: tasks, parallel groups and series groups.
package scheduler

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.TaskRunner = (*Scheduler)(nil)

// Scheduler executes registry entries inside tracing spans.
type Scheduler struct {
	registry    *domain.Registry
	tracer      ports.Tracer
	parallelism int
}

// NewScheduler creates a new Scheduler over registry.
func NewScheduler(registry *domain.Registry, tracer ports.Tracer) *Scheduler {
	return &Scheduler{
		registry:    registry,
		tracer:      tracer,
		parallelism: runtime.NumCPU(),
	}
}

// WithParallelism bounds the number of members a parallel group runs at once.
// Values below one are ignored.
func (s *Scheduler) WithParallelism(n int) *Scheduler {
	if n > 0 {
		s.parallelism = n
	}
	return s
}

// Run executes the named entries one after another and stops at the first
// failure. Unknown names and broken references fail before anything runs.
func (s *Scheduler) Run(ctx context.Context, names ...string) error {
	plan, err := s.registry.Plan(names...)
	if err != nil {
		return err
	}
	s.tracer.EmitPlan(ctx, domain.Strings(plan), names)

	return s.series(ctx, domain.NewInternedStrings(names...))
}

func (s *Scheduler) run(ctx context.Context, name domain.InternedString) (err error) {
	entry, err := s.registry.Lookup(name.String())
	if err != nil {
		return err
	}

	ctx, span := s.tracer.Start(ctx, name.String(), ports.WithKind(entry.Kind.String()))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	switch entry.Kind {
	case domain.KindParallel:
		return s.parallel(ctx, entry.Refs)
	case domain.KindSeries:
		return s.series(ctx, entry.Refs)
	default:
		return s.task(ctx, entry, span)
	}
}

func (s *Scheduler) task(ctx context.Context, entry domain.Entry, span ports.Span) error {
	if len(entry.Refs) > 0 {
		if err := s.parallel(ctx, entry.Refs); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := entry.Run(ctx, span); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrTaskExecutionFailed.Error()), "task_name", entry.Name.String())
	}
	return nil
}

// series runs members in order. A failure skips the remaining members.
func (s *Scheduler) series(ctx context.Context, members []domain.InternedString) error {
	for _, m := range members {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.run(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// parallel runs every member to completion and joins their errors in
// declaration order.
func (s *Scheduler) parallel(ctx context.Context, members []domain.InternedString) error {
	if len(members) == 1 {
		return s.run(ctx, members[0])
	}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs = make([]error, len(members))
	)
	g.SetLimit(s.parallelism)

	for i, m := range members {
		g.Go(func() error {
			err := s.run(ctx, m)
			mu.Lock()
			errs[i] = err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}
