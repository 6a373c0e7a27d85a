package scheduler_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/press/internal/core/ports/mocks"
	"go.trai.ch/press/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

// recorder collects the order in which task bodies run.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) task(name string, err error) domain.TaskFunc {
	return func(context.Context, io.Writer) error {
		r.mu.Lock()
		r.calls = append(r.calls, name)
		r.mu.Unlock()
		return err
	}
}

func (r *recorder) order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// setupScheduler registers entries and returns a scheduler backed by
// permissive tracer mocks.
func setupScheduler(t *testing.T, entries ...domain.Entry) *scheduler.Scheduler {
	t.Helper()
	ctrl := gomock.NewController(t)

	reg := domain.NewRegistry()
	for _, e := range entries {
		require.NoError(t, reg.Register(e))
	}

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
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

	return scheduler.NewScheduler(reg, tracer)
}

func TestScheduler_Series(t *testing.T) {
	rec := &recorder{}
	s := setupScheduler(t,
		domain.Series("public", "", "clean", "img", "build"),
		domain.NewTask("clean", "", rec.task("clean", nil)),
		domain.NewTask("img", "", rec.task("img", nil)),
		domain.NewTask("build", "", rec.task("build", nil)),
	)

	require.NoError(t, s.Run(t.Context(), "public"))
	assert.Equal(t, []string{"clean", "img", "build"}, rec.order())
}

func TestScheduler_SeriesStopsAtFirstFailure(t *testing.T) {
	rec := &recorder{}
	s := setupScheduler(t,
		domain.Series("public", "", "clean", "img", "build"),
		domain.NewTask("clean", "", rec.task("clean", nil)),
		domain.NewTask("img", "", rec.task("img", errors.New("bad png"))),
		domain.NewTask("build", "", rec.task("build", nil)),
	)

	err := s.Run(t.Context(), "public")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad png")
	assert.Contains(t, err.Error(), "task execution failed")
	assert.Equal(t, []string{"clean", "img"}, rec.order())
}

func TestScheduler_TargetsRunInOrder(t *testing.T) {
	rec := &recorder{}
	s := setupScheduler(t,
		domain.NewTask("clean", "", rec.task("clean", nil)),
		domain.NewTask("html", "", rec.task("html", nil)),
	)

	require.NoError(t, s.Run(t.Context(), "html", "clean", "html"))
	assert.Equal(t, []string{"html", "clean", "html"}, rec.order())
}

func TestScheduler_ParallelRunsConcurrently(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		aStarted := make(chan struct{})
		bStarted := make(chan struct{})

		// Each member waits for the other to start, which only completes when
		// both run at the same time.
		s := setupScheduler(t,
			domain.Parallel("buildDev", "", "a", "b"),
			domain.NewTask("a", "", func(ctx context.Context, _ io.Writer) error {
				close(aStarted)
				<-bStarted
				return nil
			}),
			domain.NewTask("b", "", func(ctx context.Context, _ io.Writer) error {
				close(bStarted)
				<-aStarted
				return nil
			}),
		).WithParallelism(2)

		require.NoError(t, s.Run(t.Context(), "buildDev"))
	})
}

func TestScheduler_ParallelJoinsErrors(t *testing.T) {
	rec := &recorder{}
	s := setupScheduler(t,
		domain.Parallel("buildDev", "", "html", "cssCommon", "jsCommon"),
		domain.NewTask("html", "", rec.task("html", errors.New("unclosed action"))),
		domain.NewTask("cssCommon", "", rec.task("cssCommon", nil)),
		domain.NewTask("jsCommon", "", rec.task("jsCommon", errors.New("unexpected token"))),
	)

	err := s.Run(t.Context(), "buildDev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unclosed action")
	assert.Contains(t, err.Error(), "unexpected token")
	assert.ElementsMatch(t, []string{"html", "cssCommon", "jsCommon"}, rec.order())
}

func TestScheduler_PrerequisitesRunFirst(t *testing.T) {
	rec := &recorder{}
	s := setupScheduler(t,
		domain.NewTask("webserver", "", rec.task("webserver", nil), "html", "cssCommon"),
		domain.NewTask("html", "", rec.task("html", nil)),
		domain.NewTask("cssCommon", "", rec.task("cssCommon", nil)),
	)

	require.NoError(t, s.Run(t.Context(), "webserver"))

	order := rec.order()
	require.Len(t, order, 3)
	assert.ElementsMatch(t, []string{"html", "cssCommon"}, order[:2])
	assert.Equal(t, "webserver", order[2])
}

func TestScheduler_FailedPrerequisiteSkipsBody(t *testing.T) {
	rec := &recorder{}
	s := setupScheduler(t,
		domain.NewTask("webserver", "", rec.task("webserver", nil), "html"),
		domain.NewTask("html", "", rec.task("html", errors.New("boom"))),
	)

	require.Error(t, s.Run(t.Context(), "webserver"))
	assert.Equal(t, []string{"html"}, rec.order())
}

func TestScheduler_UnknownTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := &recorder{}

	reg := domain.NewRegistry()
	require.NoError(t, reg.Register(domain.NewTask("html", "", rec.task("html", nil))))

	// Nothing is traced when a name does not resolve.
	tracer := mocks.NewMockTracer(ctrl)
	s := scheduler.NewScheduler(reg, tracer)

	err := s.Run(t.Context(), "html", "styles")
	require.ErrorContains(t, err, "task not found")
	assert.Empty(t, rec.order())
}

func TestScheduler_SpansAndPlan(t *testing.T) {
	ctrl := gomock.NewController(t)

	reg := domain.NewRegistry()
	require.NoError(t, reg.Register(domain.Series("default", "", "html")))
	require.NoError(t, reg.Register(domain.NewTask("html", "", func(_ context.Context, out io.Writer) error {
		_, err := io.WriteString(out, "index.html\n")
		return err
	})))

	groupSpan := mocks.NewMockSpan(ctrl)
	taskSpan := mocks.NewMockSpan(ctrl)
	tracer := mocks.NewMockTracer(ctrl)

	gomock.InOrder(
		tracer.EXPECT().EmitPlan(gomock.Any(), []string{"html", "default"}, []string{"default"}),
		tracer.EXPECT().Start(gomock.Any(), "default", gomock.Any()).DoAndReturn(
			func(ctx context.Context, _ string, opts ...ports.SpanOption) (context.Context, ports.Span) {
				var cfg ports.SpanConfig
				for _, o := range opts {
					o(&cfg)
				}
				assert.Equal(t, "series", cfg.Kind)
				return ctx, groupSpan
			},
		),
		tracer.EXPECT().Start(gomock.Any(), "html", gomock.Any()).Return(t.Context(), taskSpan),
		taskSpan.EXPECT().Write([]byte("index.html\n")).Return(11, nil),
		taskSpan.EXPECT().End(),
		groupSpan.EXPECT().End(),
	)

	require.NoError(t, newScheduler(reg, tracer).Run(t.Context(), "default"))
}

func TestScheduler_RecordsErrorOnSpan(t *testing.T) {
	ctrl := gomock.NewController(t)

	reg := domain.NewRegistry()
	require.NoError(t, reg.Register(domain.NewTask("jsCommon", "", func(context.Context, io.Writer) error {
		return errors.New("unexpected token")
	})))

	span := mocks.NewMockSpan(ctrl)
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any(), gomock.Any())
	tracer.EXPECT().Start(gomock.Any(), "jsCommon", gomock.Any()).Return(t.Context(), span)
	span.EXPECT().RecordError(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, "unexpected token")
	})
	span.EXPECT().End()

	require.Error(t, newScheduler(reg, tracer).Run(t.Context(), "jsCommon"))
}

func TestScheduler_CancelledContext(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		rec := &recorder{}

		s := setupScheduler(t,
			domain.Series("public", "", "slow", "build"),
			domain.NewTask("slow", "", func(ctx context.Context, _ io.Writer) error {
				time.AfterFunc(time.Second, cancel)
				<-ctx.Done()
				return nil
			}),
			domain.NewTask("build", "", rec.task("build", nil)),
		)

		err := s.Run(ctx, "public")
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, rec.order())
	})
}

func newScheduler(reg *domain.Registry, tracer ports.Tracer) *scheduler.Scheduler {
	return scheduler.NewScheduler(reg, tracer)
}
