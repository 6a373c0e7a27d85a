package domain_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/zerr"
)

func noop(context.Context, io.Writer) error { return nil }

func TestRegistry_Validate(t *testing.T) {
	tests := []struct {
		name        string
		entries     []domain.Entry
		errContains string
	}{
		{
			name: "Self Cycle",
			entries: []domain.Entry{
				domain.NewTask("a", "", noop, "a"),
			},
			errContains: "cycle detected",
		},
		{
			name: "Group Cycle",
			entries: []domain.Entry{
				domain.Series("a", "", "b"),
				domain.Parallel("b", "", "c"),
				domain.NewTask("c", "", noop, "a"),
			},
			errContains: "cycle detected",
		},
		{
			name: "Missing Member",
			entries: []domain.Entry{
				domain.Parallel("buildDev", "", "html", "css"),
				domain.NewTask("html", "", noop),
			},
			errContains: "missing task reference",
		},
		{
			name: "Valid Graph",
			entries: []domain.Entry{
				domain.Series("public", "", "clean", "img", "build"),
				domain.NewTask("clean", "", noop),
				domain.NewTask("img", "", noop),
				domain.NewTask("build", "", noop),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := domain.NewRegistry()
			for _, e := range tt.entries {
				require.NoError(t, reg.Register(e))
			}

			err := reg.Validate()
			if tt.errContains == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestRegistry_CycleMetadata(t *testing.T) {
	reg := domain.NewRegistry()
	require.NoError(t, reg.Register(domain.NewTask("a", "", noop, "b")))
	require.NoError(t, reg.Register(domain.NewTask("b", "", noop, "a")))

	err := reg.Validate()
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "a -> b -> a", zErr.Metadata()["cycle"])
}

func TestRegistry_RegisterOverwrites(t *testing.T) {
	reg := domain.NewRegistry()
	require.NoError(t, reg.Register(domain.NewTask("html", "first", noop)))
	require.NoError(t, reg.Register(domain.NewTask("html", "second", noop)))

	e, err := reg.Lookup("html")
	require.NoError(t, err)
	assert.Equal(t, "second", e.Description)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	reg := domain.NewRegistry()

	err := reg.Register(domain.NewTask("", "", noop))
	require.ErrorContains(t, err, "invalid task name")

	err = reg.Register(domain.NewTask("css common", "", noop))
	require.ErrorContains(t, err, "invalid task name")

	err = reg.Register(domain.NewTask("css", "", nil))
	require.ErrorContains(t, err, "invalid task name")
}

func TestRegistry_Lookup(t *testing.T) {
	reg := domain.NewRegistry()

	_, err := reg.Lookup("missing")
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "task not found", zErr.Message())
	assert.Equal(t, "missing", zErr.Metadata()["task_name"])
}

func TestRegistry_Entries(t *testing.T) {
	reg := domain.NewRegistry()
	for _, name := range []string{"jsCommon", "build", "html"} {
		require.NoError(t, reg.Register(domain.NewTask(name, "", noop)))
	}

	var names []string
	for e := range reg.Entries() {
		names = append(names, e.Name.String())
	}
	assert.Equal(t, []string{"build", "html", "jsCommon"}, names)
}

func TestRegistry_Plan(t *testing.T) {
	reg := domain.NewRegistry()
	entries := []domain.Entry{
		domain.Series("default", "", "buildDev", "webserver"),
		domain.Parallel("buildDev", "", "html", "cssCommon"),
		domain.NewTask("html", "", noop),
		domain.NewTask("cssCommon", "", noop),
		domain.NewTask("webserver", "", noop, "html"),
	}
	for _, e := range entries {
		require.NoError(t, reg.Register(e))
	}

	plan, err := reg.Plan("default")
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"html", "cssCommon", "buildDev", "webserver", "default"},
		domain.Strings(plan),
	)

	_, err = reg.Plan("nope")
	require.ErrorContains(t, err, "task not found")
}

func TestEntryKind_String(t *testing.T) {
	assert.Equal(t, "task", domain.KindTask.String())
	assert.Equal(t, "parallel", domain.KindParallel.String())
	assert.Equal(t, "series", domain.KindSeries.String())
	assert.Equal(t, "unknown", domain.EntryKind(42).String())
}
