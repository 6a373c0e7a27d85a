package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/press/internal/adapters/watcher"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) record(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, paths)
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func TestDebouncer_CoalescesAndSorts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var rec recorder
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/site/app/styles/b.css")
		d.Add("/site/app/styles/a.css")
		d.Add("/site/app/styles/b.css")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Len(t, rec.snapshot(), 1)
		assert.Equal(t, []string{"/site/app/styles/a.css", "/site/app/styles/b.css"}, rec.snapshot()[0])
	})
}

func TestDebouncer_WindowRestartsOnAdd(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var rec recorder
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("a")
		time.Sleep(80 * time.Millisecond)
		d.Add("b")
		time.Sleep(80 * time.Millisecond)
		synctest.Wait()

		assert.Empty(t, rec.snapshot(), "window should restart on every add")

		time.Sleep(40 * time.Millisecond)
		synctest.Wait()

		require.Len(t, rec.snapshot(), 1)
		assert.Equal(t, []string{"a", "b"}, rec.snapshot()[0])
	})
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var rec recorder
		d := watcher.NewDebouncer(50*time.Millisecond, rec.record)

		d.Add("first")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		d.Add("second")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"first"}, {"second"}}, rec.snapshot())
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var rec recorder
		d := watcher.NewDebouncer(50*time.Millisecond, rec.record)

		d.Add("pending")
		d.Stop()
		d.Add("ignored")

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		assert.Empty(t, rec.snapshot())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)
		d.Add("x")
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
	})
}
