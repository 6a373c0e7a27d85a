package tasks

import (
	"context"
	"errors"
	"io"
	"sync"

	"go.trai.ch/press/internal/core/domain"
)

func (tc *Toolchain) clean(_ context.Context, out io.Writer) error {
	if err := tc.Store.Clean(tc.Paths.Build); err != nil {
		return err
	}
	_, _ = io.WriteString(out, "emptied "+tc.Paths.Build+"\n")
	return nil
}

// build runs the four production copies concurrently and waits for all of them.
func (tc *Toolchain) build(ctx context.Context, out io.Writer) error {
	prod := tc.Paths.Production
	copies := []domain.PathEntry{prod.Markup, prod.Styles, prod.Scripts, prod.Fonts}

	// Every copy runs to completion so all failures are reported together.
	var wg sync.WaitGroup
	errs := make([]error, len(copies))
	w := &lockedWriter{w: out}
	for i, entry := range copies {
		wg.Go(func() {
			errs[i] = tc.copy(ctx, entry, w)
		})
	}
	wg.Wait()

	return errors.Join(errs...)
}

// lockedWriter serializes writes from concurrent copies.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
