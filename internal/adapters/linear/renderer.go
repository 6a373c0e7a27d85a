// Package linear prints task progress as timestamped lines in the style of
// classic JavaScript task runners.
package linear

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/press/internal/ui/output"
	"go.trai.ch/press/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

const clockLayout = "15:04:05"

// Renderer implements ports.Renderer with one line per event. Task output is
// buffered per span and printed a full line at a time.
type Renderer struct {
	w      io.Writer
	styles style.Styles
	now    func() time.Time

	mu    sync.Mutex
	tasks map[string]*taskState
}

type taskState struct {
	name      string
	startTime time.Time
	buf       bytes.Buffer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock replaces the clock used to stamp task output lines.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// NewRenderer creates a Renderer writing to w (stderr when nil).
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	if w == nil {
		w = os.Stderr
	}
	r := &Renderer{
		w:      w,
		styles: style.New(output.Renderer(w)),
		now:    time.Now,
		tasks:  make(map[string]*taskState),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stop prints any partial lines still buffered.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range r.tasks {
		r.flushLocked(task)
	}
	return nil
}

// OnPlanEmit prints the entries about to run.
func (r *Renderer) OnPlanEmit(tasks []string, targets []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.printLocked(r.now(), fmt.Sprintf("Using %d task(s) for %s",
		len(tasks), r.quoteAll(targets)))
}

// OnTaskStart prints "Starting 'name'...".
func (r *Renderer) OnTaskStart(spanID, _ string, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[spanID] = &taskState{name: name, startTime: startTime}
	r.printLocked(startTime, "Starting "+r.quote(name)+"...")
}

// OnTaskLog prints complete lines of task output.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}

	task.buf.Write(data)
	for {
		i := bytes.IndexByte(task.buf.Bytes(), '\n')
		if i < 0 {
			return
		}
		line := string(task.buf.Next(i + 1))
		r.printLineLocked(task.name, line)
	}
}

// OnTaskComplete prints "Finished 'name' after d" or "'name' errored after d".
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	r.flushLocked(task)
	delete(r.tasks, spanID)

	took := r.styles.Duration.Render(FormatDuration(endTime.Sub(task.startTime)))
	if err != nil {
		r.printLocked(endTime, r.quote(task.name)+" "+r.styles.Failure.Render("errored")+" after "+took)
		return
	}
	r.printLocked(endTime, "Finished "+r.quote(task.name)+" after "+took)
}

func (r *Renderer) flushLocked(task *taskState) {
	if task.buf.Len() == 0 {
		return
	}
	line := task.buf.String()
	task.buf.Reset()
	r.printLineLocked(task.name, line)
}

func (r *Renderer) printLineLocked(name, line string) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return
	}
	r.printLocked(r.now(), r.styles.Muted.Render(name+":")+" "+line)
}

func (r *Renderer) printLocked(at time.Time, msg string) {
	stamp := r.styles.Muted.Render("[" + at.Format(clockLayout) + "]")
	_, _ = fmt.Fprintln(r.w, stamp+" "+msg)
}

func (r *Renderer) quote(name string) string {
	return "'" + r.styles.Task.Render(name) + "'"
}

func (r *Renderer) quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = r.quote(n)
	}
	return strings.Join(quoted, ", ")
}

// FormatDuration prints d the way task runners do: "850 μs", "12 ms", "1.25 s".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d μs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2f s", d.Seconds())
	default:
		return fmt.Sprintf("%.1f min", d.Minutes())
	}
}
