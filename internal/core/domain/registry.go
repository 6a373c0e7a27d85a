// Package domain contains the core models of the asset build: paths, manifests,
// assets, configuration and the task registry.
package domain

import (
	"context"
	"io"
	"iter"
	"slices"
	"strings"
	"unicode"

	"go.trai.ch/zerr"
)

// EntryKind distinguishes tasks from task groups.
type EntryKind uint8

const (
	// KindTask is a single unit of work with optional prerequisites.
	KindTask EntryKind = iota
	// KindParallel runs its members with no ordering guarantee.
	KindParallel
	// KindSeries runs its members strictly left to right.
	KindSeries
)

func (k EntryKind) String() string {
	switch k {
	case KindTask:
		return "task"
	case KindParallel:
		return "parallel"
	case KindSeries:
		return "series"
	default:
		return "unknown"
	}
}

// TaskFunc is the body of a task. Progress lines are written to out.
type TaskFunc func(ctx context.Context, out io.Writer) error

// Entry is a named task or task group.
type Entry struct {
	Name        InternedString
	Kind        EntryKind
	Description string
	// Refs holds the prerequisites of a task or the members of a group.
	Refs []InternedString
	Run  TaskFunc
}

// NewTask builds a task entry.
func NewTask(name, description string, run TaskFunc, deps ...string) Entry {
	return Entry{
		Name:        NewInternedString(name),
		Kind:        KindTask,
		Description: description,
		Refs:        NewInternedStrings(deps...),
		Run:         run,
	}
}

// Parallel builds a group whose members run concurrently.
func Parallel(name, description string, members ...string) Entry {
	return Entry{
		Name:        NewInternedString(name),
		Kind:        KindParallel,
		Description: description,
		Refs:        NewInternedStrings(members...),
	}
}

// Series builds a group whose members run one after another.
func Series(name, description string, members ...string) Entry {
	return Entry{
		Name:        NewInternedString(name),
		Kind:        KindSeries,
		Description: description,
		Refs:        NewInternedStrings(members...),
	}
}

// Registry is the set of named entries available to the scheduler.
type Registry struct {
	entries map[InternedString]Entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[InternedString]Entry),
	}
}

// Register adds e to the registry. An entry with the same name is replaced.
func (r *Registry) Register(e Entry) error {
	name := e.Name.String()
	if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return zerr.With(ErrInvalidTaskName, "task_name", name)
	}
	if e.Kind == KindTask && e.Run == nil {
		return zerr.With(zerr.With(ErrInvalidTaskName, "task_name", name), "reason", "missing body")
	}
	r.entries[e.Name] = e
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, error) {
	e, ok := r.entries[NewInternedString(name)]
	if !ok {
		return Entry{}, zerr.With(ErrTaskNotFound, "task_name", name)
	}
	return e, nil
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries yields every entry sorted by name.
func (r *Registry) Entries() iter.Seq[Entry] {
	names := make([]InternedString, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.SortFunc(names, InternedString.Compare)

	return func(yield func(Entry) bool) {
		for _, name := range names {
			if !yield(r.entries[name]) {
				return
			}
		}
	}
}

// Validate checks that every reference resolves and that no entry reaches itself.
func (r *Registry) Validate() error {
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	for e := range r.Entries() {
		if visited[e.Name] == 0 {
			if err := r.visit(e.Name, visited, nil, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// Plan returns the entries reachable from targets, prerequisites first,
// each listed once.
func (r *Registry) Plan(targets ...string) ([]InternedString, error) {
	for _, t := range targets {
		if _, err := r.Lookup(t); err != nil {
			return nil, err
		}
	}

	visited := make(map[InternedString]int)
	var order []InternedString
	for _, t := range NewInternedStrings(targets...) {
		if visited[t] == 0 {
			if err := r.visit(t, visited, nil, &order); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}

func (r *Registry) visit(
	u InternedString,
	visited map[InternedString]int,
	path []InternedString,
	order *[]InternedString,
) error {
	visited[u] = 1
	path = append(path, u)

	e := r.entries[u]
	for _, ref := range e.Refs {
		if _, ok := r.entries[ref]; !ok {
			err := zerr.With(ErrMissingMember, "member", ref.String())
			return zerr.With(err, "task_name", u.String())
		}
		switch visited[ref] {
		case 1:
			return buildCycleError(path, ref)
		case 0:
			if err := r.visit(ref, visited, path, order); err != nil {
				return err
			}
		}
	}

	visited[u] = 2
	if order != nil {
		*order = append(*order, u)
	}
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []InternedString, dep InternedString) error {
	start := slices.Index(path, dep)
	var b strings.Builder
	for _, node := range path[start:] {
		b.WriteString(node.String())
		b.WriteString(" -> ")
	}
	b.WriteString(dep.String())
	return zerr.With(ErrCycleDetected, "cycle", b.String())
}
