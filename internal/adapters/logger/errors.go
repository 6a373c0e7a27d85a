package logger

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// messager matches errors that report their own message without the chain,
// such as zerr.Error.
type messager interface {
	Message() string
}

// metadataHolder matches errors carrying structured metadata.
type metadataHolder interface {
	Metadata() map[string]any
}

// joinedError matches errors produced by errors.Join.
type joinedError interface {
	Unwrap() []error
}

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries flattens err into one entry per chain level.
// Joined errors contribute the entries of each member in order.
// Anonymous wrappers only carrying metadata are merged into the next level.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any

	var walk func(error)
	walk = func(current error) {
		for current != nil {
			if j, ok := current.(joinedError); ok {
				for _, member := range j.Unwrap() {
					walk(member)
				}
				return
			}

			m, ok := current.(messager)
			if !ok {
				entries = append(entries, ErrorEntry{
					Message:  current.Error(),
					Metadata: pending,
				})
				pending = nil
				return
			}

			var meta map[string]any
			if h, ok := current.(metadataHolder); ok {
				meta = h.Metadata()
			}

			if m.Message() == "" {
				pending = mergeMetadata(pending, meta)
				current = errors.Unwrap(current)
				continue
			}

			entries = append(entries, ErrorEntry{
				Message:  m.Message(),
				Metadata: mergeMetadata(meta, pending),
			})
			pending = nil
			current = errors.Unwrap(current)
		}
	}

	walk(err)
	return entries
}

func mergeMetadata(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// formatErrorEntries renders entries as the "Error:" headline followed by a
// "Caused by:" list. Metadata lines are sorted by key.
func formatErrorEntries(entries []ErrorEntry) string {
	if len(entries) == 0 {
		return ""
	}

	const (
		headIndent  = "       "
		causeIndent = "      "
	)

	var lines []string
	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		indent := headIndent
		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lines = append(lines, "    → "+msgLines[0])
			indent = causeIndent
		}

		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}

		keys := make([]string, 0, len(entry.Metadata))
		for k := range entry.Metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, entry.Metadata[k]))
		}
	}

	return strings.Join(lines, "\n")
}
