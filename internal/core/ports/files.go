package ports

import "go.trai.ch/press/internal/core/domain"

// SourceResolver expands glob patterns into source files.
type SourceResolver interface {
	// Resolve expands patterns in order. Matches of each pattern are sorted and
	// files already matched are skipped. Patterns prefixed with "!" remove
	// earlier matches. A literal path that does not exist is an error; a glob
	// matching nothing is not.
	Resolve(patterns []string) ([]domain.SourceFile, error)
}

// FileStore reads and writes build files.
type FileStore interface {
	// Read returns the contents of path.
	Read(path string) ([]byte, error)

	// Write stores data at path, creating parent directories. It reports
	// whether the file changed; identical content is not rewritten.
	Write(path string, data []byte) (bool, error)

	// Clean removes every entry inside dir, creating dir when absent.
	Clean(dir string) error
}
