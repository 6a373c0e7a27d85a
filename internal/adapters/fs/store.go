package fs

import (
	"bytes"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unique"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileStore = (*Store)(nil)

// Store implements ports.FileStore on the local disk.
// Writes go through a temporary file and a rename so the dev server never
// serves a half-written asset.
//
// Store remembers the xxhash of every output it wrote or confirmed. While
// the file on disk keeps the size and modification time seen then, a write
// with the same hash is reported unchanged without reading the file back.
type Store struct {
	mu      sync.Mutex
	written map[unique.Handle[string]]outputState

	readFile func(string) ([]byte, error)
}

// outputState is what Store knows about a file it produced.
type outputState struct {
	hash    uint64
	size    int64
	modTime time.Time
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{
		written:  make(map[unique.Handle[string]]outputState),
		readFile: os.ReadFile,
	}
}

// Read returns the contents of path. A missing file reports ErrSourceNotFound.
func (s *Store) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from resolved globs
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(domain.ErrSourceNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "path", path)
	}
	return data, nil
}

// Write stores data at path unless the file already holds identical bytes.
func (s *Store) Write(path string, data []byte) (bool, error) {
	key := unique.Make(filepath.Clean(path))
	sum := xxhash.Sum64(data)

	info, err := statOutput(path)
	if err != nil {
		return false, err
	}
	if info != nil && info.Size() == int64(len(data)) {
		if s.cached(key, sum, info) {
			return false, nil
		}
		existing, err := s.readFile(path)
		if err == nil && bytes.Equal(existing, data) {
			s.remember(key, sum, info)
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, ".press-*")
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()
	cleanup := func(cause error) (bool, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return false, zerr.With(zerr.Wrap(cause, domain.ErrFileWriteFailed.Error()), "path", path)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		return cleanup(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return false, zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", path)
	}

	if info, err := os.Stat(path); err == nil {
		s.remember(key, sum, info)
	} else {
		s.forget(key)
	}
	return true, nil
}

// statOutput returns the file info of path, or nil when nothing is there yet.
func statOutput(path string) (iofs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", path)
	}
	if info.IsDir() {
		return nil, zerr.With(zerr.Wrap(iofs.ErrExist, domain.ErrFileWriteFailed.Error()), "path", path)
	}
	return info, nil
}

func (s *Store) cached(key unique.Handle[string], sum uint64, info iofs.FileInfo) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.written[key]
	return ok && state.hash == sum && state.size == info.Size() && state.modTime.Equal(info.ModTime())
}

func (s *Store) remember(key unique.Handle[string], sum uint64, info iofs.FileInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written[key] = outputState{hash: sum, size: info.Size(), modTime: info.ModTime()}
}

func (s *Store) forget(key unique.Handle[string]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.written, key)
}

// forgetUnder drops every remembered output inside dir.
func (s *Store) forgetUnder(dir string) {
	prefix := filepath.Clean(dir) + string(filepath.Separator)
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.written {
		if strings.HasPrefix(key.Value(), prefix) {
			delete(s.written, key)
		}
	}
}

// Clean removes every entry of dir. dir itself is kept, or created when absent.
func (s *Store) Clean(dir string) error {
	s.forgetUnder(dir)

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", dir)
	}

	var errs error
	for _, entry := range entries {
		target := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(target); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", target))
		}
	}
	return errs
}
