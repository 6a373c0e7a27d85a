package fs

// NewStoreWithReader creates a Store that reads existing outputs through read.
func NewStoreWithReader(read func(string) ([]byte, error)) *Store {
	s := NewStore()
	s.readFile = read
	return s
}
