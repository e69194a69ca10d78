package content

import "sync"

// Store holds parsed trees keyed by repository-relative path. Put is safe
// for concurrent use by parser workers; once they are done the store is
// only read.
type Store struct {
	mu    sync.RWMutex
	trees map[string]*Tree
}

func NewStore() *Store {
	return &Store{trees: make(map[string]*Tree)}
}

func (s *Store) Put(path string, t *Tree) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trees[path] = t
}

func (s *Store) Get(path string) (*Tree, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trees[path]
	return t, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trees)
}
