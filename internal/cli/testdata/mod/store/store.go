package store

import "sync"

type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

func New() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Get(k string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data[k]
}

func (s *Store) Set(k, v string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[k] = v
}

func (s *Store) Delete(k string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, k)
}

func (s *Store) Len() int {
	return len(s.data)
}
