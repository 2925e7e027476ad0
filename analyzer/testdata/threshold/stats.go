package threshold

import "sync"

type Stats struct {
	mu sync.Mutex
	n  int
}

func (s *Stats) Inc() {
	s.mu.Lock()
	s.n++
	s.mu.Unlock()
}

func (s *Stats) Get() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.n
}

func (s *Stats) Fast() int {
	return s.n // want `'Stats.n' accessed without holding 'Stats.mu' \(held in 2 of 3 accesses, 66%; 1 unguarded\)`
}
