package p

import "sync"

type T struct {
	mu sync.Mutex
	n  int
}

func (t *T) Inc() {
	t.mu.Lock()
	t.n++
	t.mu.Unlock()
}
