package a

import "sync"

type Registry struct {
	mu    sync.RWMutex
	other sync.Mutex
	items []string
}

func (r *Registry) Items() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.items
}

func (r *Registry) Add(s string) {
	r.mu.Lock()
	r.items = append(r.items, s)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

func (r *Registry) First() string {
	r.other.Lock()
	defer r.other.Unlock()

	return r.items[0] // want "'Registry.items' accessed holding 'Registry.other' instead of 'Registry.mu'"
}
