// Code generated by hand for testing. DO NOT EDIT.

package generated

import "sync"

type T struct {
	mu sync.Mutex
	v  int
}

func (t *T) A() {
	t.mu.Lock()
	t.v = 1
	t.mu.Unlock()
}

func (t *T) B() {
	t.mu.Lock()
	t.v = 2
	t.mu.Unlock()
}

func (t *T) C() {
	t.mu.Lock()
	t.v = 3
	t.mu.Unlock()
}

func (t *T) D() int {
	return t.v // want "'T.v' accessed without holding 'T.mu'"
}
