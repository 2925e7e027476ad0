package a

import "sync"

type Pair struct {
	outer, inner sync.Mutex
	v            int
}

func (p *Pair) A() {
	p.outer.Lock()
	p.inner.Lock()
	p.v = 1
	p.inner.Unlock()
	p.outer.Unlock()
}

func (p *Pair) B() {
	p.outer.Lock()
	defer p.outer.Unlock()
	p.inner.Lock()
	defer p.inner.Unlock()

	p.v = 2
}

func (p *Pair) C() int {
	p.outer.Lock()
	defer p.outer.Unlock()

	p.inner.Lock()
	defer p.inner.Unlock()

	return p.v
}

func (p *Pair) D() {
	p.outer.Lock()
	defer p.outer.Unlock()

	p.v = 3 // want "'Pair.v' accessed holding only 'Pair.outer' instead of 'Pair.outer' and 'Pair.inner'"
}
