package a

import "sync"

type Counter struct {
	sync.Mutex
	n int
}

func (c *Counter) Inc() {
	c.Lock()
	c.n++
	c.Unlock()
}

func (c *Counter) Add(d int) {
	c.Lock()
	defer c.Unlock()

	c.n += d
}

func (c *Counter) Value() int {
	c.Lock()
	defer c.Unlock()

	return c.n
}

func (c *Counter) Racy() int {
	return c.n // want "'Counter.n' accessed without holding 'Counter.Mutex'"
}
