package trylock

import "sync"

type Conn struct {
	mu  sync.Mutex
	buf []byte
}

func (c *Conn) Write(b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buf = append(c.buf, b...)
}

func (c *Conn) TryReset() bool {
	if !c.mu.TryLock() {
		return false
	}
	defer c.mu.Unlock()

	c.buf = nil

	return true
}

func (c *Conn) Peek() int {
	if c.mu.TryLock() {
		defer c.mu.Unlock()

		return len(c.buf)
	}

	return -1
}

func (c *Conn) Len() int {
	return len(c.buf) // want "'Conn.buf' accessed without holding 'Conn.mu'"
}
