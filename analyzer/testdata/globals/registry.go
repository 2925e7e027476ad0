package globals

import "sync"

var (
	mu       sync.Mutex
	registry = map[string]int{}
)

func Register(k string, v int) {
	mu.Lock()
	registry[k] = v
	mu.Unlock()
}

func Lookup(k string) int {
	mu.Lock()
	defer mu.Unlock()

	return registry[k]
}

func Count() int {
	mu.Lock()
	defer mu.Unlock()

	return len(registry)
}

func Dump() map[string]int {
	return registry // want "'globals.registry' accessed without holding 'globals.mu'"
}
