package a

import "sync"

type Worker struct {
	mu    sync.Mutex
	state int
}

func (w *Worker) Set(s int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.state = s
}

func (w *Worker) Get() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.state
}

func (w *Worker) Update(f func(int) int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	func() {
		w.state = f(w.state)
	}()
}

func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	go func() {
		w.state++ // want "'Worker.state' accessed without holding 'Worker.mu'"
	}()
}
