package rng

import "sync"

// Fixed is a scripted Source for tests. It returns queued values in order and
// falls back to Default once the queue is exhausted. Values are clamped into
// [0, n) at draw time so a script of large values can force "roll fails"
// outcomes without knowing each call's modulus.
type Fixed struct {
	mu      sync.Mutex
	queue   []int
	Default int
}

// NewFixed returns a Fixed source that yields values in order, then Default.
func NewFixed(values ...int) *Fixed {
	return &Fixed{queue: values}
}

// Intn returns the next scripted value clamped to [0, n).
//
// Precondition: n > 0.
func (f *Fixed) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.Default
	if len(f.queue) > 0 {
		v = f.queue[0]
		f.queue = f.queue[1:]
	}
	if v < 0 {
		v = 0
	}
	if v >= n {
		v = n - 1
	}
	return v
}
