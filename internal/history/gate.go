package history

import "sync"

// gate serializes index read-modify-write sequences. Only one holder is
// inside the critical section at a time; blocked acquirers proceed in
// the order they arrived. Acquire returns the release func so every
// exit path of a critical section can release via defer.
type gate struct {
	ch chan struct{}
}

func newGate() *gate {
	return &gate{ch: make(chan struct{}, 1)}
}

// acquire blocks until the gate is free and returns its release func.
// The release func is safe to call more than once.
func (g *gate) acquire() (release func()) {
	g.ch <- struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() { <-g.ch })
	}
}
