package waveform

import "sync"

// Pool provides sync.Pool-based Waveform reuse to reduce GC pressure in
// generator-heavy test loops.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return New("", 0, 0)
			},
		},
	}
}

// Get returns a zeroed Waveform with the requested label, timescale, and
// length. Callers must return it via Put when done.
func (p *Pool) Get(label string, timescale int64, length int) *Waveform {
	w := p.pool.Get().(*Waveform)
	w.label = label
	w.timescale = timescale
	w.Resize(length)
	w.storage.Zero()
	return w
}

// Put returns a Waveform to the pool for reuse.
// The caller must not use the waveform after calling Put.
func (p *Pool) Put(w *Waveform) {
	if w == nil {
		return
	}
	p.pool.Put(w)
}
