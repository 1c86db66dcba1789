// Package waveform provides the sample container shared by signal
// generators and the channel degradation engine.
//
// A Waveform owns a resizable sequence of real samples backed by an
// accelerator-resident buffer, plus an integer timescale in femtoseconds
// per sample. Generators return a freshly allocated Waveform; ownership
// transfers fully to the caller.
package waveform

import (
	"github.com/cwbudde/algo-sigsynth/accel"
)

// FemtosecondsPerSecond converts between the integer femtosecond tick unit
// used for timescales and SI seconds.
const FemtosecondsPerSecond = 1e15

// Waveform is an ordered sequence of real samples with a fixed time per
// sample. It is mutable in place; resizing truncates or extends the
// sample sequence.
type Waveform struct {
	storage   *accel.Buffer
	timescale int64 // femtoseconds per sample
	label     string
}

// New returns a zero-filled Waveform with the given label, timescale in
// femtoseconds per sample, and sample count.
func New(label string, timescale int64, length int) *Waveform {
	if length < 0 {
		length = 0
	}
	return &Waveform{
		storage:   accel.NewBuffer(length),
		timescale: timescale,
		label:     label,
	}
}

// Samples returns the underlying sample slice. Mutations are visible
// through the Waveform.
func (w *Waveform) Samples() []float64 {
	return w.storage.Data()
}

// Storage returns the accelerator buffer backing the samples. Callers use
// it to flip residency before handing the waveform to compute dispatches.
func (w *Waveform) Storage() *accel.Buffer {
	return w.storage
}

// Len returns the current number of samples.
func (w *Waveform) Len() int {
	return w.storage.Len()
}

// Resize sets the sample count to n, truncating or zero-extending.
func (w *Waveform) Resize(n int) {
	w.storage.Resize(n)
}

// Timescale returns the time per sample in femtoseconds.
func (w *Waveform) Timescale() int64 {
	return w.timescale
}

// SetTimescale sets the time per sample in femtoseconds.
func (w *Waveform) SetTimescale(fs int64) {
	w.timescale = fs
}

// Duration returns the total spanned time in seconds.
func (w *Waveform) Duration() float64 {
	return float64(w.timescale) * float64(w.Len()) / FemtosecondsPerSecond
}

// Label returns the display label.
func (w *Waveform) Label() string {
	return w.label
}

// Clone returns a deep copy with the same timescale and label.
func (w *Waveform) Clone() *Waveform {
	c := New(w.label, w.timescale, w.Len())
	copy(c.Samples(), w.Samples())
	return c
}
