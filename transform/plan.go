// Package transform owns the cached real-FFT plan and scratch buffers
// used by the channel degradation engine.
//
// A PlanCache keeps the forward/inverse transform, the padded
// accelerator-resident input buffer, the frequency-domain scratch, and the
// inverse-transform output sized to the next power of two at or above the
// last requested depth. All four rebuild together when the padded length
// changes and are untouched otherwise, amortizing transform setup across
// repeated calls at a stable depth. A PlanCache is not safe for concurrent
// use; callers needing parallel work use one cache per goroutine.
package transform

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-sigsynth/accel"
)

// ErrBadDepth is returned for non-positive sample depths.
var ErrBadDepth = errors.New("transform: depth must be > 0")

// PlanCache holds transform handles and scratch storage for one padded
// length at a time.
type PlanCache struct {
	padded   int
	fft      *fourier.FFT
	input    *accel.Buffer // padded time-domain input, accelerator-resident
	freq     []complex128  // padded/2+1 frequency bins
	output   []float64     // time-domain inverse output
	rebuilds int
}

// NewPlanCache returns an empty cache; the first Ensure builds the plan.
func NewPlanCache() *PlanCache {
	c := &PlanCache{input: accel.NewBuffer(0)}
	c.input.SetCPUAccessHint(accel.HintLikely)
	c.input.SetGPUAccessHint(accel.HintLikely)
	return c
}

// Ensure makes the cached plan cover depth samples. The padded length is
// the smallest power of two >= depth; if it matches the cached length this
// is a no-op, otherwise the transform and every scratch buffer are rebuilt
// together before Ensure returns.
func (c *PlanCache) Ensure(depth int) error {
	if depth <= 0 {
		return fmt.Errorf("%w: %d", ErrBadDepth, depth)
	}

	padded := NextPow2(depth)
	if padded == c.padded {
		return nil
	}

	c.fft = fourier.NewFFT(padded)
	c.freq = make([]complex128, padded/2+1)
	c.output = make([]float64, padded)
	c.input.Resize(padded)
	c.padded = padded
	c.rebuilds++
	return nil
}

// PaddedLength returns the current padded length, 0 before the first
// Ensure.
func (c *PlanCache) PaddedLength() int {
	return c.padded
}

// Bins returns the number of frequency bins (paddedLength/2 + 1).
func (c *PlanCache) Bins() int {
	if c.padded == 0 {
		return 0
	}
	return c.padded/2 + 1
}

// Rebuilds returns how many times Ensure has rebuilt the plan.
func (c *PlanCache) Rebuilds() int {
	return c.rebuilds
}

// Input returns the padded time-domain input buffer. Dispatches write it;
// Forward reads it.
func (c *PlanCache) Input() *accel.Buffer {
	return c.input
}

// Frequency returns the frequency-domain scratch, one complex value per
// bin for bins 0..paddedLength/2. Valid after Forward until the next
// Ensure at a different depth.
func (c *PlanCache) Frequency() []complex128 {
	return c.freq
}

// Output returns the time-domain inverse-transform scratch. The inverse
// transform is unnormalized; consumers rescale by 1/PaddedLength.
func (c *PlanCache) Output() []float64 {
	return c.output
}

// Forward runs the real-to-complex transform of the padded input into the
// frequency scratch.
func (c *PlanCache) Forward() error {
	if c.fft == nil {
		return fmt.Errorf("%w: Ensure not called", ErrBadDepth)
	}
	c.fft.Coefficients(c.freq, c.input.Data())
	return nil
}

// Inverse runs the complex-to-real transform of the frequency scratch
// into the output buffer. The result is scaled by PaddedLength relative
// to the original sequence.
func (c *PlanCache) Inverse() error {
	if c.fft == nil {
		return fmt.Errorf("%w: Ensure not called", ErrBadDepth)
	}
	c.fft.Sequence(c.output, c.freq)
	return nil
}

// NextPow2 returns the smallest power of two >= n.
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
