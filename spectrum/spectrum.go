// Package spectrum provides spectrum analysis for synthesized and
// degraded waveforms.
//
// An Analyzer wraps a cached complex FFT plan and exposes one-sided
// magnitude and power spectra plus phase utilities. It exists for
// validation: checking that a generated sinusoid lands in the right bin,
// or that a degraded serial stream lost the expected high-frequency
// energy.
package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Analyzer errors.
var (
	ErrBadSize   = errors.New("spectrum: size must be a power of two")
	ErrLongInput = errors.New("spectrum: input longer than analyzer size")
)

// Analyzer computes one-sided spectra over a fixed transform size.
// Inputs shorter than the size are zero-padded. Not safe for concurrent
// use.
type Analyzer struct {
	size    int
	plan    *algofft.Plan[complex128]
	timeBuf []complex128
	freqBuf []complex128
	re      []float64
	im      []float64
}

// NewAnalyzer creates an Analyzer with the given power-of-two transform
// size.
func NewAnalyzer(size int) (*Analyzer, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}
	bins := size/2 + 1
	return &Analyzer{
		size:    size,
		plan:    plan,
		timeBuf: make([]complex128, size),
		freqBuf: make([]complex128, size),
		re:      make([]float64, bins),
		im:      make([]float64, bins),
	}, nil
}

// Size returns the transform size.
func (a *Analyzer) Size() int {
	return a.size
}

// Bins returns the number of one-sided bins (size/2 + 1).
func (a *Analyzer) Bins() int {
	return a.size/2 + 1
}

// Magnitude returns |X[k]| for bins 0..size/2 of the zero-padded input.
func (a *Analyzer) Magnitude(samples []float64) ([]float64, error) {
	if err := a.forward(samples); err != nil {
		return nil, err
	}
	bins := a.Bins()
	for i := 0; i < bins; i++ {
		a.re[i] = real(a.freqBuf[i])
		a.im[i] = imag(a.freqBuf[i])
	}
	out := make([]float64, bins)
	vecmath.Magnitude(out, a.re, a.im)
	return out, nil
}

// Power returns |X[k]|^2 for bins 0..size/2 of the zero-padded input.
func (a *Analyzer) Power(samples []float64) ([]float64, error) {
	if err := a.forward(samples); err != nil {
		return nil, err
	}
	bins := a.Bins()
	for i := 0; i < bins; i++ {
		a.re[i] = real(a.freqBuf[i])
		a.im[i] = imag(a.freqBuf[i])
	}
	out := make([]float64, bins)
	vecmath.Power(out, a.re, a.im)
	return out, nil
}

// Phase returns arg(X[k]) in radians for bins 0..size/2 of the
// zero-padded input.
func (a *Analyzer) Phase(samples []float64) ([]float64, error) {
	if err := a.forward(samples); err != nil {
		return nil, err
	}
	out := make([]float64, a.Bins())
	for i := range out {
		out[i] = cmplx.Phase(a.freqBuf[i])
	}
	return out, nil
}

func (a *Analyzer) forward(samples []float64) error {
	if len(samples) > a.size {
		return fmt.Errorf("%w: %d > %d", ErrLongInput, len(samples), a.size)
	}
	for i := range a.timeBuf {
		if i < len(samples) {
			a.timeBuf[i] = complex(samples[i], 0)
		} else {
			a.timeBuf[i] = 0
		}
	}
	if err := a.plan.Forward(a.freqBuf, a.timeBuf); err != nil {
		return fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}
	return nil
}

// PeakBin returns the index of the largest magnitude, ignoring the DC
// bin. Returns -1 for inputs shorter than two bins.
func PeakBin(magnitude []float64) int {
	if len(magnitude) < 2 {
		return -1
	}
	peak := 1
	for i := 2; i < len(magnitude); i++ {
		if magnitude[i] > magnitude[peak] {
			peak = i
		}
	}
	return peak
}

// BinFrequency returns the center frequency in Hz of a one-sided bin for
// a transform of the given size over samples spaced samplePeriodFs
// femtoseconds apart.
func BinFrequency(bin, size int, samplePeriodFs int64) float64 {
	if size <= 0 || samplePeriodFs <= 0 {
		return 0
	}
	sampleRate := 1e15 / float64(samplePeriodFs)
	return float64(bin) * sampleRate / float64(size)
}

// UnwrapPhase returns a new phase slice with +/-2*pi discontinuities
// removed.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}
		out[i] = phase[i] + offset
	}
	return out
}
