// Package synth generates idealized oscilloscope test waveforms.
//
// A Source produces canonical analog patterns (step, noisy sinusoid,
// dual-sinusoid mix) and serial data streams (PRBS31, 8b/10b) as
// band-unlimited square waves with linearly interpolated edges. All random
// draws (noise and PRBS seeding) come from one injected *rand.Rand, so a
// fixed seed and call sequence reproduce bit-identical waveforms.
package synth

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-sigsynth/pattern"
	"github.com/cwbudde/algo-sigsynth/waveform"
)

// Generation errors.
var (
	ErrNilRand       = errors.New("synth: rng must not be nil")
	ErrNegativeDepth = errors.New("synth: depth must be >= 0")
	ErrBadPeriod     = errors.New("synth: period must be > 0")
	ErrBadTimescale  = errors.New("synth: sample period must be > 0")
)

// Source generates test waveforms from a shared pseudo-random stream.
// It is not safe for concurrent use; the draw order on the shared stream
// defines the output.
type Source struct {
	rng *rand.Rand
}

// NewSource returns a Source drawing from rng.
func NewSource(rng *rand.Rand) (*Source, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	return &Source{rng: rng}, nil
}

// Step generates a two-level waveform: the first depth/2 samples at vlo,
// the remainder at vhi. For odd depths the low level gets one more sample.
func (s *Source) Step(vlo, vhi float64, samplePeriod int64, depth int) (*waveform.Waveform, error) {
	if err := checkShape(samplePeriod, depth); err != nil {
		return nil, err
	}

	wf := waveform.New("Step", samplePeriod, depth)
	out := wf.Samples()
	mid := depth / 2
	for i := range out {
		if i < mid {
			out[i] = vlo
		} else {
			out[i] = vhi
		}
	}
	return wf, nil
}

// NoisySine generates amplitude/2 * sin(phase) plus Gaussian noise. The
// phase advances by 2*pi*samplePeriod/period per sample, offset by
// startPhase. period is the cycle period in femtoseconds.
func (s *Source) NoisySine(amplitude, startPhase, period float64, samplePeriod int64, depth int, noiseAmplitude float64) (*waveform.Waveform, error) {
	if err := checkShape(samplePeriod, depth); err != nil {
		return nil, err
	}
	if period <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadPeriod, period)
	}

	wf := waveform.New("NoisySine", samplePeriod, depth)
	out := wf.Samples()

	radiansPerSample := 2 * math.Pi * float64(samplePeriod) / period

	// sin is +/- 1, so divide amplitude by 2 to get the scaling factor.
	scale := amplitude / 2

	for i := range out {
		out[i] = scale*math.Sin(float64(i)*radiansPerSample+startPhase) + s.noise(noiseAmplitude)
	}
	return wf, nil
}

// SineMix generates the sum of two independently parameterized sinusoids
// plus one Gaussian noise draw per sample. Each component is scaled by
// amplitude/4 so the sum stays below the amplitude/2 clipping ceiling.
func (s *Source) SineMix(amplitude, startPhase1, startPhase2, period1, period2 float64, samplePeriod int64, depth int, noiseAmplitude float64) (*waveform.Waveform, error) {
	if err := checkShape(samplePeriod, depth); err != nil {
		return nil, err
	}
	if period1 <= 0 || period2 <= 0 {
		return nil, fmt.Errorf("%w: %v, %v", ErrBadPeriod, period1, period2)
	}

	wf := waveform.New("NoisySineMix", samplePeriod, depth)
	out := wf.Samples()

	radiansPerSample1 := 2 * math.Pi * float64(samplePeriod) / period1
	radiansPerSample2 := 2 * math.Pi * float64(samplePeriod) / period2

	// sin is +/- 1, so divide amplitude by 2 to get the scaling factor.
	// Divide by 2 again to avoid clipping the sum of the components.
	scale := amplitude / 4

	for i := range out {
		out[i] = scale*
			(math.Sin(float64(i)*radiansPerSample1+startPhase1)+
				math.Sin(float64(i)*radiansPerSample2+startPhase2)) +
			s.noise(noiseAmplitude)
	}
	return wf, nil
}

// PRBS31 generates a square-wave PRBS31 serial stream with symbol period
// in femtoseconds, centered on zero with +/- amplitude/2 levels. The LFSR
// is seeded from the shared random stream.
func (s *Source) PRBS31(amplitude, period float64, samplePeriod int64, depth int) (*waveform.Waveform, error) {
	if err := checkShape(samplePeriod, depth); err != nil {
		return nil, err
	}
	if period <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadPeriod, period)
	}
	src := pattern.NewPRBS31(s.rng.Uint32())
	return s.serial("PRBS31", src, amplitude, period, samplePeriod, depth), nil
}

// EightBTenB generates a square-wave serial stream cycling the fixed
// 20-bit K28.5 + D16.2 8b/10b reference pattern.
func (s *Source) EightBTenB(amplitude, period float64, samplePeriod int64, depth int) (*waveform.Waveform, error) {
	if err := checkShape(samplePeriod, depth); err != nil {
		return nil, err
	}
	if period <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadPeriod, period)
	}
	src, err := pattern.NewFixed(pattern.EightBTenB())
	if err != nil {
		return nil, err
	}
	return s.serial("8B10B", src, amplitude, period, samplePeriod, depth), nil
}

// Serial renders an arbitrary symbol source as a square wave with
// interpolated edges. period is the symbol period in femtoseconds.
func (s *Source) Serial(label string, src pattern.Source, amplitude, period float64, samplePeriod int64, depth int) (*waveform.Waveform, error) {
	if err := checkShape(samplePeriod, depth); err != nil {
		return nil, err
	}
	if period <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadPeriod, period)
	}
	return s.serial(label, src, amplitude, period, samplePeriod, depth), nil
}

// serial is the edge interpolator. A phase accumulator starts at one full
// symbol period and counts down by the sample period each step; when it
// goes negative a new symbol is drawn and the accumulator is replenished
// by adding the symbol period rather than resetting, so rounding error
// does not accumulate over long runs. The single sample straddling a
// transition is linearly interpolated between the old and new level.
func (s *Source) serial(label string, src pattern.Source, amplitude, period float64, samplePeriod int64, depth int) *waveform.Waveform {
	wf := waveform.New(label, samplePeriod, depth)
	out := wf.Samples()

	scale := amplitude / 2
	phaseToNextEdge := period
	value := false

	for i := range out {
		lastPhase := phaseToNextEdge
		phaseToNextEdge -= float64(samplePeriod)

		last := value
		if phaseToNextEdge < 0 {
			value = src.Next()
			phaseToNextEdge += period
		}

		if last == value {
			// Not an edge, hold the level.
			out[i] = level(value, scale)
		} else {
			// Edge: interpolate by the fraction of the sample interval
			// after the transition.
			lastVoltage := level(last, scale)
			curVoltage := level(value, scale)
			frac := 1 - lastPhase/float64(samplePeriod)
			out[i] = lastVoltage + (curVoltage-lastVoltage)*frac
		}
	}
	return wf
}

func level(bit bool, scale float64) float64 {
	if bit {
		return scale
	}
	return -scale
}

func (s *Source) noise(amplitude float64) float64 {
	return s.rng.NormFloat64() * amplitude
}

func checkShape(samplePeriod int64, depth int) error {
	if samplePeriod <= 0 {
		return fmt.Errorf("%w: %d", ErrBadTimescale, samplePeriod)
	}
	if depth < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeDepth, depth)
	}
	return nil
}
