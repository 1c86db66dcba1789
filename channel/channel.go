// Package channel degrades idealized test waveforms through a measured
// two-port network response.
//
// An Emulator owns a transform plan cache and a zero-pad dispatch
// pipeline; Degrade convolves the waveform with the channel's frequency
// response by per-bin complex rotation, compensates for the channel's
// group delay by truncating startup garbage, and adds calibrated Gaussian
// noise. One Emulator serves one goroutine; callers needing parallel
// degradation use one Emulator per goroutine.
package channel

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-sigsynth/accel"
	"github.com/cwbudde/algo-sigsynth/sparam"
	"github.com/cwbudde/algo-sigsynth/transform"
	"github.com/cwbudde/algo-sigsynth/waveform"
)

// Emulator errors.
var (
	ErrNilResponse  = errors.New("channel: response must not be nil")
	ErrNilRand      = errors.New("channel: rng must not be nil")
	ErrNilWaveform  = errors.New("channel: waveform must not be nil")
	ErrShortInput   = errors.New("channel: waveform shorter than requested depth")
	ErrBadTimescale = errors.New("channel: sample period must be > 0")
)

// workgroupSize matches the dispatch granularity of the zero-pad kernel.
const workgroupSize = 64

// Option configures an Emulator.
type Option func(*Emulator)

// WithQueue sets the dispatch queue used to execute the zero-pad stage.
// The default is the host execution queue.
func WithQueue(q accel.Queue) Option {
	return func(e *Emulator) {
		if q != nil {
			e.queue = q
		}
	}
}

// Emulator applies a channel's measured response to waveforms.
type Emulator struct {
	resp     *sparam.Response
	rng      *rand.Rand
	plan     *transform.PlanCache
	pipeline *accel.WindowPipeline
	queue    accel.Queue
	cmd      *accel.CommandBuffer
}

// New returns an Emulator for the given response, drawing all noise from
// rng. The response is shared read-only and never mutated; the Emulator
// never reseeds rng.
func New(resp *sparam.Response, rng *rand.Rand, opts ...Option) (*Emulator, error) {
	if resp == nil {
		return nil, ErrNilResponse
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	e := &Emulator{
		resp:     resp,
		rng:      rng,
		plan:     transform.NewPlanCache(),
		pipeline: accel.NewWindowPipeline(),
		queue:    accel.NewHostQueue(),
		cmd:      accel.NewCommandBuffer(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// Plan returns the emulator's transform plan cache.
func (e *Emulator) Plan() *transform.PlanCache {
	return e.plan
}

// Degrade mutates wf in place: with applyFilter it applies the channel's
// frequency response to the first depth samples and shrinks the waveform
// by the channel's group delay; without it, it only adds one Gaussian
// noise draw (mean 0, stddev noiseAmplitude) per sample. samplePeriod is
// the waveform's time per sample in femtoseconds.
//
// The zero-pad stage is dispatched once and waited on synchronously: the
// forward transform has a hard dependency on its output, so no overlap is
// attempted within one call. There is no deadline on the wait.
func (e *Emulator) Degrade(wf *waveform.Waveform, samplePeriod int64, depth int, applyFilter bool, noiseAmplitude float64) error {
	if wf == nil {
		return ErrNilWaveform
	}
	if samplePeriod <= 0 {
		return fmt.Errorf("%w: %d", ErrBadTimescale, samplePeriod)
	}
	if depth > wf.Len() {
		return fmt.Errorf("%w: depth %d, len %d", ErrShortInput, depth, wf.Len())
	}

	// The waveform came from CPU-side synthesis.
	wf.Storage().MarkModifiedFromCPU()

	if err := e.plan.Ensure(depth); err != nil {
		return err
	}

	if !applyFilter {
		out := wf.Samples()
		for i := 0; i < depth; i++ {
			out[i] += e.rng.NormFloat64() * noiseAmplitude
		}
		return nil
	}

	npoints := e.plan.PaddedLength()
	nouts := e.plan.Bins()

	// Zero-pad the input in one dispatch, then block until it lands:
	// the forward transform must not start on partially written data.
	e.cmd.Begin()
	e.pipeline.BindInput(0, wf.Storage())
	e.pipeline.BindOutput(1, e.plan.Input(), true)
	err := e.pipeline.Dispatch(e.cmd, accel.WindowArgs{
		NumActualSamples: depth,
		PaddedLength:     npoints,
	}, accel.BlockCount(npoints, workgroupSize))
	if err != nil {
		return fmt.Errorf("channel: zero-pad dispatch: %w", err)
	}
	if err := e.pipeline.MemoryBarrier(e.cmd); err != nil {
		return fmt.Errorf("channel: memory barrier: %w", err)
	}
	e.plan.Input().MarkModifiedFromGPU()
	e.cmd.End()
	if err := e.queue.SubmitAndBlock(e.cmd); err != nil {
		return fmt.Errorf("channel: zero-pad submit: %w", err)
	}

	// Pull the padded buffer back for the CPU-side transform.
	e.plan.Input().PrepareForCPUAccess()
	if err := e.plan.Forward(); err != nil {
		return err
	}

	// Group delay at the middle of the measured band, converted to a
	// whole sample count.
	groupDelayFs := int64(e.resp.GroupDelay(e.resp.Len()/2) * waveform.FemtosecondsPerSecond)
	delaySamples := int(groupDelayFs / samplePeriod)
	if delaySamples < 0 {
		delaySamples = 0
	}
	if delaySamples > depth {
		delaySamples = depth
	}

	// Apply the channel response bin by bin. The unit-scaled constants in
	// the bin frequency are deliberate; keep the formula as is.
	sampleGHz := 1e6 / float64(samplePeriod)
	binHz := math.Round(0.5 * sampleGHz * 1e9 / float64(nouts))
	freq := e.plan.Frequency()
	for i := range freq {
		mag, ang := e.resp.Interpolate(binHz * float64(i))

		sinval := math.Sin(ang) * mag
		cosval := math.Cos(ang) * mag

		re := real(freq[i])
		im := imag(freq[i])
		freq[i] = complex(re*cosval-im*sinval, re*sinval+im*cosval)
	}

	if err := e.plan.Inverse(); err != nil {
		return err
	}

	// Discard the channel-startup garbage at the head, rescale the
	// unnormalized inverse transform, and add noise.
	finalLen := depth - delaySamples
	fftScale := 1 / float64(npoints)
	out := wf.Samples()
	inv := e.plan.Output()
	for i := 0; i < finalLen; i++ {
		out[i] = inv[i+delaySamples]*fftScale + e.rng.NormFloat64()*noiseAmplitude
	}

	// Truncate the garbage at the end; the timescale is unchanged.
	wf.Resize(finalLen)
	return nil
}
