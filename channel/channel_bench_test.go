package channel

import (
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-sigsynth/sparam"
	"github.com/cwbudde/algo-sigsynth/synth"
	"github.com/cwbudde/algo-sigsynth/waveform"
)

func benchResponse(b *testing.B) *sparam.Response {
	b.Helper()
	points := make([]sparam.Point, 64)
	for i := range points {
		f := 50e9 * float64(i) / 63
		points[i] = sparam.Point{Frequency: f, Magnitude: 1 / (1 + f/25e9)}
	}
	resp, err := sparam.NewResponse(points)
	if err != nil {
		b.Fatalf("NewResponse() error = %v", err)
	}
	return resp
}

func BenchmarkDegradeFiltered(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	src, err := synth.NewSource(rng)
	if err != nil {
		b.Fatalf("NewSource() error = %v", err)
	}
	e, err := New(benchResponse(b), rng)
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	const depth = 4096
	wf, err := src.PRBS31(1, 80000, 10000, depth)
	if err != nil {
		b.Fatalf("PRBS31() error = %v", err)
	}
	work := waveform.New("bench", 10000, depth)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		work.Resize(depth)
		copy(work.Samples(), wf.Samples())
		if err := e.Degrade(work, 10000, depth, true, 0.01); err != nil {
			b.Fatalf("Degrade() error = %v", err)
		}
	}
}

func BenchmarkDegradeNoiseOnly(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	e, err := New(benchResponse(b), rng)
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	const depth = 4096
	wf := waveform.New("bench", 10000, depth)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := e.Degrade(wf, 10000, depth, false, 0.01); err != nil {
			b.Fatalf("Degrade() error = %v", err)
		}
	}
}
