package channel_test

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-sigsynth/channel"
	"github.com/cwbudde/algo-sigsynth/sparam"
	"github.com/cwbudde/algo-sigsynth/synth"
)

func Example() {
	// A flat channel response; real responses come from a measured
	// two-port parameter file.
	resp, err := sparam.NewResponse([]sparam.Point{
		{Frequency: 0, Magnitude: 1},
		{Frequency: 50e9, Magnitude: 1},
	})
	if err != nil {
		panic(err)
	}

	rng := rand.New(rand.NewSource(1))
	src, err := synth.NewSource(rng)
	if err != nil {
		panic(err)
	}
	emu, err := channel.New(resp, rng)
	if err != nil {
		panic(err)
	}

	wf, err := src.Step(0, 1, 10000, 512)
	if err != nil {
		panic(err)
	}

	// Noise-free degradation through a flat channel leaves the step
	// intact.
	if err := emu.Degrade(wf, 10000, 512, true, 0); err != nil {
		panic(err)
	}

	maxErr := 0.0
	for i, v := range wf.Samples() {
		want := 0.0
		if i >= 256 {
			want = 1
		}
		if d := v - want; d > maxErr {
			maxErr = d
		} else if -d > maxErr {
			maxErr = -d
		}
	}

	fmt.Printf("len=%d timescale=%d intact=%v\n", wf.Len(), wf.Timescale(), maxErr < 1e-6)

	// Output:
	// len=512 timescale=10000 intact=true
}
