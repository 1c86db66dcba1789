package synth_test

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-sigsynth/synth"
)

func ExampleSource_Step() {
	src, err := synth.NewSource(rand.New(rand.NewSource(1)))
	if err != nil {
		panic(err)
	}
	wf, err := src.Step(0, 1, 10000, 10)
	if err != nil {
		panic(err)
	}

	for _, v := range wf.Samples() {
		fmt.Printf("%.0f ", v)
	}
	fmt.Println()

	// Output:
	// 0 0 0 0 0 1 1 1 1 1
}

func ExampleSource_EightBTenB() {
	src, err := synth.NewSource(rand.New(rand.NewSource(1)))
	if err != nil {
		panic(err)
	}

	// One symbol per sample: the waveform follows the 20-bit pattern
	// directly.
	wf, err := src.EightBTenB(2, 10000, 10000, 8)
	if err != nil {
		panic(err)
	}

	for _, v := range wf.Samples() {
		fmt.Printf("%+.0f ", v)
	}
	fmt.Println()

	// Output:
	// -1 -1 -1 +1 +1 +1 +1 +1
}
