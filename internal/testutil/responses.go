package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-sigsynth/sparam"
)

// IdentityResponse returns a flat response (magnitude 1, phase 0) with n
// points spanning 0..maxFreqHz. Degrading through it is a no-op up to
// numerical tolerance.
func IdentityResponse(t *testing.T, n int, maxFreqHz float64) *sparam.Response {
	t.Helper()
	points := make([]sparam.Point, n)
	for i := range points {
		points[i] = sparam.Point{
			Frequency: maxFreqHz * float64(i) / float64(n-1),
			Magnitude: 1,
		}
	}
	resp, err := sparam.NewResponse(points)
	if err != nil {
		t.Fatalf("NewResponse() error = %v", err)
	}
	return resp
}

// DelayResponse returns a unity-magnitude linear-phase response modeling a
// pure delay of delaySeconds, with n points spanning 0..maxFreqHz.
func DelayResponse(t *testing.T, delaySeconds float64, n int, maxFreqHz float64) *sparam.Response {
	t.Helper()
	points := make([]sparam.Point, n)
	for i := range points {
		f := maxFreqHz * float64(i) / float64(n-1)
		points[i] = sparam.Point{
			Frequency: f,
			Magnitude: 1,
			Phase:     -2 * math.Pi * f * delaySeconds,
		}
	}
	resp, err := sparam.NewResponse(points)
	if err != nil {
		t.Fatalf("NewResponse() error = %v", err)
	}
	return resp
}

// LossyResponse returns a first-order-lowpass-shaped response with the
// given -3 dB corner, n points spanning 0..maxFreqHz, and zero phase.
func LossyResponse(t *testing.T, cornerHz float64, n int, maxFreqHz float64) *sparam.Response {
	t.Helper()
	points := make([]sparam.Point, n)
	for i := range points {
		f := maxFreqHz * float64(i) / float64(n-1)
		points[i] = sparam.Point{
			Frequency: f,
			Magnitude: 1 / math.Sqrt(1+(f/cornerHz)*(f/cornerHz)),
		}
	}
	resp, err := sparam.NewResponse(points)
	if err != nil {
		t.Fatalf("NewResponse() error = %v", err)
	}
	return resp
}
