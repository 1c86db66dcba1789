package sparam

import (
	"errors"
	"math"
	"testing"
)

func testResponse(t *testing.T) *Response {
	t.Helper()
	r, err := NewResponse([]Point{
		{Frequency: 0, Magnitude: 1.0, Phase: 0},
		{Frequency: 1e9, Magnitude: 0.8, Phase: -1.0},
		{Frequency: 2e9, Magnitude: 0.4, Phase: -2.5},
	})
	if err != nil {
		t.Fatalf("NewResponse() error = %v", err)
	}
	return r
}

func TestNewResponseEmpty(t *testing.T) {
	if _, err := NewResponse(nil); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("NewResponse(nil) error = %v, want ErrEmptyResponse", err)
	}
}

func TestNewResponseSortsPoints(t *testing.T) {
	r, err := NewResponse([]Point{
		{Frequency: 2e9, Magnitude: 0.5},
		{Frequency: 1e9, Magnitude: 0.9},
	})
	if err != nil {
		t.Fatalf("NewResponse() error = %v", err)
	}
	if r.Point(0).Frequency != 1e9 {
		t.Fatalf("first point at %v Hz, want 1e9", r.Point(0).Frequency)
	}
}

func TestNewResponseDuplicateFrequency(t *testing.T) {
	_, err := NewResponse([]Point{
		{Frequency: 1e9}, {Frequency: 1e9},
	})
	if err == nil {
		t.Fatal("expected error for duplicate frequency")
	}
}

func TestFromSamplesMismatch(t *testing.T) {
	_, err := FromSamples([]float64{1, 2}, []float64{1}, []float64{0, 0})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("FromSamples() error = %v, want ErrLengthMismatch", err)
	}
}

func TestInterpolateMidpoint(t *testing.T) {
	r := testResponse(t)
	mag, phase := r.Interpolate(0.5e9)
	if math.Abs(mag-0.9) > 1e-12 {
		t.Fatalf("mag = %v, want 0.9", mag)
	}
	if math.Abs(phase+0.5) > 1e-12 {
		t.Fatalf("phase = %v, want -0.5", phase)
	}
}

func TestInterpolateExactPoint(t *testing.T) {
	r := testResponse(t)
	mag, phase := r.Interpolate(1e9)
	if mag != 0.8 || phase != -1.0 {
		t.Fatalf("got (%v, %v), want (0.8, -1.0)", mag, phase)
	}
}

func TestInterpolateClampsEnds(t *testing.T) {
	r := testResponse(t)
	mag, phase := r.Interpolate(-5e9)
	if mag != 1.0 || phase != 0 {
		t.Fatalf("below span: got (%v, %v), want (1, 0)", mag, phase)
	}
	mag, phase = r.Interpolate(99e9)
	if mag != 0.4 || phase != -2.5 {
		t.Fatalf("above span: got (%v, %v), want (0.4, -2.5)", mag, phase)
	}
}

func TestGroupDelayLinearPhase(t *testing.T) {
	// Linear phase -2*pi*f*tau has constant group delay tau.
	const tau = 2e-9
	points := make([]Point, 16)
	for i := range points {
		f := 1e8 * float64(i)
		points[i] = Point{Frequency: f, Magnitude: 1, Phase: -2 * math.Pi * f * tau}
	}
	r, err := NewResponse(points)
	if err != nil {
		t.Fatalf("NewResponse() error = %v", err)
	}

	for bin := 0; bin < r.Len()-1; bin++ {
		gd := r.GroupDelay(bin)
		if math.Abs(gd-tau) > 1e-15 {
			t.Fatalf("bin %d: group delay = %v, want %v", bin, gd, tau)
		}
	}
}

func TestGroupDelayLastBin(t *testing.T) {
	r := testResponse(t)
	if gd := r.GroupDelay(r.Len() - 1); gd != 0 {
		t.Fatalf("last bin group delay = %v, want 0", gd)
	}
	if gd := r.GroupDelay(-1); gd != 0 {
		t.Fatalf("negative bin group delay = %v, want 0", gd)
	}
}
