// Package sparam models a measured two-port network response.
//
// A Response holds the forward transmission ("S21") of a channel as an
// ordered list of (frequency, magnitude, phase) points and answers
// interpolated lookups at arbitrary frequencies plus group-delay
// estimates. The Touchstone file parser that produces the points lives
// outside this module; construction takes already-parsed data. A Response
// is immutable after construction and safe for concurrent readers.
package sparam

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Construction errors.
var (
	ErrEmptyResponse  = errors.New("sparam: response must have at least one point")
	ErrLengthMismatch = errors.New("sparam: frequency/magnitude/phase length mismatch")
)

// Point is one measured sample of the network response.
type Point struct {
	Frequency float64 // Hz
	Magnitude float64 // linear voltage gain
	Phase     float64 // radians
}

// Response is an ordered, immutable sequence of response points.
type Response struct {
	points []Point
}

// NewResponse builds a Response from measured points. Points are copied
// and sorted by ascending frequency.
func NewResponse(points []Point) (*Response, error) {
	if len(points) == 0 {
		return nil, ErrEmptyResponse
	}
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Frequency < sorted[j].Frequency
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Frequency == sorted[i-1].Frequency {
			return nil, fmt.Errorf("sparam: duplicate frequency %v Hz", sorted[i].Frequency)
		}
	}
	return &Response{points: sorted}, nil
}

// FromSamples builds a Response from parallel frequency, magnitude, and
// phase slices, as produced by an external parameter-file parser.
func FromSamples(freqHz, magnitude, phaseRad []float64) (*Response, error) {
	if len(freqHz) != len(magnitude) || len(freqHz) != len(phaseRad) {
		return nil, ErrLengthMismatch
	}
	points := make([]Point, len(freqHz))
	for i := range points {
		points[i] = Point{Frequency: freqHz[i], Magnitude: magnitude[i], Phase: phaseRad[i]}
	}
	return NewResponse(points)
}

// Len returns the number of stored points.
func (r *Response) Len() int {
	return len(r.points)
}

// Point returns the i-th stored point.
func (r *Response) Point(i int) Point {
	return r.points[i]
}

// Interpolate returns the magnitude and phase at freqHz, linearly
// interpolating between the bracketing stored points. Frequencies outside
// the measured span clamp to the nearest endpoint.
func (r *Response) Interpolate(freqHz float64) (magnitude, phaseRad float64) {
	first := r.points[0]
	last := r.points[len(r.points)-1]
	if freqHz <= first.Frequency {
		return first.Magnitude, first.Phase
	}
	if freqHz >= last.Frequency {
		return last.Magnitude, last.Phase
	}

	j := sort.Search(len(r.points), func(k int) bool {
		return r.points[k].Frequency >= freqHz
	})
	lo, hi := r.points[j-1], r.points[j]
	t := (freqHz - lo.Frequency) / (hi.Frequency - lo.Frequency)
	magnitude = lo.Magnitude + t*(hi.Magnitude-lo.Magnitude)
	phaseRad = lo.Phase + t*(hi.Phase-lo.Phase)
	return magnitude, phaseRad
}

// GroupDelay estimates the channel's group delay in seconds at the given
// stored bin, from the phase slope between that bin and the next:
// -dphi / (2*pi*df). The last bin (which has no successor) reports zero.
func (r *Response) GroupDelay(bin int) float64 {
	if bin < 0 || bin+1 >= len(r.points) {
		return 0
	}
	lo, hi := r.points[bin], r.points[bin+1]
	df := hi.Frequency - lo.Frequency
	if df == 0 {
		return 0
	}
	dphi := hi.Phase - lo.Phase
	return -dphi / (2 * math.Pi * df)
}
