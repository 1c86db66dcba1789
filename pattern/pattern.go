// Package pattern provides binary symbol sources for serial test
// waveforms.
//
// A Source yields one symbol per call; the synth package turns symbol
// streams into band-unlimited square waves. Two sources are provided: a
// PRBS31 linear-feedback shift register and a fixed cyclic pattern.
package pattern

import "errors"

// ErrEmptyPattern is returned when a fixed pattern has no bits.
var ErrEmptyPattern = errors.New("pattern: empty pattern")

// Source yields one binary symbol at a time.
type Source interface {
	Next() bool
}

// PRBS31 is a 31-bit linear-feedback shift register producing a
// maximal-length (2^31 - 1) pseudo-random binary sequence. Each new bit is
// the exclusive-or of bits 30 and 27, shifted in at the LSB.
type PRBS31 struct {
	state uint32
}

// NewPRBS31 returns a PRBS31 source seeded with the given register state.
// A zero seed would lock the register at zero, so it is replaced with 1.
func NewPRBS31(seed uint32) *PRBS31 {
	if seed == 0 {
		seed = 1
	}
	return &PRBS31{state: seed}
}

// Next returns the next bit of the sequence.
func (p *PRBS31) Next() bool {
	next := ((p.state >> 30) ^ (p.state >> 27)) & 1
	p.state = (p.state << 1) | next
	return next == 1
}

// Fixed cycles through a fixed bit pattern, wrapping to the start after
// the last bit.
type Fixed struct {
	bits []bool
	pos  int
}

// NewFixed returns a cyclic source over the given bits.
func NewFixed(bits []bool) (*Fixed, error) {
	if len(bits) == 0 {
		return nil, ErrEmptyPattern
	}
	return &Fixed{bits: bits}, nil
}

// Next returns the next bit of the pattern.
func (f *Fixed) Next() bool {
	b := f.bits[f.pos]
	f.pos++
	if f.pos >= len(f.bits) {
		f.pos = 0
	}
	return b
}

// Len returns the pattern length in bits.
func (f *Fixed) Len() int {
	return len(f.bits)
}

// EightBTenB returns the canonical 20-bit 8b/10b reference sequence: the
// K28.5 comma code group followed by the D16.2 data code group.
func EightBTenB() []bool {
	return []bool{
		false, false, true, true, true, true, true, false, true, false, // K28.5
		true, false, false, true, false, false, false, true, false, true, // D16.2
	}
}
