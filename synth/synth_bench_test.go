package synth

import (
	"math/rand"
	"testing"
)

func BenchmarkNoisySine(b *testing.B) {
	s, err := NewSource(rand.New(rand.NewSource(1)))
	if err != nil {
		b.Fatalf("NewSource() error = %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.NoisySine(1, 0, 80000, 10000, 4096, 0.01); err != nil {
			b.Fatalf("NoisySine() error = %v", err)
		}
	}
}

func BenchmarkPRBS31(b *testing.B) {
	s, err := NewSource(rand.New(rand.NewSource(1)))
	if err != nil {
		b.Fatalf("NewSource() error = %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.PRBS31(1, 80000, 10000, 4096); err != nil {
			b.Fatalf("PRBS31() error = %v", err)
		}
	}
}

func BenchmarkSineMix(b *testing.B) {
	s, err := NewSource(rand.New(rand.NewSource(1)))
	if err != nil {
		b.Fatalf("NewSource() error = %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.SineMix(1, 0, 1, 80000, 30000, 10000, 4096, 0.01); err != nil {
			b.Fatalf("SineMix() error = %v", err)
		}
	}
}
