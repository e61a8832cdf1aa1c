package vmath

import "testing"

func TestFastRandDeterministic(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("sequence diverged at %d", i)
		}
	}
}

func TestFastRandZeroSeed(t *testing.T) {
	r := NewFastRand(0)
	if r.Next() == 0 {
		t.Error("zero seed must not produce a stuck generator")
	}
}

func TestFastRandRanges(t *testing.T) {
	r := NewFastRand(7)
	for i := 0; i < 10000; i++ {
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %f", f)
		}
		if v := r.Range(-3, 3); v < -3 || v >= 3 {
			t.Fatalf("Range out of range: %f", v)
		}
		if n := r.IntRange(2, 5); n < 2 || n > 5 {
			t.Fatalf("IntRange out of range: %d", n)
		}
	}
	if r.Intn(0) != 0 || r.Intn(-4) != 0 {
		t.Error("Intn must return 0 for non-positive n")
	}
	if r.IntRange(9, 9) != 9 {
		t.Error("IntRange with equal bounds must return the bound")
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2.5, 3},
		{2.4, 2},
		{-2.5, -2},
		{-2.6, -3},
		{0.5, 1},
		{7, 7},
	}
	for _, tt := range tests {
		if got := RoundHalfUp(tt.in); got != tt.want {
			t.Errorf("RoundHalfUp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLerp(t *testing.T) {
	tests := []struct{ a, b, t, want float64 }{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.25, 2.5},
		{4, -4, 0.5, 0},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}
