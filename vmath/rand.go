package vmath

import "time"

// FastRand is a xorshift64 generator, not safe for concurrent use
// Each owner (generator, manager, animator) keeps its own instance
type FastRand struct {
	state uint64
}

// NewFastRand seeds a generator, zero seed is remapped since xorshift sticks at zero
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

// NewTimeSeededRand seeds from the wall clock
func NewTimeSeededRand() *FastRand {
	return NewFastRand(uint64(time.Now().UnixNano()))
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns [0, n), 0 for non-positive n
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// IntRange returns [lo, hi] inclusive
func (r *FastRand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Float64 returns [0, 1) using the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns [a, b)
func (r *FastRand) Range(a, b float64) float64 {
	return (b-a)*r.Float64() + a
}

// Chance reports true with probability p
func (r *FastRand) Chance(p float64) bool {
	return r.Float64() < p
}

// Fork derives an independent generator
func (r *FastRand) Fork() *FastRand {
	return NewFastRand(r.Next() ^ 0x9E3779B97F4A7C15)
}
