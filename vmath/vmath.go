package vmath

import "math"

// Clamp01 bounds v to [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp interpolates from a to b by t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// RoundHalfUp rounds to nearest with halves toward +Inf (-2.5 -> -2, 2.5 -> 3)
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
