// Package core holds the numeric, buffer and configuration helpers shared
// by the processing stages.
package core

import "math"

// Clamp limits v to [lo, hi]. Swapped bounds are reordered.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	return min(max(v, lo), hi)
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DBToLinear converts a level in dB to linear amplitude, 10^(dB/20).
func DBToLinear(dB float64) float64 {
	return math.Pow(10, dB/20)
}

// LinearToDBFloor converts the magnitude of x to dB and never returns a
// value below floorDB, so silence maps to the floor instead of -Inf.
func LinearToDBFloor(x, floorDB float64) float64 {
	mag := math.Abs(x)
	if mag <= DBToLinear(floorDB) {
		return floorDB
	}

	return 20 * math.Log10(mag)
}
