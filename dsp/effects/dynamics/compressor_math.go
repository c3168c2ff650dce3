//go:build !fastmath

package dynamics

import (
	"math"

	"github.com/cwbudde/algo-fxcore/dsp/core"
)

// levelDB is the detector level in dB, floored at LevelFloorDB.
func levelDB(x float64) float64 {
	return core.LinearToDBFloor(x, LevelFloorDB)
}

// mathPower10 computes 10^x using standard library math.
func mathPower10(x float64) float64 {
	return math.Pow(10, x)
}

// mathSqrt computes sqrt(x) using standard library math.
func mathSqrt(x float64) float64 {
	return math.Sqrt(x)
}
