//go:build fastmath

package dynamics

import (
	"math"

	"github.com/cwbudde/algo-fxcore/dsp/core"
	"github.com/meko-christian/algo-approx"
)

// ln10 is the natural logarithm of 10, used for log base conversions.
const ln10 = 2.30258509299404568401799145468

var levelFloorLinear = core.DBToLinear(LevelFloorDB)

// levelDB is the detector level in dB, floored at LevelFloorDB. The floor
// test matches core.LinearToDBFloor; the logarithm is approximated.
func levelDB(x float64) float64 {
	mag := math.Abs(x)
	if mag <= levelFloorLinear {
		return LevelFloorDB
	}

	return 20 * approx.FastLog(mag) / ln10
}

// mathPower10 computes 10^x using fast approximation.
// Uses the identity: 10^x = e^(x * ln(10))
func mathPower10(x float64) float64 {
	return approx.FastExp(x * ln10)
}

// mathSqrt computes sqrt(x) using fast approximation.
func mathSqrt(x float64) float64 {
	return approx.FastSqrt(x)
}
