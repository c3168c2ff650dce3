package dynamics

import "math"

// ln9 sets the time constant convention: after attack (or release) seconds a
// step has settled to within 1/9 of its target.
var ln9 = math.Log(9)

// Coefficients holds the one-pole smoothing coefficients of the envelope
// follower.
type Coefficients struct {
	Attack  float64
	Release float64
}

// ComputeCoefficients derives attack and release coefficients from time
// constants in seconds: alpha = exp(-ln(9) / (sampleRate * t)).
func ComputeCoefficients(sampleRate, attack, release float64) Coefficients {
	return Coefficients{
		Attack:  math.Exp(-ln9 / (sampleRate * attack)),
		Release: math.Exp(-ln9 / (sampleRate * release)),
	}
}

// EnvelopeState is the complete time-domain state of a compressor.
// The zero value is the reset state.
type EnvelopeState struct {
	// GainSmoothed is the last smoothed gain change in dB.
	GainSmoothed float64
	// PrevOutput is the previous output sample (feedback topology only).
	PrevOutput float64
}

// alpha selects the attack coefficient when the new gain change is below the
// previous smoothed value and the release coefficient otherwise.
//
// The comparison is against the previous smoothed gain, not against zero or
// the new static gain.
func (c Coefficients) alpha(gainChange, prev float64) float64 {
	if gainChange < prev {
		return c.Attack
	}

	return c.Release
}

// SmoothLinear is the dB-domain one-pole smoother used by the feed-forward
// and feedback topologies.
func SmoothLinear(gainChange, prev float64, c Coefficients) float64 {
	a := c.alpha(gainChange, prev)
	return (1-a)*gainChange + a*prev
}

// SmoothRMS smooths in the squared domain and returns the negative root, so
// the result is never positive.
func SmoothRMS(gainChange, prev float64, c Coefficients) float64 {
	a := c.alpha(gainChange, prev)
	return -mathSqrt((1-a)*gainChange*gainChange + a*prev*prev)
}
