package testutil

import "math"

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// CoherentSine generates a sine with exactly cycles periods over length
// samples, so its spectrum has no leakage without a window.
func CoherentSine(cycles int, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * float64(cycles) / float64(length)

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// Ramp repeats the sequence 0, step, 2*step, ... (steps values) until length
// samples are filled.
func Ramp(step float64, steps, length int) []float64 {
	out := make([]float64, length)
	if steps <= 0 {
		return out
	}

	for i := range out {
		out[i] = step * float64(i%steps)
	}

	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}
