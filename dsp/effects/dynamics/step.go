package dynamics

// Settings is the read-only parameter set the step functions use.
type Settings struct {
	ThresholdDB float64
	Ratio       float64
	KneeDB      float64
	Coeffs      Coefficients
}

// StepFeedForward runs one sample through the feed-forward compressor.
// The detector measures x itself.
func StepFeedForward(x float64, st EnvelopeState, s Settings) (float64, EnvelopeState) {
	xdB := LevelDB(x)
	gc := GainChange(xdB, s.ThresholdDB, s.Ratio, s.KneeDB)
	st.GainSmoothed = SmoothLinear(gc, st.GainSmoothed, s.Coeffs)

	return mathPower10(st.GainSmoothed/20) * x, st
}

// StepFeedback runs one sample through the feedback compressor. The detector
// measures the previous output; the new output is stored for the next call.
func StepFeedback(x float64, st EnvelopeState, s Settings) (float64, EnvelopeState) {
	xdB := LevelDB(st.PrevOutput)
	gc := GainChange(xdB, s.ThresholdDB, s.Ratio, s.KneeDB)
	st.GainSmoothed = SmoothLinear(gc, st.GainSmoothed, s.Coeffs)

	y := mathPower10(st.GainSmoothed/20) * x
	st.PrevOutput = y

	return y, st
}

// StepRMS is StepFeedForward with the squared-domain smoothing law.
func StepRMS(x float64, st EnvelopeState, s Settings) (float64, EnvelopeState) {
	xdB := LevelDB(x)
	gc := GainChange(xdB, s.ThresholdDB, s.Ratio, s.KneeDB)
	st.GainSmoothed = SmoothRMS(gc, st.GainSmoothed, s.Coeffs)

	return mathPower10(st.GainSmoothed/20) * x, st
}
