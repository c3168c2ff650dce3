package dynamics

// LevelFloorDB is the lowest level the detector reports. A zero-amplitude
// sample maps here instead of -Inf.
const LevelFloorDB = -96.0

// LevelDB returns 20*log10(|x|), floored at LevelFloorDB.
func LevelDB(x float64) float64 {
	return levelDB(x)
}

// GainComputer is the static characteristic. It maps the input level xdB to
// the target output level in dB for the given threshold (dB), ratio (>= 1)
// and knee width (dB, >= 0).
//
// Above threshold+knee/2 the output follows threshold + (xdB-threshold)/ratio;
// inside the knee it interpolates quadratically; below it is the identity.
// A zero knee width never reaches the quadratic branch.
func GainComputer(xdB, thresholdDB, ratio, kneeDB float64) float64 {
	halfKnee := kneeDB / 2

	switch {
	case xdB > thresholdDB+halfKnee:
		return thresholdDB + (xdB-thresholdDB)/ratio
	case xdB > thresholdDB-halfKnee:
		over := xdB - thresholdDB + halfKnee
		return xdB + ((1/ratio-1)*over*over)/(2*kneeDB)
	default:
		return xdB
	}
}

// GainChange returns GainComputer(xdB, ...) - xdB, the gain in dB the
// compressor wants to apply at level xdB. It is <= 0 for ratio >= 1.
func GainChange(xdB, thresholdDB, ratio, kneeDB float64) float64 {
	return GainComputer(xdB, thresholdDB, ratio, kneeDB) - xdB
}
