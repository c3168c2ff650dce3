package dynamics

import (
	"fmt"

	"github.com/cwbudde/algo-fxcore/dsp/core"
)

// CompressorOption mutates construction-time parameters.
type CompressorOption func(*compressorConfig) error

type compressorConfig struct {
	topology    Topology
	thresholdDB float64
	ratio       float64
	kneeDB      float64
	attack      float64
	release     float64
}

func defaultCompressorConfig() compressorConfig {
	d := CompressorDescriptors()

	return compressorConfig{
		topology:    TopologyFeedForward,
		thresholdDB: d.Threshold.Default,
		ratio:       d.Ratio.Default,
		kneeDB:      d.Knee.Default,
		attack:      d.Attack.Default,
		release:     d.Release.Default,
	}
}

// WithTopology selects the detector topology.
func WithTopology(t Topology) CompressorOption {
	return func(cfg *compressorConfig) error {
		if !t.valid() {
			return fmt.Errorf("%w: %d", ErrInvalidTopology, t)
		}

		cfg.topology = t

		return nil
	}
}

// WithThreshold sets the threshold in dBFS.
func WithThreshold(dB float64) CompressorOption {
	return func(cfg *compressorConfig) error {
		err := validateThreshold(dB)
		if err != nil {
			return err
		}

		cfg.thresholdDB = dB

		return nil
	}
}

// WithRatio sets the compression ratio.
func WithRatio(ratio float64) CompressorOption {
	return func(cfg *compressorConfig) error {
		err := validateRatio(ratio)
		if err != nil {
			return err
		}

		cfg.ratio = ratio

		return nil
	}
}

// WithKnee sets the soft-knee width in dB.
func WithKnee(dB float64) CompressorOption {
	return func(cfg *compressorConfig) error {
		err := validateKnee(dB)
		if err != nil {
			return err
		}

		cfg.kneeDB = dB

		return nil
	}
}

// WithAttack sets the attack time constant in seconds.
func WithAttack(seconds float64) CompressorOption {
	return func(cfg *compressorConfig) error {
		err := validateTime("attack", seconds)
		if err != nil {
			return err
		}

		cfg.attack = seconds

		return nil
	}
}

// WithRelease sets the release time constant in seconds.
func WithRelease(seconds float64) CompressorOption {
	return func(cfg *compressorConfig) error {
		err := validateTime("release", seconds)
		if err != nil {
			return err
		}

		cfg.release = seconds

		return nil
	}
}

// Compressor is a soft-knee downward compressor with a selectable detector
// topology.
//
// All validation happens in the constructor and setters; ProcessSample,
// Process and ProcessInPlace never fail and never allocate. The compressor
// is mono and not safe for concurrent use.
type Compressor struct {
	topology Topology

	sampleRate  float64
	thresholdDB float64
	ratio       float64
	kneeDB      float64
	attack      float64
	release     float64

	coeffs Coefficients
	state  EnvelopeState
}

// NewCompressor creates a compressor for the given sample rate.
//
// Defaults: feed-forward, -6 dB threshold, 3:1, 6 dB knee, 20 ms attack,
// 80 ms release.
func NewCompressor(sampleRate float64, opts ...CompressorOption) (*Compressor, error) {
	err := validateSampleRate(sampleRate)
	if err != nil {
		return nil, err
	}

	cfg := defaultCompressorConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	c := &Compressor{
		topology:    cfg.topology,
		sampleRate:  sampleRate,
		thresholdDB: cfg.thresholdDB,
		ratio:       cfg.ratio,
		kneeDB:      cfg.kneeDB,
		attack:      cfg.attack,
		release:     cfg.release,
	}

	c.updateCoefficients()

	return c, nil
}

// SetSampleRate updates the sample rate and recomputes the smoothing
// coefficients. It must be called whenever the stream configuration changes.
func (c *Compressor) SetSampleRate(sampleRate float64) error {
	err := validateSampleRate(sampleRate)
	if err != nil {
		return err
	}

	c.sampleRate = sampleRate
	c.updateCoefficients()

	return nil
}

// UpdateParameters sets threshold (dB) and ratio together. Both are
// validated before either is applied; the change takes effect on the next
// sample and the smoothing state is kept.
func (c *Compressor) UpdateParameters(thresholdDB, ratio float64) error {
	err := validateThreshold(thresholdDB)
	if err != nil {
		return err
	}

	err = validateRatio(ratio)
	if err != nil {
		return err
	}

	c.thresholdDB = thresholdDB
	c.ratio = ratio

	return nil
}

// SetThreshold sets the threshold in dBFS.
func (c *Compressor) SetThreshold(dB float64) error {
	return c.UpdateParameters(dB, c.ratio)
}

// SetRatio sets the compression ratio. 1 disables compression.
func (c *Compressor) SetRatio(ratio float64) error {
	return c.UpdateParameters(c.thresholdDB, ratio)
}

// SetKnee sets the soft-knee width in dB. 0 is a hard knee.
func (c *Compressor) SetKnee(dB float64) error {
	err := validateKnee(dB)
	if err != nil {
		return err
	}

	c.kneeDB = dB

	return nil
}

// SetAttack sets the attack time constant in seconds.
func (c *Compressor) SetAttack(seconds float64) error {
	err := validateTime("attack", seconds)
	if err != nil {
		return err
	}

	c.attack = seconds
	c.updateCoefficients()

	return nil
}

// SetRelease sets the release time constant in seconds.
func (c *Compressor) SetRelease(seconds float64) error {
	err := validateTime("release", seconds)
	if err != nil {
		return err
	}

	c.release = seconds
	c.updateCoefficients()

	return nil
}

// SetTopology switches the detector topology. The smoothing state is kept;
// call Reset for a clean switch.
func (c *Compressor) SetTopology(t Topology) error {
	if !t.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidTopology, t)
	}

	c.topology = t

	return nil
}

// Topology returns the detector topology.
func (c *Compressor) Topology() Topology { return c.topology }

// Threshold returns the threshold in dBFS.
func (c *Compressor) Threshold() float64 { return c.thresholdDB }

// Ratio returns the compression ratio.
func (c *Compressor) Ratio() float64 { return c.ratio }

// Knee returns the knee width in dB.
func (c *Compressor) Knee() float64 { return c.kneeDB }

// Attack returns the attack time constant in seconds.
func (c *Compressor) Attack() float64 { return c.attack }

// Release returns the release time constant in seconds.
func (c *Compressor) Release() float64 { return c.release }

// SampleRate returns the sample rate in Hz.
func (c *Compressor) SampleRate() float64 { return c.sampleRate }

// Coefficients returns the current attack/release coefficients.
func (c *Compressor) Coefficients() Coefficients { return c.coeffs }

// State returns a copy of the time-domain state.
func (c *Compressor) State() EnvelopeState { return c.state }

// GainReductionDB returns the most recent smoothed gain change in dB (<= 0
// while compressing). Useful for metering.
func (c *Compressor) GainReductionDB() float64 { return c.state.GainSmoothed }

// Settings returns the parameter set passed to the step functions.
func (c *Compressor) Settings() Settings {
	return Settings{
		ThresholdDB: c.thresholdDB,
		Ratio:       c.ratio,
		KneeDB:      c.kneeDB,
		Coeffs:      c.coeffs,
	}
}

// CurveDB returns the static output level in dB for an input level in dB,
// without touching the smoothing state. Useful for plotting the curve.
func (c *Compressor) CurveDB(xdB float64) float64 {
	return GainComputer(xdB, c.thresholdDB, c.ratio, c.kneeDB)
}

// Reset clears the smoothed gain and the feedback history. Parameters are
// not touched. Calling Reset twice is the same as calling it once.
func (c *Compressor) Reset() {
	c.state = EnvelopeState{}
}

// ProcessSample processes one sample.
func (c *Compressor) ProcessSample(x float64) float64 {
	s := c.Settings()

	var y float64

	switch c.topology {
	case TopologyFeedback:
		y, c.state = StepFeedback(x, c.state, s)
	case TopologyRMS:
		y, c.state = StepRMS(x, c.state, s)
	default:
		y, c.state = StepFeedForward(x, c.state, s)
	}

	return y
}

// Process compresses len(src) samples of src into dst. dst may alias src
// and must be at least as long as src.
func (c *Compressor) Process(dst, src []float64) {
	dst = dst[:len(src)]
	s := c.Settings()
	st := c.state

	switch c.topology {
	case TopologyFeedback:
		for i, x := range src {
			dst[i], st = StepFeedback(x, st, s)
		}
	case TopologyRMS:
		for i, x := range src {
			dst[i], st = StepRMS(x, st, s)
		}
	default:
		for i, x := range src {
			dst[i], st = StepFeedForward(x, st, s)
		}
	}

	c.state = st
}

// ProcessInPlace compresses buf in place.
func (c *Compressor) ProcessInPlace(buf []float64) {
	c.Process(buf, buf)
}

func (c *Compressor) updateCoefficients() {
	c.coeffs = ComputeCoefficients(c.sampleRate, c.attack, c.release)
}

func validateSampleRate(sampleRate float64) error {
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return fmt.Errorf("compressor sample rate must be positive and finite: %f", sampleRate)
	}

	return nil
}
