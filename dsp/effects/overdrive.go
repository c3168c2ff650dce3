package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fxcore/dsp/param"
)

// Mix boundaries of the overdrive transfer regions. The gaps (0.30, 0.34)
// and (0.60, 0.64) are part of the curve: the first passes the input
// through, the second outputs a pure sine.
const (
	overdriveSineLow  = 0.34
	overdriveSineHigh = 0.60
	overdriveCubicLow = 0.64
)

// OverdriveParams groups the overdrive parameter descriptors.
type OverdriveParams struct {
	Mix param.Descriptor
}

// OverdriveDescriptors returns the overdrive parameter descriptors.
func OverdriveDescriptors() OverdriveParams {
	return OverdriveParams{
		Mix: param.Descriptor{ID: "mix", Name: "overdrive mix", Unit: "", Min: 0, Max: 1, Default: 0.5},
	}
}

// All lists the descriptors in display order.
func (p OverdriveParams) All() []param.Descriptor {
	return []param.Descriptor{p.Mix}
}

type overdriveRegion int

const (
	overdrivePass overdriveRegion = iota
	overdriveBlend
	overdriveSine
	overdriveCubic
)

func overdriveRegionFor(mix float64) overdriveRegion {
	switch {
	case mix >= overdriveCubicLow:
		return overdriveCubic
	case mix > overdriveSineHigh:
		return overdriveSine
	case mix >= overdriveSineLow:
		return overdriveBlend
	default:
		return overdrivePass
	}
}

func overdriveShape(r overdriveRegion, x, mix float64) float64 {
	switch r {
	case overdriveBlend:
		return mix*math.Sin(x) + (1-mix)*x
	case overdriveSine:
		return math.Sin(x)
	case overdriveCubic:
		a := 2 - 3*math.Abs(x)
		return mix*(math.Sin(x)*(3-a*a)/3) + (1-mix)*x
	default:
		return x
	}
}

// OverdriveSample applies the overdrive waveshaper to one sample.
func OverdriveSample(x, mix float64) float64 {
	return overdriveShape(overdriveRegionFor(mix), x, mix)
}

// OverdriveBlock shapes len(src) samples of src into dst with a fixed mix.
// dst may alias src and must be at least as long as src. The waveshaper is
// memoryless.
func OverdriveBlock(dst, src []float64, mix float64) {
	dst = dst[:len(src)]
	r := overdriveRegionFor(mix)

	if r == overdrivePass {
		copy(dst, src)
		return
	}

	for i, x := range src {
		dst[i] = overdriveShape(r, x, mix)
	}
}

// OverdriveOption mutates construction-time parameters.
type OverdriveOption func(*overdriveConfig) error

type overdriveConfig struct {
	mix float64
}

// WithOverdriveMix sets the mix in [0, 1].
func WithOverdriveMix(mix float64) OverdriveOption {
	return func(cfg *overdriveConfig) error {
		err := OverdriveDescriptors().Mix.Validate(mix)
		if err != nil {
			return fmt.Errorf("overdrive: %w", err)
		}

		cfg.mix = mix

		return nil
	}
}

// Overdrive is the stateful wrapper around OverdriveBlock that caches the
// mix and its transfer region.
type Overdrive struct {
	mix    float64
	region overdriveRegion
}

// NewOverdrive creates an overdrive stage. The default mix is 0.5.
func NewOverdrive(opts ...OverdriveOption) (*Overdrive, error) {
	cfg := overdriveConfig{mix: OverdriveDescriptors().Mix.Default}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	o := &Overdrive{}
	o.setMix(cfg.mix)

	return o, nil
}

// Mix returns the current mix.
func (o *Overdrive) Mix() float64 { return o.mix }

// SetMix sets the mix in [0, 1]. It takes effect on the next sample.
func (o *Overdrive) SetMix(mix float64) error {
	err := OverdriveDescriptors().Mix.Validate(mix)
	if err != nil {
		return fmt.Errorf("overdrive: %w", err)
	}

	o.setMix(mix)

	return nil
}

func (o *Overdrive) setMix(mix float64) {
	o.mix = mix
	o.region = overdriveRegionFor(mix)
}

// ProcessSample shapes one sample.
func (o *Overdrive) ProcessSample(x float64) float64 {
	return overdriveShape(o.region, x, o.mix)
}

// Process shapes len(src) samples of src into dst. dst may alias src.
func (o *Overdrive) Process(dst, src []float64) {
	OverdriveBlock(dst, src, o.mix)
}

// ProcessInPlace shapes buf in place.
func (o *Overdrive) ProcessInPlace(buf []float64) {
	OverdriveBlock(buf, buf, o.mix)
}

// Reset is a no-op; the overdrive has no time-domain state.
func (o *Overdrive) Reset() {}
