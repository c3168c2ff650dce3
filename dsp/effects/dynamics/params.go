package dynamics

import (
	"fmt"

	"github.com/cwbudde/algo-fxcore/dsp/core"
	"github.com/cwbudde/algo-fxcore/dsp/param"
)

// CompressorParams groups the descriptors of every compressor parameter.
type CompressorParams struct {
	Threshold param.Descriptor
	Ratio     param.Descriptor
	Knee      param.Descriptor
	Attack    param.Descriptor
	Release   param.Descriptor
}

// CompressorDescriptors returns the compressor parameter descriptors. Time
// constants are in seconds.
//
// Min and Max are the control range offered to a host UI and used for
// clamping by the effect chain. The compressor itself accepts any value
// that keeps the algorithm defined: a finite threshold, ratio >= 1,
// knee >= 0 and positive time constants.
func CompressorDescriptors() CompressorParams {
	return CompressorParams{
		Threshold: param.Descriptor{ID: "threshold", Name: "threshold", Unit: "dB", Min: LevelFloorDB, Max: 0, Default: -6},
		Ratio:     param.Descriptor{ID: "ratio", Name: "ratio", Unit: ":1", Min: 1, Max: 20, Default: 3},
		Knee:      param.Descriptor{ID: "knee", Name: "knee width", Unit: "dB", Min: 0, Max: 24, Default: 6},
		Attack:    param.Descriptor{ID: "attack", Name: "attack", Unit: "s", Min: 0.0001, Max: 1, Default: 0.02},
		Release:   param.Descriptor{ID: "release", Name: "release", Unit: "s", Min: 0.001, Max: 5, Default: 0.08},
	}
}

// All lists the descriptors in display order.
func (p CompressorParams) All() []param.Descriptor {
	return []param.Descriptor{p.Threshold, p.Ratio, p.Knee, p.Attack, p.Release}
}

func validateThreshold(dB float64) error {
	if !core.IsFinite(dB) {
		return fmt.Errorf("compressor: threshold must be finite: %f", dB)
	}

	return nil
}

func validateRatio(ratio float64) error {
	if !core.IsFinite(ratio) || ratio < 1 {
		return fmt.Errorf("compressor: ratio must be finite and >= 1: %f", ratio)
	}

	return nil
}

func validateKnee(dB float64) error {
	if !core.IsFinite(dB) || dB < 0 {
		return fmt.Errorf("compressor: knee width must be finite and >= 0: %f", dB)
	}

	return nil
}

func validateTime(name string, seconds float64) error {
	if !core.IsFinite(seconds) || seconds <= 0 {
		return fmt.Errorf("compressor: %s must be finite and > 0: %f", name, seconds)
	}

	return nil
}
