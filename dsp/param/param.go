// Package param describes the user-facing parameters of the processing
// stages: name, unit, range and default.
//
// Descriptors are plain values. Stages hand them out by value so a host can
// build automation, menus or validation without reaching into package state.
package param

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cwbudde/algo-fxcore/dsp/core"
)

// Descriptor is the immutable metadata record of one parameter.
type Descriptor struct {
	ID      string
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
}

// Clamp limits v to [Min, Max]. NaN maps to Default.
func (d Descriptor) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return d.Default
	}

	return core.Clamp(v, d.Min, d.Max)
}

// Validate returns an error when v is not finite or outside [Min, Max].
func (d Descriptor) Validate(v float64) error {
	if !core.IsFinite(v) {
		return fmt.Errorf("%s must be finite: %f", d.Name, v)
	}

	if v < d.Min || v > d.Max {
		return fmt.Errorf("%s must be in [%g, %g]: %f", d.Name, d.Min, d.Max, v)
	}

	return nil
}

// Normalize maps a plain value to [0, 1].
func (d Descriptor) Normalize(plain float64) float64 {
	if d.Max <= d.Min {
		return 0
	}

	return (d.Clamp(plain) - d.Min) / (d.Max - d.Min)
}

// Denormalize maps a normalized value in [0, 1] back to the plain range.
func (d Descriptor) Denormalize(normalized float64) float64 {
	return d.Min + core.Clamp(normalized, 0, 1)*(d.Max-d.Min)
}

// Format renders v with two decimals and the unit suffix, if any.
func (d Descriptor) Format(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if d.Unit == "" {
		return s
	}

	return s + " " + d.Unit
}

// String implements fmt.Stringer.
func (d Descriptor) String() string {
	return fmt.Sprintf("%s [%s .. %s] default %s", d.Name, d.Format(d.Min), d.Format(d.Max), d.Format(d.Default))
}
