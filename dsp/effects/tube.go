package effects

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-fxcore/dsp/core"
	"github.com/cwbudde/algo-fxcore/dsp/param"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// TubeParams configures the tube waveshaper.
type TubeParams struct {
	// Gain scales the normalized input before the transfer curve.
	Gain float64
	// WorkPoint (Q) shifts the operating point. Non-zero values make the
	// curve asymmetric and add even harmonics.
	WorkPoint float64
	// Character (c) is the distortion character; larger is harder.
	Character float64
	// Mix blends shaped and dry signal, in (0, 1].
	Mix float64
}

// TubeDescriptorSet groups the tube parameter descriptors.
type TubeDescriptorSet struct {
	Gain      param.Descriptor
	WorkPoint param.Descriptor
	Character param.Descriptor
	Mix       param.Descriptor
}

// TubeDescriptors returns the tube parameter descriptors.
func TubeDescriptors() TubeDescriptorSet {
	return TubeDescriptorSet{
		Gain:      param.Descriptor{ID: "gain", Name: "tube gain", Unit: "", Min: 0.1, Max: 20, Default: 1},
		WorkPoint: param.Descriptor{ID: "workpoint", Name: "tube work point", Unit: "", Min: -1, Max: 1, Default: -0.2},
		Character: param.Descriptor{ID: "character", Name: "tube character", Unit: "", Min: 0.1, Max: 20, Default: 8},
		Mix:       param.Descriptor{ID: "mix", Name: "tube mix", Unit: "", Min: 0.01, Max: 1, Default: 1},
	}
}

// All lists the descriptors in display order.
func (d TubeDescriptorSet) All() []param.Descriptor {
	return []param.Descriptor{d.Gain, d.WorkPoint, d.Character, d.Mix}
}

// DefaultTubeParams returns the descriptor defaults.
func DefaultTubeParams() TubeParams {
	d := TubeDescriptors()

	return TubeParams{
		Gain:      d.Gain.Default,
		WorkPoint: d.WorkPoint.Default,
		Character: d.Character.Default,
		Mix:       d.Mix.Default,
	}
}

// Validate checks every field against its descriptor range. A zero mix or
// character would turn the transfer into 0/0 and is rejected.
func (p TubeParams) Validate() error {
	d := TubeDescriptors()

	var errs []error

	for _, pair := range []struct {
		desc param.Descriptor
		v    float64
	}{
		{d.Gain, p.Gain},
		{d.WorkPoint, p.WorkPoint},
		{d.Character, p.Character},
		{d.Mix, p.Mix},
	} {
		err := pair.desc.Validate(pair.v)
		if err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("tube: %w", errors.Join(errs...))
	}

	return nil
}

// TubeTransfer evaluates the tube curve z(q) for work point Q and
// character c. The removable singularity at q == Q is evaluated at its
// limit.
func TubeTransfer(q, workPoint, character float64) float64 {
	if workPoint == 0 {
		if q == workPoint {
			return 1 / character
		}

		return q / (1 - mathExp(-character*q))
	}

	offset := workPoint / (1 - mathExp(character*workPoint))

	if q == workPoint {
		return 1/character + offset
	}

	d := q - workPoint

	return d/(1-mathExp(-character*d)) + offset
}

// TubeSample shapes one sample without block normalization. The input is
// normalized to its own magnitude, so only its sign reaches the curve; the
// output keeps the input magnitude. Zero passes through.
func TubeSample(x float64, p TubeParams) float64 {
	if x == 0 {
		return x
	}

	ax := math.Abs(x)
	q := x * p.Gain / ax
	z := TubeTransfer(q, p.WorkPoint, p.Character)
	out := p.Mix * z * ax / (math.Abs(z) + (1-p.Mix)*x)

	return out * ax / math.Abs(out)
}

// TubeBlock applies TubeSample to len(src) samples. dst may alias src.
func TubeBlock(dst, src []float64, p TubeParams) {
	dst = dst[:len(src)]

	for i, x := range src {
		dst[i] = TubeSample(x, p)
	}
}

// ComputeTubeTransfer is the first pass of the block-normalized tube. It
// writes z(x[i]*gain/maxBufferVal) to z[:len(src)] and returns the largest
// z. z must be at least as long as src. An empty src returns 0.
func ComputeTubeTransfer(z, src []float64, p TubeParams, maxBufferVal float64) float64 {
	if len(src) == 0 {
		return 0
	}

	z = z[:len(src)]
	maxZ := math.Inf(-1)

	for i, x := range src {
		v := TubeTransfer(x*p.Gain/maxBufferVal, p.WorkPoint, p.Character)
		z[i] = v

		if v > maxZ {
			maxZ = v
		}
	}

	return maxZ
}

// NormalizeAndMixTube is the second pass of the block-normalized tube:
//
//	dst[i] = (mix*z[i]*s + (1-mix)*src[i]) * s,  s = maxBufferVal/maxZ
//
// z is scaled in place. dst may alias src.
func NormalizeAndMixTube(dst, src, z []float64, mix, maxBufferVal, maxZ float64) {
	n := len(src)
	dst = dst[:n]
	z = z[:n]
	s := maxBufferVal / maxZ

	vecmath.ScaleBlockInPlace(z, mix*s)
	vecmath.ScaleBlock(dst, src, 1-mix)
	vecmath.AddMulBlock(dst, dst, z, s)
}

// TubeProcessBlock runs both passes of the block-normalized tube over src
// using scratch, which must be at least as long as src. maxBufferVal is the
// peak magnitude of the block and must be positive.
func TubeProcessBlock(dst, src, scratch []float64, p TubeParams, maxBufferVal float64) {
	maxZ := ComputeTubeTransfer(scratch, src, p, maxBufferVal)
	NormalizeAndMixTube(dst, src, scratch, p.Mix, maxBufferVal, maxZ)
}

// tubeMaxZ is the first pass of the block-normalized tube without scratch:
// it returns the value ComputeTubeTransfer would return.
func tubeMaxZ(src []float64, p TubeParams, maxBufferVal float64) float64 {
	if len(src) == 0 {
		return 0
	}

	maxZ := math.Inf(-1)

	for _, x := range src {
		v := TubeTransfer(x*p.Gain/maxBufferVal, p.WorkPoint, p.Character)
		if v > maxZ {
			maxZ = v
		}
	}

	return maxZ
}

// tubeNormalizeStreaming is NormalizeAndMixTube with z recomputed per sample
// instead of read from scratch.
func tubeNormalizeStreaming(dst, src []float64, p TubeParams, maxBufferVal, maxZ float64) {
	dst = dst[:len(src)]
	s := maxBufferVal / maxZ

	for i, x := range src {
		z := TubeTransfer(x*p.Gain/maxBufferVal, p.WorkPoint, p.Character)
		dst[i] = (p.Mix*z*s + (1-p.Mix)*x) * s
	}
}

// TubeOption mutates construction-time parameters.
type TubeOption func(*tubeConfig) error

type tubeConfig struct {
	params  TubeParams
	scratch []float64
}

// WithTubeParams sets the initial parameters.
func WithTubeParams(p TubeParams) TubeOption {
	return func(cfg *tubeConfig) error {
		err := p.Validate()
		if err != nil {
			return err
		}

		cfg.params = p

		return nil
	}
}

// WithTubeScratch hands the stage a caller-owned scratch buffer. Its
// capacity is used if it exceeds the requested block size.
func WithTubeScratch(buf []float64) TubeOption {
	return func(cfg *tubeConfig) error {
		cfg.scratch = buf

		return nil
	}
}

// Tube is the tube distortion stage. It owns the scratch buffer of the
// block-normalized form, sized at construction and grown only by Prepare.
type Tube struct {
	params  TubeParams
	scratch []float64
}

// NewTube creates a tube stage whose block form handles up to maxBlockSize
// samples without allocating.
func NewTube(maxBlockSize int, opts ...TubeOption) (*Tube, error) {
	if maxBlockSize <= 0 {
		return nil, fmt.Errorf("tube max block size must be > 0: %d", maxBlockSize)
	}

	cfg := tubeConfig{params: DefaultTubeParams()}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Tube{
		params:  cfg.params,
		scratch: core.EnsureLen(cfg.scratch, maxBlockSize),
	}, nil
}

// Params returns the current parameters.
func (t *Tube) Params() TubeParams { return t.params }

// SetParams validates and applies p. It takes effect on the next block.
func (t *Tube) SetParams(p TubeParams) error {
	err := p.Validate()
	if err != nil {
		return err
	}

	t.params = p

	return nil
}

// MaxBlockSize returns the largest block the block form processes from
// scratch without falling back to two curve evaluations per sample.
func (t *Tube) MaxBlockSize() int { return len(t.scratch) }

// Prepare grows the scratch buffer to hold n samples. It may allocate and
// must not be called from the audio callback.
func (t *Tube) Prepare(n int) {
	if n > len(t.scratch) {
		t.scratch = core.EnsureLen(t.scratch, n)
	}
}

// Process applies the per-sample tube to len(src) samples. dst may alias src.
func (t *Tube) Process(dst, src []float64) {
	TubeBlock(dst, src, t.params)
}

// ProcessInPlace applies the per-sample tube to buf.
func (t *Tube) ProcessInPlace(buf []float64) {
	TubeBlock(buf, buf, t.params)
}

// ProcessBlock applies the block-normalized tube with a caller-supplied
// block peak. Blocks longer than MaxBlockSize are still processed without
// allocating.
func (t *Tube) ProcessBlock(dst, src []float64, maxBufferVal float64) {
	if len(src) > len(t.scratch) {
		tubeNormalizeStreaming(dst, src, t.params, maxBufferVal, tubeMaxZ(src, t.params, maxBufferVal))
		return
	}

	TubeProcessBlock(dst, src, t.scratch, t.params, maxBufferVal)
}

// ProcessBlockAuto measures the block peak and applies the block-normalized
// tube. Silent blocks, and blocks whose curve never rises above zero, are
// copied through unchanged. The result does not depend on MaxBlockSize.
func (t *Tube) ProcessBlockAuto(dst, src []float64) {
	peak := vecmath.MaxAbs(src)
	if peak == 0 {
		copy(dst[:len(src)], src)
		return
	}

	oversized := len(src) > len(t.scratch)

	var maxZ float64
	if oversized {
		maxZ = tubeMaxZ(src, t.params, peak)
	} else {
		maxZ = ComputeTubeTransfer(t.scratch, src, t.params, peak)
	}

	if maxZ <= 0 {
		copy(dst[:len(src)], src)
		return
	}

	if oversized {
		tubeNormalizeStreaming(dst, src, t.params, peak, maxZ)
		return
	}

	NormalizeAndMixTube(dst, src, t.scratch, t.params.Mix, peak, maxZ)
}

// Reset is a no-op; the tube has no time-domain state.
func (t *Tube) Reset() {}
