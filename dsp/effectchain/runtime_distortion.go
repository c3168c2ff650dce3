package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-fxcore/dsp/effects"
)

type overdriveRuntime struct {
	fx *effects.Overdrive
}

func (r *overdriveRuntime) Configure(_ Context, p Params) error {
	err := r.fx.SetMix(p.Value(effects.OverdriveDescriptors().Mix))
	if err != nil {
		return fmt.Errorf("effectchain: configure overdrive mix: %w", err)
	}

	return nil
}

func (r *overdriveRuntime) Process(block []float64) {
	r.fx.ProcessInPlace(block)
}

func (r *overdriveRuntime) Reset() {
	r.fx.Reset()
}

// tubeRuntime runs the per-sample tube, or the block-normalized form when
// block is set.
type tubeRuntime struct {
	fx    *effects.Tube
	block bool
}

func (r *tubeRuntime) Configure(ctx Context, p Params) error {
	d := effects.TubeDescriptors()

	err := r.fx.SetParams(effects.TubeParams{
		Gain:      p.Value(d.Gain),
		WorkPoint: p.Value(d.WorkPoint),
		Character: p.Value(d.Character),
		Mix:       p.Value(d.Mix),
	})
	if err != nil {
		return fmt.Errorf("effectchain: configure tube: %w", err)
	}

	if r.block {
		r.fx.Prepare(ctx.BlockSize)
	}

	return nil
}

func (r *tubeRuntime) Process(block []float64) {
	if r.block {
		r.fx.ProcessBlockAuto(block, block)
		return
	}

	r.fx.ProcessInPlace(block)
}

func (r *tubeRuntime) Reset() {
	r.fx.Reset()
}
