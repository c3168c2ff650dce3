package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-fxcore/dsp/effects/dynamics"
)

type compressorRuntime struct {
	fx *dynamics.Compressor
}

func (r *compressorRuntime) Configure(ctx Context, p Params) error {
	d := dynamics.CompressorDescriptors()

	err := r.fx.SetSampleRate(ctx.SampleRate)
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor sample rate: %w", err)
	}

	topology, err := dynamics.ParseTopology(p.GetStr("topology", r.fx.Topology().String()))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor topology: %w", err)
	}

	if topology != r.fx.Topology() {
		err = r.fx.SetTopology(topology)
		if err != nil {
			return fmt.Errorf("effectchain: configure compressor topology: %w", err)
		}

		r.fx.Reset()
	}

	err = r.fx.UpdateParameters(p.Value(d.Threshold), p.Value(d.Ratio))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor threshold/ratio: %w", err)
	}

	err = r.fx.SetKnee(p.Value(d.Knee))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor knee: %w", err)
	}

	err = r.fx.SetAttack(p.Value(d.Attack))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor attack: %w", err)
	}

	err = r.fx.SetRelease(p.Value(d.Release))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor release: %w", err)
	}

	return nil
}

func (r *compressorRuntime) Process(block []float64) {
	r.fx.ProcessInPlace(block)
}

func (r *compressorRuntime) Reset() {
	r.fx.Reset()
}
