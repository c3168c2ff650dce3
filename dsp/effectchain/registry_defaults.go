package effectchain

import (
	"github.com/cwbudde/algo-fxcore/dsp/effects"
	"github.com/cwbudde/algo-fxcore/dsp/effects/dynamics"
)

// Built-in effect type names.
const (
	TypeCompressor = "compressor"
	TypeOverdrive  = "overdrive"
	TypeTube       = "tube"
	TypeTubeBlock  = "tube-block"
)

// DefaultRegistry returns a Registry pre-populated with all built-in effect runtimes.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(TypeCompressor, func(ctx Context) (Runtime, error) {
		fx, err := dynamics.NewCompressor(ctx.SampleRate)
		if err != nil {
			return nil, err
		}

		return &compressorRuntime{fx: fx}, nil
	})
	r.MustRegister(TypeOverdrive, func(_ Context) (Runtime, error) {
		fx, err := effects.NewOverdrive()
		if err != nil {
			return nil, err
		}

		return &overdriveRuntime{fx: fx}, nil
	})
	r.MustRegister(TypeTube, func(ctx Context) (Runtime, error) {
		fx, err := effects.NewTube(max(ctx.BlockSize, 1))
		if err != nil {
			return nil, err
		}

		return &tubeRuntime{fx: fx}, nil
	})
	r.MustRegister(TypeTubeBlock, func(ctx Context) (Runtime, error) {
		fx, err := effects.NewTube(max(ctx.BlockSize, 1))
		if err != nil {
			return nil, err
		}

		return &tubeRuntime{fx: fx, block: true}, nil
	})

	return r
}
