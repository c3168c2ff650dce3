package effectchain

import "github.com/cwbudde/algo-fxcore/dsp/core"

// Context provides environmental information that effect runtimes need.
type Context struct {
	SampleRate float64
	// BlockSize is the largest block Process will be called with. Runtimes
	// with scratch buffers size them from it during Configure.
	BlockSize int
}

// NewContext builds a Context from processor options, starting at the
// core defaults.
func NewContext(opts ...core.ProcessorOption) Context {
	cfg := core.ApplyProcessorOptions(opts...)

	return Context{SampleRate: cfg.SampleRate, BlockSize: cfg.BlockSize}
}
