package effectchain

// Runtime is the per-node processing and configuration contract.
//
// Configure runs outside the audio callback and may allocate. Process and
// Reset run on the audio thread and must not.
type Runtime interface {
	Configure(ctx Context, params Params) error
	Process(block []float64)
	Reset()
}
