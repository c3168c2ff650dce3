// Package effects provides the memoryless distortion stages of the effects
// core.
//
//   - Overdrive: sine/cubic waveshaper whose transfer region is selected by
//     the mix amount. OverdriveBlock is the stateless form.
//   - Tube: asymmetric tube curve z(q) with a per-sample form (TubeSample,
//     TubeBlock) and a block-normalized two-pass form (ComputeTubeTransfer,
//     NormalizeAndMixTube) that scales by the block peak.
//
// The compressor lives in github.com/cwbudde/algo-fxcore/dsp/effects/dynamics.
//
// Processing never allocates. The block tube needs scratch space, either
// owned by a Tube (sized by NewTube and Prepare) or passed to
// TubeProcessBlock by the caller.
package effects
