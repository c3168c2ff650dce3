// Package dynamics provides the dynamic-range compressor of the effects core.
//
// The compressor is split into three layers:
//   - GainComputer: the static characteristic mapping an input level in dB
//     to a target output level, with a quadratic soft knee.
//   - The envelope follower: one-pole attack/release smoothing of the gain
//     change, either linear in dB (SmoothLinear) or in the squared domain
//     (SmoothRMS).
//   - Step functions (StepFeedForward, StepFeedback, StepRMS): one sample of
//     the full algorithm as a pure function of an explicit EnvelopeState.
//
// Compressor is the stateful wrapper that threads EnvelopeState through the
// step function selected by its Topology. It is single-threaded and
// allocation-free; parameter changes must be serialized with processing.
//
// Build with the fastmath tag to swap log10, 10^x and sqrt on the per-sample
// path for the algo-approx approximations.
package dynamics
