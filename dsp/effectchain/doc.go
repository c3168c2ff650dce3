// Package effectchain wires the effect stages into a serial, JSON-configured
// processing chain.
//
// A layout is a JSON document of the form
//
//	{"nodes":[{"id":"comp","type":"compressor","bypassed":false,"params":{"ratio":4}}]}
//
// Node parameters are keyed by descriptor ID and clamped into the
// descriptor range; missing parameters take the descriptor default. The
// built-in types are compressor (with a string "topology" parameter),
// overdrive, tube and tube-block.
//
// Chain.Load and Chain.SetContext log through logrus; Chain.Process does
// not log and does not allocate.
package effectchain
