package dynamics

import (
	"errors"
	"fmt"
)

// Topology selects the detector wiring and smoothing law of a Compressor.
type Topology int

const (
	// TopologyFeedForward detects the input and smooths linearly in dB.
	TopologyFeedForward Topology = iota
	// TopologyFeedback detects the previous output and smooths linearly in dB.
	TopologyFeedback
	// TopologyRMS detects the input and smooths in the squared domain.
	TopologyRMS
)

// ErrInvalidTopology is returned for topology values or names outside the
// three supported detectors.
var ErrInvalidTopology = errors.New("invalid compressor topology")

var topologyNames = [...]string{
	TopologyFeedForward: "feedforward",
	TopologyFeedback:    "feedback",
	TopologyRMS:         "rms",
}

func (t Topology) String() string {
	if !t.valid() {
		return fmt.Sprintf("Topology(%d)", int(t))
	}

	return topologyNames[t]
}

func (t Topology) valid() bool {
	return t >= TopologyFeedForward && t <= TopologyRMS
}

// ParseTopology maps "feedforward", "feedback" or "rms" to a Topology.
func ParseTopology(name string) (Topology, error) {
	for i, n := range topologyNames {
		if n == name {
			return Topology(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidTopology, name)
}
