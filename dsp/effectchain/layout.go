package effectchain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDuplicateNode is returned when two nodes of a layout share an ID.
var ErrDuplicateNode = errors.New("duplicate node id")

// layoutNode is a JSON-serializable node of a serial chain layout.
type layoutNode struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Bypassed bool   `json:"bypassed"`
	Params   any    `json:"params"`
}

// layoutState is the root JSON structure of a chain layout.
type layoutState struct {
	Nodes []layoutNode `json:"nodes"`
}

// parseLayout parses a JSON chain layout into node parameters in processing
// order. An empty string is an empty chain.
func parseLayout(raw string) ([]Params, error) {
	if raw == "" {
		return nil, nil
	}

	var state layoutState

	err := json.Unmarshal([]byte(raw), &state)
	if err != nil {
		return nil, fmt.Errorf("invalid chain layout json: %w", err)
	}

	nodes := make([]Params, 0, len(state.Nodes))
	seen := make(map[string]struct{}, len(state.Nodes))

	for i, n := range state.Nodes {
		if n.ID == "" || n.Type == "" {
			return nil, fmt.Errorf("invalid chain layout: node %d needs id and type", i)
		}

		if _, dup := seen[n.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
		}

		seen[n.ID] = struct{}{}

		num, str := parseNodeParams(n.Params)
		nodes = append(nodes, Params{
			ID:       n.ID,
			Type:     n.Type,
			Bypassed: n.Bypassed,
			Num:      num,
			Str:      str,
		})
	}

	return nodes, nil
}

// parseNodeParams extracts numeric and string parameters from a raw JSON params value.
func parseNodeParams(raw any) (map[string]float64, map[string]string) {
	num := map[string]float64{}
	str := map[string]string{}

	params, ok := raw.(map[string]any)
	if !ok || params == nil {
		return num, str
	}

	for k, v := range params {
		switch t := v.(type) {
		case float64:
			num[k] = t
		case string:
			str[k] = t
		case bool:
			if t {
				num[k] = 1
			} else {
				num[k] = 0
			}
		}
	}

	return num, str
}
