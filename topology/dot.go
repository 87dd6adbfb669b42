package topology

import (
	"fmt"

	"gonum.org/v1/gonum/graph/encoding/dot"
)

// MarshalDOT renders the neuron graph of s in Graphviz DOT format. Self-loop
// markers are presentation only and are not part of the graph.
func MarshalDOT(s *Scene) ([]byte, error) {
	if s == nil || s.Graph == nil {
		return nil, structuralErr("scene has no neuron graph")
	}
	b, err := dot.Marshal(s.Graph, s.Kind.String(), "", "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s graph: %w", s.Kind, err)
	}
	return b, nil
}
