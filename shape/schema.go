package shape

import "github.com/cayleygraph/shaclc/quad"

// Schema is the output of the shape parser: a constraint tree and a
// target tree for every shape discovered in a shapes-graph, keyed by the
// shape's identifier (an IRI or a BlankId).
type Schema struct {
	Definitions map[quad.Value]Node
	Targets     map[quad.Value]Node
}

// NewSchema returns an empty Schema ready to be populated.
func NewSchema() *Schema {
	return &Schema{
		Definitions: make(map[quad.Value]Node),
		Targets:     make(map[quad.Value]Node),
	}
}

// Lookup resolves id against Definitions, returning Top and false per the
// "unknown shape reference is never a hard error" invariant when id is
// not defined.
func (s *Schema) Lookup(id quad.Value) (Node, bool) {
	n, ok := s.Definitions[id]
	if !ok {
		return Top{}, false
	}
	return n, true
}
