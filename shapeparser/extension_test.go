package shapeparser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/shaclc/graph/graphmock"
	"github.com/cayleygraph/shaclc/quad"
	"github.com/cayleygraph/shaclc/shape"
	"github.com/cayleygraph/shaclc/voc/rdf"
	"github.com/cayleygraph/shaclc/voc/sh"
)

func TestRegisterConstraintComponentIsExercisedByParse(t *testing.T) {
	pred := quad.IRI("http://ex.org/vocab#customMarker")
	defer delete(extComponents, pred)

	RegisterConstraintComponent(pred, func(ec *ExtractContext) ([]shape.Node, error) {
		vals, err := ec.Objects(pred)
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			return nil, nil
		}
		return []shape.Node{shape.HasValue{Value: vals[0]}}, nil
	})

	store := graphmock.New(nil)
	ns := quad.IRI("http://ex.org/CustomShape")
	marker := quad.String("stamped")
	store.AddQuad(quadOf(ns, full(rdf.Type), full(sh.NodeShape)))
	store.AddQuad(quadOf(ns, pred, marker))

	def, err := parseNodeShape(context.Background(), store, ns)
	require.NoError(t, err)

	and, ok := def.(shape.And)
	require.True(t, ok)
	var found bool
	for _, n := range and.Shapes {
		if hv, ok := n.(shape.HasValue); ok && hv.Value == quad.Value(marker) {
			found = true
		}
	}
	assert.True(t, found, "expected the registered extension's HasValue to appear in the parsed conjunction")
}
