package shapeparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/shaclc/quad"
)

func TestQuadsFromJSONLDExpandsDefaultGraph(t *testing.T) {
	doc := map[string]interface{}{
		"@context": map[string]interface{}{
			"knows": "http://ex.org/knows",
		},
		"@id":   "http://ex.org/alice",
		"knows": map[string]interface{}{"@id": "http://ex.org/bob"},
	}

	quads, err := QuadsFromJSONLD(doc)
	require.NoError(t, err)
	require.NotEmpty(t, quads)

	q := quads[0]
	assert.Equal(t, quad.IRI("http://ex.org/alice"), q.Subject)
	assert.Equal(t, quad.IRI("http://ex.org/knows"), q.Predicate)
	assert.Equal(t, quad.IRI("http://ex.org/bob"), q.Object)
}
