package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/shaclc/graph/graphmock"
	"github.com/cayleygraph/shaclc/quad"
	"github.com/cayleygraph/shaclc/voc/rdf"
	"github.com/cayleygraph/shaclc/voc/sh"
)

func full(iri string) quad.IRI { return quad.IRI(iri).Full() }

func quadOf(s, p, o quad.Value) quad.Quad { return quad.Quad{Subject: s, Predicate: p, Object: o} }

func TestServeConformanceReturnsPerShapeReport(t *testing.T) {
	store := graphmock.New(nil)

	person := quad.IRI("http://ex.org/Person")
	p1 := quad.IRI("http://ex.org/p1")
	store.AddQuad(quadOf(p1, full(rdf.Type), person))

	ns := quad.IRI("http://ex.org/PersonShape")
	store.AddQuad(quadOf(ns, full(rdf.Type), full(sh.NodeShape)))
	store.AddQuad(quadOf(ns, full(sh.TargetClass), person))

	api := New(store)

	req := httptest.NewRequest(http.MethodPost, "/conformance", nil)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out conformanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Empty(t, out.ParseWarnings)

	report, ok := out.Shapes[ns.Full().String()]
	require.True(t, ok)
	assert.Empty(t, report.Error)
	assert.Contains(t, report.Conforming, quad.Value(p1).String())
}

// A malformed shape (a sh:property with no sh:path) is skipped by
// shapeparser.Parse rather than failing the whole request, per §7's
// recovery policy; the handler still returns 200, reports the shapes
// that did parse (ns, which only references ps by id), and surfaces the
// failure as a parse warning rather than a 4xx.
func TestServeConformanceSkipsMalformedShapeInsteadOfFailing(t *testing.T) {
	store := graphmock.New(nil)
	ps := quad.BlankId("badprop")
	ns := quad.IRI("http://ex.org/BadShape")
	store.AddQuad(quadOf(ns, full(rdf.Type), full(sh.NodeShape)))
	store.AddQuad(quadOf(ns, full(sh.Property), ps))

	api := New(store)
	req := httptest.NewRequest(http.MethodPost, "/conformance", nil)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out conformanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out.ParseWarnings)

	_, ok := out.Shapes[ns.Full().String()]
	assert.True(t, ok)
}
