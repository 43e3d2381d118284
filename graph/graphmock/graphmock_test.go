package graphmock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/shaclc/lower"
	"github.com/cayleygraph/shaclc/path"
	"github.com/cayleygraph/shaclc/quad"
	"github.com/cayleygraph/shaclc/shape"
)

const (
	knows = quad.IRI("http://ex.org/knows")
	name  = quad.IRI("http://ex.org/name")
	age   = quad.IRI("http://ex.org/age")
	lang  = quad.IRI("http://ex.org/lang")
)

func sampleStore() *Store {
	return New([]quad.Quad{
		{Subject: quad.IRI("http://ex.org/alice"), Predicate: knows, Object: quad.IRI("http://ex.org/bob")},
		{Subject: quad.IRI("http://ex.org/bob"), Predicate: knows, Object: quad.IRI("http://ex.org/carol")},
		{Subject: quad.IRI("http://ex.org/alice"), Predicate: name, Object: quad.String("Alice")},
		{Subject: quad.IRI("http://ex.org/bob"), Predicate: name, Object: quad.String("Bob")},
		{Subject: quad.IRI("http://ex.org/carol"), Predicate: age, Object: quad.Int(41)},
		{Subject: quad.IRI("http://ex.org/dave"), Predicate: lang, Object: quad.LangString{Value: "hello", Lang: "en"}},
		{Subject: quad.IRI("http://ex.org/dave"), Predicate: lang, Object: quad.LangString{Value: "hi", Lang: "en"}},
	})
}

func runShape(t *testing.T, s *Store, n shape.Node) []quad.Value {
	t.Helper()
	q, err := lower.Lower(n)
	require.NoError(t, err)
	vals, err := s.Query(context.Background(), q)
	require.NoError(t, err)
	return vals
}

func TestAllQueryCoversEveryNode(t *testing.T) {
	s := sampleStore()
	vals := runShape(t, s, shape.Top{})
	assert.Contains(t, vals, quad.Value(quad.IRI("http://ex.org/alice")))
	assert.Contains(t, vals, quad.Value(quad.IRI("http://ex.org/bob")))
	assert.Contains(t, vals, quad.Value(quad.IRI("http://ex.org/carol")))
}

func TestBotQueryIsEmpty(t *testing.T) {
	s := sampleStore()
	vals := runShape(t, s, shape.Bot{})
	assert.Empty(t, vals)
}

func TestForwardPropPath(t *testing.T) {
	s := sampleStore()
	n := shape.CountRange{
		Min:   1,
		Max:   nil,
		Path:  path.Prop{Pred: knows},
		Shape: shape.HasValue{Value: quad.IRI("http://ex.org/bob")},
	}
	vals := runShape(t, s, n)
	assert.Contains(t, vals, quad.Value(quad.IRI("http://ex.org/alice")))
	assert.NotContains(t, vals, quad.Value(quad.IRI("http://ex.org/bob")))
}

func TestInversePropPath(t *testing.T) {
	s := sampleStore()
	n := shape.CountRange{
		Min:   1,
		Max:   nil,
		Path:  path.Inv{Path: path.Prop{Pred: knows}},
		Shape: shape.HasValue{Value: quad.IRI("http://ex.org/alice")},
	}
	vals := runShape(t, s, n)
	assert.Contains(t, vals, quad.Value(quad.IRI("http://ex.org/bob")))
}

func TestCompositionPath(t *testing.T) {
	s := sampleStore()
	// alice -knows/knows-> carol
	n := shape.CountRange{
		Min:  1,
		Max:  nil,
		Path: path.Comp{Paths: []path.Node{path.Prop{Pred: knows}, path.Prop{Pred: knows}}},
		Shape: shape.HasValue{Value: quad.IRI("http://ex.org/carol")},
	}
	vals := runShape(t, s, n)
	assert.Contains(t, vals, quad.Value(quad.IRI("http://ex.org/alice")))
}

func TestClosedRejectsUndeclaredProperty(t *testing.T) {
	s := sampleStore()
	n := shape.Closed{Paths: []path.Node{path.Prop{Pred: knows}}}
	vals := runShape(t, s, n)
	// alice, bob and carol all have at least one property beyond "knows".
	assert.NotContains(t, vals, quad.Value(quad.IRI("http://ex.org/alice")))
	assert.NotContains(t, vals, quad.Value(quad.IRI("http://ex.org/bob")))
	assert.NotContains(t, vals, quad.Value(quad.IRI("http://ex.org/carol")))
}

func TestTestDatatypeFilter(t *testing.T) {
	s := sampleStore()
	n := shape.Forall{
		Path:  path.Prop{Pred: age},
		Shape: shape.Test{Kind: shape.Datatype{D: quad.IRI("http://www.w3.org/2001/XMLSchema#integer")}},
	}
	vals := runShape(t, s, n)
	assert.Contains(t, vals, quad.Value(quad.IRI("http://ex.org/carol")))
}

func TestUniqueLangViolation(t *testing.T) {
	s := sampleStore()
	n := shape.UniqueLang{Path: path.Prop{Pred: lang}}
	vals := runShape(t, s, n)
	assert.NotContains(t, vals, quad.Value(quad.IRI("http://ex.org/dave")))
}

func TestHasValueBind(t *testing.T) {
	s := sampleStore()
	n := shape.HasValue{Value: quad.IRI("http://ex.org/alice")}
	vals := runShape(t, s, n)
	assert.Equal(t, []quad.Value{quad.IRI("http://ex.org/alice")}, vals)
}

func TestListWalksRDFList(t *testing.T) {
	head := quad.BlankId("l0")
	mid := quad.BlankId("l1")
	s := New([]quad.Quad{
		{Subject: head, Predicate: rdfFirstIRI(), Object: quad.IRI("http://ex.org/a")},
		{Subject: head, Predicate: rdfRestIRI(), Object: mid},
		{Subject: mid, Predicate: rdfFirstIRI(), Object: quad.IRI("http://ex.org/b")},
		{Subject: mid, Predicate: rdfRestIRI(), Object: rdfNilValue()},
	})
	vals, err := s.List(context.Background(), head)
	require.NoError(t, err)
	assert.Equal(t, []quad.Value{quad.IRI("http://ex.org/a"), quad.IRI("http://ex.org/b")}, vals)
}

func rdfFirstIRI() quad.Value { return rdfFirst }
func rdfRestIRI() quad.Value  { return rdfRest }
func rdfNilValue() quad.Value { return rdfNil }
