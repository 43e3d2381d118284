package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cayleygraph/shaclc/path"
	"github.com/cayleygraph/shaclc/quad"
)

func TestEqualIgnoresBlankLabel(t *testing.T) {
	a := HasValue{Value: quad.BlankId("b1")}
	b := HasValue{Value: quad.BlankId("b2")}
	assert.True(t, a.Equal(b))
}

func TestEqualDistinguishesIRIFromBlank(t *testing.T) {
	a := HasValue{Value: quad.IRI("http://ex.org/x")}
	b := HasValue{Value: quad.BlankId("b1")}
	assert.False(t, a.Equal(b))
}

func TestEqualAndOrderSensitive(t *testing.T) {
	a := And{Shapes: []Node{Top{}, Bot{}}}
	b := And{Shapes: []Node{Bot{}, Top{}}}
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(And{Shapes: []Node{Top{}, Bot{}}}))
}

func TestCountRangeUnboundedEquality(t *testing.T) {
	p := path.Prop{Pred: quad.IRI("http://ex.org/knows")}
	a := CountRange{Min: 1, Max: nil, Path: p, Shape: Top{}}
	b := CountRange{Min: 1, Max: nil, Path: p, Shape: Top{}}
	assert.True(t, a.Equal(b))

	m := 3
	c := CountRange{Min: 1, Max: &m, Path: p, Shape: Top{}}
	assert.False(t, a.Equal(c))
}

func TestWithTagRoundTrips(t *testing.T) {
	tag := Provenance{Component: quad.IRI("http://ex.org/sh#DatatypeConstraintComponent")}
	n := WithTag(Test{Kind: Datatype{D: quad.IRI("http://ex.org/xsd#string")}}, tag)
	assert.Equal(t, tag, n.Prov())

	n2 := WithTag(And{Shapes: []Node{Top{}}}, tag)
	assert.Equal(t, tag, n2.Prov())
}

func TestNodeKindSetString(t *testing.T) {
	assert.Equal(t, "IRI|Blank", (KindIRI | KindBlank).String())
}

func TestTestKindEquality(t *testing.T) {
	a := NumericRange{MinIncl: floatp(1)}
	b := NumericRange{MinIncl: floatp(1)}
	c := NumericRange{MinIncl: floatp(2)}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func floatp(f float64) *float64 { return &f }

func TestEmptyAndOrString(t *testing.T) {
	assert.Equal(t, "And()", And{}.String())
	assert.Equal(t, "Or()", Or{}.String())
}
