package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cayleygraph/shaclc/path"
	"github.com/cayleygraph/shaclc/quad"
	"github.com/cayleygraph/shaclc/shape"
)

var knows = path.Prop{Pred: quad.IRI("http://ex.org/knows")}

func ptr(i int) *int { return &i }

func TestExpandResolvesHasShape(t *testing.T) {
	defs := map[quad.Value]shape.Node{
		quad.IRI("http://ex.org/S"): shape.Test{Kind: shape.Datatype{D: quad.IRI("xsd:string")}},
	}
	got := Expand(defs, shape.HasShape{ID: quad.IRI("http://ex.org/S")})
	assert.True(t, got.Equal(shape.Test{Kind: shape.Datatype{D: quad.IRI("xsd:string")}}))
}

func TestExpandUnknownReferenceBecomesTop(t *testing.T) {
	defs := map[quad.Value]shape.Node{}
	got := Expand(defs, shape.HasShape{ID: quad.IRI("http://ex.org/missing")})
	assert.True(t, got.Equal(shape.Top{}))
}

func TestExpandBreaksCycles(t *testing.T) {
	a := quad.IRI("http://ex.org/A")
	b := quad.IRI("http://ex.org/B")
	defs := map[quad.Value]shape.Node{
		a: shape.HasShape{ID: b},
		b: shape.HasShape{ID: a},
	}
	got := Expand(defs, shape.HasShape{ID: a})
	assert.True(t, got.Equal(shape.Top{}))
}

func TestExpandContainsNoHasShape(t *testing.T) {
	defs := map[quad.Value]shape.Node{
		quad.IRI("http://ex.org/S"): shape.Top{},
	}
	n := shape.And{Shapes: []shape.Node{
		shape.HasShape{ID: quad.IRI("http://ex.org/S")},
		shape.Test{Kind: shape.NodeKind{Kinds: shape.KindIRI}},
	}}
	got := Expand(defs, n)
	assert.True(t, got.Equal(shape.And{Shapes: []shape.Node{
		shape.Top{},
		shape.Test{Kind: shape.NodeKind{Kinds: shape.KindIRI}},
	}}))
}

func TestExpandIsIdempotentOnExpandedTree(t *testing.T) {
	defs := map[quad.Value]shape.Node{}
	n := shape.Forall{Path: knows, Shape: shape.Test{Kind: shape.NodeKind{Kinds: shape.KindIRI}}}
	once := Expand(defs, n)
	twice := Expand(defs, once)
	assert.True(t, once.Equal(twice))
}

func TestCleanNotTopBecomesBot(t *testing.T) {
	assert.True(t, Clean(shape.Not{Shape: shape.Top{}}, false).Equal(shape.Bot{}))
}

func TestCleanNotBotBecomesTop(t *testing.T) {
	assert.True(t, Clean(shape.Not{Shape: shape.Bot{}}, false).Equal(shape.Top{}))
}

func TestCleanAndWithBotIsBot(t *testing.T) {
	n := shape.And{Shapes: []shape.Node{shape.Top{}, shape.Bot{}}}
	assert.True(t, Clean(n, false).Equal(shape.Bot{}))
}

func TestCleanAndDropsTopAndCollapsesSingleton(t *testing.T) {
	test := shape.Test{Kind: shape.NodeKind{Kinds: shape.KindIRI}}
	n := shape.And{Shapes: []shape.Node{shape.Top{}, test}}
	assert.True(t, Clean(n, false).Equal(test))
}

func TestCleanEmptyAndIsTop(t *testing.T) {
	n := shape.And{Shapes: []shape.Node{shape.Top{}, shape.Top{}}}
	assert.True(t, Clean(n, false).Equal(shape.Top{}))
}

func TestCleanOrWithTopIsTop(t *testing.T) {
	n := shape.Or{Shapes: []shape.Node{shape.Bot{}, shape.Top{}}}
	assert.True(t, Clean(n, false).Equal(shape.Top{}))
}

func TestCleanEmptyOrIsBot(t *testing.T) {
	n := shape.Or{Shapes: []shape.Node{shape.Bot{}, shape.Bot{}}}
	assert.True(t, Clean(n, false).Equal(shape.Bot{}))
}

func TestCleanForallTopIsTop(t *testing.T) {
	n := shape.Forall{Path: knows, Shape: shape.Top{}}
	assert.True(t, Clean(n, false).Equal(shape.Top{}))
}

func TestCleanForallBotIsZeroCountRange(t *testing.T) {
	n := shape.Forall{Path: knows, Shape: shape.Bot{}}
	want := shape.CountRange{Min: 0, Max: ptr(0), Path: knows, Shape: shape.Top{}}
	assert.True(t, Clean(n, false).Equal(want))
}

func TestCleanCountRangeBotZeroMinIsTop(t *testing.T) {
	n := shape.CountRange{Min: 0, Max: nil, Path: knows, Shape: shape.Bot{}}
	assert.True(t, Clean(n, false).Equal(shape.Top{}))
}

func TestCleanCountRangeBotNonZeroMinIsBot(t *testing.T) {
	n := shape.CountRange{Min: 1, Max: nil, Path: knows, Shape: shape.Bot{}}
	assert.True(t, Clean(n, false).Equal(shape.Bot{}))
}

func TestCleanFullModePreservesTaggedNode(t *testing.T) {
	tag := shape.Provenance{Component: quad.IRI("http://ex.org/sh#DatatypeConstraintComponent")}
	n := shape.WithTag(shape.And{Shapes: []shape.Node{shape.Top{}}}, tag)
	got := Clean(n, true)
	assert.True(t, got.Equal(n))
	assert.Equal(t, tag, got.Prov())
}

func TestCleanIsIdempotent(t *testing.T) {
	n := shape.And{Shapes: []shape.Node{
		shape.Not{Shape: shape.Top{}},
		shape.Forall{Path: knows, Shape: shape.Top{}},
	}}
	once := Clean(n, false)
	twice := Clean(once, false)
	assert.True(t, once.Equal(twice))
}

func TestNNFDeMorganOnAnd(t *testing.T) {
	a := shape.Test{Kind: shape.NodeKind{Kinds: shape.KindIRI}}
	b := shape.Test{Kind: shape.NodeKind{Kinds: shape.KindBlank}}
	n := shape.Not{Shape: shape.And{Shapes: []shape.Node{a, b}}}
	want := shape.Or{Shapes: []shape.Node{
		shape.Not{Shape: a},
		shape.Not{Shape: b},
	}}
	assert.True(t, NNF(n).Equal(want))
}

func TestNNFDeMorganOnOr(t *testing.T) {
	a := shape.Test{Kind: shape.NodeKind{Kinds: shape.KindIRI}}
	b := shape.Test{Kind: shape.NodeKind{Kinds: shape.KindBlank}}
	n := shape.Not{Shape: shape.Or{Shapes: []shape.Node{a, b}}}
	want := shape.And{Shapes: []shape.Node{
		shape.Not{Shape: a},
		shape.Not{Shape: b},
	}}
	assert.True(t, NNF(n).Equal(want))
}

func TestNNFDoubleNegationCancels(t *testing.T) {
	a := shape.Test{Kind: shape.NodeKind{Kinds: shape.KindIRI}}
	n := shape.Not{Shape: shape.Not{Shape: a}}
	assert.True(t, NNF(n).Equal(a))
}

func TestNNFNotForallBecomesCountRange(t *testing.T) {
	s := shape.Test{Kind: shape.NodeKind{Kinds: shape.KindIRI}}
	n := shape.Not{Shape: shape.Forall{Path: knows, Shape: s}}
	want := shape.CountRange{Min: 1, Max: nil, Path: knows, Shape: shape.Not{Shape: s}}
	assert.True(t, NNF(n).Equal(want))
}

func TestNNFNotCountRangeSplitsIntoComplementaryBranches(t *testing.T) {
	s := shape.Test{Kind: shape.NodeKind{Kinds: shape.KindIRI}}
	n := shape.Not{Shape: shape.CountRange{Min: 1, Max: ptr(3), Path: knows, Shape: s}}
	want := shape.Or{Shapes: []shape.Node{
		shape.CountRange{Min: 4, Max: nil, Path: knows, Shape: shape.Not{Shape: s}},
		shape.CountRange{Min: 0, Max: ptr(0), Path: knows, Shape: shape.Not{Shape: s}},
	}}
	assert.True(t, NNF(n).Equal(want))
}

func TestNNFNotCountRangeUnboundedMaxOmitsUpperBranch(t *testing.T) {
	s := shape.Test{Kind: shape.NodeKind{Kinds: shape.KindIRI}}
	n := shape.Not{Shape: shape.CountRange{Min: 1, Max: nil, Path: knows, Shape: s}}
	want := shape.Or{Shapes: []shape.Node{
		shape.CountRange{Min: 0, Max: ptr(0), Path: knows, Shape: shape.Not{Shape: s}},
	}}
	assert.True(t, NNF(n).Equal(want))
}

func TestNNFNotLeafIsUnchanged(t *testing.T) {
	n := shape.Not{Shape: shape.HasValue{Value: quad.IRI("http://ex.org/v")}}
	assert.True(t, NNF(n).Equal(n))
}

func TestNNFIsIdempotentOnExpandedTree(t *testing.T) {
	s := shape.Test{Kind: shape.NodeKind{Kinds: shape.KindIRI}}
	n := shape.Not{Shape: shape.Forall{Path: knows, Shape: s}}
	once := NNF(n)
	twice := NNF(once)
	assert.True(t, once.Equal(twice))
}
