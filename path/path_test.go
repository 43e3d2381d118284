package path

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/shaclc/graph"
	"github.com/cayleygraph/shaclc/quad"
)

// memGraph is a minimal in-memory GraphPort sufficient to exercise the
// path parser: a flat quad slice plus rdf:first/rdf:rest list support.
type memGraph struct {
	quads []quad.Quad
}

func (g *memGraph) Quads(ctx context.Context, s, p, o, l quad.Value) (graph.Cursor, error) {
	var out []quad.Quad
	for _, q := range g.quads {
		if s != nil && q.Subject != s {
			continue
		}
		if p != nil && q.Predicate != p {
			continue
		}
		if o != nil && q.Object != o {
			continue
		}
		if l != nil && q.Label != l {
			continue
		}
		out = append(out, q)
	}
	return &memCursor{quads: out, pos: -1}, nil
}

func (g *memGraph) HasQuad(ctx context.Context, s, p, o, l quad.Value) (bool, error) {
	cur, err := g.Quads(ctx, s, p, o, l)
	if err != nil {
		return false, err
	}
	defer cur.Close()
	return cur.Next(ctx), nil
}

func (g *memGraph) List(ctx context.Context, head quad.Value) ([]quad.Value, error) {
	var out []quad.Value
	cur := head
	for {
		if cur == rdfNil {
			break
		}
		first, err := single(ctx, g, cur, quad.IRI(rdfFirst))
		if err != nil {
			return nil, err
		}
		if first == nil {
			return nil, graph.ErrEmptyList
		}
		out = append(out, first)
		rest, err := single(ctx, g, cur, quad.IRI(rdfRest))
		if err != nil {
			return nil, err
		}
		if rest == nil {
			break
		}
		cur = rest
	}
	return out, nil
}

func (g *memGraph) Query(ctx context.Context, unaryQuery string) ([]quad.Value, error) {
	return nil, nil
}

type memCursor struct {
	quads []quad.Quad
	pos   int
}

func (c *memCursor) Next(ctx context.Context) bool {
	c.pos++
	return c.pos < len(c.quads)
}
func (c *memCursor) Quad() quad.Quad { return c.quads[c.pos] }
func (c *memCursor) Err() error      { return nil }
func (c *memCursor) Close() error    { return nil }

const (
	rdfFirst = "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"
	rdfRest  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"
	rdfNil   = quad.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#nil")
)

func listOf(bnodePrefix string, members ...quad.Value) (quad.Value, []quad.Quad) {
	if len(members) == 0 {
		return rdfNil, nil
	}
	var quads []quad.Quad
	head := quad.BlankId(bnodePrefix + "0")
	node := quad.Value(head)
	for i, m := range members {
		quads = append(quads, quad.Quad{Subject: node, Predicate: quad.IRI(rdfFirst), Object: m})
		var next quad.Value
		if i == len(members)-1 {
			next = rdfNil
		} else {
			next = quad.BlankId(bnodePrefix + string(rune('1'+i)))
		}
		quads = append(quads, quad.Quad{Subject: node, Predicate: quad.IRI(rdfRest), Object: next})
		node = next
	}
	return head, quads
}

func TestParseProp(t *testing.T) {
	g := &memGraph{}
	n, err := Parse(context.Background(), g, quad.IRI("http://ex.org/knows"))
	require.NoError(t, err)
	assert.Equal(t, Prop{Pred: quad.IRI("http://ex.org/knows")}, n)
	assert.Equal(t, "<http://ex.org/knows>", Lower(n))
}

func TestParseInversePath(t *testing.T) {
	b := quad.BlankId("b")
	g := &memGraph{quads: []quad.Quad{
		{Subject: b, Predicate: invPathIRI, Object: quad.IRI("http://ex.org/knows")},
	}}
	n, err := Parse(context.Background(), g, b)
	require.NoError(t, err)
	assert.Equal(t, Inv{Path: Prop{Pred: quad.IRI("http://ex.org/knows")}}, n)
	assert.Equal(t, "^(<http://ex.org/knows>)", Lower(n))
}

func TestParseAlternativePath(t *testing.T) {
	p1 := quad.IRI("http://ex.org/p1")
	p2 := quad.IRI("http://ex.org/p2")
	listHead, listQuads := listOf("l", p1, p2)
	b := quad.BlankId("b")
	quads := append([]quad.Quad{
		{Subject: b, Predicate: altPathIRI, Object: listHead},
	}, listQuads...)
	g := &memGraph{quads: quads}

	n, err := Parse(context.Background(), g, b)
	require.NoError(t, err)
	assert.Equal(t, Alt{Paths: []Node{Prop{Pred: p1}, Prop{Pred: p2}}}, n)
	assert.Equal(t, "<http://ex.org/p1>|<http://ex.org/p2>", Lower(n))
}

func TestParseSequencePath(t *testing.T) {
	p1 := quad.IRI("http://ex.org/p1")
	p2 := quad.IRI("http://ex.org/p2")
	listHead, listQuads := listOf("l", p1, p2)
	g := &memGraph{quads: listQuads}

	n, err := Parse(context.Background(), g, listHead)
	require.NoError(t, err)
	assert.Equal(t, Comp{Paths: []Node{Prop{Pred: p1}, Prop{Pred: p2}}}, n)
	assert.Equal(t, "<http://ex.org/p1>/<http://ex.org/p2>", Lower(n))
}

func TestParseZeroOrMoreAndZeroOrOne(t *testing.T) {
	p := quad.IRI("http://ex.org/knows")
	bKleene := quad.BlankId("bk")
	bZero := quad.BlankId("bz")
	g := &memGraph{quads: []quad.Quad{
		{Subject: bKleene, Predicate: zeroOrMorePathIRI, Object: p},
		{Subject: bZero, Predicate: zeroOrOnePathIRI, Object: p},
	}}

	n1, err := Parse(context.Background(), g, bKleene)
	require.NoError(t, err)
	assert.Equal(t, Kleene{Path: Prop{Pred: p}}, n1)
	assert.Equal(t, "(<http://ex.org/knows>)*", Lower(n1))

	n2, err := Parse(context.Background(), g, bZero)
	require.NoError(t, err)
	assert.Equal(t, ZeroOrOne{Path: Prop{Pred: p}}, n2)
	assert.Equal(t, "(<http://ex.org/knows>)?", Lower(n2))
}

func TestIdHasNoSyntax(t *testing.T) {
	assert.True(t, IsId(Id{}))
	assert.Equal(t, "", Lower(Id{}))
}

func TestEqual(t *testing.T) {
	a := Comp{Paths: []Node{Prop{Pred: quad.IRI("p1")}, Prop{Pred: quad.IRI("p2")}}}
	b := Comp{Paths: []Node{Prop{Pred: quad.IRI("p1")}, Prop{Pred: quad.IRI("p2")}}}
	c := Comp{Paths: []Node{Prop{Pred: quad.IRI("p1")}}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestClass(t *testing.T) {
	rdfType := quad.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	subClassOf := quad.IRI("http://www.w3.org/2000/01/rdf-schema#subClassOf")
	n := Class(rdfType, subClassOf)
	assert.Equal(t, "<http://www.w3.org/1999/02/22-rdf-syntax-ns#type>/(<http://www.w3.org/2000/01/rdf-schema#subClassOf>)*", Lower(n))
}
