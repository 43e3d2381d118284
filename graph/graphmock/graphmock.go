// Package graphmock is an in-memory GraphPort reference implementation:
// a flat quad slice for the scan/membership/list half of the interface,
// and a small interpreter for the unary-query text QueryLowering emits,
// for the half that exercises a real query engine. It exists so the
// compiler's end-to-end behavior (§8's conformance scenarios) can be
// tested without a real triple store.
package graphmock

import (
	"context"
	"fmt"

	"github.com/cayleygraph/shaclc/graph"
	"github.com/cayleygraph/shaclc/quad"
	"github.com/cayleygraph/shaclc/voc/rdf"
)

var (
	rdfFirst = quad.IRI(rdf.First).Full()
	rdfRest  = quad.IRI(rdf.Rest).Full()
	rdfNil   = quad.IRI(rdf.Nil).Full()
)

// Store is an in-memory GraphPort backed by a flat quad slice.
type Store struct {
	quads []quad.Quad
}

// New returns a Store holding a copy of quads.
func New(quads []quad.Quad) *Store {
	s := &Store{quads: make([]quad.Quad, len(quads))}
	copy(s.quads, quads)
	return s
}

// AddQuad appends a single quad to the store.
func (s *Store) AddQuad(q quad.Quad) { s.quads = append(s.quads, q) }

func matchTerm(pattern, actual quad.Value) bool {
	return pattern == nil || pattern == actual
}

func (s *Store) scan(sub, pred, obj, label quad.Value) []quad.Quad {
	var out []quad.Quad
	for _, q := range s.quads {
		if matchTerm(sub, q.Subject) && matchTerm(pred, q.Predicate) &&
			matchTerm(obj, q.Object) && matchTerm(label, q.Label) {
			out = append(out, q)
		}
	}
	return out
}

// Quads implements graph.GraphPort.
func (s *Store) Quads(ctx context.Context, sub, pred, obj, label quad.Value) (graph.Cursor, error) {
	return &cursor{quads: s.scan(sub, pred, obj, label), pos: -1}, nil
}

// HasQuad implements graph.GraphPort.
func (s *Store) HasQuad(ctx context.Context, sub, pred, obj, label quad.Value) (bool, error) {
	return len(s.scan(sub, pred, obj, label)) > 0, nil
}

// List implements graph.GraphPort, walking an rdf:first/rdf:rest chain.
func (s *Store) List(ctx context.Context, head quad.Value) ([]quad.Value, error) {
	var out []quad.Value
	cur := head
	for {
		if cur == quad.Value(rdfNil) {
			return out, nil
		}
		firsts := s.scan(cur, rdfFirst, nil, nil)
		if len(firsts) == 0 {
			if len(out) == 0 {
				return nil, graph.ErrEmptyList
			}
			return out, nil
		}
		out = append(out, firsts[0].Object)
		rests := s.scan(cur, rdfRest, nil, nil)
		if len(rests) == 0 {
			return out, nil
		}
		cur = rests[0].Object
	}
}

// Query implements graph.GraphPort by interpreting unaryQuery with the
// evaluator in query.go.
func (s *Store) Query(ctx context.Context, unaryQuery string) ([]quad.Value, error) {
	q, err := parseQuery(unaryQuery)
	if err != nil {
		return nil, fmt.Errorf("graphmock: %w", err)
	}
	rows, err := evalQuery(s, q)
	if err != nil {
		return nil, fmt.Errorf("graphmock: %w", err)
	}
	seen := make(map[quad.Value]bool, len(rows))
	var out []quad.Value
	for _, r := range rows {
		v := r[q.ProjVar]
		if v == nil || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, nil
}

// nodes returns every distinct term occupying a subject or object
// position: the start points tried when a path triple pattern has
// neither its subject nor its object bound.
func (s *Store) nodes() []quad.Value {
	seen := make(map[quad.Value]bool)
	var out []quad.Value
	add := func(v quad.Value) {
		if v != nil && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, q := range s.quads {
		add(q.Subject)
		add(q.Object)
	}
	return out
}

type cursor struct {
	quads []quad.Quad
	pos   int
}

func (c *cursor) Next(ctx context.Context) bool { c.pos++; return c.pos < len(c.quads) }
func (c *cursor) Quad() quad.Quad               { return c.quads[c.pos] }
func (c *cursor) Err() error                    { return nil }
func (c *cursor) Close() error                  { return nil }
