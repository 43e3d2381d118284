package shapeparser

import (
	"context"

	"github.com/cayleygraph/shaclc/graph"
	"github.com/cayleygraph/shaclc/path"
	"github.com/cayleygraph/shaclc/quad"
	"github.com/cayleygraph/shaclc/shape"
	"github.com/cayleygraph/shaclc/voc/sh"
)

// valueParse ports _value_parse: one HasValue per sh:hasValue object.
func valueParse(ctx context.Context, g graph.GraphPort, shapeName quad.Value) ([]shape.Node, error) {
	vals, err := objects(ctx, g, shapeName, sh.HasValue)
	if err != nil {
		return nil, err
	}
	out := make([]shape.Node, len(vals))
	for i, v := range vals {
		out[i] = tagged(shape.HasValue{Value: v}, sh.HasValueConstraintComponent)
	}
	return out, nil
}

// inParse ports _in_parse: sh:in names an RDF list of allowed values,
// read as the disjunction of their HasValue tests.
func inParse(ctx context.Context, g graph.GraphPort, shapeName quad.Value) ([]shape.Node, error) {
	lists, err := objects(ctx, g, shapeName, sh.In)
	if err != nil || len(lists) == 0 {
		return nil, err
	}
	members, err := g.List(ctx, lists[0])
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}
	branches := make([]shape.Node, len(members))
	for i, m := range members {
		branches[i] = shape.HasValue{Value: m}
	}
	return []shape.Node{tagged(shape.Or{Shapes: branches}, sh.InConstraintComponent)}, nil
}

// closedParse ports _closed_parse: only emits a constraint when
// sh:closed is explicitly true, collecting sh:ignoredProperties plus the
// plain-IRI sh:path of every sibling property shape (a compound path
// can't be named as a single allowed edge, so it's excluded, matching
// the Python original).
func closedParse(ctx context.Context, g graph.GraphPort, shapeName quad.Value) ([]shape.Node, error) {
	closed, err := hasTriple(ctx, g, shapeName, sh.Closed, quad.Bool(true))
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, nil
	}

	var paths []path.Node

	ignoredLists, err := objects(ctx, g, shapeName, sh.IgnoredProperties)
	if err != nil {
		return nil, err
	}
	for _, l := range ignoredLists {
		members, err := g.List(ctx, l)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			if iri, ok := m.(quad.IRI); ok {
				paths = append(paths, path.Prop{Pred: iri})
			}
		}
	}

	propShapes, err := objects(ctx, g, shapeName, sh.Property)
	if err != nil {
		return nil, err
	}
	for _, ps := range propShapes {
		pathTerms, err := objects(ctx, g, ps, sh.Path)
		if err != nil {
			return nil, err
		}
		for _, pt := range pathTerms {
			if iri, ok := pt.(quad.IRI); ok {
				paths = append(paths, path.Prop{Pred: iri})
			}
		}
	}

	return []shape.Node{tagged(shape.Closed{Paths: paths}, sh.ClosedConstraintComponent)}, nil
}

// pairParse ports _pair_parse: the four binary path-comparison
// constraints, each evaluated between p (the host shape's own path, or
// path.Id{} for a node shape) and the declared sibling path.
func pairParse(ctx context.Context, g graph.GraphPort, p path.Node, shapeName quad.Value) ([]shape.Node, error) {
	var out []shape.Node

	build := func(pred string, component string, make func(p1, p2 path.Node) shape.Node) error {
		others, err := objects(ctx, g, shapeName, quad.IRI(pred))
		if err != nil {
			return err
		}
		for _, o := range others {
			p2, err := path.Parse(ctx, g, o)
			if err != nil {
				return err
			}
			out = append(out, tagged(make(p, p2), component))
		}
		return nil
	}

	if err := build(sh.Equals, sh.EqualsConstraintComponent, func(p1, p2 path.Node) shape.Node {
		return shape.Eq{P1: p1, P2: p2}
	}); err != nil {
		return nil, err
	}
	if err := build(sh.Disjoint, sh.DisjointConstraintComponent, func(p1, p2 path.Node) shape.Node {
		return shape.Disj{P1: p1, P2: p2}
	}); err != nil {
		return nil, err
	}
	if err := build(sh.LessThan, sh.LessThanConstraintComponent, func(p1, p2 path.Node) shape.Node {
		return shape.LessThan{P1: p1, P2: p2}
	}); err != nil {
		return nil, err
	}
	if err := build(sh.LessThanOrEquals, sh.LessThanOrEqualsConstraintComponent, func(p1, p2 path.Node) shape.Node {
		return shape.LessThanEq{P1: p1, P2: p2}
	}); err != nil {
		return nil, err
	}

	return out, nil
}
