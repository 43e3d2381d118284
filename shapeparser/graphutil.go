package shapeparser

import (
	"context"

	"github.com/cayleygraph/shaclc/graph"
	"github.com/cayleygraph/shaclc/quad"
)

// objects returns the objects of every (s, p, ?) triple in g.
func objects(ctx context.Context, g graph.GraphPort, s quad.Value, p quad.IRI) ([]quad.Value, error) {
	cur, err := g.Quads(ctx, s, p.Full(), nil, nil)
	if err != nil {
		return nil, err
	}
	defer cur.Close()
	var out []quad.Value
	for cur.Next(ctx) {
		out = append(out, cur.Quad().Object)
	}
	return out, cur.Err()
}

// objectsOf returns the objects of every (?, p, ?) triple in g,
// regardless of subject.
func objectsOf(ctx context.Context, g graph.GraphPort, p quad.IRI) ([]quad.Value, error) {
	cur, err := g.Quads(ctx, nil, p.Full(), nil, nil)
	if err != nil {
		return nil, err
	}
	defer cur.Close()
	var out []quad.Value
	for cur.Next(ctx) {
		out = append(out, cur.Quad().Object)
	}
	return out, cur.Err()
}

// subjects returns the subjects of every (?, p, o) triple in g.
func subjects(ctx context.Context, g graph.GraphPort, p quad.IRI, o quad.Value) ([]quad.Value, error) {
	cur, err := g.Quads(ctx, nil, p.Full(), o, nil)
	if err != nil {
		return nil, err
	}
	defer cur.Close()
	var out []quad.Value
	for cur.Next(ctx) {
		out = append(out, cur.Quad().Subject)
	}
	return out, cur.Err()
}

// subjectsWithPred returns the subjects of every (?, p, ?) triple in g,
// regardless of object.
func subjectsWithPred(ctx context.Context, g graph.GraphPort, p quad.IRI) ([]quad.Value, error) {
	return subjects(ctx, g, p, nil)
}

// hasTriple reports whether (s, p, o) holds in g.
func hasTriple(ctx context.Context, g graph.GraphPort, s quad.Value, p quad.IRI, o quad.Value) (bool, error) {
	return g.HasQuad(ctx, s, p.Full(), o, nil)
}
