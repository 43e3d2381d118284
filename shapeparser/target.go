package shapeparser

import (
	"context"

	"github.com/cayleygraph/shaclc/graph"
	"github.com/cayleygraph/shaclc/path"
	"github.com/cayleygraph/shaclc/quad"
	"github.com/cayleygraph/shaclc/shape"
	"github.com/cayleygraph/shaclc/voc/rdf"
	"github.com/cayleygraph/shaclc/voc/rdfs"
	"github.com/cayleygraph/shaclc/voc/sh"
)

// parseTarget ports _target_parse: the disjunction of every declared
// target-selection rule for shapeName, Bot if it declares none.
func parseTarget(ctx context.Context, g graph.GraphPort, shapeName quad.Value) (shape.Node, error) {
	var branches []shape.Node
	classPath := path.Class(quad.IRI(rdf.Type), quad.IRI(rdfs.SubClassOf))

	nodes, err := objects(ctx, g, shapeName, sh.TargetNode)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		branches = append(branches, shape.HasValue{Value: n})
	}

	classes, err := objects(ctx, g, shapeName, sh.TargetClass)
	if err != nil {
		return nil, err
	}
	for _, c := range classes {
		branches = append(branches, shape.CountRange{Min: 1, Max: nil, Path: classPath, Shape: shape.HasValue{Value: c}})
	}

	isClass, err := hasTriple(ctx, g, shapeName, rdf.Type, quad.IRI(rdfs.Class).Full())
	if err != nil {
		return nil, err
	}
	if isClass {
		branches = append(branches, shape.CountRange{Min: 1, Max: nil, Path: classPath, Shape: shape.HasValue{Value: shapeName}})
	}

	subjOf, err := objects(ctx, g, shapeName, sh.TargetSubjectsOf)
	if err != nil {
		return nil, err
	}
	for _, p := range subjOf {
		iri, ok := p.(quad.IRI)
		if !ok {
			continue
		}
		branches = append(branches, shape.CountRange{Min: 1, Max: nil, Path: path.Prop{Pred: iri}, Shape: shape.Top{}})
	}

	objOf, err := objects(ctx, g, shapeName, sh.TargetObjectsOf)
	if err != nil {
		return nil, err
	}
	for _, p := range objOf {
		iri, ok := p.(quad.IRI)
		if !ok {
			continue
		}
		branches = append(branches, shape.CountRange{Min: 1, Max: nil, Path: path.Inv{Path: path.Prop{Pred: iri}}, Shape: shape.Top{}})
	}

	if len(branches) == 0 {
		return shape.Bot{}, nil
	}
	return shape.Or{Shapes: branches}, nil
}
