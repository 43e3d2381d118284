package shapeparser

import (
	"context"

	"github.com/cayleygraph/shaclc/graph"
	"github.com/cayleygraph/shaclc/quad"
	"github.com/cayleygraph/shaclc/shape"
	"github.com/cayleygraph/shaclc/voc/sh"
)

func tagged(n shape.Node, component string) shape.Node {
	return shape.WithTag(n, shape.Provenance{Component: quad.IRI(component)})
}

// shapeLinksParse ports _shape_parse: sh:node and sh:property objects
// each denote a shape reference to be conjoined with the host shape's
// own constraints.
func shapeLinksParse(ctx context.Context, g graph.GraphPort, shapeName quad.Value) ([]shape.Node, error) {
	var out []shape.Node

	nodes, err := objects(ctx, g, shapeName, sh.Node)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		out = append(out, tagged(shape.HasShape{ID: n}, sh.NodeConstraintComponent))
	}

	props, err := objects(ctx, g, shapeName, sh.Property)
	if err != nil {
		return nil, err
	}
	for _, p := range props {
		out = append(out, tagged(shape.HasShape{ID: p}, sh.PropertyConstraintComponent))
	}

	return out, nil
}

// logicParse ports _logic_parse: sh:not, sh:and, sh:or and sh:xone.
func logicParse(ctx context.Context, g graph.GraphPort, shapeName quad.Value) ([]shape.Node, error) {
	var out []shape.Node

	nots, err := objects(ctx, g, shapeName, sh.Not)
	if err != nil {
		return nil, err
	}
	for _, n := range nots {
		out = append(out, tagged(shape.Not{Shape: shape.HasShape{ID: n}}, sh.NotConstraintComponent))
	}

	if ands, err := parseShapeList(ctx, g, shapeName, sh.And); err != nil {
		return nil, err
	} else if ands != nil {
		out = append(out, tagged(shape.And{Shapes: ands}, sh.AndConstraintComponent))
	}

	if ors, err := parseShapeList(ctx, g, shapeName, sh.Or); err != nil {
		return nil, err
	} else if ors != nil {
		out = append(out, tagged(shape.Or{Shapes: ors}, sh.OrConstraintComponent))
	}

	xoneMembers, err := objects(ctx, g, shapeName, sh.Xone)
	if err != nil {
		return nil, err
	}
	for _, l := range xoneMembers {
		members, err := g.List(ctx, l)
		if err != nil {
			return nil, err
		}
		var branches []shape.Node
		for _, m := range members {
			conj := []shape.Node{shape.HasShape{ID: m}}
			for _, sib := range members {
				if sib == m {
					continue
				}
				conj = append(conj, shape.Not{Shape: shape.HasShape{ID: sib}})
			}
			branches = append(branches, shape.And{Shapes: conj})
		}
		if len(branches) > 0 {
			out = append(out, tagged(shape.Or{Shapes: branches}, sh.XoneConstraintComponent))
		}
	}

	return out, nil
}

// parseShapeList reads the RDF list found as the sole object of
// (shapeName, pred, ?) and returns one HasShape per member; nil if
// shapeName carries no pred.
func parseShapeList(ctx context.Context, g graph.GraphPort, shapeName quad.Value, pred string) ([]shape.Node, error) {
	lists, err := objects(ctx, g, shapeName, quad.IRI(pred))
	if err != nil || len(lists) == 0 {
		return nil, err
	}
	members, err := g.List(ctx, lists[0])
	if err != nil {
		return nil, err
	}
	out := make([]shape.Node, len(members))
	for i, m := range members {
		out[i] = shape.HasShape{ID: m}
	}
	return out, nil
}
