// Package shapeparser implements ShapeParser (§4.2): it walks a
// shapes-graph through a graph.GraphPort and produces the two maps
// TreeRewriter and QueryLowering consume — a constraint tree and a
// target tree per discovered shape. Ported directly from
// original_source/slsparser/shapels.py, restructured around
// shape.Node/shape.TestKind's constructors instead of shapels.py's
// untyped Op-tagged SANode payloads.
package shapeparser

import (
	"context"
	"errors"
	"fmt"

	"github.com/cayleygraph/shaclc/graph"
	"github.com/cayleygraph/shaclc/path"
	"github.com/cayleygraph/shaclc/quad"
	"github.com/cayleygraph/shaclc/rewrite"
	"github.com/cayleygraph/shaclc/shape"
	"github.com/cayleygraph/shaclc/voc/rdf"
	"github.com/cayleygraph/shaclc/voc/sh"
)

// Options controls Parse's behavior.
type Options struct {
	// Full threads the full-mode provenance flag into rewrite.Clean:
	// when set, any node tagged with a constraint component is returned
	// unrewritten, matching shapels.py's parse(graph, full=True) default.
	Full bool
}

// ParseError names the shape whose definition could not be parsed, per
// §7's "Malformed shape definition" error kind (a property-shape with no
// sh:path, most commonly).
type ParseError struct {
	Shape quad.Value
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("shapeparser: shape %v: %s", e.Shape, e.Msg)
}

// Parse walks every node-shape and property-shape reachable from g and
// returns a Schema holding their constraint and target trees, both
// already passed through rewrite.Clean(opts.Full).
//
// A malformed individual shape does not abort the walk: it is omitted
// from the returned Schema and its error is folded into the returned
// error via errors.Join, matching §7's "parsing collects all shapes it
// can" recovery policy. Spec.md's divergence from shapels.py here: the
// original only runs clean_parsetree over definitions, never targets;
// §4.2 explicitly calls for both trees to pass through TreeRewriter, so
// Parse cleans both (see DESIGN.md).
func Parse(ctx context.Context, g graph.GraphPort, opts Options) (*shape.Schema, error) {
	schema := shape.NewSchema()
	var errs []error

	nodeShapes, err := extractNodeShapes(ctx, g)
	if err != nil {
		return nil, err
	}
	for _, ns := range nodeShapes {
		def, err := parseNodeShape(ctx, g, ns)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tgt, err := parseTarget(ctx, g, ns)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		schema.Definitions[ns] = rewrite.Clean(def, opts.Full)
		schema.Targets[ns] = rewrite.Clean(tgt, opts.Full)
	}

	propShapes, err := extractPropertyShapes(ctx, g)
	if err != nil {
		return nil, err
	}
	for _, ps := range propShapes {
		def, err := parsePropertyShape(ctx, g, ps)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tgt, err := parseTarget(ctx, g, ps)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		schema.Definitions[ps] = rewrite.Clean(def, opts.Full)
		schema.Targets[ps] = rewrite.Clean(tgt, opts.Full)
	}

	return schema, errors.Join(errs...)
}

// extractNodeShapes discovers every term treated as a node shape: a
// declared sh:NodeShape, the object of a sh:node/sh:qualifiedValueShape/
// sh:not link, or a member of a sh:and/sh:or/sh:xone list that itself
// carries no sh:path (a path-bearing member is a property-shape
// reference instead). Ported from _extract_nodeshapes.
func extractNodeShapes(ctx context.Context, g graph.GraphPort) ([]quad.Value, error) {
	var out []quad.Value

	declared, err := subjects(ctx, g, rdf.Type, quad.IRI(sh.NodeShape).Full())
	if err != nil {
		return nil, err
	}
	out = append(out, declared...)

	for _, pred := range []quad.IRI{sh.Node, sh.QualifiedValueShape, sh.Not} {
		vs, err := objectsOf(ctx, g, pred)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}

	var lists []quad.Value
	for _, pred := range []quad.IRI{sh.Or, sh.And, sh.Xone} {
		vs, err := objectsOf(ctx, g, pred)
		if err != nil {
			return nil, err
		}
		lists = append(lists, vs...)
	}
	for _, l := range lists {
		members, err := g.List(ctx, l)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			hasPath, err := objects(ctx, g, m, sh.Path)
			if err != nil {
				return nil, err
			}
			if len(hasPath) == 0 {
				out = append(out, m)
			}
		}
	}

	return out, nil
}

// extractPropertyShapes discovers every term treated as a property
// shape: a declared sh:PropertyShape, the object of a sh:property link,
// or the subject of a sh:path link, deduplicated. Ported from parse's
// inline propertyshapes computation.
func extractPropertyShapes(ctx context.Context, g graph.GraphPort) ([]quad.Value, error) {
	seen := make(map[quad.Value]bool)
	var out []quad.Value
	add := func(vs []quad.Value) {
		for _, v := range vs {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}

	declared, err := subjects(ctx, g, rdf.Type, quad.IRI(sh.PropertyShape).Full())
	if err != nil {
		return nil, err
	}
	add(declared)

	propObjs, err := objectsOf(ctx, g, sh.Property)
	if err != nil {
		return nil, err
	}
	add(propObjs)

	pathSubjs, err := subjectsWithPred(ctx, g, sh.Path)
	if err != nil {
		return nil, err
	}
	add(pathSubjs)

	return out, nil
}

// parseNodeShape builds the conjunction of node-shape sub-parsers
// (shape links, logical, tests, value, in, closed, the Eq/Disj/
// LessThan/LessThanEq pair rules taken against the implicit Id path, and
// any registered custom constraint components), wrapped in And; an empty
// conjunction is Top. Ported from _nodeshape_parse.
func parseNodeShape(ctx context.Context, g graph.GraphPort, shapeName quad.Value) (shape.Node, error) {
	var conj []shape.Node
	steps := []func() ([]shape.Node, error){
		func() ([]shape.Node, error) { return shapeLinksParse(ctx, g, shapeName) },
		func() ([]shape.Node, error) { return logicParse(ctx, g, shapeName) },
		func() ([]shape.Node, error) { return testsParse(ctx, g, shapeName) },
		func() ([]shape.Node, error) { return valueParse(ctx, g, shapeName) },
		func() ([]shape.Node, error) { return inParse(ctx, g, shapeName) },
		func() ([]shape.Node, error) { return closedParse(ctx, g, shapeName) },
		func() ([]shape.Node, error) { return pairParse(ctx, g, path.Id{}, shapeName) },
		func() ([]shape.Node, error) { return extensionParse(ctx, g, shapeName) },
	}
	for _, step := range steps {
		ns, err := step()
		if err != nil {
			return nil, &ParseError{Shape: shapeName, Msg: err.Error()}
		}
		conj = append(conj, ns...)
	}
	if len(conj) == 0 {
		return shape.Top{}, nil
	}
	return shape.And{Shapes: conj}, nil
}

// parsePropertyShape builds the conjunction of property-shape
// sub-parsers (cardinality, pair, qualified, universal, language, and
// any registered custom constraint components) against the shape's own
// declared path. A property-shape with no sh:path is malformed. Ported
// from _propertyshape_parse.
func parsePropertyShape(ctx context.Context, g graph.GraphPort, shapeName quad.Value) (shape.Node, error) {
	pathTerms, err := objects(ctx, g, shapeName, sh.Path)
	if err != nil {
		return nil, err
	}
	if len(pathTerms) == 0 {
		return nil, &ParseError{Shape: shapeName, Msg: "property shape has no sh:path"}
	}
	p, err := path.Parse(ctx, g, pathTerms[0])
	if err != nil {
		return nil, &ParseError{Shape: shapeName, Msg: err.Error()}
	}

	var conj []shape.Node
	steps := []func() ([]shape.Node, error){
		func() ([]shape.Node, error) { return cardParse(ctx, g, p, shapeName) },
		func() ([]shape.Node, error) { return pairParse(ctx, g, p, shapeName) },
		func() ([]shape.Node, error) { return qualParse(ctx, g, p, shapeName) },
		func() ([]shape.Node, error) { return allParse(ctx, g, p, shapeName) },
		func() ([]shape.Node, error) { return langParse(ctx, g, p, shapeName) },
		func() ([]shape.Node, error) { return extensionParse(ctx, g, shapeName) },
	}
	for _, step := range steps {
		ns, err := step()
		if err != nil {
			return nil, &ParseError{Shape: shapeName, Msg: err.Error()}
		}
		conj = append(conj, ns...)
	}
	if len(conj) == 0 {
		return shape.Top{}, nil
	}
	return shape.And{Shapes: conj}, nil
}
