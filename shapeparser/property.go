package shapeparser

import (
	"context"

	"github.com/cayleygraph/shaclc/graph"
	"github.com/cayleygraph/shaclc/path"
	"github.com/cayleygraph/shaclc/quad"
	"github.com/cayleygraph/shaclc/shape"
	"github.com/cayleygraph/shaclc/voc/sh"
)

// cardParse ports _card_parse: sh:minCount/sh:maxCount fold to a single
// CountRange over the property's own values; when a shape carries more
// than one declaration of either, the smallest minCount and the largest
// maxCount are kept.
func cardParse(ctx context.Context, g graph.GraphPort, p path.Node, shapeName quad.Value) ([]shape.Node, error) {
	minCounts, err := objects(ctx, g, shapeName, sh.MinCount)
	if err != nil {
		return nil, err
	}
	maxCounts, err := objects(ctx, g, shapeName, sh.MaxCount)
	if err != nil {
		return nil, err
	}
	smallestMin, hasMin := minIntLiteral(minCounts)
	largestMax, hasMax := maxIntLiteral(maxCounts)
	if !hasMin && !hasMax {
		return nil, nil
	}

	n := shape.CountRange{Min: 0, Path: p, Shape: shape.Top{}}
	var components []quad.IRI
	if hasMin {
		n.Min = smallestMin
		components = append(components, quad.IRI(sh.MinCountConstraintComponent))
	}
	if hasMax {
		m := largestMax
		n.Max = &m
		components = append(components, quad.IRI(sh.MaxCountConstraintComponent))
	}

	return []shape.Node{shape.WithTag(n, provFrom(components))}, nil
}

// qualParse ports _qual_parse: each sh:qualifiedValueShape is counted
// along p, optionally excluding members also conforming to a sibling
// qualified shape when sh:qualifiedValueShapesDisjoint is set.
func qualParse(ctx context.Context, g graph.GraphPort, p path.Node, shapeName quad.Value) ([]shape.Node, error) {
	quals, err := objects(ctx, g, shapeName, sh.QualifiedValueShape)
	if err != nil {
		return nil, err
	}

	var out []shape.Node
	for _, q := range quals {
		result := shape.Node(shape.HasShape{ID: q})

		disjoint, err := hasTriple(ctx, g, shapeName, sh.QualifiedValueShapesDisjoint, quad.Bool(true))
		if err != nil {
			return nil, err
		}
		if disjoint {
			siblings, err := qualifiedSiblings(ctx, g, shapeName, q)
			if err != nil {
				return nil, err
			}
			conj := []shape.Node{shape.HasShape{ID: q}}
			for _, s := range siblings {
				conj = append(conj, shape.Not{Shape: shape.HasShape{ID: s}})
			}
			result = shape.And{Shapes: conj}
		}

		minVals, err := objects(ctx, g, shapeName, sh.QualifiedMinCount)
		if err != nil {
			return nil, err
		}
		maxVals, err := objects(ctx, g, shapeName, sh.QualifiedMaxCount)
		if err != nil {
			return nil, err
		}
		qualMin, hasMin := minIntLiteral(minVals)
		qualMax, hasMax := maxIntLiteral(maxVals)
		if !hasMin && !hasMax {
			continue
		}

		n := shape.CountRange{Min: 0, Path: p, Shape: result}
		var components []quad.IRI
		if hasMin {
			n.Min = qualMin
			components = append(components, quad.IRI(sh.QualifiedMinCountConstraintComponent))
		}
		if hasMax {
			m := qualMax
			n.Max = &m
			components = append(components, quad.IRI(sh.QualifiedMaxCountConstraintComponent))
		}
		out = append(out, shape.WithTag(n, provFrom(components)))
	}

	return out, nil
}

// qualifiedSiblings finds the qualified value shapes declared by every
// other sh:property of shapeName's parent node shape(s), excluding q
// itself.
func qualifiedSiblings(ctx context.Context, g graph.GraphPort, shapeName, q quad.Value) ([]quad.Value, error) {
	parents, err := subjects(ctx, g, sh.Property, shapeName)
	if err != nil {
		return nil, err
	}
	var out []quad.Value
	for _, parent := range parents {
		siblingShapes, err := objects(ctx, g, parent, sh.Property)
		if err != nil {
			return nil, err
		}
		for _, sib := range siblingShapes {
			if sib == shapeName {
				continue
			}
			sq, err := objects(ctx, g, sib, sh.QualifiedValueShape)
			if err != nil {
				return nil, err
			}
			for _, s := range sq {
				if s != q {
					out = append(out, s)
				}
			}
		}
	}
	return out, nil
}

// allParse ports _all_parse: the node-shape-style conjunction (shape
// links, logical, tests, in, closed -- deliberately excluding hasValue,
// pair and cardinality rules) is pushed through a Forall over p; each
// hasValue test is additionally required to hold along p at least once,
// since Forall alone wouldn't demand the path be populated.
func allParse(ctx context.Context, g graph.GraphPort, p path.Node, shapeName quad.Value) ([]shape.Node, error) {
	var conj []shape.Node
	steps := []func() ([]shape.Node, error){
		func() ([]shape.Node, error) { return shapeLinksParse(ctx, g, shapeName) },
		func() ([]shape.Node, error) { return logicParse(ctx, g, shapeName) },
		func() ([]shape.Node, error) { return testsParse(ctx, g, shapeName) },
		func() ([]shape.Node, error) { return inParse(ctx, g, shapeName) },
		func() ([]shape.Node, error) { return closedParse(ctx, g, shapeName) },
	}
	for _, step := range steps {
		ns, err := step()
		if err != nil {
			return nil, err
		}
		conj = append(conj, ns...)
	}

	var out []shape.Node
	if len(conj) > 0 {
		out = append(out, shape.Forall{Path: p, Shape: shape.And{Shapes: conj}})
	}

	values, err := valueParse(ctx, g, shapeName)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		out = append(out, shape.CountRange{Min: 1, Max: nil, Path: p, Shape: v})
	}

	return out, nil
}

// langParse ports _lang_parse: sh:languageIn and sh:uniqueLang.
func langParse(ctx context.Context, g graph.GraphPort, p path.Node, shapeName quad.Value) ([]shape.Node, error) {
	var out []shape.Node

	langLists, err := objects(ctx, g, shapeName, sh.LanguageIn)
	if err != nil {
		return nil, err
	}
	if len(langLists) > 0 {
		members, err := g.List(ctx, langLists[0])
		if err != nil {
			return nil, err
		}
		var tags []string
		for _, m := range members {
			if s, ok := literalString(m); ok {
				tags = append(tags, s)
			}
		}
		if len(tags) > 0 {
			test := tagged(shape.Test{Kind: shape.LanguageIn{Tags: tags}}, sh.LanguageInConstraintComponent)
			out = append(out, shape.Forall{Path: p, Shape: test})
		}
	}

	uniqueLang, err := hasTriple(ctx, g, shapeName, sh.UniqueLang, quad.Bool(true))
	if err != nil {
		return nil, err
	}
	if uniqueLang {
		out = append(out, tagged(shape.UniqueLang{Path: p}, sh.UniqueLangConstraintComponent))
	}

	return out, nil
}
