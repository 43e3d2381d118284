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

// nodeKindByIRI is keyed by the full (namespace-expanded) form of each
// sh:nodeKind value, since that's what a GraphPort hands back.
var nodeKindByIRI = map[quad.IRI]shape.NodeKindSet{
	quad.IRI(sh.IRI).Full():                shape.KindIRI,
	quad.IRI(sh.Literal).Full():             shape.KindLiteral,
	quad.IRI(sh.BlankNode).Full():           shape.KindBlank,
	quad.IRI(sh.BlankNodeOrIRI).Full():      shape.KindIRI | shape.KindBlank,
	quad.IRI(sh.BlankNodeOrLiteral).Full():  shape.KindBlank | shape.KindLiteral,
	quad.IRI(sh.IRIOrLiteral).Full():        shape.KindIRI | shape.KindLiteral,
}

// testsParse ports _tests_parse: the leaf value-shape tests that don't
// need their own top-level Op (class, datatype, nodeKind, the numeric and
// length range consolidations, and pattern).
func testsParse(ctx context.Context, g graph.GraphPort, shapeName quad.Value) ([]shape.Node, error) {
	var out []shape.Node

	classes, err := objects(ctx, g, shapeName, sh.Class)
	if err != nil {
		return nil, err
	}
	classPath := path.Class(quad.IRI(rdf.Type), quad.IRI(rdfs.SubClassOf))
	for _, c := range classes {
		n := shape.CountRange{Min: 1, Max: nil, Path: classPath, Shape: shape.HasValue{Value: c}}
		out = append(out, tagged(n, sh.ClassConstraintComponent))
	}

	datatypes, err := objects(ctx, g, shapeName, sh.Datatype)
	if err != nil {
		return nil, err
	}
	for _, d := range datatypes {
		iri, ok := d.(quad.IRI)
		if !ok {
			continue
		}
		out = append(out, tagged(shape.Test{Kind: shape.Datatype{D: iri}}, sh.DatatypeConstraintComponent))
	}

	kinds, err := objects(ctx, g, shapeName, sh.NodeKind)
	if err != nil {
		return nil, err
	}
	for _, k := range kinds {
		iri, ok := k.(quad.IRI)
		if !ok {
			continue
		}
		set, ok := nodeKindByIRI[iri]
		if !ok {
			continue
		}
		out = append(out, tagged(shape.Test{Kind: shape.NodeKind{Kinds: set}}, sh.NodeKindConstraintComponent))
	}

	if n, err := numericRangeParse(ctx, g, shapeName); err != nil {
		return nil, err
	} else if n != nil {
		out = append(out, n)
	}

	if n, err := lengthRangeParse(ctx, g, shapeName); err != nil {
		return nil, err
	} else if n != nil {
		out = append(out, n)
	}

	patterns, err := objects(ctx, g, shapeName, sh.Pattern)
	if err != nil {
		return nil, err
	}
	if len(patterns) > 0 {
		regex, ok := literalString(patterns[0])
		if ok {
			flags := ""
			flagVals, err := objects(ctx, g, shapeName, sh.Flags)
			if err != nil {
				return nil, err
			}
			if len(flagVals) > 0 {
				if f, ok := literalString(flagVals[0]); ok {
					flags = f
				}
			}
			n := shape.Test{Kind: shape.Pattern{Regex: escapePattern(regex), Flags: flags}}
			out = append(out, tagged(n, sh.PatternConstraintComponent))
		}
	}

	return out, nil
}

// numericRangeParse ports _numeric_range_parse's tie-breaking logic: when
// several sh:minInclusive/sh:minExclusive values are present the tightest
// (largest) lower bound wins, breaking ties in favor of the exclusive
// bound; for the upper bound the tightest bound is the smallest, and the
// exclusive bound wins only when it is strictly smaller than the
// inclusive one (a tie keeps the inclusive bound).
func numericRangeParse(ctx context.Context, g graph.GraphPort, shapeName quad.Value) (shape.Node, error) {
	minIncl, err := objects(ctx, g, shapeName, sh.MinInclusive)
	if err != nil {
		return nil, err
	}
	minExcl, err := objects(ctx, g, shapeName, sh.MinExclusive)
	if err != nil {
		return nil, err
	}
	maxIncl, err := objects(ctx, g, shapeName, sh.MaxInclusive)
	if err != nil {
		return nil, err
	}
	maxExcl, err := objects(ctx, g, shapeName, sh.MaxExclusive)
	if err != nil {
		return nil, err
	}

	maxMinIncl, hasMaxMinIncl := maxFloatLiteral(minIncl)
	maxMinExcl, hasMaxMinExcl := maxFloatLiteral(minExcl)
	var minExclusive bool
	switch {
	case hasMaxMinIncl && hasMaxMinExcl:
		minExclusive = maxMinExcl >= maxMinIncl
	case hasMaxMinExcl:
		minExclusive = true
	default:
		minExclusive = false
	}

	minMaxIncl, hasMinMaxIncl := minFloatLiteral(maxIncl)
	minMaxExcl, hasMinMaxExcl := minFloatLiteral(maxExcl)
	var maxExclusive bool
	switch {
	case hasMinMaxIncl && hasMinMaxExcl:
		maxExclusive = minMaxExcl < minMaxIncl
	case hasMinMaxExcl:
		maxExclusive = true
	default:
		maxExclusive = false
	}

	numericMin := hasMaxMinExcl || hasMaxMinIncl
	numericMax := hasMinMaxExcl || hasMinMaxIncl
	if !numericMin && !numericMax {
		return nil, nil
	}

	var k shape.NumericRange
	var components []quad.IRI
	if numericMin {
		if minExclusive {
			v := maxMinExcl
			k.MinExcl = &v
			components = append(components, quad.IRI(sh.MinExclusiveConstraintComponent))
		} else {
			v := maxMinIncl
			k.MinIncl = &v
			components = append(components, quad.IRI(sh.MinInclusiveConstraintComponent))
		}
	}
	if numericMax {
		if maxExclusive {
			v := minMaxExcl
			k.MaxExcl = &v
			components = append(components, quad.IRI(sh.MaxExclusiveConstraintComponent))
		} else {
			v := minMaxIncl
			k.MaxIncl = &v
			components = append(components, quad.IRI(sh.MaxInclusiveConstraintComponent))
		}
	}

	return shape.WithTag(shape.Test{Kind: k}, provFrom(components)), nil
}

// lengthRangeParse ports _length_range_parse: the tightest-supplied
// minLength/maxLength bounds win (largest minimum, smallest maximum),
// then the two are folded into a single LengthRange test.
func lengthRangeParse(ctx context.Context, g graph.GraphPort, shapeName quad.Value) (shape.Node, error) {
	minLens, err := objects(ctx, g, shapeName, sh.MinLength)
	if err != nil {
		return nil, err
	}
	maxLens, err := objects(ctx, g, shapeName, sh.MaxLength)
	if err != nil {
		return nil, err
	}

	maxMinLen, hasMin := maxIntLiteral(minLens)
	minMaxLen, hasMax := minIntLiteral(maxLens)
	if !hasMin && !hasMax {
		return nil, nil
	}

	var k shape.LengthRange
	var components []quad.IRI
	if hasMin {
		v := maxMinLen
		k.MinLen = &v
		components = append(components, quad.IRI(sh.MinLengthConstraintComponent))
	}
	if hasMax {
		v := minMaxLen
		k.MaxLen = &v
		components = append(components, quad.IRI(sh.MaxLengthConstraintComponent))
	}

	return shape.WithTag(shape.Test{Kind: k}, provFrom(components)), nil
}

func provFrom(components []quad.IRI) shape.Provenance {
	if len(components) == 0 {
		return shape.Provenance{}
	}
	return shape.Provenance{Component: components[0], Extra: components[1:]}
}

// literalString extracts the lexical form of a literal term, covering
// the shapes a plain string-valued SHACL parameter can take.
func literalString(v quad.Value) (string, bool) {
	switch t := v.(type) {
	case quad.String:
		return string(t), true
	case quad.TypedString:
		return string(t.Value), true
	case quad.LangString:
		return string(t.Value), true
	default:
		return "", false
	}
}
