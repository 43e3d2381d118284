// Package lower implements QueryLowering: the translation of an expanded
// ShapeAlgebra tree into a unary SELECT-style query string over a
// triple-pattern query language with property paths, MINUS, FILTER,
// FILTER NOT EXISTS, BIND, sub-SELECT, and GROUP BY/HAVING. Every
// compositional rule below is a direct port of the reference compiler's
// query-string builders; the query text itself is the wire contract with
// graphmock's evaluator and, eventually, any real GraphPort-backed SPARQL
// engine.
package lower

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cayleygraph/shaclc/path"
	"github.com/cayleygraph/shaclc/quad"
	"github.com/cayleygraph/shaclc/shape"
)

// ErrUnexpanded is returned when Lower encounters a HasShape node. The
// caller must run TreeRewriter's expansion pass first; this is always a
// programmer error, never a data-dependent one.
var ErrUnexpanded = errors.New("lower: tree is not expanded (HasShape present)")

func buildQuery(body string) string {
	return fmt.Sprintf("SELECT ?v WHERE { %s }", body)
}

func buildAllQuery() string {
	return buildQuery("{ ?v ?a ?b } UNION { ?c ?d ?v }")
}

func buildJoin(queries []string) string {
	parts := make([]string, len(queries))
	for i, q := range queries {
		parts[i] = "{ " + q + " }"
	}
	return buildQuery(strings.Join(parts, " . "))
}

func buildUnion(queries []string) string {
	parts := make([]string, len(queries))
	for i, q := range queries {
		parts[i] = "{ " + q + " }"
	}
	return buildQuery(strings.Join(parts, " UNION "))
}

func buildNegate(inner string) string {
	return buildQuery(fmt.Sprintf("{ %s } MINUS { %s }", buildAllQuery(), inner))
}

func buildClosedQuery(properties []string) string {
	return buildNegate(fmt.Sprintf("?v ?p ?o FILTER (?p NOT IN (%s))", strings.Join(properties, ", ")))
}

func buildDisjointQuery(p1, p2 string) string {
	return buildNegate(buildQuery(fmt.Sprintf("?v %s ?o . ?v %s ?o", p1, p2)))
}

func buildDisjointIDQuery(p string) string {
	return buildNegate(buildQuery(fmt.Sprintf("?v %s ?v", p)))
}

func buildNotDisjointQuery(p1, p2 string) string {
	return buildQuery(fmt.Sprintf("?v %s ?o . ?v %s ?o", p1, p2))
}

func buildNotDisjointIDQuery(p string) string {
	return buildQuery(fmt.Sprintf("?v %s ?v", p))
}

func buildEqualityQuery(p1, p2 string) string {
	return buildNegate(buildNotEqualityQuery(p1, p2))
}

func buildNotEqualityQuery(p1, p2 string) string {
	return buildQuery(fmt.Sprintf(
		"{ ?v %s ?o FILTER NOT EXISTS { ?v %s ?o } } UNION { ?v %s ?o FILTER NOT EXISTS { ?v %s ?o } }",
		p1, p2, p2, p1))
}

func buildEqualityIDQuery(p string) string {
	return buildQuery(fmt.Sprintf("?v %s ?v . ?v %s ?o", p, p)) + " GROUP BY ?v HAVING (COUNT(?o) = 1)"
}

func buildNotEqualityIDQuery(p string) string {
	return buildNegate(buildEqualityIDQuery(p))
}

func buildForallQuery(p, shapeQuery string) string {
	return buildNegate(buildQuery(fmt.Sprintf(
		"?v %s ?o . { SELECT (?v AS ?o) WHERE { %s } }", p, buildNegate(shapeQuery))))
}

func buildForallTestQuery(p, filterCond string) string {
	return buildNegate(buildQuery(fmt.Sprintf("?v %s ?o FILTER (!(%s))", p, filterCond)))
}

func countRangeGroupCondition(min int, max *int) string {
	if min == 1 && max == nil {
		return ""
	}
	if max != nil && min == *max {
		return fmt.Sprintf(" GROUP BY ?v HAVING (COUNT(?o) = %d)", min)
	}
	cond := fmt.Sprintf("COUNT(?o) >= %d", min)
	if max != nil {
		cond += fmt.Sprintf(" && COUNT(?o) <= %d", *max)
	}
	return fmt.Sprintf(" GROUP BY ?v HAVING (%s)", cond)
}

func buildCountRangeQuery(min int, max *int, p, shapeQuery string) string {
	return buildQuery(fmt.Sprintf("?v %s ?o . { SELECT (?v AS ?o) WHERE { %s } }", p, shapeQuery)) +
		countRangeGroupCondition(min, max)
}

func buildCountRangeTopQuery(min int, max *int, p string) string {
	return buildQuery(fmt.Sprintf("?v %s ?o", p)) + countRangeGroupCondition(min, max)
}

func buildCountRangeTestQuery(min int, max *int, p, filterCond string) string {
	return buildQuery(fmt.Sprintf("?v %s ?o FILTER (%s)", p, filterCond)) + countRangeGroupCondition(min, max)
}

func buildExistsHasValueQuery(p, value string) string {
	return buildQuery(fmt.Sprintf("?v %s %s", p, value))
}

func buildMaxCountQualifiedQuery(max int, p, shapeQuery string) string {
	return buildNegate(buildQuery(fmt.Sprintf(
		"?v %s ?o . { SELECT (?v AS ?o) WHERE { %s } }", p, shapeQuery)) +
		fmt.Sprintf(" GROUP BY ?v HAVING (COUNT(?o) > %d)", max))
}

func buildMaxCountTopQuery(max int, p string) string {
	return buildNegate(buildQuery(fmt.Sprintf("?v %s ?o", p)) +
		fmt.Sprintf(" GROUP BY ?v HAVING (COUNT(?o) > %d)", max))
}

func buildMaxCountTestQuery(max int, p, filterCond string) string {
	return buildNegate(buildQuery(fmt.Sprintf("?v %s ?o FILTER (%s)", p, filterCond)) +
		fmt.Sprintf(" GROUP BY ?v HAVING (COUNT(?o) > %d)", max))
}

func buildLTQuery(p1, p2 string) string {
	return buildQuery(fmt.Sprintf("?v %s ?e FILTER NOT EXISTS { ?v %s ?p FILTER (?e >= ?p) }", p1, p2))
}

func buildLTEQuery(p1, p2 string) string {
	return buildQuery(fmt.Sprintf("?v %s ?e FILTER NOT EXISTS { ?v %s ?p FILTER (?e > ?p) }", p1, p2))
}

func buildHasValueQuery(value string) string {
	return buildQuery(fmt.Sprintf("BIND (%s AS ?v)", value))
}

func buildUniqueLangQuery(p string) string {
	return buildNegate(buildQuery(fmt.Sprintf(
		"?v %s ?o1 . ?v %s ?o2 FILTER (?o1 != ?o2 && lang(?o1) = lang(?o2) && lang(?o1) != \"\")", p, p)))
}

func buildTestQuery(k shape.TestKind, negate bool) string {
	return buildQuery(fmt.Sprintf("{ %s } FILTER (%s)", buildAllQuery(), buildFilterCondition(k, negate, "?v")))
}

// termText renders a Term as the query language's literal syntax.
func termText(v quad.Value) string {
	switch t := v.(type) {
	case quad.IRI:
		return "<" + string(t) + ">"
	case quad.BlankId:
		return "_:" + string(t)
	default:
		return t.String()
	}
}

func numericText(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// buildFilterCondition emits the filter predicate text for a TestKind,
// evaluated against var, optionally negated. This is the one place where
// the query language's function names (regex, lang, datatype, strlen,
// isIRI, isLiteral, isBlank) are spelled out.
func buildFilterCondition(k shape.TestKind, negate bool, v string) string {
	neg := ""
	if negate {
		neg = "!"
	}
	switch t := k.(type) {
	case shape.Pattern:
		return fmt.Sprintf("%sregex(%s, %q, %q)", neg, v, t.Regex, t.Flags)
	case shape.Datatype:
		return fmt.Sprintf("%s(datatype(%s) = <%s>)", neg, v, t.D)
	case shape.NodeKind:
		return nodeKindCondition(t.Kinds, neg, v)
	case shape.NumericRange:
		return numericRangeCondition(t, neg, v)
	case shape.LengthRange:
		return lengthRangeCondition(t, neg, v)
	case shape.LanguageIn:
		in := "IN"
		if negate {
			in = "NOT IN"
		}
		return fmt.Sprintf("lang(%s) %s %s", v, in, sparqlStrList(t.Tags))
	default:
		return ""
	}
}

func nodeKindCondition(kinds shape.NodeKindSet, neg, v string) string {
	var parts []string
	if kinds&shape.KindIRI != 0 {
		parts = append(parts, fmt.Sprintf("isIRI(%s)", v))
	}
	if kinds&shape.KindBlank != 0 {
		parts = append(parts, fmt.Sprintf("isBlank(%s)", v))
	}
	if kinds&shape.KindLiteral != 0 {
		parts = append(parts, fmt.Sprintf("isLiteral(%s)", v))
	}
	cond := strings.Join(parts, " || ")
	if len(parts) > 1 {
		cond = "(" + cond + ")"
	}
	return neg + cond
}

func numericRangeCondition(r shape.NumericRange, neg, v string) string {
	var parts []string
	if r.MinExcl != nil {
		parts = append(parts, fmt.Sprintf("%s(%s > %s)", neg, v, numericText(*r.MinExcl)))
	}
	if r.MinIncl != nil {
		parts = append(parts, fmt.Sprintf("%s(%s >= %s)", neg, v, numericText(*r.MinIncl)))
	}
	if r.MaxExcl != nil {
		parts = append(parts, fmt.Sprintf("%s(%s < %s)", neg, v, numericText(*r.MaxExcl)))
	}
	if r.MaxIncl != nil {
		parts = append(parts, fmt.Sprintf("%s(%s <= %s)", neg, v, numericText(*r.MaxIncl)))
	}
	if neg != "" {
		return strings.Join(parts, " || ")
	}
	return strings.Join(parts, " && ")
}

func lengthRangeCondition(r shape.LengthRange, neg, v string) string {
	var parts []string
	if r.MinLen != nil {
		parts = append(parts, fmt.Sprintf("%s(strlen(%s) >= %d)", neg, v, *r.MinLen))
	}
	if r.MaxLen != nil {
		parts = append(parts, fmt.Sprintf("%s(strlen(%s) <= %d)", neg, v, *r.MaxLen))
	}
	if neg != "" {
		return strings.Join(parts, " || ")
	}
	return strings.Join(parts, " && ")
}

func sparqlStrList(tags []string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = fmt.Sprintf("%q", t)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Lower translates an expanded ShapeNode into a unary query string.
// Returns ErrUnexpanded if shape.HasShape appears anywhere in n.
func Lower(n shape.Node) (string, error) {
	switch t := n.(type) {
	case shape.HasShape:
		return "", ErrUnexpanded
	case shape.Top:
		return buildAllQuery(), nil
	case shape.Bot:
		return buildNegate(buildAllQuery()), nil
	case shape.And:
		qs, err := lowerAll(t.Shapes)
		if err != nil {
			return "", err
		}
		return buildJoin(qs), nil
	case shape.Or:
		qs, err := lowerAll(t.Shapes)
		if err != nil {
			return "", err
		}
		return buildUnion(qs), nil
	case shape.Not:
		return lowerNot(t)
	case shape.Closed:
		props := make([]string, len(t.Paths))
		for i, p := range t.Paths {
			props[i] = path.Lower(p)
		}
		return buildClosedQuery(props), nil
	case shape.Disj:
		if path.IsId(t.P1) {
			return buildDisjointIDQuery(path.Lower(t.P2)), nil
		}
		return buildDisjointQuery(path.Lower(t.P1), path.Lower(t.P2)), nil
	case shape.Eq:
		if path.IsId(t.P1) {
			return buildEqualityIDQuery(path.Lower(t.P2)), nil
		}
		return buildEqualityQuery(path.Lower(t.P1), path.Lower(t.P2)), nil
	case shape.Forall:
		if test, ok := t.Shape.(shape.Test); ok {
			return buildForallTestQuery(path.Lower(t.Path), buildFilterCondition(test.Kind, false, "?o")), nil
		}
		inner, err := Lower(t.Shape)
		if err != nil {
			return "", err
		}
		return buildForallQuery(path.Lower(t.Path), inner), nil
	case shape.CountRange:
		return lowerCountRange(t)
	case shape.LessThan:
		return buildLTQuery(path.Lower(t.P1), path.Lower(t.P2)), nil
	case shape.LessThanEq:
		return buildLTEQuery(path.Lower(t.P1), path.Lower(t.P2)), nil
	case shape.HasValue:
		return buildHasValueQuery(termText(t.Value)), nil
	case shape.UniqueLang:
		return buildUniqueLangQuery(path.Lower(t.Path)), nil
	case shape.Test:
		return buildTestQuery(t.Kind, false), nil
	default:
		return "", fmt.Errorf("lower: unknown shape node %T", n)
	}
}

func lowerAll(ns []shape.Node) ([]string, error) {
	out := make([]string, len(ns))
	for i, n := range ns {
		q, err := Lower(n)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}

func lowerNot(n shape.Not) (string, error) {
	switch child := n.Shape.(type) {
	case shape.Test:
		return buildTestQuery(child.Kind, true), nil
	case shape.Eq:
		if path.IsId(child.P1) {
			return buildNotEqualityIDQuery(path.Lower(child.P2)), nil
		}
		return buildNotEqualityQuery(path.Lower(child.P1), path.Lower(child.P2)), nil
	case shape.Disj:
		if path.IsId(child.P1) {
			return buildNotDisjointIDQuery(path.Lower(child.P2)), nil
		}
		return buildNotDisjointQuery(path.Lower(child.P1), path.Lower(child.P2)), nil
	default:
		inner, err := Lower(n.Shape)
		if err != nil {
			return "", err
		}
		return buildNegate(inner), nil
	}
}

func lowerCountRange(t shape.CountRange) (string, error) {
	p := path.Lower(t.Path)

	if t.Min == 0 && t.Max == nil {
		return buildAllQuery(), nil
	}

	if t.Min == 0 {
		switch s := t.Shape.(type) {
		case shape.Test:
			return buildMaxCountTestQuery(*t.Max, p, buildFilterCondition(s.Kind, false, "?o")), nil
		case shape.Top:
			return buildMaxCountTopQuery(*t.Max, p), nil
		default:
			inner, err := Lower(t.Shape)
			if err != nil {
				return "", err
			}
			return buildMaxCountQualifiedQuery(*t.Max, p, inner), nil
		}
	}

	if t.Min == 1 && t.Max == nil {
		if hv, ok := t.Shape.(shape.HasValue); ok {
			return buildExistsHasValueQuery(p, termText(hv.Value)), nil
		}
	}

	switch s := t.Shape.(type) {
	case shape.Test:
		return buildCountRangeTestQuery(t.Min, t.Max, p, buildFilterCondition(s.Kind, false, "?o")), nil
	case shape.Top:
		return buildCountRangeTopQuery(t.Min, t.Max, p), nil
	default:
		inner, err := Lower(t.Shape)
		if err != nil {
			return "", err
		}
		return buildCountRangeQuery(t.Min, t.Max, p, inner), nil
	}
}
