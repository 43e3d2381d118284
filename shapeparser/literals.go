package shapeparser

import (
	"strconv"

	"github.com/cznic/mathutil"
	"golang.org/x/exp/constraints"

	"github.com/cayleygraph/shaclc/quad"
)

// literalFloat coerces a numeric literal term to float64, covering the
// three shapes a numeric RDF literal can take once it has passed
// through a GraphPort: a native quad.Int/quad.Float, or a quad.TypedString
// carrying the lexical form (e.g. a value round-tripped through a query
// string, or loaded by a front-end that doesn't parse datatypes eagerly).
func literalFloat(v quad.Value) (float64, bool) {
	switch t := v.(type) {
	case quad.Int:
		return float64(t), true
	case quad.Float:
		return float64(t), true
	case quad.TypedString:
		f, err := strconv.ParseFloat(string(t.Value), 64)
		return f, err == nil
	case quad.String:
		f, err := strconv.ParseFloat(string(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func literalInt(v quad.Value) (int, bool) {
	f, ok := literalFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func maxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func minOf[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// maxIntLiteral returns the largest of vals' integer values (ported from
// _max_literal), using mathutil's plain int Max to fold the list; ok is
// false when vals is empty or none of its terms coerce to an integer.
func maxIntLiteral(vals []quad.Value) (int, bool) {
	found := false
	var m int
	for _, v := range vals {
		i, ok := literalInt(v)
		if !ok {
			continue
		}
		if !found {
			m, found = i, true
			continue
		}
		m = mathutil.Max(m, i)
	}
	return m, found
}

// minIntLiteral returns the smallest of vals' integer values (ported
// from _min_literal, i.e. _max_literal(..., invert=True)).
func minIntLiteral(vals []quad.Value) (int, bool) {
	found := false
	var m int
	for _, v := range vals {
		i, ok := literalInt(v)
		if !ok {
			continue
		}
		if !found {
			m, found = i, true
			continue
		}
		m = mathutil.Min(m, i)
	}
	return m, found
}

// maxFloatLiteral/minFloatLiteral are literalInt's counterparts for the
// numeric-range consolidation, which must tolerate xsd:decimal bounds
// that don't round-trip through int.
func maxFloatLiteral(vals []quad.Value) (float64, bool) {
	found := false
	var m float64
	for _, v := range vals {
		f, ok := literalFloat(v)
		if !ok {
			continue
		}
		if !found {
			m, found = f, true
			continue
		}
		m = maxOf(m, f)
	}
	return m, found
}

func minFloatLiteral(vals []quad.Value) (float64, bool) {
	found := false
	var m float64
	for _, v := range vals {
		f, ok := literalFloat(v)
		if !ok {
			continue
		}
		if !found {
			m, found = f, true
			continue
		}
		m = minOf(m, f)
	}
	return m, found
}
