// Package rewrite implements TreeRewriter (§4.3 of the design): three
// post-order tree transforms over shape.Node — Expand, Clean and NNF.
// Ported from original_source/slsparser/utilities.py, restructured as the
// recursive post-order walks graph/shape.Shape's Optimize methods use.
package rewrite

import (
	"github.com/cayleygraph/shaclc/quad"
	"github.com/cayleygraph/shaclc/shape"
)

// Expand replaces every HasShape(id) in n by the expanded definition of id
// looked up in definitions; an id with no entry becomes Top. A HasShape
// re-entered during its own expansion (a cyclic shape reference) also
// becomes Top rather than diverging. The result contains no HasShape node.
//
// Expansion drops provenance tags from every rebuilt node, matching
// utilities.py's expand_shape: a fresh SANode never carries its source's
// constraintComponent forward. Untouched leaves (Top, Bot, Test, ...) are
// returned with their tag stripped the same way, via shape.WithTag.
func Expand(definitions map[quad.Value]shape.Node, n shape.Node) shape.Node {
	return expand(definitions, n, nil)
}

func expand(definitions map[quad.Value]shape.Node, n shape.Node, seen map[quad.Value]bool) shape.Node {
	if hs, ok := n.(shape.HasShape); ok {
		if seen[hs.ID] {
			return shape.Top{}
		}
		def, ok := definitions[hs.ID]
		if !ok {
			return shape.Top{}
		}
		next := make(map[quad.Value]bool, len(seen)+1)
		for k := range seen {
			next[k] = true
		}
		next[hs.ID] = true
		return expand(definitions, def, next)
	}

	switch t := n.(type) {
	case shape.Not:
		return shape.Not{Shape: expand(definitions, t.Shape, seen)}
	case shape.And:
		return shape.And{Shapes: expandAll(definitions, t.Shapes, seen)}
	case shape.Or:
		return shape.Or{Shapes: expandAll(definitions, t.Shapes, seen)}
	case shape.Forall:
		return shape.Forall{Path: t.Path, Shape: expand(definitions, t.Shape, seen)}
	case shape.CountRange:
		return shape.CountRange{Min: t.Min, Max: t.Max, Path: t.Path, Shape: expand(definitions, t.Shape, seen)}
	default:
		return shape.WithTag(n, shape.Provenance{})
	}
}

func expandAll(definitions map[quad.Value]shape.Node, ns []shape.Node, seen map[quad.Value]bool) []shape.Node {
	out := make([]shape.Node, len(ns))
	for i, c := range ns {
		out[i] = expand(definitions, c, seen)
	}
	return out
}

// Clean performs the simplification pass of §4.3: Not(Top)->Bot,
// Not(Bot)->Top, Top/Bot absorption and filtering inside And/Or, the
// singleton-child collapse, Forall(p,Top)->Top, Forall(p,Bot)->a
// zero-count CountRange, and CountRange(n,m,p,Bot) collapsing to Top or
// Bot depending on whether n is zero.
//
// When full is true, any node whose Prov() carries a non-zero tag is
// returned completely unchanged, without even recursing into its
// children, preserving shape-fragment provenance for downstream tooling
// (ported from clean_parsetree's full-mode early return).
func Clean(n shape.Node, full bool) shape.Node {
	if full && !n.Prov().IsZero() {
		return n
	}

	switch t := n.(type) {
	case shape.Not:
		child := Clean(t.Shape, full)
		switch child.(type) {
		case shape.Top:
			return shape.Bot{}
		case shape.Bot:
			return shape.Top{}
		}
		return shape.Not{Shape: child}

	case shape.And:
		children := cleanAll(t.Shapes, full)
		for _, c := range children {
			if _, ok := c.(shape.Bot); ok {
				return shape.Bot{}
			}
		}
		var kept []shape.Node
		for _, c := range children {
			if _, ok := c.(shape.Top); !ok {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			return shape.Top{}
		}
		if len(kept) == 1 {
			return kept[0]
		}
		return shape.And{Shapes: kept}

	case shape.Or:
		children := cleanAll(t.Shapes, full)
		for _, c := range children {
			if _, ok := c.(shape.Top); ok {
				return shape.Top{}
			}
		}
		var kept []shape.Node
		for _, c := range children {
			if _, ok := c.(shape.Bot); !ok {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			return shape.Bot{}
		}
		if len(kept) == 1 {
			return kept[0]
		}
		return shape.Or{Shapes: kept}

	case shape.Forall:
		child := Clean(t.Shape, full)
		switch child.(type) {
		case shape.Top:
			return shape.Top{}
		case shape.Bot:
			zero := 0
			return shape.CountRange{Min: 0, Max: &zero, Path: t.Path, Shape: shape.Top{}}
		}
		return shape.Forall{Path: t.Path, Shape: child}

	case shape.CountRange:
		child := Clean(t.Shape, full)
		if _, ok := child.(shape.Bot); ok {
			if t.Min == 0 {
				return shape.Top{}
			}
			return shape.Bot{}
		}
		return shape.CountRange{Min: t.Min, Max: t.Max, Path: t.Path, Shape: child}

	default:
		return n
	}
}

func cleanAll(ns []shape.Node, full bool) []shape.Node {
	out := make([]shape.Node, len(ns))
	for i, c := range ns {
		out[i] = Clean(c, full)
	}
	return out
}

// NNF pushes negation down to the leaves of an already-expanded tree
// (callers must run Expand first; NNF does not handle HasShape). And/Or
// swap under De Morgan, double negation cancels, Not(Forall) becomes a
// CountRange and Not(CountRange) splits into the two complementary
// CountRanges described in §4.3. Like Expand and Clean's rewritten
// branches, every reconstructed node loses its provenance tag; a Not
// whose argument is already a leaf (Test, HasValue, ...) is the one case
// returned completely unchanged, tag included, matching
// negation_normal_form's final `return node`.
func NNF(n shape.Node) shape.Node {
	not, ok := n.(shape.Not)
	if !ok {
		switch t := n.(type) {
		case shape.And:
			children := make([]shape.Node, len(t.Shapes))
			for i, c := range t.Shapes {
				children[i] = NNF(c)
			}
			return shape.And{Shapes: children}
		case shape.Or:
			children := make([]shape.Node, len(t.Shapes))
			for i, c := range t.Shapes {
				children[i] = NNF(c)
			}
			return shape.Or{Shapes: children}
		case shape.Forall:
			return shape.Forall{Path: t.Path, Shape: NNF(t.Shape)}
		case shape.CountRange:
			return shape.CountRange{Min: t.Min, Max: t.Max, Path: t.Path, Shape: NNF(t.Shape)}
		default:
			return shape.WithTag(n, shape.Provenance{})
		}
	}

	switch inner := not.Shape.(type) {
	case shape.And:
		children := make([]shape.Node, len(inner.Shapes))
		for i, c := range inner.Shapes {
			children[i] = NNF(shape.Not{Shape: c})
		}
		return shape.Or{Shapes: children}

	case shape.Or:
		children := make([]shape.Node, len(inner.Shapes))
		for i, c := range inner.Shapes {
			children[i] = NNF(shape.Not{Shape: c})
		}
		return shape.And{Shapes: children}

	case shape.Not:
		return inner.Shape

	case shape.CountRange:
		var branches []shape.Node
		if inner.Max != nil {
			m1 := *inner.Max + 1
			branches = append(branches, shape.CountRange{
				Min: m1, Max: nil, Path: inner.Path,
				Shape: NNF(shape.Not{Shape: inner.Shape}),
			})
		}
		if inner.Min != 0 {
			nm1 := inner.Min - 1
			branches = append(branches, shape.CountRange{
				Min: 0, Max: &nm1, Path: inner.Path,
				Shape: NNF(shape.Not{Shape: inner.Shape}),
			})
		}
		return shape.Or{Shapes: branches}

	case shape.Forall:
		return shape.CountRange{Min: 1, Max: nil, Path: inner.Path, Shape: NNF(shape.Not{Shape: inner.Shape})}

	default:
		return n
	}
}
