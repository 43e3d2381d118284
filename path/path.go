// Package path implements the property-path algebra: a small closed tree
// of constructors describing a walk over predicates, a parser that reads
// one from the SHACL path vocabulary rooted at a term in a shapes-graph,
// and a lowering function producing the target query language's path
// syntax. The tagged-variant design mirrors shape.Node and, at one remove,
// graph/shape.Shape's own closed dispatch-by-type idiom.
package path

import (
	"context"
	"fmt"
	"strings"

	"github.com/cayleygraph/shaclc/graph"
	"github.com/cayleygraph/shaclc/quad"
	"github.com/cayleygraph/shaclc/voc/sh"
)

// Node is a property-path expression. The interface is sealed: the only
// implementations are the constructors below, closed over this package.
type Node interface {
	// Equal reports structural equality; blank identifiers compare by
	// position only, per the quad.BlankId contract.
	Equal(Node) bool
	String() string
	isPathNode()
}

// Prop traverses predicate Pred.
type Prop struct{ Pred quad.IRI }

func (Prop) isPathNode() {}
func (n Prop) String() string { return fmt.Sprintf("<%s>", n.Pred) }
func (n Prop) Equal(o Node) bool {
	p, ok := o.(Prop)
	return ok && p.Pred == n.Pred
}

// Inv traverses the inverse of Path.
type Inv struct{ Path Node }

func (Inv) isPathNode() {}
func (n Inv) String() string { return "Inv(" + n.Path.String() + ")" }
func (n Inv) Equal(o Node) bool {
	p, ok := o.(Inv)
	return ok && n.Path.Equal(p.Path)
}

// Alt is the union of its branches.
type Alt struct{ Paths []Node }

func (Alt) isPathNode() {}
func (n Alt) String() string { return "Alt" + joinNodes(n.Paths) }
func (n Alt) Equal(o Node) bool {
	p, ok := o.(Alt)
	return ok && equalNodeSlice(n.Paths, p.Paths)
}

// Comp is the sequential composition of its steps.
type Comp struct{ Paths []Node }

func (Comp) isPathNode() {}
func (n Comp) String() string { return "Comp" + joinNodes(n.Paths) }
func (n Comp) Equal(o Node) bool {
	p, ok := o.(Comp)
	return ok && equalNodeSlice(n.Paths, p.Paths)
}

// Kleene is the zero-or-more repetition of Path.
type Kleene struct{ Path Node }

func (Kleene) isPathNode() {}
func (n Kleene) String() string { return "Kleene(" + n.Path.String() + ")" }
func (n Kleene) Equal(o Node) bool {
	p, ok := o.(Kleene)
	return ok && n.Path.Equal(p.Path)
}

// ZeroOrOne is the zero-or-one repetition of Path.
type ZeroOrOne struct{ Path Node }

func (ZeroOrOne) isPathNode() {}
func (n ZeroOrOne) String() string { return "ZeroOrOne(" + n.Path.String() + ")" }
func (n ZeroOrOne) Equal(o Node) bool {
	p, ok := o.(ZeroOrOne)
	return ok && n.Path.Equal(p.Path)
}

// Id is the identity path: the current node itself. It is never produced
// by the parser; the ShapeParser synthesizes it to pair self-referential
// constraints such as Eq(Id, p).
type Id struct{}

func (Id) isPathNode()      {}
func (Id) String() string   { return "Id" }
func (Id) Equal(o Node) bool {
	_, ok := o.(Id)
	return ok
}

func joinNodes(ns []Node) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = n.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func equalNodeSlice(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

var (
	invPathIRI        = quad.IRI(sh.InversePath).Full()
	altPathIRI        = quad.IRI(sh.AlternativePath).Full()
	zeroOrMorePathIRI = quad.IRI(sh.ZeroOrMorePath).Full()
	zeroOrOnePathIRI  = quad.IRI(sh.ZeroOrOnePath).Full()
)

// Parse reads the SHACL path sub-graph rooted at term and returns the
// PathNode it denotes.
//
// The recognized encodings are: a bare IRI (Prop), a blank node with
// sh:inversePath (Inv), sh:alternativePath to an RDF list (Alt), an RDF
// list itself (Comp), sh:zeroOrMorePath (Kleene) and sh:zeroOrOnePath
// (ZeroOrOne).
func Parse(ctx context.Context, g graph.GraphPort, term quad.Value) (Node, error) {
	if iri, ok := term.(quad.IRI); ok {
		return Prop{Pred: iri}, nil
	}

	if v, err := single(ctx, g, term, invPathIRI); err != nil {
		return nil, err
	} else if v != nil {
		inner, err := Parse(ctx, g, v)
		if err != nil {
			return nil, err
		}
		return Inv{Path: inner}, nil
	}

	if v, err := single(ctx, g, term, altPathIRI); err != nil {
		return nil, err
	} else if v != nil {
		members, err := g.List(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("path: alternativePath: %w", err)
		}
		return buildList(ctx, g, members, func(ns []Node) Node { return Alt{Paths: ns} })
	}

	if v, err := single(ctx, g, term, zeroOrMorePathIRI); err != nil {
		return nil, err
	} else if v != nil {
		inner, err := Parse(ctx, g, v)
		if err != nil {
			return nil, err
		}
		return Kleene{Path: inner}, nil
	}

	if v, err := single(ctx, g, term, zeroOrOnePathIRI); err != nil {
		return nil, err
	} else if v != nil {
		inner, err := Parse(ctx, g, v)
		if err != nil {
			return nil, err
		}
		return ZeroOrOne{Path: inner}, nil
	}

	// A sequence path is encoded directly as an RDF list at term.
	if members, err := g.List(ctx, term); err == nil && len(members) > 0 {
		return buildList(ctx, g, members, func(ns []Node) Node { return Comp{Paths: ns} })
	}

	return nil, fmt.Errorf("path: %v does not denote a recognized path expression", term)
}

func buildList(ctx context.Context, g graph.GraphPort, members []quad.Value, wrap func([]Node) Node) (Node, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("path: empty path list")
	}
	ns := make([]Node, len(members))
	for i, m := range members {
		n, err := Parse(ctx, g, m)
		if err != nil {
			return nil, err
		}
		ns[i] = n
	}
	if len(ns) == 1 {
		return ns[0], nil
	}
	return wrap(ns), nil
}

// single looks up the unique object of (term, pred, ?) in g, returning nil
// if there is none.
func single(ctx context.Context, g graph.GraphPort, term quad.Value, pred quad.IRI) (quad.Value, error) {
	cur, err := g.Quads(ctx, term, pred, nil, nil)
	if err != nil {
		return nil, err
	}
	defer cur.Close()
	if !cur.Next(ctx) {
		return nil, cur.Err()
	}
	return cur.Quad().Object, nil
}

// Lower translates a PathNode into the target query language's
// property-path syntax (§4.1), total over every variant.
//
// Id has no syntactic path form in the target language; callers that may
// encounter it (the Eq/Disj lowering rules, which special-case Id) must
// check IsId before calling Lower.
func Lower(n Node) string {
	switch n := n.(type) {
	case Prop:
		return "<" + string(n.Pred) + ">"
	case Inv:
		return "^(" + Lower(n.Path) + ")"
	case Alt:
		parts := make([]string, len(n.Paths))
		for i, p := range n.Paths {
			parts[i] = Lower(p)
		}
		return strings.Join(parts, "|")
	case Comp:
		parts := make([]string, len(n.Paths))
		for i, p := range n.Paths {
			parts[i] = Lower(p)
		}
		return strings.Join(parts, "/")
	case Kleene:
		return "(" + Lower(n.Path) + ")*"
	case ZeroOrOne:
		return "(" + Lower(n.Path) + ")?"
	case Id:
		return ""
	default:
		panic(fmt.Sprintf("path: unknown node %T", n))
	}
}

// IsId reports whether n is the identity path.
func IsId(n Node) bool {
	_, ok := n.(Id)
	return ok
}

// Class builds the rdf:type/rdfs:subClassOf* path used by class-membership
// targets and constraints (§4.2's class/target-class rules): a composition
// of rdf:type followed by zero-or-more rdfs:subClassOf steps.
func Class(rdfType, rdfsSubClassOf quad.IRI) Node {
	return Comp{Paths: []Node{Prop{Pred: rdfType}, Kleene{Path: Prop{Pred: rdfsSubClassOf}}}}
}
