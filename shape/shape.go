// Package shape implements the constraint algebra: a small closed tree of
// constructors describing a predicate over graph nodes, together with
// structural equality and pretty-printing. TreeRewriter and QueryLowering
// both dispatch over this tree by concrete type, the same closed-variant
// idiom path.Node uses for the property-path grammar one level down and
// graph/shape.Shape uses, at much greater scale, for query plans.
package shape

import (
	"fmt"
	"strings"

	"github.com/cayleygraph/shaclc/path"
	"github.com/cayleygraph/shaclc/quad"
)

// Provenance identifies the constraint component (and, for compound
// constructs such as qualified value shapes, any correlated components)
// that produced a node. It travels through the compiler without affecting
// semantics, except that full-mode simplification treats a tagged node as
// opaque and leaves it unrewritten.
type Provenance struct {
	Component quad.IRI
	Extra     []quad.IRI
}

// IsZero reports whether p carries no tag at all.
func (p Provenance) IsZero() bool { return p.Component == "" && len(p.Extra) == 0 }

func (p Provenance) String() string {
	if p.IsZero() {
		return ""
	}
	if len(p.Extra) == 0 {
		return string(p.Component)
	}
	parts := make([]string, len(p.Extra)+1)
	parts[0] = string(p.Component)
	for i, e := range p.Extra {
		parts[i+1] = string(e)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Node is a constraint-algebra expression: a predicate over graph nodes.
// The interface is sealed to the constructors in this file.
type Node interface {
	String() string
	// Equal reports structural equality. BlankId terms compare equal to
	// any other BlankId, never by their concrete label: a blank
	// identifier is only ever meaningful by the position it occupies in
	// one shapes-graph load, never across two independently produced
	// trees being compared.
	Equal(Node) bool
	// Prov returns the node's provenance tag, zero if it carries none.
	Prov() Provenance
	isShapeNode()
}

// WithTag returns a copy of n carrying tag as its provenance.
func WithTag(n Node, tag Provenance) Node {
	switch t := n.(type) {
	case Top:
		t.Tag = tag
		return t
	case Bot:
		t.Tag = tag
		return t
	case HasValue:
		t.Tag = tag
		return t
	case HasShape:
		t.Tag = tag
		return t
	case Not:
		t.Tag = tag
		return t
	case And:
		t.Tag = tag
		return t
	case Or:
		t.Tag = tag
		return t
	case Test:
		t.Tag = tag
		return t
	case Forall:
		t.Tag = tag
		return t
	case CountRange:
		t.Tag = tag
		return t
	case Closed:
		t.Tag = tag
		return t
	case Eq:
		t.Tag = tag
		return t
	case Disj:
		t.Tag = tag
		return t
	case LessThan:
		t.Tag = tag
		return t
	case LessThanEq:
		t.Tag = tag
		return t
	case UniqueLang:
		t.Tag = tag
		return t
	default:
		return n
	}
}

// termEqual compares two terms per Node.Equal's BlankId contract.
func termEqual(a, b quad.Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	_, aBlank := a.(quad.BlankId)
	_, bBlank := b.(quad.BlankId)
	if aBlank && bBlank {
		return true
	}
	return a == b
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

func joinNodes(ns []Node) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}

func maxString(m *int) string {
	if m == nil {
		return "∞"
	}
	return fmt.Sprintf("%d", *m)
}

// Top is universally satisfied.
type Top struct{ Tag Provenance }

func (Top) isShapeNode()       {}
func (n Top) Prov() Provenance { return n.Tag }
func (Top) String() string     { return "Top" }
func (n Top) Equal(o Node) bool {
	_, ok := o.(Top)
	return ok
}

// Bot is universally unsatisfied.
type Bot struct{ Tag Provenance }

func (Bot) isShapeNode()       {}
func (n Bot) Prov() Provenance { return n.Tag }
func (Bot) String() string     { return "Bot" }
func (n Bot) Equal(o Node) bool {
	_, ok := o.(Bot)
	return ok
}

// HasValue holds when the node under test equals Value.
type HasValue struct {
	Value quad.Value
	Tag   Provenance
}

func (HasValue) isShapeNode()       {}
func (n HasValue) Prov() Provenance { return n.Tag }
func (n HasValue) String() string   { return fmt.Sprintf("HasValue(%v)", n.Value) }
func (n HasValue) Equal(o Node) bool {
	p, ok := o.(HasValue)
	return ok && termEqual(n.Value, p.Value)
}

// HasShape holds when the node under test satisfies the named shape ID.
// Valid only before TreeRewriter's expansion pass has run.
type HasShape struct {
	ID  quad.Value
	Tag Provenance
}

func (HasShape) isShapeNode()       {}
func (n HasShape) Prov() Provenance { return n.Tag }
func (n HasShape) String() string   { return fmt.Sprintf("HasShape(%v)", n.ID) }
func (n HasShape) Equal(o Node) bool {
	p, ok := o.(HasShape)
	return ok && termEqual(n.ID, p.ID)
}

// Not is logical negation.
type Not struct {
	Shape Node
	Tag   Provenance
}

func (Not) isShapeNode()       {}
func (n Not) Prov() Provenance { return n.Tag }
func (n Not) String() string   { return "Not(" + n.Shape.String() + ")" }
func (n Not) Equal(o Node) bool {
	p, ok := o.(Not)
	return ok && n.Shape.Equal(p.Shape)
}

// And is conjunction; an empty And is equivalent to Top.
type And struct {
	Shapes []Node
	Tag    Provenance
}

func (And) isShapeNode()       {}
func (n And) Prov() Provenance { return n.Tag }
func (n And) String() string   { return "And(" + joinNodes(n.Shapes) + ")" }
func (n And) Equal(o Node) bool {
	p, ok := o.(And)
	return ok && equalNodeSlice(n.Shapes, p.Shapes)
}

// Or is disjunction; an empty Or is equivalent to Bot.
type Or struct {
	Shapes []Node
	Tag    Provenance
}

func (Or) isShapeNode()       {}
func (n Or) Prov() Provenance { return n.Tag }
func (n Or) String() string   { return "Or(" + joinNodes(n.Shapes) + ")" }
func (n Or) Equal(o Node) bool {
	p, ok := o.(Or)
	return ok && equalNodeSlice(n.Shapes, p.Shapes)
}

// Test is a leaf predicate on the node under test itself; see TestKind.
type Test struct {
	Kind TestKind
	Tag  Provenance
}

func (Test) isShapeNode()       {}
func (n Test) Prov() Provenance { return n.Tag }
func (n Test) String() string   { return "Test(" + n.Kind.String() + ")" }
func (n Test) Equal(o Node) bool {
	p, ok := o.(Test)
	return ok && n.Kind.Equal(p.Kind)
}

// Forall holds when every Path-reachable node satisfies Shape.
type Forall struct {
	Path  path.Node
	Shape Node
	Tag   Provenance
}

func (Forall) isShapeNode()       {}
func (n Forall) Prov() Provenance { return n.Tag }
func (n Forall) String() string {
	return fmt.Sprintf("Forall(%s, %s)", n.Path, n.Shape)
}
func (n Forall) Equal(o Node) bool {
	p, ok := o.(Forall)
	return ok && n.Path.Equal(p.Path) && n.Shape.Equal(p.Shape)
}

// CountRange holds when the number of Path-reachable nodes satisfying
// Shape is between Min and Max inclusive. Max == nil means unbounded.
type CountRange struct {
	Min   int
	Max   *int
	Path  path.Node
	Shape Node
	Tag   Provenance
}

func (CountRange) isShapeNode()       {}
func (n CountRange) Prov() Provenance { return n.Tag }
func (n CountRange) String() string {
	return fmt.Sprintf("CountRange(%d, %s, %s, %s)", n.Min, maxString(n.Max), n.Path, n.Shape)
}
func (n CountRange) Equal(o Node) bool {
	p, ok := o.(CountRange)
	if !ok || n.Min != p.Min || !n.Path.Equal(p.Path) || !n.Shape.Equal(p.Shape) {
		return false
	}
	if (n.Max == nil) != (p.Max == nil) {
		return false
	}
	return n.Max == nil || *n.Max == *p.Max
}

// Closed holds when the node under test has no outgoing edges other than
// along one of Paths.
type Closed struct {
	Paths []path.Node
	Tag   Provenance
}

func (Closed) isShapeNode()       {}
func (n Closed) Prov() Provenance { return n.Tag }
func (n Closed) String() string {
	parts := make([]string, len(n.Paths))
	for i, p := range n.Paths {
		parts[i] = p.String()
	}
	return "Closed(" + strings.Join(parts, ", ") + ")"
}
func (n Closed) Equal(o Node) bool {
	p, ok := o.(Closed)
	if !ok || len(n.Paths) != len(p.Paths) {
		return false
	}
	for i := range n.Paths {
		if !n.Paths[i].Equal(p.Paths[i]) {
			return false
		}
	}
	return true
}

// Eq holds when P1 and P2 denote equal successor sets.
type Eq struct {
	P1, P2 path.Node
	Tag    Provenance
}

func (Eq) isShapeNode()       {}
func (n Eq) Prov() Provenance { return n.Tag }
func (n Eq) String() string   { return fmt.Sprintf("Eq(%s, %s)", n.P1, n.P2) }
func (n Eq) Equal(o Node) bool {
	p, ok := o.(Eq)
	return ok && n.P1.Equal(p.P1) && n.P2.Equal(p.P2)
}

// Disj holds when P1 and P2 denote disjoint successor sets.
type Disj struct {
	P1, P2 path.Node
	Tag    Provenance
}

func (Disj) isShapeNode()       {}
func (n Disj) Prov() Provenance { return n.Tag }
func (n Disj) String() string   { return fmt.Sprintf("Disj(%s, %s)", n.P1, n.P2) }
func (n Disj) Equal(o Node) bool {
	p, ok := o.(Disj)
	return ok && n.P1.Equal(p.P1) && n.P2.Equal(p.P2)
}

// LessThan holds when every P1-value is less than every P2-value.
type LessThan struct {
	P1, P2 path.Node
	Tag    Provenance
}

func (LessThan) isShapeNode()       {}
func (n LessThan) Prov() Provenance { return n.Tag }
func (n LessThan) String() string   { return fmt.Sprintf("LessThan(%s, %s)", n.P1, n.P2) }
func (n LessThan) Equal(o Node) bool {
	p, ok := o.(LessThan)
	return ok && n.P1.Equal(p.P1) && n.P2.Equal(p.P2)
}

// LessThanEq holds when every P1-value is less than or equal to every
// P2-value.
type LessThanEq struct {
	P1, P2 path.Node
	Tag    Provenance
}

func (LessThanEq) isShapeNode()       {}
func (n LessThanEq) Prov() Provenance { return n.Tag }
func (n LessThanEq) String() string   { return fmt.Sprintf("LessThanEq(%s, %s)", n.P1, n.P2) }
func (n LessThanEq) Equal(o Node) bool {
	p, ok := o.(LessThanEq)
	return ok && n.P1.Equal(p.P1) && n.P2.Equal(p.P2)
}

// UniqueLang holds when at most one Path-successor literal carries each
// language tag.
type UniqueLang struct {
	Path path.Node
	Tag  Provenance
}

func (UniqueLang) isShapeNode()       {}
func (n UniqueLang) Prov() Provenance { return n.Tag }
func (n UniqueLang) String() string   { return "UniqueLang(" + n.Path.String() + ")" }
func (n UniqueLang) Equal(o Node) bool {
	p, ok := o.(UniqueLang)
	return ok && n.Path.Equal(p.Path)
}
