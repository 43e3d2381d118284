package shape

import (
	"fmt"
	"strings"

	"github.com/cayleygraph/shaclc/quad"
)

// TestKind is the closed enumeration of leaf predicates a Test node may
// carry. Like Node, it is sealed to the constructors in this file.
type TestKind interface {
	String() string
	Equal(TestKind) bool
	isTestKind()
}

// Datatype holds when the node under test is a literal of datatype D.
type Datatype struct{ D quad.IRI }

func (Datatype) isTestKind()     {}
func (k Datatype) String() string { return "Datatype(" + string(k.D) + ")" }
func (k Datatype) Equal(o TestKind) bool {
	p, ok := o.(Datatype)
	return ok && k.D == p.D
}

// NodeKindSet is a bitmask over the three SHACL node kinds; the six
// sh:nodeKind values are this set's seven non-empty members minus the
// full union (IRI|Blank|Literal, never produced by the vocabulary).
type NodeKindSet uint8

const (
	KindIRI NodeKindSet = 1 << iota
	KindBlank
	KindLiteral
)

func (k NodeKindSet) String() string {
	var parts []string
	if k&KindIRI != 0 {
		parts = append(parts, "IRI")
	}
	if k&KindBlank != 0 {
		parts = append(parts, "Blank")
	}
	if k&KindLiteral != 0 {
		parts = append(parts, "Literal")
	}
	return strings.Join(parts, "|")
}

// NodeKind holds when the node under test is one of the kinds in Kinds.
type NodeKind struct{ Kinds NodeKindSet }

func (NodeKind) isTestKind()     {}
func (k NodeKind) String() string { return "NodeKind(" + k.Kinds.String() + ")" }
func (k NodeKind) Equal(o TestKind) bool {
	p, ok := o.(NodeKind)
	return ok && k.Kinds == p.Kinds
}

// Pattern holds when the node under test is a literal matching Regex
// under Flags (the sh:flags mini-language: i, s, m, x).
type Pattern struct {
	Regex string
	Flags string
}

func (Pattern) isTestKind() {}
func (k Pattern) String() string {
	if k.Flags == "" {
		return fmt.Sprintf("Pattern(%q)", k.Regex)
	}
	return fmt.Sprintf("Pattern(%q, %q)", k.Regex, k.Flags)
}
func (k Pattern) Equal(o TestKind) bool {
	p, ok := o.(Pattern)
	return ok && k.Regex == p.Regex && k.Flags == p.Flags
}

// LanguageIn holds when the node under test is a literal whose language
// tag is one of Tags.
type LanguageIn struct{ Tags []string }

func (LanguageIn) isTestKind() {}
func (k LanguageIn) String() string {
	return "LanguageIn(" + strings.Join(k.Tags, ", ") + ")"
}
func (k LanguageIn) Equal(o TestKind) bool {
	p, ok := o.(LanguageIn)
	if !ok || len(k.Tags) != len(p.Tags) {
		return false
	}
	for i := range k.Tags {
		if k.Tags[i] != p.Tags[i] {
			return false
		}
	}
	return true
}

// NumericRange holds when the node under test is a numeric literal
// within the declared bounds. After ShapeParser's consolidation, at most
// one of MinIncl/MinExcl and at most one of MaxIncl/MaxExcl is set.
type NumericRange struct {
	MinIncl, MinExcl *float64
	MaxIncl, MaxExcl *float64
}

func (NumericRange) isTestKind() {}
func (k NumericRange) String() string {
	var parts []string
	if k.MinIncl != nil {
		parts = append(parts, fmt.Sprintf("minIncl=%v", *k.MinIncl))
	}
	if k.MinExcl != nil {
		parts = append(parts, fmt.Sprintf("minExcl=%v", *k.MinExcl))
	}
	if k.MaxIncl != nil {
		parts = append(parts, fmt.Sprintf("maxIncl=%v", *k.MaxIncl))
	}
	if k.MaxExcl != nil {
		parts = append(parts, fmt.Sprintf("maxExcl=%v", *k.MaxExcl))
	}
	return "NumericRange(" + strings.Join(parts, ", ") + ")"
}
func (k NumericRange) Equal(o TestKind) bool {
	p, ok := o.(NumericRange)
	if !ok {
		return false
	}
	return floatPtrEqual(k.MinIncl, p.MinIncl) && floatPtrEqual(k.MinExcl, p.MinExcl) &&
		floatPtrEqual(k.MaxIncl, p.MaxIncl) && floatPtrEqual(k.MaxExcl, p.MaxExcl)
}

func floatPtrEqual(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

// LengthRange holds when the node under test is a literal whose string
// length lies within the declared bounds.
type LengthRange struct {
	MinLen, MaxLen *int
}

func (LengthRange) isTestKind() {}
func (k LengthRange) String() string {
	var parts []string
	if k.MinLen != nil {
		parts = append(parts, fmt.Sprintf("minLen=%d", *k.MinLen))
	}
	if k.MaxLen != nil {
		parts = append(parts, fmt.Sprintf("maxLen=%d", *k.MaxLen))
	}
	return "LengthRange(" + strings.Join(parts, ", ") + ")"
}
func (k LengthRange) Equal(o TestKind) bool {
	p, ok := o.(LengthRange)
	if !ok {
		return false
	}
	return intPtrEqual(k.MinLen, p.MinLen) && intPtrEqual(k.MaxLen, p.MaxLen)
}

func intPtrEqual(a, b *int) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}
