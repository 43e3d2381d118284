// Package sh contains the opaque IRI constants of the SHACL Core vocabulary
// that the shape parser looks for on the shapes graph. The compiler never
// interprets these beyond string equality; they are listed here purely so
// that shapeparser doesn't scatter raw IRI literals through its sub-parsers.
package sh

import "github.com/cayleygraph/shaclc/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://www.w3.org/ns/shacl#`
	Prefix = `sh:`
)

const (
	// Shape declarations

	NodeShape     = Prefix + `NodeShape`
	PropertyShape = Prefix + `PropertyShape`
	Path          = Prefix + `path`

	// Path expression vocabulary (property-path algebra, §4.1)

	InversePath       = Prefix + `inversePath`
	AlternativePath   = Prefix + `alternativePath`
	ZeroOrMorePath    = Prefix + `zeroOrMorePath`
	ZeroOrOnePath     = Prefix + `zeroOrOnePath`
	OneOrMorePath     = Prefix + `oneOrMorePath`

	// Shape / logical links

	Node               = Prefix + `node`
	Property           = Prefix + `property`
	Not                = Prefix + `not`
	And                = Prefix + `and`
	Or                 = Prefix + `or`
	Xone               = Prefix + `xone`
	QualifiedValueShape          = Prefix + `qualifiedValueShape`
	QualifiedMinCount            = Prefix + `qualifiedMinCount`
	QualifiedMaxCount            = Prefix + `qualifiedMaxCount`
	QualifiedValueShapesDisjoint = Prefix + `qualifiedValueShapesDisjoint`

	// Value tests

	HasValue    = Prefix + `hasValue`
	In          = Prefix + `in`
	Class       = Prefix + `class`
	Datatype    = Prefix + `datatype`
	NodeKind    = Prefix + `nodeKind`
	Pattern     = Prefix + `pattern`
	Flags       = Prefix + `flags`
	LanguageIn  = Prefix + `languageIn`
	UniqueLang  = Prefix + `uniqueLang`
	MinInclusive = Prefix + `minInclusive`
	MinExclusive = Prefix + `minExclusive`
	MaxInclusive = Prefix + `maxInclusive`
	MaxExclusive = Prefix + `maxExclusive`
	MinLength    = Prefix + `minLength`
	MaxLength    = Prefix + `maxLength`

	// Node kinds

	IRI                = Prefix + `IRI`
	Literal            = Prefix + `Literal`
	BlankNode          = Prefix + `BlankNode`
	BlankNodeOrIRI     = Prefix + `BlankNodeOrIRI`
	BlankNodeOrLiteral = Prefix + `BlankNodeOrLiteral`
	IRIOrLiteral       = Prefix + `IRIOrLiteral`

	// Cardinality / pairs / closedness

	MinCount          = Prefix + `minCount`
	MaxCount          = Prefix + `maxCount`
	Equals            = Prefix + `equals`
	Disjoint          = Prefix + `disjoint`
	LessThan          = Prefix + `lessThan`
	LessThanOrEquals  = Prefix + `lessThanOrEquals`
	Closed            = Prefix + `closed`
	IgnoredProperties = Prefix + `ignoredProperties`

	// Targets

	TargetNode       = Prefix + `targetNode`
	TargetClass      = Prefix + `targetClass`
	TargetSubjectsOf = Prefix + `targetSubjectsOf`
	TargetObjectsOf  = Prefix + `targetObjectsOf`

	// Constraint component tags, used as provenance (shape.Provenance) --
	// opaque beyond equality, exactly like every other IRI above.

	NodeConstraintComponent          = Prefix + `NodeConstraintComponent`
	PropertyConstraintComponent      = Prefix + `PropertyConstraintComponent`
	NotConstraintComponent           = Prefix + `NotConstraintComponent`
	AndConstraintComponent           = Prefix + `AndConstraintComponent`
	OrConstraintComponent            = Prefix + `OrConstraintComponent`
	XoneConstraintComponent          = Prefix + `XoneConstraintComponent`
	ClassConstraintComponent         = Prefix + `ClassConstraintComponent`
	DatatypeConstraintComponent      = Prefix + `DatatypeConstraintComponent`
	NodeKindConstraintComponent      = Prefix + `NodeKindConstraintComponent`
	PatternConstraintComponent       = Prefix + `PatternConstraintComponent`
	LanguageInConstraintComponent    = Prefix + `LanguageInConstraintComponent`
	UniqueLangConstraintComponent    = Prefix + `UniqueLangConstraintComponent`
	HasValueConstraintComponent      = Prefix + `HasValueConstraintComponent`
	InConstraintComponent            = Prefix + `InConstraintComponent`
	ClosedConstraintComponent        = Prefix + `ClosedConstraintComponent`
	MinCountConstraintComponent      = Prefix + `MinCountConstraintComponent`
	MaxCountConstraintComponent      = Prefix + `MaxCountConstraintComponent`
	EqualsConstraintComponent        = Prefix + `EqualsConstraintComponent`
	DisjointConstraintComponent      = Prefix + `DisjointConstraintComponent`
	LessThanConstraintComponent      = Prefix + `LessThanConstraintComponent`
	LessThanOrEqualsConstraintComponent = Prefix + `LessThanOrEqualsConstraintComponent`
	QualifiedMinCountConstraintComponent = Prefix + `QualifiedMinCountConstraintComponent`
	QualifiedMaxCountConstraintComponent = Prefix + `QualifiedMaxCountConstraintComponent`
	MinExclusiveConstraintComponent  = Prefix + `MinExclusiveConstraintComponent`
	MaxExclusiveConstraintComponent  = Prefix + `MaxExclusiveConstraintComponent`
	MinInclusiveConstraintComponent  = Prefix + `MinInclusiveConstraintComponent`
	MaxInclusiveConstraintComponent  = Prefix + `MaxInclusiveConstraintComponent`
	MinLengthConstraintComponent     = Prefix + `MinLengthConstraintComponent`
	MaxLengthConstraintComponent     = Prefix + `MaxLengthConstraintComponent`
)
