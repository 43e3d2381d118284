package shapeparser

import (
	"fmt"

	"github.com/piprate/json-gold/ld"

	"github.com/cayleygraph/shaclc/quad"
)

// xsdString is the datatype json-gold assigns a plain (languageless)
// string literal; it carries no information beyond quad.String itself.
const xsdString = "http://www.w3.org/2001/XMLSchema#string"

// QuadsFromJSONLD expands and flattens a JSON-LD document into the quads
// its default graph contains, for loading a shapes graph (or a data
// graph) authored as JSON-LD rather than raw triples. Named graphs other
// than "@default" are ignored, matching the scope of a single
// graph.GraphPort. Used by this package's own fixture-backed tests, the
// same "any format in, triples out" role json-gold plays for Cayley's
// quad/jsonld package.
func QuadsFromJSONLD(doc interface{}) ([]quad.Quad, error) {
	api := ld.NewJsonLdApi()
	opts := ld.NewJsonLdOptions("")
	dataset, err := api.ToRDF(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("shapeparser: expanding JSON-LD: %w", err)
	}

	var out []quad.Quad
	for _, q := range dataset.Graphs["@default"] {
		s, err := nodeToValue(q.Subject)
		if err != nil {
			return nil, err
		}
		p, err := nodeToValue(q.Predicate)
		if err != nil {
			return nil, err
		}
		o, err := nodeToValue(q.Object)
		if err != nil {
			return nil, err
		}
		out = append(out, quad.Quad{Subject: s, Predicate: p, Object: o})
	}
	return out, nil
}

// nodeToValue converts a json-gold RDF term into this compiler's own
// quad.Value algebra.
func nodeToValue(n ld.Node) (quad.Value, error) {
	switch v := n.(type) {
	case *ld.IRI:
		return quad.IRI(v.Value), nil
	case *ld.BlankNode:
		return quad.BlankId(v.Attribute), nil
	case *ld.Literal:
		switch {
		case v.Language != "":
			return quad.LangString{Value: quad.String(v.Value), Lang: v.Language}, nil
		case v.Datatype != "" && v.Datatype != xsdString:
			return quad.TypedString{Value: quad.String(v.Value), Type: quad.IRI(v.Datatype)}, nil
		default:
			return quad.String(v.Value), nil
		}
	default:
		return nil, fmt.Errorf("shapeparser: unsupported JSON-LD term %T", n)
	}
}
