package graph

import "errors"

// ErrEmptyList is returned by GraphPort.List when the list head does not
// resolve to a non-empty rdf:first/rdf:rest chain, in contexts that
// require a non-empty list.
var ErrEmptyList = errors.New("graph: empty RDF list")
