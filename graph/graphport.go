// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package graph defines GraphPort, the only interface the compiler needs
// from an RDF graph and its query engine. Every backing store must
// implement at least this interface; as long as a store can surface it,
// the compiler pipeline works unmodified against it.
package graph

import (
	"context"

	"github.com/cayleygraph/shaclc/quad"
)

// GraphPort is the abstract collaborator the compiler uses to read a
// shapes-graph while parsing, and to execute lowered unary queries while
// evaluating conformance. It deliberately exposes nothing else: no
// transactions, no writes, no backend-specific tuning.
type GraphPort interface {
	// Quads scans the graph for triples matching the given pattern. Any
	// component left nil is a wildcard. The returned Cursor must be closed
	// by the caller once it is no longer needed.
	Quads(ctx context.Context, s, p, o, l quad.Value) (Cursor, error)

	// HasQuad reports whether an exact quad (label optional, nil meaning
	// "no label") exists in the graph.
	HasQuad(ctx context.Context, s, p, o, l quad.Value) (bool, error)

	// List walks an RDF list (rdf:first/rdf:rest chain) from its head node
	// and returns its members in order. A head of rdf:nil yields an empty
	// slice and no error; it returns ErrEmptyList if head is neither rdf:nil
	// nor a node carrying rdf:first.
	List(ctx context.Context, head quad.Value) ([]quad.Value, error)

	// Query executes a unary query string (as produced by the lower
	// package) and returns the bindings of its single projected variable.
	Query(ctx context.Context, unaryQuery string) ([]quad.Value, error)
}

// Cursor iterates over a stream of quads produced by GraphPort.Quads.
type Cursor interface {
	// Next advances the cursor. It returns false at the end of the stream
	// or on error; call Err to distinguish the two.
	Next(ctx context.Context) bool
	// Quad returns the quad at the cursor's current position.
	Quad() quad.Quad
	// Err returns the first error encountered by the cursor, if any.
	Err() error
	// Close releases resources held by the cursor.
	Close() error
}
