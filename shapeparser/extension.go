package shapeparser

import (
	"context"
	"sync"

	"github.com/cayleygraph/shaclc/graph"
	"github.com/cayleygraph/shaclc/quad"
	"github.com/cayleygraph/shaclc/shape"
)

// ExtractContext bundles the graph access a custom constraint component
// needs to inspect the shape it was registered against, the same
// arguments every built-in sub-parser (tests.go, property.go, ...) takes
// directly.
type ExtractContext struct {
	Ctx       context.Context
	Graph     graph.GraphPort
	ShapeName quad.Value
}

// Objects returns the objects of every (ShapeName, p, ?) triple, the
// same pattern scan testsParse and its siblings use to read a shape's
// own parameters.
func (c *ExtractContext) Objects(p quad.IRI) ([]quad.Value, error) {
	return objects(c.Ctx, c.Graph, c.ShapeName, p)
}

// ConstraintComponentFunc extracts zero or more shape.Node terms for a
// single SHACL constraint component out of a shape's declaration. It is
// the shape of every built-in sub-parser, generalized for components
// shapeparser doesn't know about natively.
type ConstraintComponentFunc func(*ExtractContext) ([]shape.Node, error)

var (
	extMu         sync.RWMutex
	extComponents = map[quad.IRI]ConstraintComponentFunc{}
)

// RegisterConstraintComponent installs fn as the extractor for a custom
// constraint component, keyed by the predicate a shape carries it under
// (e.g. a vendor-specific sh:js-style property). parseNodeShape and
// parsePropertyShape run every registered extractor against each shape
// they visit, alongside the built-in sub-parsers, so a SHACL-JS-style
// extension behaves exactly like a native constraint component.
//
// Registration is global and meant to happen once at program startup,
// before any Parse call; it is not safe to call concurrently with Parse.
func RegisterConstraintComponent(pred quad.IRI, fn ConstraintComponentFunc) {
	extMu.Lock()
	defer extMu.Unlock()
	extComponents[pred] = fn
}

// extensionParse runs every registered ConstraintComponentFunc against
// shapeName, tagging each result with the predicate it was registered
// under so provenance still names the responsible component.
func extensionParse(ctx context.Context, g graph.GraphPort, shapeName quad.Value) ([]shape.Node, error) {
	extMu.RLock()
	defer extMu.RUnlock()
	if len(extComponents) == 0 {
		return nil, nil
	}

	ec := &ExtractContext{Ctx: ctx, Graph: g, ShapeName: shapeName}
	var out []shape.Node
	for pred, fn := range extComponents {
		ns, err := fn(ec)
		if err != nil {
			return nil, err
		}
		for _, n := range ns {
			out = append(out, tagged(n, string(pred)))
		}
	}
	return out, nil
}
