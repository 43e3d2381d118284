// Package conformance implements ConformanceDriver (§4.5): for every
// shape that carries both a constraint definition and a target, it
// expands and lowers both trees, runs them against a graph.GraphPort,
// and reports the target results not covered by the constraint results.
// Ported from original_source/ssf/conformance.py.
package conformance

import (
	"context"
	"sync"
	"time"

	"github.com/cayleygraph/shaclc/clog"
	"github.com/cayleygraph/shaclc/graph"
	"github.com/cayleygraph/shaclc/lower"
	"github.com/cayleygraph/shaclc/quad"
	"github.com/cayleygraph/shaclc/rewrite"
	"github.com/cayleygraph/shaclc/shape"
)

// Report is one shape's conformance result. Violating is empty and Err
// is nil when every targeted node satisfies the shape.
type Report struct {
	Conforming []quad.Value
	Violating  map[quad.Value]struct{}
	Err        error
}

// Driver evaluates a shape.Schema's conformance against a graph.GraphPort.
type Driver struct{}

// NewDriver returns a ready-to-use Driver. A Driver carries no state of
// its own; the zero value works too.
func NewDriver() *Driver { return &Driver{} }

// Evaluate runs §4.5's four steps for every shape in schema that has a
// target, keyed by shape identifier. Per-shape iterations are
// independent (§5) and run concurrently; ctx is propagated to every
// GraphPort call but its cancellation is advisory, not relied on for
// correctness.
func (d *Driver) Evaluate(ctx context.Context, g graph.GraphPort, schema *shape.Schema) map[quad.Value]*Report {
	reports := make(map[quad.Value]*Report, len(schema.Targets))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for shapeName, def := range schema.Definitions {
		tgt, ok := schema.Targets[shapeName]
		if !ok {
			continue
		}
		shapeName, def, tgt := shapeName, def, tgt
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := d.evaluateOne(ctx, g, schema.Definitions, def, tgt)
			mu.Lock()
			reports[shapeName] = r
			mu.Unlock()
		}()
	}
	wg.Wait()
	return reports
}

func (d *Driver) evaluateOne(ctx context.Context, g graph.GraphPort, definitions map[quad.Value]shape.Node, def, tgt shape.Node) *Report {
	start := time.Now()
	outcome := "error"
	defer func() {
		mChecksTotal.WithLabelValues(outcome).Inc()
		mCheckSeconds.Observe(time.Since(start).Seconds())
	}()

	expanded := rewrite.Expand(definitions, def)
	// OptimizeConformance (§5 of SPEC_FULL): simplify the expanded
	// constraint tree before lowering it into a query. The target tree
	// is left as parsed; constraint-query and shape-fragment-query
	// optimization are independent concerns (ssf/conformance.py).
	optimized := rewrite.Clean(expanded, false)

	shapeQuery, err := lower.Lower(optimized)
	if err != nil {
		return &Report{Err: err}
	}
	targetQuery, err := lower.Lower(tgt)
	if err != nil {
		return &Report{Err: err}
	}

	rhs, err := g.Query(ctx, shapeQuery)
	if err != nil {
		return &Report{Err: err}
	}
	lhs, err := g.Query(ctx, targetQuery)
	if err != nil {
		return &Report{Err: err}
	}

	rhsSet := make(map[quad.Value]struct{}, len(rhs))
	for _, v := range rhs {
		rhsSet[v] = struct{}{}
	}

	var conforming []quad.Value
	violating := make(map[quad.Value]struct{})
	for _, v := range lhs {
		if _, ok := rhsSet[v]; ok {
			conforming = append(conforming, v)
		} else {
			violating[v] = struct{}{}
		}
	}

	if len(violating) == 0 {
		outcome = "conforming"
	} else {
		outcome = "violating"
		clog.Infof("conformance: %d node(s) violate shape", len(violating))
	}

	return &Report{Conforming: conforming, Violating: violating}
}
