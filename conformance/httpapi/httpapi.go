// Package httpapi exposes a conformance.Driver over HTTP, in the same
// minimal-router style as Cayley's server/http package: a thin
// *httprouter.Router wrapper with one route per operation and a shared
// JSON error envelope.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/cayleygraph/shaclc/conformance"
	"github.com/cayleygraph/shaclc/graph"
	"github.com/cayleygraph/shaclc/shapeparser"
)

const contentTypeJSON = "application/json"

// jsonResponse writes a JSON body under the given status code. err may be
// a string, an error, or any JSON-marshalable value.
func jsonResponse(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func errResponse(w http.ResponseWriter, code int, err error) {
	jsonResponse(w, code, map[string]string{"error": err.Error()})
}

// API serves a conformance.Driver against a single graph.GraphPort that
// holds both the shapes graph and the data graph, the same combined-store
// arrangement conformance's own tests use.
type API struct {
	g       graph.GraphPort
	driver  *conformance.Driver
	r       *httprouter.Router
	timeout time.Duration
}

// New returns an API backed by g and wires its single route onto a fresh
// httprouter.Router.
func New(g graph.GraphPort) *API {
	api := &API{g: g, driver: conformance.NewDriver(), r: httprouter.New()}
	api.r.POST("/conformance", api.serveConformance)
	return api
}

// SetTimeout bounds how long a single /conformance request is allowed to
// run before its context is cancelled. Zero (the default) means no
// deadline beyond the request's own.
func (api *API) SetTimeout(d time.Duration) {
	api.timeout = d
}

func (api *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api.r.ServeHTTP(w, r)
}

// shapeReport is the JSON-safe projection of a conformance.Report: its
// quad.Value keys are rendered through their String form, since JSON
// object keys must be strings.
type shapeReport struct {
	Conforming []string `json:"conforming"`
	Violating  []string `json:"violating"`
	Error      string   `json:"error,omitempty"`
}

// conformanceResponse wraps per-shape reports alongside the shapes that
// shapeparser.Parse itself could not make sense of (§7's recovery
// policy): those are reported, not treated as a request failure, since
// every other shape still parsed and evaluated normally.
type conformanceResponse struct {
	Shapes        map[string]shapeReport `json:"shapes"`
	ParseWarnings []string               `json:"parseWarnings,omitempty"`
}

// serveConformance parses the shapes graph out of api.g, evaluates every
// shape's conformance against it, and returns one shapeReport per shape,
// keyed by the shape's identifier.
func (api *API) serveConformance(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := api.queryContext(r)
	defer cancel()

	schema, err := shapeparser.Parse(ctx, api.g, shapeparser.Options{Full: true})
	if schema == nil {
		errResponse(w, http.StatusBadRequest, err)
		return
	}

	reports := api.driver.Evaluate(ctx, api.g, schema)

	resp := conformanceResponse{Shapes: make(map[string]shapeReport, len(reports))}
	for shapeName, rep := range reports {
		sr := shapeReport{}
		if rep.Err != nil {
			sr.Error = rep.Err.Error()
			resp.Shapes[shapeName.String()] = sr
			continue
		}
		for _, v := range rep.Conforming {
			sr.Conforming = append(sr.Conforming, v.String())
		}
		for v := range rep.Violating {
			sr.Violating = append(sr.Violating, v.String())
		}
		resp.Shapes[shapeName.String()] = sr
	}
	if err != nil {
		resp.ParseWarnings = append(resp.ParseWarnings, err.Error())
	}

	jsonResponse(w, http.StatusOK, resp)
}

func (api *API) queryContext(r *http.Request) (ctx context.Context, cancel func()) {
	ctx = r.Context()
	if api.timeout > 0 {
		return context.WithTimeout(ctx, api.timeout)
	}
	return context.WithCancel(ctx)
}
