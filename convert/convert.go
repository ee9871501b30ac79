// Package convert exports a snapshot of a host graph to three independent
// third-party graph representations, for diagnostics and cross-checking
// search-plan-order-independent invariants (e.g. total node/edge count)
// against implementations this repository does not control.
//
// Grounded on converterts/doc.go, which names exactly these libraries as a
// converter layer the teacher intended but never implemented:
//
//	- github.com/dominikbraun/graph
//	- gonum.org/v1/gonum/graph (graph/simple)
//	- github.com/hmdsefi/gograph
//
// Every exporter here is read-only: the host graph itself is never built
// on top of one of these libraries (none of the three expose the opaque
// stable indices and per-node incidence chains host.Engine requires), so
// these functions walk e.Nodes()/e.Edges() once and populate a fresh
// instance of the target library's graph type. Node identity is carried
// across as the int value of host.NodeIndex, which is stable for the
// lifetime of the exported snapshot.
package convert

import (
	"fmt"

	dbgraph "github.com/dominikbraun/graph"
	"github.com/hmdsefi/gograph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/gp2-lang/gp2/host"
)

// intHash is dominikbraun/graph's required vertex-hashing function for a
// graph keyed by its own int values.
func intHash(v int) int { return v }

// ToDominikbraun exports e to github.com/dominikbraun/graph as a directed
// graph keyed by node index, letting a caller run that library's
// topological/cycle utilities against the current host graph for
// diagnostics (e.g. eyeballing a connectivity regression after a rewrite).
func ToDominikbraun(e *host.Engine) (dbgraph.Graph[int, int], error) {
	g := dbgraph.New(intHash, dbgraph.Directed())
	for _, n := range e.Nodes() {
		if err := g.AddVertex(int(n)); err != nil {
			return nil, fmt.Errorf("convert: dominikbraun AddVertex(%d): %w", n, err)
		}
	}
	for _, x := range e.Edges() {
		src, tgt := e.EdgeEndpoints(x)
		if err := g.AddEdge(int(src), int(tgt)); err != nil {
			return nil, fmt.Errorf("convert: dominikbraun AddEdge(%d,%d): %w", src, tgt, err)
		}
	}
	return g, nil
}

// ToGonum exports e to gonum.org/v1/gonum/graph/simple as a *DirectedGraph,
// so diagnostics can reuse gonum's traversal and path utilities instead of
// hand-rolling a second implementation for every check.
func ToGonum(e *host.Engine) (*simple.DirectedGraph, error) {
	g := simple.NewDirectedGraph()
	for _, n := range e.Nodes() {
		g.AddNode(simple.Node(int64(n)))
	}
	for _, x := range e.Edges() {
		src, tgt := e.EdgeEndpoints(x)
		g.SetEdge(simple.Edge{F: simple.Node(int64(src)), T: simple.Node(int64(tgt))})
	}
	return g, nil
}

// ToGograph exports e to github.com/hmdsefi/gograph, a third independent
// library, for cross-checking search-plan-order-independent properties
// (e.g. total edge count) across three unrelated graph representations in
// tests without any one of them becoming the host graph's source of truth.
func ToGograph(e *host.Engine) (gograph.Graph[int], error) {
	g := gograph.New[int](gograph.Directed())
	vertices := make(map[int]*gograph.Vertex[int], e.NodeCount())
	for _, n := range e.Nodes() {
		v, err := g.AddVertexByID(int(n))
		if err != nil {
			return nil, fmt.Errorf("convert: gograph AddVertexByID(%d): %w", n, err)
		}
		vertices[int(n)] = v
	}
	for _, x := range e.Edges() {
		src, tgt := e.EdgeEndpoints(x)
		if _, err := g.AddEdge(vertices[int(src)], vertices[int(tgt)]); err != nil {
			return nil, fmt.Errorf("convert: gograph AddEdge(%d,%d): %w", src, tgt, err)
		}
	}
	return g, nil
}
