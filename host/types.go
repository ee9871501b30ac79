// Package host implements the mutable host graph: an in-memory directed
// multigraph with per-node incidence chains, a mark bit per item, a
// dedicated root-node chain, and opaque stable indices that survive
// deletion of other items (a freed index is recycled for the next Add, but
// an existing item's index never changes while it lives).
//
// This generalizes github.com/katalvlaran/lvlath's core.Graph (string IDs,
// nested maps, sync.RWMutex-guarded) to the domain's requirements: dense
// integer indices, explicit incidence chains instead of map-of-maps, and
// single-threaded execution (deliberately no locking here — the
// engine that owns a Graph is driven by one goroutine for the lifetime of
// one program run).
//
// Errors:
//
//	ErrNodeNotFound          - index does not name a live node.
//	ErrEdgeNotFound          - index does not name a live edge.
//	ErrNodeHasIncidentEdges  - RemoveNode called on a non-isolated node.
package host

import (
	"errors"

	"github.com/gp2-lang/gp2/label"
)

// Sentinel errors for host graph operations.
var (
	ErrNodeNotFound         = errors.New("host: node not found")
	ErrEdgeNotFound         = errors.New("host: edge not found")
	ErrNodeHasIncidentEdges = errors.New("host: cannot remove node with incident edges")
)

// NodeIndex is a stable, opaque handle to a host node. NoIndex denotes "unmatched".
type NodeIndex int32

// EdgeIndex is a stable, opaque handle to a host edge.
type EdgeIndex int32

// NoIndex is the sentinel "unmatched" value used throughout morphism arrays.
const NoIndex = -1

type nodeSlot struct {
	live  bool
	mark  label.Mark
	lbl   label.Label
	root  bool
	out   []EdgeIndex // outgoing edge indices, append order
	in    []EdgeIndex // incoming edge indices, append order
}

type edgeSlot struct {
	live          bool
	mark          label.Mark
	lbl           label.Label
	src, tgt      NodeIndex
	bidirectional bool
}

// Engine is the mutable host graph plus the label store it interns labels
// through. It is not safe for concurrent use.
type Engine struct {
	store *label.Store

	nodes     []nodeSlot
	freeNodes []NodeIndex

	edges     []edgeSlot
	freeEdges []EdgeIndex

	roots []NodeIndex // chain of currently-root node indices, append/remove order
}

// NewEngine creates an empty host graph backed by store for label interning.
func NewEngine(store *label.Store) *Engine {
	return &Engine{store: store}
}

// Store returns the label store backing this engine's labels.
func (e *Engine) Store() *label.Store { return e.store }
