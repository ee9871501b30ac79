// File: methods.go
// Role: node/edge lifecycle (add/remove/relabel/root-flag) and degree/
// incidence queries, grounded on core/methods_edges.go and
// core/methods_vertices.go's ordered-mutation discipline, generalized to
// integer indices with free-lists instead of string-keyed maps.
//
// AI-HINT (file):
//   - Indices are never reused while an item is live; RemoveNode/RemoveEdge
//     push the freed index onto a free-list consulted by the next Add.
//   - RemoveNode requires the node to have no incident edges (dangling
//     protection is enforced earlier, by the matcher's degree filter; this
//     is a defensive invariant check here, not a normal-outcome error).
package host

import "github.com/gp2-lang/gp2/label"

// AddNode allocates a new node with the given root flag and label.
//
// Complexity: O(1) amortized (free-list reuse or slice append).
func (e *Engine) AddNode(root bool, lbl label.Label) NodeIndex {
	var idx NodeIndex
	if n := len(e.freeNodes); n > 0 {
		idx = e.freeNodes[n-1]
		e.freeNodes = e.freeNodes[:n-1]
		e.nodes[idx] = nodeSlot{live: true, mark: lbl.Mark, lbl: lbl, root: root}
	} else {
		idx = NodeIndex(len(e.nodes))
		e.nodes = append(e.nodes, nodeSlot{live: true, mark: lbl.Mark, lbl: lbl, root: root})
	}
	if root {
		e.roots = append(e.roots, idx)
	}
	return idx
}

// AddEdge allocates a new edge from src to tgt with the given label and
// bidirectional flag (a bidirectional edge may match either
// endpoint order during matching; that policy lives in matcher, not here).
//
// Complexity: O(1) amortized.
func (e *Engine) AddEdge(lbl label.Label, src, tgt NodeIndex, bidirectional bool) EdgeIndex {
	var idx EdgeIndex
	slot := edgeSlot{live: true, mark: lbl.Mark, lbl: lbl, src: src, tgt: tgt, bidirectional: bidirectional}
	if n := len(e.freeEdges); n > 0 {
		idx = e.freeEdges[n-1]
		e.freeEdges = e.freeEdges[:n-1]
		e.edges[idx] = slot
	} else {
		idx = EdgeIndex(len(e.edges))
		e.edges = append(e.edges, slot)
	}
	e.nodes[src].out = append(e.nodes[src].out, idx)
	e.nodes[tgt].in = append(e.nodes[tgt].in, idx)
	return idx
}

// RemoveNode deletes node n, freeing its index for reuse. n must have no
// incident edges (ErrNodeHasIncidentEdges otherwise) — applier always
// deletes a node's matched edges first, so this path
// is only hit on a programmer error.
func (e *Engine) RemoveNode(n NodeIndex) error {
	if !e.liveNode(n) {
		return ErrNodeNotFound
	}
	slot := &e.nodes[n]
	if len(slot.out) != 0 || len(slot.in) != 0 {
		return ErrNodeHasIncidentEdges
	}
	if slot.root {
		e.removeRoot(n)
	}
	*slot = nodeSlot{}
	e.freeNodes = append(e.freeNodes, n)
	return nil
}

// RemoveEdge deletes edge x, unlinking it from both endpoints' incidence
// chains and freeing its index for reuse.
func (e *Engine) RemoveEdge(x EdgeIndex) error {
	if !e.liveEdge(x) {
		return ErrEdgeNotFound
	}
	slot := e.edges[x]
	e.nodes[slot.src].out = removeFromChain(e.nodes[slot.src].out, x)
	e.nodes[slot.tgt].in = removeFromChain(e.nodes[slot.tgt].in, x)
	e.edges[x] = edgeSlot{}
	e.freeEdges = append(e.freeEdges, x)
	return nil
}

// RelabelNode overwrites n's label, returning the previous one so the
// caller (applier, via trail) can push an undo record.
func (e *Engine) RelabelNode(n NodeIndex, lbl label.Label) (label.Label, error) {
	if !e.liveNode(n) {
		return label.Label{}, ErrNodeNotFound
	}
	prev := e.nodes[n].lbl
	e.nodes[n].lbl = lbl
	e.nodes[n].mark = lbl.Mark
	return prev, nil
}

// RelabelEdge overwrites x's label, returning the previous one.
func (e *Engine) RelabelEdge(x EdgeIndex, lbl label.Label) (label.Label, error) {
	if !e.liveEdge(x) {
		return label.Label{}, ErrEdgeNotFound
	}
	prev := e.edges[x].lbl
	e.edges[x].lbl = lbl
	e.edges[x].mark = lbl.Mark
	return prev, nil
}

// SetRoot changes n's root flag, returning the previous value.
func (e *Engine) SetRoot(n NodeIndex, root bool) (bool, error) {
	if !e.liveNode(n) {
		return false, ErrNodeNotFound
	}
	prev := e.nodes[n].root
	if prev == root {
		return prev, nil
	}
	e.nodes[n].root = root
	if root {
		e.roots = append(e.roots, n)
	} else {
		e.removeRoot(n)
	}
	return prev, nil
}

// Indegree returns the number of edges targeting n.
func (e *Engine) Indegree(n NodeIndex) int { return len(e.nodes[n].in) }

// Outdegree returns the number of edges sourced at n.
func (e *Engine) Outdegree(n NodeIndex) int { return len(e.nodes[n].out) }

// Bidegree returns the total incidence count (in + out) of n, counting a
// self-loop twice (once per direction), matching the convention used by
// the matcher's degree filter for bidirectional L-edges.
func (e *Engine) Bidegree(n NodeIndex) int { return len(e.nodes[n].in) + len(e.nodes[n].out) }

// Out returns the outgoing edge indices of n in append order.
func (e *Engine) Out(n NodeIndex) []EdgeIndex { return e.nodes[n].out }

// In returns the incoming edge indices of n in append order.
func (e *Engine) In(n NodeIndex) []EdgeIndex { return e.nodes[n].in }

// Roots returns the current root-node chain, front to back (preserving
// documented iteration order for the 'r' search operation).
func (e *Engine) Roots() []NodeIndex { return e.roots }

// Nodes returns all live node indices in ascending order.
func (e *Engine) Nodes() []NodeIndex {
	out := make([]NodeIndex, 0, len(e.nodes))
	for i := range e.nodes {
		if e.nodes[i].live {
			out = append(out, NodeIndex(i))
		}
	}
	return out
}

// Edges returns all live edge indices in ascending order.
func (e *Engine) Edges() []EdgeIndex {
	out := make([]EdgeIndex, 0, len(e.edges))
	for i := range e.edges {
		if e.edges[i].live {
			out = append(out, EdgeIndex(i))
		}
	}
	return out
}

// NodeLabel returns n's current label.
func (e *Engine) NodeLabel(n NodeIndex) label.Label { return e.nodes[n].lbl }

// EdgeLabel returns x's current label.
func (e *Engine) EdgeLabel(x EdgeIndex) label.Label { return e.edges[x].lbl }

// IsRoot reports whether n currently carries the root flag.
func (e *Engine) IsRoot(n NodeIndex) bool { return e.nodes[n].root }

// EdgeEndpoints returns x's source and target node indices.
func (e *Engine) EdgeEndpoints(x EdgeIndex) (src, tgt NodeIndex) {
	return e.edges[x].src, e.edges[x].tgt
}

// EdgeBidirectional reports whether x was added as bidirectional.
func (e *Engine) EdgeBidirectional(x EdgeIndex) bool { return e.edges[x].bidirectional }

// NodeCount returns the number of live nodes.
func (e *Engine) NodeCount() int {
	n := 0
	for i := range e.nodes {
		if e.nodes[i].live {
			n++
		}
	}
	return n
}

// EdgeCount returns the number of live edges.
func (e *Engine) EdgeCount() int {
	n := 0
	for i := range e.edges {
		if e.edges[i].live {
			n++
		}
	}
	return n
}

// ReviveNode re-creates a node at exactly index n (not a freshly allocated
// one), for use by trail.Undo when reversing a node deletion: the trail's
// other pending records may still reference n by its original index (e.g.
// an edge deletion recorded before the node deletion, per the applier's
// edges-then-nodes order), so identity must be preserved across undo.
//
// n must currently be free (either beyond the slice or on the free-list);
// ErrNodeNotFound is returned if n is already live.
func (e *Engine) ReviveNode(n NodeIndex, root bool, lbl label.Label) error {
	if int(n) < len(e.nodes) && e.nodes[n].live {
		return ErrNodeNotFound
	}
	for int(n) >= len(e.nodes) {
		e.nodes = append(e.nodes, nodeSlot{})
		e.freeNodes = append(e.freeNodes, NodeIndex(len(e.nodes)-1))
	}
	e.freeNodes = removeFromFreeNodes(e.freeNodes, n)
	e.nodes[n] = nodeSlot{live: true, mark: lbl.Mark, lbl: lbl, root: root}
	if root {
		e.roots = append(e.roots, n)
	}
	return nil
}

// ReviveEdge re-creates an edge at exactly index x, mirroring ReviveNode's
// identity-preservation contract.
func (e *Engine) ReviveEdge(x EdgeIndex, lbl label.Label, src, tgt NodeIndex, bidirectional bool) error {
	if int(x) < len(e.edges) && e.edges[x].live {
		return ErrEdgeNotFound
	}
	for int(x) >= len(e.edges) {
		e.edges = append(e.edges, edgeSlot{})
		e.freeEdges = append(e.freeEdges, EdgeIndex(len(e.edges)-1))
	}
	e.freeEdges = removeFromFreeEdges(e.freeEdges, x)
	e.edges[x] = edgeSlot{live: true, mark: lbl.Mark, lbl: lbl, src: src, tgt: tgt, bidirectional: bidirectional}
	e.nodes[src].out = append(e.nodes[src].out, x)
	e.nodes[tgt].in = append(e.nodes[tgt].in, x)
	return nil
}

func removeFromFreeNodes(free []NodeIndex, n NodeIndex) []NodeIndex {
	for i, v := range free {
		if v == n {
			return append(free[:i], free[i+1:]...)
		}
	}
	return free
}

func removeFromFreeEdges(free []EdgeIndex, x EdgeIndex) []EdgeIndex {
	for i, v := range free {
		if v == x {
			return append(free[:i], free[i+1:]...)
		}
	}
	return free
}

func (e *Engine) liveNode(n NodeIndex) bool {
	return n >= 0 && int(n) < len(e.nodes) && e.nodes[n].live
}

func (e *Engine) liveEdge(x EdgeIndex) bool {
	return x >= 0 && int(x) < len(e.edges) && e.edges[x].live
}

func (e *Engine) removeRoot(n NodeIndex) {
	for i, r := range e.roots {
		if r == n {
			e.roots = append(e.roots[:i], e.roots[i+1:]...)
			return
		}
	}
}

func removeFromChain(chain []EdgeIndex, x EdgeIndex) []EdgeIndex {
	for i, v := range chain {
		if v == x {
			return append(chain[:i], chain[i+1:]...)
		}
	}
	return chain
}
