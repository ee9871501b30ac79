// Package searchplan implements the search-plan generator: given a rule's
// left-hand graph L, it produces an ordered sequence of search operations
// that together cover every L-node and L-edge exactly once, preferring a
// connected traversal and breaking ties by ascending index so the plan (and
// therefore the matcher generated from it) is reproducible.
//
// Grounded on dfs/dfs.go and bfs/bfs.go's deterministic, queue/stack-driven
// traversal shape (fetch neighbors once, visit in index order, record
// parent/via edge) generalized from a single connected graph walk to
// the policy: root-node start preferred, one fresh isolated start
// per disconnected component, and edge-aware operation tagging (root/node/
// edge isolation, incident-target/source/either-endpoint, edge-from-source/
// target, loop).
//
// Errors: none — Generate always produces a valid (possibly multi-component)
// plan for any well-formed rule.Graph, including the empty graph (an empty
// Plan).
package searchplan

import "github.com/gp2-lang/gp2/rule"

// OpTag is one of the nine stable search-operation tags.
type OpTag byte

const (
	OpRootNode OpTag = 'r'
	OpNode     OpTag = 'n'
	OpNodeIn   OpTag = 'i'
	OpNodeOut  OpTag = 'o'
	OpNodeBidi OpTag = 'b'
	OpEdge     OpTag = 'e'
	OpEdgeSrc  OpTag = 's'
	OpEdgeTgt  OpTag = 't'
	OpLoop     OpTag = 'l'
)

// Op is one search operation: commit one more L-item to the morphism.
type Op struct {
	Tag OpTag

	// NodeIndex is the L-node index committed by this op (r, n, i, o, b).
	NodeIndex int

	// EdgeIndex is the L-edge index committed by this op (e, s, t, l); -1
	// for node ops (for i/o/b the supplying edge is in Via).
	EdgeIndex int

	// Via is the L-edge index whose host edge is already known and is used
	// to find the candidate node, for ops i/o/b. -1 for other ops.
	Via int

	// From is the already-matched L-node index an edge op extends from,
	// for ops s/t/l. -1 for other ops.
	From int

	// IsNodeOp distinguishes node-committing ops (r,n,i,o,b) from
	// edge-committing ops (e,s,t,l) without re-switching on Tag.
	IsNodeOp bool
}

// Plan is the full ordered sequence of search operations for one rule's L.
type Plan struct {
	Ops []Op
}

// Generate builds a deterministic search plan for l.
func Generate(l rule.Graph) Plan {
	g := &planner{l: l}
	g.nodeIncident = make([][]int, len(l.Nodes))
	for ei, e := range l.Edges {
		g.nodeIncident[e.Src] = append(g.nodeIncident[e.Src], ei)
		if e.Tgt != e.Src {
			g.nodeIncident[e.Tgt] = append(g.nodeIncident[e.Tgt], ei)
		}
	}
	// Deduplicate+sort each node's incident list so scan order is
	// deterministic ascending-by-edge-index, matching the generator's tie-break rule.
	for i := range g.nodeIncident {
		g.nodeIncident[i] = sortUnique(g.nodeIncident[i])
	}

	visitedNode := make([]bool, len(l.Nodes))
	visitedEdge := make([]bool, len(l.Edges))

	for {
		start, isRoot, ok := pickStart(l, visitedNode)
		if !ok {
			break
		}
		g.startComponent(start, isRoot, visitedNode, visitedEdge)
	}

	// Defensive: any edge whose endpoints were somehow not both covered by
	// node traversal (not expected to occur — every edge's endpoints are L
	// nodes and all L nodes are visited above) is appended as an isolated
	// edge match so Coverage still holds.
	for ei := range l.Edges {
		if !visitedEdge[ei] {
			g.ops = append(g.ops, Op{Tag: OpEdge, EdgeIndex: ei, Via: -1, From: -1})
			visitedEdge[ei] = true
		}
	}

	return Plan{Ops: g.ops}
}

type planner struct {
	l            rule.Graph
	nodeIncident [][]int
	ops          []Op
}

// pickStart chooses the next component's starting node: the lowest-index
// unvisited root node if one exists, else the lowest-index unvisited node.
func pickStart(l rule.Graph, visited []bool) (idx int, isRoot bool, ok bool) {
	for i := range l.Nodes {
		if !visited[i] && l.Nodes[i].Root {
			return i, true, true
		}
	}
	for i := range l.Nodes {
		if !visited[i] {
			return i, false, true
		}
	}
	return 0, false, false
}

func (g *planner) startComponent(start int, isRoot bool, visitedNode, visitedEdge []bool) {
	tag := OpNode
	if isRoot {
		tag = OpRootNode
	}
	g.ops = append(g.ops, Op{Tag: tag, NodeIndex: start, EdgeIndex: -1, Via: -1, From: -1, IsNodeOp: true})
	visitedNode[start] = true

	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, ei := range g.nodeIncident[cur] {
			if visitedEdge[ei] {
				continue
			}
			e := g.l.Edges[ei]

			if e.Loop {
				visitedEdge[ei] = true
				g.ops = append(g.ops, Op{Tag: OpLoop, EdgeIndex: ei, Via: -1, From: cur})
				continue
			}

			other := e.Tgt
			curIsSrc := cur == e.Src
			if !curIsSrc {
				other = e.Src
			}

			if visitedNode[other] {
				// Closing edge: both endpoints already matched.
				visitedEdge[ei] = true
				t := OpEdgeTgt
				if curIsSrc {
					t = OpEdgeSrc
				}
				g.ops = append(g.ops, Op{Tag: t, EdgeIndex: ei, Via: -1, From: cur})
				continue
			}

			visitedEdge[ei] = true
			visitedNode[other] = true
			queue = append(queue, other)

			switch {
			case e.Bidirectional:
				g.ops = append(g.ops, Op{Tag: OpNodeBidi, NodeIndex: other, EdgeIndex: -1, Via: ei, From: -1, IsNodeOp: true})
			case curIsSrc:
				g.ops = append(g.ops, Op{Tag: OpNodeIn, NodeIndex: other, EdgeIndex: -1, Via: ei, From: -1, IsNodeOp: true})
			default:
				g.ops = append(g.ops, Op{Tag: OpNodeOut, NodeIndex: other, EdgeIndex: -1, Via: ei, From: -1, IsNodeOp: true})
			}
		}
	}
}

func sortUnique(xs []int) []int {
	// Small slices (typical node degree); insertion sort keeps this
	// allocation-free and avoids importing sort for a handful of elements.
	for i := 1; i < len(xs); i++ {
		v := xs[i]
		j := i - 1
		for j >= 0 && xs[j] > v {
			xs[j+1] = xs[j]
			j--
		}
		xs[j+1] = v
	}
	out := xs[:0]
	for i, v := range xs {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
