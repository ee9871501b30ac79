// Package matcher implements injective subgraph matching: given a rule's
// search plan over L, find a morphism into the current host graph (or
// report that none exists), using a depth-first backtracking search with a
// dedicated engine struct to keep dependencies explicit, grounded on
// tsp/bb.go's branch-and-bound discipline (deterministic candidate order,
// explicit undo-on-backtrack, no shared mutable globals) and dfs/dfs.go's
// traversal shape.
//
// Search order follows searchplan.Plan exactly: each Op either commits a
// node or commits an edge to the morphism under construction, and every
// candidate is checked against four filters in order — injectivity, mark,
// degree, label — before the remaining condition predicates are
// re-evaluated as soon as all their variables are bound (early cutoff).
// Failing any filter or predicate backtracks: undo the candidate and try
// the next one, or fail the whole Op if candidates are exhausted.
package matcher

import (
	"github.com/gp2-lang/gp2/host"
	"github.com/gp2-lang/gp2/rule"
	"github.com/gp2-lang/gp2/searchplan"
)

// Morphism records, per L-node/L-edge index, the host index it is matched
// to. An entry of host.NoIndex means "not yet committed" (only possible on
// a partial morphism during search; Match never returns one).
type Morphism struct {
	Nodes []host.NodeIndex
	Edges []host.EdgeIndex
}

// Matcher is a compiled, reusable search over one rule's plan.
type Matcher struct {
	rl   *rule.Rule
	plan searchplan.Plan
}

// Compile binds a rule to its search plan, ready for repeated Match calls.
func Compile(rl *rule.Rule, plan searchplan.Plan) *Matcher {
	return &Matcher{rl: rl, plan: plan}
}

// matchEngine holds all mutable search state for one Match call.
type matchEngine struct {
	rl   *rule.Rule
	plan searchplan.Plan
	host *host.Engine

	morph    Morphism
	usedNode map[host.NodeIndex]bool
	usedEdge map[host.EdgeIndex]bool
	bindings bindings
}

// Match searches e for an occurrence of the matcher's rule, following the
// compiled plan in order. It returns the first morphism found under
// ascending-index tie-break (the same order the plan enumerates
// candidates) together with the variable values that morphism bound, or
// ok=false if none exists.
func (m *Matcher) Match(e *host.Engine) (Morphism, Bindings, bool) {
	// Early-exit per spec.md §4.4: a host smaller than L in either count
	// cannot contain an injective morphism, so report failure before
	// allocating any search state.
	if e.NodeCount() < len(m.rl.L.Nodes) || e.EdgeCount() < len(m.rl.L.Edges) {
		return Morphism{}, nil, false
	}
	edges := make([]host.EdgeIndex, len(m.rl.L.Edges))
	for i := range edges {
		edges[i] = host.EdgeIndex(host.NoIndex)
	}
	eng := &matchEngine{
		rl:       m.rl,
		plan:     m.plan,
		host:     e,
		morph:    Morphism{Nodes: fillNoIndex(len(m.rl.L.Nodes)), Edges: edges},
		usedNode: make(map[host.NodeIndex]bool),
		usedEdge: make(map[host.EdgeIndex]bool),
		bindings: newBindings(),
	}
	if eng.search(0) {
		out := make(Bindings, len(eng.bindings.m))
		for k, v := range eng.bindings.m {
			out[k] = v
		}
		return eng.morph, out, true
	}
	return Morphism{}, nil, false
}

func fillNoIndex(n int) []host.NodeIndex {
	out := make([]host.NodeIndex, n)
	for i := range out {
		out[i] = host.NodeIndex(host.NoIndex)
	}
	return out
}

// search tries to extend the morphism through plan.Ops[i:], returning true
// once every op is committed and the full condition holds.
func (e *matchEngine) search(i int) bool {
	if i == len(e.plan.Ops) {
		ok, _ := e.evalCond(e.rl.Condition)
		return ok
	}
	op := e.plan.Ops[i]
	if op.IsNodeOp {
		return e.searchNode(i, op)
	}
	return e.searchEdge(i, op)
}

// anchorOf returns the L-node index of via's endpoint other than newL,
// i.e. the already-matched side of the edge discovering newL.
func anchorOf(via rule.Edge, newL int) int {
	if via.Tgt == newL {
		return via.Src
	}
	return via.Tgt
}

func (e *matchEngine) searchNode(i int, op searchplan.Op) bool {
	lNode := &e.rl.L.Nodes[op.NodeIndex]

	if op.Via < 0 {
		var candidates []host.NodeIndex
		if op.Tag == searchplan.OpRootNode {
			candidates = e.host.Roots()
		} else {
			candidates = e.host.Nodes()
		}
		for _, cand := range candidates {
			ok, undo := e.tryCommitNode(op, lNode, cand)
			if !ok {
				continue
			}
			if e.search(i + 1) {
				return true
			}
			undo()
		}
		return false
	}

	via := e.rl.L.Edges[op.Via]
	anchorL := anchorOf(via, op.NodeIndex)
	anchorH := e.morph.Nodes[anchorL]
	bidi := op.Tag == searchplan.OpNodeBidi || via.Bidirectional
	forward := via.Src == anchorL

	for _, he := range e.neighborEdges(anchorH, bidi, forward) {
		if e.usedEdge[he] {
			continue
		}
		cand := e.otherEndpoint(he, anchorH)
		ok, undoNode := e.tryCommitNode(op, lNode, cand)
		if !ok {
			continue
		}
		okEdge, undoEdge := e.tryCommitEdgeAt(op.Via, via, he)
		if !okEdge {
			undoNode()
			continue
		}
		if e.search(i + 1) {
			return true
		}
		undoEdge()
		undoNode()
	}
	return false
}

func (e *matchEngine) searchEdge(i int, op searchplan.Op) bool {
	lEdge := e.rl.L.Edges[op.EdgeIndex]

	var anchorH, otherH host.NodeIndex
	switch op.Tag {
	case searchplan.OpLoop:
		anchorH = e.morph.Nodes[op.From]
		otherH = anchorH
	case searchplan.OpEdgeTgt:
		anchorH = e.morph.Nodes[lEdge.Tgt]
		otherH = e.morph.Nodes[lEdge.Src]
	default: // OpEdgeSrc, OpEdge (fallback)
		anchorH = e.morph.Nodes[lEdge.Src]
		otherH = e.morph.Nodes[lEdge.Tgt]
	}

	for _, he := range e.edgesBetween(anchorH, otherH, lEdge.Bidirectional || op.Tag == searchplan.OpEdge) {
		if e.usedEdge[he] {
			continue
		}
		ok, undo := e.tryCommitEdgeAt(op.EdgeIndex, lEdge, he)
		if !ok {
			continue
		}
		if e.search(i + 1) {
			return true
		}
		undo()
	}
	return false
}

// neighborEdges lists anchorH's incident host edges consistent with the
// requested direction: forward means "edges leaving anchorH", !forward
// means "edges entering anchorH"; bidi additionally includes the opposite
// direction, deduplicating a self-loop.
func (e *matchEngine) neighborEdges(anchorH host.NodeIndex, bidi, forward bool) []host.EdgeIndex {
	if bidi {
		out := append([]host.EdgeIndex{}, e.host.Out(anchorH)...)
		return append(out, e.host.In(anchorH)...)
	}
	if forward {
		return e.host.Out(anchorH)
	}
	return e.host.In(anchorH)
}

// otherEndpoint returns he's endpoint that is not anchorH (for a self-loop,
// anchorH itself).
func (e *matchEngine) otherEndpoint(he host.EdgeIndex, anchorH host.NodeIndex) host.NodeIndex {
	src, tgt := e.host.EdgeEndpoints(he)
	if src == anchorH {
		return tgt
	}
	return src
}

// edgesBetween lists host edges connecting anchorH and otherH, directed
// anchorH->otherH, plus the reverse direction when either is requested.
func (e *matchEngine) edgesBetween(anchorH, otherH host.NodeIndex, includeReverse bool) []host.EdgeIndex {
	var out []host.EdgeIndex
	for _, ei := range e.host.Out(anchorH) {
		if _, tgt := e.host.EdgeEndpoints(ei); tgt == otherH {
			out = append(out, ei)
		}
	}
	if includeReverse {
		for _, ei := range e.host.In(anchorH) {
			if src, _ := e.host.EdgeEndpoints(ei); src == otherH {
				out = append(out, ei)
			}
		}
	}
	return out
}

// tryCommitNode applies the mark/degree/label filters to candidate host
// node cand for L-node lNode, commits on success, and returns an undo
// closure to revert bindings/usage if the caller later backtracks.
func (e *matchEngine) tryCommitNode(op searchplan.Op, lNode *rule.Node, cand host.NodeIndex) (bool, func()) {
	if e.usedNode[cand] {
		return false, nil
	}
	if !lNode.Mark.MatchesHost(e.host.NodeLabel(cand).Mark) {
		return false, nil
	}
	if !e.degreeOK(lNode, cand) {
		return false, nil
	}
	saved := e.bindings.snapshot()
	if !e.matchLabel(e.host.NodeLabel(cand), lNode.ListExpr) {
		e.bindings.restore(saved)
		return false, nil
	}
	if !e.evalBoundPredicates(op.NodeIndex) {
		e.bindings.restore(saved)
		return false, nil
	}

	e.morph.Nodes[op.NodeIndex] = cand
	e.usedNode[cand] = true
	return true, func() {
		e.morph.Nodes[op.NodeIndex] = host.NodeIndex(host.NoIndex)
		delete(e.usedNode, cand)
		e.bindings.restore(saved)
	}
}

func (e *matchEngine) degreeOK(lNode *rule.Node, cand host.NodeIndex) bool {
	total := lNode.Indeg + lNode.Outdeg + lNode.Bideg
	if lNode.Dangling {
		// The node is deleted by this rule: the host node must end up
		// isolated, so its total live incidence must equal exactly what L
		// already accounts for, or deletion would leave a dangling edge.
		// Bidegree counts in+out, matching total's in+out+bidi accounting
		// (a bidirectional L-edge is satisfiable by either host direction).
		return e.host.Bidegree(cand) == total
	}
	return e.host.Indegree(cand) >= lNode.Indeg &&
		e.host.Outdegree(cand) >= lNode.Outdeg &&
		e.host.Bidegree(cand) >= total
}

// tryCommitEdgeAt applies the mark/label filters to candidate host edge
// cand for L-edge lEdge, commits on success, and returns an undo closure
// that reverts the morphism slot, edge usage, and any bindings matchLabel
// made for this candidate — mirroring tryCommitNode's contract, so a
// caller backtracking out of this candidate never leaks a stale binding
// into the next one.
func (e *matchEngine) tryCommitEdgeAt(lIdx int, lEdge rule.Edge, cand host.EdgeIndex) (bool, func()) {
	if e.usedEdge[cand] {
		return false, nil
	}
	if !lEdge.Mark.MatchesHost(e.host.EdgeLabel(cand).Mark) {
		return false, nil
	}
	saved := e.bindings.snapshot()
	if !e.matchLabel(e.host.EdgeLabel(cand), lEdge.ListExpr) {
		e.bindings.restore(saved)
		return false, nil
	}
	e.morph.Edges[lIdx] = cand
	e.usedEdge[cand] = true
	return true, func() {
		e.morph.Edges[lIdx] = host.EdgeIndex(host.NoIndex)
		delete(e.usedEdge, cand)
		e.bindings.restore(saved)
	}
}

// evalBoundPredicates re-checks every predicate that mentions a variable
// bound by L-node nodeIdx, now that it is bound, and reports false the
// moment one is determinately false (early cutoff). Predicates that still
// mention unbound variables are skipped; they are re-tried when their last
// variable becomes bound or, at worst, at full commit.
func (e *matchEngine) evalBoundPredicates(nodeIdx int) bool {
	for _, pidx := range e.rl.NodePredicates[nodeIdx] {
		ok, known := e.evalCond(e.rl.Predicates[pidx].Expr)
		if known && !ok {
			return false
		}
	}
	return true
}
