package searchplan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gp2-lang/gp2/label"
	"github.com/gp2-lang/gp2/rule"
	"github.com/gp2-lang/gp2/searchplan"
)

// coverage asserts the coverage invariant: every L-node and every
// L-edge appears as the target of exactly one search operation.
func coverage(t *testing.T, l rule.Graph, p searchplan.Plan) {
	t.Helper()
	nodeCount := make(map[int]int)
	edgeCount := make(map[int]int)
	for _, op := range p.Ops {
		if op.IsNodeOp {
			nodeCount[op.NodeIndex]++
		} else {
			edgeCount[op.EdgeIndex]++
		}
	}
	for i := range l.Nodes {
		assert.Equal(t, 1, nodeCount[i], "node %d covered exactly once", i)
	}
	for i := range l.Edges {
		assert.Equal(t, 1, edgeCount[i], "edge %d covered exactly once", i)
	}
}

func pathGraph() rule.Graph {
	return rule.Graph{
		Nodes: []rule.Node{{Name: "a", Root: true}, {Name: "b"}, {Name: "c"}},
		Edges: []rule.Edge{
			{Src: 0, Tgt: 1},
			{Src: 1, Tgt: 2},
		},
	}
}

func TestGenerate_PathGraphStartsAtRoot(t *testing.T) {
	l := pathGraph()
	p := searchplan.Generate(l)
	coverage(t, l, p)

	assert.Equal(t, searchplan.OpRootNode, p.Ops[0].Tag)
	assert.Equal(t, 0, p.Ops[0].NodeIndex)
}

func TestGenerate_DisconnectedComponents(t *testing.T) {
	l := rule.Graph{
		Nodes: []rule.Node{{Name: "a"}, {Name: "b"}, {Name: "x"}, {Name: "y"}},
		Edges: []rule.Edge{
			{Src: 0, Tgt: 1},
			{Src: 2, Tgt: 3},
		},
	}
	p := searchplan.Generate(l)
	coverage(t, l, p)

	// First op of each component must be a start op (r or n), so exactly
	// two start ops total for two components.
	starts := 0
	for _, op := range p.Ops {
		if op.Tag == searchplan.OpNode || op.Tag == searchplan.OpRootNode {
			starts++
		}
	}
	assert.Equal(t, 2, starts)
}

func TestGenerate_LoopEdge(t *testing.T) {
	l := rule.Graph{
		Nodes: []rule.Node{{Name: "a"}},
		Edges: []rule.Edge{{Src: 0, Tgt: 0, Loop: true}},
	}
	p := searchplan.Generate(l)
	coverage(t, l, p)
	assert.Equal(t, searchplan.OpLoop, p.Ops[len(p.Ops)-1].Tag)
}

func TestGenerate_ClosingEdgeBothEndpointsMatched(t *testing.T) {
	// Triangle: a-b, b-c, c-a. Two edges discover nodes; the third closes.
	l := rule.Graph{
		Nodes: []rule.Node{{Name: "a", Root: true}, {Name: "b"}, {Name: "c"}},
		Edges: []rule.Edge{
			{Src: 0, Tgt: 1},
			{Src: 1, Tgt: 2},
			{Src: 2, Tgt: 0},
		},
	}
	p := searchplan.Generate(l)
	coverage(t, l, p)

	closing := 0
	for _, op := range p.Ops {
		if op.Tag == searchplan.OpEdgeSrc || op.Tag == searchplan.OpEdgeTgt {
			closing++
		}
	}
	assert.Equal(t, 1, closing)
}

func TestGenerate_EmptyGraph(t *testing.T) {
	p := searchplan.Generate(rule.Graph{})
	assert.Empty(t, p.Ops)
}

func TestGenerate_BidirectionalEdge(t *testing.T) {
	l := rule.Graph{
		Nodes: []rule.Node{{Name: "a", Root: true}, {Name: "b"}},
		Edges: []rule.Edge{{Src: 0, Tgt: 1, Bidirectional: true}},
	}
	p := searchplan.Generate(l)
	coverage(t, l, p)

	found := false
	for _, op := range p.Ops {
		if op.Tag == searchplan.OpNodeBidi {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPlan_DumpIsStableAndNonEmpty(t *testing.T) {
	l := pathGraph()
	p := searchplan.Generate(l)
	d1 := p.Dump()
	d2 := p.Dump()
	assert.Equal(t, d1, d2)
	assert.NotEmpty(t, d1)
}

var _ = label.Blank // keep label import meaningful if fixtures grow to use labels
