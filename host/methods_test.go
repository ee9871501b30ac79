package host_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gp2-lang/gp2/host"
	"github.com/gp2-lang/gp2/label"
)

func newEngine() (*host.Engine, *label.Store) {
	s := label.NewStore()
	return host.NewEngine(s), s
}

func TestEngine_AddNodeAndEdge(t *testing.T) {
	e, _ := newEngine()

	a := e.AddNode(true, label.Blank)
	b := e.AddNode(false, label.Blank)
	x := e.AddEdge(label.Blank, a, b, false)

	assert.Equal(t, 2, e.NodeCount())
	assert.Equal(t, 1, e.EdgeCount())
	assert.Equal(t, 1, e.Outdegree(a))
	assert.Equal(t, 1, e.Indegree(b))
	assert.Equal(t, []host.NodeIndex{a}, e.Roots())

	src, tgt := e.EdgeEndpoints(x)
	assert.Equal(t, a, src)
	assert.Equal(t, b, tgt)
}

func TestEngine_RemoveNodeRequiresIsolation(t *testing.T) {
	e, _ := newEngine()

	a := e.AddNode(false, label.Blank)
	b := e.AddNode(false, label.Blank)
	e.AddEdge(label.Blank, a, b, false)

	err := e.RemoveNode(a)
	require.ErrorIs(t, err, host.ErrNodeHasIncidentEdges)
}

func TestEngine_IndicesAreStableAcrossDeletion(t *testing.T) {
	e, _ := newEngine()

	a := e.AddNode(false, label.Blank)
	b := e.AddNode(false, label.Blank)
	x := e.AddEdge(label.Blank, a, b, false)

	require.NoError(t, e.RemoveEdge(x))
	require.NoError(t, e.RemoveNode(a))

	// b's index must still be valid and unaffected by a's removal.
	assert.Equal(t, 1, e.NodeCount())
	assert.True(t, e.NodeLabel(b) == label.Blank)

	// A fresh AddNode recycles a's freed index.
	c := e.AddNode(false, label.Blank)
	assert.Equal(t, a, c, "freed index should be reused, not reshuffled")
}

func TestEngine_RelabelAndRoot(t *testing.T) {
	e, s := newEngine()
	red := label.Label{Mark: label.MarkRed, List: s.Intern(nil)}

	a := e.AddNode(false, label.Blank)
	prev, err := e.RelabelNode(a, red)
	require.NoError(t, err)
	assert.Equal(t, label.Blank, prev)
	assert.Equal(t, label.MarkRed, e.NodeLabel(a).Mark)

	wasRoot, err := e.SetRoot(a, true)
	require.NoError(t, err)
	assert.False(t, wasRoot)
	assert.True(t, e.IsRoot(a))
}

func TestEngine_RemoveEdgeNotFound(t *testing.T) {
	e, _ := newEngine()
	err := e.RemoveEdge(0)
	assert.ErrorIs(t, err, host.ErrEdgeNotFound)
}
