package applier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gp2-lang/gp2/applier"
	"github.com/gp2-lang/gp2/host"
	"github.com/gp2-lang/gp2/label"
	"github.com/gp2-lang/gp2/matcher"
	"github.com/gp2-lang/gp2/rule"
	"github.com/gp2-lang/gp2/searchplan"
	"github.com/gp2-lang/gp2/trail"
)

func newHost() (*label.Store, *host.Engine) {
	s := label.NewStore()
	return s, host.NewEngine(s)
}

func TestApply_DeletesUnmappedEdge(t *testing.T) {
	b := rule.NewBuilder("deleteEdge")
	a := b.AddLNode("a", label.MarkNone, nil, false)
	c := b.AddLNode("c", label.MarkNone, nil, false)
	b.AddLEdge(label.MarkNone, nil, a, c, false)
	ra := b.AddRNode("a", label.MarkNone, nil, false)
	rc := b.AddRNode("c", label.MarkNone, nil, false)
	b.Keep(a, ra).Keep(c, rc)
	rl, err := b.Build()
	require.NoError(t, err)

	plan := searchplan.Generate(rl.L)
	mat := matcher.Compile(rl, plan)
	app := applier.Compile(rl)

	_, e := newHost()
	hn0 := e.AddNode(false, label.Blank)
	hn1 := e.AddNode(false, label.Blank)
	e.AddEdge(label.Blank, hn0, hn1, false)

	morph, binds, ok := mat.Match(e)
	require.True(t, ok)

	tr := trail.New()
	require.NoError(t, app.Apply(e, morph, binds, tr))

	assert.Equal(t, 0, e.EdgeCount())
	assert.Equal(t, 2, e.NodeCount())

	require.NoError(t, tr.Undo(e, 0))
	assert.Equal(t, 1, e.EdgeCount())
}

func TestApply_DeletesDanglingNode(t *testing.T) {
	b := rule.NewBuilder("deleteNode")
	b.AddLNode("n", label.MarkNone, nil, false)
	rl, err := b.Build()
	require.NoError(t, err)

	plan := searchplan.Generate(rl.L)
	mat := matcher.Compile(rl, plan)
	app := applier.Compile(rl)

	_, e := newHost()
	hn0 := e.AddNode(false, label.Blank)

	morph, binds, ok := mat.Match(e)
	require.True(t, ok)

	tr := trail.New()
	require.NoError(t, app.Apply(e, morph, binds, tr))
	assert.Equal(t, 0, e.NodeCount())

	require.NoError(t, tr.Undo(e, 0))
	assert.Equal(t, 1, e.NodeCount())
	assert.Equal(t, label.Blank, e.NodeLabel(hn0))
}

func TestApply_RelabelsNodeUsingBoundVariable(t *testing.T) {
	store, e := newHost()

	b := rule.NewBuilder("increment")
	n := b.AddLNode("n", label.MarkNone, []label.Atom{{Kind: label.AtomVariable, Var: "x"}}, false)
	rn := b.AddRNode("n", label.MarkNone, []label.Atom{{
		Kind: label.AtomAdd,
		Left: &label.Atom{Kind: label.AtomVariable, Var: "x"},
		Right: &label.Atom{Kind: label.AtomInt, Int: 1},
	}}, false)
	b.Keep(n, rn)
	b.Declare("x", rule.VarInt)
	rl, err := b.Build()
	require.NoError(t, err)

	plan := searchplan.Generate(rl.L)
	mat := matcher.Compile(rl, plan)
	app := applier.Compile(rl)

	h := store.Intern([]label.Atom{{Kind: label.AtomInt, Int: 4}})
	hn := e.AddNode(false, label.Label{Mark: label.MarkNone, List: h})

	morph, binds, ok := mat.Match(e)
	require.True(t, ok)

	tr := trail.New()
	require.NoError(t, app.Apply(e, morph, binds, tr))

	atoms := store.Atoms(e.NodeLabel(hn).List)
	require.Len(t, atoms, 1)
	assert.Equal(t, int64(5), atoms[0].Int)

	require.NoError(t, tr.Undo(e, 0))
	atoms = store.Atoms(e.NodeLabel(hn).List)
	assert.Equal(t, int64(4), atoms[0].Int)
}

func TestApply_AddsNewNodeAndEdge(t *testing.T) {
	b := rule.NewBuilder("addChild")
	a := b.AddLNode("a", label.MarkNone, nil, false)
	ra := b.AddRNode("a", label.MarkNone, nil, false)
	rc := b.AddRNode("c", label.MarkNone, nil, false)
	b.AddREdge(label.MarkNone, nil, ra, rc, false)
	b.Keep(a, ra)
	rl, err := b.Build()
	require.NoError(t, err)

	plan := searchplan.Generate(rl.L)
	mat := matcher.Compile(rl, plan)
	app := applier.Compile(rl)

	_, e := newHost()
	e.AddNode(false, label.Blank)

	morph, binds, ok := mat.Match(e)
	require.True(t, ok)

	tr := trail.New()
	require.NoError(t, app.Apply(e, morph, binds, tr))

	assert.Equal(t, 2, e.NodeCount())
	assert.Equal(t, 1, e.EdgeCount())

	require.NoError(t, tr.Undo(e, 0))
	assert.Equal(t, 1, e.NodeCount())
	assert.Equal(t, 0, e.EdgeCount())
}
