package control_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gp2-lang/gp2/applier"
	"github.com/gp2-lang/gp2/control"
	"github.com/gp2-lang/gp2/host"
	"github.com/gp2-lang/gp2/label"
	"github.com/gp2-lang/gp2/matcher"
	"github.com/gp2-lang/gp2/rule"
	"github.com/gp2-lang/gp2/searchplan"
	"github.com/gp2-lang/gp2/trail"
)

func newEnv() (*control.Env, *host.Engine) {
	store := label.NewStore()
	h := host.NewEngine(store)
	return control.NewEnv(h, trail.New(), store), h
}

// deleteEdgeCall compiles the "deleteEdge" rule of spec.md §8 scenario 2
// into a runnable control.RuleCall: L = a->c, R = a, c (edge deleted).
func deleteEdgeCall(t *testing.T) control.RuleCall {
	t.Helper()
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
	return control.RuleCall{Match: matcher.Compile(rl, plan), Apply: applier.Compile(rl)}
}

func TestSkipIsIdentityForSequence(t *testing.T) {
	// skip; P ≡ P ≡ P; skip, checked on two independent hosts since a
	// RuleCall mutates the host it runs against.
	envLeft, hostLeft := newEnv()
	a := hostLeft.AddNode(false, label.Blank)
	b := hostLeft.AddNode(false, label.Blank)
	hostLeft.AddEdge(label.Blank, a, b, false)
	left := control.Sequence{Steps: []control.Program{control.Skip{}, deleteEdgeCall(t)}}

	envRight, hostRight := newEnv()
	a = hostRight.AddNode(false, label.Blank)
	b = hostRight.AddNode(false, label.Blank)
	hostRight.AddEdge(label.Blank, a, b, false)
	right := control.Sequence{Steps: []control.Program{deleteEdgeCall(t), control.Skip{}}}

	leftResult := left.Run(envLeft)
	rightResult := right.Run(envRight)
	require.Equal(t, control.Success, leftResult)
	require.Equal(t, leftResult, rightResult)
	assert.Equal(t, 0, hostLeft.EdgeCount())
	assert.Equal(t, 0, hostRight.EdgeCount())
}

func TestFailShortCircuitsSequence(t *testing.T) {
	env, h := newEnv()
	a := h.AddNode(false, label.Blank)
	b := h.AddNode(false, label.Blank)
	h.AddEdge(label.Blank, a, b, false)

	call := deleteEdgeCall(t)
	prog := control.Sequence{Steps: []control.Program{control.Fail{}, call}}

	require.Equal(t, control.Failure, prog.Run(env))
	// fail; P ≡ fail: the edge must still be there, call never ran.
	assert.Equal(t, 1, h.EdgeCount())
}

func TestIfLeavesHostUnchangedByCondition(t *testing.T) {
	env, h := newEnv()
	a := h.AddNode(false, label.Blank)
	b := h.AddNode(false, label.Blank)
	h.AddEdge(label.Blank, a, b, false)

	call := deleteEdgeCall(t)
	prog := control.If{Cond: call, Then: control.Skip{}, Else: control.Skip{}}

	require.Equal(t, control.Success, prog.Run(env))
	// Cond's own edit (the edge deletion) must be rolled back before Then runs.
	assert.Equal(t, 1, h.EdgeCount())
}

func TestTryKeepsEditsOnSuccess(t *testing.T) {
	env, h := newEnv()
	a := h.AddNode(false, label.Blank)
	b := h.AddNode(false, label.Blank)
	h.AddEdge(label.Blank, a, b, false)

	call := deleteEdgeCall(t)
	prog := control.Try{Cond: call, Then: control.Skip{}, Else: control.Fail{}}

	require.Equal(t, control.Success, prog.Run(env))
	assert.Equal(t, 0, h.EdgeCount())
}

func TestTryOnFailingHostEquivalentToElse(t *testing.T) {
	env, h := newEnv()
	h.AddNode(false, label.Blank) // no edge: deleteEdge cannot match

	call := deleteEdgeCall(t)
	prog := control.Try{Cond: call, Then: control.Fail{}, Else: control.Skip{}}

	// try C then P else Q on a host where C fails ≡ Q on the original host.
	require.Equal(t, control.Success, prog.Run(env))
	assert.Equal(t, 1, h.NodeCount())
	assert.Equal(t, 0, h.EdgeCount())
}

func TestAlapIdempotentWhenBodyAlwaysFails(t *testing.T) {
	env, h := newEnv()
	h.AddNode(false, label.Blank) // no edge anywhere: deleteEdge always fails

	call := deleteEdgeCall(t)
	prog := control.Alap{Body: call}

	require.Equal(t, control.Success, prog.Run(env))
	assert.Equal(t, 1, h.NodeCount())
}

func TestAlapStopsAtFirstFailureLeavingLastSuccessCommitted(t *testing.T) {
	env, h := newEnv()
	a := h.AddNode(false, label.Blank)
	b := h.AddNode(false, label.Blank)
	h.AddEdge(label.Blank, a, b, false)

	call := deleteEdgeCall(t)
	prog := control.Alap{Body: call}

	require.Equal(t, control.Success, prog.Run(env))
	assert.Equal(t, 0, h.EdgeCount())
}

func TestOrTriesLeftFirst(t *testing.T) {
	env, h := newEnv()
	a := h.AddNode(false, label.Blank)
	b := h.AddNode(false, label.Blank)
	h.AddEdge(label.Blank, a, b, false)

	call := deleteEdgeCall(t)
	prog := control.Or{Left: call, Right: control.Fail{}}
	require.Equal(t, control.Success, prog.Run(env))
	assert.Equal(t, 0, h.EdgeCount())
}

func TestOrFallsBackToRightOnLeftFailure(t *testing.T) {
	env, _ := newEnv() // no nodes at all: deleteEdge cannot match

	call := deleteEdgeCall(t)
	prog := control.Or{Left: call, Right: control.Skip{}}
	assert.Equal(t, control.Success, prog.Run(env))
}

func TestBreakEndsAlapWithoutFailingIt(t *testing.T) {
	env, h := newEnv()
	a := h.AddNode(false, label.Blank)
	b := h.AddNode(false, label.Blank)
	h.AddEdge(label.Blank, a, b, false)

	call := deleteEdgeCall(t)
	// Each iteration deletes the edge then breaks, so the loop runs once.
	body := control.Sequence{Steps: []control.Program{call, control.Break{}}}
	prog := control.Alap{Body: body}

	require.Equal(t, control.Success, prog.Run(env))
	assert.Equal(t, 0, h.EdgeCount())
}

func TestProcCallInvokesRegisteredProgram(t *testing.T) {
	env, h := newEnv()
	a := h.AddNode(false, label.Blank)
	b := h.AddNode(false, label.Blank)
	h.AddEdge(label.Blank, a, b, false)

	call := deleteEdgeCall(t)
	env.Register(control.Procedure{Name: "cleanup", Body: call})

	require.Equal(t, control.Success, control.ProcCall{Name: "cleanup"}.Run(env))
	assert.Equal(t, 0, h.EdgeCount())
}

func TestProcCallFailsOnUnregisteredName(t *testing.T) {
	env, _ := newEnv()
	assert.Equal(t, control.Failure, control.ProcCall{Name: "missing"}.Run(env))
}

func TestRuleSetCallTriesEachRuleLeftToRight(t *testing.T) {
	env, h := newEnv()
	a := h.AddNode(false, label.Blank)
	b := h.AddNode(false, label.Blank)
	h.AddEdge(label.Blank, a, b, false)

	prog := control.RuleSetCall{Calls: []control.RuleCall{deleteEdgeCall(t)}}
	require.Equal(t, control.Success, prog.Run(env))
	assert.Equal(t, 0, h.EdgeCount())
}
