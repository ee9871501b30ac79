// Package gp2 is the runtime entry point for GP 2, a rule-based graph
// transformation language: it bundles the three process-wide mutable
// stores — the host graph, its undo trail, and the label intern store —
// into one Engine value and runs a compiled control.Program against them.
//
// A GP 2 program declares rules (compiled via the rule/searchplan/matcher/
// applier pipeline) and composes them with control combinators (control
// package) into a control program. This package is the thin seam that
// wires those pieces to a live host graph for one execution.
//
//	host/       - the mutable host graph
//	label/      - the label algebra and hash-consed list store
//	trail/      - the undo trail consulted by if/try/!
//	rule/       - compiled rule intermediate representation
//	searchplan/ - search-plan generation over a rule's L
//	matcher/    - injective subgraph matching compiled from a search plan
//	applier/    - rule application (delete/relabel/add) compiled from a rule
//	control/    - the control-program combinator algebra
//	convert/    - read-only export of a host graph to third-party graph types
//
// Grounded on Design Note 9.2: process-wide mutable state can be bundled
// into a single value passed through the call chain, since single-threaded
// execution makes the distinction cosmetic.
package gp2

import (
	"github.com/gp2-lang/gp2/control"
	"github.com/gp2-lang/gp2/host"
	"github.com/gp2-lang/gp2/label"
	"github.com/gp2-lang/gp2/trail"
)

// Engine bundles the host graph, its undo trail, and the label store for
// one program execution, and owns the control.Env that runs against them.
type Engine struct {
	Host  *host.Engine
	Trail *trail.Trail
	Store *label.Store

	env *control.Env
}

// NewEngine creates an empty host graph plus a fresh trail and label
// store, ready to Run a control.Program.
func NewEngine() *Engine {
	store := label.NewStore()
	h := host.NewEngine(store)
	tr := trail.New()
	return &Engine{
		Host:  h,
		Trail: tr,
		Store: store,
		env:   control.NewEnv(h, tr, store),
	}
}

// Register makes a named procedure callable from control.ProcCall within
// any program later run on this Engine.
func (e *Engine) Register(proc control.Procedure) {
	e.env.Register(proc)
}

// Run executes p against this Engine's host graph and returns its
// success/failure outcome. Per spec.md §7, Run never fails on a normal
// match/condition/dangling-node outcome — those are exactly what Outcome
// reports; Go's runtime already terminates the process on OOM or stack
// overflow, so there is no recoverable error channel here.
func (e *Engine) Run(p control.Program) control.Outcome {
	return p.Run(e.env)
}
