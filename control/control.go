// Package control implements GP2's control-program combinators: the small
// algebra of sequencing, branching, looping and choice that drives which
// rule fires next against a shared host graph.
//
// Grounded on builder/api.go's BuildGraph-style sequential constructor
// composition (small single-purpose steps run one after another by a
// driver that owns all shared state) and flow/dinic.go's repeat-until-
// no-progress phase loop, which is the idiom behind Alap ("as long as
// possible").
//
// Every Program is a tiny struct implementing Run(*Env) Outcome; Env bundles
// the process-wide host/trail/label store plus the named-procedure table and
// the break signal consumed by the nearest enclosing Alap.
package control

import (
	"github.com/gp2-lang/gp2/host"
	"github.com/gp2-lang/gp2/label"
	"github.com/gp2-lang/gp2/trail"
)

// Outcome is a control program's success/failure result.
type Outcome bool

const (
	Success Outcome = true
	Failure Outcome = false
)

// Program is one control-combinator node.
type Program interface {
	Run(env *Env) Outcome
}

// Env is the shared state threaded through one Run call: the host graph,
// its undo trail, the label store, the named-procedure table, and the
// break signal Break sets for the nearest enclosing Alap to observe.
type Env struct {
	Host  *host.Engine
	Trail *trail.Trail
	Store *label.Store
	Procs map[string]Program

	breakSignal bool
}

// NewEnv bundles the three process-wide stores into one Env, ready to Run
// a Program. Procs starts empty; callers add named procedures before
// running any ProcCall that references them.
func NewEnv(h *host.Engine, tr *trail.Trail, s *label.Store) *Env {
	return &Env{Host: h, Trail: tr, Store: s, Procs: make(map[string]Program)}
}
