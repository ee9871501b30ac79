package control

import (
	"github.com/gp2-lang/gp2/applier"
	"github.com/gp2-lang/gp2/matcher"
)

// RuleCall runs one compiled rule: match against the current host, apply on
// success. Matching never mutates the host, so a failed match leaves the
// trail untouched.
type RuleCall struct {
	Match *matcher.Matcher
	Apply *applier.Applier
}

func (r RuleCall) Run(env *Env) Outcome {
	morph, binds, ok := r.Match.Match(env.Host)
	if !ok {
		return Failure
	}
	if err := r.Apply.Apply(env.Host, morph, binds, env.Trail); err != nil {
		return Failure
	}
	return Success
}

// RuleSetCall nondeterministically tries one rule from a set, taken here as
// sugar over left-to-right Or: the first call in Calls that matches fires,
// later calls are never attempted once one succeeds.
type RuleSetCall struct {
	Calls []RuleCall
}

func (r RuleSetCall) Run(env *Env) Outcome {
	for _, c := range r.Calls {
		mark := env.Trail.Mark()
		if c.Run(env) == Success {
			return Success
		}
		if err := env.Trail.Undo(env.Host, mark); err != nil {
			return Failure
		}
	}
	return Failure
}
