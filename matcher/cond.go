package matcher

import (
	"github.com/gp2-lang/gp2/label"
	"github.com/gp2-lang/gp2/rule"
)

// evalCond evaluates a condition expression against the current bindings
// and morphism. known=false means some operand is not yet bound and the
// result cannot be determined yet; the caller treats an unknown result as
// "don't cut off, re-check later" rather than as failure.
func (e *matchEngine) evalCond(c rule.CondExpr) (ok, known bool) {
	if c == nil {
		return true, true
	}
	switch x := c.(type) {
	case rule.TypeCheck:
		v, bound := e.bindings.lookup(x.Var)
		if !bound {
			return false, false
		}
		return typeMatches(v, x.Kind), true
	case rule.EdgePred:
		return e.evalEdgePred(x)
	case rule.ListEq:
		return e.evalListEq(x)
	case rule.IntCmp:
		return e.evalIntCmp(x)
	case rule.Not:
		r, k := e.evalCond(x.X)
		if !k {
			return false, false
		}
		return !r, true
	case rule.And:
		lr, lk := e.evalCond(x.Left)
		if lk && !lr {
			return false, true // short-circuit: false and anything is false
		}
		rr, rk := e.evalCond(x.Right)
		if rk && !rr {
			return false, true
		}
		if lk && rk {
			return lr && rr, true
		}
		return false, false
	case rule.Or:
		lr, lk := e.evalCond(x.Left)
		if lk && lr {
			return true, true // short-circuit: true or anything is true
		}
		rr, rk := e.evalCond(x.Right)
		if rk && rr {
			return true, true
		}
		if lk && rk {
			return lr || rr, true
		}
		return false, false
	}
	return false, false
}

func typeMatches(v value, kind rule.VarKind) bool {
	if v.IsList {
		return kind == rule.VarList
	}
	switch kind {
	case rule.VarInt:
		return v.Atom.Kind == label.AtomInt
	case rule.VarString, rule.VarChar, rule.VarAtom:
		return v.Atom.Kind == label.AtomString
	default:
		return false
	}
}

func (e *matchEngine) evalEdgePred(x rule.EdgePred) (ok, known bool) {
	srcL := e.rl.L.NodeIndexByName(x.Src)
	tgtL := e.rl.L.NodeIndexByName(x.Tgt)
	if srcL < 0 || tgtL < 0 {
		return false, false
	}
	srcH := e.morph.Nodes[srcL]
	tgtH := e.morph.Nodes[tgtL]
	if int(srcH) < 0 || int(tgtH) < 0 {
		return false, false
	}
	for _, ei := range e.host.Out(srcH) {
		_, tgt := e.host.EdgeEndpoints(ei)
		if tgt != tgtH {
			continue
		}
		if x.Label == nil {
			return true, true
		}
		if label.Equal(e.host.Store(), *x.Label, e.host.Store(), e.host.EdgeLabel(ei)) {
			return true, true
		}
	}
	return false, true
}

func (e *matchEngine) evalListEq(x rule.ListEq) (ok, known bool) {
	left, lok := e.evalAtomsAsList(x.Left)
	right, rok := e.evalAtomsAsList(x.Right)
	if !lok || !rok {
		return false, false
	}
	eq := atomsEqualValue(left, right)
	if x.Negate {
		eq = !eq
	}
	return eq, true
}

// evalAtomsAsList resolves a list expression: a single list-variable
// reference substitutes its bound list, anything else is evaluated
// atom-by-atom.
func (e *matchEngine) evalAtomsAsList(atoms []label.Atom) ([]label.Atom, bool) {
	if len(atoms) == 1 && atoms[0].Kind == label.AtomVariable {
		if v, ok := e.bindings.lookup(atoms[0].Var); ok && v.IsList {
			return v.List, true
		}
	}
	out := make([]label.Atom, len(atoms))
	for i := range atoms {
		v, ok := e.evalAtom(atoms[i])
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func (e *matchEngine) evalIntCmp(x rule.IntCmp) (ok, known bool) {
	l, lok := e.evalAtom(x.Left)
	if !lok || l.Kind != label.AtomInt {
		return false, false
	}
	r, rok := e.evalAtom(x.Right)
	if !rok || r.Kind != label.AtomInt {
		return false, false
	}
	switch x.Op {
	case rule.CmpLess:
		return l.Int < r.Int, true
	case rule.CmpLessEqual:
		return l.Int <= r.Int, true
	case rule.CmpGreater:
		return l.Int > r.Int, true
	case rule.CmpGreaterEqual:
		return l.Int >= r.Int, true
	}
	return false, false
}
