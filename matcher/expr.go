// File: expr.go
// Role: the one small interpreter the matcher needs — evaluate condition
// expressions and label atom expressions against the bindings and morphism
// accumulated so far, grounded on original_source/Compiler/ast.h's GPCondExp
// union and its eval walk.
package matcher

import (
	"github.com/gp2-lang/gp2/label"
	"github.com/gp2-lang/gp2/rule"
)

// matchLabel matches a host label's atom list against an L-side atom
// expression list, binding any unbound variables it encounters and
// checking already-bound ones for consistency. It returns false on any
// arity, value, or binding mismatch; on success, new bindings are already
// recorded in e.bindings (the caller snapshots/restores around the call).
//
// A single list-typed variable occupying the entire expression absorbs the
// full host atom list (or is checked against it, if already bound);
// otherwise the expression and the host list must have equal length and
// match position by position.
func (e *matchEngine) matchLabel(hostLbl label.Label, lExpr []label.Atom) bool {
	hostAtoms := e.host.Store().Atoms(hostLbl.List)

	if len(lExpr) == 1 && lExpr[0].Kind == label.AtomVariable {
		if kind, ok := e.rl.VariableKind(lExpr[0].Var); ok && kind == rule.VarList {
			return e.bindOrCheckList(lExpr[0].Var, hostAtoms)
		}
	}

	if len(hostAtoms) != len(lExpr) {
		return false
	}
	for i := range lExpr {
		if !e.matchAtom(lExpr[i], hostAtoms[i]) {
			return false
		}
	}
	return true
}

// matchAtom matches one L-side atom expression against one concrete host
// atom. A bare variable binds (or checks) against the whole host atom; any
// other expression is evaluated to a concrete value first and compared.
func (e *matchEngine) matchAtom(expr label.Atom, hostAtom label.Atom) bool {
	if expr.Kind == label.AtomVariable {
		return e.bindOrCheckScalar(expr.Var, hostAtom)
	}
	val, ok := e.evalAtom(expr)
	if !ok {
		return false
	}
	return atomValueEqual(val, hostAtom)
}

func (e *matchEngine) bindOrCheckScalar(name string, hostAtom label.Atom) bool {
	if v, ok := e.bindings.lookup(name); ok {
		if v.IsList {
			return false
		}
		return atomValueEqual(v.Atom, hostAtom)
	}
	e.bindings.bindScalar(name, hostAtom)
	return true
}

func (e *matchEngine) bindOrCheckList(name string, hostAtoms []label.Atom) bool {
	if v, ok := e.bindings.lookup(name); ok {
		if !v.IsList {
			return false
		}
		return atomsEqualValue(v.List, hostAtoms)
	}
	e.bindings.bindList(name, hostAtoms)
	return true
}

// evalAtom evaluates a concrete (non-variable-only) atom expression to a
// single comparable value, substituting bound variables as it walks.
// ok=false means some referenced variable is not yet bound.
func (e *matchEngine) evalAtom(a label.Atom) (label.Atom, bool) {
	switch a.Kind {
	case label.AtomInt, label.AtomString:
		return a, true
	case label.AtomVariable:
		v, ok := e.bindings.lookup(a.Var)
		if !ok || v.IsList {
			return label.Atom{}, false
		}
		return v.Atom, true
	case label.AtomIndegree, label.AtomOutdegree:
		return e.evalDegreeAtom(a)
	case label.AtomNeg:
		x, ok := e.evalAtom(*a.Left)
		if !ok || x.Kind != label.AtomInt {
			return label.Atom{}, false
		}
		return label.Atom{Kind: label.AtomInt, Int: -x.Int}, true
	case label.AtomAdd, label.AtomSub, label.AtomMul, label.AtomDiv:
		return e.evalArith(a)
	case label.AtomConcat:
		l, ok := e.evalAtom(*a.Left)
		if !ok || l.Kind != label.AtomString {
			return label.Atom{}, false
		}
		r, ok := e.evalAtom(*a.Right)
		if !ok || r.Kind != label.AtomString {
			return label.Atom{}, false
		}
		return label.Atom{Kind: label.AtomString, Str: l.Str + r.Str}, true
	case label.AtomStringLength:
		x, ok := e.evalAtom(*a.Left)
		if !ok || x.Kind != label.AtomString {
			return label.Atom{}, false
		}
		return label.Atom{Kind: label.AtomInt, Int: int64(len(x.Str))}, true
	case label.AtomListLength:
		list, ok := e.evalAtomsAsList(a.ListArg)
		if !ok {
			return label.Atom{}, false
		}
		return label.Atom{Kind: label.AtomInt, Int: int64(len(list))}, true
	}
	return label.Atom{}, false
}

func (e *matchEngine) evalArith(a label.Atom) (label.Atom, bool) {
	l, ok := e.evalAtom(*a.Left)
	if !ok || l.Kind != label.AtomInt {
		return label.Atom{}, false
	}
	r, ok := e.evalAtom(*a.Right)
	if !ok || r.Kind != label.AtomInt {
		return label.Atom{}, false
	}
	switch a.Kind {
	case label.AtomAdd:
		return label.Atom{Kind: label.AtomInt, Int: l.Int + r.Int}, true
	case label.AtomSub:
		return label.Atom{Kind: label.AtomInt, Int: l.Int - r.Int}, true
	case label.AtomMul:
		return label.Atom{Kind: label.AtomInt, Int: l.Int * r.Int}, true
	case label.AtomDiv:
		if r.Int == 0 {
			return label.Atom{}, false
		}
		return label.Atom{Kind: label.AtomInt, Int: l.Int / r.Int}, true
	}
	return label.Atom{}, false
}

// evalDegreeAtom resolves an indegree/outdegree reference to an L-node
// name. The referenced node must already be bound by the time this atom is
// evaluated (guaranteed for rules whose variable-binding ordering is
// well-formed); if not yet bound, evaluation reports ok=false rather than
// guessing.
func (e *matchEngine) evalDegreeAtom(a label.Atom) (label.Atom, bool) {
	idx := e.rl.L.NodeIndexByName(a.NodeName)
	if idx < 0 {
		return label.Atom{}, false
	}
	h := e.morph.Nodes[idx]
	if int(h) < 0 {
		return label.Atom{}, false
	}
	if a.Kind == label.AtomIndegree {
		return label.Atom{Kind: label.AtomInt, Int: int64(e.host.Indegree(h))}, true
	}
	return label.Atom{Kind: label.AtomInt, Int: int64(e.host.Outdegree(h))}, true
}

func atomValueEqual(a, b label.Atom) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case label.AtomInt:
		return a.Int == b.Int
	case label.AtomString:
		return a.Str == b.Str
	default:
		return false
	}
}

func atomsEqualValue(a, b []label.Atom) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !atomValueEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
