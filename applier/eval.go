package applier

import (
	"fmt"

	"github.com/gp2-lang/gp2/label"
	"github.com/gp2-lang/gp2/matcher"
)

// errUnboundVariable is returned when an R-side expression references a
// variable the matcher did not bind, or uses an atom kind this evaluator
// does not handle (the indegree/outdegree operators). rule.Compile does not
// check R-side expressions, so Apply reports it rather than panicking.
var errUnboundVariable = fmt.Errorf("applier: R-side expression references an unbound variable")

// evalAtomList instantiates an R-side atom-expression list into concrete
// atoms: a single list-typed variable expands to its whole bound list,
// otherwise each position is evaluated independently.
func evalAtomList(expr []label.Atom, b matcher.Bindings) ([]label.Atom, error) {
	if len(expr) == 1 && expr[0].Kind == label.AtomVariable {
		if v, ok := b[expr[0].Var]; ok && v.IsList {
			return v.List, nil
		}
	}
	out := make([]label.Atom, len(expr))
	for i := range expr {
		v, err := evalAtom(expr[i], b)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func evalAtom(a label.Atom, b matcher.Bindings) (label.Atom, error) {
	switch a.Kind {
	case label.AtomInt, label.AtomString:
		return a, nil
	case label.AtomVariable:
		v, ok := b[a.Var]
		if !ok || v.IsList {
			return label.Atom{}, errUnboundVariable
		}
		return v.Atom, nil
	case label.AtomNeg:
		x, err := evalAtom(*a.Left, b)
		if err != nil {
			return label.Atom{}, err
		}
		return label.Atom{Kind: label.AtomInt, Int: -x.Int}, nil
	case label.AtomAdd, label.AtomSub, label.AtomMul, label.AtomDiv:
		return evalArith(a, b)
	case label.AtomConcat:
		l, err := evalAtom(*a.Left, b)
		if err != nil {
			return label.Atom{}, err
		}
		r, err := evalAtom(*a.Right, b)
		if err != nil {
			return label.Atom{}, err
		}
		return label.Atom{Kind: label.AtomString, Str: l.Str + r.Str}, nil
	case label.AtomStringLength:
		x, err := evalAtom(*a.Left, b)
		if err != nil {
			return label.Atom{}, err
		}
		return label.Atom{Kind: label.AtomInt, Int: int64(len(x.Str))}, nil
	case label.AtomListLength:
		list, err := evalAtomList(a.ListArg, b)
		if err != nil {
			return label.Atom{}, err
		}
		return label.Atom{Kind: label.AtomInt, Int: int64(len(list))}, nil
	}
	return label.Atom{}, errUnboundVariable
}

func evalArith(a label.Atom, b matcher.Bindings) (label.Atom, error) {
	l, err := evalAtom(*a.Left, b)
	if err != nil {
		return label.Atom{}, err
	}
	r, err := evalAtom(*a.Right, b)
	if err != nil {
		return label.Atom{}, err
	}
	switch a.Kind {
	case label.AtomAdd:
		return label.Atom{Kind: label.AtomInt, Int: l.Int + r.Int}, nil
	case label.AtomSub:
		return label.Atom{Kind: label.AtomInt, Int: l.Int - r.Int}, nil
	case label.AtomMul:
		return label.Atom{Kind: label.AtomInt, Int: l.Int * r.Int}, nil
	case label.AtomDiv:
		if r.Int == 0 {
			return label.Atom{}, fmt.Errorf("applier: division by zero")
		}
		return label.Atom{Kind: label.AtomInt, Int: l.Int / r.Int}, nil
	}
	return label.Atom{}, errUnboundVariable
}
