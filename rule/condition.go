// File: condition.go
// Role: the condition expression tree (typecheck predicates,
// edge-existence predicates, list (in)equality, integer comparisons,
// negation, conjunction, disjunction), modelled as a tagged variant per
// Design Note 9.4 ("polymorphic AST nodes... not as open inheritance
// hierarchies"), matching original_source/Compiler/ast.h's GPCondExp union.
package rule

import "github.com/gp2-lang/gp2/label"

// CondExpr is any node of a condition expression tree.
type CondExpr interface {
	isCondExpr()
}

// CmpOp is an integer comparison operator.
type CmpOp uint8

const (
	CmpLess CmpOp = iota
	CmpLessEqual
	CmpGreater
	CmpGreaterEqual
)

// TypeCheck tests whether the value bound to Var has the runtime Kind
// (int/char/string/atom check in ast.h's terms).
type TypeCheck struct {
	Var  string
	Kind VarKind
}

// EdgePred tests for the existence of an edge between two already-matched
// L-node names, optionally constrained to a given label.
type EdgePred struct {
	Src, Tgt string
	Label    *label.Label // nil means "any label"
}

// ListEq tests (in)equality of two list expressions.
type ListEq struct {
	Left, Right []label.Atom
	Negate      bool // true => "!=" (NOT_EQUAL in ast.h)
}

// IntCmp tests an integer comparison between two atomic expressions.
type IntCmp struct {
	Left, Right label.Atom
	Op          CmpOp
}

// Not negates a condition.
type Not struct{ X CondExpr }

// And is a short-circuiting conjunction.
type And struct{ Left, Right CondExpr }

// Or is a short-circuiting disjunction (condition-tree Or, distinct from
// control.Or which composes Programs).
type Or struct{ Left, Right CondExpr }

func (TypeCheck) isCondExpr() {}
func (EdgePred) isCondExpr()  {}
func (ListEq) isCondExpr()    {}
func (IntCmp) isCondExpr()    {}
func (Not) isCondExpr()       {}
func (And) isCondExpr()       {}
func (Or) isCondExpr()        {}

// varsMentioned returns the set of variable/node names a condition node's
// immediate operands reference, used by Compile to back-fill
// Rule.NodePredicates. It does not recurse into And/Or/Not (callers walk
// those themselves); it reports only the leaf-level references.
func varsMentioned(e CondExpr) []string {
	switch c := e.(type) {
	case TypeCheck:
		return []string{c.Var}
	case EdgePred:
		return []string{c.Src, c.Tgt}
	case ListEq:
		return append(atomVars(c.Left), atomVars(c.Right)...)
	case IntCmp:
		return append(atomVars([]label.Atom{c.Left}), atomVars([]label.Atom{c.Right})...)
	default:
		return nil
	}
}

func atomVars(atoms []label.Atom) []string {
	var out []string
	for i := range atoms {
		out = append(out, atomVarsOne(&atoms[i])...)
	}
	return out
}

func atomVarsOne(a *label.Atom) []string {
	switch a.Kind {
	case label.AtomVariable:
		return []string{a.Var}
	case label.AtomIndegree, label.AtomOutdegree:
		return []string{a.NodeName}
	case label.AtomListLength:
		return atomVars(a.ListArg)
	default:
		var out []string
		if a.Left != nil {
			out = append(out, atomVarsOne(a.Left)...)
		}
		if a.Right != nil {
			out = append(out, atomVarsOne(a.Right)...)
		}
		return out
	}
}
