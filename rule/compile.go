// File: compile.go
// Role: turns an assembled (L, R, Interface, Variables, Condition) tuple
// into an immutable *Rule: validates the interface, derives per-node
// Relabelled/RootChanged/Deleted/Dangling flags, derives per-edge
// Added/Relabelled flags, decomposes Condition into numbered Predicates,
// and back-fills Rule.NodePredicates. Grounded on builder/api.go's single
// validate-then-build entry point discipline.
package rule

import (
	"fmt"

	"github.com/gp2-lang/gp2/label"
)

// Compile validates and assembles a Rule. Malformed IR (an interface
// reference out of range, a non-injective interface, a list-valued atom in
// a scalar position) is reported as a sentinel error wrapped with the rule
// name: the rule is rejected and the whole compile fails.
func Compile(name string, l, r Graph, iface Interface, vars []Variable, cond CondExpr) (*Rule, error) {
	if name == "" {
		return nil, ErrEmptyRuleName
	}
	if err := validateInterface(l, r, iface); err != nil {
		return nil, fmt.Errorf("rule %q: %w", name, err)
	}
	varKind := make(map[string]VarKind, len(vars))
	for _, v := range vars {
		varKind[v.Name] = v.Kind
	}
	if err := validateNoMisplacedLists(cond, varKind); err != nil {
		return nil, fmt.Errorf("rule %q: %w", name, err)
	}

	rl := &Rule{
		Name:      name,
		L:         l,
		R:         r,
		Interface: iface,
		Variables: append([]Variable(nil), vars...),
		Condition: cond,
	}

	deriveLoopFlags(&rl.L)
	deriveLoopFlags(&rl.R)
	deriveDegrees(&rl.L)
	deriveNodeFlags(rl)
	deriveEdgeFlags(rl)
	decomposePredicates(rl)

	return rl, nil
}

func validateInterface(l, r Graph, iface Interface) error {
	seenNode := make(map[int]bool, len(iface.NodeMap))
	for li, ri := range iface.NodeMap {
		if li < 0 || li >= len(l.Nodes) || ri < 0 || ri >= len(r.Nodes) {
			return ErrUnknownInterfaceNode
		}
		if seenNode[ri] {
			return ErrDuplicateInterfaceImage
		}
		seenNode[ri] = true
	}
	seenEdge := make(map[int]bool, len(iface.EdgeMap))
	for li, ri := range iface.EdgeMap {
		if li < 0 || li >= len(l.Edges) || ri < 0 || ri >= len(r.Edges) {
			return ErrUnknownInterfaceEdge
		}
		if seenEdge[ri] {
			return ErrDuplicateInterfaceImage
		}
		seenEdge[ri] = true
	}
	return nil
}

// validateNoMisplacedLists rejects a condition tree that uses a
// list-declared variable directly as an IntCmp operand instead of going
// through AtomListLength first; this is classified as a
// compile-time error ("unsupported atom in a position it cannot take").
func validateNoMisplacedLists(cond CondExpr, varKind map[string]VarKind) error {
	switch c := cond.(type) {
	case IntCmp:
		if isListVar(c.Left, varKind) || isListVar(c.Right, varKind) {
			return ErrListVariableMisplaced
		}
	case Not:
		return validateNoMisplacedLists(c.X, varKind)
	case And:
		if err := validateNoMisplacedLists(c.Left, varKind); err != nil {
			return err
		}
		return validateNoMisplacedLists(c.Right, varKind)
	case Or:
		if err := validateNoMisplacedLists(c.Left, varKind); err != nil {
			return err
		}
		return validateNoMisplacedLists(c.Right, varKind)
	}
	return nil
}

// isListVar reports whether atom a is a bare reference to a List-kind
// variable: valid as the argument of AtomListLength, invalid as a direct
// scalar operand.
func isListVar(a label.Atom, varKind map[string]VarKind) bool {
	return a.Kind == label.AtomVariable && varKind[a.Var] == VarList
}

func deriveLoopFlags(g *Graph) {
	for i := range g.Edges {
		g.Edges[i].Loop = g.Edges[i].Src == g.Edges[i].Tgt
	}
}

// deriveDegrees computes each L-node's required incident-edge floor from
// its edges: a loop counts once towards both Indeg and Outdeg (mirroring
// host.Engine.Bidegree's "counts a self-loop twice" convention), a
// bidirectional edge counts towards Bideg only (either host direction may
// satisfy it), and a plain directed edge counts towards its source's
// Outdeg and its target's Indeg.
func deriveDegrees(g *Graph) {
	for ei := range g.Edges {
		e := &g.Edges[ei]
		switch {
		case e.Loop:
			g.Nodes[e.Src].Indeg++
			g.Nodes[e.Src].Outdeg++
		case e.Bidirectional:
			g.Nodes[e.Src].Bideg++
			g.Nodes[e.Tgt].Bideg++
		default:
			g.Nodes[e.Src].Outdeg++
			g.Nodes[e.Tgt].Indeg++
		}
	}
}

func deriveNodeFlags(rl *Rule) {
	for li := range rl.L.Nodes {
		ri, ok := rl.Interface.NodeMap[li]
		if !ok {
			rl.L.Nodes[li].Deleted = true
			rl.L.Nodes[li].Dangling = true
			continue
		}
		ln := &rl.L.Nodes[li]
		rn := &rl.R.Nodes[ri]
		ln.Relabelled = ln.Mark != rn.Mark || !label.EqualAtomSlices(ln.ListExpr, rn.ListExpr)
		ln.RootChanged = ln.Root != rn.Root
	}
}

func deriveEdgeFlags(rl *Rule) {
	riMapped := make(map[int]bool, len(rl.Interface.EdgeMap))
	for li, ri := range rl.Interface.EdgeMap {
		riMapped[ri] = true
		le := &rl.L.Edges[li]
		re := &rl.R.Edges[ri]
		le.Relabelled = le.Mark != re.Mark || !label.EqualAtomSlices(le.ListExpr, re.ListExpr)
	}
	for ri := range rl.R.Edges {
		if !riMapped[ri] {
			rl.R.Edges[ri].Added = true
		}
	}
}

// decomposePredicates walks Condition pre-order, extracts every leaf atomic
// predicate (TypeCheck/EdgePred/ListEq/IntCmp) into a numbered Predicate,
// and back-fills NodePredicates: for each predicate, every L-node whose
// name or whose declared variable the predicate mentions records that
// predicate's index.
func decomposePredicates(rl *Rule) {
	rl.NodePredicates = make([][]int, len(rl.L.Nodes))

	var walk func(e CondExpr)
	walk = func(e CondExpr) {
		switch c := e.(type) {
		case Not:
			walk(c.X)
			return
		case And:
			walk(c.Left)
			walk(c.Right)
			return
		case Or:
			walk(c.Left)
			walk(c.Right)
			return
		}
		idx := len(rl.Predicates)
		rl.Predicates = append(rl.Predicates, Predicate{Index: idx, Expr: e})
		for _, name := range varsMentioned(e) {
			for _, ni := range nodesForName(rl.L, name) {
				rl.NodePredicates[ni] = append(rl.NodePredicates[ni], idx)
			}
		}
	}
	if rl.Condition != nil {
		walk(rl.Condition)
	}
}

// nodesForName resolves a name to the L-node indices it refers to: first as
// a direct node name (EdgePred / degree-operator atoms), else as a variable
// declared in some node's list expression.
func nodesForName(l Graph, name string) []int {
	if idx := l.NodeIndexByName(name); idx >= 0 {
		return []int{idx}
	}
	var out []int
	for i := range l.Nodes {
		for j := range l.Nodes[i].ListExpr {
			if declaresVariable(&l.Nodes[i].ListExpr[j], name) {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

func declaresVariable(a *label.Atom, name string) bool {
	if a.Kind == label.AtomVariable && a.Var == name {
		return true
	}
	if a.Left != nil && declaresVariable(a.Left, name) {
		return true
	}
	if a.Right != nil && declaresVariable(a.Right, name) {
		return true
	}
	for i := range a.ListArg {
		if declaresVariable(&a.ListArg[i], name) {
			return true
		}
	}
	return false
}
