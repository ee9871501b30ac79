// Package rule defines the compiled intermediate representation of one GP2
// rule: left- and right-hand graphs with dense 0..n-1 indices, an injective
// interface map between them, a variable table, and a condition expression
// tree decomposed into numbered predicate nodes. This is the typed surface
// the AST-to-IR pass is expected to produce; in
// this repo it is produced directly, or via the Builder fluent API.
//
// Package layout, grounded on builder/api.go, builder/config.go and
// builder/options.go's functional-option discipline: Builder accumulates L
// and R nodes/edges and an interface, then Build resolves everything into
// an immutable *Rule by calling Compile.
//
// Errors:
//
//	ErrUnknownInterfaceNode  - Interface references a node index out of range.
//	ErrUnknownInterfaceEdge  - Interface references an edge index out of range.
//	ErrListVariableMisplaced - a list-valued atom used where a scalar is required.
//	ErrDuplicateInterfaceImage - two L-items map to the same R-item.
package rule

import (
	"github.com/gp2-lang/gp2/label"
)

// Node is one node of a rule graph (L or R).
type Node struct {
	Name     string     // source identifier, used by AtomIndegree/AtomOutdegree lookups
	Mark     label.Mark
	ListExpr []label.Atom
	Root     bool

	// Indeg/Outdeg/Bideg are the node's degree IN L, used as the matcher's
	// degree filter floor. They are ignored on R-nodes.
	Indeg, Outdeg, Bideg int

	// IndegreeArg/OutdegreeArg are set when some atom elsewhere in the rule
	// references this node's indegree/outdegree.
	IndegreeArg, OutdegreeArg bool

	// Computed by Compile; meaningless before that call.
	Relabelled  bool
	RootChanged bool
	Deleted     bool
	Dangling    bool
}

// Edge is one edge of a rule graph (L or R), endpoints given as indices
// into the owning Graph.Nodes.
type Edge struct {
	Mark          label.Mark
	ListExpr      []label.Atom
	Src, Tgt      int
	Bidirectional bool
	Loop          bool // computed by Compile: Src == Tgt

	// Computed by Compile.
	Added      bool
	Relabelled bool
}

// Graph is L or R: dense node/edge arrays with 0..n-1 indices.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Interface is the injective partial map identifying L-items preserved
// into R. A key with no entry is deleted (nodes) / deleted (edges); an
// R-index with no preimage is added.
type Interface struct {
	NodeMap map[int]int // L-index -> R-index
	EdgeMap map[int]int // L-index -> R-index
}

// VarKind is the declared type of a rule variable.
type VarKind uint8

const (
	VarInt VarKind = iota
	VarChar
	VarString
	VarAtom
	VarList
)

// Variable is one entry of a rule's variable table.
type Variable struct {
	Name string
	Kind VarKind
}

// Predicate is one named, numbered boolean sub-expression of a rule's
// condition, cached so the matcher can partially evaluate it as
// soon as the L-items mentioning its variables are bound.
type Predicate struct {
	Index int
	Expr  CondExpr
}

// Rule is the fully compiled intermediate representation of one GP2 rule.
type Rule struct {
	Name       string
	L, R       Graph
	Interface  Interface
	Variables  []Variable
	Condition  CondExpr
	Predicates []Predicate

	// NodePredicates[i] lists the indices into Predicates that mention a
	// variable bound by the match of L.Nodes[i], computed by Compile.
	NodePredicates [][]int
}

// VariableKind looks up the declared kind of a variable by name, returning
// false if the rule declares no such variable.
func (r *Rule) VariableKind(name string) (VarKind, bool) {
	for _, v := range r.Variables {
		if v.Name == name {
			return v.Kind, true
		}
	}
	return 0, false
}

// NodeIndexByName returns the L-node index with the given source name, or
// -1 if no such node exists. Used to resolve AtomIndegree/AtomOutdegree.
func (g Graph) NodeIndexByName(name string) int {
	for i := range g.Nodes {
		if g.Nodes[i].Name == name {
			return i
		}
	}
	return -1
}
