// File: builder.go
// Role: a fluent construction API standing in for the external AST-to-IR
// pass. Grounded on builder/api.go's
// BuildGraph/Constructor discipline: accumulate state through small
// methods, validate once at the end in Build.
//
// AI-HINT (file):
//   - Node/edge indices returned by AddLNode/AddLEdge and by
//     AddRNode/AddREdge are independent 0..n-1 sequences; Keep/KeepEdge
//     pairs an L-index with an R-index explicitly, and there is no implicit
//     "same index" pairing.
package rule

import "github.com/gp2-lang/gp2/label"

// Builder accumulates L, R, the interface, variables and condition for one
// rule, then resolves them into a *Rule via Build.
type Builder struct {
	name string
	l, r Graph
	vars []Variable
	iface Interface
	cond CondExpr
}

// NewBuilder starts a new rule under construction with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name: name,
		iface: Interface{NodeMap: make(map[int]int), EdgeMap: make(map[int]int)},
	}
}

// AddLNode appends a node to L and returns its index.
func (b *Builder) AddLNode(name string, mark label.Mark, listExpr []label.Atom, root bool) int {
	b.l.Nodes = append(b.l.Nodes, Node{Name: name, Mark: mark, ListExpr: listExpr, Root: root})
	return len(b.l.Nodes) - 1
}

// AddRNode appends a node to R and returns its index.
func (b *Builder) AddRNode(name string, mark label.Mark, listExpr []label.Atom, root bool) int {
	b.r.Nodes = append(b.r.Nodes, Node{Name: name, Mark: mark, ListExpr: listExpr, Root: root})
	return len(b.r.Nodes) - 1
}

// AddLEdge appends an edge to L between L-node indices src/tgt and returns
// its index.
func (b *Builder) AddLEdge(mark label.Mark, listExpr []label.Atom, src, tgt int, bidirectional bool) int {
	b.l.Edges = append(b.l.Edges, Edge{Mark: mark, ListExpr: listExpr, Src: src, Tgt: tgt, Bidirectional: bidirectional})
	return len(b.l.Edges) - 1
}

// AddREdge appends an edge to R between R-node indices src/tgt and returns
// its index.
func (b *Builder) AddREdge(mark label.Mark, listExpr []label.Atom, src, tgt int, bidirectional bool) int {
	b.r.Edges = append(b.r.Edges, Edge{Mark: mark, ListExpr: listExpr, Src: src, Tgt: tgt, Bidirectional: bidirectional})
	return len(b.r.Edges) - 1
}

// Keep records that L-node lIdx is preserved as R-node rIdx.
func (b *Builder) Keep(lIdx, rIdx int) *Builder {
	b.iface.NodeMap[lIdx] = rIdx
	return b
}

// KeepEdge records that L-edge lIdx is preserved as R-edge rIdx.
func (b *Builder) KeepEdge(lIdx, rIdx int) *Builder {
	b.iface.EdgeMap[lIdx] = rIdx
	return b
}

// Declare adds a variable to the rule's variable table.
func (b *Builder) Declare(name string, kind VarKind) *Builder {
	b.vars = append(b.vars, Variable{Name: name, Kind: kind})
	return b
}

// Where sets the rule's condition expression.
func (b *Builder) Where(cond CondExpr) *Builder {
	b.cond = cond
	return b
}

// Build validates the accumulated state and returns the compiled Rule.
func (b *Builder) Build() (*Rule, error) {
	return Compile(b.name, b.l, b.r, b.iface, b.vars, b.cond)
}
