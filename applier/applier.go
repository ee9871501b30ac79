// Package applier executes a matched rule against the host graph: given a
// completed morphism and its variable bindings, it performs the six-step
// rewrite (delete unmapped L-edges, delete unmapped L-nodes, relabel/re-root
// preserved nodes, relabel preserved edges, add new R-nodes, add new
// R-edges), pushing one trail.Record per mutation so the whole rule
// application can be undone as a unit.
//
// Grounded on core/methods_edges.go and core/methods_vertices.go's ordered
// mutation discipline (edges before the nodes they touch), generalized
// from string-keyed single mutations to an R-graph's worth of them, driven
// by an injective interface map instead of by caller-supplied IDs.
package applier

import (
	"github.com/gp2-lang/gp2/host"
	"github.com/gp2-lang/gp2/label"
	"github.com/gp2-lang/gp2/matcher"
	"github.com/gp2-lang/gp2/rule"
	"github.com/gp2-lang/gp2/trail"
)

// Applier is a compiled, reusable rewrite step for one rule.
type Applier struct {
	rl *rule.Rule
}

// Compile binds a rule for repeated Apply calls.
func Compile(rl *rule.Rule) *Applier {
	return &Applier{rl: rl}
}

// Apply rewrites e according to the applier's rule, given a morphism and
// bindings produced by a successful matcher.Match against e. Every
// mutation is pushed to tr as a reverse-edit record, so the caller can
// later tr.Undo back to a mark taken before this call.
func (a *Applier) Apply(e *host.Engine, m matcher.Morphism, b matcher.Bindings, tr *trail.Trail) error {
	rl := a.rl

	if err := a.deleteUnmappedEdges(e, m, tr); err != nil {
		return err
	}
	if err := a.deleteUnmappedNodes(e, m, tr); err != nil {
		return err
	}
	if err := a.relabelPreservedNodes(e, m, b, tr); err != nil {
		return err
	}
	if err := a.relabelPreservedEdges(e, m, b, tr); err != nil {
		return err
	}

	rNodeHost := make([]host.NodeIndex, len(rl.R.Nodes))
	liForRi := invertNodeMap(rl.Interface.NodeMap)
	for ri := range rl.R.Nodes {
		if li, ok := liForRi[ri]; ok {
			rNodeHost[ri] = m.Nodes[li]
		} else {
			rNodeHost[ri] = host.NodeIndex(host.NoIndex)
		}
	}

	if err := a.addNewNodes(e, rNodeHost, b, tr); err != nil {
		return err
	}
	if err := a.addNewEdges(e, rNodeHost, b, tr); err != nil {
		return err
	}
	return nil
}

func invertNodeMap(m map[int]int) map[int]int {
	out := make(map[int]int, len(m))
	for li, ri := range m {
		out[ri] = li
	}
	return out
}

// deleteUnmappedEdges removes every L-edge with no interface entry (its
// image is deleted by this rule), in ascending L-edge order.
func (a *Applier) deleteUnmappedEdges(e *host.Engine, m matcher.Morphism, tr *trail.Trail) error {
	for li := range a.rl.L.Edges {
		if _, kept := a.rl.Interface.EdgeMap[li]; kept {
			continue
		}
		hx := m.Edges[li]
		src, tgt := e.EdgeEndpoints(hx)
		tr.Push(trail.Record{
			Kind:  trail.RemovedEdge,
			Edge:  hx,
			Label: e.EdgeLabel(hx),
			Src:   src,
			Tgt:   tgt,
			Bidi:  e.EdgeBidirectional(hx),
		})
		if err := e.RemoveEdge(hx); err != nil {
			return err
		}
	}
	return nil
}

// deleteUnmappedNodes removes every L-node with no interface entry. The
// matcher's dangling-node degree filter guarantees these are isolated by
// the time deleteUnmappedEdges has run.
func (a *Applier) deleteUnmappedNodes(e *host.Engine, m matcher.Morphism, tr *trail.Trail) error {
	for li := range a.rl.L.Nodes {
		if _, kept := a.rl.Interface.NodeMap[li]; kept {
			continue
		}
		hx := m.Nodes[li]
		tr.Push(trail.Record{
			Kind:  trail.RemovedNode,
			Node:  hx,
			Root:  e.IsRoot(hx),
			Label: e.NodeLabel(hx),
		})
		if err := e.RemoveNode(hx); err != nil {
			return err
		}
	}
	return nil
}

func (a *Applier) relabelPreservedNodes(e *host.Engine, m matcher.Morphism, b matcher.Bindings, tr *trail.Trail) error {
	for li := range a.rl.L.Nodes {
		ri, kept := a.rl.Interface.NodeMap[li]
		if !kept {
			continue
		}
		ln := &a.rl.L.Nodes[li]
		rn := &a.rl.R.Nodes[ri]
		hx := m.Nodes[li]

		if ln.RootChanged {
			prev, err := e.SetRoot(hx, rn.Root)
			if err != nil {
				return err
			}
			tr.Push(trail.Record{Kind: trail.ChangedRoot, Node: hx, Root: prev})
		}
		if !ln.Relabelled {
			continue
		}
		newLbl, err := instantiateLabel(e, rn.Mark, rn.ListExpr, b)
		if err != nil {
			return err
		}
		prev, err := e.RelabelNode(hx, newLbl)
		if err != nil {
			return err
		}
		tr.Push(trail.Record{Kind: trail.RelabelledNode, Node: hx, Label: prev})
	}
	return nil
}

func (a *Applier) relabelPreservedEdges(e *host.Engine, m matcher.Morphism, b matcher.Bindings, tr *trail.Trail) error {
	for li := range a.rl.L.Edges {
		ri, kept := a.rl.Interface.EdgeMap[li]
		if !kept {
			continue
		}
		le := &a.rl.L.Edges[li]
		if !le.Relabelled {
			continue
		}
		re := &a.rl.R.Edges[ri]
		hx := m.Edges[li]
		newLbl, err := instantiateLabel(e, re.Mark, re.ListExpr, b)
		if err != nil {
			return err
		}
		prev, err := e.RelabelEdge(hx, newLbl)
		if err != nil {
			return err
		}
		tr.Push(trail.Record{Kind: trail.RelabelledEdge, Edge: hx, Label: prev})
	}
	return nil
}

// addNewNodes creates every R-node with no L-preimage, filling its host
// index into rNodeHost for addNewEdges to connect to.
func (a *Applier) addNewNodes(e *host.Engine, rNodeHost []host.NodeIndex, b matcher.Bindings, tr *trail.Trail) error {
	liForRi := invertNodeMap(a.rl.Interface.NodeMap)
	for ri := range a.rl.R.Nodes {
		if _, preserved := liForRi[ri]; preserved {
			continue
		}
		rn := &a.rl.R.Nodes[ri]
		lbl, err := instantiateLabel(e, rn.Mark, rn.ListExpr, b)
		if err != nil {
			return err
		}
		hx := e.AddNode(rn.Root, lbl)
		rNodeHost[ri] = hx
		tr.Push(trail.Record{Kind: trail.AddedNode, Node: hx})
	}
	return nil
}

// addNewEdges creates every R-edge flagged Added by Compile, in ascending
// R-edge order, connecting whichever host nodes rNodeHost now names.
func (a *Applier) addNewEdges(e *host.Engine, rNodeHost []host.NodeIndex, b matcher.Bindings, tr *trail.Trail) error {
	for ri := range a.rl.R.Edges {
		re := &a.rl.R.Edges[ri]
		if !re.Added {
			continue
		}
		lbl, err := instantiateLabel(e, re.Mark, re.ListExpr, b)
		if err != nil {
			return err
		}
		hx := e.AddEdge(lbl, rNodeHost[re.Src], rNodeHost[re.Tgt], re.Bidirectional)
		tr.Push(trail.Record{Kind: trail.AddedEdge, Edge: hx})
	}
	return nil
}

// instantiateLabel evaluates an R-side atom expression list against
// bindings and interns the result through e's store.
func instantiateLabel(e *host.Engine, mark label.Mark, expr []label.Atom, b matcher.Bindings) (label.Label, error) {
	atoms, err := evalAtomList(expr, b)
	if err != nil {
		return label.Label{}, err
	}
	return label.Label{Mark: mark, List: e.Store().Intern(atoms)}, nil
}
