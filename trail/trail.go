// Package trail implements the process-wide undo trail: a LIFO stack of
// reverse-edits consulted by rollback-bearing control combinators (if, try,
// the per-iteration scope of !) to restore host-graph state on failure.
//
// A Trail is scoped by Mark/Undo/Truncate: Mark captures the current stack
// length as a restore point, Undo replays records back down to that point
// in reverse order (mirroring each edit), and Truncate discards the records
// without replaying them (the construct committed successfully).
//
// Grounded on core/methods_clone.go's snapshot idea, generalized from
// "clone the whole graph" to "record just the deltas", since identity
// requires LIFO-replayable reverse-edits rather than full-graph copies.
//
// Errors:
//
//	ErrUnknownRecordKind - Undo encountered a Record with an invalid Kind.
package trail

import (
	"errors"
	"fmt"

	"github.com/gp2-lang/gp2/host"
	"github.com/gp2-lang/gp2/label"
)

// ErrUnknownRecordKind indicates a corrupt or foreign Record was pushed.
var ErrUnknownRecordKind = errors.New("trail: unknown record kind")

// RecordKind tags which of the seven reverse-edit shapes a Record holds
// (stable and used for diagnostics).
type RecordKind uint8

const (
	RemovedNode RecordKind = iota
	RemovedEdge
	RelabelledNode
	RelabelledEdge
	AddedNode
	AddedEdge
	ChangedRoot
)

// String renders a RecordKind for diagnostics.
func (k RecordKind) String() string {
	switch k {
	case RemovedNode:
		return "removed-node"
	case RemovedEdge:
		return "removed-edge"
	case RelabelledNode:
		return "relabelled-node"
	case RelabelledEdge:
		return "relabelled-edge"
	case AddedNode:
		return "added-node"
	case AddedEdge:
		return "added-edge"
	case ChangedRoot:
		return "changed-root"
	default:
		return "record(?)"
	}
}

// Record is one reverse-edit: "what must happen to the host to undo one
// forward edit". Only the fields relevant to Kind are meaningful.
type Record struct {
	Kind  RecordKind
	Node  host.NodeIndex // RemovedNode/RelabelledNode/AddedNode/ChangedRoot: the node index
	Edge  host.EdgeIndex // RemovedEdge/RelabelledEdge/AddedEdge: the edge index
	Root  bool           // RemovedNode: was it a root; ChangedRoot: previous value
	Label label.Label    // RemovedNode/RemovedEdge: label to restore; Relabelled*: previous label
	Src   host.NodeIndex // RemovedEdge: source to restore
	Tgt   host.NodeIndex // RemovedEdge: target to restore
	Bidi  bool           // RemovedEdge: bidirectional flag to restore
}

// Trail is a LIFO stack of Records, scoped by Mark/Undo/Truncate.
type Trail struct {
	records []Record
}

// New creates an empty Trail.
func New() *Trail { return &Trail{} }

// Mark returns the current stack length, to be passed to a later
// Undo/Truncate call as the restore point for the construct entered now.
func (t *Trail) Mark() int { return len(t.records) }

// Push appends a reverse-edit record. Called by applier as it mutates the
// host, in the same order as the forward edits (LIFO replay reverses it).
func (t *Trail) Push(r Record) { t.records = append(t.records, r) }

// Len reports the number of pending records (diagnostics/tests only).
func (t *Trail) Len() int { return len(t.records) }

// Truncate discards all records back down to mark, without replaying them:
// the bracketed construct committed its edits successfully.
func (t *Trail) Truncate(mark int) {
	t.records = t.records[:mark]
}

// Undo replays records in LIFO order down to mark, applying each one's
// reverse-edit to e, then truncates the trail to mark. Replaying a
// well-formed trail produced by applier always restores the host to a
// graph equal (node-set, edge-set, labels, roots) to the pre-sequence host
// (trail soundness).
func (t *Trail) Undo(e *host.Engine, mark int) error {
	for i := len(t.records) - 1; i >= mark; i-- {
		if err := undoOne(e, t.records[i]); err != nil {
			return fmt.Errorf("trail: undo record %d: %w", i, err)
		}
	}
	t.records = t.records[:mark]
	return nil
}

func undoOne(e *host.Engine, r Record) error {
	switch r.Kind {
	case RemovedNode:
		// Forward edit deleted node r.Node; undo must resurrect it at the
		// SAME index, since applier always records edge deletions before
		// node deletions, so an edge-deletion record (restored AFTER this
		// one, per LIFO order) references r.Node by its original index.
		// ReviveNode preserves that identity instead of allocating fresh.
		return e.ReviveNode(r.Node, r.Root, r.Label)
	case RemovedEdge:
		return e.ReviveEdge(r.Edge, r.Label, r.Src, r.Tgt, r.Bidi)
	case RelabelledNode:
		_, err := e.RelabelNode(r.Node, r.Label)
		return err
	case RelabelledEdge:
		_, err := e.RelabelEdge(r.Edge, r.Label)
		return err
	case AddedNode:
		return e.RemoveNode(r.Node)
	case AddedEdge:
		return e.RemoveEdge(r.Edge)
	case ChangedRoot:
		_, err := e.SetRoot(r.Node, r.Root)
		return err
	default:
		return ErrUnknownRecordKind
	}
}
