// File: errors.go — sentinel errors for rule compilation, grounded on
// builder/errors.go's policy: package-level sentinels only, wrapped with
// %w and a call-site prefix, never stringified at the definition site.
package rule

import "errors"

var (
	// ErrUnknownInterfaceNode indicates Interface.NodeMap references an
	// L-node or R-node index outside the bounds of L.Nodes/R.Nodes.
	ErrUnknownInterfaceNode = errors.New("rule: interface references unknown node index")

	// ErrUnknownInterfaceEdge indicates Interface.EdgeMap references an
	// L-edge or R-edge index outside the bounds of L.Edges/R.Edges.
	ErrUnknownInterfaceEdge = errors.New("rule: interface references unknown edge index")

	// ErrDuplicateInterfaceImage indicates two distinct L-items map to the
	// same R-item, violating the interface's injectivity requirement.
	ErrDuplicateInterfaceImage = errors.New("rule: interface is not injective")

	// ErrListVariableMisplaced indicates a list-typed atom occupies a scalar
	// position. Compile reports it for a bare list variable used directly as
	// an IntCmp operand in the condition; list variables nested inside
	// arithmetic or used in labels are not checked.
	ErrListVariableMisplaced = errors.New("rule: list variable used in scalar position")

	// ErrUnknownNodeName indicates an EdgePred or degree-operator atom
	// references an L-node name not present in L.
	ErrUnknownNodeName = errors.New("rule: unknown node name")

	// ErrEmptyRuleName indicates Builder.Build was called with no name set.
	ErrEmptyRuleName = errors.New("rule: rule name is empty")
)
