package matcher

import "github.com/gp2-lang/gp2/label"

// Value is the runtime value bound to a rule variable: a scalar atom
// (int/string) or an atom list standing in for a list-typed variable.
// Exported so applier can instantiate R-side label expressions from a
// completed Bindings without re-deriving them.
type Value struct {
	IsList bool
	List   []label.Atom // valid when IsList
	Atom   label.Atom   // valid when !IsList: AtomInt or AtomString
}

// Bindings is the completed variable -> value assignment produced by a
// successful Match.
type Bindings map[string]Value

// value is the internal alias used while search is still in progress.
type value = Value

// bindings is the set of variable -> value assignments accumulated while
// matching. It supports snapshot/restore so a failed candidate can be
// undone without re-walking bound labels from scratch.
type bindings struct {
	m map[string]value
}

func newBindings() bindings {
	return bindings{m: make(map[string]value)}
}

// snapshot returns the current variable names, for use with restore to
// revert any bindings added since the snapshot was taken.
func (b bindings) snapshot() []string {
	out := make([]string, 0, len(b.m))
	for k := range b.m {
		out = append(out, k)
	}
	return out
}

// restore removes every binding not present in keep, reverting to exactly
// the variable set keep names.
func (b bindings) restore(keep []string) {
	allowed := make(map[string]bool, len(keep))
	for _, k := range keep {
		allowed[k] = true
	}
	for k := range b.m {
		if !allowed[k] {
			delete(b.m, k)
		}
	}
}

func (b bindings) bindScalar(name string, a label.Atom) {
	b.m[name] = value{Atom: a}
}

func (b bindings) bindList(name string, atoms []label.Atom) {
	b.m[name] = value{IsList: true, List: atoms}
}

func (b bindings) lookup(name string) (value, bool) {
	v, ok := b.m[name]
	return v, ok
}
