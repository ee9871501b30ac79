// File: store.go
// Role: hash-consed interning of atom lists, grounded on
// original_source/Compiler/lib/label.h's list_store hash table with
// separate-chaining buckets and per-bucket reference counts.
//
// AI-HINT (file):
//   - Intern always returns a handle; equal atom slices (by Equal semantics)
//     always resolve to the same handle once interned.
//   - Release decrements refcount and frees the bucket at zero, mirroring
//     removeHostList in label.h.
//   - Store is NOT goroutine-safe by design: the engine executes
//     single-threaded ; adding a mutex here would be scope creep.
package label

import "sync/atomic"

// ListHandle is an opaque, comparable handle into a Store. The zero value
// denotes the empty list and is valid without any Store (used by Blank).
type ListHandle struct {
	id uint64
}

// storeBucket is one hash-chain entry: an interned list plus its refcount.
type storeBucket struct {
	atoms []Atom
	hash  uint64
	refs  int
	next  *storeBucket
}

// Store is a fixed-bucket-count hash table of interned atom lists.
//
// Complexity: Release/Atoms/Len are O(1) expected (a map lookup by handle
// id). Intern is O(len(atoms)) for the hash plus an O(1) expected chain
// walk, and then handleFor scans every live handle to find the bucket's
// id, so each Intern also costs O(number of interned lists).
type Store struct {
	buckets []*storeBucket
	byID    map[uint64]*storeBucket
	nextID  uint64
}

const defaultBucketCount = 401 // prime, mirrors LIST_TABLE_SIZE's spirit (400) in label.h

// NewStore creates an empty, ready-to-use Store.
func NewStore() *Store {
	return &Store{
		buckets: make([]*storeBucket, defaultBucketCount),
		byID:    make(map[uint64]*storeBucket),
	}
}

// Intern returns a ListHandle for atoms, sharing storage with any previously
// interned equal list. The caller's slice is not retained by reference; a
// defensive copy is made on first insertion.
//
// Steps:
//  1. Empty slice short-circuits to the zero handle (shared with Blank).
//  2. Compute the rolling hash over atom kinds/values.
//  3. Walk the bucket chain for a structurally equal list (Equal semantics).
//  4. On hit, bump refs and return its existing handle.
//  5. On miss, copy atoms, allocate a fresh handle/id, and insert.
func (s *Store) Intern(atoms []Atom) ListHandle {
	if len(atoms) == 0 {
		return ListHandle{}
	}

	h := hashAtoms(atoms)
	idx := h % uint64(len(s.buckets))

	for b := s.buckets[idx]; b != nil; b = b.next {
		if b.hash == h && atomsEqual(b.atoms, atoms) {
			b.refs++

			return s.handleFor(b)
		}
	}

	cp := make([]Atom, len(atoms))
	copy(cp, atoms)

	b := &storeBucket{atoms: cp, hash: h, refs: 1, next: s.buckets[idx]}
	s.buckets[idx] = b

	return s.handleFor(b)
}

// handleFor assigns (or looks up) the stable ListHandle.id for a bucket and
// records it in byID so Release/Atoms/Len can find it again in O(1).
func (s *Store) handleFor(b *storeBucket) ListHandle {
	for id, existing := range s.byID {
		if existing == b {
			return ListHandle{id: id}
		}
	}
	id := atomic.AddUint64(&s.nextID, 1)
	s.byID[id] = b

	return ListHandle{id: id}
}

// Release decrements the reference count of h's list, freeing its storage
// when the count reaches zero. Releasing the zero handle (the empty list)
// is a no-op.
func (s *Store) Release(h ListHandle) {
	if h.id == 0 {
		return
	}
	b, ok := s.byID[h.id]
	if !ok {
		return
	}
	b.refs--
	if b.refs <= 0 {
		delete(s.byID, h.id)
		s.unlink(b)
	}
}

// unlink removes bucket b from whichever chain it lives in.
func (s *Store) unlink(b *storeBucket) {
	idx := b.hash % uint64(len(s.buckets))
	var prev *storeBucket
	for cur := s.buckets[idx]; cur != nil; cur = cur.next {
		if cur == b {
			if prev == nil {
				s.buckets[idx] = cur.next
			} else {
				prev.next = cur.next
			}
			return
		}
		prev = cur
	}
}

// Atoms returns the interned atom slice for h. The returned slice must not
// be mutated by the caller; it is shared storage.
func (s *Store) Atoms(h ListHandle) []Atom {
	if h.id == 0 {
		return nil
	}
	if b, ok := s.byID[h.id]; ok {
		return b.atoms
	}
	return nil
}

// Len returns the number of atoms in h's list.
func (s *Store) Len(h ListHandle) int {
	return len(s.Atoms(h))
}

// hashAtoms computes a rolling hash over an atom slice: integers are folded
// by multiplicative hashing, strings byte-wise.
func hashAtoms(atoms []Atom) uint64 {
	var h uint64 = 1469598103934665603 // FNV offset basis, reused as a seed
	for i := range atoms {
		h = foldAtom(h, &atoms[i])
	}
	return h
}

const fnvPrime = 1099511628211

func foldAtom(h uint64, a *Atom) uint64 {
	h = (h ^ uint64(a.Kind)) * fnvPrime
	switch a.Kind {
	case AtomInt:
		h = (h ^ uint64(a.Int)) * fnvPrime
	case AtomString, AtomVariable:
		for i := 0; i < len(a.Str); i++ {
			h = (h ^ uint64(a.Str[i])) * fnvPrime
		}
		for i := 0; i < len(a.Var); i++ {
			h = (h ^ uint64(a.Var[i])) * fnvPrime
		}
	case AtomIndegree, AtomOutdegree:
		for i := 0; i < len(a.NodeName); i++ {
			h = (h ^ uint64(a.NodeName[i])) * fnvPrime
		}
	case AtomListLength:
		h = (h ^ hashAtoms(a.ListArg)) * fnvPrime
	default:
		if a.Left != nil {
			h = (h ^ foldAtom(h, a.Left)) * fnvPrime
		}
		if a.Right != nil {
			h = (h ^ foldAtom(h, a.Right)) * fnvPrime
		}
	}
	return h
}

// EqualAtomSlices compares two raw (uninterned) atom arrays for structural
// equality (compare labels and raw atom arrays for
// equality"). Used by rule.Compile to detect relabelling without needing a
// Store.
func EqualAtomSlices(a, b []Atom) bool { return atomsEqual(a, b) }

// atomsEqual walks two atom slices in lockstep.
func atomsEqual(a, b []Atom) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !atomEqual(&a[i], &b[i]) {
			return false
		}
	}
	return true
}

func atomEqual(a, b *Atom) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case AtomInt:
		return a.Int == b.Int
	case AtomString:
		return a.Str == b.Str
	case AtomVariable:
		return a.Var == b.Var
	case AtomIndegree, AtomOutdegree:
		return a.NodeName == b.NodeName
	case AtomListLength:
		return atomsEqual(a.ListArg, b.ListArg)
	case AtomNeg, AtomStringLength:
		return atomPtrEqual(a.Left, b.Left)
	default:
		return atomPtrEqual(a.Left, b.Left) && atomPtrEqual(a.Right, b.Right)
	}
}

func atomPtrEqual(a, b *Atom) bool {
	if a == nil || b == nil {
		return a == b
	}
	return atomEqual(a, b)
}

// Equal reports whether two labels are equal: equal marks and pointwise
// equal atom sequences. Two labels interned from the same Store
// compare equal in O(1) via handle identity except when handles differ but
// the lists are nonetheless structurally equal (e.g. labels from different
// Store instances); in that case Equal falls back to a structural compare
// using the Atoms accessor, which the caller must supply consistently.
func Equal(sa *Store, a Label, sb *Store, b Label) bool {
	if a.Mark != b.Mark {
		return false
	}
	if sa == sb && a.List == b.List {
		return true
	}
	return atomsEqual(sa.Atoms(a.List), sb.Atoms(b.List))
}
