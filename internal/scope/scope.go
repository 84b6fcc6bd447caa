// Package scope implements the scope tree built during function
// validation (internal/validator): an append-only arena of Scope
// records, each pointing at its parent, grounded on spec.md §3's
// "ScopeStore is an arena of Scope{parent: Option<Handle<Scope>>} with a
// designated root" and original_source's equivalent scope-handle
// design. Scopes are created only while validating a function body and
// are never destroyed — their handles stay valid (and useful to editor
// queries, e.g. "what function encloses this cursor position") for the
// Module's entire lifetime.
package scope

import "github.com/unfinishedprogram/wgsl-analyzer/internal/typestore"

// Handle is a typestore.Handle specialized to Scope, reusing the same
// generic arena/handle machinery rather than inventing a parallel one.
type Handle = typestore.Handle[Scope]

// Scope is one node of the tree: its parent, or none for the root.
type Scope struct {
	Parent Handle
	HasParent bool
}

// Store is the arena of Scope records plus its designated root.
type Store struct {
	arena typestore.Arena[Scope]
	root  Handle
}

// NewStore creates a Store with its root scope already inserted.
func NewStore() *Store {
	s := &Store{}
	s.root = s.arena.Insert(Scope{})
	return s
}

// Root returns the Store's designated root scope.
func (s *Store) Root() Handle { return s.root }

// Child creates a new scope whose parent is parent and returns its
// Handle. Called on entering a compound statement during validation.
func (s *Store) Child(parent Handle) Handle {
	return s.arena.Insert(Scope{Parent: parent, HasParent: true})
}

// Get dereferences a Handle this Store issued.
func (s *Store) Get(h Handle) Scope { return s.arena.Get(h) }

// IsAncestor reports whether candidate is h or an ancestor of h, walking
// the parent chain — used by editor queries that want "is this cursor
// inside this function's scope".
func (s *Store) IsAncestor(candidate, h Handle) bool {
	for {
		if candidate == h {
			return true
		}
		sc := s.arena.Get(h)
		if !sc.HasParent {
			return false
		}
		h = sc.Parent
	}
}
