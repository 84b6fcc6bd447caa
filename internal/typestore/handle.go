// Package typestore implements the semantic Type arena: every WGSL type
// mentioned or constructed while processing a module lives in one
// append-only Store, referenced everywhere else by Handle rather than by
// pointer, mirroring the original implementation's Arena<Type>/Handle<Type>
// split (module/type_store.rs) translated into Go generics since handles
// must flow through AST resolution, module scope, and function validation
// without tying any of those packages to typestore's internal layout.
package typestore

// Handle is an opaque, never-invalidated reference into an Arena. The
// first Arena.Insert returns the zero Handle (index 0), so the zero value
// is a real handle, not a sentinel; a caller wanting a sentinel uses a
// separate bool/ok return rather than a zero-value check.
type Handle[T any] struct {
	index int
}

// Arena is a dense, append-only store. Handles are stable for the
// Arena's entire lifetime: nothing is ever removed or moved.
type Arena[T any] struct {
	items []T
}

// Insert appends value and returns a Handle good for the Arena's
// lifetime.
func (a *Arena[T]) Insert(value T) Handle[T] {
	a.items = append(a.items, value)
	return Handle[T]{index: len(a.items) - 1}
}

// Get dereferences a Handle produced by this Arena. Callers never pass a
// Handle from one Arena to another, so no bounds check failure is
// expected in practice; it panics like a slice index would rather than
// returning a zero value that could be mistaken for real data.
func (a *Arena[T]) Get(h Handle[T]) T {
	return a.items[h.index]
}

// Set overwrites the value at h in place. The Store uses it to fill in a
// struct's members or an alias's base after that declaration's Handle
// has already been reserved and registered under its name, so forward
// references between declarations resolve to the same Handle.
func (a *Arena[T]) Set(h Handle[T], value T) {
	a.items[h.index] = value
}

// Len reports how many items have been inserted.
func (a *Arena[T]) Len() int {
	return len(a.items)
}
