// Package builtins installs the pre-declared value-constructor function
// table that seeds phase one of module-scope population (spec.md
// §4.5): "A fixed table of value-constructor overloads (bool, i32, u32,
// f32, f16, etc.) is installed. Each builtin has one or more overloads;
// each overload has argument-type handles and an optional return
// handle."
//
// Grounded on the teacher's own internal/builtins (Table map[string]
// *Builtin, register() helper, Overload struct), trimmed hard from its
// original 17-section scope (constructors, conversions, logical, array,
// numeric, derivative, texture, atomic, packing, synchronization,
// subgroup builtins, each carrying an EvalStage and a
// UniformityRequirement) down to the constructor overloads 4.5 asks
// for. The rest of the teacher's table implements expression type
// checking and uniformity analysis, both explicitly out of CORE scope
// (4.6's "Full expression/type checking is out of scope for the CORE")
// — see DESIGN.md.
package builtins

import (
	"fmt"

	"github.com/unfinishedprogram/wgsl-analyzer/internal/typestore"
)

// Overload is one callable signature: a fixed list of argument-type
// handles and a return handle. Every constructor overload sets Return;
// a zero Return would refer to the store's Invalid placeholder type.
type Overload struct {
	Params []typestore.Handle[typestore.Type]
	Return typestore.Handle[typestore.Type]
}

// Builtin is a named function with one or more overloads.
type Builtin struct {
	Name      string
	Overloads []Overload
}

// Table is the installed set of builtins, keyed by name.
type Table struct {
	builtins map[string]*Builtin
}

// NewTable builds the full pre-declared table against store, whose
// pre-declared scalar/vector-alias/matrix-alias handles this package
// reads directly (typestore.Store.New() always seeds them, so
// MustHandleOfIdent never panics here).
func NewTable(store *typestore.Store) *Table {
	t := &Table{builtins: make(map[string]*Builtin)}
	t.registerScalarConstructors(store)
	t.registerVectorConstructors(store)
	t.registerMatrixConstructors(store)
	return t
}

func (t *Table) register(name string, overloads ...Overload) {
	t.builtins[name] = &Builtin{Name: name, Overloads: overloads}
}

// Lookup returns the builtin registered under name, if any.
func (t *Table) Lookup(name string) (*Builtin, bool) {
	b, ok := t.builtins[name]
	return b, ok
}

// Names returns every registered builtin name, for a caller (internal/
// modulescope) installing the whole table into the function map.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.builtins))
	for name := range t.builtins {
		names = append(names, name)
	}
	return names
}

var scalarNames = []string{"bool", "i32", "u32", "f32", "f16"}

// registerScalarConstructors installs bool()/i32()/.../f16(), each with
// a zero-arg default-value overload plus a one-arg conversion overload
// per source scalar (so f32(some_i32) resolves, matching WGSL's scalar
// constructor/reinterpretation rules).
func (t *Table) registerScalarConstructors(store *typestore.Store) {
	for _, target := range scalarNames {
		targetHandle := store.MustHandleOfIdent(target)
		overloads := []Overload{{Return: targetHandle}}
		for _, source := range scalarNames {
			overloads = append(overloads, Overload{
				Params: []typestore.Handle[typestore.Type]{store.MustHandleOfIdent(source)},
				Return: targetHandle,
			})
		}
		t.register(target, overloads...)
	}
}

// vecElementSuffixes maps each numeric scalar to the letter its named
// vector alias uses (vec3i, vec3u, vec3f, vec3h).
var vecElementSuffixes = []struct {
	scalar, suffix string
}{
	{"i32", "i"}, {"u32", "u"}, {"f32", "f"}, {"f16", "h"},
}

// registerVectorConstructors installs vec2/vec3/vec4 (one overload per
// component-type variant, each either a splat or a fully-specified
// component list) and the named aliases (vec3f, ...) with just their
// own element type's overloads.
func (t *Table) registerVectorConstructors(store *typestore.Store) {
	for _, width := range []int{2, 3, 4} {
		bareName := fmt.Sprintf("vec%d", width)
		var bareOverloads []Overload

		for _, elem := range vecElementSuffixes {
			elemHandle := store.MustHandleOfIdent(elem.scalar)
			aliasName := fmt.Sprintf("vec%d%s", width, elem.suffix)
			returnHandle := store.MustHandleOfIdent(aliasName)

			splat := Overload{Params: []typestore.Handle[typestore.Type]{elemHandle}, Return: returnHandle}
			full := Overload{Params: repeatHandle(elemHandle, width), Return: returnHandle}

			bareOverloads = append(bareOverloads, splat, full)
			t.register(aliasName, splat, full)
		}
		t.register(bareName, bareOverloads...)
	}
}

// matElementSuffixes maps each matrix-eligible scalar to its alias
// letter (mat3x3f, mat3x3h).
var matElementSuffixes = []struct {
	scalar, suffix string
}{
	{"f32", "f"}, {"f16", "h"},
}

// registerMatrixConstructors installs mat{C}x{R} for each of the nine
// shapes (one overload per element variant, either a per-column-vector
// form or a fully-specified per-component form) and the named aliases.
func (t *Table) registerMatrixConstructors(store *typestore.Store) {
	for _, cols := range []int{2, 3, 4} {
		for _, rows := range []int{2, 3, 4} {
			bareName := fmt.Sprintf("mat%dx%d", cols, rows)
			var bareOverloads []Overload

			for _, elem := range matElementSuffixes {
				aliasName := fmt.Sprintf("mat%dx%d%s", cols, rows, elem.suffix)
				returnHandle := store.MustHandleOfIdent(aliasName)

				colVecAlias := fmt.Sprintf("vec%d%s", rows, elem.suffix)
				colVecHandle := store.MustHandleOfIdent(colVecAlias)
				byColumns := Overload{Params: repeatHandle(colVecHandle, cols), Return: returnHandle}

				scalarHandle := store.MustHandleOfIdent(elem.scalar)
				byComponent := Overload{Params: repeatHandle(scalarHandle, cols*rows), Return: returnHandle}

				bareOverloads = append(bareOverloads, byColumns, byComponent)
				t.register(aliasName, byColumns, byComponent)
			}
			t.register(bareName, bareOverloads...)
		}
	}
}

func repeatHandle(h typestore.Handle[typestore.Type], n int) []typestore.Handle[typestore.Type] {
	out := make([]typestore.Handle[typestore.Type], n)
	for i := range out {
		out[i] = h
	}
	return out
}
