package typestore

import "github.com/unfinishedprogram/wgsl-analyzer/internal/span"

// Type is the closed union of semantic type kinds, adapted from the
// richer pointer-based Type interface the teacher's internal/types
// package built for a full WGSL type checker (Equals/Size/Align/
// constructor helpers). Resolving expressions against these types is
// out of scope here (4.6 leaves full expression/type checking as a
// placeholder), so each kind below keeps only what the type store
// itself needs: shape, element references (by Handle, not pointer), and
// constructability.
type Type interface {
	isType()
}

// ScalarKind enumerates WGSL's scalar kinds, including the two abstract
// kinds (produced internally by literal inference, never written as an
// identifier, so they have no entry in Store.identifiers).
type ScalarKind uint8

const (
	ScalarBool ScalarKind = iota
	ScalarI32
	ScalarU32
	ScalarF32
	ScalarF16
	ScalarAbstractInt
	ScalarAbstractFloat
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarBool:
		return "bool"
	case ScalarI32:
		return "i32"
	case ScalarU32:
		return "u32"
	case ScalarF32:
		return "f32"
	case ScalarF16:
		return "f16"
	case ScalarAbstractInt:
		return "abstract-int"
	case ScalarAbstractFloat:
		return "abstract-float"
	default:
		return "unknown"
	}
}

// Scalar is a scalar type.
type Scalar struct{ Kind ScalarKind }

func (Scalar) isType() {}

// Vec is vecN<T>.
type Vec struct {
	Width   int // 2, 3, or 4
	Element Handle[Type]
}

func (Vec) isType() {}

// Mat is matCxR<T>.
type Mat struct {
	Cols, Rows int // each 2, 3, or 4
	Element    Handle[Type]
}

func (Mat) isType() {}

// Array is array<element> (Length == "" for a runtime-sized array) or
// array<element, length>. Length keeps the literal's source text rather
// than a parsed integer — constant evaluation is out of scope (the
// original's own generator.rs leaves this a `// TODO: Constant
// evaluation`).
type Array struct {
	Element Handle[Type]
	Length  string
}

func (Array) isType() {}

// Atomic is atomic<T>, T ∈ {i32, u32}.
type Atomic struct{ Element Handle[Type] }

func (Atomic) isType() {}

// StructMember is one resolved struct field.
type StructMember struct {
	Name string
	Type Handle[Type]
	Span span.Span
}

// Struct is a user-defined struct type.
type Struct struct {
	Name    string
	Members []StructMember
}

func (Struct) isType() {}

// Alias is a user-defined `alias name = type;`, or one of the built-in
// named shorthands (matCxRf, vecNi, ...) seeded at Store construction.
// Resolving an Alias's template arguments recurses into Base with the
// same arguments — aliases are transparent, per 4.4.
type Alias struct {
	Name string
	Base Handle[Type]
}

func (Alias) isType() {}

// NotImplemented stands in for ptr and texture types, which the
// original implementation also leaves unimplemented (generator.rs's
// apply_template_args calls not_implemented() for Ptr and every texture
// variant). Kept as a distinct Type rather than an error return so a
// Handle is still produced and the name remains resolvable; applying
// template arguments to these generators always reports a diagnostic
// without constructing a further specialization.
type NotImplemented struct{ Name string }

func (NotImplemented) isType() {}

// Generator is a type constructor awaiting template arguments (`array`,
// `vec3`, `mat4x4`, `ptr`, texture names, ...). The Store's
// applyTemplateArgs specializes a Generator's Handle into a concrete
// Vec/Mat/Array/Atomic type.
type Generator struct{ Kind GeneratorKind }

func (Generator) isType() {}

// IsScalar reports whether t is a Scalar.
func IsScalar(t Type) bool { _, ok := t.(Scalar); return ok }

// IsNumericScalar reports whether k is usable as a numeric element type
// (everything but bool).
func (k ScalarKind) IsNumericScalar() bool { return k != ScalarBool }
