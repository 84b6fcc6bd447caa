package typestore

import (
	"fmt"

	"github.com/unfinishedprogram/wgsl-analyzer/internal/ast"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/diagnostic"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/span"
)

// Invalid is the handle a failed lookup or resolution returns instead of
// a zero Handle, so callers that ignore the accompanying bool still get
// something Get can dereference without panicking.
type Invalid struct{}

func (Invalid) isType() {}

// Store owns the type arena and the name → Handle mapping, grounded on
// type_store.rs's TypeStore{types: Arena<Type>, identifiers: HashMap<...>}.
// User-defined types additionally get an entry in spans (their
// declaration site); builtins never do, which is exactly the signal
// SpanOf and the collision-reporting rules below key off of.
type Store struct {
	types       Arena[Type]
	identifiers map[string]Handle[Type]
	spans       map[Handle[Type]]span.Span

	invalid Handle[Type]
}

// New builds a Store with every pre-declared scalar, vector alias,
// matrix alias, and type-generator name installed.
func New() *Store {
	s := &Store{
		identifiers: make(map[string]Handle[Type]),
		spans:       make(map[Handle[Type]]span.Span),
	}
	s.invalid = s.types.Insert(Invalid{})

	// Only these five are predeclared directly, matching
	// type_store.rs::init() exactly; abstract-int/abstract-float have
	// no source spelling and so get no identifier entry.
	s.declare("bool", Scalar{Kind: ScalarBool})
	i32H := s.declare("i32", Scalar{Kind: ScalarI32})
	u32H := s.declare("u32", Scalar{Kind: ScalarU32})
	f32H := s.declare("f32", Scalar{Kind: ScalarF32})
	f16H := s.declare("f16", Scalar{Kind: ScalarF16})

	for _, kind := range generatorOrder {
		info := allPredeclaredGenerators[kind]
		s.declare(info.name, Generator{Kind: kind})
	}

	// vecNi/u/f/h: named shorthands for vecN<i32|u32|f32|f16>.
	vecScalars := []struct {
		suffix string
		handle Handle[Type]
	}{{"i", i32H}, {"u", u32H}, {"f", f32H}, {"h", f16H}}
	for _, width := range []int{2, 3, 4} {
		for _, elem := range vecScalars {
			name := fmt.Sprintf("vec%d%s", width, elem.suffix)
			base := s.types.Insert(Vec{Width: width, Element: elem.handle})
			s.declare(name, Alias{Name: name, Base: base})
		}
	}

	// mat{C}x{R}f/h: named shorthands for mat{C}x{R}<f32|f16>, reusing
	// the Mat generator table's column/row pairs.
	matScalars := []struct {
		suffix string
		handle Handle[Type]
	}{{"f", f32H}, {"h", f16H}}
	for _, kind := range []GeneratorKind{
		GenMat2x2, GenMat2x3, GenMat2x4,
		GenMat3x2, GenMat3x3, GenMat3x4,
		GenMat4x2, GenMat4x3, GenMat4x4,
	} {
		info := allPredeclaredGenerators[kind]
		for _, elem := range matScalars {
			name := fmt.Sprintf("%s%s", info.name, elem.suffix)
			base := s.types.Insert(Mat{Cols: info.matCols, Rows: info.matRows, Element: elem.handle})
			s.declare(name, Alias{Name: name, Base: base})
		}
	}

	return s
}

func (s *Store) declare(name string, t Type) Handle[Type] {
	h := s.types.Insert(t)
	s.identifiers[name] = h
	return h
}

// Get dereferences a Handle this Store issued.
func (s *Store) Get(h Handle[Type]) Type { return s.types.Get(h) }

// MustHandleOfIdent looks up a predeclared identifier by name, for
// callers (internal/builtins) that build tables against names the
// Store always seeds. Panics if name was never predeclared — that
// indicates a programming error in the caller, not a user error, so it
// is not reported through the normal diagnostic path.
func (s *Store) MustHandleOfIdent(name string) Handle[Type] {
	h, ok := s.identifiers[name]
	if !ok {
		panic("typestore: no predeclared identifier " + name)
	}
	return h
}

// HandleOfIdent looks up name only, reporting "not defined" at sp on a
// miss (module/type_store.rs::handle_of_ident).
func (s *Store) HandleOfIdent(name string, sp span.Span, diags *diagnostic.List) (Handle[Type], bool) {
	h, ok := s.identifiers[name]
	if !ok {
		diags.Addf(sp, "identifier: '%s' is not defined", name)
		return s.invalid, false
	}
	return h, true
}

// SpanOf returns the declaration span of a user-defined type, or
// (zero, false) for a builtin (no declaration site exists).
func (s *Store) SpanOf(h Handle[Type]) (span.Span, bool) {
	sp, ok := s.spans[h]
	return sp, ok
}

// Resolve looks up expr (which must be an *ast.IdentExpr, optionally
// template-elaborated — the same node shape the parser uses for every
// type position per 4.3) and applies any template arguments.
func (s *Store) Resolve(expr ast.Expression, diags *diagnostic.List) (Handle[Type], bool) {
	ident, ok := expr.(*ast.IdentExpr)
	if !ok {
		diags.Addf(expr.Span(), "expected a type")
		return s.invalid, false
	}
	h, ok := s.HandleOfIdent(ident.Name, ident.Span(), diags)
	if !ok {
		return h, false
	}
	return s.applyTemplateArgs(h, ident.TemplateArgs, ident.Span(), diags)
}

// applyTemplateArgs is the heart of 4.4's "Template application" table:
// aliases recurse transparently into their base, generators specialize
// into a concrete Vec/Mat/Array/Atomic type, and anything else rejects arguments
// outright.
func (s *Store) applyTemplateArgs(h Handle[Type], args []ast.Expression, callSpan span.Span, diags *diagnostic.List) (Handle[Type], bool) {
	switch t := s.types.Get(h).(type) {
	case Alias:
		return s.applyTemplateArgs(t.Base, args, callSpan, diags)
	case Generator:
		return s.specializeGenerator(t.Kind, args, callSpan, diags)
	default:
		if len(args) > 0 {
			diags.Addf(callSpan, "type does not take template arguments")
			return h, false
		}
		return h, true
	}
}

func (s *Store) specializeGenerator(kind GeneratorKind, args []ast.Expression, callSpan span.Span, diags *diagnostic.List) (Handle[Type], bool) {
	info := allPredeclaredGenerators[kind]
	if len(args) < info.minArgs {
		diags.Addf(callSpan, "type requires at least %d template arguments, got : %d", info.minArgs, len(args))
		return s.invalid, false
	}
	if len(args) > info.maxArgs {
		diags.Addf(callSpan, "type requires at most %d template arguments, got : %d", info.maxArgs, len(args))
		return s.invalid, false
	}

	if info.notImplemented {
		sp := callSpan
		if len(args) > 0 {
			sp = args[0].Span()
		}
		diags.Addf(sp, "%s is not implemented", info.name)
		return s.types.Insert(NotImplemented{Name: info.name}), false
	}

	switch kind {
	case GenArray:
		return s.specializeArray(args, diags)
	case GenAtomic:
		elem, ok := s.resolveScalarArg(args[0], diags, ScalarI32, ScalarU32)
		if !ok {
			diags.Addf(args[0].Span(), "invalid atomic type provided. Atomic types can only be u32 or i32")
			return s.invalid, false
		}
		return s.types.Insert(Atomic{Element: elem}), true
	case GenVec2, GenVec3, GenVec4:
		elem, ok := s.resolveAnyScalarArg(args[0], diags)
		if !ok {
			diags.Addf(args[0].Span(), "invalid component type. Vector components must be of scalar types")
			return s.invalid, false
		}
		return s.types.Insert(Vec{Width: info.vecWidth, Element: elem}), true
	default: // the nine Mat generators
		elem, ok := s.resolveScalarArg(args[0], diags, ScalarF32, ScalarF16)
		if !ok {
			diags.Addf(args[0].Span(), "invalid matrix component type provided. Matrix types can only be f32, f16")
			return s.invalid, false
		}
		return s.types.Insert(Mat{Cols: info.matCols, Rows: info.matRows, Element: elem}), true
	}
}

func (s *Store) specializeArray(args []ast.Expression, diags *diagnostic.List) (Handle[Type], bool) {
	if _, ok := args[0].(*ast.IdentExpr); !ok {
		diags.Addf(args[0].Span(), "array type specifier must be an identifier")
		return s.invalid, false
	}
	elem, elemOK := s.Resolve(args[0], diags)

	length := ""
	ok := elemOK
	if len(args) == 2 {
		lit, isLit := args[1].(*ast.LiteralExpr)
		if !isLit || lit.Kind != ast.LiteralInt {
			diags.Addf(args[1].Span(), "invalid array length specifier. Array length must evaluate to a constant of type i32 or u32")
			ok = false
		} else {
			length = lit.Text
		}
	}
	return s.types.Insert(Array{Element: elem, Length: length}), ok
}

func (s *Store) resolveScalarArg(expr ast.Expression, diags *diagnostic.List, allowed ...ScalarKind) (Handle[Type], bool) {
	h, ok := s.Resolve(expr, diags)
	if !ok {
		return h, false
	}
	sc, isScalar := s.types.Get(h).(Scalar)
	if !isScalar {
		return h, false
	}
	for _, k := range allowed {
		if sc.Kind == k {
			return h, true
		}
	}
	return h, false
}

func (s *Store) resolveAnyScalarArg(expr ast.Expression, diags *diagnostic.List) (Handle[Type], bool) {
	h, ok := s.Resolve(expr, diags)
	if !ok {
		return h, false
	}
	if !IsScalar(s.types.Get(h)) {
		return h, false
	}
	return h, true
}

// InsertDeclarations registers every struct and type alias from a
// translation unit's top-level declarations, per 4.4's "Struct
// registration"/"Alias registration" rules. It runs in two passes so a
// struct or alias may reference any other name from the same
// declaration list regardless of source order: pass one reserves a
// Handle per name (so forward references resolve), pass two fills in
// members/bases.
func (s *Store) InsertDeclarations(decls []ast.Declaration, diags *diagnostic.List) {
	type reserved struct {
		decl   ast.Declaration
		handle Handle[Type]
	}
	var structs, aliases []reserved

	for _, d := range decls {
		switch decl := d.(type) {
		case *ast.StructDecl:
			if h, ok := s.reserveName(decl.Name.Value, decl.Name.Span, diags); ok {
				structs = append(structs, reserved{decl: decl, handle: h})
			}
		case *ast.AliasDecl:
			if h, ok := s.reserveName(decl.Name.Value, decl.Name.Span, diags); ok {
				aliases = append(aliases, reserved{decl: decl, handle: h})
			}
		}
	}

	for _, r := range structs {
		s.finishStruct(r.handle, r.decl.(*ast.StructDecl), diags)
	}
	for _, r := range aliases {
		s.finishAlias(r.handle, r.decl.(*ast.AliasDecl), diags)
	}
}

// reserveName registers name against a placeholder Handle, diagnosing a
// collision at the existing type's span when it has one (a user type)
// or at the new identifier's span otherwise (colliding with a builtin),
// exactly as 4.4's "Struct registration" collision rule specifies.
func (s *Store) reserveName(name string, sp span.Span, diags *diagnostic.List) (Handle[Type], bool) {
	if existing, ok := s.identifiers[name]; ok {
		if existingSpan, hasSpan := s.SpanOf(existing); hasSpan {
			diags.Addf(existingSpan, "'%s' is already declared", name).WithRule(diagnostic.RuleDuplicateType)
		} else {
			diags.Addf(sp, "'%s' is already defined as a builtin", name).WithRule(diagnostic.RuleDuplicateType)
		}
		return s.invalid, false
	}
	h := s.types.Insert(Invalid{})
	s.identifiers[name] = h
	s.spans[h] = sp
	return h, true
}

func (s *Store) finishStruct(h Handle[Type], decl *ast.StructDecl, diags *diagnostic.List) {
	members := make([]StructMember, 0, len(decl.Members))
	seen := make(map[string]span.Span, len(decl.Members))
	for _, m := range decl.Members {
		if prior, dup := seen[m.Name.Value]; dup {
			diags.Addf(m.Name.Span, "duplicate struct member '%s'", m.Name.Value).
				WithRelated(prior, "other member defined here").
				WithRule(diagnostic.RuleDuplicateMember)
			continue
		}
		seen[m.Name.Value] = m.Name.Span
		memberHandle, _ := s.Resolve(m.Type, diags)
		members = append(members, StructMember{Name: m.Name.Value, Type: memberHandle, Span: m.MemberSpan})
	}
	s.types.Set(h, Struct{Name: decl.Name.Value, Members: members})
}

func (s *Store) finishAlias(h Handle[Type], decl *ast.AliasDecl, diags *diagnostic.List) {
	base, _ := s.Resolve(decl.Type, diags)
	s.types.Set(h, Alias{Name: decl.Name.Value, Base: base})
}

// IsConstructable reports whether a value of this type can appear as a
// constructor/initializer expression's result, per 4.4's
// "Constructability" rule: scalar, vector, matrix, sized array of a
// constructable element, or struct whose members are all constructable.
func (s *Store) IsConstructable(h Handle[Type]) bool {
	switch t := s.types.Get(h).(type) {
	case Scalar, Vec, Mat:
		return true
	case Array:
		return t.Length != "" && s.IsConstructable(t.Element)
	case Struct:
		for _, m := range t.Members {
			if !s.IsConstructable(m.Type) {
				return false
			}
		}
		return true
	case Alias:
		return s.IsConstructable(t.Base)
	default: // Atomic, Generator, NotImplemented, Invalid
		return false
	}
}
