// Package modulescope implements the module-level name tables (spec.md
// §4.5): a function table seeded first with pre-declared builtins, then
// with every user `fn` declaration's header, and a variable table for
// module-scope `var`/`const` declarations. Grounded on spec.md §3's
// "Module Scope holds functions: name → Function and variables: name →
// handle" and populated in the three phases §4.5 specifies (function
// body validation, phase three, lives in internal/validator).
package modulescope

import (
	"sort"

	"github.com/unfinishedprogram/wgsl-analyzer/internal/ast"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/builtins"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/diagnostic"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/scope"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/span"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/typestore"
)

// Parameter is one resolved, named function parameter.
type Parameter struct {
	Name string
	Type typestore.Handle[typestore.Type]
}

// Function is either a pre-declared builtin (IsBuiltin true,
// BuiltinOverloads populated) or a user-defined function, whose Body
// starts Unprocessed (Validated false) and becomes Validated by
// internal/validator once its statement list has been walked, whether or
// not the walk reported a placement violation.
type Function struct {
	Name     string
	IsBuiltin bool

	// Builtin-only.
	BuiltinOverloads []builtins.Overload

	// User-defined only.
	Attrs      []ast.Attribute
	NameSpan   span.Span
	Params     []Parameter
	HasReturn  bool
	ReturnType typestore.Handle[typestore.Type]
	Body       *ast.CompoundStmt

	Validated bool
	Scope     scope.Handle
}

// Variable is a module-scope `var`/`const` declaration. HasType is
// false when the declaration has no explicit type annotation and an
// initializer's type was not inferred (inference is out of CORE scope
// per 4.6 — the declaration is still recorded for name resolution and
// document-symbol listing, just without a usable Type handle).
type Variable struct {
	Name         string
	NameSpan     span.Span
	HasType      bool
	Type         typestore.Handle[typestore.Type]
	AddressSpace string
	AccessMode   string
	IsConst      bool
}

// Scope is the populated module scope.
type Scope struct {
	Functions map[string]*Function
	Variables map[string]*Variable
}

// New creates an empty Scope.
func New() *Scope {
	return &Scope{
		Functions: make(map[string]*Function),
		Variables: make(map[string]*Variable),
	}
}

// InstallBuiltins is phase one: install the pre-declared value-
// constructor table.
func (s *Scope) InstallBuiltins(table *builtins.Table) {
	for _, name := range table.Names() {
		b, ok := table.Lookup(name)
		if !ok {
			continue
		}
		s.Functions[name] = &Function{Name: name, IsBuiltin: true, BuiltinOverloads: b.Overloads}
	}
}

// InstallUserDeclarations is phase two: register every top-level `fn`
// header (resolving parameter/return types against store, which must
// already have every struct/alias registered — insertion order is
// irrelevant per 4.5 since types are fully registered first) and every
// top-level `var`/`const`. Name collisions are diagnosed rather than
// silently overwriting the earlier entry.
func (s *Scope) InstallUserDeclarations(decls []ast.Declaration, store *typestore.Store, diags *diagnostic.List) {
	for _, d := range decls {
		switch decl := d.(type) {
		case *ast.FunctionDecl:
			s.installFunction(decl, store, diags)
		case *ast.VarDecl:
			s.installVariable(decl.Name, decl.Type, decl.AddressSpace, decl.AccessMode, false, store, diags)
		case *ast.ConstDecl:
			s.installVariable(decl.Name, decl.Type, nil, nil, true, store, diags)
		}
	}
}

func (s *Scope) installFunction(decl *ast.FunctionDecl, store *typestore.Store, diags *diagnostic.List) {
	if !s.checkFunctionNameFree(decl.Name, diags) {
		return
	}

	params := make([]Parameter, 0, len(decl.Params))
	for _, p := range decl.Params {
		h, _ := store.Resolve(p.Type, diags)
		params = append(params, Parameter{Name: p.Name.Value, Type: h})
	}

	fn := &Function{
		Name:      decl.Name.Value,
		Attrs:     decl.Attrs,
		NameSpan:  decl.Name.Span,
		Params:    params,
		Body:      decl.Body,
		HasReturn: decl.ReturnType != nil,
	}
	if fn.HasReturn {
		fn.ReturnType, _ = store.Resolve(decl.ReturnType, diags)
	}
	s.Functions[decl.Name.Value] = fn
}

func (s *Scope) checkFunctionNameFree(name span.Spanned[string], diags *diagnostic.List) bool {
	existing, ok := s.Functions[name.Value]
	if !ok {
		return true
	}
	if existing.IsBuiltin {
		diags.Addf(name.Span, "function '%s' conflicts with a built-in of the same name", name.Value)
		return false
	}
	diags.Addf(name.Span, "function '%s' is already defined", name.Value).
		WithRelated(existing.NameSpan, "first defined here")
	return false
}

// UserFunctions returns every non-builtin function, ordered by source
// position (NameSpan.Start) so internal/validator emits its diagnostics
// in source order (spec.md §5's ordering guarantee) regardless of the
// function map's iteration order.
func (s *Scope) UserFunctions() []*Function {
	out := make([]*Function, 0, len(s.Functions))
	for _, fn := range s.Functions {
		if !fn.IsBuiltin {
			out = append(out, fn)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NameSpan.Start < out[j].NameSpan.Start
	})
	return out
}

func (s *Scope) installVariable(name span.Spanned[string], typeExpr ast.Expression, addressSpace, accessMode *span.Spanned[string], isConst bool, store *typestore.Store, diags *diagnostic.List) {
	if existing, ok := s.Variables[name.Value]; ok {
		diags.Addf(name.Span, "'%s' is already defined", name.Value).
			WithRelated(existing.NameSpan, "first defined here")
		return
	}

	v := &Variable{Name: name.Value, NameSpan: name.Span, IsConst: isConst}
	if addressSpace != nil {
		v.AddressSpace = addressSpace.Value
	}
	if accessMode != nil {
		v.AccessMode = accessMode.Value
	}
	if typeExpr != nil {
		v.Type, _ = store.Resolve(typeExpr, diags)
		v.HasType = true
	}
	s.Variables[name.Value] = v
}
