package ast

import "github.com/unfinishedprogram/wgsl-analyzer/internal/span"

// Declaration is the closed union of declaration node kinds. It is used
// both at module scope and, via DeclStmt, inside function bodies —
// internal/validator is what enforces which kinds are legal where.
type Declaration interface {
	Span() span.Span
	isDeclaration()
}

// VarDecl is `var<address-space, access-mode>? name: type? = init?;`.
// AddressSpace and AccessMode are nil when no template list was given.
type VarDecl struct {
	DeclSpan    span.Span
	Attrs       []Attribute
	AddressSpace *span.Spanned[string]
	AccessMode   *span.Spanned[string]
	Name         span.Spanned[string]
	Type         Expression // nil if the type is inferred from Initializer
	Initializer  Expression // nil if absent
}

func (d *VarDecl) Span() span.Span { return d.DeclSpan }
func (*VarDecl) isDeclaration()    {}

// ConstDecl is a module- or function-scope `const name: type? = init;`.
// const always requires an initializer.
type ConstDecl struct {
	DeclSpan    span.Span
	Name        span.Spanned[string]
	Type        Expression
	Initializer Expression
}

func (d *ConstDecl) Span() span.Span { return d.DeclSpan }
func (*ConstDecl) isDeclaration()    {}

// LetDecl is a function-scope `let name: type? = init;`. let always
// requires an initializer.
type LetDecl struct {
	DeclSpan    span.Span
	Name        span.Spanned[string]
	Type        Expression
	Initializer Expression
}

func (d *LetDecl) Span() span.Span { return d.DeclSpan }
func (*LetDecl) isDeclaration()    {}

// AliasDecl is `alias name = type;`.
type AliasDecl struct {
	DeclSpan span.Span
	Name     span.Spanned[string]
	Type     Expression
}

func (d *AliasDecl) Span() span.Span { return d.DeclSpan }
func (*AliasDecl) isDeclaration()    {}

// StructMember is one `attr* name: type` line inside a struct body.
type StructMember struct {
	MemberSpan span.Span
	Attrs      []Attribute
	Name       span.Spanned[string]
	Type       Expression
}

// StructDecl is `struct name { member, ... }`.
type StructDecl struct {
	DeclSpan span.Span
	Name     span.Spanned[string]
	Members  []StructMember
}

func (d *StructDecl) Span() span.Span { return d.DeclSpan }
func (*StructDecl) isDeclaration()    {}

// Parameter is one `attr* name: type` entry in a function's parameter
// list.
type Parameter struct {
	ParamSpan span.Span
	Attrs     []Attribute
	Name      span.Spanned[string]
	Type      Expression
}

// FunctionDecl is `attr* fn name(params) (-> attr* type)? body`.
// ReturnType is nil for a function with no return value.
type FunctionDecl struct {
	DeclSpan    span.Span
	Attrs       []Attribute
	Name        span.Spanned[string]
	Params      []Parameter
	ReturnAttrs []Attribute
	ReturnType  Expression
	Body        *CompoundStmt
}

func (d *FunctionDecl) Span() span.Span { return d.DeclSpan }
func (*FunctionDecl) isDeclaration()    {}

// ConstAssertDecl is `const_assert expr;`.
type ConstAssertDecl struct {
	DeclSpan span.Span
	Expr     Expression
}

func (d *ConstAssertDecl) Span() span.Span { return d.DeclSpan }
func (*ConstAssertDecl) isDeclaration()    {}
