package ast

import "github.com/unfinishedprogram/wgsl-analyzer/internal/span"

// Expression is the closed union of expression node kinds.
type Expression interface {
	Span() span.Span
	isExpression()
}

// LiteralKind distinguishes the three literal forms a Token can carry;
// numeric conversion is deferred past this layer (spec's scope stops at
// keeping the literal's textual form).
type LiteralKind uint8

const (
	LiteralBool LiteralKind = iota
	LiteralInt
	LiteralFloat
)

// LiteralExpr is a boolean, integer, or float literal, keeping its exact
// source text (suffixes and all) rather than a parsed numeric value.
type LiteralExpr struct {
	ExprSpan span.Span
	Kind     LiteralKind
	Text     string
}

func (e *LiteralExpr) Span() span.Span { return e.ExprSpan }
func (*LiteralExpr) isExpression()     {}

// IdentExpr is an identifier, optionally elaborated with a template-
// argument list (`vec3<f32>`, `array<T, 4>`). TemplateArgs is nil when
// no `<...>` list was present. This is also how the parser represents a
// type reference: type positions are parsed with the same rule and left
// for the type store to validate in context (spec §4.3).
type IdentExpr struct {
	ExprSpan     span.Span
	Name         string
	TemplateArgs []Expression
}

func (e *IdentExpr) Span() span.Span { return e.ExprSpan }
func (*IdentExpr) isExpression()     {}

// CallExpr is a function call or type constructor call: callee(args...).
type CallExpr struct {
	ExprSpan span.Span
	Callee   Expression
	Args     []Expression
}

func (e *CallExpr) Span() span.Span { return e.ExprSpan }
func (*CallExpr) isExpression()     {}

// ParenExpr is a parenthesized sub-expression.
type ParenExpr struct {
	ExprSpan span.Span
	Inner    Expression
}

func (e *ParenExpr) Span() span.Span { return e.ExprSpan }
func (*ParenExpr) isExpression()     {}

// UnaryOp enumerates WGSL's prefix operators.
type UnaryOp uint8

const (
	UnaryNot      UnaryOp = iota // !
	UnaryNeg                     // -
	UnaryBitNot                  // ~
	UnaryDeref                   // *
	UnaryAddrOf                  // &
)

// UnaryExpr is a prefix-operator expression.
type UnaryExpr struct {
	ExprSpan span.Span
	Op       UnaryOp
	Operand  Expression
}

func (e *UnaryExpr) Span() span.Span { return e.ExprSpan }
func (*UnaryExpr) isExpression()     {}

// BinaryOp enumerates WGSL's infix operators, grouped in precedence
// order low to high (matching internal/parser's precedence-climbing
// chain).
type BinaryOp uint8

const (
	BinOrOr BinaryOp = iota
	BinAndAnd
	BinEq
	BinNotEq
	BinLt
	BinLtEq
	BinGt
	BinGtEq
	BinBitOr
	BinBitXor
	BinBitAnd
	BinShl
	BinShr
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinMod
)

// BinaryExpr is an infix-operator expression.
type BinaryExpr struct {
	ExprSpan span.Span
	Op       BinaryOp
	Left     Expression
	Right    Expression
}

func (e *BinaryExpr) Span() span.Span { return e.ExprSpan }
func (*BinaryExpr) isExpression()     {}

// ComponentOrSwizzle is one link in a singular-expression's postfix
// chain: either `.ident` (a struct member or a swizzle mask) or
// `[expr]` (an index).
type ComponentOrSwizzle interface {
	Span() span.Span
	isComponentOrSwizzle()
}

// MemberAccess is a `.ident` link — used for both struct member access
// and vector swizzles; disambiguating the two is a type-store concern,
// not a parser one.
type MemberAccess struct {
	AccessSpan span.Span
	Name       string
}

func (m MemberAccess) Span() span.Span  { return m.AccessSpan }
func (MemberAccess) isComponentOrSwizzle() {}

// IndexAccess is a `[expr]` link.
type IndexAccess struct {
	AccessSpan span.Span
	Index      Expression
}

func (i IndexAccess) Span() span.Span   { return i.AccessSpan }
func (IndexAccess) isComponentOrSwizzle() {}

// SingularExpr is a postfix chain applied to a base expression:
// `base.field[i].other`.
type SingularExpr struct {
	ExprSpan span.Span
	Base     Expression
	Chain    []ComponentOrSwizzle
}

func (e *SingularExpr) Span() span.Span { return e.ExprSpan }
func (*SingularExpr) isExpression()     {}

// IsLHS reports whether e belongs to the LHSExpression subset valid as
// an assignment target: an identifier, a parenthesized LHS, a prefix
// `&`/`*` of an LHS, or an identifier/paren/prefix with a trailing
// component/swizzle chain. Literals and calls are never LHS-valid.
func IsLHS(e Expression) bool {
	switch v := e.(type) {
	case *IdentExpr:
		return v.TemplateArgs == nil
	case *ParenExpr:
		return IsLHS(v.Inner)
	case *UnaryExpr:
		return (v.Op == UnaryDeref || v.Op == UnaryAddrOf) && IsLHS(v.Operand)
	case *SingularExpr:
		return IsLHS(v.Base)
	default:
		return false
	}
}
