// Package ast defines the spanned abstract syntax tree produced by
// internal/parser: expressions, statements, declarations, and the
// top-level translation unit. Every node is a closed tagged union,
// expressed the Go way as an interface with unexported marker methods
// implemented by a fixed set of concrete structs — adding a new variant
// forces every switch over the interface to be revisited.
package ast

import (
	"github.com/unfinishedprogram/wgsl-analyzer/internal/span"
)

// TranslationUnit is the root of a parsed source file: its directives
// (enable/requires/diagnostic) followed by its top-level declarations.
type TranslationUnit struct {
	Directives   []Directive
	Declarations []span.Spanned[Declaration]
}

// Attribute is `@name(args...)`, with at most three arguments per the
// WGSL grammar. The parser enforces the argument-count limit; this type
// just carries whatever was parsed.
type Attribute struct {
	AttrSpan span.Span
	Name     string
	Args     []Expression
}

func (a Attribute) Span() span.Span { return a.AttrSpan }
