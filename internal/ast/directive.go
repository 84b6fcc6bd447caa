package ast

import "github.com/unfinishedprogram/wgsl-analyzer/internal/span"

// Directive is a top-level `enable`/`requires`/`diagnostic` directive.
// These appear before any declaration in a translation unit. They carry
// no semantic effect in this implementation beyond being recorded on
// the Module (no feature gating is performed) — supplementing a
// construct the distilled keyword list implied but never placed in a
// grammar rule.
type Directive interface {
	Span() span.Span
	isDirective()
}

// EnableDirective is `enable feature, feature, ...;`.
type EnableDirective struct {
	DirSpan  span.Span
	Features []string
}

func (d EnableDirective) Span() span.Span { return d.DirSpan }
func (EnableDirective) isDirective()       {}

// RequiresDirective is `requires feature, feature, ...;`.
type RequiresDirective struct {
	DirSpan  span.Span
	Features []string
}

func (d RequiresDirective) Span() span.Span { return d.DirSpan }
func (RequiresDirective) isDirective()       {}

// DiagnosticDirective is `diagnostic(severity, rule);`.
type DiagnosticDirective struct {
	DirSpan  span.Span
	Severity string
	Rule     string
}

func (d DiagnosticDirective) Span() span.Span { return d.DirSpan }
func (DiagnosticDirective) isDirective()       {}
