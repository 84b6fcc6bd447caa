// Package diagnostic provides the error-accumulation primitives used by
// every pass in the pipeline: a severity+message+span+related-info record
// (Diagnostic) and a per-build accumulator (List). No pass aborts on the
// first problem it finds; it records a Diagnostic and keeps going.
package diagnostic

import (
	"fmt"

	"github.com/unfinishedprogram/wgsl-analyzer/internal/span"
)

// Severity mirrors the LSP DiagnosticSeverity levels 1:1, so a consumer
// bridging to an LSP transport (an external collaborator) can cast the
// value directly.
type Severity uint8

const (
	Error Severity = iota + 1
	Warning
	Info
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Related points at a secondary location relevant to a Diagnostic — the
// first definition of a name that a second definition conflicts with, for
// example.
type Related struct {
	Span    span.Span
	Message string
}

// Diagnostic is a single reported problem. Span is a pointer because some
// diagnostics (reserved for future use by callers composing partial
// results) may have no precise location; every diagnostic this module
// raises itself sets it.
type Diagnostic struct {
	Severity Severity
	Span     *span.Span
	Message  string
	Related  []Related

	// Rule names the check this diagnostic came from (one of the
	// Rule* constants below), empty when the diagnostic has no
	// corresponding entry in config.Options.DisabledDiagnostics.
	Rule string
}

// Error satisfies the error interface so a Diagnostic composes with
// ordinary Go error handling (errors.As, fmt.Errorf("%w", ...)).
func (d *Diagnostic) Error() string {
	if d.Span != nil {
		return fmt.Sprintf("%s at [%d,%d): %s", d.Severity, d.Span.Start, d.Span.End, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// New builds an Error-severity Diagnostic at sp with no related info —
// the common case for every pass.
func New(sp span.Span, message string) *Diagnostic {
	return &Diagnostic{Severity: Error, Span: &sp, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(sp span.Span, format string, args ...any) *Diagnostic {
	return New(sp, fmt.Sprintf(format, args...))
}

// WithSeverity returns a copy of d with a different severity, for callers
// that build at Error by default and escalate/de-escalate afterwards
// (config.Options.StrictMode, for instance).
func (d *Diagnostic) WithSeverity(sev Severity) *Diagnostic {
	cp := *d
	cp.Severity = sev
	return &cp
}

// WithRelated appends a Related entry and returns d for chaining at the
// call site: diagnostic.New(sp, "...").WithRelated(prior, "first defined here").
func (d *Diagnostic) WithRelated(sp span.Span, message string) *Diagnostic {
	d.Related = append(d.Related, Related{Span: sp, Message: message})
	return d
}

// WithRule tags d with the named rule (one of the Rule* constants), so
// a Filter built from config.Options.DisabledDiagnostics can match it.
func (d *Diagnostic) WithRule(rule string) *Diagnostic {
	d.Rule = rule
	return d
}

// List accumulates diagnostics across a build. Every pass in the pipeline
// takes a *List rather than returning early on the first problem.
type List struct {
	diagnostics []*Diagnostic
	hasErrors   bool
}

// NewList creates an empty accumulator.
func NewList() *List {
	return &List{}
}

// Add records a diagnostic.
func (l *List) Add(d *Diagnostic) {
	if d == nil {
		return
	}
	l.diagnostics = append(l.diagnostics, d)
	if d.Severity == Error {
		l.hasErrors = true
	}
}

// Addf is a convenience wrapper around Add(Newf(...)).
func (l *List) Addf(sp span.Span, format string, args ...any) *Diagnostic {
	d := Newf(sp, format, args...)
	l.Add(d)
	return d
}

// AddWarning is Addf at Warning severity.
func (l *List) AddWarning(sp span.Span, format string, args ...any) *Diagnostic {
	d := Newf(sp, format, args...)
	d.Severity = Warning
	l.Add(d)
	return d
}

// Extend appends every diagnostic in other to l, in order.
func (l *List) Extend(other []*Diagnostic) {
	for _, d := range other {
		l.Add(d)
	}
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (l *List) HasErrors() bool {
	return l.hasErrors
}

// All returns every diagnostic recorded, in the order added (which is
// source order within any one pass, per the pipeline's ordering
// guarantee).
func (l *List) All() []*Diagnostic {
	return l.diagnostics
}

// Errors returns only Error-severity diagnostics.
func (l *List) Errors() []*Diagnostic {
	return l.filter(Error)
}

// Warnings returns only Warning-severity diagnostics.
func (l *List) Warnings() []*Diagnostic {
	return l.filter(Warning)
}

func (l *List) filter(sev Severity) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range l.diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// Count returns the total number of diagnostics recorded.
func (l *List) Count() int {
	return len(l.diagnostics)
}

// Apply rewrites l in place against f and strict: diagnostics whose Rule
// is disabled by f are dropped, and any remaining Warning is escalated to
// Error when strict is set (config.Options.StrictMode). Diagnostics with
// no Rule are never filtered, only (possibly) escalated.
func (l *List) Apply(f *Filter, strict bool) {
	kept := l.diagnostics[:0]
	hasErrors := false
	for _, d := range l.diagnostics {
		if d.Rule != "" && f != nil && f.IsDisabled(d.Rule) {
			continue
		}
		if strict && d.Severity == Warning {
			d = d.WithSeverity(Error)
		}
		if d.Severity == Error {
			hasErrors = true
		}
		kept = append(kept, d)
	}
	l.diagnostics = kept
	l.hasErrors = hasErrors
}

// Filter controls which named rules are reported and at what severity,
// adapted from the teacher's DiagnosticFilter for the small, fixed rule
// set this system raises (see internal/config).
type Filter struct {
	Rules map[string]Severity
}

const disabled = Severity(255)

func NewFilter() *Filter {
	return &Filter{Rules: make(map[string]Severity)}
}

func (f *Filter) SetRule(rule string, severity Severity) {
	f.Rules[rule] = severity
}

func (f *Filter) DisableRule(rule string) {
	f.Rules[rule] = disabled
}

func (f *Filter) IsDisabled(rule string) bool {
	return f.Rules[rule] == disabled
}

// Apply returns defaultSev unless rule has an override; IsDisabled should
// be checked by the caller first to decide whether to emit at all.
func (f *Filter) Apply(rule string, defaultSev Severity) Severity {
	if sev, ok := f.Rules[rule]; ok && sev != disabled {
		return sev
	}
	return defaultSev
}

const (
	RuleDuplicateMember      = "duplicate-member"
	RuleDuplicateType        = "duplicate-type"
	RuleMisplacedDeclaration = "misplaced-declaration"
)
