// Package module provides the public facade over the WGSL semantic
// front end: tokenization, parsing, type-store and module-scope
// population, and function-body validation, wired into the single
// pipeline editor integrations call (spec.md §4.7).
package module

import (
	"log/slog"

	"github.com/unfinishedprogram/wgsl-analyzer/internal/ast"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/builtins"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/config"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/diagnostic"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/lexer"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/modulescope"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/parser"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/scope"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/span"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/typestore"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/validator"
)

// Module owns everything derived from one source string: the AST, the
// type store, the module scope, the scope tree built during function
// validation, an identifier-occurrence list for cursor queries, and the
// diagnostics accumulated across every stage.
type Module struct {
	source string
	unit   *ast.TranslationUnit
	types  *typestore.Store
	scope  *modulescope.Scope
	scopes *scope.Store
	idents []span.Spanned[string]
	diags  *diagnostic.List
	log    *slog.Logger
}

// FromSource runs the full pipeline: tokenize, disambiguate templates,
// parse, populate the type store, populate the module scope (builtins
// then user declarations), validate function bodies, and extract
// identifier occurrences. Parsing failures abort the pipeline early and
// are returned alone, matching §4.7 step 3 ("If any parse errors exist,
// return them"); every later stage's diagnostics are non-fatal and
// returned alongside a fully-populated Module.
func FromSource(source string) (*Module, *diagnostic.List) {
	return FromSourceWithLogger(source, nil)
}

// FromSourceWithLogger is FromSource with an optional logger: pass nil
// for silent operation, or a logger (config.Options.Verbose enabled)
// to get one Debug record per pass boundary, mirroring the original
// analyzer's single trace point in ident_at_position.
func FromSourceWithLogger(source string, log *slog.Logger) (*Module, *diagnostic.List) {
	unit, diags := parser.Parse(source)
	logDebug(log, "parsed", "declarations", len(unit.Declarations), "errors", diags.Count())
	if diags.HasErrors() {
		return nil, diags
	}

	decls := make([]ast.Declaration, len(unit.Declarations))
	for i, d := range unit.Declarations {
		decls[i] = d.Value
	}

	types := typestore.New()
	types.InsertDeclarations(decls, diags)
	logDebug(log, "type store populated", "errors", diags.Count())

	ms := modulescope.New()
	ms.InstallBuiltins(builtins.NewTable(types))
	ms.InstallUserDeclarations(decls, types, diags)
	logDebug(log, "module scope populated", "functions", len(ms.Functions), "variables", len(ms.Variables))

	scopes := scope.NewStore()
	validator.ValidateFunctions(ms, scopes, diags)
	logDebug(log, "function bodies validated", "errors", diags.Count())

	m := &Module{
		source: source,
		unit:   unit,
		types:  types,
		scope:  ms,
		scopes: scopes,
		idents: identOccurrences(source),
		diags:  diags,
		log:    log,
	}
	return m, diags
}

// FromSourceWithOptions is FromSourceWithLogger with opts applied to the
// returned diagnostics afterwards: rules named in
// opts.DisabledDiagnostics are dropped and, if opts.StrictMode is set,
// any remaining Warning is escalated to Error. A nil opts behaves like
// FromSourceWithLogger (no filtering, no escalation). The early
// parse-error-abort path returns diags through the same Apply call, so
// a future parse diagnostic tagged with a Rule is filtered consistently
// with the rest of the pipeline.
func FromSourceWithOptions(source string, opts *config.Options, log *slog.Logger) (*Module, *diagnostic.List) {
	if opts != nil && opts.Verbose && log == nil {
		log = slog.Default()
	}

	m, diags := FromSourceWithLogger(source, log)

	var filter *diagnostic.Filter
	strict := false
	if opts != nil {
		filter = opts.Filter()
		strict = opts.StrictMode
	}
	diags.Apply(filter, strict)

	return m, diags
}

// Source returns the original source string the module was built from.
func (m *Module) Source() string { return m.source }

// Diagnostics returns every diagnostic accumulated across the pipeline.
func (m *Module) Diagnostics() *diagnostic.List { return m.diags }

// Declarations returns the top-level declarations in source order, for
// document-symbol listing.
func (m *Module) Declarations() []span.Spanned[ast.Declaration] { return m.unit.Declarations }

// Directives returns the module's enable/requires/diagnostic directives.
func (m *Module) Directives() []ast.Directive { return m.unit.Directives }

// TypeStore returns the module's populated type store, for go-to-
// definition and hover queries on type names.
func (m *Module) TypeStore() *typestore.Store { return m.types }

// ModuleScope returns the module's function and variable tables, for
// go-to-definition on function and variable names.
func (m *Module) ModuleScope() *modulescope.Scope { return m.scope }

// Scopes returns the scope tree built while validating function bodies.
func (m *Module) Scopes() *scope.Store { return m.scopes }

// IdentAtPosition returns the identifier token covering byteOffset, if
// any, for cursor-driven queries (hover, go-to-definition).
func (m *Module) IdentAtPosition(byteOffset int) (span.Spanned[string], bool) {
	for _, id := range m.idents {
		if id.Span.Contains(byteOffset) {
			logDebug(m.log, "ident_at_position", "offset", byteOffset, "result", id.Value)
			return id, true
		}
	}
	logDebug(m.log, "ident_at_position", "offset", byteOffset, "result", nil)
	return span.Spanned[string]{}, false
}

func logDebug(log *slog.Logger, msg string, args ...any) {
	if log != nil {
		log.Debug(msg, args...)
	}
}

// identOccurrences re-tokenizes source to collect every identifier
// token's text and span, independent of the AST (spec.md §4.7 step 7:
// "extract identifier occurrences from the token stream"). Lexer errors
// are discarded here: they were already collected and would have
// aborted the pipeline in FromSource if they mattered.
func identOccurrences(source string) []span.Spanned[string] {
	tmp := diagnostic.NewList()
	toks := lexer.New(source, tmp).Tokenize()

	idents := make([]span.Spanned[string], 0, len(toks))
	for _, tok := range toks {
		if tok.Kind == lexer.TokIdent {
			idents = append(idents, span.Of(tok.Value, tok.Span()))
		}
	}
	return idents
}
