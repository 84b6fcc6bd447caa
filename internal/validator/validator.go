// Package validator implements function-body validation (spec.md §4.6):
// the third and final phase of module construction. For every
// user-defined function whose body is still Unprocessed, it creates a
// scope tree mirroring the function's nested compound statements and
// rejects declarations that may only appear at module scope.
//
// Grounded on the teacher's own internal/validator, trimmed from its
// original type-checking/uniformity/control-flow analysis (all out of
// CORE scope per spec.md §4.6's "Full expression/type checking is out
// of scope for the CORE") down to the placement check 4.6 actually
// asks for. See DESIGN.md.
package validator

import (
	"github.com/unfinishedprogram/wgsl-analyzer/internal/ast"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/diagnostic"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/modulescope"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/scope"
)

// ValidateFunctions runs phase three over every non-builtin function in
// ms, in source order, recording a scope tree in scopes. Functions are
// independent: a placement violation in one is reported, its body is
// still walked and marked Validated, and the others are unaffected.
func ValidateFunctions(ms *modulescope.Scope, scopes *scope.Store, diags *diagnostic.List) {
	for _, fn := range ms.UserFunctions() {
		validateFunction(fn, scopes, diags)
	}
}

func validateFunction(fn *modulescope.Function, scopes *scope.Store, diags *diagnostic.List) {
	if fn.Validated || fn.Body == nil {
		return
	}

	root := scopes.Child(scopes.Root())
	walkCompound(fn.Body, root, scopes, diags)
	// A misplaced-declaration diagnostic still leaves the body fully
	// walked and scoped: spec.md's own worked example (a nested `fn`
	// raising one diagnostic) validates the outer function regardless.
	fn.Validated = true
	fn.Scope = root
}

// walkCompound walks a block's statements directly in sc, the scope
// already created for this block (the caller creates one scope per
// compound statement; walkCompound does not create its own).
func walkCompound(body *ast.CompoundStmt, sc scope.Handle, scopes *scope.Store, diags *diagnostic.List) {
	for _, stmt := range body.Statements {
		walkStatement(stmt, sc, scopes, diags)
	}
}

func walkStatement(stmt ast.Statement, sc scope.Handle, scopes *scope.Store, diags *diagnostic.List) {
	switch s := stmt.(type) {
	case *ast.CompoundStmt:
		walkCompound(s, scopes.Child(sc), scopes, diags)

	case *ast.DeclStmt:
		walkDecl(s, diags)

	case *ast.IfStmt:
		for _, branch := range s.Branches {
			if branch.Body != nil {
				walkCompound(branch.Body, scopes.Child(sc), scopes, diags)
			}
		}
		if s.Else != nil {
			walkCompound(s.Else, scopes.Child(sc), scopes, diags)
		}

	case *ast.LoopStmt:
		if s.Body != nil {
			walkCompound(s.Body, scopes.Child(sc), scopes, diags)
		}

	case *ast.WhileStmt:
		if s.Body != nil {
			walkCompound(s.Body, scopes.Child(sc), scopes, diags)
		}

	case *ast.ForStmt:
		clause := scopes.Child(sc)
		if s.Init != nil {
			walkStatement(s.Init, clause, scopes, diags)
		}
		if s.Update != nil {
			walkStatement(s.Update, clause, scopes, diags)
		}
		if s.Body != nil {
			walkCompound(s.Body, scopes.Child(clause), scopes, diags)
		}

	case *ast.SwitchStmt:
		for _, c := range s.Cases {
			if c.Body != nil {
				walkCompound(c.Body, scopes.Child(sc), scopes, diags)
			}
		}

	case *ast.ContinuingStmt:
		if s.Body != nil {
			walkCompound(s.Body, scopes.Child(sc), scopes, diags)
		}

	default:
		// Assignment, increment/decrement, return, continue, break,
		// break-if, call, discard: no nested scope, no placement to
		// check. Expression/type checking is out of CORE scope.
	}
}

// walkDecl rejects the declaration kinds spec.md §4.6 reserves for
// module scope. var/let/const and const_assert all pass.
func walkDecl(stmt *ast.DeclStmt, diags *diagnostic.List) {
	switch stmt.Decl.(type) {
	case *ast.FunctionDecl:
		diags.Addf(stmt.StmtSpan, "function definitions can only appear at module scope").WithRule(diagnostic.RuleMisplacedDeclaration)
	case *ast.AliasDecl:
		diags.Addf(stmt.StmtSpan, "type alias definitions can only appear at module scope").WithRule(diagnostic.RuleMisplacedDeclaration)
	case *ast.StructDecl:
		diags.Addf(stmt.StmtSpan, "struct definitions can only appear at module scope").WithRule(diagnostic.RuleMisplacedDeclaration)
	}
}
