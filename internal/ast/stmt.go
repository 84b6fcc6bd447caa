package ast

import "github.com/unfinishedprogram/wgsl-analyzer/internal/span"

// Statement is the closed union of statement node kinds.
type Statement interface {
	Span() span.Span
	isStatement()
}

// CompoundStmt is a `{ ... }` block; entering one creates a child scope
// during function validation (internal/validator).
type CompoundStmt struct {
	StmtSpan   span.Span
	Attrs      []Attribute
	Statements []Statement
}

func (s *CompoundStmt) Span() span.Span { return s.StmtSpan }
func (*CompoundStmt) isStatement()      {}

// AssignOp is either plain `=` or a compound assignment carrying the
// binary operator it abbreviates (`+=` carries BinAdd, etc.).
type AssignOp struct {
	Compound bool
	Op       BinaryOp // meaningful only when Compound is true
}

// AssignStmt is `target = value` or `target += value` and friends.
type AssignStmt struct {
	StmtSpan span.Span
	Op       AssignOp
	Target   Expression
	Value    Expression
}

func (s *AssignStmt) Span() span.Span { return s.StmtSpan }
func (*AssignStmt) isStatement()      {}

// IncrDecrOp distinguishes `++` from `--`.
type IncrDecrOp uint8

const (
	Increment IncrDecrOp = iota
	Decrement
)

// IncrDecrStmt is `target++` or `target--`.
type IncrDecrStmt struct {
	StmtSpan span.Span
	Target   Expression
	Op       IncrDecrOp
}

func (s *IncrDecrStmt) Span() span.Span { return s.StmtSpan }
func (*IncrDecrStmt) isStatement()      {}

// ReturnStmt is `return;` or `return expr;`; Value is nil for the former.
type ReturnStmt struct {
	StmtSpan span.Span
	Value    Expression
}

func (s *ReturnStmt) Span() span.Span { return s.StmtSpan }
func (*ReturnStmt) isStatement()      {}

// ContinueStmt is `continue;`.
type ContinueStmt struct{ StmtSpan span.Span }

func (s *ContinueStmt) Span() span.Span { return s.StmtSpan }
func (*ContinueStmt) isStatement()      {}

// BreakStmt is `break;`.
type BreakStmt struct{ StmtSpan span.Span }

func (s *BreakStmt) Span() span.Span { return s.StmtSpan }
func (*BreakStmt) isStatement()      {}

// BreakIfStmt is `break if expr;`, legal only as the last statement of a
// `continuing` block.
type BreakIfStmt struct {
	StmtSpan  span.Span
	Condition Expression
}

func (s *BreakIfStmt) Span() span.Span { return s.StmtSpan }
func (*BreakIfStmt) isStatement()      {}

// ContinuingStmt is a loop's `continuing { ... }` trailer.
type ContinuingStmt struct {
	StmtSpan span.Span
	Body     *CompoundStmt
}

func (s *ContinuingStmt) Span() span.Span { return s.StmtSpan }
func (*ContinuingStmt) isStatement()      {}

// IfBranch is one `if`/`else if` arm: a condition and its body.
type IfBranch struct {
	Condition Expression
	Body      *CompoundStmt
}

// IfStmt models `if cond {} else if cond {} ... else {}` as a flat list
// of branches plus an optional trailing else, mirroring the grammar's
// own if_statement rule rather than nesting else-if as a nested if.
type IfStmt struct {
	StmtSpan span.Span
	Attrs    []Attribute
	Branches []IfBranch
	Else     *CompoundStmt
}

func (s *IfStmt) Span() span.Span { return s.StmtSpan }
func (*IfStmt) isStatement()      {}

// LoopStmt is `loop { ... }`; LoopAttrs apply to the loop statement
// itself, BodyAttrs to its compound-statement body — WGSL allows
// attributes at both positions.
type LoopStmt struct {
	StmtSpan  span.Span
	LoopAttrs []Attribute
	BodyAttrs []Attribute
	Body      *CompoundStmt
}

func (s *LoopStmt) Span() span.Span { return s.StmtSpan }
func (*LoopStmt) isStatement()      {}

// ForStmt is `for (init; cond; update) body`. Init and Update may each
// be nil (all three clauses are optional); when present, Init is a
// declaration, assignment, increment/decrement, or call statement, and
// likewise for Update.
type ForStmt struct {
	StmtSpan  span.Span
	Attrs     []Attribute
	Init      Statement
	Condition Expression
	Update    Statement
	Body      *CompoundStmt
}

func (s *ForStmt) Span() span.Span { return s.StmtSpan }
func (*ForStmt) isStatement()      {}

// WhileStmt is `while cond body`.
type WhileStmt struct {
	StmtSpan  span.Span
	Attrs     []Attribute
	Condition Expression
	Body      *CompoundStmt
}

func (s *WhileStmt) Span() span.Span { return s.StmtSpan }
func (*WhileStmt) isStatement()      {}

// SwitchCase is one `case a, b:` or `default:` arm. Selectors is empty
// and IsDefault is true for the default arm.
type SwitchCase struct {
	CaseSpan  span.Span
	Selectors []Expression
	IsDefault bool
	Body      *CompoundStmt
}

// SwitchStmt is `switch selector { case ... default: ... }`.
type SwitchStmt struct {
	StmtSpan span.Span
	Attrs    []Attribute
	Selector Expression
	Cases    []SwitchCase
}

func (s *SwitchStmt) Span() span.Span { return s.StmtSpan }
func (*SwitchStmt) isStatement()      {}

// CallStmt is a function call used as a statement (its result, if any,
// is discarded). Call is typed as the general Expression interface
// rather than *CallExpr so the parser can still produce a CallStmt as a
// recovery node when an expression statement turns out not to be a call
// (a diagnostic is recorded in that case).
type CallStmt struct {
	StmtSpan span.Span
	Call     Expression
}

func (s *CallStmt) Span() span.Span { return s.StmtSpan }
func (*CallStmt) isStatement()      {}

// DiscardStmt is `discard;`.
type DiscardStmt struct{ StmtSpan span.Span }

func (s *DiscardStmt) Span() span.Span { return s.StmtSpan }
func (*DiscardStmt) isStatement()      {}

// DeclStmt wraps a Declaration (var/let/const/alias/struct/fn/const_assert)
// appearing in statement position. Function validation is what rejects
// the declaration kinds that may only appear at module scope — the
// parser accepts any declaration here.
type DeclStmt struct {
	StmtSpan span.Span
	Decl     Declaration
}

func (s *DeclStmt) Span() span.Span { return s.StmtSpan }
func (*DeclStmt) isStatement()      {}
