package parser

import (
	"testing"

	"github.com/unfinishedprogram/wgsl-analyzer/internal/ast"
)

// expectNoErrors parses input and fails the test if any diagnostic was
// recorded, returning the parsed translation unit for further checks.
func expectNoErrors(t *testing.T, input string) *ast.TranslationUnit {
	t.Helper()
	tu, diags := Parse(input)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %v", input, diags.Errors())
	}
	return tu
}

func singleFunction(t *testing.T, tu *ast.TranslationUnit) *ast.FunctionDecl {
	t.Helper()
	if len(tu.Declarations) != 1 {
		t.Fatalf("expected exactly one declaration, got %d", len(tu.Declarations))
	}
	fn, ok := tu.Declarations[0].Value.(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected a function declaration, got %T", tu.Declarations[0].Value)
	}
	return fn
}

func TestEmptyFunction(t *testing.T) {
	tu := expectNoErrors(t, "fn main() {}")
	fn := singleFunction(t, tu)
	if fn.Name.Value != "main" {
		t.Errorf("got name %q", fn.Name.Value)
	}
	if len(fn.Params) != 0 {
		t.Errorf("expected no params, got %d", len(fn.Params))
	}
}

func TestFunctionWithParamsAndReturnType(t *testing.T) {
	tu := expectNoErrors(t, "fn add(a: i32, b: i32) -> i32 { return a + b; }")
	fn := singleFunction(t, tu)
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[0].Name.Value != "a" || fn.Params[1].Name.Value != "b" {
		t.Errorf("unexpected param names: %v", fn.Params)
	}
	retType, ok := fn.ReturnType.(*ast.IdentExpr)
	if !ok || retType.Name != "i32" {
		t.Errorf("unexpected return type: %#v", fn.ReturnType)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body.Statements))
	}
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected a return statement, got %T", fn.Body.Statements[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.BinAdd {
		t.Errorf("expected a + binary expression, got %#v", ret.Value)
	}
}

func TestEntryPointAttribute(t *testing.T) {
	tu := expectNoErrors(t, `@vertex
fn vs_main() -> @builtin(position) vec4f {
  return vec4f(0.0, 0.0, 0.0, 1.0);
}`)
	fn := singleFunction(t, tu)
	if len(fn.Attrs) != 1 || fn.Attrs[0].Name != "vertex" {
		t.Errorf("expected a single @vertex attribute, got %#v", fn.Attrs)
	}
	if len(fn.ReturnAttrs) != 1 || fn.ReturnAttrs[0].Name != "builtin" {
		t.Errorf("expected a @builtin return attribute, got %#v", fn.ReturnAttrs)
	}
}

func TestTemplatedTypeConstructorCall(t *testing.T) {
	tu := expectNoErrors(t, `fn main() {
  var v = vec3<f32>(1.0, 2.0, 3.0);
}`)
	fn := singleFunction(t, tu)
	decl := fn.Body.Statements[0].(*ast.DeclStmt).Decl.(*ast.VarDecl)
	call, ok := decl.Initializer.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected a call expression, got %#v", decl.Initializer)
	}
	callee, ok := call.Callee.(*ast.IdentExpr)
	if !ok || callee.Name != "vec3" {
		t.Fatalf("expected callee vec3, got %#v", call.Callee)
	}
	if len(callee.TemplateArgs) != 1 {
		t.Fatalf("expected 1 template arg, got %d", len(callee.TemplateArgs))
	}
}

func TestGlobalVarWithAddressSpace(t *testing.T) {
	tu := expectNoErrors(t, "var<private> counter: i32 = 0;")
	decl := tu.Declarations[0].Value.(*ast.VarDecl)
	if decl.AddressSpace == nil || decl.AddressSpace.Value != "private" {
		t.Fatalf("expected address space 'private', got %#v", decl.AddressSpace)
	}
	if decl.Name.Value != "counter" {
		t.Errorf("got name %q", decl.Name.Value)
	}
}

func TestStructDecl(t *testing.T) {
	tu := expectNoErrors(t, `struct Particle {
  @location(0) position: vec3f,
  velocity: vec3f,
}`)
	s := tu.Declarations[0].Value.(*ast.StructDecl)
	if len(s.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(s.Members))
	}
	if s.Members[0].Name.Value != "position" || len(s.Members[0].Attrs) != 1 {
		t.Errorf("unexpected first member: %#v", s.Members[0])
	}
}

func TestIfElseIfElseFlattens(t *testing.T) {
	tu := expectNoErrors(t, `fn classify(x: i32) -> i32 {
  if x < 0 {
    return -1;
  } else if x == 0 {
    return 0;
  } else {
    return 1;
  }
}`)
	fn := singleFunction(t, tu)
	ifStmt := fn.Body.Statements[0].(*ast.IfStmt)
	if len(ifStmt.Branches) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(ifStmt.Branches))
	}
	if ifStmt.Else == nil {
		t.Fatalf("expected an else block")
	}
}

func TestForLoop(t *testing.T) {
	tu := expectNoErrors(t, `fn sum() -> i32 {
  var total = 0;
  for (var i = 0; i < 10; i++) {
    total += i;
  }
  return total;
}`)
	fn := singleFunction(t, tu)
	forStmt := fn.Body.Statements[1].(*ast.ForStmt)
	if forStmt.Init == nil || forStmt.Condition == nil || forStmt.Update == nil {
		t.Fatalf("expected all three for-loop clauses present")
	}
	if _, ok := forStmt.Update.(*ast.IncrDecrStmt); !ok {
		t.Errorf("expected update clause to be an increment, got %#v", forStmt.Update)
	}
}

func TestSwitchStatement(t *testing.T) {
	tu := expectNoErrors(t, `fn pick(x: i32) -> i32 {
  switch x {
    case 0, 1: {
      return 10;
    }
    default: {
      return 20;
    }
  }
  return 0;
}`)
	fn := singleFunction(t, tu)
	sw := fn.Body.Statements[0].(*ast.SwitchStmt)
	if len(sw.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(sw.Cases))
	}
	if len(sw.Cases[0].Selectors) != 2 {
		t.Errorf("expected 2 selectors on first case, got %d", len(sw.Cases[0].Selectors))
	}
	if !sw.Cases[1].IsDefault {
		t.Errorf("expected second case to be default")
	}
}

func TestLoopWithContinuingAndBreakIf(t *testing.T) {
	tu := expectNoErrors(t, `fn main() {
  var i = 0;
  loop {
    i = i + 1;
    continuing {
      break if i >= 10;
    }
  }
}`)
	fn := singleFunction(t, tu)
	loopStmt := fn.Body.Statements[1].(*ast.LoopStmt)
	continuing, ok := loopStmt.Body.Statements[1].(*ast.ContinuingStmt)
	if !ok {
		t.Fatalf("expected a continuing statement, got %#v", loopStmt.Body.Statements[1])
	}
	if _, ok := continuing.Body.Statements[0].(*ast.BreakIfStmt); !ok {
		t.Errorf("expected a break-if statement inside continuing, got %#v", continuing.Body.Statements[0])
	}
}

func TestSwizzleAndIndexChain(t *testing.T) {
	tu := expectNoErrors(t, `fn main() {
  var x = a.xyz[0];
}`)
	fn := singleFunction(t, tu)
	decl := fn.Body.Statements[0].(*ast.DeclStmt).Decl.(*ast.VarDecl)
	singular, ok := decl.Initializer.(*ast.SingularExpr)
	if !ok {
		t.Fatalf("expected a singular expression, got %#v", decl.Initializer)
	}
	if len(singular.Chain) != 2 {
		t.Fatalf("expected a 2-link chain, got %d", len(singular.Chain))
	}
	if _, ok := singular.Chain[0].(ast.MemberAccess); !ok {
		t.Errorf("expected first link to be a member access, got %#v", singular.Chain[0])
	}
	if _, ok := singular.Chain[1].(ast.IndexAccess); !ok {
		t.Errorf("expected second link to be an index access, got %#v", singular.Chain[1])
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tu := expectNoErrors(t, "fn main() { var x = 1 + 2 * 3; }")
	fn := singleFunction(t, tu)
	decl := fn.Body.Statements[0].(*ast.DeclStmt).Decl.(*ast.VarDecl)
	add, ok := decl.Initializer.(*ast.BinaryExpr)
	if !ok || add.Op != ast.BinAdd {
		t.Fatalf("expected a top-level '+', got %#v", decl.Initializer)
	}
	if _, ok := add.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("expected '2 * 3' to bind tighter than '+', got %#v", add.Right)
	}
}

func TestMixingAndOrWithoutParensIsDiagnosed(t *testing.T) {
	_, diags := Parse("fn main() { var x = a && b || c; }")
	if !diags.HasErrors() {
		t.Fatalf("expected a diagnostic for mixing && and || without parentheses")
	}
}

func TestChainedComparisonIsDiagnosed(t *testing.T) {
	_, diags := Parse("fn main() { var x = a < b < c; }")
	if !diags.HasErrors() {
		t.Fatalf("expected a diagnostic for chained comparison operators")
	}
}

func TestAssignmentToNonLHSIsDiagnosed(t *testing.T) {
	_, diags := Parse("fn main() { foo() = 1; }")
	if !diags.HasErrors() {
		t.Fatalf("expected a diagnostic for assigning to a non-LHS expression")
	}
}

func TestExpressionStatementMustBeCall(t *testing.T) {
	_, diags := Parse("fn main() { a + b; }")
	if !diags.HasErrors() {
		t.Fatalf("expected a diagnostic for a non-call expression statement")
	}
}

func TestEnableAndRequiresDirectives(t *testing.T) {
	tu := expectNoErrors(t, `enable f16;
requires readonly_and_readwrite_storage_textures;
fn main() {}`)
	if len(tu.Directives) != 2 {
		t.Fatalf("expected 2 directives, got %d", len(tu.Directives))
	}
	if _, ok := tu.Directives[0].(ast.EnableDirective); !ok {
		t.Errorf("expected first directive to be enable, got %#v", tu.Directives[0])
	}
	if _, ok := tu.Directives[1].(ast.RequiresDirective); !ok {
		t.Errorf("expected second directive to be requires, got %#v", tu.Directives[1])
	}
}

func TestDiagnosticDirective(t *testing.T) {
	tu := expectNoErrors(t, `diagnostic(off, derivative_uniformity);
fn main() {}`)
	d, ok := tu.Directives[0].(ast.DiagnosticDirective)
	if !ok {
		t.Fatalf("expected a diagnostic directive, got %#v", tu.Directives[0])
	}
	if d.Severity != "off" || d.Rule != "derivative_uniformity" {
		t.Errorf("unexpected directive contents: %#v", d)
	}
}

func TestConstAssertDecl(t *testing.T) {
	tu := expectNoErrors(t, "const_assert 1 + 1 == 2;")
	if _, ok := tu.Declarations[0].Value.(*ast.ConstAssertDecl); !ok {
		t.Fatalf("expected a const_assert declaration, got %#v", tu.Declarations[0].Value)
	}
}

func TestAliasDecl(t *testing.T) {
	tu := expectNoErrors(t, "alias Vec = vec3<f32>;")
	a := tu.Declarations[0].Value.(*ast.AliasDecl)
	if a.Name.Value != "Vec" {
		t.Errorf("got name %q", a.Name.Value)
	}
}

func TestMalformedDeclarationRecovers(t *testing.T) {
	tu, diags := Parse(`123;
fn main() {}`)
	if !diags.HasErrors() {
		t.Fatalf("expected a diagnostic for the malformed top-level token")
	}
	found := false
	for _, d := range tu.Declarations {
		if fn, ok := d.Value.(*ast.FunctionDecl); ok && fn.Name.Value == "main" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the parser to recover and still parse fn main(), got %#v", tu.Declarations)
	}
}
