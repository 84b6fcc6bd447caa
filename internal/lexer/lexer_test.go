package lexer

import (
	"testing"

	"github.com/unfinishedprogram/wgsl-analyzer/internal/diagnostic"
)

// ----------------------------------------------------------------------------
// Test Helpers (esbuild-style)
// ----------------------------------------------------------------------------

func expectToken(t *testing.T, input string, expected TokenKind) {
	t.Helper()
	l := New(input, nil)
	tok := l.Next()
	if tok.Kind != expected {
		t.Errorf("input %q: expected %v, got %v", input, expected, tok.Kind)
	}
}

func expectTokenValue(t *testing.T, input string, expectedKind TokenKind, expectedValue string) {
	t.Helper()
	l := New(input, nil)
	tok := l.Next()
	if tok.Kind != expectedKind {
		t.Errorf("input %q: expected kind %v, got %v", input, expectedKind, tok.Kind)
	}
	if tok.Value != expectedValue {
		t.Errorf("input %q: expected value %q, got %q", input, expectedValue, tok.Value)
	}
}

func expectTokens(t *testing.T, input string, expected []TokenKind) {
	t.Helper()
	l := New(input, nil)
	for i, exp := range expected {
		tok := l.Next()
		if tok.Kind != exp {
			t.Errorf("input %q token %d: expected %v, got %v", input, i, exp, tok.Kind)
		}
	}
}

func expectError(t *testing.T, input string) {
	t.Helper()
	diags := diagnostic.NewList()
	l := New(input, diags)
	tok := l.Next()
	if tok.Kind != TokError {
		t.Errorf("input %q: expected error, got %v", input, tok.Kind)
	}
	if diags.Count() == 0 {
		t.Errorf("input %q: expected a diagnostic to be recorded", input)
	}
}

// ----------------------------------------------------------------------------
// Keyword Tests
// ----------------------------------------------------------------------------

func TestKeywords(t *testing.T) {
	cases := []struct {
		input string
		kind  TokenKind
	}{
		{"alias", TokAlias},
		{"break", TokBreak},
		{"case", TokCase},
		{"const", TokConst},
		{"const_assert", TokConstAssert},
		{"continue", TokContinue},
		{"continuing", TokContinuing},
		{"default", TokDefault},
		{"diagnostic", TokDiagnostic},
		{"discard", TokDiscard},
		{"else", TokElse},
		{"enable", TokEnable},
		{"fn", TokFn},
		{"for", TokFor},
		{"if", TokIf},
		{"let", TokLet},
		{"loop", TokLoop},
		{"override", TokOverride},
		{"requires", TokRequires},
		{"return", TokReturn},
		{"struct", TokStruct},
		{"switch", TokSwitch},
		{"var", TokVar},
		{"while", TokWhile},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectToken(t, tc.input, tc.kind)
		})
	}
}

func TestBooleanLiterals(t *testing.T) {
	expectToken(t, "true", TokTrue)
	expectToken(t, "false", TokFalse)
}

// ----------------------------------------------------------------------------
// Identifier Tests
// ----------------------------------------------------------------------------

func TestIdentifiers(t *testing.T) {
	cases := []struct {
		input string
		value string
	}{
		{"foo", "foo"},
		{"_bar", "_bar"},
		{"camelCase", "camelCase"},
		{"snake_case", "snake_case"},
		{"UPPER_CASE", "UPPER_CASE"},
		{"a1", "a1"},
		{"vec3f", "vec3f"},
		{"mat4x4f", "mat4x4f"},
		{"i32", "i32"},
		{"Position", "Position"},
		{"_x", "_x"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectTokenValue(t, tc.input, TokIdent, tc.value)
		})
	}
}

func TestUnicodeIdentifiers(t *testing.T) {
	cases := []struct {
		input string
		value string
	}{
		{"α", "α"},
		{"αβγ", "αβγ"},
		{"日本語", "日本語"},
		{"_über", "_über"},
		{"Δέλτα", "Δέλτα"},
		{"검정", "검정"},
		{"गुलाबी", "गुलाबी"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectTokenValue(t, tc.input, TokIdent, tc.value)
		})
	}
}

func TestInvalidIdentifiers(t *testing.T) {
	// A lone underscore is not a valid identifier.
	expectError(t, "_")
	// Double underscore prefix is invalid.
	expectError(t, "__reserved")
	expectError(t, "__foo")
}

func TestReservedWords(t *testing.T) {
	reserved := []string{
		"NULL", "Self", "abstract", "async", "await",
		"class", "enum", "import", "interface", "module",
		"namespace", "new", "null", "public",
		"static", "super", "this", "throw", "try",
		"typeof", "yield",
	}

	for _, word := range reserved {
		t.Run(word, func(t *testing.T) {
			expectError(t, word)
		})
	}
}

// ----------------------------------------------------------------------------
// Numeric Literal Tests
// ----------------------------------------------------------------------------

func TestDecimalIntegers(t *testing.T) {
	cases := []struct {
		input string
		value string
	}{
		{"0", "0"},
		{"1", "1"},
		{"42", "42"},
		{"123456789", "123456789"},
		{"0i", "0i"},
		{"42i", "42i"},
		{"0u", "0u"},
		{"42u", "42u"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectTokenValue(t, tc.input, TokIntLiteral, tc.value)
		})
	}
}

func TestHexIntegers(t *testing.T) {
	cases := []struct {
		input string
		value string
	}{
		{"0x0", "0x0"},
		{"0x1", "0x1"},
		{"0xABCDEF", "0xABCDEF"},
		{"0xabcdef", "0xabcdef"},
		{"0X1234", "0X1234"},
		{"0xFFi", "0xFFi"},
		{"0xFFu", "0xFFu"},
		{"0x3f", "0x3f"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectTokenValue(t, tc.input, TokIntLiteral, tc.value)
		})
	}
}

func TestDecimalFloats(t *testing.T) {
	cases := []struct {
		input string
		value string
	}{
		{"0.0", "0.0"},
		{"1.0", "1.0"},
		{"3.14159", "3.14159"},
		{".5", ".5"},
		{"0.", "0."},
		{"1e10", "1e10"},
		{"1E10", "1E10"},
		{"1e+10", "1e+10"},
		{"1e-3", "1e-3"},
		{"1.5e10", "1.5e10"},
		{"0.5f", "0.5f"},
		{"0.5h", "0.5h"},
		{"1.0f", "1.0f"},
		{"1f", "1f"},
		{"1.f", "1.f"},
		{"2.h", "2.h"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectTokenValue(t, tc.input, TokFloatLiteral, tc.value)
		})
	}
}

func TestHexFloats(t *testing.T) {
	cases := []struct {
		input string
		value string
	}{
		{"0x1p0", "0x1p0"},
		{"0x1.0p0", "0x1.0p0"},
		{"0x1P10", "0x1P10"},
		{"0x1.ABCp+10", "0x1.ABCp+10"},
		{"0x1.0p-10", "0x1.0p-10"},
		{"0x1p0f", "0x1p0f"},
		{"0x1p0h", "0x1p0h"},
		{"0xa.fp+2", "0xa.fp+2"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectTokenValue(t, tc.input, TokFloatLiteral, tc.value)
		})
	}
}

// ----------------------------------------------------------------------------
// Operator Tests
// ----------------------------------------------------------------------------

func TestSingleCharOperators(t *testing.T) {
	cases := []struct {
		input string
		kind  TokenKind
	}{
		{"+", TokPlus}, {"-", TokMinus}, {"*", TokStar}, {"/", TokSlash},
		{"%", TokPercent}, {"&", TokAmp}, {"|", TokPipe}, {"^", TokCaret},
		{"~", TokTilde}, {"!", TokBang}, {"<", TokLt}, {">", TokGt},
		{"=", TokEq}, {".", TokDot}, {"@", TokAt},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectToken(t, tc.input, tc.kind)
		})
	}
}

func TestMultiCharOperators(t *testing.T) {
	cases := []struct {
		input string
		kind  TokenKind
	}{
		{"++", TokPlusPlus}, {"--", TokMinusMinus}, {"&&", TokAmpAmp},
		{"||", TokPipePipe}, {"<<", TokLtLt}, {">>", TokGtGt},
		{"<=", TokLtEq}, {">=", TokGtEq}, {"==", TokEqEq}, {"!=", TokBangEq},
		{"->", TokArrow},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectToken(t, tc.input, tc.kind)
		})
	}
}

func TestAssignmentOperators(t *testing.T) {
	cases := []struct {
		input string
		kind  TokenKind
	}{
		{"+=", TokPlusEq}, {"-=", TokMinusEq}, {"*=", TokStarEq},
		{"/=", TokSlashEq}, {"%=", TokPercentEq}, {"&=", TokAmpEq},
		{"|=", TokPipeEq}, {"^=", TokCaretEq}, {"<<=", TokLtLtEq},
		{">>=", TokGtGtEq},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectToken(t, tc.input, tc.kind)
		})
	}
}

func TestDelimiters(t *testing.T) {
	cases := []struct {
		input string
		kind  TokenKind
	}{
		{"(", TokLParen}, {")", TokRParen}, {"{", TokLBrace}, {"}", TokRBrace},
		{"[", TokLBracket}, {"]", TokRBracket}, {";", TokSemicolon},
		{":", TokColon}, {",", TokComma},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectToken(t, tc.input, tc.kind)
		})
	}
}

// ----------------------------------------------------------------------------
// Comment Tests
// ----------------------------------------------------------------------------

func TestLineComments(t *testing.T) {
	expectToken(t, "// comment\nfoo", TokIdent)
	expectTokenValue(t, "// comment\nbar", TokIdent, "bar")

	l := New("foo // comment", nil)
	tok := l.Next()
	if tok.Kind != TokIdent || tok.Value != "foo" {
		t.Errorf("expected identifier 'foo', got %v %q", tok.Kind, tok.Value)
	}
	tok = l.Next()
	if tok.Kind != TokEOF {
		t.Errorf("expected EOF after comment, got %v", tok.Kind)
	}
}

func TestBlockComments(t *testing.T) {
	expectToken(t, "/* comment */ foo", TokIdent)
	expectTokenValue(t, "/* comment */ bar", TokIdent, "bar")
	expectTokenValue(t, "/* line1\nline2\nline3 */ baz", TokIdent, "baz")
}

// Block comments are non-nested: the first "*/" closes the comment, so
// "still outer" and the trailing "*/" become ordinary tokens.
func TestBlockCommentsAreNotNested(t *testing.T) {
	l := New("/* outer /* inner */ still outer */ foo", nil)
	first := l.Next()
	if first.Kind != TokIdent || first.Value != "still" {
		t.Errorf("expected 'still' right after the first closing */, got %v %q", first.Kind, first.Value)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	diags := diagnostic.NewList()
	l := New("/* never closed", diags)
	tok := l.Next()
	if tok.Kind != TokEOF {
		t.Errorf("expected EOF after consuming the rest of input, got %v", tok.Kind)
	}
	if diags.Count() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", diags.Count())
	}
}

// ----------------------------------------------------------------------------
// Whitespace Tests
// ----------------------------------------------------------------------------

func TestWhitespace(t *testing.T) {
	expectTokenValue(t, "  \t\n\r  foo", TokIdent, "foo")
	expectTokenValue(t, "\n\n\nbar", TokIdent, "bar")
}

// ----------------------------------------------------------------------------
// Token Sequence Tests
// ----------------------------------------------------------------------------

func TestTokenSequence(t *testing.T) {
	input := "fn main() -> vec4f { return vec4f(1.0); }"
	expected := []TokenKind{
		TokFn, TokIdent, TokLParen, TokRParen, TokArrow, TokIdent,
		TokLBrace, TokReturn, TokIdent, TokLParen, TokFloatLiteral,
		TokRParen, TokSemicolon, TokRBrace, TokEOF,
	}

	expectTokens(t, input, expected)
}

func TestStructDeclaration(t *testing.T) {
	input := `struct VertexOutput {
		@builtin(position) pos: vec4f,
		@location(0) color: vec3f,
	}`
	expected := []TokenKind{
		TokStruct, TokIdent, TokLBrace,
		TokAt, TokIdent, TokLParen, TokIdent, TokRParen,
		TokIdent, TokColon, TokIdent, TokComma,
		TokAt, TokIdent, TokLParen, TokIntLiteral, TokRParen,
		TokIdent, TokColon, TokIdent, TokComma,
		TokRBrace, TokEOF,
	}

	expectTokens(t, input, expected)
}

func TestVarDeclaration(t *testing.T) {
	input := `@group(0) @binding(1) var<uniform> uniforms: Uniforms;`
	expected := []TokenKind{
		TokAt, TokIdent, TokLParen, TokIntLiteral, TokRParen,
		TokAt, TokIdent, TokLParen, TokIntLiteral, TokRParen,
		TokVar, TokLt, TokIdent, TokGt,
		TokIdent, TokColon, TokIdent, TokSemicolon, TokEOF,
	}

	expectTokens(t, input, expected)
}

// ----------------------------------------------------------------------------
// Edge Cases
// ----------------------------------------------------------------------------

func TestEmptyInput(t *testing.T) {
	l := New("", nil)
	tok := l.Next()
	if tok.Kind != TokEOF {
		t.Errorf("expected EOF for empty input, got %v", tok.Kind)
	}
}

func TestOnlyWhitespace(t *testing.T) {
	l := New("   \t\n\r\n   ", nil)
	tok := l.Next()
	if tok.Kind != TokEOF {
		t.Errorf("expected EOF for whitespace-only input, got %v", tok.Kind)
	}
}

func TestOnlyComment(t *testing.T) {
	l := New("// just a comment", nil)
	tok := l.Next()
	if tok.Kind != TokEOF {
		t.Errorf("expected EOF for comment-only input, got %v", tok.Kind)
	}
}

func TestSwizzle(t *testing.T) {
	input := "pos.xyz"
	expected := []TokenKind{TokIdent, TokDot, TokIdent, TokEOF}
	expectTokens(t, input, expected)
}

func TestChainedMemberAccess(t *testing.T) {
	input := "a.b.c.d"
	expected := []TokenKind{
		TokIdent, TokDot, TokIdent, TokDot, TokIdent, TokDot, TokIdent, TokEOF,
	}
	expectTokens(t, input, expected)
}
