// Package parser implements a precedence-climbing parser that turns a
// disambiguated token stream into a spanned AST (internal/ast). It never
// aborts: on a malformed construct it records a diagnostic and resumes
// scanning, so callers always get a (possibly partial) AST back.
package parser

import (
	"github.com/unfinishedprogram/wgsl-analyzer/internal/ast"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/diagnostic"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/lexer"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/span"
	"github.com/unfinishedprogram/wgsl-analyzer/internal/template"
)

// Parse tokenizes, disambiguates templates, and parses source, returning
// the resulting translation unit and every diagnostic recorded along
// the way (lexical and syntactic alike).
func Parse(source string) (*ast.TranslationUnit, *diagnostic.List) {
	diags := diagnostic.NewList()

	lex := lexer.New(source, diags)
	tokens := lex.Tokenize()

	starts, ends := template.Discover(source)
	tokens = template.Rewrite(tokens, starts, ends)

	p := &Parser{tokens: tokens, diags: diags}
	tu := p.parseTranslationUnit()
	return tu, diags
}

// Parser holds the mutable state of a single parse.
type Parser struct {
	tokens []lexer.Token
	pos    int
	diags  *diagnostic.List
}

// ----------------------------------------------------------------------------
// Token stream helpers
// ----------------------------------------------------------------------------

func (p *Parser) current() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) atEOF() bool {
	return p.current().Kind == lexer.TokEOF
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.current().Kind == kind
}

// expect consumes the current token if it matches kind; otherwise it
// records a diagnostic at the offending token and consumes it anyway,
// so the parser always makes forward progress.
func (p *Parser) expect(kind lexer.TokenKind, message string) (lexer.Token, bool) {
	tok := p.current()
	if tok.Kind == kind {
		p.advance()
		return tok, true
	}
	p.diags.Addf(tok.Span(), "%s (found %s)", message, tok.Kind)
	if tok.Kind != lexer.TokEOF {
		p.advance()
	}
	return tok, false
}

func (p *Parser) expectSemicolon() span.Span {
	tok, _ := p.expect(lexer.TokSemicolon, "expected ';'")
	return tok.Span()
}

func isDeclarationStart(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokAt, lexer.TokVar, lexer.TokConst, lexer.TokLet,
		lexer.TokAlias, lexer.TokStruct, lexer.TokFn, lexer.TokConstAssert:
		return true
	default:
		return false
	}
}

// ----------------------------------------------------------------------------
// Translation unit / directives
// ----------------------------------------------------------------------------

func (p *Parser) parseTranslationUnit() *ast.TranslationUnit {
	directives := p.parseDirectives()

	var decls []span.Spanned[ast.Declaration]
	for !p.atEOF() {
		before := p.pos
		attrs := p.parseAttributes()

		if isDeclarationStart(p.current().Kind) || len(attrs) > 0 {
			decl := p.parseDeclarationWithAttrs(attrs)
			decls = append(decls, span.Spanned[ast.Declaration]{Value: decl, Span: decl.Span()})
		} else {
			tok := p.current()
			p.diags.Addf(tok.Span(), "expected a declaration, found %s", tok.Kind)
			p.recoverToDeclarationBoundary()
		}

		if p.pos == before {
			p.advance()
		}
	}

	return &ast.TranslationUnit{Directives: directives, Declarations: decls}
}

func (p *Parser) recoverToDeclarationBoundary() {
	for !p.atEOF() && !isDeclarationStart(p.current().Kind) {
		p.advance()
	}
}

func (p *Parser) parseDirectives() []ast.Directive {
	var directives []ast.Directive
	for {
		switch p.current().Kind {
		case lexer.TokEnable:
			start := p.advance()
			features := p.parseIdentList()
			semi := p.expectSemicolon()
			directives = append(directives, ast.EnableDirective{
				DirSpan:  span.Cover(start.Span(), semi),
				Features: features,
			})
		case lexer.TokRequires:
			start := p.advance()
			features := p.parseIdentList()
			semi := p.expectSemicolon()
			directives = append(directives, ast.RequiresDirective{
				DirSpan:  span.Cover(start.Span(), semi),
				Features: features,
			})
		case lexer.TokDiagnostic:
			start := p.advance()
			p.expect(lexer.TokLParen, "expected '('")
			sevTok, _ := p.expect(lexer.TokIdent, "expected a diagnostic severity")
			p.expect(lexer.TokComma, "expected ','")
			ruleTok, _ := p.expect(lexer.TokIdent, "expected a diagnostic rule name")
			p.expect(lexer.TokRParen, "expected ')'")
			semi := p.expectSemicolon()
			directives = append(directives, ast.DiagnosticDirective{
				DirSpan:  span.Cover(start.Span(), semi),
				Severity: sevTok.Value,
				Rule:     ruleTok.Value,
			})
		default:
			return directives
		}
	}
}

func (p *Parser) parseIdentList() []string {
	var names []string
	for {
		tok, _ := p.expect(lexer.TokIdent, "expected a name")
		names = append(names, tok.Value)
		if p.check(lexer.TokComma) {
			p.advance()
			continue
		}
		break
	}
	return names
}

// ----------------------------------------------------------------------------
// Attributes
// ----------------------------------------------------------------------------

func (p *Parser) parseAttributes() []ast.Attribute {
	var attrs []ast.Attribute
	for p.check(lexer.TokAt) {
		at := p.advance()
		nameTok, _ := p.expect(lexer.TokIdent, "expected an attribute name")
		end := nameTok.Span()

		var args []ast.Expression
		if p.check(lexer.TokLParen) {
			p.advance()
			if !p.check(lexer.TokRParen) {
				for {
					args = append(args, p.parseExpression())
					if len(args) > 3 {
						p.diags.Addf(at.Span(), "an attribute accepts at most three arguments")
					}
					if p.check(lexer.TokComma) {
						p.advance()
						if p.check(lexer.TokRParen) {
							break
						}
						continue
					}
					break
				}
			}
			rp, _ := p.expect(lexer.TokRParen, "expected ')'")
			end = rp.Span()
		}

		attrs = append(attrs, ast.Attribute{
			AttrSpan: span.Cover(at.Span(), end),
			Name:     nameTok.Value,
			Args:     args,
		})
	}
	return attrs
}

// ----------------------------------------------------------------------------
// Declarations
// ----------------------------------------------------------------------------

func (p *Parser) parseDeclarationWithAttrs(attrs []ast.Attribute) ast.Declaration {
	switch p.current().Kind {
	case lexer.TokVar:
		return p.parseVarDecl(attrs)
	case lexer.TokConst:
		return p.parseConstDecl()
	case lexer.TokLet:
		return p.parseLetDecl()
	case lexer.TokAlias:
		return p.parseAliasDecl()
	case lexer.TokStruct:
		return p.parseStructDecl()
	case lexer.TokFn:
		return p.parseFunctionDecl(attrs)
	case lexer.TokConstAssert:
		return p.parseConstAssertDecl()
	default:
		tok := p.advance()
		p.diags.Addf(tok.Span(), "expected a declaration")
		return &ast.ConstAssertDecl{
			DeclSpan: tok.Span(),
			Expr:     &ast.LiteralExpr{ExprSpan: tok.Span(), Kind: ast.LiteralBool, Text: "false"},
		}
	}
}

func (p *Parser) parseName() span.Spanned[string] {
	tok, _ := p.expect(lexer.TokIdent, "expected a name")
	return span.Spanned[string]{Value: tok.Value, Span: tok.Span()}
}

func (p *Parser) parseTypeExpr() ast.Expression {
	if !p.check(lexer.TokIdent) {
		tok := p.current()
		p.diags.Addf(tok.Span(), "expected a type")
		return &ast.IdentExpr{ExprSpan: tok.Span()}
	}
	return p.parseIdentMaybeTemplated()
}

func (p *Parser) parseVarDecl(attrs []ast.Attribute) ast.Declaration {
	start := p.advance() // 'var'

	var addressSpace, accessMode *span.Spanned[string]
	if p.check(lexer.TokTemplateArgsStart) {
		p.advance()
		as := p.parseName()
		addressSpace = &as
		if p.check(lexer.TokComma) {
			p.advance()
			am := p.parseName()
			accessMode = &am
		}
		p.expect(lexer.TokTemplateArgsEnd, "expected '>' to close the address-space template list")
	}

	name := p.parseName()

	var typ ast.Expression
	if p.check(lexer.TokColon) {
		p.advance()
		typ = p.parseTypeExpr()
	}

	var init ast.Expression
	if p.check(lexer.TokEq) {
		p.advance()
		init = p.parseExpression()
	}

	semi := p.expectSemicolon()
	return &ast.VarDecl{
		DeclSpan:     span.Cover(start.Span(), semi),
		Attrs:        attrs,
		AddressSpace: addressSpace,
		AccessMode:   accessMode,
		Name:         name,
		Type:         typ,
		Initializer:  init,
	}
}

func (p *Parser) parseConstDecl() ast.Declaration {
	start := p.advance() // 'const'
	name := p.parseName()

	var typ ast.Expression
	if p.check(lexer.TokColon) {
		p.advance()
		typ = p.parseTypeExpr()
	}

	p.expect(lexer.TokEq, "const requires an initializer")
	init := p.parseExpression()
	semi := p.expectSemicolon()

	return &ast.ConstDecl{
		DeclSpan:    span.Cover(start.Span(), semi),
		Name:        name,
		Type:        typ,
		Initializer: init,
	}
}

func (p *Parser) parseLetDecl() ast.Declaration {
	start := p.advance() // 'let'
	name := p.parseName()

	var typ ast.Expression
	if p.check(lexer.TokColon) {
		p.advance()
		typ = p.parseTypeExpr()
	}

	p.expect(lexer.TokEq, "let requires an initializer")
	init := p.parseExpression()
	semi := p.expectSemicolon()

	return &ast.LetDecl{
		DeclSpan:    span.Cover(start.Span(), semi),
		Name:        name,
		Type:        typ,
		Initializer: init,
	}
}

func (p *Parser) parseAliasDecl() ast.Declaration {
	start := p.advance() // 'alias'
	name := p.parseName()
	p.expect(lexer.TokEq, "expected '='")
	typ := p.parseTypeExpr()
	semi := p.expectSemicolon()

	return &ast.AliasDecl{DeclSpan: span.Cover(start.Span(), semi), Name: name, Type: typ}
}

func (p *Parser) parseStructDecl() ast.Declaration {
	start := p.advance() // 'struct'
	name := p.parseName()
	p.expect(lexer.TokLBrace, "expected '{'")

	var members []ast.StructMember
	for !p.check(lexer.TokRBrace) && !p.atEOF() {
		memberAttrs := p.parseAttributes()
		memberName := p.parseName()
		p.expect(lexer.TokColon, "expected ':'")
		memberType := p.parseTypeExpr()

		memberSpan := span.Cover(memberName.Span, memberType.Span())
		if len(memberAttrs) > 0 {
			memberSpan = span.Cover(memberAttrs[0].Span(), memberSpan)
		}

		members = append(members, ast.StructMember{
			MemberSpan: memberSpan,
			Attrs:      memberAttrs,
			Name:       memberName,
			Type:       memberType,
		})

		if p.check(lexer.TokComma) {
			p.advance()
			continue
		}
		break
	}

	rb, _ := p.expect(lexer.TokRBrace, "expected '}'")
	return &ast.StructDecl{DeclSpan: span.Cover(start.Span(), rb.Span()), Name: name, Members: members}
}

func (p *Parser) parseFunctionDecl(attrs []ast.Attribute) ast.Declaration {
	start := p.advance() // 'fn'
	name := p.parseName()
	p.expect(lexer.TokLParen, "expected '('")

	var params []ast.Parameter
	for !p.check(lexer.TokRParen) && !p.atEOF() {
		paramAttrs := p.parseAttributes()
		paramName := p.parseName()
		p.expect(lexer.TokColon, "expected ':'")
		paramType := p.parseTypeExpr()

		paramSpan := span.Cover(paramName.Span, paramType.Span())
		if len(paramAttrs) > 0 {
			paramSpan = span.Cover(paramAttrs[0].Span(), paramSpan)
		}

		params = append(params, ast.Parameter{
			ParamSpan: paramSpan,
			Attrs:     paramAttrs,
			Name:      paramName,
			Type:      paramType,
		})

		if p.check(lexer.TokComma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.TokRParen, "expected ')'")

	var returnAttrs []ast.Attribute
	var returnType ast.Expression
	if p.check(lexer.TokArrow) {
		p.advance()
		returnAttrs = p.parseAttributes()
		returnType = p.parseTypeExpr()
	}

	body := p.parseCompoundStmt(nil)

	return &ast.FunctionDecl{
		DeclSpan:    span.Cover(start.Span(), body.Span()),
		Attrs:       attrs,
		Name:        name,
		Params:      params,
		ReturnAttrs: returnAttrs,
		ReturnType:  returnType,
		Body:        body,
	}
}

func (p *Parser) parseConstAssertDecl() ast.Declaration {
	start := p.advance() // 'const_assert'
	expr := p.parseExpression()
	semi := p.expectSemicolon()
	return &ast.ConstAssertDecl{DeclSpan: span.Cover(start.Span(), semi), Expr: expr}
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

func (p *Parser) parseStatement() ast.Statement {
	attrs := p.parseAttributes()

	switch p.current().Kind {
	case lexer.TokLBrace:
		return p.parseCompoundStmt(attrs)
	case lexer.TokIf:
		return p.parseIfStmt(attrs)
	case lexer.TokSwitch:
		return p.parseSwitchStmt(attrs)
	case lexer.TokLoop:
		return p.parseLoopStmt(attrs)
	case lexer.TokFor:
		return p.parseForStmt(attrs)
	case lexer.TokWhile:
		return p.parseWhileStmt(attrs)
	case lexer.TokReturn:
		return p.parseReturnStmt()
	case lexer.TokBreak:
		return p.parseBreakOrBreakIf()
	case lexer.TokContinue:
		tok := p.advance()
		semi := p.expectSemicolon()
		return &ast.ContinueStmt{StmtSpan: span.Cover(tok.Span(), semi)}
	case lexer.TokContinuing:
		tok := p.advance()
		body := p.parseCompoundStmt(nil)
		return &ast.ContinuingStmt{StmtSpan: span.Cover(tok.Span(), body.Span()), Body: body}
	case lexer.TokDiscard:
		tok := p.advance()
		semi := p.expectSemicolon()
		return &ast.DiscardStmt{StmtSpan: span.Cover(tok.Span(), semi)}
	case lexer.TokVar, lexer.TokConst, lexer.TokLet, lexer.TokAlias,
		lexer.TokStruct, lexer.TokFn, lexer.TokConstAssert:
		decl := p.parseDeclarationWithAttrs(attrs)
		return &ast.DeclStmt{StmtSpan: decl.Span(), Decl: decl}
	case lexer.TokSemicolon:
		tok := p.advance()
		return &ast.CompoundStmt{StmtSpan: tok.Span()}
	default:
		return p.parseExpressionOrAssignment()
	}
}

func (p *Parser) parseCompoundStmt(attrs []ast.Attribute) *ast.CompoundStmt {
	lb, _ := p.expect(lexer.TokLBrace, "expected '{'")

	var stmts []ast.Statement
	for !p.check(lexer.TokRBrace) && !p.atEOF() {
		before := p.pos
		stmts = append(stmts, p.parseStatement())
		if p.pos == before {
			p.advance()
		}
	}

	rb, _ := p.expect(lexer.TokRBrace, "expected '}'")
	return &ast.CompoundStmt{StmtSpan: span.Cover(lb.Span(), rb.Span()), Attrs: attrs, Statements: stmts}
}

func (p *Parser) parseIfStmt(attrs []ast.Attribute) ast.Statement {
	start, _ := p.expect(lexer.TokIf, "expected 'if'")
	cond := p.parseExpression()
	body := p.parseCompoundStmt(nil)

	branches := []ast.IfBranch{{Condition: cond, Body: body}}
	var elseBlock *ast.CompoundStmt
	end := body.Span()

	for p.check(lexer.TokElse) {
		p.advance()
		if p.check(lexer.TokIf) {
			p.advance()
			cond2 := p.parseExpression()
			body2 := p.parseCompoundStmt(nil)
			branches = append(branches, ast.IfBranch{Condition: cond2, Body: body2})
			end = body2.Span()
			continue
		}
		elseBlock = p.parseCompoundStmt(nil)
		end = elseBlock.Span()
		break
	}

	return &ast.IfStmt{StmtSpan: span.Cover(start.Span(), end), Attrs: attrs, Branches: branches, Else: elseBlock}
}

func (p *Parser) parseSwitchStmt(attrs []ast.Attribute) ast.Statement {
	start, _ := p.expect(lexer.TokSwitch, "expected 'switch'")
	selector := p.parseExpression()
	p.expect(lexer.TokLBrace, "expected '{'")

	var cases []ast.SwitchCase
	for !p.check(lexer.TokRBrace) && !p.atEOF() {
		caseStart := p.current()
		switch caseStart.Kind {
		case lexer.TokCase:
			p.advance()
			var selectors []ast.Expression
			selectors = append(selectors, p.parseExpression())
			for p.check(lexer.TokComma) {
				p.advance()
				if p.check(lexer.TokColon) {
					break
				}
				selectors = append(selectors, p.parseExpression())
			}
			p.expect(lexer.TokColon, "expected ':'")
			body := p.parseCompoundStmt(nil)
			cases = append(cases, ast.SwitchCase{
				CaseSpan:  span.Cover(caseStart.Span(), body.Span()),
				Selectors: selectors,
				Body:      body,
			})
		case lexer.TokDefault:
			p.advance()
			p.expect(lexer.TokColon, "expected ':'")
			body := p.parseCompoundStmt(nil)
			cases = append(cases, ast.SwitchCase{
				CaseSpan:  span.Cover(caseStart.Span(), body.Span()),
				IsDefault: true,
				Body:      body,
			})
		default:
			p.diags.Addf(caseStart.Span(), "expected 'case' or 'default'")
			before := p.pos
			for !p.atEOF() && !p.check(lexer.TokCase) && !p.check(lexer.TokDefault) && !p.check(lexer.TokRBrace) {
				p.advance()
			}
			if p.pos == before {
				p.advance()
			}
		}
	}

	rb, _ := p.expect(lexer.TokRBrace, "expected '}'")
	return &ast.SwitchStmt{StmtSpan: span.Cover(start.Span(), rb.Span()), Attrs: attrs, Selector: selector, Cases: cases}
}

func (p *Parser) parseLoopStmt(attrs []ast.Attribute) ast.Statement {
	start, _ := p.expect(lexer.TokLoop, "expected 'loop'")
	bodyAttrs := p.parseAttributes()
	body := p.parseCompoundStmt(bodyAttrs)
	return &ast.LoopStmt{
		StmtSpan:  span.Cover(start.Span(), body.Span()),
		LoopAttrs: attrs,
		BodyAttrs: bodyAttrs,
		Body:      body,
	}
}

func (p *Parser) parseForStmt(attrs []ast.Attribute) ast.Statement {
	start, _ := p.expect(lexer.TokFor, "expected 'for'")
	p.expect(lexer.TokLParen, "expected '('")

	var init ast.Statement
	if !p.check(lexer.TokSemicolon) {
		init = p.parseForClauseStatement()
	}
	p.expect(lexer.TokSemicolon, "expected ';'")

	var cond ast.Expression
	if !p.check(lexer.TokSemicolon) {
		cond = p.parseExpression()
	}
	p.expect(lexer.TokSemicolon, "expected ';'")

	var update ast.Statement
	if !p.check(lexer.TokRParen) {
		update = p.parseForClauseStatement()
	}
	p.expect(lexer.TokRParen, "expected ')'")

	body := p.parseCompoundStmt(nil)
	return &ast.ForStmt{
		StmtSpan:  span.Cover(start.Span(), body.Span()),
		Attrs:     attrs,
		Init:      init,
		Condition: cond,
		Update:    update,
		Body:      body,
	}
}

// parseForClauseStatement parses the restricted set of statements legal
// in a for-loop's init/update position: a variable declaration,
// assignment, increment/decrement, or call. It never consumes a
// trailing ';' — the caller's for-loop grammar supplies that delimiter.
func (p *Parser) parseForClauseStatement() ast.Statement {
	switch p.current().Kind {
	case lexer.TokVar, lexer.TokLet, lexer.TokConst:
		decl := p.parseDeclarationWithAttrs(nil)
		// The declaration parsers consume their own ';'; step back so the
		// for-loop header sees it as the clause delimiter.
		if p.pos > 0 && p.tokens[p.pos-1].Kind == lexer.TokSemicolon {
			p.pos--
		}
		return &ast.DeclStmt{StmtSpan: decl.Span(), Decl: decl}
	default:
		return p.parseAssignmentLikeNoSemicolon()
	}
}

func (p *Parser) parseWhileStmt(attrs []ast.Attribute) ast.Statement {
	start, _ := p.expect(lexer.TokWhile, "expected 'while'")
	cond := p.parseExpression()
	body := p.parseCompoundStmt(nil)
	return &ast.WhileStmt{StmtSpan: span.Cover(start.Span(), body.Span()), Attrs: attrs, Condition: cond, Body: body}
}

func (p *Parser) parseReturnStmt() ast.Statement {
	start, _ := p.expect(lexer.TokReturn, "expected 'return'")
	var value ast.Expression
	if !p.check(lexer.TokSemicolon) {
		value = p.parseExpression()
	}
	semi := p.expectSemicolon()
	return &ast.ReturnStmt{StmtSpan: span.Cover(start.Span(), semi), Value: value}
}

func (p *Parser) parseBreakOrBreakIf() ast.Statement {
	start := p.advance() // 'break'
	if p.check(lexer.TokIf) {
		p.advance()
		cond := p.parseExpression()
		semi := p.expectSemicolon()
		return &ast.BreakIfStmt{StmtSpan: span.Cover(start.Span(), semi), Condition: cond}
	}
	semi := p.expectSemicolon()
	return &ast.BreakStmt{StmtSpan: span.Cover(start.Span(), semi)}
}

// ----------------------------------------------------------------------------
// Expression statements: assignment / increment-decrement / call
// ----------------------------------------------------------------------------

var compoundAssignOps = map[lexer.TokenKind]ast.BinaryOp{
	lexer.TokPlusEq:    ast.BinAdd,
	lexer.TokMinusEq:   ast.BinSub,
	lexer.TokStarEq:    ast.BinMul,
	lexer.TokSlashEq:   ast.BinDiv,
	lexer.TokPercentEq: ast.BinMod,
	lexer.TokAmpEq:     ast.BinBitAnd,
	lexer.TokPipeEq:    ast.BinBitOr,
	lexer.TokCaretEq:   ast.BinBitXor,
	lexer.TokLtLtEq:    ast.BinShl,
	lexer.TokGtGtEq:    ast.BinShr,
}

func (p *Parser) parseExpressionOrAssignment() ast.Statement {
	expr := p.parseExpression()

	if p.check(lexer.TokEq) {
		p.advance()
		value := p.parseExpression()
		semi := p.expectSemicolon()
		p.checkLHS(expr)
		return &ast.AssignStmt{StmtSpan: span.Cover(expr.Span(), semi), Op: ast.AssignOp{}, Target: expr, Value: value}
	}

	if op, ok := compoundAssignOps[p.current().Kind]; ok {
		p.advance()
		value := p.parseExpression()
		semi := p.expectSemicolon()
		p.checkLHS(expr)
		return &ast.AssignStmt{StmtSpan: span.Cover(expr.Span(), semi), Op: ast.AssignOp{Compound: true, Op: op}, Target: expr, Value: value}
	}

	if p.check(lexer.TokPlusPlus) || p.check(lexer.TokMinusMinus) {
		op := ast.Increment
		if p.check(lexer.TokMinusMinus) {
			op = ast.Decrement
		}
		p.advance()
		semi := p.expectSemicolon()
		p.checkLHS(expr)
		return &ast.IncrDecrStmt{StmtSpan: span.Cover(expr.Span(), semi), Target: expr, Op: op}
	}

	semi := p.expectSemicolon()
	if _, ok := expr.(*ast.CallExpr); !ok {
		p.diags.Addf(expr.Span(), "expression statement must be a function call")
	}
	return &ast.CallStmt{StmtSpan: span.Cover(expr.Span(), semi), Call: expr}
}

// parseAssignmentLikeNoSemicolon handles the same forms as
// parseExpressionOrAssignment but without consuming a trailing ';' —
// used for the init/update clauses of a for-loop, which are terminated
// by ';' or ')' instead.
func (p *Parser) parseAssignmentLikeNoSemicolon() ast.Statement {
	expr := p.parseExpression()

	if p.check(lexer.TokEq) {
		p.advance()
		value := p.parseExpression()
		p.checkLHS(expr)
		return &ast.AssignStmt{StmtSpan: span.Cover(expr.Span(), value.Span()), Op: ast.AssignOp{}, Target: expr, Value: value}
	}

	if op, ok := compoundAssignOps[p.current().Kind]; ok {
		p.advance()
		value := p.parseExpression()
		p.checkLHS(expr)
		return &ast.AssignStmt{StmtSpan: span.Cover(expr.Span(), value.Span()), Op: ast.AssignOp{Compound: true, Op: op}, Target: expr, Value: value}
	}

	if p.check(lexer.TokPlusPlus) || p.check(lexer.TokMinusMinus) {
		op := ast.Increment
		if p.check(lexer.TokMinusMinus) {
			op = ast.Decrement
		}
		end := p.advance()
		p.checkLHS(expr)
		return &ast.IncrDecrStmt{StmtSpan: span.Cover(expr.Span(), end.Span()), Target: expr, Op: op}
	}

	if call, ok := expr.(*ast.CallExpr); ok {
		return &ast.CallStmt{StmtSpan: call.Span(), Call: call}
	}
	p.diags.Addf(expr.Span(), "for-loop clause must be a declaration, assignment, increment/decrement, or call")
	return &ast.CallStmt{StmtSpan: expr.Span(), Call: expr}
}

func (p *Parser) checkLHS(expr ast.Expression) {
	if !ast.IsLHS(expr) {
		p.diags.Addf(expr.Span(), "left-hand side of assignment must be an identifier, dereference, or component access")
	}
}

// ----------------------------------------------------------------------------
// Expressions (precedence-climbing, low to high)
// ----------------------------------------------------------------------------

func (p *Parser) parseExpression() ast.Expression {
	return p.parseLogicalOrExpr()
}

func (p *Parser) parseLogicalOrExpr() ast.Expression {
	left, sawAnd := p.parseLogicalAndChain()
	for p.check(lexer.TokPipePipe) {
		if sawAnd {
			p.diags.Addf(p.current().Span(), "mixing '&&' and '||' without parentheses is not allowed")
		}
		p.advance()
		right, rightSawAnd := p.parseLogicalAndChain()
		left = &ast.BinaryExpr{ExprSpan: span.Cover(left.Span(), right.Span()), Op: ast.BinOrOr, Left: left, Right: right}
		sawAnd = sawAnd || rightSawAnd
	}
	return left
}

func (p *Parser) parseLogicalAndChain() (ast.Expression, bool) {
	left := p.parseRelationalExpr()
	sawAnd := false
	for p.check(lexer.TokAmpAmp) {
		sawAnd = true
		p.advance()
		right := p.parseRelationalExpr()
		left = &ast.BinaryExpr{ExprSpan: span.Cover(left.Span(), right.Span()), Op: ast.BinAndAnd, Left: left, Right: right}
	}
	return left, sawAnd
}

var relationalOps = map[lexer.TokenKind]ast.BinaryOp{
	lexer.TokEqEq:   ast.BinEq,
	lexer.TokBangEq: ast.BinNotEq,
	lexer.TokLt:     ast.BinLt,
	lexer.TokLtEq:   ast.BinLtEq,
	lexer.TokGt:     ast.BinGt,
	lexer.TokGtEq:   ast.BinGtEq,
}

func (p *Parser) parseRelationalExpr() ast.Expression {
	left := p.parseBitwiseExpr()
	if op, ok := relationalOps[p.current().Kind]; ok {
		p.advance()
		right := p.parseBitwiseExpr()
		left = &ast.BinaryExpr{ExprSpan: span.Cover(left.Span(), right.Span()), Op: op, Left: left, Right: right}
		if _, again := relationalOps[p.current().Kind]; again {
			p.diags.Addf(p.current().Span(), "comparison operators do not associate; use parentheses")
		}
	}
	return left
}

func (p *Parser) parseBitwiseExpr() ast.Expression {
	left := p.parseShiftExpr()
	switch p.current().Kind {
	case lexer.TokAmp:
		return p.parseBitwiseChain(left, lexer.TokAmp, ast.BinBitAnd)
	case lexer.TokPipe:
		return p.parseBitwiseChain(left, lexer.TokPipe, ast.BinBitOr)
	case lexer.TokCaret:
		return p.parseBitwiseChain(left, lexer.TokCaret, ast.BinBitXor)
	default:
		return left
	}
}

func (p *Parser) parseBitwiseChain(left ast.Expression, tok lexer.TokenKind, op ast.BinaryOp) ast.Expression {
	for p.check(tok) {
		p.advance()
		right := p.parseShiftExpr()
		left = &ast.BinaryExpr{ExprSpan: span.Cover(left.Span(), right.Span()), Op: op, Left: left, Right: right}
	}
	switch p.current().Kind {
	case lexer.TokAmp, lexer.TokPipe, lexer.TokCaret:
		p.diags.Addf(p.current().Span(), "mixing bitwise operators without parentheses is not allowed")
	}
	return left
}

func (p *Parser) parseShiftExpr() ast.Expression {
	left := p.parseAdditiveExpr()
	for p.check(lexer.TokLtLt) || p.check(lexer.TokGtGt) {
		op := ast.BinShl
		if p.check(lexer.TokGtGt) {
			op = ast.BinShr
		}
		p.advance()
		right := p.parseAdditiveExpr()
		left = &ast.BinaryExpr{ExprSpan: span.Cover(left.Span(), right.Span()), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditiveExpr() ast.Expression {
	left := p.parseMultiplicativeExpr()
	for p.check(lexer.TokPlus) || p.check(lexer.TokMinus) {
		op := ast.BinAdd
		if p.check(lexer.TokMinus) {
			op = ast.BinSub
		}
		p.advance()
		right := p.parseMultiplicativeExpr()
		left = &ast.BinaryExpr{ExprSpan: span.Cover(left.Span(), right.Span()), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicativeExpr() ast.Expression {
	left := p.parseUnaryExpr()
	for p.check(lexer.TokStar) || p.check(lexer.TokSlash) || p.check(lexer.TokPercent) {
		var op ast.BinaryOp
		switch p.current().Kind {
		case lexer.TokStar:
			op = ast.BinMul
		case lexer.TokSlash:
			op = ast.BinDiv
		default:
			op = ast.BinMod
		}
		p.advance()
		right := p.parseUnaryExpr()
		left = &ast.BinaryExpr{ExprSpan: span.Cover(left.Span(), right.Span()), Op: op, Left: left, Right: right}
	}
	return left
}

var unaryOps = map[lexer.TokenKind]ast.UnaryOp{
	lexer.TokBang:  ast.UnaryNot,
	lexer.TokMinus: ast.UnaryNeg,
	lexer.TokTilde: ast.UnaryBitNot,
	lexer.TokStar:  ast.UnaryDeref,
	lexer.TokAmp:   ast.UnaryAddrOf,
}

func (p *Parser) parseUnaryExpr() ast.Expression {
	if op, ok := unaryOps[p.current().Kind]; ok {
		tok := p.advance()
		operand := p.parseUnaryExpr()
		return &ast.UnaryExpr{ExprSpan: span.Cover(tok.Span(), operand.Span()), Op: op, Operand: operand}
	}
	return p.parsePostfixExpr()
}

func (p *Parser) parsePostfixExpr() ast.Expression {
	expr := p.parsePrimaryExpr()
	for {
		switch p.current().Kind {
		case lexer.TokLParen:
			expr = p.finishCall(expr)
		case lexer.TokDot, lexer.TokLBracket:
			expr = p.parseComponentChain(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	p.advance() // '('
	var args []ast.Expression
	if !p.check(lexer.TokRParen) {
		for {
			args = append(args, p.parseExpression())
			if p.check(lexer.TokComma) {
				p.advance()
				if p.check(lexer.TokRParen) {
					break
				}
				continue
			}
			break
		}
	}
	rp, _ := p.expect(lexer.TokRParen, "expected ')'")
	return &ast.CallExpr{ExprSpan: span.Cover(callee.Span(), rp.Span()), Callee: callee, Args: args}
}

func (p *Parser) parseComponentChain(base ast.Expression) ast.Expression {
	var chain []ast.ComponentOrSwizzle
loop:
	for {
		switch p.current().Kind {
		case lexer.TokDot:
			dot := p.advance()
			nameTok, _ := p.expect(lexer.TokIdent, "expected a member name after '.'")
			chain = append(chain, ast.MemberAccess{AccessSpan: span.Cover(dot.Span(), nameTok.Span()), Name: nameTok.Value})
		case lexer.TokLBracket:
			lb := p.advance()
			idx := p.parseExpression()
			rb, _ := p.expect(lexer.TokRBracket, "expected ']'")
			chain = append(chain, ast.IndexAccess{AccessSpan: span.Cover(lb.Span(), rb.Span()), Index: idx})
		default:
			break loop
		}
	}
	if len(chain) == 0 {
		return base
	}
	end := chain[len(chain)-1].Span()
	return &ast.SingularExpr{ExprSpan: span.Cover(base.Span(), end), Base: base, Chain: chain}
}

func (p *Parser) parsePrimaryExpr() ast.Expression {
	tok := p.current()
	switch tok.Kind {
	case lexer.TokIntLiteral:
		p.advance()
		return &ast.LiteralExpr{ExprSpan: tok.Span(), Kind: ast.LiteralInt, Text: tok.Value}
	case lexer.TokFloatLiteral:
		p.advance()
		return &ast.LiteralExpr{ExprSpan: tok.Span(), Kind: ast.LiteralFloat, Text: tok.Value}
	case lexer.TokTrue:
		p.advance()
		return &ast.LiteralExpr{ExprSpan: tok.Span(), Kind: ast.LiteralBool, Text: "true"}
	case lexer.TokFalse:
		p.advance()
		return &ast.LiteralExpr{ExprSpan: tok.Span(), Kind: ast.LiteralBool, Text: "false"}
	case lexer.TokIdent:
		return p.parseIdentMaybeTemplated()
	case lexer.TokLParen:
		lp := p.advance()
		inner := p.parseExpression()
		rp, _ := p.expect(lexer.TokRParen, "expected ')'")
		return &ast.ParenExpr{ExprSpan: span.Cover(lp.Span(), rp.Span()), Inner: inner}
	default:
		p.diags.Addf(tok.Span(), "expected an expression, found %s", tok.Kind)
		if tok.Kind != lexer.TokEOF {
			p.advance()
		}
		return &ast.LiteralExpr{ExprSpan: tok.Span(), Kind: ast.LiteralInt, Text: "0"}
	}
}

func (p *Parser) parseIdentMaybeTemplated() ast.Expression {
	tok := p.advance()
	ident := &ast.IdentExpr{ExprSpan: tok.Span(), Name: tok.Value}

	if p.check(lexer.TokTemplateArgsStart) {
		p.advance()
		var args []ast.Expression
		if !p.check(lexer.TokTemplateArgsEnd) {
			for {
				args = append(args, p.parseExpression())
				if p.check(lexer.TokComma) {
					p.advance()
					if p.check(lexer.TokTemplateArgsEnd) {
						break
					}
					continue
				}
				break
			}
		}
		end, _ := p.expect(lexer.TokTemplateArgsEnd, "expected '>' to close the template argument list")
		ident.TemplateArgs = args
		ident.ExprSpan = span.Cover(tok.Span(), end.Span())
	}

	return ident
}
