// Package parser implements a predictive recursive-descent parser that
// turns a Nyx token stream into an AST, with panic-mode error recovery and
// a nested sub-parser for string interpolation.
package parser

import (
	"fmt"

	"github.com/nyxlang/nyx/internal/ast"
	nyxerrors "github.com/nyxlang/nyx/internal/errors"
	"github.com/nyxlang/nyx/internal/lexer"
	"github.com/nyxlang/nyx/internal/token"
)

const maxParams = 255

// Parser consumes a fixed token slice and produces an *ast.Program.
type Parser struct {
	tokens []token.Token
	pos    int
	errs   []*nyxerrors.ParserError
}

// New builds a Parser over an already-tokenized input.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseSource lexes and parses src in one step, returning any lexer errors
// alongside parser errors.
func ParseSource(src string) (*ast.Program, []lexer.Error, []*nyxerrors.ParserError) {
	toks, lexErrs := lexer.Tokenize(src)
	p := New(toks)
	prog := p.ParseProgram()
	return prog, lexErrs, p.errs
}

// Errors returns every parser error accumulated during ParseProgram.
func (p *Parser) Errors() []*nyxerrors.ParserError { return p.errs }

func (p *Parser) addError(line int, format string, args ...any) {
	p.errs = append(p.errs, &nyxerrors.ParserError{Message: fmt.Sprintf(format, args...), Line: line})
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) atEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) advance() token.Token {
	t := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *Parser) check(t token.Type) bool { return p.peek().Type == t }

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes the next token if it has the given type, otherwise
// records a parser error and returns the zero token.
func (p *Parser) expect(t token.Type, msg string) (token.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	p.addError(p.peek().Pos.Line, "%s (got %s)", msg, p.peek().Type.String())
	return token.Token{}, false
}

// synchronize implements panic-mode recovery: advance past the triggering
// token, then skip tokens until a statement-starter keyword, ';', or '}'.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.tokens[p.pos-1].Type == token.SEMI {
			return
		}
		if p.check(token.RBRACE) {
			return
		}
		if p.peek().Type.IsDeclStarter() {
			return
		}
		p.advance()
	}
}

// ParseProgram parses the full token stream into a Program, recovering from
// errors statement-by-statement so a script with multiple mistakes is
// reported in one pass.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.atEnd() {
		stmt := p.parseDeclarationRecovering()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

func (p *Parser) parseDeclarationRecovering() ast.Statement {
	before := len(p.errs)
	stmt := p.parseDeclaration()
	if len(p.errs) > before {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) parseDeclaration() ast.Statement {
	switch p.peek().Type {
	case token.FUNC:
		return p.parseFuncDecl()
	case token.IMPORT:
		return p.parseImportStmt()
	case token.AUTO:
		return p.parseVarDecl()
	default:
		return p.parseStatement()
	}
}

// parseFuncDecl implements: 'func' IDENT '(' params? ')' '=' block
func (p *Parser) parseFuncDecl() ast.Statement {
	tok := p.advance() // 'func'
	nameTok, ok := p.expect(token.IDENT, "expected function name")
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.LPAREN, "expected '(' after function name"); !ok {
		return nil
	}
	var params []ast.Parameter
	if !p.check(token.RPAREN) {
		for {
			pt, ok := p.expect(token.IDENT, "expected parameter name")
			if !ok {
				return nil
			}
			if len(params) >= maxParams {
				p.addError(pt.Pos.Line, "too many parameters (max %d)", maxParams)
				return nil
			}
			params = append(params, ast.Parameter{Token: pt, Name: pt.Literal})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, ok := p.expect(token.RPAREN, "expected ')' after parameters"); !ok {
		return nil
	}
	if _, ok := p.expect(token.ASSIGN, "expected '=' before function body"); !ok {
		return nil
	}
	if !p.check(token.LBRACE) {
		p.addError(p.peek().Pos.Line, "expected '{' to begin function body")
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.FuncDecl{Token: tok, Name: nameTok.Literal, Params: params, Body: body}
}

// parseImportStmt implements: 'import' STRING 'as' IDENT ';', with the
// `std:` native-module prefix recognized on the path (spec.md §4.7).
func (p *Parser) parseImportStmt() ast.Statement {
	tok := p.advance() // 'import'
	pathTok, ok := p.expect(token.STRING, "expected module path string after 'import'")
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.AS, "expected 'as' after import path"); !ok {
		return nil
	}
	aliasTok, ok := p.expect(token.IDENT, "expected alias identifier after 'as'")
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.SEMI, "expected ';' after import statement"); !ok {
		return nil
	}
	isStd := len(pathTok.Literal) >= 4 && pathTok.Literal[:4] == "std:"
	path := pathTok.Literal
	if isStd {
		path = pathTok.Literal[4:]
	}
	return &ast.Import{Token: tok, IsStd: isStd, Path: path, Alias: aliasTok.Literal, HasAlias: true}
}

// parseVarDecl implements: 'auto' IDENT '=' expression ';'
func (p *Parser) parseVarDecl() ast.Statement {
	tok := p.advance() // 'auto'
	nameTok, ok := p.expect(token.IDENT, "expected variable name after 'auto'")
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.ASSIGN, "expected '=' after variable name"); !ok {
		return nil
	}
	value := p.parseExpression()
	if _, ok := p.expect(token.SEMI, "expected ';' after variable declaration"); !ok {
		return nil
	}
	return &ast.VarDecl{Token: tok, Name: nameTok.Literal, Init: value}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.peek().Type {
	case token.IF:
		return p.parseIfStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.BREAK:
		tok := p.advance()
		p.expect(token.SEMI, "expected ';' after 'break'")
		return &ast.Break{Token: tok}
	case token.CONTINUE:
		tok := p.advance()
		p.expect(token.SEMI, "expected ';' after 'continue'")
		return &ast.Continue{Token: tok}
	case token.RETURN:
		return p.parseReturnStmt()
	case token.LBRACE:
		return p.parseBlock()
	case token.OUTPUT:
		return p.parseOutputStmt()
	case token.PUT:
		return p.parsePutStmt()
	case token.TYPEDEF:
		return p.parseTypedefStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseReturnStmt() ast.Statement {
	tok := p.advance()
	var value ast.Expression
	if !p.check(token.SEMI) {
		value = p.parseExpression()
	}
	p.expect(token.SEMI, "expected ';' after return statement")
	return &ast.Return{Token: tok, Value: value}
}

func (p *Parser) parseBlock() *ast.Block {
	tok, ok := p.expect(token.LBRACE, "expected '{'")
	if !ok {
		return nil
	}
	block := &ast.Block{Token: tok}
	for !p.check(token.RBRACE) && !p.atEnd() {
		stmt := p.parseDeclarationRecovering()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	p.expect(token.RBRACE, "expected '}' to close block")
	return block
}

// parseOutputStmt implements: 'output' '(' expression ')' ';'
func (p *Parser) parseOutputStmt() ast.Statement {
	tok := p.advance()
	if _, ok := p.expect(token.LPAREN, "expected '(' after 'output'"); !ok {
		return nil
	}
	arg := p.parseExpression()
	if _, ok := p.expect(token.RPAREN, "expected ')' after output argument"); !ok {
		return nil
	}
	p.expect(token.SEMI, "expected ';' after output statement")
	return &ast.Output{Token: tok, Arg: arg}
}

// parsePutStmt implements: 'put' '(' expression ')' ';'
func (p *Parser) parsePutStmt() ast.Statement {
	tok := p.advance()
	if _, ok := p.expect(token.LPAREN, "expected '(' after 'put'"); !ok {
		return nil
	}
	arg := p.parseExpression()
	if _, ok := p.expect(token.RPAREN, "expected ')' after put argument"); !ok {
		return nil
	}
	p.expect(token.SEMI, "expected ';' after put statement")
	return &ast.Put{Token: tok, Arg: arg}
}

// parseTypedefStmt implements: '@Typedef' '(' expression ')' ';'
func (p *Parser) parseTypedefStmt() ast.Statement {
	tok := p.advance()
	if _, ok := p.expect(token.LPAREN, "expected '(' after '@Typedef'"); !ok {
		return nil
	}
	arg := p.parseExpression()
	if _, ok := p.expect(token.RPAREN, "expected ')' after @Typedef argument"); !ok {
		return nil
	}
	p.expect(token.SEMI, "expected ';' after @Typedef statement")
	return &ast.Typedef{Token: tok, Arg: arg}
}

// parseIfStmt implements: 'if' '(' expression ')' statement ( 'else' statement )?
func (p *Parser) parseIfStmt() ast.Statement {
	tok := p.advance()
	if _, ok := p.expect(token.LPAREN, "expected '(' after 'if'"); !ok {
		return nil
	}
	cond := p.parseExpression()
	if _, ok := p.expect(token.RPAREN, "expected ')' after if condition"); !ok {
		return nil
	}
	then := p.parseStatement()
	var els ast.Statement
	if p.match(token.ELSE) {
		els = p.parseStatement()
	}
	return &ast.If{Token: tok, Condition: cond, Then: then, Else: els}
}

// parseForStmt implements:
// 'for' '(' (varDecl-no-;|exprStmt|;) expr? ';' expr? ')' statement
func (p *Parser) parseForStmt() ast.Statement {
	tok := p.advance()
	if _, ok := p.expect(token.LPAREN, "expected '(' after 'for'"); !ok {
		return nil
	}

	var init ast.Statement
	switch {
	case p.check(token.SEMI):
		p.advance()
	case p.check(token.AUTO):
		initTok := p.advance()
		nameTok, ok := p.expect(token.IDENT, "expected variable name after 'auto'")
		if !ok {
			return nil
		}
		if _, ok := p.expect(token.ASSIGN, "expected '=' after variable name"); !ok {
			return nil
		}
		value := p.parseExpression()
		p.expect(token.SEMI, "expected ';' after for-loop initializer")
		init = &ast.VarDecl{Token: initTok, Name: nameTok.Literal, Init: value}
	default:
		expr := p.parseExpression()
		exprTok := p.peek()
		p.expect(token.SEMI, "expected ';' after for-loop initializer")
		init = &ast.ExpressionStmt{Token: exprTok, Expr: expr}
	}

	var cond ast.Expression
	if !p.check(token.SEMI) {
		cond = p.parseExpression()
	}
	p.expect(token.SEMI, "expected ';' after for-loop condition")

	var incr ast.Expression
	if !p.check(token.RPAREN) {
		incr = p.parseExpression()
	}
	if _, ok := p.expect(token.RPAREN, "expected ')' after for-loop clauses"); !ok {
		return nil
	}

	body := p.parseStatement()
	return &ast.For{Token: tok, Init: init, Condition: cond, Increment: incr, Body: body}
}

func (p *Parser) parseExprStmt() ast.Statement {
	tok := p.peek()
	expr := p.parseExpression()
	p.expect(token.SEMI, "expected ';' after expression")
	return &ast.ExpressionStmt{Token: tok, Expr: expr}
}
