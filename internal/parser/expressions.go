package parser

import (
	"strconv"

	"github.com/nyxlang/nyx/internal/ast"
	"github.com/nyxlang/nyx/internal/lexer"
	"github.com/nyxlang/nyx/internal/token"
)

const maxArgs = 255

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

// parseAssignment implements: assignment := lor ( '=' assignment )?
func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseLogicOr()
	if p.check(token.ASSIGN) {
		eqTok := p.advance()
		value := p.parseAssignment()
		switch left.(type) {
		case *ast.Identifier, *ast.Subscript, *ast.MemberAccess:
			return &ast.Assignment{Token: eqTok, Target: left, Value: value}
		default:
			p.addError(eqTok.Pos.Line, "invalid assignment target")
			return left
		}
	}
	return left
}

// parseLogicOr implements: lor := land ( 'or' land )*
func (p *Parser) parseLogicOr() ast.Expression {
	left := p.parseLogicAnd()
	for p.check(token.OR) {
		opTok := p.advance()
		right := p.parseLogicAnd()
		left = &ast.Binary{Token: opTok, Left: left, Operator: "or", Right: right}
	}
	return left
}

// parseLogicAnd implements: land := equality ( 'and' equality )*
func (p *Parser) parseLogicAnd() ast.Expression {
	left := p.parseEquality()
	for p.check(token.AND) {
		opTok := p.advance()
		right := p.parseEquality()
		left = &ast.Binary{Token: opTok, Left: left, Operator: "and", Right: right}
	}
	return left
}

// parseEquality implements: equality := comparison ( ('=='|'!=') comparison )*
func (p *Parser) parseEquality() ast.Expression {
	left := p.parseComparison()
	for p.check(token.EQ) || p.check(token.NEQ) {
		opTok := p.advance()
		right := p.parseComparison()
		left = &ast.Binary{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

// parseComparison implements: comparison := term ( ('<'|'<='|'>'|'>=') term )*
func (p *Parser) parseComparison() ast.Expression {
	left := p.parseTerm()
	for p.check(token.LT) || p.check(token.LE) || p.check(token.GT) || p.check(token.GE) {
		opTok := p.advance()
		right := p.parseTerm()
		left = &ast.Binary{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

// parseTerm implements: term := factor ( ('+'|'-') factor )*
func (p *Parser) parseTerm() ast.Expression {
	left := p.parseFactor()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		opTok := p.advance()
		right := p.parseFactor()
		left = &ast.Binary{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

// parseFactor implements: factor := unary ( ('*'|'/'|'%') unary )*
func (p *Parser) parseFactor() ast.Expression {
	left := p.parseUnary()
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PERCENT) {
		opTok := p.advance()
		right := p.parseUnary()
		left = &ast.Binary{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

// parseUnary implements: unary := ('-'|'not'|'!') unary | postfix
func (p *Parser) parseUnary() ast.Expression {
	if p.check(token.MINUS) || p.check(token.NOT) || p.check(token.BANG) {
		opTok := p.advance()
		operand := p.parseUnary()
		op := opTok.Literal
		if opTok.Type == token.NOT {
			op = "not"
		}
		return &ast.Unary{Token: opTok, Operator: op, Right: operand}
	}
	return p.parsePostfix()
}

// parsePostfix implements:
// postfix := primary ( '(' args? ')' | '++' | '--' | '[' expr ']' | '.' IDENT )*
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check(token.LPAREN):
			expr = p.finishCall(expr)
		case p.check(token.INC), p.check(token.DEC):
			opTok := p.advance()
			expr = &ast.PostfixUpdate{Token: opTok, Target: expr, Operator: opTok.Literal}
		case p.check(token.LBRACKET):
			lbTok := p.advance()
			idx := p.parseExpression()
			p.expect(token.RBRACKET, "expected ']' after subscript index")
			expr = &ast.Subscript{Token: lbTok, Base: expr, Index: idx}
		case p.check(token.DOT):
			p.advance()
			nameTok, ok := p.expect(token.IDENT, "expected member name after '.'")
			if !ok {
				return expr
			}
			expr = &ast.MemberAccess{Token: nameTok, Base: expr, Name: nameTok.Literal}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	lpTok := p.advance() // '('
	var args []ast.Expression
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= maxArgs {
				p.addError(p.peek().Pos.Line, "too many arguments (max %d)", maxArgs)
				break
			}
			args = append(args, p.parseExpression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN, "expected ')' after arguments")
	return &ast.Call{Token: lpTok, Callee: callee, Args: args}
}

// parsePrimary implements:
// primary := 'true'|'false'|NUMBER|STRING|IDENT|'(' expr ')'
//          | 'len' '(' expr ')' | '[' args? ']'
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()
	switch tok.Type {
	case token.TRUE:
		p.advance()
		return &ast.Literal{Token: tok, Kind: "bool", Bool: true}
	case token.FALSE:
		p.advance()
		return &ast.Literal{Token: tok, Kind: "bool", Bool: false}
	case token.NUMBER:
		p.advance()
		n := parseFloat(tok.Literal)
		return &ast.Literal{Token: tok, Kind: "number", Num: n}
	case token.STRING:
		p.advance()
		return p.parseStringLiteral(tok)
	case token.IDENT:
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN, "expected ')' after expression")
		return expr
	case token.LEN:
		p.advance()
		if _, ok := p.expect(token.LPAREN, "expected '(' after 'len'"); !ok {
			return &ast.Literal{Token: tok, Kind: "null"}
		}
		arg := p.parseExpression()
		p.expect(token.RPAREN, "expected ')' after len argument")
		return &ast.Len{Token: tok, Arg: arg}
	case token.LBRACKET:
		return p.parseListLiteral()
	default:
		p.addError(tok.Pos.Line, "unexpected token %s in expression", tok.Type.String())
		p.advance()
		return &ast.Literal{Token: tok, Kind: "null"}
	}
}

func (p *Parser) parseListLiteral() ast.Expression {
	tok := p.advance() // '['
	var elems []ast.Expression
	if !p.check(token.RBRACKET) {
		for {
			elems = append(elems, p.parseExpression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RBRACKET, "expected ']' after list elements")
	return &ast.ListLiteral{Token: tok, Elements: elems}
}

func parseFloat(lit string) float64 {
	n, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseStringLiteral splits tok's already-unescaped lexeme on "#{...}"
// spans into an InterpolatedString, or returns a plain string Literal when
// no interpolation is present (spec.md §4.4 "String interpolation").
func (p *Parser) parseStringLiteral(tok token.Token) ast.Expression {
	s := tok.Literal
	if !containsInterpolation(s) {
		return &ast.Literal{Token: tok, Kind: "string", Str: s}
	}

	var segments []ast.InterpolatedStringSegment
	i := 0
	for i < len(s) {
		start := i
		for i < len(s) && !(s[i] == '#' && i+1 < len(s) && s[i+1] == '{') {
			i++
		}
		if i > start {
			segments = append(segments, ast.InterpolatedStringSegment{Text: s[start:i]})
		}
		if i >= len(s) {
			break
		}
		// s[i:i+2] == "#{"
		i += 2
		exprStart := i
		depth := 1
		for i < len(s) && depth > 0 {
			switch s[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					break
				}
			}
			if depth == 0 {
				break
			}
			i++
		}
		if depth != 0 {
			p.addError(tok.Pos.Line, "unterminated interpolation")
			break
		}
		inner := s[exprStart:i]
		i++ // consume closing '}'
		if inner == "" {
			p.addError(tok.Pos.Line, "empty interpolation expression")
			continue
		}
		expr := p.parseSubExpression(inner, tok.Pos.Line)
		segments = append(segments, ast.InterpolatedStringSegment{IsExpr: true, Expr: expr})
	}

	return &ast.InterpolatedString{Token: tok, Segments: segments}
}

func containsInterpolation(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '#' && s[i+1] == '{' {
			return true
		}
	}
	return false
}

// parseSubExpression lexes and parses inner with a fresh lexer+parser
// instance, per spec.md §4.4. Errors are attributed to the outer string's
// line, since the inner text has no independent source position.
func (p *Parser) parseSubExpression(inner string, outerLine int) ast.Expression {
	toks, lexErrs := lexer.Tokenize(inner)
	for _, le := range lexErrs {
		p.addError(outerLine, "interpolation: %s", le.Message)
	}
	sub := New(toks)
	expr := sub.parseExpression()
	for _, e := range sub.errs {
		p.addError(outerLine, "interpolation: %s", e.Message)
	}
	return expr
}
