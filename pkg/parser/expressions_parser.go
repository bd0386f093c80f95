package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment is right-associative. The target is parsed as an ordinary
// expression first and only accepted when it is a bare variable.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()
		if v, ok := expr.(*ast.Variable); ok {
			return ast.NewAssign(v.Name, value)
		}
		p.error(equals, "Invalid assignment target.")
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.Or) {
		operator := p.previous()
		right := p.and()
		expr = ast.NewLogical(expr, operator, right)
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		operator := p.previous()
		right := p.equality()
		expr = ast.NewLogical(expr, operator, right)
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	return p.binaryLevel(p.comparison, token.BangEqual, token.EqualEqual)
}

func (p *Parser) comparison() ast.Expr {
	return p.binaryLevel(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser) term() ast.Expr {
	return p.binaryLevel(p.factor, token.Minus, token.Plus)
}

func (p *Parser) factor() ast.Expr {
	return p.binaryLevel(p.unary, token.Slash, token.Star)
}

// binaryLevel parses one left-associative precedence level: operand
// (op operand)*.
func (p *Parser) binaryLevel(operand func() ast.Expr, operators ...token.Kind) ast.Expr {
	expr := operand()
	for p.match(operators...) {
		operator := p.previous()
		right := operand()
		expr = ast.NewBinary(expr, operator, right)
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		operator := p.previous()
		operand := p.unary()
		return ast.NewUnary(operator, operand)
	}
	return p.primary()
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.False):
		return ast.NewLiteral(false, p.previous().Line)
	case p.match(token.True):
		return ast.NewLiteral(true, p.previous().Line)
	case p.match(token.Nil):
		return ast.NewLiteral(nil, p.previous().Line)
	case p.match(token.Number, token.String):
		tok := p.previous()
		return ast.NewLiteral(tok.Literal, tok.Line)
	case p.match(token.Identifier):
		return ast.NewVariable(p.previous())
	case p.match(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return ast.NewGrouping(expr)
	}
	panic(p.error(p.peek(), "Expect expression."))
}
