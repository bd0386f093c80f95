package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// declaration is the recovery point: a *ParseError raised anywhere below it
// abandons the current statement and resynchronizes.
func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*ParseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()
	if p.match(token.Var) {
		return p.varDeclaration()
	}
	return p.statement()
}

// synchronize discards tokens until just after a ';' or just before a
// keyword that starts a statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If,
			token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}
