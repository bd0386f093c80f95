// Package parser builds Lox ASTs from a finished token slice using recursive
// descent, one method per grammar rule in ascending precedence.
package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/scanner"
	"lox/interpreter-go/pkg/token"
)

// Parser consumes a token slice terminated by an EOF token.
type Parser struct {
	tokens  []token.Token
	current int

	reporter ErrorReporter
	errors   []*ParseError
}

// New creates a parser over tokens. A missing trailing EOF token is
// appended. reporter may be nil.
func New(tokens []token.Token, reporter ErrorReporter) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(append([]token.Token(nil), tokens...), token.EOFAt(line))
	}
	return &Parser{tokens: tokens, reporter: reporter}
}

// Parse parses a whole program. Statements with syntax errors are dropped
// after being reported; parsing resumes at the next statement boundary.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// ParseExpression parses a single expression followed by EOF. It returns nil
// when a syntax error was reported.
func (p *Parser) ParseExpression() (expr ast.Expr) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*ParseError); !ok {
				panic(r)
			}
			expr = nil
		}
	}()
	expr = p.expression()
	if !p.atEnd() {
		panic(p.error(p.peek(), "Expect end of expression."))
	}
	return expr
}

// Errors returns the syntax errors reported so far, in source order.
func (p *Parser) Errors() []*ParseError {
	return p.errors
}

// HadError reports whether any syntax error was reported.
func (p *Parser) HadError() bool {
	return len(p.errors) > 0
}

// ParseSource scans and parses src. Lexical and syntax errors both go to
// reporter.
func ParseSource(src string, reporter ErrorReporter) ([]ast.Stmt, []*ParseError) {
	var errh scanner.ErrorHandler
	if reporter != nil {
		errh = reporter.ReportError
	}
	s := scanner.New(src, errh)
	toks := s.Scan()
	p := New(toks, reporter)
	stmts := p.Parse()
	return stmts, p.Errors()
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(kind token.Kind) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

// consume advances past a token of the given kind or aborts the current
// statement with a syntax error.
func (p *Parser) consume(kind token.Kind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	panic(p.error(p.peek(), message))
}

// ----------------------------------------------------------------------------
// Error handling

// error records and reports a syntax error. The caller decides whether to
// abort the statement by panicking with the result.
func (p *Parser) error(tok token.Token, message string) *ParseError {
	err := &ParseError{Token: tok, Message: message}
	p.errors = append(p.errors, err)
	if p.reporter != nil {
		p.reporter.ReportError(tok.Line, err.Where(), message)
	}
	return err
}
