package ast

import (
	"fmt"

	"lox/interpreter-go/pkg/token"
)

// Tree-building helpers for tests and tools. Synthesized nodes carry line 0.

var operatorKinds = map[string]token.Kind{
	"-":   token.Minus,
	"+":   token.Plus,
	"/":   token.Slash,
	"*":   token.Star,
	"!":   token.Bang,
	"!=":  token.BangEqual,
	"==":  token.EqualEqual,
	">":   token.Greater,
	">=":  token.GreaterEqual,
	"<":   token.Less,
	"<=":  token.LessEqual,
	"and": token.And,
	"or":  token.Or,
}

// Op builds an operator token from its lexeme. It panics on unknown operators.
func Op(lexeme string) token.Token {
	kind, ok := operatorKinds[lexeme]
	if !ok {
		panic(fmt.Sprintf("ast: unknown operator %q", lexeme))
	}
	return token.New(kind, lexeme, 0)
}

// Name builds an identifier token.
func Name(name string) token.Token {
	return token.New(token.Identifier, name, 0)
}

// Literal helpers.

func Num(value float64) *Literal {
	return NewLiteral(value, 0)
}

func Str(value string) *Literal {
	return NewLiteral(value, 0)
}

func Bool(value bool) *Literal {
	return NewLiteral(value, 0)
}

func Nil() *Literal {
	return NewLiteral(nil, 0)
}

// Expression helpers.

func ID(name string) *Variable {
	return NewVariable(Name(name))
}

func Group(inner Expr) *Grouping {
	return NewGrouping(inner)
}

func Un(operator string, operand Expr) *Unary {
	return NewUnary(Op(operator), operand)
}

func Bin(operator string, left, right Expr) *Binary {
	return NewBinary(left, Op(operator), right)
}

func And(left, right Expr) *Logical {
	return NewLogical(left, Op("and"), right)
}

func Or(left, right Expr) *Logical {
	return NewLogical(left, Op("or"), right)
}

func Assignment(name string, value Expr) *Assign {
	return NewAssign(Name(name), value)
}

// Statement helpers.

func ExprS(expr Expr) *ExpressionStmt {
	return NewExpressionStmt(expr)
}

func PrintS(expr Expr) *Print {
	return NewPrint(expr, 0)
}

func VarS(name string, initializer Expr) *Var {
	return NewVar(Name(name), initializer)
}

func BlockS(statements ...Stmt) *Block {
	return NewBlock(statements, 0)
}

func IfS(condition Expr, then, els Stmt) *If {
	return NewIf(condition, then, els, 0)
}

func WhileS(condition Expr, body Stmt) *While {
	return NewWhile(condition, body, 0)
}
