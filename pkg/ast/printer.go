package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sprint renders a node in parenthesized prefix form, e.g.
// (* (- 123) (group 45.67)). A nil node renders as the empty string.
func Sprint(node Node) string {
	var b strings.Builder
	writeNode(&b, node)
	return b.String()
}

// SprintProgram renders each statement on its own line.
func SprintProgram(stmts []Stmt) string {
	var b strings.Builder
	for idx, stmt := range stmts {
		if idx > 0 {
			b.WriteByte('\n')
		}
		writeNode(&b, stmt)
	}
	return b.String()
}

func writeNode(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
	case *Literal:
		b.WriteString(formatLiteral(n.Value))
	case *Grouping:
		parenthesize(b, "group", n.Inner)
	case *Unary:
		parenthesize(b, n.Operator.Lexeme, n.Operand)
	case *Binary:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *Logical:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *Variable:
		b.WriteString(n.Name.Lexeme)
	case *Assign:
		b.WriteString("(= ")
		b.WriteString(n.Name.Lexeme)
		b.WriteByte(' ')
		writeNode(b, n.Value)
		b.WriteByte(')')
	case *ExpressionStmt:
		parenthesize(b, ";", n.Expr)
	case *Print:
		parenthesize(b, "print", n.Expr)
	case *Var:
		b.WriteString("(var ")
		b.WriteString(n.Name.Lexeme)
		if n.Initializer != nil {
			b.WriteByte(' ')
			writeNode(b, n.Initializer)
		}
		b.WriteByte(')')
	case *Block:
		nodes := make([]Node, 0, len(n.Statements))
		for _, stmt := range n.Statements {
			nodes = append(nodes, stmt)
		}
		parenthesize(b, "block", nodes...)
	case *If:
		if n.Else == nil {
			parenthesize(b, "if", n.Condition, n.Then)
		} else {
			parenthesize(b, "if", n.Condition, n.Then, n.Else)
		}
	case *While:
		parenthesize(b, "while", n.Condition, n.Body)
	default:
		fmt.Fprintf(b, "<%s>", node.NodeType())
	}
}

func parenthesize(b *strings.Builder, name string, nodes ...Node) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, node := range nodes {
		b.WriteByte(' ')
		writeNode(b, node)
	}
	b.WriteByte(')')
}

func formatLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Sprint(v)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}
