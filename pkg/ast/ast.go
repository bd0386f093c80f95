package ast

import "lox/interpreter-go/pkg/token"

type NodeType string

const (
	NodeLiteral        NodeType = "Literal"
	NodeGrouping       NodeType = "Grouping"
	NodeUnary          NodeType = "Unary"
	NodeBinary         NodeType = "Binary"
	NodeLogical        NodeType = "Logical"
	NodeVariable       NodeType = "Variable"
	NodeAssign         NodeType = "Assign"
	NodeExpressionStmt NodeType = "ExpressionStmt"
	NodePrint          NodeType = "Print"
	NodeVar            NodeType = "Var"
	NodeBlock          NodeType = "Block"
	NodeIf             NodeType = "If"
	NodeWhile          NodeType = "While"
)

type Node interface {
	NodeType() NodeType
	// Line is the best-effort source line of the node (0 when synthesized).
	Line() int
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	line int
}

func newNodeImpl(kind NodeType, line int) nodeImpl {
	return nodeImpl{Type: kind, line: line}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Line() int          { return n.line }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expr interface {
	Node
	exprNode()
}

type exprMarker struct{}

func (exprMarker) exprNode() {}

type Stmt interface {
	Node
	stmtNode()
}

type stmtMarker struct{}

func (stmtMarker) stmtNode() {}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

// Literal holds a constant: nil, bool, float64 or string.
type Literal struct {
	nodeImpl
	exprMarker

	Value any `json:"value"`
}

func NewLiteral(value any, line int) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral, line), Value: value}
}

type Grouping struct {
	nodeImpl
	exprMarker

	Inner Expr `json:"inner"`
}

func NewGrouping(inner Expr) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping, lineOf(inner)), Inner: inner}
}

type Unary struct {
	nodeImpl
	exprMarker

	Operator token.Token `json:"operator"`
	Operand  Expr        `json:"operand"`
}

func NewUnary(operator token.Token, operand Expr) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary, operator.Line), Operator: operator, Operand: operand}
}

type Binary struct {
	nodeImpl
	exprMarker

	Left     Expr        `json:"left"`
	Operator token.Token `json:"operator"`
	Right    Expr        `json:"right"`
}

func NewBinary(left Expr, operator token.Token, right Expr) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary, operator.Line), Left: left, Operator: operator, Right: right}
}

// Logical is a short-circuiting "and"/"or".
type Logical struct {
	nodeImpl
	exprMarker

	Left     Expr        `json:"left"`
	Operator token.Token `json:"operator"`
	Right    Expr        `json:"right"`
}

func NewLogical(left Expr, operator token.Token, right Expr) *Logical {
	return &Logical{nodeImpl: newNodeImpl(NodeLogical, operator.Line), Left: left, Operator: operator, Right: right}
}

type Variable struct {
	nodeImpl
	exprMarker

	Name token.Token `json:"name"`
}

func NewVariable(name token.Token) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable, name.Line), Name: name}
}

type Assign struct {
	nodeImpl
	exprMarker

	Name  token.Token `json:"name"`
	Value Expr        `json:"value"`
}

func NewAssign(name token.Token, value Expr) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign, name.Line), Name: name, Value: value}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

type ExpressionStmt struct {
	nodeImpl
	stmtMarker

	Expr Expr `json:"expr"`
}

func NewExpressionStmt(expr Expr) *ExpressionStmt {
	return &ExpressionStmt{nodeImpl: newNodeImpl(NodeExpressionStmt, lineOf(expr)), Expr: expr}
}

type Print struct {
	nodeImpl
	stmtMarker

	Expr Expr `json:"expr"`
}

func NewPrint(expr Expr, line int) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint, line), Expr: expr}
}

// Var declares Name in the current scope. Initializer is nil when omitted.
type Var struct {
	nodeImpl
	stmtMarker

	Name        token.Token `json:"name"`
	Initializer Expr        `json:"initializer,omitempty"`
}

func NewVar(name token.Token, initializer Expr) *Var {
	return &Var{nodeImpl: newNodeImpl(NodeVar, name.Line), Name: name, Initializer: initializer}
}

type Block struct {
	nodeImpl
	stmtMarker

	Statements []Stmt `json:"statements"`
}

func NewBlock(statements []Stmt, line int) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock, line), Statements: statements}
}

// If carries an optional Else branch (nil when omitted).
type If struct {
	nodeImpl
	stmtMarker

	Condition Expr `json:"condition"`
	Then      Stmt `json:"then"`
	Else      Stmt `json:"else,omitempty"`
}

func NewIf(condition Expr, then, els Stmt, line int) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf, line), Condition: condition, Then: then, Else: els}
}

type While struct {
	nodeImpl
	stmtMarker

	Condition Expr `json:"condition"`
	Body      Stmt `json:"body"`
}

func NewWhile(condition Expr, body Stmt, line int) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile, line), Condition: condition, Body: body}
}

func lineOf(n Node) int {
	if n == nil {
		return 0
	}
	return n.Line()
}
