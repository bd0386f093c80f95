package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluate(node ast.Expr) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return runtime.FromLiteral(n.Value)
	case *ast.Grouping:
		return i.evaluate(n.Inner)
	case *ast.Unary:
		return i.evaluateUnary(n)
	case *ast.Binary:
		return i.evaluateBinary(n)
	case *ast.Logical:
		return i.evaluateLogical(n)
	case *ast.Variable:
		return i.env.Get(n.Name)
	case *ast.Assign:
		return i.evaluateAssign(n)
	case nil:
		return nil, fmt.Errorf("interpreter: nil expression")
	default:
		return nil, fmt.Errorf("interpreter: unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateUnary(expr *ast.Unary) (runtime.Value, error) {
	operand, err := i.evaluate(expr.Operand)
	if err != nil {
		return nil, err
	}
	return applyUnaryOperator(expr.Operator, operand)
}

// evaluateBinary evaluates both operands left to right before applying the
// operator; a failure in the left operand skips the right one.
func (i *Interpreter) evaluateBinary(expr *ast.Binary) (runtime.Value, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}
	return applyBinaryOperator(expr.Operator, left, right)
}

// evaluateLogical returns the deciding operand itself, not a boolean.
func (i *Interpreter) evaluateLogical(expr *ast.Logical) (runtime.Value, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Kind {
	case token.Or:
		if runtime.IsTruthy(left) {
			return left, nil
		}
	case token.And:
		if !runtime.IsTruthy(left) {
			return left, nil
		}
	default:
		return nil, runtime.Errorf(expr.Operator, "Unknown logical operator '%s'.", expr.Operator.Lexeme)
	}
	return i.evaluate(expr.Right)
}

func (i *Interpreter) evaluateAssign(expr *ast.Assign) (runtime.Value, error) {
	value, err := i.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}
	if err := i.env.Assign(expr.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}
