package interpreter

import (
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func applyUnaryOperator(op token.Token, operand runtime.Value) (runtime.Value, error) {
	switch op.Kind {
	case token.Bang:
		return runtime.BoolValue{Val: !runtime.IsTruthy(operand)}, nil
	case token.Minus:
		n, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, runtime.Errorf(op, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -n.Val}, nil
	default:
		return nil, runtime.Errorf(op, "Unknown unary operator '%s'.", op.Lexeme)
	}
}

func applyBinaryOperator(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	switch op.Kind {
	case token.EqualEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case token.BangEqual:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	case token.Plus:
		return addValues(op, left, right)
	}

	l, r, err := numberOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	switch op.Kind {
	case token.Minus:
		return runtime.NumberValue{Val: l - r}, nil
	case token.Star:
		return runtime.NumberValue{Val: l * r}, nil
	case token.Slash:
		// IEEE semantics: x/0 is ±Inf and 0/0 is NaN.
		return runtime.NumberValue{Val: l / r}, nil
	case token.Greater:
		return runtime.BoolValue{Val: l > r}, nil
	case token.GreaterEqual:
		return runtime.BoolValue{Val: l >= r}, nil
	case token.Less:
		return runtime.BoolValue{Val: l < r}, nil
	case token.LessEqual:
		return runtime.BoolValue{Val: l <= r}, nil
	default:
		return nil, runtime.Errorf(op, "Unknown binary operator '%s'.", op.Lexeme)
	}
}

func addValues(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.NumberValue:
		if r, ok := right.(runtime.NumberValue); ok {
			return runtime.NumberValue{Val: l.Val + r.Val}, nil
		}
	case runtime.StringValue:
		if r, ok := right.(runtime.StringValue); ok {
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		}
	}
	return nil, runtime.Errorf(op, "Operands must be two numbers or two strings.")
}

func numberOperands(op token.Token, left, right runtime.Value) (float64, float64, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return 0, 0, runtime.Errorf(op, "Operands must be numbers.")
	}
	return l.Val, r.Val, nil
}
