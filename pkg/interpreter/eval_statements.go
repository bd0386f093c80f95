package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) execute(node ast.Stmt) error {
	i.stats.Statements++
	switch n := node.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluate(n.Expr)
		return err
	case *ast.Print:
		return i.executePrint(n)
	case *ast.Var:
		return i.executeVar(n)
	case *ast.Block:
		return i.executeBlock(n.Statements, i.env.Extend())
	case *ast.If:
		return i.executeIf(n)
	case *ast.While:
		return i.executeWhile(n)
	case nil:
		return fmt.Errorf("interpreter: nil statement")
	default:
		return fmt.Errorf("interpreter: unsupported statement type: %s", n.NodeType())
	}
}

func (i *Interpreter) executePrint(stmt *ast.Print) error {
	value, err := i.evaluate(stmt.Expr)
	if err != nil {
		return err
	}
	i.stats.Prints++
	_, err = fmt.Fprintln(i.out, runtime.Stringify(value))
	return err
}

func (i *Interpreter) executeVar(stmt *ast.Var) error {
	var value runtime.Value = runtime.NilValue{}
	if stmt.Initializer != nil {
		val, err := i.evaluate(stmt.Initializer)
		if err != nil {
			return err
		}
		value = val
	}
	i.env.Define(stmt.Name.Lexeme, value)
	return nil
}

// executeBlock runs stmts with scope as the current environment. The previous
// environment is restored and scope released on every exit path.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, scope runtime.Environment) error {
	previous := i.env
	i.env = scope
	defer func() {
		i.env = previous
		i.scopes.Release(scope.Handle())
	}()

	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeIf(stmt *ast.If) error {
	cond, err := i.evaluate(stmt.Condition)
	if err != nil {
		return err
	}
	if runtime.IsTruthy(cond) {
		return i.execute(stmt.Then)
	}
	if stmt.Else != nil {
		return i.execute(stmt.Else)
	}
	return nil
}

func (i *Interpreter) executeWhile(loop *ast.While) error {
	for {
		cond, err := i.evaluate(loop.Condition)
		if err != nil {
			return err
		}
		if !runtime.IsTruthy(cond) {
			return nil
		}
		if err := i.execute(loop.Body); err != nil {
			return err
		}
	}
}
