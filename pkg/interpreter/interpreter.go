package interpreter

import (
	"io"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// Interpreter drives evaluation of Lox AST nodes.
type Interpreter struct {
	scopes *runtime.Scopes
	global runtime.Environment
	// env is the current scope cursor; blocks swap it and restore it on exit.
	env runtime.Environment

	out   io.Writer
	stats Stats
}

// Stats counts work done by an interpreter across runs.
type Stats struct {
	Statements    int
	Prints        int
	MaxScopeDepth int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput redirects print statements. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.out = w
		}
	}
}

// WithGlobals pre-defines global bindings.
func WithGlobals(values map[string]runtime.Value) Option {
	return func(i *Interpreter) {
		for name, value := range values {
			i.global.Define(name, value)
		}
	}
}

// New returns an interpreter with an empty global environment.
func New(opts ...Option) *Interpreter {
	scopes := runtime.NewScopes()
	i := &Interpreter{
		scopes: scopes,
		global: scopes.Global(),
		out:    os.Stdout,
	}
	i.env = i.global
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() runtime.Environment {
	return i.global
}

// CurrentEnvironment returns the scope statements currently execute in.
func (i *Interpreter) CurrentEnvironment() runtime.Environment {
	return i.env
}

// Stats returns the counters accumulated so far.
func (i *Interpreter) Stats() Stats {
	s := i.stats
	s.MaxScopeDepth = i.scopes.MaxDepth()
	return s
}

// Interpret executes stmts in order and stops at the first runtime failure,
// which is returned as a *runtime.RuntimeError. Side effects of the
// statements before the failure remain visible.
func (i *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate reduces a single expression in the current scope.
func (i *Interpreter) Evaluate(expr ast.Expr) (runtime.Value, error) {
	return i.evaluate(expr)
}
