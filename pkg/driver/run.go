package driver

import (
	"fmt"
	"io"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/scanner"
)

// Exit codes follow sysexits.h.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitNoInput  = 66
	ExitSoftware = 70
)

// Options configures a run.
type Options struct {
	// Path labels diagnostics; it is not read.
	Path string
	// Stdout receives print output. Defaults to os.Stdout.
	Stdout io.Writer
	// Reporter additionally receives every diagnostic, e.g. a ConsoleReporter.
	Reporter Reporter
	Globals  map[string]runtime.Value
}

// Result is the outcome of running one source text.
type Result struct {
	Statements      []ast.Stmt
	Diagnostics     []Diagnostic
	HadError        bool
	HadRuntimeError bool
	Stats           interpreter.Stats
}

// ExitCode maps the result to a process exit status.
func (r Result) ExitCode() int {
	switch {
	case r.HadError:
		return ExitDataErr
	case r.HadRuntimeError:
		return ExitSoftware
	default:
		return ExitOK
	}
}

// Err returns the first diagnostic as an error, or nil for a clean run.
func (r Result) Err() error {
	for _, diag := range r.Diagnostics {
		if diag.Severity == SeverityError {
			return &DiagnosticError{Diagnostic: diag}
		}
	}
	return nil
}

// Run scans, parses and, when no syntax error was reported, interprets
// source with a fresh interpreter.
func Run(source string, opts Options) Result {
	return NewSession(opts).Run(source)
}

// Session keeps one interpreter alive across runs so global bindings
// persist, as in the REPL. Diagnostics are reset for every run.
type Session struct {
	path     string
	stdout   io.Writer
	reporter Reporter
	interp   *interpreter.Interpreter
}

// NewSession creates a session from opts.
func NewSession(opts Options) *Session {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Session{
		path:     opts.Path,
		stdout:   stdout,
		reporter: opts.Reporter,
		interp:   interpreter.New(interpreter.WithOutput(stdout), interpreter.WithGlobals(opts.Globals)),
	}
}

// Interpreter exposes the session's interpreter.
func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

// Run executes source in the session.
func (s *Session) Run(source string) Result {
	collector := &Collector{Path: s.path}
	rep := MultiReporter{collector, s.reporter}

	stmts, _ := parser.ParseSource(source, rep)
	result := Result{Statements: stmts}
	if collector.HadError() {
		return s.finish(result, collector)
	}
	if err := s.interp.Interpret(stmts); err != nil {
		diag := interpreter.BuildRuntimeDiagnostic(err)
		rep.ReportRuntimeError(diag.Message, diag.Line)
	}
	return s.finish(result, collector)
}

// RunLine is Run for interactive input: a line holding a single bare
// expression is evaluated and its value echoed.
func (s *Session) RunLine(line string) Result {
	expr := parseBareExpression(line)
	if expr == nil {
		return s.Run(line)
	}
	collector := &Collector{Path: s.path}
	rep := MultiReporter{collector, s.reporter}
	value, err := s.interp.Evaluate(expr)
	if err != nil {
		diag := interpreter.BuildRuntimeDiagnostic(err)
		rep.ReportRuntimeError(diag.Message, diag.Line)
	} else {
		fmt.Fprintln(s.stdout, runtime.Stringify(value))
	}
	return s.finish(Result{}, collector)
}

func (s *Session) finish(result Result, collector *Collector) Result {
	result.Diagnostics = collector.Diagnostics
	result.HadError = collector.HadError()
	result.HadRuntimeError = collector.HadRuntimeError()
	result.Stats = s.interp.Stats()
	return result
}

func parseBareExpression(line string) ast.Expr {
	sc := scanner.New(line, nil)
	toks := sc.Scan()
	if sc.Errors() > 0 {
		return nil
	}
	p := parser.New(toks, nil)
	expr := p.ParseExpression()
	if p.HadError() {
		return nil
	}
	return expr
}

// ReadSource reads a script from disk.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("driver: read %s: %w", path, err)
	}
	return string(data), nil
}
