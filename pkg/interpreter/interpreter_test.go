package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/runtime"
)

func parseProgram(t *testing.T, source string) []ast.Stmt {
	t.Helper()
	stmts, errs := parser.ParseSource(source, nil)
	if len(errs) > 0 {
		t.Fatalf("unexpected syntax errors for %q: %v", source, errs)
	}
	return stmts
}

func runProgram(t *testing.T, source string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	interp := New(WithOutput(&out))
	err := interp.Interpret(parseProgram(t, source))
	return out.String(), err
}

func expectOutput(t *testing.T, source string, want ...string) {
	t.Helper()
	got, err := runProgram(t, source)
	if err != nil {
		t.Fatalf("unexpected runtime error for %q: %v", source, err)
	}
	expected := ""
	if len(want) > 0 {
		expected = strings.Join(want, "\n") + "\n"
	}
	if got != expected {
		t.Fatalf("output mismatch for %q\n got: %q\nwant: %q", source, got, expected)
	}
}

func expectRuntimeError(t *testing.T, source string, message string) (string, *runtime.RuntimeError) {
	t.Helper()
	out, err := runProgram(t, source)
	if err == nil {
		t.Fatalf("expected runtime error %q for %q", message, source)
	}
	rtErr, ok := runtime.AsRuntimeError(err)
	if !ok {
		t.Fatalf("expected *runtime.RuntimeError, got %T: %v", err, err)
	}
	if rtErr.Message != message {
		t.Fatalf("runtime error = %q, want %q", rtErr.Message, message)
	}
	return out, rtErr
}

func TestArithmetic(t *testing.T) {
	expectOutput(t, "print 1 + 2 * 3;", "7")
	expectOutput(t, "print 16 - 4 - 2;", "10")
	expectOutput(t, "print (1 + 2) * 3;", "9")
	expectOutput(t, "print 7 / 2;", "3.5")
	expectOutput(t, "print -(3);", "-3")
	expectOutput(t, "print 1 / 0;", "+Inf")
	expectOutput(t, "print -1 / 0;", "-Inf")
}

func TestPlusOperands(t *testing.T) {
	expectOutput(t, `print "1" + "1";`, "11")
	expectOutput(t, "print 1 + 1;", "2")
	expectRuntimeError(t, `print "1" + 1;`, "Operands must be two numbers or two strings.")
	expectRuntimeError(t, `print nil + nil;`, "Operands must be two numbers or two strings.")
}

func TestOperandChecks(t *testing.T) {
	expectRuntimeError(t, `print -"a";`, "Operand must be a number.")
	expectRuntimeError(t, `print "a" < 1;`, "Operands must be numbers.")
	expectRuntimeError(t, `print true * 2;`, "Operands must be numbers.")
	expectRuntimeError(t, `print 2 / nil;`, "Operands must be numbers.")
}

func TestComparisonAndEquality(t *testing.T) {
	expectOutput(t, "print 1 < 2; print 2 <= 2; print 3 > 4; print 4 >= 5;", "true", "true", "false", "false")
	expectOutput(t, `print nil == nil; print 1 == "1"; print "a" == "a"; print nil != false;`, "true", "false", "true", "true")
	expectOutput(t, "print !nil; print !0; print !!true;", "true", "false", "true")
}

func TestTruthiness(t *testing.T) {
	expectOutput(t, `if (0) print "yes"; else print "no";`, "yes")
	expectOutput(t, `if ("") print "yes"; else print "no";`, "yes")
	expectOutput(t, `if (nil) print "yes"; else print "no";`, "no")
	expectOutput(t, `if (false) print "yes";`)
}

func TestLogicalShortCircuit(t *testing.T) {
	expectOutput(t, "print false and missing;", "false")
	expectOutput(t, "print true or missing;", "true")
	expectOutput(t, `print nil or "fallback";`, "fallback")
	expectOutput(t, "print 1 and 2;", "2")
	expectRuntimeError(t, "print true and missing;", "Undefined variable 'missing'.")
}

func TestShadowing(t *testing.T) {
	expectOutput(t, "var x = 1; { var x = 2; print x; } print x;", "2", "1")
	expectOutput(t, "var x = 1; { x = 2; } print x;", "2")
	expectOutput(t, "var a = 1; { var a = a + 1; print a; }", "2")
}

func TestVarDefaultsToNil(t *testing.T) {
	expectOutput(t, "var a; print a; var a = 3; print a;", "nil", "3")
}

func TestAssignmentEvaluatesToValue(t *testing.T) {
	expectOutput(t, "var a; var b; a = b = 3; print a; print b;", "3", "3")
	expectOutput(t, "var a = 1; print a = 5;", "5")
}

func TestUndeclaredAssignment(t *testing.T) {
	out, rtErr := expectRuntimeError(t, "x = 1;", "Undefined variable 'x'.")
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
	if rtErr.Line() != 1 || rtErr.Token.Lexeme != "x" {
		t.Fatalf("unexpected error token %v", rtErr.Token)
	}
}

func TestForLoop(t *testing.T) {
	out, _ := expectRuntimeError(t, "for (var i = 0; i < 3; i = i + 1) print i; print i;", "Undefined variable 'i'.")
	if out != "0\n1\n2\n" {
		t.Fatalf("unexpected loop output %q", out)
	}
	expectOutput(t, "var n = 0; for (; n < 2;) n = n + 1; print n;", "2")
}

func TestWhileLoop(t *testing.T) {
	expectOutput(t, "var i = 0; while (i < 3) { print i; i = i + 1; }", "0", "1", "2")
	expectOutput(t, `var a = 0; var b = 1; while (a < 20) { print a; var t = a; a = b; b = t + b; }`,
		"0", "1", "1", "2", "3", "5", "8", "13")
}

func TestRuntimeErrorKeepsEarlierSideEffects(t *testing.T) {
	out, rtErr := expectRuntimeError(t, "print 1;\nprint -\"x\";\nprint 2;", "Operand must be a number.")
	if out != "1\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if rtErr.Line() != 2 {
		t.Fatalf("error line = %d, want 2", rtErr.Line())
	}
}

func TestBlockRestoresScopeOnError(t *testing.T) {
	var out bytes.Buffer
	interp := New(WithOutput(&out))
	err := interp.Interpret(parseProgram(t, "var a = 1; { var a = 2; { print missing; } }"))
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	if interp.CurrentEnvironment().Handle() != interp.GlobalEnvironment().Handle() {
		t.Fatalf("current scope should be restored to global")
	}
	if depth := interp.GlobalEnvironment().Scopes().Depth(); depth != 1 {
		t.Fatalf("block scopes should be released, depth=%d", depth)
	}
	value, err := interp.Evaluate(ast.ID("a"))
	if err != nil || runtime.Stringify(value) != "1" {
		t.Fatalf("global a = %v (%v), want 1", value, err)
	}
}

func TestGlobalsPersistAcrossRuns(t *testing.T) {
	var out bytes.Buffer
	interp := New(WithOutput(&out))
	if err := interp.Interpret(parseProgram(t, "var count = 1;")); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := interp.Interpret(parseProgram(t, "count = count + 1; print count;")); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if out.String() != "2\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if keys := interp.GlobalEnvironment().Keys(); len(keys) != 1 || keys[0] != "count" {
		t.Fatalf("unexpected globals %v", keys)
	}
}

func TestWithGlobals(t *testing.T) {
	var out bytes.Buffer
	interp := New(WithOutput(&out), WithGlobals(map[string]runtime.Value{
		"greeting": runtime.StringValue{Val: "hello"},
	}))
	if err := interp.Interpret(parseProgram(t, `print greeting + " world";`)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "hello world\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestEvaluateUsesDSL(t *testing.T) {
	interp := New()
	value, err := interp.Evaluate(ast.Bin("+", ast.Num(1), ast.Bin("*", ast.Num(2), ast.Num(3))))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if n, ok := value.(runtime.NumberValue); !ok || n.Val != 7 {
		t.Fatalf("unexpected value %#v", value)
	}
	if _, err := interp.Evaluate(ast.Or(ast.Bool(true), ast.ID("missing"))); err != nil {
		t.Fatalf("or should short-circuit: %v", err)
	}
}

func TestStats(t *testing.T) {
	var out bytes.Buffer
	interp := New(WithOutput(&out))
	if err := interp.Interpret(parseProgram(t, "{ { print 1; } }")); err != nil {
		t.Fatalf("run: %v", err)
	}
	stats := interp.Stats()
	if stats.Statements != 3 || stats.Prints != 1 {
		t.Fatalf("unexpected counters %+v", stats)
	}
	if stats.MaxScopeDepth != 3 {
		t.Fatalf("max scope depth = %d, want 3", stats.MaxScopeDepth)
	}
}
