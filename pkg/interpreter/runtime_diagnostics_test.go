package interpreter

import (
	"errors"
	"testing"
)

func TestRuntimeDiagnosticFromError(t *testing.T) {
	_, err := runProgram(t, "\n\nprint -nil;")
	diag := BuildRuntimeDiagnostic(err)
	if diag.Line != 3 || diag.Lexeme != "-" {
		t.Fatalf("unexpected diagnostic %+v", diag)
	}
	if got := DescribeRuntimeDiagnostic(diag); got != "runtime: line 3: Operand must be a number." {
		t.Fatalf("unexpected description %q", got)
	}
	diag.Path = "main.lox"
	if got := DescribeRuntimeDiagnostic(diag); got != "runtime: main.lox:3: Operand must be a number." {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestRuntimeDiagnosticFromPlainError(t *testing.T) {
	diag := BuildRuntimeDiagnostic(errors.New("runtime: write failed"))
	if got := DescribeRuntimeDiagnostic(diag); got != "runtime: write failed" {
		t.Fatalf("unexpected description %q", got)
	}
	if BuildRuntimeDiagnostic(nil) != (RuntimeDiagnostic{}) {
		t.Fatalf("nil error should build an empty diagnostic")
	}
}
