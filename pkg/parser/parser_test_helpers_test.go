package parser

import (
	"fmt"
	"testing"

	"github.com/kr/pretty"

	"lox/interpreter-go/pkg/ast"
)

type reportedError struct {
	line    int
	where   string
	message string
}

func (r reportedError) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", r.line, r.where, r.message)
}

type recordingReporter struct {
	reports []reportedError
}

func (r *recordingReporter) ReportError(line int, where, message string) {
	r.reports = append(r.reports, reportedError{line: line, where: where, message: message})
}

func parseSource(t *testing.T, source string) ([]ast.Stmt, *recordingReporter) {
	t.Helper()
	rep := &recordingReporter{}
	stmts, _ := ParseSource(source, rep)
	return stmts, rep
}

func mustParse(t *testing.T, source string) []ast.Stmt {
	t.Helper()
	stmts, rep := parseSource(t, source)
	if len(rep.reports) > 0 {
		t.Fatalf("unexpected syntax errors for %q: %v", source, rep.reports)
	}
	return stmts
}

func assertProgram(t *testing.T, source string, want string) {
	t.Helper()
	stmts := mustParse(t, source)
	if got := ast.SprintProgram(stmts); got != want {
		t.Fatalf("AST mismatch for %q\n got: %s\nwant: %s\ntree: %s", source, got, want, pretty.Sprint(stmts))
	}
}
