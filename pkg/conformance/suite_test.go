package conformance

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func TestFixtureSuites(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yml"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no fixture suites found")
	}
	for _, path := range paths {
		suite, err := LoadSuite(path)
		if err != nil {
			t.Fatalf("LoadSuite(%s): %v", path, err)
		}
		t.Run(suite.Name, func(t *testing.T) {
			report := Run(suite)
			for _, failed := range report.Failed() {
				t.Errorf("%s: %s", failed.Name, failed.Reason)
			}
			if len(report.Results) != len(suite.Cases) {
				t.Fatalf("report covers %d of %d cases", len(report.Results), len(suite.Cases))
			}
		})
	}
}

func TestParseSuite(t *testing.T) {
	suite, err := ParseSuite([]byte(`
name: sample
cases:
  - name: hello
    source: 'print "hello";'
    stdout: ["hello"]
  - name: later
    source: "print 1;"
    skip: "not ready"
`))
	if err != nil {
		t.Fatalf("ParseSuite: %v", err)
	}
	if suite.Name != "sample" || len(suite.Cases) != 2 {
		t.Fatalf("unexpected suite %s", pretty.Sprint(suite))
	}
	if suite.Cases[1].Skip != "not ready" {
		t.Fatalf("skip reason not decoded: %s", pretty.Sprint(suite.Cases[1]))
	}
}

func TestParseSuiteValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "", "empty suite"},
		{"unknown field", "cases:\n  - name: a\n    expect: 1\n", "parse suite"},
		{"missing name", "cases:\n  - source: x\n", "cases[0] requires a name"},
		{"duplicate", "cases:\n  - name: a\n  - name: a\n", `case "a" is defined more than once`},
		{"both errors", "cases:\n  - name: a\n    runtime_error: x\n    syntax_errors: 1\n", "cannot expect both"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSuite([]byte(tc.yaml))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadSuiteDefaultsName(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "numbers.yml", "cases:\n  - name: one\n    source: \"print 1;\"\n    stdout: [\"1\"]\n")
	suite, err := LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite: %v", err)
	}
	if suite.Name != "numbers" || suite.Path != path {
		t.Fatalf("unexpected suite %s", pretty.Sprint(suite))
	}
}

func TestRunReportsFailures(t *testing.T) {
	suite := &Suite{Name: "failing", Cases: []Case{
		{Name: "wrong output", Source: "print 1;", Stdout: []string{"2"}},
		{Name: "missing runtime error", Source: "print 1;", Stdout: []string{"1"}, RuntimeError: "boom"},
		{Name: "unexpected runtime error", Source: "print x;"},
		{Name: "wrong syntax count", Source: "print ;", SyntaxErrors: 2},
		{Name: "wrong runtime message", Source: "x = 1;", RuntimeError: "Operand must be a number."},
		{Name: "skipped", Source: "print ;", Skip: "pending"},
		{Name: "passes", Source: "print 1;", Stdout: []string{"1"}},
	}}
	report := Run(suite)
	failed := report.Failed()
	if len(failed) != 5 {
		t.Fatalf("expected 5 failures, got %s", pretty.Sprint(report))
	}
	wantReasons := []string{
		"stdout mismatch",
		`expected runtime error "boom", run succeeded`,
		"unexpected runtime: line 1: Undefined variable 'x'.",
		"expected 2 syntax errors, got 1 (parser: line 1 at ';': Expect expression.)",
		`expected runtime error "Operand must be a number.", got "Undefined variable 'x'."`,
	}
	for idx, want := range wantReasons {
		if !strings.HasPrefix(failed[idx].Reason, want) {
			t.Fatalf("failure %d reason = %q, want prefix %q", idx, failed[idx].Reason, want)
		}
	}
	if report.OK() {
		t.Fatalf("report should not be OK")
	}
	if got := report.Summary(); got != "failing: 1 passed, 5 failed, 1 skipped" {
		t.Fatalf("unexpected summary %q", got)
	}
}
