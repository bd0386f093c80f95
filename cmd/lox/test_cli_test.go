package main

import (
	"path/filepath"
	"strings"
	"testing"
)

const passingSuite = `name: passing
cases:
  - name: arithmetic
    source: "print 1 + 2;"
    stdout: ["3"]
  - name: undeclared
    source: "x = 1;"
    runtime_error: "Undefined variable 'x'."
`

const failingSuite = `name: failing
cases:
  - name: wrong
    source: "print 1;"
    stdout: ["2"]
`

func TestTestCommandWithPaths(t *testing.T) {
	dir := enterTempDir(t)
	pass := filepath.Join(dir, "pass.yml")
	writeFile(t, pass, passingSuite)
	fail := filepath.Join(dir, "fail.yml")
	writeFile(t, fail, failingSuite)

	code, stdout, stderr := captureCLI(t, []string{"test", pass}, "")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr=%q)", code, stderr)
	}
	if !strings.Contains(stdout, "passing: 2 passed, 0 failed, 0 skipped") {
		t.Fatalf("unexpected stdout %q", stdout)
	}

	code, stdout, _ = captureCLI(t, []string{"test", pass, fail}, "")
	if code != exitTestFailure {
		t.Fatalf("expected failure exit, got %d", code)
	}
	if !strings.Contains(stdout, "FAIL failing/wrong: stdout mismatch") {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestTestCommandUsesManifestSuites(t *testing.T) {
	dir := enterTempDir(t)
	writeFile(t, filepath.Join(dir, "lox.yml"), "name: demo\nsuites:\n  - path: tests/pass.yml\n")
	writeFile(t, filepath.Join(dir, "tests", "pass.yml"), passingSuite)

	code, stdout, stderr := captureCLI(t, []string{"test"}, "")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr=%q)", code, stderr)
	}
	if !strings.Contains(stdout, "passing: 2 passed") {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestTestCommandWithoutSuites(t *testing.T) {
	enterTempDir(t)
	code, stdout, _ := captureCLI(t, []string{"test"}, "")
	if code != 0 || !strings.Contains(stdout, "no suites found") {
		t.Fatalf("code=%d stdout=%q", code, stdout)
	}

	code, _, stderr := captureCLI(t, []string{"test", "missing.yml"}, "")
	if code != 66 || !strings.Contains(stderr, "missing.yml") {
		t.Fatalf("missing suite: code=%d stderr=%q", code, stderr)
	}
}
