package conformance

import (
	"bytes"
	"fmt"
	"strings"

	"lox/interpreter-go/pkg/driver"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name    string
	Passed  bool
	Skipped bool
	Reason  string
}

// Report collects the case results of one suite.
type Report struct {
	Suite   string
	Results []CaseResult
}

// Failed returns the failing cases.
func (r Report) Failed() []CaseResult {
	var out []CaseResult
	for _, res := range r.Results {
		if !res.Passed && !res.Skipped {
			out = append(out, res)
		}
	}
	return out
}

// OK reports whether no case failed.
func (r Report) OK() bool {
	return len(r.Failed()) == 0
}

// Summary is a one-line count of the results.
func (r Report) Summary() string {
	passed, skipped := 0, 0
	for _, res := range r.Results {
		switch {
		case res.Skipped:
			skipped++
		case res.Passed:
			passed++
		}
	}
	failed := len(r.Results) - passed - skipped
	return fmt.Sprintf("%s: %d passed, %d failed, %d skipped", r.Suite, passed, failed, skipped)
}

// Run executes every case of suite with a fresh interpreter each.
func Run(suite *Suite) Report {
	report := Report{Suite: suite.Name}
	for _, c := range suite.Cases {
		report.Results = append(report.Results, runCase(suite.Path, c))
	}
	return report
}

func runCase(path string, c Case) CaseResult {
	res := CaseResult{Name: c.Name}
	if c.Skip != "" {
		res.Skipped = true
		res.Reason = c.Skip
		return res
	}

	var stdout bytes.Buffer
	result := driver.Run(c.Source, driver.Options{Path: path, Stdout: &stdout})
	if reason := checkCase(c, result, stdout.String()); reason != "" {
		res.Reason = reason
		return res
	}
	res.Passed = true
	return res
}

func checkCase(c Case, result driver.Result, stdout string) string {
	var syntaxErrs, runtimeErrs []driver.Diagnostic
	for _, diag := range result.Diagnostics {
		switch diag.Phase {
		case driver.PhaseParse:
			syntaxErrs = append(syntaxErrs, diag)
		case driver.PhaseRuntime:
			runtimeErrs = append(runtimeErrs, diag)
		}
	}

	if len(syntaxErrs) != c.SyntaxErrors {
		return fmt.Sprintf("expected %d syntax errors, got %d%s", c.SyntaxErrors, len(syntaxErrs), describeFirst(syntaxErrs))
	}
	switch {
	case c.RuntimeError == "" && len(runtimeErrs) > 0:
		return "unexpected " + driver.DescribeDiagnostic(runtimeErrs[0])
	case c.RuntimeError != "" && len(runtimeErrs) == 0:
		return fmt.Sprintf("expected runtime error %q, run succeeded", c.RuntimeError)
	case c.RuntimeError != "" && runtimeErrs[0].Message != c.RuntimeError:
		return fmt.Sprintf("expected runtime error %q, got %q", c.RuntimeError, runtimeErrs[0].Message)
	}

	if got := splitOutput(stdout); !equalLines(got, c.Stdout) {
		return fmt.Sprintf("stdout mismatch\n got: %q\nwant: %q", got, c.Stdout)
	}
	return ""
}

func describeFirst(diags []driver.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	return " (" + driver.DescribeDiagnostic(diags[0]) + ")"
}

func splitOutput(out string) []string {
	if out == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
