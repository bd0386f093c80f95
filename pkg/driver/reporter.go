package driver

import (
	"fmt"
	"io"
)

// Reporter receives the two kinds of failure a run can produce. It satisfies
// parser.ErrorReporter.
type Reporter interface {
	ReportError(line int, where, message string)
	ReportRuntimeError(message string, line int)
}

// Collector records diagnostics instead of printing them.
type Collector struct {
	Path        string
	Diagnostics []Diagnostic
}

func (c *Collector) ReportError(line int, where, message string) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{
		Severity: SeverityError,
		Phase:    PhaseParse,
		Message:  message,
		Where:    where,
		Location: DiagnosticLocation{Path: c.Path, Line: line},
	})
}

func (c *Collector) ReportRuntimeError(message string, line int) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{
		Severity: SeverityError,
		Phase:    PhaseRuntime,
		Message:  message,
		Location: DiagnosticLocation{Path: c.Path, Line: line},
	})
}

// HadError reports whether a lexical or syntax error was recorded.
func (c *Collector) HadError() bool {
	return c.count(PhaseParse) > 0
}

// HadRuntimeError reports whether a runtime error was recorded.
func (c *Collector) HadRuntimeError() bool {
	return c.count(PhaseRuntime) > 0
}

// Reset drops every recorded diagnostic.
func (c *Collector) Reset() {
	c.Diagnostics = nil
}

func (c *Collector) count(phase DiagnosticPhase) int {
	n := 0
	for _, diag := range c.Diagnostics {
		if diag.Phase == phase && diag.Severity == SeverityError {
			n++
		}
	}
	return n
}

// ConsoleReporter prints diagnostics in the classic Lox format.
type ConsoleReporter struct {
	W io.Writer
}

func (r ConsoleReporter) ReportError(line int, where, message string) {
	fmt.Fprintf(r.W, "[line %d] Error%s: %s\n", line, where, message)
}

func (r ConsoleReporter) ReportRuntimeError(message string, line int) {
	fmt.Fprintf(r.W, "%s\n[line %d]\n", message, line)
}

// MultiReporter forwards every report to each non-nil reporter in order.
type MultiReporter []Reporter

func (m MultiReporter) ReportError(line int, where, message string) {
	for _, r := range m {
		if r != nil {
			r.ReportError(line, where, message)
		}
	}
}

func (m MultiReporter) ReportRuntimeError(message string, line int) {
	for _, r := range m {
		if r != nil {
			r.ReportRuntimeError(message, line)
		}
	}
}
