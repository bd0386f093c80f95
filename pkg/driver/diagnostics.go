package driver

import (
	"fmt"
	"strings"

	"lox/interpreter-go/pkg/interpreter"
)

// DiagnosticSeverity captures diagnostic levels.
type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
)

// DiagnosticPhase names the pipeline stage that produced a diagnostic.
type DiagnosticPhase string

const (
	PhaseParse   DiagnosticPhase = "parser"
	PhaseRuntime DiagnosticPhase = "runtime"
)

// DiagnosticLocation references a source line for diagnostics.
type DiagnosticLocation struct {
	Path string
	Line int
}

// Diagnostic is one reported problem. Where is the parser's token context
// (" at end", " at 'x'") and is empty for runtime and lexical errors.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Phase    DiagnosticPhase
	Message  string
	Where    string
	Location DiagnosticLocation
}

// DiagnosticError wraps a diagnostic for error handling.
type DiagnosticError struct {
	Diagnostic Diagnostic
}

func (e *DiagnosticError) Error() string {
	return DescribeDiagnostic(e.Diagnostic)
}

// DescribeDiagnostic formats a diagnostic for CLI output.
func DescribeDiagnostic(diag Diagnostic) string {
	if diag.Phase == PhaseRuntime {
		return interpreter.DescribeRuntimeDiagnostic(interpreter.RuntimeDiagnostic{
			Message: diag.Message,
			Path:    diag.Location.Path,
			Line:    diag.Location.Line,
		})
	}
	message := strings.TrimSpace(diag.Message)
	if strings.HasPrefix(message, "parser:") {
		message = strings.TrimSpace(strings.TrimPrefix(message, "parser:"))
	}
	prefix := "parser: "
	if diag.Severity == SeverityWarning {
		prefix = "warning: parser: "
	}
	location := formatDiagnosticLocation(diag.Location) + diag.Where
	if location != "" {
		return fmt.Sprintf("%s%s: %s", prefix, strings.TrimSpace(location), message)
	}
	return prefix + message
}

func formatDiagnosticLocation(loc DiagnosticLocation) string {
	path := strings.TrimSpace(loc.Path)
	switch {
	case path != "" && loc.Line > 0:
		return fmt.Sprintf("%s:%d", path, loc.Line)
	case path != "":
		return path
	case loc.Line > 0:
		return fmt.Sprintf("line %d", loc.Line)
	default:
		return ""
	}
}
