package interpreter

import (
	"fmt"
	"strings"

	"lox/interpreter-go/pkg/runtime"
)

// RuntimeDiagnostic is the structured form of a failed run.
type RuntimeDiagnostic struct {
	Message string
	Path    string
	Line    int
	// Lexeme is the token the failure is attributed to, when known.
	Lexeme string
}

// BuildRuntimeDiagnostic converts err into a diagnostic. Errors that are not
// runtime errors keep their message and carry no location.
func BuildRuntimeDiagnostic(err error) RuntimeDiagnostic {
	if err == nil {
		return RuntimeDiagnostic{}
	}
	if rtErr, ok := runtime.AsRuntimeError(err); ok {
		return RuntimeDiagnostic{
			Message: rtErr.Message,
			Line:    rtErr.Line(),
			Lexeme:  rtErr.Token.Lexeme,
		}
	}
	return RuntimeDiagnostic{Message: err.Error()}
}

// DescribeRuntimeDiagnostic formats a diagnostic for CLI output.
func DescribeRuntimeDiagnostic(diag RuntimeDiagnostic) string {
	message := strings.TrimSpace(diag.Message)
	if strings.HasPrefix(message, "runtime:") {
		message = strings.TrimSpace(strings.TrimPrefix(message, "runtime:"))
	}
	location := formatRuntimeLocation(diag.Path, diag.Line)
	if location == "" {
		return "runtime: " + message
	}
	return fmt.Sprintf("runtime: %s: %s", location, message)
}

func formatRuntimeLocation(path string, line int) string {
	path = strings.TrimSpace(path)
	switch {
	case path != "" && line > 0:
		return fmt.Sprintf("%s:%d", path, line)
	case path != "":
		return path
	case line > 0:
		return fmt.Sprintf("line %d", line)
	default:
		return ""
	}
}
