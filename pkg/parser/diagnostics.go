package parser

import (
	"fmt"

	"lox/interpreter-go/pkg/token"
)

// ErrorReporter receives syntax errors as soon as they are found. where is
// " at end" for the EOF token and " at 'lexeme'" otherwise.
type ErrorReporter interface {
	ReportError(line int, where, message string)
}

// ReporterFunc adapts a function to ErrorReporter.
type ReporterFunc func(line int, where, message string)

func (f ReporterFunc) ReportError(line int, where, message string) {
	f(line, where, message)
}

// ParseError is a syntax error anchored at the offending token.
type ParseError struct {
	Token   token.Token
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Token.Line, e.Where(), e.Message)
}

// Line is the source line of the offending token.
func (e *ParseError) Line() int {
	return e.Token.Line
}

// Where describes the offending token for error messages.
func (e *ParseError) Where() string {
	return whereOf(e.Token)
}

func whereOf(tok token.Token) string {
	if tok.Kind == token.EOF {
		return " at end"
	}
	return fmt.Sprintf(" at '%s'", tok.Lexeme)
}
