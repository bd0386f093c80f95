package runtime

import (
	"errors"
	"fmt"

	"lox/interpreter-go/pkg/token"
)

// RuntimeError is an evaluation failure tied to the token that caused it.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Line is the source line of the offending token.
func (e *RuntimeError) Line() int {
	return e.Token.Line
}

// Errorf builds a RuntimeError for tok.
func Errorf(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// AsRuntimeError unwraps err into a RuntimeError when possible.
func AsRuntimeError(err error) (*RuntimeError, bool) {
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		return rtErr, true
	}
	return nil, false
}

func undefinedVariable(name token.Token) *RuntimeError {
	return Errorf(name, "Undefined variable '%s'.", name.Lexeme)
}
