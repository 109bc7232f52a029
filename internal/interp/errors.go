package interp

import (
	"github.com/cwbudde/go-lox/internal/errors"
	"github.com/cwbudde/go-lox/pkg/token"
)

// RuntimeError represents an evaluation failure: a type mismatch, an
// undefined variable or property, a bad call. It carries the offending
// token so the report names the source line.
type RuntimeError struct {
	Tok     token.Token
	Message string
}

func newRuntimeError(tok token.Token, message string) *RuntimeError {
	return &RuntimeError{Tok: tok, Message: message}
}

func (e *RuntimeError) Error() string {
	return errors.Format(e.Tok.Pos.Line, e.Tok.Literal, e.Message)
}

// returnSignal carries the value of a return statement up the evaluator to
// the enclosing user-function call. It travels through the error channel
// but is not an error: only FunctionValue.Call may consume it, and it never
// reaches the user.
type returnSignal struct {
	value Value
}

func (r *returnSignal) Error() string {
	return "return outside of function call"
}
