package reporter

import (
	"fmt"

	"github.com/protolex/proto3parse/ast"
)

// ParserError is the single error type produced by lexer.Lexer and
// parser.Parse. It carries the kind of failure, drawn from a closed
// taxonomy, a human-readable message, and the source position at which
// the failure was detected.
type ParserError struct {
	Kind    ErrorKind
	Message string
	Pos     ast.Position
}

// Error implements the error interface. The position always precedes the
// message, e.g. "12:3: duplicate field number 1".
func (e *ParserError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Errorf builds a *ParserError at pos with the given kind, formatting the
// message the way fmt.Sprintf would.
func Errorf(pos ast.Position, kind ErrorKind, format string, args ...any) *ParserError {
	return &ParserError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}

// Error builds a *ParserError at pos with the given kind and a literal
// message.
func Error(pos ast.Position, kind ErrorKind, message string) *ParserError {
	return &ParserError{Kind: kind, Message: message, Pos: pos}
}
