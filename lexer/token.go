// Package lexer turns proto3 source text into a stream of positioned
// tokens. It performs no grammar validation beyond recognizing token
// shapes; the parser package assigns meaning (including contextual
// keyword recognition) to the tokens this package produces.
package lexer

import "github.com/protolex/proto3parse/ast"

// Kind classifies a Token.
type Kind int

const (
	EOF Kind = iota
	Identifier
	Integer
	Float
	String
	Punct
	// Invalid marks a token whose text could not be scanned at all (e.g. a
	// stray non-ASCII character). It carries the position of the failure
	// so a caller can still report it; Text and the literal fields are
	// unset.
	Invalid
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "eof"
	case Identifier:
		return "identifier"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Punct:
		return "punctuation"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Token is one lexical unit along with its source position and, for
// literal kinds, its decoded value.
type Token struct {
	Kind Kind
	// Text is the raw source text for Identifier and Punct tokens, and
	// the decoded value for String tokens.
	Text string

	Int   int64
	Float float64

	// Rune is set for Punct tokens to the single punctuation character.
	Rune rune

	Pos ast.Position
}
