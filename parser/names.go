package parser

import (
	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/reporter"
)

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isLowerOrUnderscore(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z')
}

// nameError builds an InvalidName error. The message names both the
// production ("message", "field", ...) and the offending text so
// callers can format a useful diagnostic without re-deriving which
// rule fired.
func nameError(pos ast.Position, kind, text string) *reporter.ParserError {
	return reporter.Errorf(pos, reporter.InvalidName, "invalid %s name %q", kind, text)
}

func (p *parser) expectUpperName(kind string) (string, ast.Position, *reporter.ParserError) {
	tok, err := p.expectIdentifier()
	if err != nil {
		return "", ast.Position{}, err
	}
	if tok.Text == "" || !isUpper(rune(tok.Text[0])) {
		return "", tok.Pos, nameError(tok.Pos, kind, tok.Text)
	}
	return tok.Text, tok.Pos, nil
}

func (p *parser) expectLowerName(kind string) (string, ast.Position, *reporter.ParserError) {
	tok, err := p.expectIdentifier()
	if err != nil {
		return "", ast.Position{}, err
	}
	if tok.Text == "" || !isLowerOrUnderscore(rune(tok.Text[0])) {
		return "", tok.Pos, nameError(tok.Pos, kind, tok.Text)
	}
	return tok.Text, tok.Pos, nil
}
