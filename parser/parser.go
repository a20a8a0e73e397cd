package parser

import (
	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/lexer"
	"github.com/protolex/proto3parse/reporter"
)

const maxNestingDepth = 100

// parser holds the mutable state of a single parse: the lexer it pulls
// tokens from and the one token of lookahead the grammar is built
// around. There is no backtracking; every production either consumes
// the current token or fails.
type parser struct {
	lex *lexer.Lexer
	cur lexer.Token

	// lexErr holds the error that produced cur when cur.Kind ==
	// lexer.Invalid. advance() defers surfacing it, rather than failing
	// immediately, because a stray character is most often met while the
	// grammar is mid-production expecting an identifier (a message,
	// field, or package name); only the production that actually reads
	// cur next has enough context to know whether InvalidName is the
	// better diagnostic than the lexer's raw UnexpectedCharacter.
	lexErr *reporter.ParserError
}

// Parse parses a single proto3 source file and returns its AST, or the
// first error encountered. Parsing stops at the first error: there is
// no error recovery, so a single misplaced token yields exactly one
// diagnostic rather than a cascade.
func Parse(input string) (*ast.FileNode, error) {
	p := &parser{lex: lexer.New(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	file, err := p.parseFile()
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (p *parser) advance() *reporter.ParserError {
	tok, err := p.lex.Next()
	if err != nil {
		if err.Kind == reporter.UnexpectedCharacter {
			p.cur = tok
			p.lexErr = err
			return nil
		}
		return err
	}
	p.cur = tok
	p.lexErr = nil
	return nil
}

func (p *parser) isPunct(r rune) bool {
	return p.cur.Kind == lexer.Punct && p.cur.Rune == r
}

func (p *parser) isIdent(text string) bool {
	return p.cur.Kind == lexer.Identifier && p.cur.Text == text
}

func (p *parser) isEOF() bool {
	return p.cur.Kind == lexer.EOF
}

func tokenDesc(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.EOF:
		return "end of file"
	case lexer.String:
		return "string literal"
	default:
		if tok.Text != "" {
			return tok.Text
		}
		return tok.Kind.String()
	}
}

// unexpected builds a diagnostic for the current token, given a
// human-readable description of what was expected instead. If cur is an
// unscannable token, the original lex error (e.g. UnexpectedCharacter)
// is more useful than a generic "unexpected token" message, so it's
// returned as-is.
func (p *parser) unexpected(want string) *reporter.ParserError {
	if p.cur.Kind == lexer.Invalid && p.lexErr != nil {
		return p.lexErr
	}
	if p.isEOF() {
		return reporter.Errorf(p.cur.Pos, reporter.UnexpectedEOF, "unexpected end of file, expected %s", want)
	}
	return reporter.Errorf(p.cur.Pos, reporter.UnexpectedToken, "unexpected %s, expected %s", tokenDesc(p.cur), want)
}

func (p *parser) expectPunct(r rune) (lexer.Token, *reporter.ParserError) {
	if !p.isPunct(r) {
		return lexer.Token{}, p.unexpected("'" + string(r) + "'")
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

func (p *parser) expectIdentText(text string) (lexer.Token, *reporter.ParserError) {
	if !p.isIdent(text) {
		return lexer.Token{}, p.unexpected("'" + text + "'")
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

func (p *parser) expectIdentifier() (lexer.Token, *reporter.ParserError) {
	if p.cur.Kind == lexer.Invalid {
		pos := p.cur.Pos
		msg := "invalid name: unscannable character"
		if p.lexErr != nil {
			pos = p.lexErr.Pos
			msg = "invalid name: " + p.lexErr.Message
		}
		return lexer.Token{}, reporter.Error(pos, reporter.InvalidName, msg)
	}
	if p.cur.Kind != lexer.Identifier {
		return lexer.Token{}, p.unexpected("identifier")
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

func (p *parser) expectInteger() (lexer.Token, *reporter.ParserError) {
	if p.cur.Kind != lexer.Integer {
		return lexer.Token{}, p.unexpected("integer literal")
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

func (p *parser) expectString() (lexer.Token, *reporter.ParserError) {
	if p.cur.Kind != lexer.String {
		return lexer.Token{}, p.unexpected("string literal")
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

// expectSemi consumes a terminating ';'. A missing statement terminator
// gets its own error kind rather than a generic "expected ';'"
// UnexpectedToken, so it doesn't reuse p.expectPunct.
func (p *parser) expectSemi() *reporter.ParserError {
	if !p.isPunct(';') {
		if p.isEOF() {
			return reporter.Error(p.cur.Pos, reporter.UnexpectedEOF, "unexpected end of file, expected ';'")
		}
		return reporter.Error(p.cur.Pos, reporter.MissingSemicolon, "missing ';'")
	}
	return p.advance()
}
