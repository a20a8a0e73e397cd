package lexer

import (
	"strconv"
	"strings"

	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/reporter"
)

// Lexer scans proto3 source text one token at a time. It holds the
// whole input in memory as a rune slice: a single source file is always
// small enough to fit, and the grammar never needs to stream past the
// end of available input.
type Lexer struct {
	src       []rune
	pos       int
	line, col int
}

// New creates a Lexer over the given source text.
func New(input string) *Lexer {
	return &Lexer{src: []rune(input), line: 1, col: 1}
}

type mark struct {
	pos, line, col int
}

func (l *Lexer) save() mark {
	return mark{l.pos, l.line, l.col}
}

func (l *Lexer) restore(m mark) {
	l.pos, l.line, l.col = m.pos, m.line, m.col
}

func (l *Lexer) curPos() ast.Position {
	return ast.Position{Line: l.line, Column: l.col}
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *Lexer) peekAt(offset int) (rune, bool) {
	if l.pos+offset >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos+offset], true
}

func (l *Lexer) advance() (rune, bool) {
	r, ok := l.peek()
	if !ok {
		return 0, false
	}
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r, true
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Next scans and returns the next token, skipping whitespace and
// comments. The final token of any input is Kind == EOF; calling Next
// again after EOF keeps returning EOF.
func (l *Lexer) Next() (Token, *reporter.ParserError) {
	for {
		if err := l.skipWhitespaceAndComments(); err != nil {
			return Token{}, err
		}

		start := l.curPos()
		r, ok := l.peek()
		if !ok {
			return Token{Kind: EOF, Pos: start}, nil
		}

		switch {
		case r == '.':
			if next, ok := l.peekAt(1); ok && isDigit(next) {
				return l.lexNumber(start)
			}
			l.advance()
			return Token{Kind: Punct, Text: ".", Rune: '.', Pos: start}, nil

		case isIdentStart(r):
			return l.lexIdentifier(start), nil

		case isDigit(r):
			return l.lexNumber(start)

		case r == '"' || r == '\'':
			return l.lexString(start, r)

		case r > 127:
			l.advance()
			return Token{Kind: Invalid, Pos: start}, reporter.Errorf(start, reporter.UnexpectedCharacter, "unexpected character %q", r)

		default:
			l.advance()
			return Token{Kind: Punct, Text: string(r), Rune: r, Pos: start}, nil
		}
	}
}

func (l *Lexer) skipWhitespaceAndComments() *reporter.ParserError {
	for {
		r, ok := l.peek()
		if !ok {
			return nil
		}
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\f' || r == '\v' {
			l.advance()
			continue
		}
		if r == '/' {
			if next, ok := l.peekAt(1); ok && next == '/' {
				l.advance()
				l.advance()
				for {
					c, ok := l.peek()
					if !ok || c == '\n' {
						break
					}
					l.advance()
				}
				continue
			}
			if next, ok := l.peekAt(1); ok && next == '*' {
				start := l.curPos()
				l.advance()
				l.advance()
				closed := false
				for {
					c, ok := l.advance()
					if !ok {
						break
					}
					if c == '*' {
						if c2, ok := l.peek(); ok && c2 == '/' {
							l.advance()
							closed = true
							break
						}
					}
				}
				if !closed {
					return reporter.Error(start, reporter.UnterminatedComment, "unterminated block comment")
				}
				continue
			}
		}
		return nil
	}
}

func (l *Lexer) lexIdentifier(start ast.Position) Token {
	startPos := l.pos
	for {
		r, ok := l.peek()
		if !ok || !isIdentCont(r) {
			break
		}
		l.advance()
	}
	text := string(l.src[startPos:l.pos])
	return Token{Kind: Identifier, Text: text, Pos: start}
}

func (l *Lexer) lexNumber(start ast.Position) (Token, *reporter.ParserError) {
	startPos := l.pos

	if r, ok := l.peek(); ok && r == '0' {
		if next, ok := l.peekAt(1); ok && (next == 'x' || next == 'X') {
			l.advance()
			l.advance()
			hexStart := l.pos
			for {
				r, ok := l.peek()
				if !ok || !isHexDigit(r) {
					break
				}
				l.advance()
			}
			text := string(l.src[hexStart:l.pos])
			if text == "" {
				return Token{}, reporter.Error(start, reporter.InvalidNumber, "invalid hexadecimal integer literal")
			}
			v, err := strconv.ParseUint(text, 16, 64)
			if err != nil {
				return Token{}, reporter.Errorf(start, reporter.InvalidNumber, "invalid hexadecimal integer literal %q", text)
			}
			return Token{Kind: Integer, Text: string(l.src[startPos:l.pos]), Int: int64(v), Pos: start}, nil
		}
	}

	isFloat := false
	allowExpSign := false
	for {
		r, ok := l.peek()
		if !ok {
			break
		}
		if (r == '+' || r == '-') && !allowExpSign {
			break
		}
		allowExpSign = false
		if r == '.' {
			isFloat = true
			l.advance()
			continue
		}
		if r == 'e' || r == 'E' {
			isFloat = true
			allowExpSign = true
			l.advance()
			continue
		}
		if isDigit(r) || r == '+' || r == '-' {
			l.advance()
			continue
		}
		break
	}
	text := string(l.src[startPos:l.pos])

	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, reporter.Errorf(start, reporter.InvalidNumber, "invalid floating-point literal %q", text)
		}
		return Token{Kind: Float, Text: text, Float: v, Pos: start}, nil
	}

	// Decimal or octal integer. strconv's base-0 parsing treats a leading
	// "0" as octal, matching the proto3 grammar.
	v, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		return Token{}, reporter.Errorf(start, reporter.InvalidNumber, "invalid integer literal %q", text)
	}
	return Token{Kind: Integer, Text: text, Int: int64(v), Pos: start}, nil
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (l *Lexer) lexString(start ast.Position, quote rune) (Token, *reporter.ParserError) {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		r, ok := l.advance()
		if !ok {
			return Token{}, reporter.Error(start, reporter.UnterminatedString, "unterminated string literal")
		}
		if r == quote {
			return Token{Kind: String, Text: sb.String(), Pos: start}, nil
		}
		if r == '\n' {
			return Token{}, reporter.Error(start, reporter.UnterminatedString, "unterminated string literal: newline before closing quote")
		}
		if r != '\\' {
			sb.WriteRune(r)
			continue
		}

		esc, ok := l.advance()
		if !ok {
			return Token{}, reporter.Error(start, reporter.UnterminatedString, "unterminated string literal")
		}
		switch esc {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case '\'':
			sb.WriteByte('\'')
		case '0':
			sb.WriteByte(0)
		case 'x', 'X':
			hexStart := l.pos
			for i := 0; i < 2; i++ {
				r, ok := l.peek()
				if !ok || !isHexDigit(r) {
					break
				}
				l.advance()
			}
			hex := string(l.src[hexStart:l.pos])
			if hex == "" {
				return Token{}, reporter.Error(start, reporter.InvalidEscape, `invalid hex escape: \x requires at least one hex digit`)
			}
			v, _ := strconv.ParseInt(hex, 16, 32)
			sb.WriteByte(byte(v))
		case 'u':
			v, perr := l.readUnicodeEscape(start, 4)
			if perr != nil {
				return Token{}, perr
			}
			sb.WriteRune(v)
		default:
			return Token{}, reporter.Errorf(start, reporter.InvalidEscape, "invalid escape sequence %q", "\\"+string(esc))
		}
	}
}

func (l *Lexer) readUnicodeEscape(start ast.Position, digits int) (rune, *reporter.ParserError) {
	hexStart := l.pos
	for i := 0; i < digits; i++ {
		r, ok := l.peek()
		if !ok || !isHexDigit(r) {
			return 0, reporter.Errorf(start, reporter.InvalidEscape, `invalid unicode escape: \u requires %d hex digits`, digits)
		}
		l.advance()
	}
	hex := string(l.src[hexStart:l.pos])
	v, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0, reporter.Errorf(start, reporter.InvalidEscape, "invalid unicode escape %q", hex)
	}
	return rune(v), nil
}
