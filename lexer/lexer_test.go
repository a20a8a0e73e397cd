package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protolex/proto3parse/lexer"
	"github.com/protolex/proto3parse/reporter"
)

func allTokens(t *testing.T, input string) []lexer.Token {
	t.Helper()
	l := lexer.New(input)
	var toks []lexer.Token
	for {
		tok, err := l.Next()
		require.Nil(t, err)
		toks = append(toks, tok)
		if tok.Kind == lexer.EOF {
			return toks
		}
	}
}

func TestLexer_Punctuation(t *testing.T) {
	toks := allTokens(t, "{ } ( ) [ ] , ; = . <>")
	var kinds []lexer.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []lexer.Kind{
		lexer.Punct, lexer.Punct, lexer.Punct, lexer.Punct, lexer.Punct, lexer.Punct,
		lexer.Punct, lexer.Punct, lexer.Punct, lexer.Punct, lexer.Punct, lexer.Punct,
		lexer.EOF,
	}, kinds)
}

func TestLexer_Identifiers(t *testing.T) {
	toks := allTokens(t, "foo Bar _baz qux123 message")
	require.Len(t, toks, 6)
	for i, want := range []string{"foo", "Bar", "_baz", "qux123", "message"} {
		assert.Equal(t, lexer.Identifier, toks[i].Kind)
		assert.Equal(t, want, toks[i].Text)
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		input   string
		kind    lexer.Kind
		intVal  int64
		fltVal  float64
		isFloat bool
	}{
		{"12345", lexer.Integer, 12345, 0, false},
		{"012345", lexer.Integer, 5349, 0, false}, // octal
		{"0x2134", lexer.Integer, 0x2134, 0, false},
		{"123.456", lexer.Float, 0, 123.456, true},
		{".5", lexer.Float, 0, 0.5, true},
		{"1e10", lexer.Float, 0, 1e10, true},
		{"1.5e-3", lexer.Float, 0, 1.5e-3, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := allTokens(t, tt.input)
			require.Len(t, toks, 2)
			require.Equal(t, tt.kind, toks[0].Kind)
			if tt.isFloat {
				assert.InDelta(t, tt.fltVal, toks[0].Float, 1e-9)
			} else {
				assert.Equal(t, tt.intVal, toks[0].Int)
			}
		})
	}
}

func TestLexer_Strings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`"a\nb\tc"`, "a\nb\tc"},
		{`"quote\"inside"`, `quote"inside`},
		{`"\x41"`, "A"},
		{`"A"`, "A"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := allTokens(t, tt.input)
			require.Len(t, toks, 2)
			require.Equal(t, lexer.String, toks[0].Kind)
			assert.Equal(t, tt.want, toks[0].Text)
		})
	}
}

func TestLexer_Comments(t *testing.T) {
	toks := allTokens(t, "foo // line comment\nbar /* block\ncomment */ baz")
	require.Len(t, toks, 4)
	assert.Equal(t, "foo", toks[0].Text)
	assert.Equal(t, "bar", toks[1].Text)
	assert.Equal(t, "baz", toks[2].Text)
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		input string
		kind  reporter.ErrorKind
	}{
		{`"unterminated`, reporter.UnterminatedString},
		{"/* unterminated", reporter.UnterminatedComment},
		{`"bad \q escape"`, reporter.InvalidEscape},
		{"\"newline\nin string\"", reporter.UnterminatedString},
		{"测", reporter.UnexpectedCharacter},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := lexer.New(tt.input)
			var lastErr *reporter.ParserError
			for {
				tok, err := l.Next()
				if err != nil {
					lastErr = err
					break
				}
				if tok.Kind == lexer.EOF {
					break
				}
			}
			require.NotNil(t, lastErr)
			assert.Equal(t, tt.kind, lastErr.Kind)
		})
	}
}
