package parser

import (
	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/lexer"
	"github.com/protolex/proto3parse/reporter"
)

// parseOptionStatement parses a top-level `option name = value;`
// declaration, as found at file, message, enum, service, and rpc scope.
func (p *parser) parseOptionStatement() (*ast.Option, *reporter.ParserError) {
	start := p.cur.Pos
	if _, err := p.expectIdentText("option"); err != nil {
		return nil, err
	}
	name, err := p.parseOptionName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct('='); err != nil {
		return nil, err
	}
	value, err := p.parseOptionValue()
	if err != nil {
		return nil, err
	}
	if err := p.expectSemi(); err != nil {
		return nil, err
	}
	return &ast.Option{Name: name, Value: value, Pos: start}, nil
}

// parseOptionAssignment parses one `name = value` entry of a `[ ... ]`
// field or enum-value option list: no leading "option" keyword, no
// trailing semicolon.
func (p *parser) parseOptionAssignment() (*ast.Option, *reporter.ParserError) {
	start := p.cur.Pos
	name, err := p.parseOptionName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct('='); err != nil {
		return nil, err
	}
	value, err := p.parseOptionValue()
	if err != nil {
		return nil, err
	}
	return &ast.Option{Name: name, Value: value, Pos: start}, nil
}

// parseOptionBracketList parses a `[ opt = val, opt = val ]` suffix
// attached to a field or enum value declaration.
func (p *parser) parseOptionBracketList() ([]*ast.Option, *reporter.ParserError) {
	if _, err := p.expectPunct('['); err != nil {
		return nil, err
	}
	var opts []*ast.Option
	for {
		opt, err := p.parseOptionAssignment()
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
		if p.isPunct(',') {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expectPunct(']'); err != nil {
		return nil, err
	}
	return opts, nil
}

func (p *parser) expectOptionNameIdent() (lexer.Token, *reporter.ParserError) {
	if p.cur.Kind != lexer.Identifier {
		if p.isEOF() {
			return lexer.Token{}, reporter.Error(p.cur.Pos, reporter.UnexpectedEOF, "unexpected end of file in option name")
		}
		return lexer.Token{}, reporter.Errorf(p.cur.Pos, reporter.InvalidOptionName, "invalid option name: expected identifier, got %q", tokenDesc(p.cur))
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

func (p *parser) parseOptionName() (ast.OptionName, *reporter.ParserError) {
	if p.isPunct('(') {
		if err := p.advance(); err != nil {
			return ast.OptionName{}, err
		}
		first, err := p.expectOptionNameIdent()
		if err != nil {
			return ast.OptionName{}, err
		}
		parts := []string{first.Text}
		for p.isPunct('.') {
			if err := p.advance(); err != nil {
				return ast.OptionName{}, err
			}
			id, err := p.expectOptionNameIdent()
			if err != nil {
				return ast.OptionName{}, err
			}
			parts = append(parts, id.Text)
		}
		if _, err := p.expectPunct(')'); err != nil {
			return ast.OptionName{}, err
		}
		var suffix []string
		for p.isPunct('.') {
			if err := p.advance(); err != nil {
				return ast.OptionName{}, err
			}
			id, err := p.expectOptionNameIdent()
			if err != nil {
				return ast.OptionName{}, err
			}
			suffix = append(suffix, id.Text)
		}
		return ast.OptionName{IsExtension: true, Parts: parts, Suffix: suffix}, nil
	}

	first, err := p.expectOptionNameIdent()
	if err != nil {
		return ast.OptionName{}, err
	}
	parts := []string{first.Text}
	for p.isPunct('.') {
		if err := p.advance(); err != nil {
			return ast.OptionName{}, err
		}
		id, err := p.expectOptionNameIdent()
		if err != nil {
			return ast.OptionName{}, err
		}
		parts = append(parts, id.Text)
	}
	return ast.OptionName{Parts: parts}, nil
}

func (p *parser) parseOptionValue() (ast.Value, *reporter.ParserError) {
	switch {
	case p.cur.Kind == lexer.String:
		sb := p.cur.Text
		if err := p.advance(); err != nil {
			return ast.Value{}, err
		}
		for p.cur.Kind == lexer.String {
			sb += p.cur.Text
			if err := p.advance(); err != nil {
				return ast.Value{}, err
			}
		}
		return ast.Value{Kind: ast.ValueString, Str: sb}, nil

	case p.cur.Kind == lexer.Integer:
		n := float64(p.cur.Int)
		if err := p.advance(); err != nil {
			return ast.Value{}, err
		}
		return ast.Value{Kind: ast.ValueNumber, Num: n}, nil

	case p.cur.Kind == lexer.Float:
		n := p.cur.Float
		if err := p.advance(); err != nil {
			return ast.Value{}, err
		}
		return ast.Value{Kind: ast.ValueNumber, Num: n}, nil

	case p.isPunct('-') || p.isPunct('+'):
		neg := p.isPunct('-')
		if err := p.advance(); err != nil {
			return ast.Value{}, err
		}
		switch p.cur.Kind {
		case lexer.Integer:
			n := float64(p.cur.Int)
			if neg {
				n = -n
			}
			if err := p.advance(); err != nil {
				return ast.Value{}, err
			}
			return ast.Value{Kind: ast.ValueNumber, Num: n}, nil
		case lexer.Float:
			n := p.cur.Float
			if neg {
				n = -n
			}
			if err := p.advance(); err != nil {
				return ast.Value{}, err
			}
			return ast.Value{Kind: ast.ValueNumber, Num: n}, nil
		default:
			return ast.Value{}, p.unexpected("number")
		}

	case p.cur.Kind == lexer.Identifier:
		switch p.cur.Text {
		case "true":
			if err := p.advance(); err != nil {
				return ast.Value{}, err
			}
			return ast.Value{Kind: ast.ValueBool, Bool: true}, nil
		case "false":
			if err := p.advance(); err != nil {
				return ast.Value{}, err
			}
			return ast.Value{Kind: ast.ValueBool, Bool: false}, nil
		default:
			ident := p.cur.Text
			if err := p.advance(); err != nil {
				return ast.Value{}, err
			}
			return ast.Value{Kind: ast.ValueIdentifier, Ident: ident}, nil
		}

	case p.isPunct('['):
		return p.parseArrayValue()

	case p.isPunct('{'):
		return p.parseMessageValue()

	default:
		return ast.Value{}, p.unexpected("option value")
	}
}

func (p *parser) parseArrayValue() (ast.Value, *reporter.ParserError) {
	if _, err := p.expectPunct('['); err != nil {
		return ast.Value{}, err
	}
	var vals []ast.Value
	for !p.isPunct(']') {
		v, err := p.parseOptionValue()
		if err != nil {
			return ast.Value{}, err
		}
		vals = append(vals, v)
		if p.isPunct(',') {
			if err := p.advance(); err != nil {
				return ast.Value{}, err
			}
			continue
		}
		break
	}
	if _, err := p.expectPunct(']'); err != nil {
		return ast.Value{}, err
	}
	return ast.Value{Kind: ast.ValueArray, Array: vals}, nil
}

func (p *parser) parseMessageValue() (ast.Value, *reporter.ParserError) {
	if _, err := p.expectPunct('{'); err != nil {
		return ast.Value{}, err
	}
	var fields []ast.MessageField
	for !p.isPunct('}') {
		var name string
		isExt := false
		if p.isPunct('[') {
			isExt = true
			if err := p.advance(); err != nil {
				return ast.Value{}, err
			}
			ref, err := p.parseTypeRef()
			if err != nil {
				return ast.Value{}, err
			}
			name = ref.String()
			if _, err := p.expectPunct(']'); err != nil {
				return ast.Value{}, err
			}
		} else {
			tok, err := p.expectIdentifier()
			if err != nil {
				return ast.Value{}, err
			}
			name = tok.Text
		}
		if _, err := p.expectPunct(':'); err != nil {
			return ast.Value{}, err
		}
		val, err := p.parseOptionValue()
		if err != nil {
			return ast.Value{}, err
		}
		fields = append(fields, ast.MessageField{Name: name, IsExtension: isExt, Value: val})
		if p.isPunct(',') || p.isPunct(';') {
			if err := p.advance(); err != nil {
				return ast.Value{}, err
			}
		}
	}
	if _, err := p.expectPunct('}'); err != nil {
		return ast.Value{}, err
	}
	return ast.Value{Kind: ast.ValueMessage, Message: fields}, nil
}
