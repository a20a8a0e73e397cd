package parser

import (
	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/reporter"
)

// parseEnum parses an `enum Name { ... }` declaration. Duplicate-value
// detection is deferred until the closing brace: whether a duplicate
// number is an error depends on the enum's "allow_alias" option, which
// may be declared anywhere in the body, so the rule can't be checked as
// each value streams in.
func (p *parser) parseEnum() (*ast.Enum, *reporter.ParserError) {
	start := p.cur.Pos
	if _, err := p.expectIdentText("enum"); err != nil {
		return nil, err
	}
	name, _, err := p.expectUpperName("enum")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct('{'); err != nil {
		return nil, err
	}

	scope := newEnumScope()
	var values []*ast.EnumValue
	var options []*ast.Option
	var reserved []*ast.Reserved
	allowAlias := false

	for !p.isPunct('}') {
		switch {
		case p.isEOF():
			return nil, p.unexpected("'}'")

		case p.isPunct(';'):
			if err := p.advance(); err != nil {
				return nil, err
			}

		case p.isIdent("option"):
			opt, err := p.parseOptionStatement()
			if err != nil {
				return nil, err
			}
			if opt.Name.String() == "allow_alias" {
				if opt.Value.Kind != ast.ValueBool {
					return nil, reporter.Error(opt.Pos, reporter.InvalidOptionValue, "allow_alias expects a bool value")
				}
				allowAlias = opt.Value.Bool
			}
			options = append(options, opt)

		case p.isIdent("reserved"):
			rs, err := p.parseReservedStatement()
			if err != nil {
				return nil, err
			}
			for _, r := range rs {
				if r.Kind == ast.ReservedNumberRange {
					if err := scope.addReservedRange(r.Lo, r.Hi, r.Pos); err != nil {
						return nil, err
					}
				} else {
					if err := scope.addReservedName(r.Name, r.Pos); err != nil {
						return nil, err
					}
				}
			}
			reserved = append(reserved, rs...)

		default:
			ev, err := p.parseEnumValue(scope)
			if err != nil {
				return nil, err
			}
			values = append(values, ev)
		}
	}
	if _, err := p.expectPunct('}'); err != nil {
		return nil, err
	}

	if len(values) == 0 {
		return nil, reporter.Error(start, reporter.EmptyEnum, "enum must declare at least one value")
	}
	if values[0].Number != 0 {
		return nil, reporter.Errorf(values[0].Pos, reporter.EnumFirstValueNotZero, "the first enum value must be zero, got %d", values[0].Number)
	}

	seen := map[int32]ast.Position{}
	for _, v := range values {
		if prev, ok := seen[v.Number]; ok && !allowAlias {
			_ = prev
			return nil, reporter.Errorf(v.Pos, reporter.DuplicateEnumValue, "duplicate enum value number %d requires allow_alias = true", v.Number)
		}
		seen[v.Number] = v.Pos
	}

	return &ast.Enum{Name: name, Values: values, Options: options, Reserved: reserved, Pos: start}, nil
}

func (p *parser) parseEnumValue(scope *enumScope) (*ast.EnumValue, *reporter.ParserError) {
	start := p.cur.Pos
	name, _, err := p.expectUpperishEnumValueName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct('='); err != nil {
		return nil, err
	}

	neg := false
	if p.isPunct('-') {
		neg = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	numTok, err := p.expectInteger()
	if err != nil {
		return nil, err
	}
	if numTok.Int > int64(maxFieldNumber) {
		return nil, reporter.Errorf(numTok.Pos, reporter.InvalidFieldNumber, "enum value number %d is out of range -%d..%d", numTok.Int, maxFieldNumber, maxFieldNumber)
	}
	number := int32(numTok.Int)
	if neg {
		number = -number
	}
	if err := validateFieldNumber(int32(numTok.Int), numTok.Pos, true); err != nil {
		return nil, err
	}
	if err := scope.checkNumber(number, numTok.Pos); err != nil {
		return nil, err
	}
	if err := scope.addName(name, start); err != nil {
		return nil, err
	}

	var options []*ast.Option
	if p.isPunct('[') {
		options, err = p.parseOptionBracketList()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectSemi(); err != nil {
		return nil, err
	}

	return &ast.EnumValue{Name: name, Number: number, Options: options, Pos: start}, nil
}

// expectUpperishEnumValueName parses an enum value's name. Proto3 enum
// values conventionally use SCREAMING_SNAKE_CASE, but the grammar only
// requires an identifier, with no separate case rule for enum values,
// so no case is enforced here beyond being a valid identifier.
func (p *parser) expectUpperishEnumValueName() (string, ast.Position, *reporter.ParserError) {
	tok, err := p.expectIdentifier()
	if err != nil {
		return "", ast.Position{}, err
	}
	return tok.Text, tok.Pos, nil
}
