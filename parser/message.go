package parser

import (
	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/lexer"
	"github.com/protolex/proto3parse/reporter"
)

// addTypeName registers name in a per-scope namespace shared by nested
// messages and enums (they may not collide with each other), returning
// a DuplicateTypeName error on collision.
func addTypeName(seen map[string]ast.Position, name string, pos ast.Position) *reporter.ParserError {
	if _, ok := seen[name]; ok {
		return reporter.Errorf(pos, reporter.DuplicateTypeName, "duplicate type name %q", name)
	}
	seen[name] = pos
	return nil
}

// parseMessage parses a `message Name { ... }` declaration. depth is the
// nesting depth of this message (1 for a top-level message), used to
// enforce the maximum nesting depth.
func (p *parser) parseMessage(depth int) (*ast.Message, *reporter.ParserError) {
	start := p.cur.Pos
	if depth > maxNestingDepth {
		return nil, reporter.Errorf(start, reporter.MaxNestingDepthExceeded, "message nesting exceeds the maximum depth of %d", maxNestingDepth)
	}
	if _, err := p.expectIdentText("message"); err != nil {
		return nil, err
	}
	name, _, err := p.expectUpperName("message")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct('{'); err != nil {
		return nil, err
	}

	fields := newFieldScope()
	typeNames := map[string]ast.Position{}

	var (
		msgFields []*ast.Field
		oneofs    []*ast.Oneof
		messages  []*ast.Message
		enums     []*ast.Enum
		options   []*ast.Option
		reserved  []*ast.Reserved
	)

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
			options = append(options, opt)

		case p.isIdent("oneof"):
			oneof, err := p.parseOneof(fields)
			if err != nil {
				return nil, err
			}
			oneofs = append(oneofs, oneof)

		case p.isIdent("reserved"):
			rs, err := p.parseReservedStatement()
			if err != nil {
				return nil, err
			}
			for _, r := range rs {
				if r.Kind == ast.ReservedNumberRange {
					if err := fields.addReservedRange(r.Lo, r.Hi, r.Pos); err != nil {
						return nil, err
					}
				} else {
					if err := fields.addReservedName(r.Name, r.Pos); err != nil {
						return nil, err
					}
				}
			}
			reserved = append(reserved, rs...)

		case p.isIdent("message"):
			nested, err := p.parseMessage(depth + 1)
			if err != nil {
				return nil, err
			}
			if err := addTypeName(typeNames, nested.Name, nested.Pos); err != nil {
				return nil, err
			}
			messages = append(messages, nested)

		case p.isIdent("enum"):
			nested, err := p.parseEnum()
			if err != nil {
				return nil, err
			}
			if err := addTypeName(typeNames, nested.Name, nested.Pos); err != nil {
				return nil, err
			}
			enums = append(enums, nested)

		case p.cur.Kind == lexer.Identifier:
			field, err := p.parseField(true)
			if err != nil {
				return nil, err
			}
			if err := fields.addNumber(field.Number, field.Pos); err != nil {
				return nil, err
			}
			if err := fields.addName(field.Name, field.Pos); err != nil {
				return nil, err
			}
			msgFields = append(msgFields, field)

		default:
			return nil, p.unexpected("field, message, enum, oneof, reserved, or option declaration")
		}
	}
	if _, err := p.expectPunct('}'); err != nil {
		return nil, err
	}

	return &ast.Message{
		Name:     name,
		Fields:   msgFields,
		Oneofs:   oneofs,
		Messages: messages,
		Enums:    enums,
		Options:  options,
		Reserved: reserved,
		Pos:      start,
	}, nil
}
