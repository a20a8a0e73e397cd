package parser

import (
	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/reporter"
)

// parseOneof parses a `oneof name { ... }` block. Its member fields feed
// the same fieldScope as the enclosing message's direct fields, so a
// oneof field and a sibling direct field collide on number or name
// exactly as two direct fields would.
func (p *parser) parseOneof(scope *fieldScope) (*ast.Oneof, *reporter.ParserError) {
	start := p.cur.Pos
	if _, err := p.expectIdentText("oneof"); err != nil {
		return nil, err
	}
	name, _, err := p.expectLowerName("oneof")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct('{'); err != nil {
		return nil, err
	}

	var fields []*ast.Field
	for !p.isPunct('}') {
		if p.isEOF() {
			return nil, p.unexpected("'}'")
		}
		field, err := p.parseField(false)
		if err != nil {
			return nil, err
		}
		if err := scope.addNumber(field.Number, field.Pos); err != nil {
			return nil, err
		}
		if err := scope.addName(field.Name, field.Pos); err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	if _, err := p.expectPunct('}'); err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, reporter.Error(start, reporter.EmptyOneof, "oneof must declare at least one field")
	}

	return &ast.Oneof{Name: name, Fields: fields, Pos: start}, nil
}
