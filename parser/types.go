package parser

import (
	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/lexer"
	"github.com/protolex/proto3parse/reporter"
)

// parseTypeRef parses a (possibly dotted, possibly leading-dot-qualified)
// type reference such as ".foo.Bar" or "Baz". It is used for rpc
// request/response types and for named field types.
func (p *parser) parseTypeRef() (ast.TypeRef, *reporter.ParserError) {
	leadingDot := false
	if p.isPunct('.') {
		leadingDot = true
		if err := p.advance(); err != nil {
			return ast.TypeRef{}, err
		}
	}

	first, err := p.expectIdentifier()
	if err != nil {
		return ast.TypeRef{}, err
	}
	parts := []string{first.Text}

	for p.isPunct('.') {
		if err := p.advance(); err != nil {
			return ast.TypeRef{}, err
		}
		id, err := p.expectIdentifier()
		if err != nil {
			return ast.TypeRef{}, err
		}
		parts = append(parts, id.Text)
	}

	return ast.TypeRef{Parts: parts, LeadingDot: leadingDot}, nil
}

// parseFieldType parses a field's type: a scalar keyword, a map<K, V>
// type (only when allowMap is set, since a map value may not itself be
// a map), or a named message/enum reference.
func (p *parser) parseFieldType(allowMap bool) (ast.FieldType, *reporter.ParserError) {
	if allowMap && p.isIdent("map") {
		return p.parseMapType()
	}

	if p.cur.Kind == lexer.Identifier {
		if scalar, ok := ast.ScalarKindByName(p.cur.Text); ok {
			if err := p.advance(); err != nil {
				return ast.FieldType{}, err
			}
			return ast.FieldType{Kind: ast.FieldTypeScalar, Scalar: scalar}, nil
		}
	}

	ref, err := p.parseTypeRef()
	if err != nil {
		return ast.FieldType{}, err
	}
	return ast.FieldType{Kind: ast.FieldTypeNamed, Named: ref}, nil
}

func (p *parser) parseMapType() (ast.FieldType, *reporter.ParserError) {
	if err := p.advance(); err != nil { // consume "map"
		return ast.FieldType{}, err
	}
	if _, err := p.expectPunct('<'); err != nil {
		return ast.FieldType{}, err
	}

	keyTok, err := p.expectIdentifier()
	if err != nil {
		return ast.FieldType{}, err
	}
	keyKind, ok := ast.ScalarKindByName(keyTok.Text)
	if !ok || !ast.IsValidMapKey(keyKind) {
		return ast.FieldType{}, reporter.Errorf(keyTok.Pos, reporter.InvalidMapKey, "invalid map key type %q", keyTok.Text)
	}

	if _, err := p.expectPunct(','); err != nil {
		return ast.FieldType{}, err
	}

	if p.isIdent("map") {
		return ast.FieldType{}, reporter.Error(p.cur.Pos, reporter.InvalidMapValue, "map value type cannot itself be a map")
	}
	valueType, err := p.parseFieldType(false)
	if err != nil {
		return ast.FieldType{}, err
	}

	if _, err := p.expectPunct('>'); err != nil {
		return ast.FieldType{}, err
	}

	return ast.FieldType{Kind: ast.FieldTypeMap, MapKey: keyKind, MapValue: &valueType}, nil
}
