package parser

import (
	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/reporter"
)

const reservedRangeLo, reservedRangeHi int32 = 19000, 19999

// validateFieldNumber checks a field number, or the magnitude of an enum
// value number, against its fixed bounds: nonzero (enum values are exempt
// from this; their callers pass allowZero), within [1, 536870911], and
// outside the implementation-reserved 19000-19999 band.
func validateFieldNumber(n int32, pos ast.Position, allowZero bool) *reporter.ParserError {
	if n == 0 && !allowZero {
		return reporter.Error(pos, reporter.InvalidFieldNumber, "field number 0 is not allowed")
	}
	if n < 0 || n > maxFieldNumber {
		return reporter.Errorf(pos, reporter.InvalidFieldNumber, "field number %d is out of range 1..%d", n, maxFieldNumber)
	}
	if n >= reservedRangeLo && n <= reservedRangeHi {
		return reporter.Errorf(pos, reporter.InvalidFieldNumber, "field number %d falls in the reserved implementation range %d-%d", n, reservedRangeLo, reservedRangeHi)
	}
	return nil
}

// parseField parses one field declaration. allowLabel is false inside a
// oneof body, where "repeated", "optional", and a label-less declaration
// of a map type are all rejected by the grammar rather than the label
// simply defaulting to singular.
func (p *parser) parseField(allowLabel bool) (*ast.Field, *reporter.ParserError) {
	start := p.cur.Pos
	isRepeated, isOptional := false, false

	if p.isIdent("required") {
		return nil, reporter.Error(p.cur.Pos, reporter.RequiredNotAllowed, "the 'required' label does not exist in proto3")
	}
	if allowLabel {
		switch {
		case p.isIdent("repeated"):
			isRepeated = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.isIdent("optional"):
			isOptional = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	fieldType, err := p.parseFieldType(allowLabel)
	if err != nil {
		return nil, err
	}

	name, _, err := p.expectLowerName("field")
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunct('='); err != nil {
		return nil, err
	}

	numTok, err := p.expectInteger()
	if err != nil {
		return nil, err
	}
	if numTok.Int < 0 || numTok.Int > int64(maxFieldNumber) {
		return nil, reporter.Errorf(numTok.Pos, reporter.InvalidFieldNumber, "field number %d is out of range 1..%d", numTok.Int, maxFieldNumber)
	}
	number := int32(numTok.Int)
	if err := validateFieldNumber(number, numTok.Pos, false); err != nil {
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

	if fieldType.Kind == ast.FieldTypeMap && isRepeated {
		return nil, reporter.Error(start, reporter.InvalidMapValue, "map fields cannot be declared repeated")
	}

	return &ast.Field{
		Name:       name,
		Number:     number,
		Type:       fieldType,
		IsRepeated: isRepeated,
		IsOptional: isOptional,
		Options:    options,
		Pos:        start,
	}, nil
}
