package parser

import (
	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/internal/interval"
	"github.com/protolex/proto3parse/reporter"
)

// fieldScope tracks field numbers, field names, and reserved ranges/names
// across an entire message body, including its oneofs: a field and a
// oneof member collide exactly as two direct fields would, so both
// kinds of declaration feed the same scope. A field/reservation collision
// is detected in either order — addNumber/addName check against
// reservations already seen, and addReserved* check against fields already
// seen — and is reported at the field's position in both cases.
type fieldScope struct {
	numbers        map[int32]ast.Position
	names          map[string]ast.Position
	reservedRanges interval.Map[int32, ast.Position]
	reservedNames  map[string]ast.Position
}

func newFieldScope() *fieldScope {
	return &fieldScope{
		numbers:       map[int32]ast.Position{},
		names:         map[string]ast.Position{},
		reservedNames: map[string]ast.Position{},
	}
}

func (s *fieldScope) addNumber(n int32, pos ast.Position) *reporter.ParserError {
	if _, ok := s.numbers[n]; ok {
		return reporter.Errorf(pos, reporter.DuplicateFieldNumber, "duplicate field number %d", n)
	}
	if iv := s.reservedRanges.Get(n); iv.Value != nil {
		return reporter.Errorf(pos, reporter.ReservedFieldCollision, "field number %d is reserved", n)
	}
	s.numbers[n] = pos
	return nil
}

func (s *fieldScope) addName(name string, pos ast.Position) *reporter.ParserError {
	if _, ok := s.names[name]; ok {
		return reporter.Errorf(pos, reporter.DuplicateFieldName, "duplicate field name %q", name)
	}
	if _, ok := s.reservedNames[name]; ok {
		return reporter.Errorf(pos, reporter.ReservedNameCollision, "field name %q is reserved", name)
	}
	s.names[name] = pos
	return nil
}

func (s *fieldScope) addReservedRange(lo, hi int32, pos ast.Position) *reporter.ParserError {
	overlap, rel := s.reservedRanges.Insert(lo, hi, pos)
	if overlap.Value != nil {
		return reporter.Errorf(pos, reporter.ReservedFieldCollision, "reserved range %d to %d %s earlier reserved range %d to %d", lo, hi, relationVerb(rel), overlap.Start, overlap.End)
	}
	for n, fpos := range s.numbers {
		if n >= lo && n <= hi {
			return reporter.Errorf(fpos, reporter.ReservedFieldCollision, "field number %d collides with reserved range %d to %d", n, lo, hi)
		}
	}
	return nil
}

func (s *fieldScope) addReservedName(name string, pos ast.Position) *reporter.ParserError {
	if fpos, ok := s.names[name]; ok {
		return reporter.Errorf(fpos, reporter.ReservedNameCollision, "field name %q collides with a reserved name", name)
	}
	s.reservedNames[name] = pos
	return nil
}

// enumScope is fieldScope's counterpart for enum bodies. Value-number
// duplication is checked separately and only once the enum's closing
// brace has been reached, since the rule ("first value must be zero;
// duplicate numbers require allow_alias = true") depends on an option
// that may appear anywhere in the body.
type enumScope struct {
	names          map[string]ast.Position
	reservedRanges interval.Map[int32, ast.Position]
	reservedNames  map[string]ast.Position
}

func newEnumScope() *enumScope {
	return &enumScope{
		names:         map[string]ast.Position{},
		reservedNames: map[string]ast.Position{},
	}
}

func (s *enumScope) checkNumber(n int32, pos ast.Position) *reporter.ParserError {
	if iv := s.reservedRanges.Get(n); iv.Value != nil {
		return reporter.Errorf(pos, reporter.ReservedFieldCollision, "enum value number %d is reserved", n)
	}
	return nil
}

func (s *enumScope) addName(name string, pos ast.Position) *reporter.ParserError {
	if _, ok := s.names[name]; ok {
		return reporter.Errorf(pos, reporter.DuplicateFieldName, "duplicate enum value name %q", name)
	}
	if _, ok := s.reservedNames[name]; ok {
		return reporter.Errorf(pos, reporter.ReservedNameCollision, "enum value name %q is reserved", name)
	}
	s.names[name] = pos
	return nil
}

func (s *enumScope) addReservedRange(lo, hi int32, pos ast.Position) *reporter.ParserError {
	overlap, rel := s.reservedRanges.Insert(lo, hi, pos)
	if overlap.Value != nil {
		return reporter.Errorf(pos, reporter.ReservedFieldCollision, "reserved range %d to %d %s earlier reserved range %d to %d", lo, hi, relationVerb(rel), overlap.Start, overlap.End)
	}
	return nil
}

func (s *enumScope) addReservedName(name string, pos ast.Position) *reporter.ParserError {
	if fpos, ok := s.names[name]; ok {
		return reporter.Errorf(fpos, reporter.ReservedNameCollision, "enum value name %q collides with a reserved name", name)
	}
	s.reservedNames[name] = pos
	return nil
}

// relationVerb turns an interval.Relation into the verb phrase that
// reads naturally in a collision message.
func relationVerb(rel interval.Relation) string {
	switch rel {
	case interval.Contains:
		return "contains an"
	case interval.ContainedBy:
		return "is contained by an"
	default:
		return "overlaps an"
	}
}
