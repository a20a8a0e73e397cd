package ast

// ScalarKind enumerates the fifteen proto3 built-in primitive types.
type ScalarKind int

const (
	ScalarDouble ScalarKind = iota
	ScalarFloat
	ScalarInt32
	ScalarInt64
	ScalarUint32
	ScalarUint64
	ScalarSint32
	ScalarSint64
	ScalarFixed32
	ScalarFixed64
	ScalarSfixed32
	ScalarSfixed64
	ScalarBool
	ScalarString
	ScalarBytes
)

var scalarNames = [...]string{
	ScalarDouble:   "double",
	ScalarFloat:    "float",
	ScalarInt32:    "int32",
	ScalarInt64:    "int64",
	ScalarUint32:   "uint32",
	ScalarUint64:   "uint64",
	ScalarSint32:   "sint32",
	ScalarSint64:   "sint64",
	ScalarFixed32:  "fixed32",
	ScalarFixed64:  "fixed64",
	ScalarSfixed32: "sfixed32",
	ScalarSfixed64: "sfixed64",
	ScalarBool:     "bool",
	ScalarString:   "string",
	ScalarBytes:    "bytes",
}

func (k ScalarKind) String() string {
	if int(k) < 0 || int(k) >= len(scalarNames) {
		return "invalid"
	}
	return scalarNames[k]
}

// ScalarKindByName looks up a ScalarKind by its proto keyword, e.g. "int32".
func ScalarKindByName(name string) (ScalarKind, bool) {
	for k, n := range scalarNames {
		if n == name {
			return ScalarKind(k), true
		}
	}
	return 0, false
}

// mapKeyKinds is the set of scalar kinds legal as a map key type (spec
// invariant 5): every integral and the bool/string types, excluding the
// two floating-point kinds.
var mapKeyKinds = map[ScalarKind]bool{
	ScalarInt32:    true,
	ScalarInt64:    true,
	ScalarUint32:   true,
	ScalarUint64:   true,
	ScalarSint32:   true,
	ScalarSint64:   true,
	ScalarFixed32:  true,
	ScalarFixed64:  true,
	ScalarSfixed32: true,
	ScalarSfixed64: true,
	ScalarBool:     true,
	ScalarString:   true,
}

// IsValidMapKey reports whether k may be used as a map field's key type.
func IsValidMapKey(k ScalarKind) bool {
	return mapKeyKinds[k]
}

// TypeRef is a (possibly dotted, possibly fully-qualified) reference to a
// named message or enum type.
type TypeRef struct {
	Parts      []string
	LeadingDot bool
}

func (t TypeRef) String() string {
	s := ""
	if t.LeadingDot {
		s = "."
	}
	for i, p := range t.Parts {
		if i > 0 {
			s += "."
		}
		s += p
	}
	return s
}

// FieldTypeKind discriminates the three shapes a field's type can take.
type FieldTypeKind int

const (
	FieldTypeScalar FieldTypeKind = iota
	FieldTypeNamed
	FieldTypeMap
)

// FieldType is a sum type over a scalar, a named message/enum
// reference, or a map. Only the member matching Kind is meaningful.
type FieldType struct {
	Kind FieldTypeKind

	Scalar ScalarKind // Kind == FieldTypeScalar
	Named  TypeRef    // Kind == FieldTypeNamed

	MapKey   ScalarKind // Kind == FieldTypeMap
	MapValue *FieldType // Kind == FieldTypeMap; never itself a map
}

// Field is a single field declaration, either a direct message field or a
// member of a Oneof (in which case IsRepeated and IsOptional are always
// false).
type Field struct {
	Name       string
	Number     int32
	Type       FieldType
	IsRepeated bool
	IsOptional bool
	Options    []*Option

	Pos Position
}
