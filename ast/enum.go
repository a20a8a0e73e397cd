package ast

// Enum is an `enum` declaration. It is always non-empty: the parser
// rejects an enum body with no values before an *Enum is ever produced.
type Enum struct {
	Name     string
	Values   []*EnumValue
	Options  []*Option
	Reserved []*Reserved
	Pos      Position
}

// EnumValue is a single `name = number` entry in an enum body.
type EnumValue struct {
	Name    string
	Number  int32
	Options []*Option
	Pos     Position
}
