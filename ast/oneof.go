package ast

// Oneof is a `oneof` union of fields, at most one of which may be set on
// the wire. Its fields never carry the `repeated` or `optional` label.
type Oneof struct {
	Name   string
	Fields []*Field
	Pos    Position
}
