package ast

// Service is a `service` declaration.
type Service struct {
	Name    string
	Rpcs    []*Rpc
	Options []*Option
	Pos     Position
}

// Rpc is a single `rpc` method within a Service.
type Rpc struct {
	Name            string
	InputType       TypeRef
	OutputType      TypeRef
	ClientStreaming bool
	ServerStreaming bool
	Options         []*Option
	Pos             Position
}
