// Package ast defines the Abstract Syntax Tree produced by parsing a
// proto3 source file.
//
// Every node in the tree is a plain, exported struct with exported fields
// and no behavior beyond construction and equality: the AST is a passive
// data model, not an object graph. Once a *FileNode is returned from
// parser.Parse, every slice it transitively reaches is considered
// immutable; callers should not mutate it in place.
//
// Ordered lists preserve source order. Sum-typed fields (Field.Type,
// Option.Value, Reserved entries) are modeled as tagged structs with a
// Kind discriminator rather than interface hierarchies, so callers can
// switch on Kind and access the relevant fields directly.
//
// This package has no dependency on how the tree was produced; it does
// not know about tokens, comments, or source text. Position information
// is limited to a line/column pair per declaration, enough to report
// errors against, not enough to losslessly re-render the source.
package ast
