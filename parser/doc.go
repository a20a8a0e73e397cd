// Package parser is a hand-written recursive-descent parser for proto3
// source files. It consumes the token stream produced by the lexer
// package and produces an *ast.FileNode, or the first reporter.ParserError
// encountered: the parser is fail-fast and performs no error recovery.
//
// Semantic validation that cannot be expressed in the grammar — field
// number ranges, reserved collisions, the enum first-value rule, map-key
// legality, duplicate detection, name-shape rules — is woven into the
// parse functions themselves rather than run as a separate pass, so that
// the first rule violated is the one reported, at the position it was
// detected.
package parser
