package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/parser"
)

// render is a deliberately minimal, test-only serializer: just enough of
// the grammar to cover the fixtures in TestRoundTrip. It exists to check
// the "parse(render(parse(src))) == parse(src)" property; it is not a
// general-purpose printer and is not part of the package's API.
func render(f *ast.FileNode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax = %q;\n", f.Syntax)
	if f.Package != "" {
		fmt.Fprintf(&b, "package %s;\n", f.Package)
	}
	for _, msg := range f.Messages {
		renderMessage(&b, msg)
	}
	for _, e := range f.Enums {
		renderEnum(&b, e)
	}
	return b.String()
}

func renderMessage(b *strings.Builder, m *ast.Message) {
	fmt.Fprintf(b, "message %s {\n", m.Name)
	for _, f := range m.Fields {
		renderField(b, f)
	}
	for _, o := range m.Oneofs {
		fmt.Fprintf(b, "oneof %s {\n", o.Name)
		for _, f := range o.Fields {
			renderField(b, f)
		}
		b.WriteString("}\n")
	}
	for _, nested := range m.Messages {
		renderMessage(b, nested)
	}
	for _, e := range m.Enums {
		renderEnum(b, e)
	}
	b.WriteString("}\n")
}

func renderField(b *strings.Builder, f *ast.Field) {
	if f.IsRepeated {
		b.WriteString("repeated ")
	}
	if f.IsOptional {
		b.WriteString("optional ")
	}
	renderType(b, f.Type)
	fmt.Fprintf(b, " %s = %d;\n", f.Name, f.Number)
}

func renderType(b *strings.Builder, t ast.FieldType) {
	switch t.Kind {
	case ast.FieldTypeScalar:
		b.WriteString(t.Scalar.String())
	case ast.FieldTypeNamed:
		b.WriteString(t.Named.String())
	case ast.FieldTypeMap:
		fmt.Fprintf(b, "map<%s, ", t.MapKey.String())
		renderType(b, *t.MapValue)
		b.WriteString(">")
	}
}

func renderEnum(b *strings.Builder, e *ast.Enum) {
	fmt.Fprintf(b, "enum %s {\n", e.Name)
	for _, v := range e.Values {
		fmt.Fprintf(b, "%s = %d;\n", v.Name, v.Number)
	}
	b.WriteString("}\n")
}

// ignorePositions treats all ast.Position values as equal, since
// rendered source never reproduces the original file's exact layout.
var ignorePositions = cmp.Comparer(func(ast.Position, ast.Position) bool { return true })

func TestRoundTrip(t *testing.T) {
	fixtures := []string{
		`syntax = "proto3"; message Empty {}`,
		`
			syntax = "proto3";
			package example;
			message Person {
				string name = 1;
				int32 age = 2;
				repeated string emails = 3;
				oneof contact {
					string phone = 4;
					string fax = 5;
				}
				message Address {
					string city = 1;
				}
				enum Kind {
					UNKNOWN = 0;
					PERSONAL = 1;
				}
			}
			enum TopLevel {
				ZERO = 0;
			}
		`,
	}

	for _, src := range fixtures {
		file, err := parser.Parse(src)
		require.NoError(t, err)

		rendered := render(file)
		reparsed, err := parser.Parse(rendered)
		require.NoError(t, err, "re-parsing rendered output:\n%s", rendered)

		if diff := cmp.Diff(file, reparsed, ignorePositions); diff != "" {
			t.Errorf("round trip changed the AST (-original +reparsed):\n%s\nrendered source:\n%s", diff, rendered)
		}
	}
}
