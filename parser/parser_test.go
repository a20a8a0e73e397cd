package parser_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/parser"
	"github.com/protolex/proto3parse/reporter"
)

func mustParse(t *testing.T, src string) *ast.FileNode {
	t.Helper()
	file, err := parser.Parse(src)
	require.NoError(t, err)
	require.NotNil(t, file)
	return file
}

func requireErrorKind(t *testing.T, src string, kind reporter.ErrorKind) {
	t.Helper()
	_, err := parser.Parse(src)
	require.Error(t, err)
	var perr *reporter.ParserError
	require.True(t, errors.As(err, &perr), "error is not a *reporter.ParserError: %v", err)
	assert.Equal(t, kind, perr.Kind, "error message was %q", perr.Message)
}

func TestParse_MinimalFile(t *testing.T) {
	file := mustParse(t, `syntax = "proto3";`)
	assert.Equal(t, "proto3", file.Syntax)
	assert.Empty(t, file.Package)
}

func TestParse_DefaultsSyntaxWhenAbsent(t *testing.T) {
	file := mustParse(t, `package foo.bar;`)
	assert.Equal(t, "proto3", file.Syntax)
	assert.Equal(t, "foo.bar", file.Package)
}

func TestParse_MessageWithFields(t *testing.T) {
	file := mustParse(t, `
		syntax = "proto3";
		message Person {
			string name = 1;
			int32 age = 2;
			repeated string tags = 3;
			optional string nickname = 4;
		}
	`)
	require.Len(t, file.Messages, 1)
	msg := file.Messages[0]
	assert.Equal(t, "Person", msg.Name)
	require.Len(t, msg.Fields, 4)

	want := &ast.Field{
		Name: "name", Number: 1,
		Type: ast.FieldType{Kind: ast.FieldTypeScalar, Scalar: ast.ScalarString},
		Pos:  msg.Fields[0].Pos,
	}
	if diff := cmp.Diff(want, msg.Fields[0]); diff != "" {
		t.Errorf("field mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, msg.Fields[2].IsRepeated)
	assert.True(t, msg.Fields[3].IsOptional)
}

func TestParse_MapField(t *testing.T) {
	file := mustParse(t, `
		message M {
			map<string, int32> counts = 1;
		}
	`)
	f := file.Messages[0].Fields[0]
	require.Equal(t, ast.FieldTypeMap, f.Type.Kind)
	assert.Equal(t, ast.ScalarString, f.Type.MapKey)
	require.NotNil(t, f.Type.MapValue)
	assert.Equal(t, ast.ScalarInt32, f.Type.MapValue.Scalar)
}

func TestParse_Oneof(t *testing.T) {
	file := mustParse(t, `
		message M {
			oneof kind {
				string text = 1;
				int32 number = 2;
			}
		}
	`)
	require.Len(t, file.Messages[0].Oneofs, 1)
	assert.Len(t, file.Messages[0].Oneofs[0].Fields, 2)
}

func TestParse_Enum(t *testing.T) {
	file := mustParse(t, `
		enum Status {
			UNKNOWN = 0;
			ACTIVE = 1;
			INACTIVE = 2;
		}
	`)
	require.Len(t, file.Enums, 1)
	assert.Equal(t, "Status", file.Enums[0].Name)
	assert.Equal(t, int32(0), file.Enums[0].Values[0].Number)
}

func TestParse_EnumAllowAlias(t *testing.T) {
	mustParse(t, `
		enum Status {
			option allow_alias = true;
			UNKNOWN = 0;
			ALSO_UNKNOWN = 0;
		}
	`)
}

func TestParse_ServiceStreaming(t *testing.T) {
	file := mustParse(t, `
		service Chat {
			rpc Send(stream Message) returns (stream Message);
		}
	`)
	rpc := file.Services[0].Rpcs[0]
	assert.True(t, rpc.ClientStreaming)
	assert.True(t, rpc.ServerStreaming)
}

func TestParse_ReservedRangesAndNames(t *testing.T) {
	file := mustParse(t, `
		message M {
			reserved 2, 15, 9 to 11;
			reserved "foo", "bar";
			string name = 1;
		}
	`)
	require.Len(t, file.Messages[0].Reserved, 5)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind reporter.ErrorKind
	}{
		{"required-label", `message M { required string x = 1; }`, reporter.RequiredNotAllowed},
		{"syntax-not-first", `message M {} syntax = "proto3";`, reporter.SyntaxNotFirst},
		{"bad-syntax-value", `syntax = "proto2";`, reporter.InvalidSyntaxValue},
		{"duplicate-package", `package a; package b;`, reporter.DuplicatePackage},
		{"duplicate-field-number", `message M { string a = 1; string b = 1; }`, reporter.DuplicateFieldNumber},
		{"duplicate-field-name", `message M { string a = 1; int32 a = 2; }`, reporter.DuplicateFieldName},
		{"reserved-collision", `message M { reserved 2, 15, 9 to 11; string name = 2; }`, reporter.ReservedFieldCollision},
		{"reserved-name-collision", `message M { reserved "name"; string name = 1; }`, reporter.ReservedNameCollision},
		{"enum-first-not-zero", `enum E { FOO = 1; }`, reporter.EnumFirstValueNotZero},
		{"enum-duplicate-number", `enum E { FOO = 0; BAR = 0; }`, reporter.DuplicateEnumValue},
		{"empty-enum", `enum E { }`, reporter.EmptyEnum},
		{"empty-oneof", `message M { oneof o { } }`, reporter.EmptyOneof},
		{"invalid-map-key", `message M { map<float, int32> x = 1; }`, reporter.InvalidMapKey},
		{"map-value-is-map", `message M { map<string, map<string, int32>> x = 1; }`, reporter.InvalidMapValue},
		{"repeated-map", `message M { repeated map<string, int32> x = 1; }`, reporter.InvalidMapValue},
		{"invalid-message-name", `message lower {}`, reporter.InvalidName},
		{"invalid-field-name", `message M { string Name = 1; }`, reporter.InvalidName},
		{"field-number-zero", `message M { string a = 0; }`, reporter.InvalidFieldNumber},
		{"field-number-reserved-band", `message M { string a = 19500; }`, reporter.InvalidFieldNumber},
		{"field-number-too-large", `message M { string a = 536870912; }`, reporter.InvalidFieldNumber},
		{"duplicate-stream", `service S { rpc M(stream stream Req) returns (Resp); }`, reporter.InvalidStream},
		{"missing-rpc-input", `service S { rpc M() returns (Resp); }`, reporter.MissingType},
		{"duplicate-type-name", `message M {} enum M {}`, reporter.DuplicateTypeName},
		{"invalid-package-segment", `package Foo.bar;`, reporter.InvalidName},
		{"non-ascii-message-name", "message 测试 {}", reporter.InvalidName},
		{"field-number-int32-overflow", `message M { string a = 4831838207; }`, reporter.InvalidFieldNumber},
		{"overlapping-reserved-ranges", `message M { reserved 1 to 5; reserved 3 to 8; }`, reporter.ReservedFieldCollision},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireErrorKind(t, tt.src, tt.kind)
		})
	}
}

func TestParse_MaxNestingDepthExceeded(t *testing.T) {
	var opens, closes strings.Builder
	for i := 0; i < 101; i++ {
		fmt.Fprintf(&opens, "message M%d {", i)
		closes.WriteString("}")
	}
	requireErrorKind(t, opens.String()+closes.String(), reporter.MaxNestingDepthExceeded)
}

func TestParse_FailFastStopsAtFirstError(t *testing.T) {
	// Two independent errors; only the first (duplicate field number)
	// should be reported, since the parser performs no error recovery.
	_, err := parser.Parse(`
		message M {
			string a = 1;
			string b = 1;
			string c = 2 2 2;
		}
	`)
	require.Error(t, err)
	var perr *reporter.ParserError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, reporter.DuplicateFieldNumber, perr.Kind)
}
