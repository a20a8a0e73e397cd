package reporter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/reporter"
)

func TestParserError_Error(t *testing.T) {
	err := reporter.Errorf(ast.Position{Line: 3, Column: 7}, reporter.DuplicateFieldNumber, "duplicate field number %d", 5)
	assert.Equal(t, "3:7: duplicate field number 5", err.Error())
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "DuplicateFieldNumber", reporter.DuplicateFieldNumber.String())
	assert.Equal(t, "Unknown", reporter.ErrorKind(-1).String())
	assert.Equal(t, "Unknown", reporter.ErrorKind(9999).String())
}
