// Package diagnostics renders a reporter.ParserError against the source
// text it was produced from, as a source line followed by a caret
// pointing at the offending column. It is a pure convenience layer: the
// lexer and parser packages never depend on it, and any caller content
// with just the error's Error() text can ignore it entirely.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rivo/uniseg"

	"github.com/protolex/proto3parse/reporter"
)

// Render formats err as a multi-line diagnostic: a header naming the
// file, position, and error kind; the offending source line; and a
// caret line under the column the error was reported at. Column
// offsets account for wide and zero-width runes via uniseg, so the
// caret lines up under non-ASCII source text.
func Render(filename, source string, err *reporter.ParserError) string {
	lines := strings.Split(source, "\n")

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%s: %s: %s\n", filename, err.Pos, err.Kind, err.Message)

	idx := err.Pos.Line - 1
	if idx < 0 || idx >= len(lines) {
		return sb.String()
	}
	line := lines[idx]
	sb.WriteString(line)
	sb.WriteByte('\n')

	col := runeColumn(line, err.Pos.Column)
	sb.WriteString(strings.Repeat(" ", col))
	sb.WriteString("^\n")
	return sb.String()
}

// Diff returns a unified diff between two renderings of the same file
// (e.g. before and after a caller re-serializes its AST), with "before"
// and "after" as the file labels.
func Diff(before, after string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "before",
		ToFile:   "after",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// runeColumn converts a 1-based rune column into a 0-based display
// column, expanding each rune (or grapheme cluster) to its terminal
// width rather than assuming one column per rune.
func runeColumn(line string, column int) int {
	if column <= 1 {
		return 0
	}
	runes := []rune(line)
	upto := column - 1
	if upto > len(runes) {
		upto = len(runes)
	}
	return uniseg.StringWidth(string(runes[:upto]))
}
