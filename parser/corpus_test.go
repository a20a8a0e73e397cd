package parser_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/protolex/proto3parse/internal/corpora"
	"github.com/protolex/proto3parse/parser"
	"github.com/protolex/proto3parse/reporter"
)

// TestCorpus runs every ".proto" file under testdata/corpus through
// Parse and compares the outcome ("ok", or the position/kind/message of
// the first error) against a golden ".result" file. Set
// PROTOLEX_REFRESH=** to rewrite the goldens for every case.
func TestCorpus(t *testing.T) {
	corpora.Corpus{
		Root:      "testdata/corpus",
		Refresh:   "PROTOLEX_REFRESH",
		Extension: "proto",
		Outputs:   []corpora.Output{{Extension: "result"}},
		Test: func(t *testing.T, path, text string) []string {
			_, err := parser.Parse(text)
			if err == nil {
				return []string{"ok\n"}
			}
			var perr *reporter.ParserError
			if !errors.As(err, &perr) {
				t.Fatalf("%s: error was not a *reporter.ParserError: %v", path, err)
			}
			return []string{fmt.Sprintf("%s: %s: %s\n", perr.Pos, perr.Kind, perr.Message)}
		},
	}.Run(t)
}
