// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package corpora runs table-driven tests where the table is a directory
// tree of ".proto" files on disk, plus one golden output file per
// declared Output. It exists so the parser's test suite can grow by
// dropping a new file into testdata/ rather than writing new Go.
package corpora

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes one test data corpus.
type Corpus struct {
	// Root is the corpus directory, relative to the file that calls Run.
	Root string

	// Refresh names an environment variable holding a glob; test cases
	// whose relative path matches it have their golden files rewritten
	// instead of compared, and the run is failed so CI can't silently
	// pass with stale goldens left refreshed.
	Refresh string

	// Extension is the file extension (without a dot) of a test case's
	// main file, e.g. "proto".
	Extension string

	// Outputs are the golden files compared against each test case's
	// result, named "<case>.<Extension>.<Output.Extension>".
	Outputs []Output

	// Test runs one case and returns one result string per Output, in
	// the same order.
	Test func(t *testing.T, path, text string) []string
}

// Run walks Root, running Test once per matching file and diffing its
// results against golden files.
func (c Corpus) Run(t *testing.T) {
	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	var cases []string
	err := filepath.Walk(root, func(p string, fi fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() && strings.TrimPrefix(path.Ext(p), ".") == c.Extension {
			cases = append(cases, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("corpora: error walking %q: %v", root, err)
	}

	var refreshGlob string
	if c.Refresh != "" {
		refreshGlob = os.Getenv(c.Refresh)
		if refreshGlob != "" && !doublestar.ValidatePattern(refreshGlob) {
			t.Fatalf("corpora: invalid glob in %s: %q", c.Refresh, refreshGlob)
		}
	}

	for _, casePath := range cases {
		name, _ := filepath.Rel(testDir, casePath)
		t.Run(name, func(t *testing.T) {
			input, err := os.ReadFile(casePath)
			if err != nil {
				t.Fatalf("corpora: error reading %q: %v", casePath, err)
			}

			results := c.Test(t, name, string(input))

			refresh := refreshGlob != ""
			if refresh {
				if matched, _ := doublestar.Match(refreshGlob, name); !matched {
					refresh = false
				}
			}

			for i, output := range c.Outputs {
				goldenPath := fmt.Sprint(casePath, ".", output.Extension)

				if !refresh {
					want, err := os.ReadFile(goldenPath)
					if err != nil && !errors.Is(err, os.ErrNotExist) {
						t.Errorf("corpora: error reading golden %q: %v", goldenPath, err)
						continue
					}
					cmp := output.Compare
					if cmp == nil {
						cmp = defaultCompare
					}
					if diff := cmp(results[i], string(want)); diff != "" {
						t.Errorf("output mismatch for %q:\n%s", goldenPath, diff)
					}
					continue
				}

				t.Errorf("corpora: refreshed golden %q, re-run to verify", goldenPath)
				if results[i] == "" {
					if err := os.Remove(goldenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
						t.Errorf("corpora: error removing golden %q: %v", goldenPath, err)
					}
					continue
				}
				if err := os.WriteFile(goldenPath, []byte(results[i]), 0o644); err != nil {
					t.Errorf("corpora: error writing golden %q: %v", goldenPath, err)
				}
			}
		})
	}
}

// Output is one golden comparison performed per test case.
type Output struct {
	Extension string
	Compare   Compare
}

// Compare compares a result against its golden value, returning "" on
// match or a human-readable diff otherwise.
type Compare func(got, want string) string

func defaultCompare(got, want string) string {
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine caller's directory")
	}
	return filepath.Dir(file)
}
