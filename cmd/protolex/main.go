// Command protolex parses proto3 source files and reports the first
// error in each, or dumps the parsed AST as YAML.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/diagnostics"
	"github.com/protolex/proto3parse/parser"
	"github.com/protolex/proto3parse/reporter"
)

type opts struct {
	Yaml  bool
	Quiet bool
	Jobs  int
}

func main() {
	op := &opts{}
	flags := pflag.NewFlagSet("protolex", pflag.ContinueOnError)
	flags.BoolVar(&op.Yaml, "yaml", false, "Dump the parsed AST as YAML instead of reporting errors only.")
	flags.BoolVar(&op.Quiet, "quiet", false, "Suppress per-file success output.")
	flags.IntVar(&op.Jobs, "jobs", 0, "Maximum number of files to parse concurrently (0 means GOMAXPROCS, capped at NumCPU).")
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	paths := flags.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: protolex [--yaml] [--quiet] [--jobs N] file.proto [file.proto ...]")
		os.Exit(2)
	}

	sources := make(map[string]string, len(paths))
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			os.Exit(1)
		}
		sources[path] = string(src)
	}

	results, err := parser.ParseFiles(context.Background(), sources, op.Jobs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "protolex: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, path := range paths {
		var res parser.FileResult
		for _, r := range results {
			if r.Path == path {
				res = r
				break
			}
		}
		if !report(path, sources[path], res, op) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func report(path, src string, res parser.FileResult, op *opts) bool {
	if res.Err != nil {
		var perr *reporter.ParserError
		if errors.As(res.Err, &perr) {
			fmt.Fprint(os.Stderr, diagnostics.Render(path, src, perr))
			return false
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, res.Err)
		return false
	}

	if op.Yaml {
		if err := dumpYAML(path, res.File); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			return false
		}
		return true
	}

	if !op.Quiet {
		fmt.Printf("%s: ok\n", path)
	}
	return true
}

func dumpYAML(path string, file *ast.FileNode) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("encoding %s as yaml: %w", path, err)
	}
	return nil
}
