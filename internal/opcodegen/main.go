// Command opcodegen reads the Opcode constant block in
// lang/compiler/opcode.go and emits the String() table
// (lang/compiler/opcode_string.go) from it, so the name table and the
// const block can never drift apart the way two hand-maintained switch
// statements eventually do.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"text/template"

	"golang.org/x/tools/imports"
)

var outPath = flag.String("out", "opcode_string.go", "output file, relative to the current directory")

const tmplSrc = `// Code generated by internal/opcodegen from opcode.go; DO NOT EDIT.

package compiler

var opcodeNames = [...]string{
{{- range .}}
	{{.}}: "{{.}}",
{{- end}}
}

func (op Opcode) String() string {
	if int(op) < 0 || int(op) >= len(opcodeNames) || opcodeNames[op] == "" {
		return "OPCODE(?)"
	}
	return opcodeNames[op]
}
`

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "opcodegen:", err)
		os.Exit(1)
	}
}

func run() error {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "opcode.go", nil, 0)
	if err != nil {
		return err
	}

	names, err := opcodeNames(f)
	if err != nil {
		return err
	}

	tmpl, err := template.New("opcode_string").Parse(tmplSrc)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, names); err != nil {
		return err
	}

	formatted, err := imports.Process(*outPath, buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("formatting generated source: %w", err)
	}
	return os.WriteFile(*outPath, formatted, 0o644)
}

// opcodeNames walks the single const block declaring Opcode values and
// returns their identifiers in declaration order, skipping the trailing
// opcodeMax sentinel.
func opcodeNames(f *ast.File) ([]string, error) {
	var names []string
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.CONST {
			continue
		}
		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for _, name := range vs.Names {
				if name.Name == "opcodeMax" || name.Name == "_" {
					continue
				}
				names = append(names, name.Name)
			}
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no Opcode constants found")
	}
	return names, nil
}
