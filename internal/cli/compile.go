package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/dstlang/dst/lang/compiler"
)

// Compile implements the "compile" subcommand: read a JSON value tree,
// compile it, and print (or -o write) its disassembly.
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	fd, err := compileFile(args[0], c.Env.RecursionLimit)
	if err != nil {
		return err
	}
	if c.Env.NoDisassemble {
		fmt.Fprintln(stdio.Stdout, "ok")
		return nil
	}

	out := compiler.Disassemble(fd)
	if c.Output == "" {
		fmt.Fprint(stdio.Stdout, out)
		return nil
	}
	return os.WriteFile(c.Output, []byte(out), 0o644)
}

func compileFile(path string, recursionLimit int) (*compiler.FuncDef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	tree, err := DecodeTree(f)
	if err != nil {
		return nil, err
	}

	return compiler.Compile(tree, unmappedTree(), nil, false,
		compiler.WithFilename(path),
		compiler.WithEnvironment(compiler.StandardEnvironment()),
		compiler.WithRecursionLimit(recursionLimit))
}
