package cli

import (
	"context"
	"fmt"

	"github.com/mattn/go-isatty"
	"github.com/mna/mainer"

	"github.com/dstlang/dst/internal/disview"
	"github.com/dstlang/dst/lang/compiler"
)

// Disasm implements the "disasm" subcommand: compile a JSON value tree and
// step through its FuncDef interactively. When stdout is not a terminal
// (piped output, a CI log) there is nothing to interact with, so it falls
// back to printing the same static listing "compile" would.
func (c *Cmd) Disasm(ctx context.Context, stdio mainer.Stdio, args []string) error {
	fd, err := compileFile(args[0], c.Env.RecursionLimit)
	if err != nil {
		return err
	}

	if f, ok := stdio.Stdout.(interface{ Fd() uintptr }); !ok || !isatty.IsTerminal(f.Fd()) {
		fmt.Fprint(stdio.Stdout, compiler.Disassemble(fd))
		return nil
	}

	return disview.Run(fd)
}
