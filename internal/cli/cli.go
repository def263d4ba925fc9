// Package cli provides the flag/env-driven scaffolding for the dstc
// binary: a Cmd struct with flag:"..." tags parsed by mna/mainer, a
// reflection-based subcommand table keyed by method name, and an Env
// struct decoded separately via caarlos0/env/v6 for the handful of
// settings that make sense as environment overrides in a CI/build
// context rather than flags.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/mna/mainer"
)

const binName = "dstc"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> <file>
       %[1]s -h|--help
       %[1]s -v|--version

Compiler core and disassembly tool for the dst register-machine runtime.

The <command> can be one of:
       compile                   Compile a JSON-encoded value tree into a
                                 FuncDef and print its disassembly.
       disasm                    Compile a JSON-encoded value tree and step
                                 through the result interactively.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -o --output <path>        Write disassembly to <path> instead of
                                 stdout (compile only).

Environment overrides (see internal/cli.Env):
       DSTC_RECURSION_LIMIT      Override the compiler's recursion depth
                                 limit (default 4096).
       DSTC_NO_DISASSEMBLE       If true, "compile" prints "ok" on success
                                 instead of the disassembly.
`, binName)
)

// Env holds the settings this tool is willing to take from the
// environment rather than flags: CI/build contexts often want to tune a
// recursion limit or silence disassembly output without editing an
// invocation's argument list.
type Env struct {
	RecursionLimit int  `env:"DSTC_RECURSION_LIMIT" envDefault:"4096"`
	NoDisassemble  bool `env:"DSTC_NO_DISASSEMBLE" envDefault:"false"`
}

// LoadEnv decodes Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("decoding environment: %w", err)
	}
	return e, nil
}

// Cmd is the top-level flag target mainer.Parser decodes into.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Output string `flag:"o,output"`

	Env Env

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) { c.args = args }
func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]
	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}
	if len(c.args[1:]) == 0 {
		return fmt.Errorf("%s: a value-tree file must be provided", cmdName)
	}
	return nil
}

// Main is the mainer.Cmd entry point: parse flags, load environment
// overrides, and dispatch to the requested subcommand.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	e, err := LoadEnv()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}
	c.Env = e

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}
	return mainer.Success
}

// buildCmds discovers c's subcommand methods by reflection: any method
// taking (context.Context, mainer.Stdio, []string) and returning error is
// registered under its own lowercased name.
func buildCmds(c *Cmd) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(c)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
