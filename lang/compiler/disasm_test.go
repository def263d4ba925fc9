package compiler_test

import (
	"flag"
	"testing"

	"github.com/dstlang/dst/internal/asmtest"
	"github.com/dstlang/dst/lang/compiler"
)

var updateDisasm = flag.Bool("test.update-disasm-tests", false, "update lang/compiler/testdata/*.asm golden files")

func TestDisassembleQuoteAgainstGolden(t *testing.T) {
	fi := asmtest.SourceFiles(t, "testdata", ".case")
	if len(fi) != 1 {
		t.Fatalf("expected exactly one .case fixture, got %d", len(fi))
	}

	root := form(sym("quote"), form(num(1), num(2), num(3)))
	fd, err := compiler.Compile(root, unmapped(), nil, false)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	asmtest.DiffDisasm(t, fi[0], compiler.Disassemble(fd), "testdata", updateDisasm)
}
