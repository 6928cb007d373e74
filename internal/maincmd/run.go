package maincmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mna/mainer"

	"github.com/ponos-lang/ponos/lang/codegen"
	"github.com/ponos-lang/ponos/lang/nativelib"
	"github.com/ponos-lang/ponos/lang/parser"
	"github.com/ponos-lang/ponos/lang/resolver"
	"github.com/ponos-lang/ponos/lang/vm"
)

// Run compiles and executes a single .поз source file (spec.md §1 "given
// a source file, produce its observable side effects").
func (c *Cmd) Run(_ context.Context, stdio mainer.Stdio, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return printErr(stdio, err)
	}

	prog, err := parser.Parse(path, string(src))
	if err != nil {
		return printErr(stdio, err)
	}

	resolved, err := resolver.Resolve(prog, fileLoader(filepath.Dir(path)))
	if err != nil {
		return printErr(stdio, err)
	}

	fn, err := codegen.Compile(resolved)
	if err != nil {
		return printErr(stdio, err)
	}

	machine, err := newMachine(stdio)
	if err != nil {
		return printErr(stdio, err)
	}

	if _, err := machine.Run(fn); err != nil {
		return printErr(stdio, err)
	}
	return nil
}

// newMachine builds a *vm.VM wired to stdio's streams, the environment's
// runtime limits, and every registered native module.
func newMachine(stdio mainer.Stdio) (*vm.VM, error) {
	limits, err := loadRuntimeLimits()
	if err != nil {
		return nil, err
	}
	m := vm.New()
	m.Stdout, m.Stderr, m.Stdin = stdio.Stdout, stdio.Stderr, stdio.Stdin
	m.Limits = limits
	nativelib.Register(m.Globals, nativelib.Host{
		Stdout: stdio.Stdout,
		Stdin:  stdio.Stdin,
		Exit:   os.Exit,
	})
	return m, nil
}

// fileLoader resolves an import path relative to baseDir, trying the
// literal path first and falling back to the ".поз" source extension
// (SPEC_FULL.md leaves the concrete import-path syntax to implementer
// discretion; see lang/resolver.moduleName).
func fileLoader(baseDir string) resolver.Loader {
	return func(importPath string) (string, error) {
		candidate := filepath.Join(baseDir, importPath)
		if b, err := os.ReadFile(candidate); err == nil {
			return string(b), nil
		}
		b, err := os.ReadFile(candidate + ".поз")
		if err != nil {
			return "", fmt.Errorf("модуль не найден: %s", importPath)
		}
		return string(b), nil
	}
}

func printErr(stdio mainer.Stdio, err error) error {
	fmt.Fprintf(stdio.Stderr, "%s\n", err)
	return err
}
