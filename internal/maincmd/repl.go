package maincmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/ponos-lang/ponos/lang/codegen"
	"github.com/ponos-lang/ponos/lang/parser"
	"github.com/ponos-lang/ponos/lang/resolver"
)

// Repl runs an interactive read-eval-print loop: each accepted line is
// parsed, resolved and compiled as its own top-level chunk, then executed
// against the same VM so that accumulated `var`-declared top-level state
// persists across lines (SPEC_FULL.md §13 item 4).
func (c *Cmd) Repl(_ context.Context, stdio mainer.Stdio, _ []string) error {
	machine, err := newMachine(stdio)
	if err != nil {
		return printErr(stdio, err)
	}
	load := fileLoader(".")

	scanner := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, "ponos> ")
		if !scanner.Scan() {
			return nil
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		prog, err := parser.Parse("repl", line)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s\n", err)
			continue
		}
		resolved, err := resolver.Resolve(prog, load)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s\n", err)
			continue
		}
		fn, err := codegen.Compile(resolved)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s\n", err)
			continue
		}
		result, err := machine.RunChunk(fn)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s\n", err)
			continue
		}
		fmt.Fprintln(stdio.Stdout, result.String())
	}
}
