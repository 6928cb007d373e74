// Package resolver implements the module loader, cycle detector and
// import flattener (spec.md §1 "The module loader, cycle detector and
// name resolver. Contract: produces a single flattened program whose
// import statements have been erased, ... and modules wrapped so each
// module's body executes once before any importing code"). Structurally
// this plays the same pipeline role as the teacher's lang/resolver
// package, but the simplified name-mangling model (flat global table
// instead of nested environments, spec.md §4.5) means there is no
// per-scope binding table to build here — only import hoisting, cycle
// detection and ModuleBlock wrapping.
package resolver

import (
	"fmt"
	"path"
	"strings"

	"github.com/ponos-lang/ponos/lang/ast"
	"github.com/ponos-lang/ponos/lang/parser"
)

// Loader fetches the source text for an imported module path. The CLI
// wires this to the filesystem (SPEC_FULL.md §10); tests can supply an
// in-memory map.
type Loader func(importPath string) (src string, err error)

// CycleError reports an import cycle, carrying the chain of paths that
// led back to the repeated one.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("циклический импорт: %s", strings.Join(e.Chain, " -> "))
}

type resolver struct {
	load     Loader
	visiting map[string]bool
	done     map[string]bool
	order    []ast.Stmt // hoisted ModuleBlocks, dependency-first
	stack    []string   // current import chain, for CycleError reporting
}

// Resolve flattens prog: every импорт path is loaded (recursively, depth
// first), wrapped in an *ast.ModuleBlock named after the import path's
// final segment, and hoisted ahead of prog's own statements in dependency
// order, so a module's body always runs before any code that imports it
// (spec.md §4.2 "Import"). Import nodes themselves are dropped, matching
// the generator's expectation that no *ast.Import ever reaches it other
// than as the documented no-op.
func Resolve(prog *ast.Program, load Loader) (*ast.Program, error) {
	r := &resolver{
		load:     load,
		visiting: make(map[string]bool),
		done:     make(map[string]bool),
	}
	ownStmts, err := r.resolveStmts(prog.Stmts)
	if err != nil {
		return nil, err
	}
	flat := make([]ast.Stmt, 0, len(r.order)+len(ownStmts))
	flat = append(flat, r.order...)
	flat = append(flat, ownStmts...)
	return &ast.Program{Name: prog.Name, Stmts: flat}, nil
}

// resolveStmts processes one statement list, recursing into nested
// module blocks (so an inline `модуль ... конец` that itself imports
// something still has its imports resolved), and erasing every Import it
// finds after hoisting its target.
func (r *resolver) resolveStmts(stmts []ast.Stmt) ([]ast.Stmt, error) {
	out := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		switch s := s.(type) {
		case *ast.Import:
			if err := r.resolveImport(s.Path); err != nil {
				return nil, err
			}
		case *ast.ModuleBlock:
			nested, err := r.resolveStmts(s.Stmts)
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.ModuleBlock{Sp: s.Sp, Name: s.Name, Stmts: nested})
		default:
			out = append(out, s)
		}
	}
	return out, nil
}

// resolveImport loads and resolves importPath exactly once, detecting
// cycles via the current DFS chain (r.stack) and appending the finished
// ModuleBlock to r.order so its dependencies always precede it.
func (r *resolver) resolveImport(importPath string) error {
	if r.done[importPath] {
		return nil
	}
	if r.visiting[importPath] {
		chain := append(append([]string{}, r.stack...), importPath)
		return &CycleError{Chain: chain}
	}
	r.visiting[importPath] = true
	r.stack = append(r.stack, importPath)

	src, err := r.load(importPath)
	if err != nil {
		r.visiting[importPath] = false
		r.stack = r.stack[:len(r.stack)-1]
		return fmt.Errorf("импорт %q: %w", importPath, err)
	}
	name := moduleName(importPath)
	prog, err := parser.Parse(name, src)
	if err != nil {
		r.visiting[importPath] = false
		r.stack = r.stack[:len(r.stack)-1]
		return fmt.Errorf("импорт %q: %w", importPath, err)
	}
	stmts, err := r.resolveStmts(prog.Stmts)
	if err != nil {
		return err
	}

	r.visiting[importPath] = false
	r.stack = r.stack[:len(r.stack)-1]
	r.done[importPath] = true
	r.order = append(r.order, &ast.ModuleBlock{Name: name, Stmts: stmts})
	return nil
}

// moduleName derives the mangling namespace from an import path: its
// final path segment, extension stripped (e.g. "утилиты/строки.пн" ->
// "строки"). spec.md leaves the concrete import-path syntax unspecified
// (SPEC_FULL.md Implementer Discretion); this mirrors how the language's
// own module-block namespace is just a bare identifier.
func moduleName(importPath string) string {
	base := path.Base(importPath)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
