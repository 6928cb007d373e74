package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponos-lang/ponos/lang/ast"
	"github.com/ponos-lang/ponos/lang/parser"
	"github.com/ponos-lang/ponos/lang/resolver"
)

func mapLoader(files map[string]string) resolver.Loader {
	return func(path string) (string, error) {
		src, ok := files[path]
		if !ok {
			return "", assert.AnError
		}
		return src, nil
	}
}

func TestResolveHoistsImportAsModuleBlock(t *testing.T) {
	prog, err := parser.Parse("main", `импорт "утилиты"
перем x = 1`)
	require.NoError(t, err)

	load := mapLoader(map[string]string{
		"утилиты": `экспорт перем у = 2`,
	})
	resolved, err := resolver.Resolve(prog, load)
	require.NoError(t, err)

	require.Len(t, resolved.Stmts, 2)
	mb, ok := resolved.Stmts[0].(*ast.ModuleBlock)
	require.True(t, ok)
	assert.Equal(t, "утилиты", mb.Name)
	_, ok = resolved.Stmts[1].(*ast.VarDecl)
	assert.True(t, ok)
}

func TestResolveDetectsCycle(t *testing.T) {
	prog, err := parser.Parse("main", `импорт "а"`)
	require.NoError(t, err)

	load := mapLoader(map[string]string{
		"а": `импорт "б"`,
		"б": `импорт "а"`,
	})
	_, err = resolver.Resolve(prog, load)
	require.Error(t, err)
	var cycleErr *resolver.CycleError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestResolveMemoizesSharedImport(t *testing.T) {
	prog, err := parser.Parse("main", `импорт "а"
импорт "б"`)
	require.NoError(t, err)

	load := mapLoader(map[string]string{
		"а": `импорт "общий"`,
		"б": `импорт "общий"`,
		"общий": `перем с = 1`,
	})
	resolved, err := resolver.Resolve(prog, load)
	require.NoError(t, err)

	var names []string
	for _, s := range resolved.Stmts {
		if mb, ok := s.(*ast.ModuleBlock); ok {
			names = append(names, mb.Name)
		}
	}
	assert.Equal(t, []string{"общий", "а", "б"}, names)
}

func TestResolveMissingImportFails(t *testing.T) {
	prog, err := parser.Parse("main", `импорт "неизвестный"`)
	require.NoError(t, err)
	_, err = resolver.Resolve(prog, mapLoader(nil))
	assert.Error(t, err)
}
