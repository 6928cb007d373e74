package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponos-lang/ponos/lang/ast"
	"github.com/ponos-lang/ponos/lang/parser"
)

func TestParseVarDecl(t *testing.T) {
	prog, err := parser.Parse("test", "перем x = 1 + 2")
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	vd, ok := prog.Stmts[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "x", vd.Name)
	assert.False(t, vd.Exported)
	_, ok = vd.Init.(*ast.Binary)
	assert.True(t, ok)
}

func TestParseExportedVarDecl(t *testing.T) {
	prog, err := parser.Parse("test", "экспорт перем x = 1")
	require.NoError(t, err)
	vd, ok := prog.Stmts[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.True(t, vd.Exported)
}

func TestParseExportBeforeFuncIsError(t *testing.T) {
	_, err := parser.Parse("test", "экспорт функция ф() конец")
	assert.Error(t, err)
}

func TestParseIfElifElse(t *testing.T) {
	src := `
если истина
	перем a = 1
иначе если ложь
	перем b = 2
иначе
	перем c = 3
конец
`
	prog, err := parser.Parse("test", src)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	ifStmt, ok := prog.Stmts[0].(*ast.If)
	require.True(t, ok)
	require.Len(t, ifStmt.Else, 1)
	_, ok = ifStmt.Else[0].(*ast.If)
	assert.True(t, ok)
}

func TestParseFuncDecl(t *testing.T) {
	prog, err := parser.Parse("test", "функция сложить(а, б) вернуть а + б конец")
	require.NoError(t, err)
	fd, ok := prog.Stmts[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "сложить", fd.Name)
	assert.Equal(t, []string{"а", "б"}, fd.Params)
}

func TestParseClassDecl(t *testing.T) {
	src := `
класс Точка
	функция конструктор(x, y)
		это.x = x
		это.y = y
	конец
конец
`
	prog, err := parser.Parse("test", src)
	require.NoError(t, err)
	cd, ok := prog.Stmts[0].(*ast.ClassDecl)
	require.True(t, ok)
	assert.Equal(t, "Точка", cd.Name)
	require.Len(t, cd.Methods, 1)
}

func TestParseIndexVsRange(t *testing.T) {
	prog, err := parser.Parse("test", "перем a = массив[1:2]")
	require.NoError(t, err)
	vd := prog.Stmts[0].(*ast.VarDecl)
	idx, ok := vd.Init.(*ast.Index)
	require.True(t, ok)
	_, ok = idx.Idx.(*ast.RangeExpr)
	assert.True(t, ok)
}

func TestParseArrayAndDictLiterals(t *testing.T) {
	prog, err := parser.Parse("test", `перем a = [1, 2, 3]`)
	require.NoError(t, err)
	vd := prog.Stmts[0].(*ast.VarDecl)
	arr, ok := vd.Init.(*ast.ArrayLit)
	require.True(t, ok)
	assert.Len(t, arr.Elems, 3)

	prog, err = parser.Parse("test", `перем d = {"ключ": 1}`)
	require.NoError(t, err)
	vd = prog.Stmts[0].(*ast.VarDecl)
	dl, ok := vd.Init.(*ast.DictLit)
	require.True(t, ok)
	assert.Len(t, dl.Entries, 1)
}

func TestParseNativeModuleCall(t *testing.T) {
	prog, err := parser.Parse("test", `ио::вывести("привет")`)
	require.NoError(t, err)
	es, ok := prog.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	call, ok := es.X.(*ast.Call)
	require.True(t, ok)
	id, ok := call.Callee.(*ast.Ident)
	require.True(t, ok)
	assert.Equal(t, "ио::вывести", id.Name)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := parser.Parse("test", "перем = 1")
	assert.Error(t, err)
}
