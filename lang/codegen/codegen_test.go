package codegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponos-lang/ponos/lang/codegen"
	"github.com/ponos-lang/ponos/lang/parser"
	"github.com/ponos-lang/ponos/lang/value"
)

// collectStringConstants walks fn's constant pool and every nested
// function constant's own pool, gathering every string constant's text.
func collectStringConstants(fn *value.Function, out *[]string) {
	for _, c := range fn.Constants {
		if s, ok := c.(value.String); ok {
			*out = append(*out, s.String())
		}
		if nested, ok := c.(*value.Function); ok {
			collectStringConstants(nested, out)
		}
	}
}

func compile(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.Parse("test", src)
	require.NoError(t, err)
	_, cerr := codegen.Compile(prog)
	return cerr
}

func TestCompileConstantDedup(t *testing.T) {
	prog, err := parser.Parse("test", `перем a = 1
перем b = 1
перем c = "повтор"
перем d = "повтор"`)
	require.NoError(t, err)
	fn, err := codegen.Compile(prog)
	require.NoError(t, err)

	numCount, strCount := 0, 0
	for _, c := range fn.Constants {
		switch c.Type() {
		case "число":
			numCount++
		case "строка":
			if c.String() == "повтор" {
				strCount++
			}
		}
	}
	assert.Equal(t, 1, numCount)
	assert.Equal(t, 1, strCount)
}

func TestCompileReturnOutsideFunctionIsError(t *testing.T) {
	err := compile(t, `вернуть 1`)
	assert.Error(t, err)
}

func TestCompileExportInsideFunctionIsError(t *testing.T) {
	err := compile(t, `
функция ф()
	экспорт перем x = 1
конец`)
	assert.Error(t, err)
}

func TestCompileBreakOutsideLoopIsError(t *testing.T) {
	err := compile(t, `прервать`)
	assert.Error(t, err)
}

func TestCompileNativeCallInsideModuleBlockIsNotDoubleMangled(t *testing.T) {
	prog, err := parser.Parse("test", `
модуль утилиты
	функция логировать(сообщение)
		ио::вывести(сообщение)
	конец
конец`)
	require.NoError(t, err)
	fn, err := codegen.Compile(prog)
	require.NoError(t, err)

	var names []string
	collectStringConstants(fn, &names)
	assert.Contains(t, names, "ио::вывести")
	for _, n := range names {
		assert.NotContains(t, n, "утилиты::ио")
	}
}

func TestCompileModuleBlockMangling(t *testing.T) {
	prog, err := parser.Parse("test", `
модуль утилиты
	экспорт перем версия = 1
конец`)
	require.NoError(t, err)
	fn, err := codegen.Compile(prog)
	require.NoError(t, err)

	var sawMangled bool
	for _, c := range fn.Constants {
		if c.String() == "утилиты::версия" {
			sawMangled = true
		}
	}
	assert.True(t, sawMangled)
}
