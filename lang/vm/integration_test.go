package vm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponos-lang/ponos/lang/codegen"
	"github.com/ponos-lang/ponos/lang/parser"
	"github.com/ponos-lang/ponos/lang/resolver"
	"github.com/ponos-lang/ponos/lang/value"
	"github.com/ponos-lang/ponos/lang/vm"
)

func compileAndRun(t *testing.T, src string) (*vm.VM, value.Value, error) {
	t.Helper()
	prog, err := parser.Parse("test", src)
	require.NoError(t, err)
	resolved, err := resolver.Resolve(prog, func(string) (string, error) { return "", assert.AnError })
	require.NoError(t, err)
	fn, err := codegen.Compile(resolved)
	require.NoError(t, err)
	m := vm.New()
	result, runErr := m.Run(fn)
	return m, result, runErr
}

func TestArithmeticAndVarDecl(t *testing.T) {
	m, _, err := compileAndRun(t, `перем x = 1 + 2 * 3`)
	require.NoError(t, err)
	assert.Equal(t, value.Number(7), m.Globals["x"])
}

func TestIfElseBranching(t *testing.T) {
	m, _, err := compileAndRun(t, `
перем x = 0
если ложь
	x = 1
иначе
	x = 2
конец`)
	require.NoError(t, err)
	assert.Equal(t, value.Number(2), m.Globals["x"])
}

func TestWhileLoop(t *testing.T) {
	m, _, err := compileAndRun(t, `
перем i = 0
перем сумма = 0
пока i < 5
	сумма = сумма + i
	i = i + 1
конец`)
	require.NoError(t, err)
	assert.Equal(t, value.Number(10), m.Globals["сумма"])
}

func TestFunctionCallAndClosure(t *testing.T) {
	m, _, err := compileAndRun(t, `
функция счётчик()
	перем n = 0
	вернуть функция()
		n = n + 1
		вернуть n
	конец
конец

перем следующий = счётчик()
перем а = следующий()
перем б = следующий()
перем в = следующий()`)
	require.NoError(t, err)
	assert.Equal(t, value.Number(3), m.Globals["в"])
}

func TestClassInstanceMethodAndField(t *testing.T) {
	m, _, err := compileAndRun(t, `
класс Точка
	функция конструктор(x, y)
		это.x = x
		это.y = y
	конец

	функция сумма()
		вернуть это.x + это.y
	конец
конец

перем p = Точка(3, 4)
перем итог = p.сумма()`)
	require.NoError(t, err)
	assert.Equal(t, value.Number(7), m.Globals["итог"])
}

func TestTryCatchCatchesThrow(t *testing.T) {
	m, _, err := compileAndRun(t, `
перем результат = 0
пробовать
	бросить "упс"
поймать e
	результат = 1
конец`)
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), m.Globals["результат"])
}

func TestUncaughtThrowIsException(t *testing.T) {
	_, _, err := compileAndRun(t, `бросить "фатально"`)
	require.Error(t, err)
	var exc *vm.Exception
	require.ErrorAs(t, err, &exc)
	assert.Equal(t, "фатально", exc.Value.String())
}

func TestUndefinedGlobalIsRuntimeError(t *testing.T) {
	_, _, err := compileAndRun(t, `перем x = несуществующее`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "неизвестное глобальное имя")
}

func TestLogicalShortCircuit(t *testing.T) {
	cases := []struct {
		name       string
		src        string
		wantCalled float64
		wantResult value.Value
	}{
		{
			name: "или with truthy left skips right",
			src: `
перем вызвано = 0
функция побочный()
	вызвано = вызвано + 1
	вернуть истина
конец
перем итог = истина или побочный()`,
			wantCalled: 0,
			wantResult: value.Boolean(true),
		},
		{
			name: "или with falsy left evaluates right",
			src: `
перем вызвано = 0
функция побочный()
	вызвано = вызвано + 1
	вернуть истина
конец
перем итог = ложь или побочный()`,
			wantCalled: 1,
			wantResult: value.Boolean(true),
		},
		{
			name: "и with falsy left skips right",
			src: `
перем вызвано = 0
функция побочный()
	вызвано = вызвано + 1
	вернуть истина
конец
перем итог = ложь и побочный()`,
			wantCalled: 0,
			wantResult: value.Boolean(false),
		},
		{
			name: "и with truthy left evaluates right",
			src: `
перем вызвано = 0
функция побочный()
	вызвано = вызвано + 1
	вернуть истина
конец
перем итог = истина и побочный()`,
			wantCalled: 1,
			wantResult: value.Boolean(true),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, _, err := compileAndRun(t, c.src)
			require.NoError(t, err)
			assert.Equal(t, value.Number(c.wantCalled), m.Globals["вызвано"])
			assert.Equal(t, c.wantResult, m.Globals["итог"])
		})
	}
}

func TestGlobalWriteOnce(t *testing.T) {
	_, _, err := compileAndRun(t, `
перем x = 1
перем x = 2`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "уже определено")
}

func TestSuperDispatchesToParentMethod(t *testing.T) {
	m, _, err := compileAndRun(t, `
класс Животное
	функция говорить()
		вернуть "animal"
	конец
конец

класс Собака расширяет Животное
	функция говорить()
		вернуть "bark"
	конец

	функция оба()
		вернуть родитель.говорить() + "/" + это.говорить()
	конец
конец

перем д = Собака()
перем итог = д.оба()`)
	require.NoError(t, err)
	assert.Equal(t, "animal/bark", m.Globals["итог"].String())
}

func TestBoundMethodIdentity(t *testing.T) {
	m, _, err := compileAndRun(t, `
класс Точка
	функция конструктор(x)
		это.x = x
	конец

	функция получить()
		вернуть это.x
	конец
конец

перем p = Точка(1)
перем а = p.получить
перем б = p.получить`)
	require.NoError(t, err)
	a, aok := m.Globals["а"].(*value.BoundMethod)
	b, bok := m.Globals["б"].(*value.BoundMethod)
	require.True(t, aok)
	require.True(t, bok)
	assert.NotSame(t, a, b, "repeated instance.m access must produce distinct BoundMethods")
	eq, err := value.Equals(a, b)
	require.NoError(t, err)
	assert.False(t, eq, "distinct BoundMethods from the same instance.m must not compare equal")
}

func TestMaxStepsLimit(t *testing.T) {
	prog, err := parser.Parse("test", `
перем i = 0
пока истина
	i = i + 1
конец`)
	require.NoError(t, err)
	resolved, err := resolver.Resolve(prog, func(string) (string, error) { return "", assert.AnError })
	require.NoError(t, err)
	fn, err := codegen.Compile(resolved)
	require.NoError(t, err)

	m := vm.New()
	m.Limits.MaxSteps = 100
	_, err = m.Run(fn)
	require.Error(t, err)
	var limitErr *vm.LimitError
	assert.ErrorAs(t, err, &limitErr)
}
