package nativelib_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponos-lang/ponos/lang/nativelib"
	"github.com/ponos-lang/ponos/lang/value"
)

func newGlobals(t *testing.T, stdout, stdin *bytes.Buffer) map[string]value.Value {
	t.Helper()
	globals := make(map[string]value.Value)
	if stdin == nil {
		stdin = bytes.NewBufferString("")
	}
	nativelib.Register(globals, nativelib.Host{
		Stdout: stdout,
		Stdin:  stdin,
		Exit:   func(int) {},
	})
	return globals
}

func call(t *testing.T, globals map[string]value.Value, name string, args ...value.Value) (value.Value, error) {
	t.Helper()
	fn, ok := globals[name].(*value.NativeFunction)
	require.True(t, ok, "missing native %s", name)
	return fn.Fn(args)
}

func TestIOOutput(t *testing.T) {
	var out bytes.Buffer
	globals := newGlobals(t, &out, nil)
	_, err := call(t, globals, "ио::вывести", value.NewString("привет"), value.Number(1))
	require.NoError(t, err)
	assert.Equal(t, "привет 1\n", out.String())
}

func TestIOReadLine(t *testing.T) {
	stdin := bytes.NewBufferString("строка\n")
	globals := newGlobals(t, &bytes.Buffer{}, stdin)
	v, err := call(t, globals, "ио::прочитатьСтроку")
	require.NoError(t, err)
	assert.Equal(t, "строка", v.String())
}

func TestFileWriteReadExistsDelete(t *testing.T) {
	globals := newGlobals(t, &bytes.Buffer{}, nil)
	path := filepath.Join(t.TempDir(), "проба.txt")

	_, err := call(t, globals, "файл::записать", value.NewString(path), value.NewString("данные"))
	require.NoError(t, err)

	exists, err := call(t, globals, "файл::существует", value.NewString(path))
	require.NoError(t, err)
	assert.Equal(t, value.Boolean(true), exists)

	content, err := call(t, globals, "файл::прочитать", value.NewString(path))
	require.NoError(t, err)
	assert.Equal(t, "данные", content.String())

	_, err = call(t, globals, "файл::удалить", value.NewString(path))
	require.NoError(t, err)

	exists, err = call(t, globals, "файл::существует", value.NewString(path))
	require.NoError(t, err)
	assert.Equal(t, value.Boolean(false), exists)
}

func TestSystemExitCode(t *testing.T) {
	var gotCode int
	globals := make(map[string]value.Value)
	nativelib.Register(globals, nativelib.Host{
		Stdout: &bytes.Buffer{},
		Stdin:  &bytes.Buffer{},
		Exit:   func(code int) { gotCode = code },
	})
	_, err := call(t, globals, "системный::выход", value.Number(2))
	require.NoError(t, err)
	assert.Equal(t, 2, gotCode)
}

func TestSystemExecuteCapturesStdout(t *testing.T) {
	globals := newGlobals(t, &bytes.Buffer{}, nil)
	out, err := call(t, globals, "системный::выполнить", value.NewString("echo"), value.NewString("привет"))
	require.NoError(t, err)
	assert.Equal(t, "привет\n", out.String())
}

func TestSystemExecuteMissingCommandIsError(t *testing.T) {
	globals := newGlobals(t, &bytes.Buffer{}, nil)
	_, err := call(t, globals, "системный::выполнить")
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	globals := newGlobals(t, &bytes.Buffer{}, nil)
	d := value.NewDict(2)
	k1, _ := value.ToKey(value.NewString("имя"))
	k2, _ := value.ToKey(value.NewString("возраст"))
	d.Set(k1, value.NewString("Аня"))
	d.Set(k2, value.Number(30))

	doc, err := call(t, globals, "json::записать", d)
	require.NoError(t, err)
	require.True(t, strings.Contains(doc.String(), `"имя":"Аня"`))

	back, err := call(t, globals, "json::разобрать", doc)
	require.NoError(t, err)
	eq, err := value.Equals(d, back)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestJSONParseInvalidDoc(t *testing.T) {
	globals := newGlobals(t, &bytes.Buffer{}, nil)
	_, err := call(t, globals, "json::разобрать", value.NewString("{не json"))
	assert.Error(t, err)
}
