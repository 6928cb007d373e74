package maincmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponos-lang/ponos/internal/maincmd"
)

func TestRunExecutesSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "программа.поз")
	src := "ио::вывести(\"привет, мир\")\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	var out, eout bytes.Buffer
	c := &maincmd.Cmd{}
	err := c.Run(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &eout, Stdin: &bytes.Buffer{}}, []string{path})
	require.NoError(t, err)
	assert.Equal(t, "привет, мир\n", out.String())
}

func TestRunReportsCompileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "сломано.поз")
	require.NoError(t, os.WriteFile(path, []byte("перем = 1"), 0o644))

	var out, eout bytes.Buffer
	c := &maincmd.Cmd{}
	err := c.Run(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &eout, Stdin: &bytes.Buffer{}}, []string{path})
	assert.Error(t, err)
	assert.NotEmpty(t, eout.String())
}

func TestRunReportsMissingFile(t *testing.T) {
	var out, eout bytes.Buffer
	c := &maincmd.Cmd{}
	err := c.Run(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &eout, Stdin: &bytes.Buffer{}}, []string{filepath.Join(t.TempDir(), "нет.поз")})
	assert.Error(t, err)
}
