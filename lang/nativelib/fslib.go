package nativelib

import (
	"fmt"
	"os"

	"github.com/ponos-lang/ponos/lang/value"
)

// registerFS wires the файл namespace: read/write/exists/delete (spec.md
// §6 "file I/O (read/write/exists/delete)").
func registerFS(def func(string, value.NativeFunc)) {
	def("файл::прочитать", func(args []value.Value) (value.Value, error) {
		path, err := stringArg("файл::прочитать", args, 0)
		if err != nil {
			return nativeErrv(err)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nativeErr("файл::прочитать: %v", err)
		}
		return value.NewString(string(b)), nil
	})

	def("файл::записать", func(args []value.Value) (value.Value, error) {
		path, err := stringArg("файл::записать", args, 0)
		if err != nil {
			return nativeErrv(err)
		}
		content, err := stringArg("файл::записать", args, 1)
		if err != nil {
			return nativeErrv(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nativeErr("файл::записать: %v", err)
		}
		return value.NilValue, nil
	})

	def("файл::существует", func(args []value.Value) (value.Value, error) {
		path, err := stringArg("файл::существует", args, 0)
		if err != nil {
			return nativeErrv(err)
		}
		_, statErr := os.Stat(path)
		return value.Boolean(statErr == nil), nil
	})

	def("файл::удалить", func(args []value.Value) (value.Value, error) {
		path, err := stringArg("файл::удалить", args, 0)
		if err != nil {
			return nativeErrv(err)
		}
		if err := os.Remove(path); err != nil {
			return nativeErr("файл::удалить: %v", err)
		}
		return value.NilValue, nil
	})
}

// stringArg fetches args[i] as a value.String's Go string, or reports an
// arity/type error naming the offending native.
func stringArg(name string, args []value.Value, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("%s: ожидался аргумент %d", name, i)
	}
	s, ok := args[i].(value.String)
	if !ok {
		return "", argError(name, i, "строка", args[i])
	}
	return s.String(), nil
}

func nativeErrv(err error) (value.Value, error) { return value.NilValue, err }
