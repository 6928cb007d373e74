package nativelib

import (
	"os"
	"os/exec"
	"strconv"

	"github.com/ponos-lang/ponos/lang/value"
)

// registerSystem wires системный::выход (process exit, SPEC_FULL.md §12),
// системный::окружение (environment variable lookup, spec.md §6
// "environment variables"), and системный::выполнить (process execution,
// spec.md §6 "process execution"; mirrors original_source/src/ponos/native/system.rs's
// sys_execute).
func registerSystem(def func(string, value.NativeFunc), h Host) {
	def("системный::выход", func(args []value.Value) (value.Value, error) {
		code := 0
		if len(args) > 0 {
			n, ok := args[0].(value.Number)
			if !ok {
				return nativeErrv(argError("системный::выход", 0, "число", args[0]))
			}
			code = int(n)
		}
		exit := h.Exit
		if exit == nil {
			exit = os.Exit
		}
		exit(code)
		return value.NilValue, nil
	})

	def("системный::окружение", func(args []value.Value) (value.Value, error) {
		name, err := stringArg("системный::окружение", args, 0)
		if err != nil {
			return nativeErrv(err)
		}
		v, ok := os.LookupEnv(name)
		if !ok {
			return value.NilValue, nil
		}
		return value.NewString(v), nil
	})

	def("системный::выполнить", func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return nativeErr("выполнить ожидает команду")
		}
		command, ok := args[0].(value.String)
		if !ok {
			return nativeErrv(argError("системный::выполнить", 0, "строка", args[0]))
		}
		cmdArgs := make([]string, 0, len(args)-1)
		for _, a := range args[1:] {
			switch v := a.(type) {
			case value.String:
				cmdArgs = append(cmdArgs, v.String())
			case value.Number:
				cmdArgs = append(cmdArgs, strconv.FormatFloat(float64(v), 'g', -1, 64))
			case value.Boolean:
				cmdArgs = append(cmdArgs, strconv.FormatBool(bool(v)))
			default:
				cmdArgs = append(cmdArgs, "")
			}
		}
		out, err := exec.Command(command.String(), cmdArgs...).Output()
		if err != nil {
			return nativeErr("ошибка выполнения: %s", err)
		}
		return value.NewString(string(out)), nil
	})
}
