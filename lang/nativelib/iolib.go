package nativelib

import (
	"bufio"
	"fmt"

	"github.com/ponos-lang/ponos/lang/value"
)

// registerIO wires the ио namespace: вывести writes a line to Stdout,
// прочитатьСтроку reads one line from Stdin (spec.md §6 "stdin/stdout").
func registerIO(def func(string, value.NativeFunc), h Host) {
	reader := bufio.NewReader(h.Stdin)

	def("ио::вывести", func(args []value.Value) (value.Value, error) {
		var parts []any
		for _, a := range args {
			parts = append(parts, a.String())
		}
		fmt.Fprintln(h.Stdout, parts...)
		return value.NilValue, nil
	})

	def("ио::прочитатьСтроку", func(args []value.Value) (value.Value, error) {
		if len(args) != 0 {
			return nativeErr("ио::прочитатьСтроку: не принимает аргументов")
		}
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return value.NilValue, nil
		}
		line = trimNewline(line)
		return value.NewString(line), nil
	})
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
