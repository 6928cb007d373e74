// Package nativelib implements the native module contract (spec.md §6
// "Native module contract": a host function is
// (args: [Value]) -> Ok(Value) | Err(string)) and registers every
// exposed surface into a VM's global table under its mangled namespace
// name — file I/O, stdin/stdout, process control, environment variables,
// JSON parse/stringify, and HTTP (spec.md §6, SPEC_FULL.md §11-§12).
// This mirrors the teacher's approach of registering host builtins as
// plain functions in a shared namespace (lang/machine/universe.go's
// predeclared-identifiers table), generalized here to the mangled
// "namespace::name" global-table keys spec.md §4.5 specifies instead of
// a single flat universe.
package nativelib

import (
	"fmt"
	"io"

	"github.com/ponos-lang/ponos/lang/value"
)

// Host bundles the external resources natives need: the streams a VM
// exposes (spec.md §5 "Thread-scoped Stdout/Stderr/Stdin") and an exit
// hook, kept separate from *os.Exit so tests can observe it instead of
// killing the test binary.
type Host struct {
	Stdout io.Writer
	Stdin  io.Reader
	Exit   func(code int)
}

// Register installs every native under its mangled global name into
// globals (spec.md §4.5 "Native modules register under their own mangled
// names, e.g. ио::вывести").
func Register(globals map[string]value.Value, h Host) {
	def := func(name string, fn value.NativeFunc) {
		globals[name] = &value.NativeFunction{Name: name, Fn: fn}
	}
	registerIO(def, h)
	registerFS(def)
	registerSystem(def, h)
	registerJSON(def)
	registerHTTP(def)
}

// nativeErr builds the (Value, error) pair every native returns on
// failure: Nil plus an error whose message the VM's Call dispatch turns
// into a thrown String (spec.md §4.4, §7 "Native failure").
func nativeErr(format string, args ...any) (value.Value, error) {
	return value.NilValue, fmt.Errorf(format, args...)
}

// argError reports a wrong-arity or wrong-type argument to a native.
func argError(name string, i int, want string, got value.Value) error {
	return fmt.Errorf("%s: аргумент %d должен быть %s, получено %s", name, i, want, got.Type())
}
