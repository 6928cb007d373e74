// Package bytecode defines the instruction set shared by the code
// generator and the virtual machine (spec.md §4.1). The stream is a flat
// sequence of self-contained instructions: each opcode carries at most one
// embedded operand (a pool index, a slot number, a jump target, or an
// arity count), so there is never a need to decode raw operand bytes
// out-of-band. Per the design note in spec.md §4.1.1, instructions that
// conceptually carry a trailing name constant (Class, GetProperty,
// SetProperty, GetSuper, DefineMethod) are encoded here as a single
// instruction whose operand already is that name's constant-pool index;
// this is one of the two faithful encodings the spec allows.
package bytecode

// Op is one opcode of the instruction set.
type Op int32

const (
	// Stack
	Constant Op = iota // push pool[A]
	Pop
	Dup

	// Arithmetic (binary: pop right then left, push result)
	Add
	Sub
	Mul
	Div
	Mod
	Negate // unary

	// Logic
	True_
	False_
	Eql
	Not
	Greater
	Less

	// Locals
	DefineLocal // pop TOS into slot base+A
	GetLocal
	SetLocal

	// Upvalues
	GetUpvalue
	SetUpvalue
	CloseUpvalues // close upvalues at or above base+A

	// Control flow (A is an absolute instruction index in this function)
	Jump
	JumpIfTrue
	JumpIfFalse
	Halt // no-op landing pad

	// Closures
	Closure // A = const pool index of the *value.Function blueprint

	// Calls
	Call // A = argc

	Return_

	// Classes
	Class       // A = const pool index of the class name (String)
	Inherit
	DefineMethod // A = const pool index of the method name (String)

	// Properties
	GetProperty // A = const pool index of the field/method name
	SetProperty
	GetSuper

	// Indexing
	GetIndex
	SetIndex
	MakeRange // pops end, start (either may be Nil meaning "omitted"), pushes Range

	// Aggregates
	Array // A = element count
	Dict  // A = pair count

	// Globals
	DefineGlobal // A = const pool index of the mangled name (String)
	SetGlobal
	GetGlobal

	// Exceptions
	PushExceptionHandler // A = absolute target instruction index
	PopExceptionHandler
	Throw
)

// Instruction is one step of the VM's fetch-decode-execute cycle (spec.md
// GLOSSARY "Opcode / instruction"). Line is left zero by the code
// generator and is not read by the VM.
type Instruction struct {
	Op   Op
	A    int32
	Line int32
}

//go:generate stringer -type=Op
func (op Op) String() string {
	if int(op) < 0 || int(op) >= len(opNames) {
		return "Op(?)"
	}
	return opNames[op]
}

var opNames = [...]string{
	Constant: "Constant", Pop: "Pop", Dup: "Dup",
	Add: "Add", Sub: "Sub", Mul: "Mul", Div: "Div", Mod: "Mod", Negate: "Negate",
	True_: "True_", False_: "False_", Eql: "Eql", Not: "Not", Greater: "Greater", Less: "Less",
	DefineLocal: "DefineLocal", GetLocal: "GetLocal", SetLocal: "SetLocal",
	GetUpvalue: "GetUpvalue", SetUpvalue: "SetUpvalue", CloseUpvalues: "CloseUpvalues",
	Jump: "Jump", JumpIfTrue: "JumpIfTrue", JumpIfFalse: "JumpIfFalse", Halt: "Halt",
	Closure: "Closure", Call: "Call", Return_: "Return_",
	Class: "Class", Inherit: "Inherit", DefineMethod: "DefineMethod",
	GetProperty: "GetProperty", SetProperty: "SetProperty", GetSuper: "GetSuper",
	GetIndex: "GetIndex", SetIndex: "SetIndex", MakeRange: "MakeRange",
	Array: "Array", Dict: "Dict",
	DefineGlobal: "DefineGlobal", SetGlobal: "SetGlobal", GetGlobal: "GetGlobal",
	PushExceptionHandler: "PushExceptionHandler", PopExceptionHandler: "PopExceptionHandler", Throw: "Throw",
}
