package bytecode

import "testing"

func TestOpcodeString(t *testing.T) {
	for op := Op(0); op < Op(len(opNames)); op++ {
		if op.String() == "" {
			t.Errorf("missing string representation of opcode %d", op)
		}
	}
}

func TestOpcodeStringOutOfRange(t *testing.T) {
	if s := Op(-1).String(); s != "Op(?)" {
		t.Errorf("expected placeholder for out-of-range opcode, got %q", s)
	}
	if s := Op(len(opNames)).String(); s != "Op(?)" {
		t.Errorf("expected placeholder for out-of-range opcode, got %q", s)
	}
}
