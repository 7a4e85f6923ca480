package machine

import (
	"fmt"
)

// Disassemble renders one instruction as assembler source text. Opcodes
// outside the instruction set render as a raw hex word, which the
// assembler accepts back unchanged.
func Disassemble(code [4]uint32) (text string) {
	op := Op(code[0])

	var name string
	if op <= OP_NOP {
		name = op.String()
	} else {
		name = fmt.Sprintf("%x", code[0])
	}

	text = fmt.Sprintf("%s %x %x %x", name, code[1], code[2], code[3])

	return
}
