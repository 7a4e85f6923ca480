package machine

// Op is a machine opcode.
type Op uint32

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_BRK = Op(0)  // brk
	OP_LPC = Op(1)  // lpc
	OP_BEQ = Op(2)  // beq
	OP_SPC = Op(3)  // spc
	OP_LEA = Op(4)  // lea
	OP_LRA = Op(5)  // lra
	OP_SRA = Op(6)  // sra
	OP_ADD = Op(7)  // add
	OP_SUB = Op(8)  // sub
	OP_MUL = Op(9)  // mul
	OP_DIV = Op(10) // div
	OP_MOD = Op(11) // mod
	OP_CMP = Op(12) // cmp
	OP_NAD = Op(13) // nad
	OP_DRW = Op(14) // drw
	OP_KEY = Op(15) // key
	OP_NOP = Op(16) // nop
)

// mnemonicMap maps three-letter mnemonics to opcodes.
var mnemonicMap = map[string]Op{
	"brk": OP_BRK,
	"lpc": OP_LPC,
	"beq": OP_BEQ,
	"spc": OP_SPC,
	"lea": OP_LEA,
	"lra": OP_LRA,
	"sra": OP_SRA,
	"add": OP_ADD,
	"sub": OP_SUB,
	"mul": OP_MUL,
	"div": OP_DIV,
	"mod": OP_MOD,
	"cmp": OP_CMP,
	"nad": OP_NAD,
	"drw": OP_DRW,
	"key": OP_KEY,
	"nop": OP_NOP,
}

// Macro is a fixed assembler template expanding to base instructions.
// The expansion length is known up front so the layout pass can account
// for the words a macro occupies.
type Macro struct {
	Operands int    // Operands consumed from the source line.
	Size     uint32 // Instructions emitted.

	// Expand builds the expansion for a macro at word address addr with
	// fully resolved operands, padded to three with zeros.
	Expand func(addr uint32, ops []uint32) [][4]uint32
}

// macroMap is the fixed macro set. Both templates stash their resolved
// target address in one of their own operand slots, so the indirect
// control-flow opcodes can jump to a literal address in one instruction.
var macroMap = map[string]*Macro{
	// jmp TARGET: unconditional jump. The A operand points back at the
	// instruction's own B slot, which holds the target.
	"jmp": {
		Operands: 1,
		Size:     1,
		Expand: func(addr uint32, ops []uint32) [][4]uint32 {
			return [][4]uint32{
				{uint32(OP_LPC), addr + 2, ops[0], 0},
			}
		},
	},

	// jeq TARGET COND: jump to TARGET when M[COND] is zero. The target
	// rides in the C slot.
	"jeq": {
		Operands: 2,
		Size:     1,
		Expand: func(addr uint32, ops []uint32) [][4]uint32 {
			return [][4]uint32{
				{uint32(OP_BEQ), addr + 3, ops[1], ops[0]},
			}
		},
	},
}
