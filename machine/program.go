package machine

import (
	"iter"
)

// Instruction is one assembled instruction with its source location.
type Instruction struct {
	LineNo int       // Source line number.
	Addr   uint32    // Word address of the opcode.
	Words  []string  // Source tokens after expansion.
	Code   [4]uint32 // Encoded opcode and operands.
}

// Program is an assembled listing.
type Program struct {
	Instructions []Instruction
}

// Debug locates the instruction covering a program counter value.
type Debug struct {
	*Instruction
	Index int
}

func (prog *Program) Debug(pc uint32) (dbg Debug) {
	for n, inst := range prog.Instructions {
		if pc >= inst.Addr && pc < inst.Addr+4 {
			dbg = Debug{
				Instruction: &prog.Instructions[n],
				Index:       int(pc - inst.Addr),
			}
			break
		}
	}

	return
}

// Codes iterates the program as (address, instruction words) pairs.
func (prog *Program) Codes() iter.Seq2[uint32, [4]uint32] {
	return func(yield func(addr uint32, code [4]uint32) bool) {
		for _, inst := range prog.Instructions {
			if !yield(inst.Addr, inst.Code) {
				return
			}
		}
	}
}

// Binary flattens the program into a word image starting at address zero.
func (prog *Program) Binary() (bins []uint32) {
	for _, inst := range prog.Instructions {
		bins = append(bins, inst.Code[:]...)
	}

	return
}

// Load writes the program image into memory.
func (prog *Program) Load(mem *Memory) {
	for addr, code := range prog.Codes() {
		for n, word := range code {
			mem.Write(addr+uint32(n), word)
		}
	}
}
