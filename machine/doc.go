// Package machine implements the Chifir virtual computer and its assembler.
//
// The machine is a 17-opcode memory-to-memory architecture: a sparse 32-bit
// word memory, a program counter, and no other registers. Each instruction is
// four consecutive words (opcode, A, B, C). Two opcodes signal the display
// and keyboard adapters; everything else reads and writes memory.
//
// The assembler translates mnemonic source text into a memory image in two
// passes, supporting labels, relative references, equates, compile-time
// expression evaluation, and a small fixed macro set.
package machine
