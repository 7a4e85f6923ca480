package machine

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/chifir/io"
)

// Display is the adapter signalled by the drw opcode.
type Display io.Display

// Keyboard is the adapter polled by the key opcode.
type Keyboard io.Keyboard

// State is the execution state of the machine.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
	STATE_FAULTED = State(2) // faulted
)

// Default frame buffer geometry. The drw opcode renders this region of
// memory; the fields on Machine can reconfigure it before a run.
const (
	DISPLAY_BASE   = uint32(0x100000) // First word of the frame buffer.
	DISPLAY_WIDTH  = 512              // Frame buffer width in pixels.
	DISPLAY_HEIGHT = 684              // Frame buffer height in pixels.
)

var _machine_defines = map[string]string{
	"MEMORY_PAGE": fmt.Sprintf("%x", PAGE_WORDS),
}

// Machine is the Chifir execution engine: a sparse memory, a program
// counter, and the two I/O adapters.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Mem *Memory // Backing memory image.
	PC  uint32  // Address of the next instruction's opcode word.

	Screen Display  // Display adapter; nil makes drw a no-op.
	Keys   Keyboard // Keyboard adapter; nil reads as no key.

	DisplayBase   uint32 // First word of the frame buffer.
	DisplayWidth  int    // Frame buffer width in pixels.
	DisplayHeight int    // Frame buffer height in pixels.

	Ticks int // Executed instruction counter.

	state State
	fault error
}

// NewMachine creates a machine with an empty memory and default display
// geometry. The program counter starts at zero.
func NewMachine() (m *Machine) {
	m = &Machine{
		Mem:           NewMemory(),
		DisplayBase:   DISPLAY_BASE,
		DisplayWidth:  DISPLAY_WIDTH,
		DisplayHeight: DISPLAY_HEIGHT,
	}

	return
}

// Defines for the machine.
func (m *Machine) Defines() iter.Seq2[string, string] {
	return maps.All(_machine_defines)
}

// State returns the current execution state.
func (m *Machine) State() State {
	return m.state
}

// Fault returns the fault that stopped the machine, nil unless the state
// is faulted.
func (m *Machine) Fault() error {
	return m.fault
}

// Reset clears memory and statistics and puts the machine back into the
// running state with the program counter at zero.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("machine: reset")
	}

	m.Mem.Reset()
	m.PC = 0
	m.Ticks = 0
	m.state = STATE_RUNNING
	m.fault = nil
}

// Load resets the machine and copies a flat word image into memory
// starting at address zero.
func (m *Machine) Load(words []uint32) {
	m.Reset()
	for n, word := range words {
		m.Mem.Write(uint32(n), word)
	}
}

// Step executes one fetch-decode-execute cycle. A halted machine returns
// ErrHalted; a fault transitions to the faulted state and returns a
// *ErrFault carrying the program counter and instruction words.
func (m *Machine) Step() (err error) {
	switch m.state {
	case STATE_HALTED:
		return ErrHalted
	case STATE_FAULTED:
		return m.fault
	}

	pc := m.PC
	code := [4]uint32{
		m.Mem.Read(pc),
		m.Mem.Read(pc + 1),
		m.Mem.Read(pc + 2),
		m.Mem.Read(pc + 3),
	}

	if m.Verbose {
		log.Printf("%08x: %v", pc, Disassemble(code))
	}

	a, b, c := code[1], code[2], code[3]
	next := pc + 4

	switch Op(code[0]) {
	case OP_BRK:
		m.state = STATE_HALTED
		return

	case OP_LPC:
		next = m.Mem.Read(a)

	case OP_BEQ:
		if m.Mem.Read(b) == 0 {
			next = m.Mem.Read(a)
		}

	case OP_SPC:
		m.Mem.Write(a, pc)

	case OP_LEA:
		m.Mem.Write(a, m.Mem.Read(b))

	case OP_LRA:
		m.Mem.Write(a, m.Mem.Read(m.Mem.Read(b)))

	case OP_SRA:
		m.Mem.Write(m.Mem.Read(b), m.Mem.Read(a))

	case OP_ADD:
		m.Mem.Write(a, m.Mem.Read(b)+m.Mem.Read(c))

	case OP_SUB:
		m.Mem.Write(a, m.Mem.Read(b)-m.Mem.Read(c))

	case OP_MUL:
		m.Mem.Write(a, m.Mem.Read(b)*m.Mem.Read(c))

	case OP_DIV:
		div := m.Mem.Read(c)
		if div == 0 {
			err = ErrDivideByZero
			break
		}
		m.Mem.Write(a, m.Mem.Read(b)/div)

	case OP_MOD:
		div := m.Mem.Read(c)
		if div == 0 {
			err = ErrModuloByZero
			break
		}
		m.Mem.Write(a, m.Mem.Read(b)%div)

	case OP_CMP:
		var flag uint32
		if m.Mem.Read(b) < m.Mem.Read(c) {
			flag = 1
		}
		m.Mem.Write(a, flag)

	case OP_NAD:
		m.Mem.Write(a, ^(m.Mem.Read(b) & m.Mem.Read(c)))

	case OP_DRW:
		if m.Screen != nil {
			fb := m.Mem.ReadRange(m.DisplayBase, m.DisplayWidth*m.DisplayHeight)
			err = m.Screen.Refresh(fb, m.DisplayWidth, m.DisplayHeight)
		}

	case OP_KEY:
		var key uint32
		if m.Keys != nil {
			key = m.Keys.Poll()
		}
		m.Mem.Write(a, key)

	case OP_NOP:
		// pass

	default:
		err = ErrOpcodeRange
	}

	if err != nil {
		m.state = STATE_FAULTED
		m.fault = &ErrFault{PC: pc, Code: code, Err: err}
		err = m.fault
		return
	}

	m.PC = next
	m.Ticks += 1

	return
}

// Run steps the machine until it halts or faults.
func (m *Machine) Run() (err error) {
	for m.state == STATE_RUNNING {
		err = m.Step()
		if err != nil {
			return
		}
	}

	return
}
