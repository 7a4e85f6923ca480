// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator wires a Chifir machine to its program listing and
// I/O adapters, and maps runtime faults back to source line numbers.
package emulator

import (
	"errors"
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/chifir/internal"
	"github.com/ezrec/chifir/io"
	"github.com/ezrec/chifir/machine"
)

var _emulator_defines = map[string]string{
	"DISPLAY_BASE":   fmt.Sprintf("%x", machine.DISPLAY_BASE),
	"DISPLAY_WIDTH":  fmt.Sprintf("%x", machine.DISPLAY_WIDTH),
	"DISPLAY_HEIGHT": fmt.Sprintf("%x", machine.DISPLAY_HEIGHT),
}

// Emulator state. Machine + program listing + display adapter.
type Emulator struct {
	Verbose          bool             // If set, enables verbose logging.
	*machine.Machine                  // Reference to the machine simulation.
	Program          *machine.Program // Currently loaded program listing.

	Screen io.Terminal // Sixel display adapter.
}

// NewEmulator creates a new emulator with the display adapter attached.
// The keyboard adapter is left for the caller to connect.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: machine.NewMachine(),
		Program: &machine.Program{},
	}

	emu.Machine.Screen = &emu.Screen

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Machine.Defines(),
	)
}

// Reset loads the program image at address zero and restarts the machine.
func (emu *Emulator) Reset() (err error) {
	emu.Machine.Verbose = false

	emu.Machine.Reset()
	emu.Program.Load(emu.Machine.Mem)

	emu.Machine.Verbose = emu.Verbose

	return
}

// LineNo returns the source line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	for _, inst := range emu.Program.Instructions {
		if emu.Machine.PC >= inst.Addr && emu.Machine.PC < inst.Addr+4 {
			return inst.LineNo
		}
	}

	return 0
}

// Tick performs a single machine step.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Machine.Step()
	if errors.Is(err, machine.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	done = emu.Machine.State() != machine.STATE_RUNNING

	return
}

// Run ticks the emulator until the program halts or faults.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
