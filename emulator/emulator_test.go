package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chifir/io"
	"github.com/ezrec/chifir/machine"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Machine)
	assert.Equal(machine.Display(&emu.Screen), emu.Machine.Screen)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	defines := map[string]string{}
	for attr, val := range emu.Defines() {
		defines[attr] = val
	}

	assert.Equal("100000", defines["DISPLAY_BASE"])
	assert.Equal("200", defines["DISPLAY_WIDTH"])
	assert.Equal("2ac", defines["DISPLAY_HEIGHT"])
	assert.Equal("1000", defines["MEMORY_PAGE"])
}

// doParse assembles a program with the emulator defines bound.
func doParse(emu *Emulator, program []string, t *testing.T) (prog *machine.Program) {
	assert := assert.New(t)

	asm := &machine.Assembler{}
	for attr, val := range emu.Defines() {
		asm.Predefine(attr, val)
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	// Wait for a key, echo it to the display, and halt.
	program := []string{
		"loop: key 40",
		"jeq loop 40",
		"lea DISPLAY_BASE 40",
		"drw",
		"brk",
	}

	emu.Program = doParse(emu, program, t)

	keys := &io.Queue{}
	keys.Press(0, 'a')
	emu.Machine.Keys = keys

	err := emu.Reset()
	assert.NoError(err)
	assert.Equal(1, emu.LineNo())

	emu.Machine.DisplayWidth = 2
	emu.Machine.DisplayHeight = 6

	err = emu.Run()
	assert.NoError(err)

	assert.Equal(machine.STATE_HALTED, emu.Machine.State())
	assert.Equal(uint32('a'), emu.Machine.Mem.Read(0x40))
	assert.Equal(uint32('a'), emu.Machine.Mem.Read(machine.DISPLAY_BASE))
	assert.Equal(6, emu.Machine.Ticks)
	assert.Equal(5, emu.LineNo())

	frame := string(emu.Screen.Frame())
	assert.Equal(io.CURSOR_HOME+io.SIXEL_BEGIN+"@?$-"+io.SIXEL_END, frame)
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	program := []string{
		"nop",
		"brk",
	}

	emu.Program = doParse(emu, program, t)

	err := emu.Reset()
	assert.NoError(err)

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(2, emu.LineNo())

	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)

	// A halted emulator stays done without erroring.
	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorFault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	program := []string{
		"nop",
		"div 10 11 12",
	}

	emu.Program = doParse(emu, program, t)

	err := emu.Reset()
	assert.NoError(err)

	err = emu.Run()
	assert.ErrorIs(err, machine.ErrDivideByZero)
	assert.Equal(machine.STATE_FAULTED, emu.Machine.State())

	var re *ErrRuntime
	if assert.True(errors.As(err, &re)) {
		assert.Equal(2, re.LineNo)
	}

	var fault *machine.ErrFault
	if assert.True(errors.As(err, &fault)) {
		assert.Equal(uint32(4), fault.PC)
	}
}
