package machine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"nop",
		"add 10 11 12",
		"brk",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	bins := prog.Binary()
	assert.Equal([]uint32{
		16, 0, 0, 0,
		7, 0x10, 0x11, 0x12,
		0, 0, 0, 0,
	}, bins)

	mem := NewMemory()
	prog.Load(mem)
	for n, word := range bins {
		assert.Equal(word, mem.Read(uint32(n)))
	}
}

func TestProgramDebug(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"nop",
		"add 10 11 12",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	dbg := prog.Debug(4)
	if assert.NotNil(dbg.Instruction) {
		assert.Equal(2, dbg.LineNo)
		assert.Equal(0, dbg.Index)
	}

	// Mid-instruction addresses resolve to the covering instruction.
	dbg = prog.Debug(6)
	if assert.NotNil(dbg.Instruction) {
		assert.Equal(2, dbg.LineNo)
		assert.Equal(2, dbg.Index)
	}

	dbg = prog.Debug(0x100)
	assert.Nil(dbg.Instruction)
}
