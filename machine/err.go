package machine

import (
	"errors"

	"github.com/ezrec/chifir/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrHalted       = errors.New(f("machine halted"))
	ErrOpcodeRange  = errors.New(f("opcode out of range"))
	ErrDivideByZero = errors.New(f("division by zero"))
	ErrModuloByZero = errors.New(f("modulo by zero"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOperandExtra    = errors.New(f("excessive operands"))
)

// ErrFault carries the machine state at the instruction that faulted.
type ErrFault struct {
	PC   uint32
	Code [4]uint32
	Err  error
}

func (err *ErrFault) Error() string {
	return f("pc %x '%v' %v", err.PC, Disassemble(err.Code), err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrSyntax locates an assembly error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrLabelInvalid string

func (err ErrLabelInvalid) Error() string {
	return f("'%v' is not a valid label name", string(err))
}

type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label %v missing", string(err))
}

type ErrMnemonicUnknown string

func (err ErrMnemonicUnknown) Error() string {
	return f("'%v' is not a mnemonic or opcode", string(err))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a hexadecimal number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
