// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a two-pass assembler for the Chifir machine. The first
// pass lays out instruction addresses and collects label definitions; the
// second resolves operands and encodes the instruction words.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]uint32 // Map of labels to word addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var charRe = regexp.MustCompile(`'\\?[^']'`)
var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)
var identRe = regexp.MustCompile(`^[A-Za-z_][0-9A-Za-z_\-]*$`)

// valueOf returns the value of a bare hexadecimal word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	if strings.HasPrefix(word, "0x") || strings.HasPrefix(word, "0X") {
		word = word[2:]
	}
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}
	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}
	v64, err := strconv.ParseUint(word, 16, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}
	value = uint32(v64)

	return
}

// parenEval does compile-time $(...) evaluations. Integer equates are
// bound as Starlark variables.
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		value32, verr := asm.valueOf(str)
		if verr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// parseLine tokenizes one source line: character literals and $()
// expressions become hex literals, equates are substituted, and .equ
// definitions are recorded. Labels are left in place for the caller.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%x", lineno)

	// Do 'x' evaluations
	line = charRe.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%x", str[0])
	})

	// Do $() evaluations
	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%x", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// stripLabels consumes leading `name:` tokens. The layout pass binds each
// label to the current address; the encode pass only skips them.
func (asm *Assembler) stripLabels(words []string, addr uint32, layout bool) (rest []string, err error) {
	rest = words
	for len(rest) > 0 && strings.HasSuffix(rest[0], ":") {
		if layout {
			label := strings.TrimSuffix(rest[0], ":")
			// A name that reads as a hex number would shadow that
			// literal in every operand.
			_, verr := asm.valueOf(label)
			if verr == nil || !identRe.MatchString(label) {
				err = ErrLabelInvalid(label)
				return
			}
			_, ok := asm.Label[label]
			if ok {
				err = ErrLabelDuplicate
				return
			}
			asm.Label[label] = addr
		}
		rest = rest[1:]
	}

	return
}

// sizeOf returns the number of instructions a mnemonic occupies.
func (asm *Assembler) sizeOf(mnemonic string) uint32 {
	macro, ok := macroMap[mnemonic]
	if ok {
		return macro.Size
	}

	return 1
}

// resolveOperand resolves one operand token to a word value: a label
// reference, a /n relative reference, or a bare hex literal.
func (asm *Assembler) resolveOperand(word string, addr uint32) (value uint32, err error) {
	value, ok := asm.Label[word]
	if ok {
		return
	}

	// Relative reference: /n names the n'th instruction after this one.
	if strings.HasPrefix(word, "/") {
		var n uint32
		n, err = asm.valueOf(word[1:])
		if err != nil {
			return
		}
		value = addr + 4*n
		return
	}

	value, err = asm.valueOf(word)
	if err != nil && identRe.MatchString(word) {
		err = ErrLabelMissing(word)
	}

	return
}

// encode translates one instruction line into machine words. Omitted
// trailing operands read as zero.
func (asm *Assembler) encode(words []string, addr uint32) (code [][4]uint32, err error) {
	macro := macroMap[words[0]]

	allowed := 3
	if macro != nil {
		allowed = macro.Operands
	}
	if len(words)-1 > allowed {
		err = ErrOperandExtra
		return
	}

	ops := make([]uint32, 0, 3)
	for _, word := range words[1:] {
		var value uint32
		value, err = asm.resolveOperand(word, addr)
		if err != nil {
			return
		}
		ops = append(ops, value)
	}
	for len(ops) < 3 {
		ops = append(ops, 0)
	}

	if macro != nil {
		code = macro.Expand(addr, ops)
		return
	}

	var opcode uint32
	op, ok := mnemonicMap[words[0]]
	if ok {
		opcode = uint32(op)
	} else {
		opcode, err = asm.valueOf(words[0])
		if err != nil {
			err = ErrMnemonicUnknown(words[0])
			return
		}
	}
	code = [][4]uint32{{opcode, ops[0], ops[1], ops[2]}}

	return
}

// reset prepares the equate table for a pass over the source.
func (asm *Assembler) reset() {
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			prog = nil
		}
	}()

	asm.Label = make(map[string]uint32, 16)

	// Pass 1: layout and symbol collection.
	asm.reset()
	addr := uint32(0)
	for n, text := range lines {
		lineno = n + 1
		line, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(line)

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
		words, err = asm.stripLabels(words, addr, true)
		if err != nil {
			return
		}
		if len(words) == 0 {
			continue
		}

		addr += 4 * asm.sizeOf(words[0])
	}

	// Pass 2: encoding.
	asm.reset()
	prog = &Program{}
	addr = 0
	for n, text := range lines {
		lineno = n + 1
		line, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(line)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
		words, err = asm.stripLabels(words, addr, false)
		if err != nil {
			return
		}
		if len(words) == 0 {
			continue
		}

		var code [][4]uint32
		code, err = asm.encode(words, addr)
		if err != nil {
			return
		}
		for i, c := range code {
			prog.Instructions = append(prog.Instructions, Instruction{
				LineNo: lineno,
				Addr:   addr + uint32(4*i),
				Words:  words,
				Code:   c,
			})
		}
		addr += uint32(4 * len(code))
	}

	return
}
