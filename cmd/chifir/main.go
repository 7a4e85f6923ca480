// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/chifir/emulator"
	"github.com/ezrec/chifir/io"
	"github.com/ezrec/chifir/machine"
)

func main() {
	var compile string
	var listing bool
	var output string
	var headless bool
	var verbose bool

	flag.StringVar(&compile, "c", "", "source file to assemble")
	flag.BoolVar(&listing, "l", false, "print the assembled listing, do not execute")
	flag.StringVar(&output, "o", "", "write the binary image, do not execute")
	flag.BoolVar(&headless, "n", false, "run without display or keyboard")
	flag.BoolVar(&verbose, "v", false, "verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 {
		log.Fatalf("%v: no source file (-c)", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	asm := &machine.Assembler{}
	for attr, val := range emu.Defines() {
		asm.Predefine(attr, val)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	emu.Program = prog

	if listing {
		for _, inst := range prog.Instructions {
			fmt.Printf("%08x  %-24s ; line %d\n",
				inst.Addr, machine.Disassemble(inst.Code), inst.LineNo)
		}
		return
	}

	if len(output) != 0 {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()

		for _, code := range prog.Binary() {
			err = binary.Write(ouf, binary.LittleEndian, code)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
		}
		return
	}

	if !headless {
		restore, err := setRawIO()
		if err != nil {
			log.Fatalf("%v: terminal: %v", os.Args[0], err)
		}
		defer restore()

		// Clear the screen and home the cursor before the first frame.
		fmt.Print("\x1b[2J" + io.CURSOR_HOME)

		emu.Screen.Output = os.Stdout
		emu.Machine.Keys = io.NewKeys(os.Stdin)
	}

	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}
}
