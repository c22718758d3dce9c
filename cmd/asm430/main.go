package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/DaQueenJodi/MSP430-Emulator/assembler"
	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
	"github.com/grimdork/climate/arg"
)

func main() {
	opt := arg.New("asm430")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "Write a little-endian binary image to this file instead of printing hex words.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "b", "base", "Address of the first word.", "0x4400", false, arg.VarString, nil)
	opt.SetPositional("SOURCE", "Assembly source file.", "", true, arg.VarString)
	err := opt.Parse(os.Args)
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	base, err := strconv.ParseUint(opt.GetString("base"), 0, 16)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid base address: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(opt.GetPosString("SOURCE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading source file: %v\n", err)
		os.Exit(1)
	}

	asm := assembler.New()
	code, err := asm.Assemble(string(data), uint16(base))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Assembly error: %v\n", err)
		os.Exit(1)
	}

	out := opt.GetString("output")
	if out == "" {
		words := make([]string, len(code))
		for i, w := range code {
			words[i] = fmt.Sprintf("%04x", w)
		}
		fmt.Println(strings.Join(words, " "))
		return
	}

	if err := os.WriteFile(out, cpu.WordsToBytes(code), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d words written to %s\n", len(code), out)
}
