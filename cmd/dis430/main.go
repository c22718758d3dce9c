package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
	"github.com/DaQueenJodi/MSP430-Emulator/disassembler"
	"github.com/grimdork/climate/arg"
)

func main() {
	opt := arg.New("dis430")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "b", "base", "Address the image is loaded at.", "0x4400", false, arg.VarString, nil)
	opt.SetPositional("INPUT", "Little-endian binary image.", "", true, arg.VarString)
	opt.SetPositional("OUTPUT", "Listing file. Prints to stdout when omitted.", "", false, arg.VarString)
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

	data, err := os.ReadFile(opt.GetPosString("INPUT"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}
	if len(data)%2 != 0 {
		fmt.Fprintf(os.Stderr, "Warning: odd image length, padding the last word\n")
	}

	text, err := disassembler.Disassemble(cpu.BytesToWords(data), uint16(base))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Disassembly error: %v\n", err)
		os.Exit(1)
	}

	outputFile := opt.GetPosString("OUTPUT")
	if outputFile == "" {
		fmt.Print(text)
		return
	}

	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Disassembly written to %s\n", outputFile)
}
