package disassembler

import (
	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
)

// formatDouble renders a double-operand instruction, preferring the emulated
// mnemonic when the encoding is the canonical form of one.
func formatDouble(d cpu.DoubleOperand) (string, string) {
	if p, ok := cpu.Emulated(d); ok {
		return formatPseudo(p)
	}
	return d.Opcode.String() + d.Size.Suffix(), formatOperand(d.Src) + ", " + formatOperand(d.Dest)
}

func formatPseudo(p cpu.Pseudo) (string, string) {
	mn := p.Opcode.String()
	if p.Opcode.Sized() {
		mn += p.Size.Suffix()
	}
	if p.Operand == nil {
		return mn, ""
	}
	return mn, formatOperand(*p.Operand)
}
