package assembler

import (
	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
)

// assembleDouble handles the format I instructions, mov through and.
func (asm *Assembler) assembleDouble(n *Node, opc cpu.DoubleOpcode, pc uint16, final bool) (cpu.Instruction, error) {
	if err := expectOperands(n, 2); err != nil {
		return nil, err
	}
	size := n.Mnemonic.Size

	src, err := asm.resolve(n.Operands[0], roleSource, size, pc, final)
	if err != nil {
		return nil, err
	}
	dest, err := asm.resolve(n.Operands[1], roleDestination, size, pc, final)
	if err != nil {
		return nil, err
	}
	return cpu.DoubleOperand{Opcode: opc, Src: src, Size: size, Dest: dest}, nil
}
