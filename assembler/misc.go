package assembler

import (
	"fmt"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
)

// assembleSingle handles the format II instructions: rrc, swpb, rra, sxt,
// push, call and reti.
func (asm *Assembler) assembleSingle(n *Node, opc cpu.SingleOpcode, pc uint16, final bool) (cpu.Instruction, error) {
	size := n.Mnemonic.Size
	switch opc {
	case cpu.SWPB, cpu.SXT, cpu.CALL, cpu.RETI:
		if size != cpu.SizeWord {
			return nil, fmt.Errorf("%w: %s is word sized only", ErrSyntax, opc)
		}
	}

	if opc == cpu.RETI {
		if err := expectOperands(n, 0); err != nil {
			return nil, err
		}
		return cpu.SingleOperand{Opcode: cpu.RETI, Size: cpu.SizeWord, Dest: cpu.Operand{Reg: cpu.PC}}, nil
	}

	if err := expectOperands(n, 1); err != nil {
		return nil, err
	}

	switch opc {
	case cpu.RRC, cpu.SWPB, cpu.RRA, cpu.SXT:
		if n.Operands[0].Kind == OpImmediate {
			return nil, fmt.Errorf("%w: %s cannot write to an immediate", ErrOperands, opc)
		}
	}

	dest, err := asm.resolve(n.Operands[0], roleSource, size, pc, final)
	if err != nil {
		return nil, err
	}
	return cpu.SingleOperand{Opcode: opc, Size: size, Dest: dest}, nil
}
