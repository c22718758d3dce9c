package assembler

import (
	"fmt"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
)

// assemblePseudo handles emulated instructions such as nop, ret, inc and br.
// They are kept as cpu.Pseudo until emit expands them.
func (asm *Assembler) assemblePseudo(n *Node, opc cpu.PseudoOpcode, pc uint16, final bool) (cpu.Instruction, error) {
	size := n.Mnemonic.Size
	if !opc.Sized() && size != cpu.SizeWord {
		return nil, fmt.Errorf("%w: %s is word sized only", ErrSyntax, opc)
	}

	p := cpu.Pseudo{Opcode: opc, Size: size}
	switch opc.Kind() {
	case cpu.NoOperand:
		if err := expectOperands(n, 0); err != nil {
			return nil, err
		}
		return p, nil
	case cpu.SourceOperand:
		if err := expectOperands(n, 1); err != nil {
			return nil, err
		}
		op, err := asm.resolve(n.Operands[0], roleSource, size, pc, final)
		if err != nil {
			return nil, err
		}
		p.Operand = &op
		return p, nil
	}

	if err := expectOperands(n, 1); err != nil {
		return nil, err
	}
	op, err := asm.resolve(n.Operands[0], roleDestination, size, pc, final)
	if err != nil {
		return nil, err
	}
	p.Operand = &op
	return p, nil
}
