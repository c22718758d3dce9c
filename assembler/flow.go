package assembler

import (
	"fmt"
	"strings"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
)

// Jump offsets are ten bit signed word counts.
const (
	minJumpOffset = -512
	maxJumpOffset = 511
)

// assembleJump handles the eight conditional jumps and their aliases. The
// operand is either a target address (a label, $ or an expression) or a
// literal offset written with an explicit sign, as the disassembler prints it.
func (asm *Assembler) assembleJump(n *Node, c cpu.Condition, pc uint16, final bool) (cpu.Instruction, error) {
	if n.Mnemonic.Sized {
		return nil, fmt.Errorf("%w: %s takes no size suffix", ErrSyntax, n.Mnemonic.Value)
	}
	if err := expectOperands(n, 1); err != nil {
		return nil, err
	}
	op := n.Operands[0]
	if op.Kind != OpSymbolic {
		return nil, fmt.Errorf("%w: %s needs a label or an offset, got %s", ErrOperands, n.Mnemonic.Value, op.Raw)
	}

	v, err := asm.evaluate(op.Expr, pc, final)
	if err != nil {
		return nil, err
	}

	var offset int64
	if strings.HasPrefix(op.Expr, "+") || strings.HasPrefix(op.Expr, "-") {
		offset = v.v
	} else {
		// PC already points past the jump when the offset is applied.
		offset = int64(int16(uint16(v.v) - (pc + 1)))
	}

	if offset < minJumpOffset || offset > maxJumpOffset {
		if final {
			return nil, fmt.Errorf("%w: jump to %s is %d words away", ErrRange, op.Raw, offset)
		}
		offset = 0
	}
	return cpu.Jump{Condition: c, Offset: cpu.Offset(offset)}, nil
}
