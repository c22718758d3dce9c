package disassembler

import (
	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
)

// isTerminal checks if an instruction unconditionally stops linear execution.
func isTerminal(inst *Instruction) bool {
	switch d := inst.Inst.(type) {
	case cpu.Jump:
		return d.Condition == cpu.JMP
	case cpu.SingleOperand:
		return d.Opcode == cpu.RETI
	case cpu.DoubleOperand:
		// anything written to PC: br, ret
		return d.Dest.Reg == cpu.PC && d.Dest.Mode == cpu.Direct
	}
	return false
}

// isCall reports whether the instruction is a subroutine call.
func isCall(inst *Instruction) bool {
	s, ok := inst.Inst.(cpu.SingleOperand)
	return ok && s.Opcode == cpu.CALL
}

// isImmediate reports whether an operand is an #imm stream word.
func isImmediate(op cpu.Operand) bool {
	return op.Reg == cpu.PC && op.Mode == cpu.IndirectIncrement
}

// branchTarget returns the statically known destination of a jump, a call
// to an immediate address or a branch to an immediate address.
func branchTarget(inst *Instruction) (uint16, bool) {
	switch d := inst.Inst.(type) {
	case cpu.Jump:
		// PC has moved past the jump word when the offset is applied
		return uint16(int(inst.Address) + 1 + int(d.Offset)), true
	case cpu.SingleOperand:
		if d.Opcode == cpu.CALL && isImmediate(d.Dest) {
			return uint16(d.Dest.Value), true
		}
	case cpu.DoubleOperand:
		if d.Opcode == cpu.MOV && d.Dest.Reg == cpu.PC && d.Dest.Mode == cpu.Direct && isImmediate(d.Src) {
			return uint16(d.Src.Value), true
		}
	}
	return 0, false
}

// targetOperand renders the operand of a control transfer with a label.
func targetOperand(inst *Instruction, label string) string {
	if _, ok := inst.Inst.(cpu.Jump); ok {
		return label
	}
	return "#" + label
}
