package disassembler

import (
	"fmt"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
)

// decodeAt decodes the instruction at code[idx]. Extension words are read
// into the operands' Value slots in source, destination order. PC-relative
// operands hold their absolute target address instead. An unknown
// opcode or an instruction cut short by the end of the image is returned
// with Valid unset and renders as a data word.
func decodeAt(code []uint16, idx int, base uint16) *Instruction {
	w := code[idx]
	inst := &Instruction{
		Address:  base + uint16(idx),
		Mnemonic: ".word",
		Operands: fmt.Sprintf("$%04x", w),
		Size:     1,
	}

	decoded, err := cpu.Decode(cpu.UnsignedWord(w))
	if err != nil {
		inst.Inst = decoded
		return inst
	}

	next := idx + 1
	ext := func(op *cpu.Operand) bool {
		if op.ExtensionWords() == 0 {
			return true
		}
		if next >= len(code) {
			return false
		}
		op.Value = int64(code[next])
		if op.Mode == cpu.Indexed {
			op.Value = int64(int16(code[next]))
		}
		if op.Reg == cpu.PC && op.Mode == cpu.Indexed {
			op.Value = int64(base + uint16(next) + code[next])
		}
		next++
		return true
	}

	switch d := decoded.(type) {
	case cpu.Jump:
		inst.Inst = d
		inst.Mnemonic = d.Condition.String()
		inst.Operands = formatOffset(d.Offset)

	case cpu.SingleOperand:
		if !ext(&d.Dest) {
			return inst
		}
		inst.Inst = d
		inst.Mnemonic, inst.Operands = formatSingle(d)

	case cpu.DoubleOperand:
		if !ext(&d.Src) || !ext(&d.Dest) {
			return inst
		}
		inst.Inst = d
		inst.Mnemonic, inst.Operands = formatDouble(d)
	}

	inst.Size = next - idx
	inst.Valid = true
	return inst
}

// formatSingle renders a single-operand instruction.
func formatSingle(d cpu.SingleOperand) (string, string) {
	if d.Opcode == cpu.RETI {
		return "reti", ""
	}
	return d.Opcode.String() + d.Size.Suffix(), formatOperand(d.Dest)
}

// formatOperand renders an operand, showing PC-relative operands as the
// address they refer to.
func formatOperand(op cpu.Operand) string {
	if op.Reg == cpu.PC && op.Mode == cpu.Indexed {
		return fmt.Sprintf("$%04x", uint16(op.Value))
	}
	return op.String()
}

// DecodeOne decodes the instruction at the start of code as if it were at
// addr and returns its mnemonic, operands and size in words.
func DecodeOne(code []uint16, addr uint16) (string, string, int) {
	if len(code) == 0 {
		return "", "", 0
	}
	inst := decodeAt(code, 0, addr)
	return inst.Mnemonic, inst.Operands, inst.Size
}
