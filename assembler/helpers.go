package assembler

import (
	"fmt"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
)

// role is the position an operand is resolved for.
type role int

const (
	roleSource role = iota
	roleDestination
)

// constantMode maps immediates to constant generator modes. Values are
// compared after masking to the operation size.
func constantMode(v int64, size cpu.Size) (cpu.Operand, bool) {
	switch v & size.Mask() {
	case 0:
		return cpu.Operand{Reg: cpu.CG, Mode: cpu.Const0}, true
	case 1:
		return cpu.Operand{Reg: cpu.CG, Mode: cpu.Const1}, true
	case 2:
		return cpu.Operand{Reg: cpu.CG, Mode: cpu.Const2}, true
	case 4:
		return cpu.Operand{Reg: cpu.SR, Mode: cpu.Const4}, true
	case 8:
		return cpu.Operand{Reg: cpu.SR, Mode: cpu.Const8}, true
	case size.Mask():
		return cpu.Operand{Reg: cpu.CG, Mode: cpu.ConstNeg1}, true
	}
	return cpu.Operand{}, false
}

// checkWord rejects values that do not fit in 16 bits, signed or unsigned.
func checkWord(v int64, what string) error {
	if v < -0x8000 || v > 0xFFFF {
		return fmt.Errorf("%w: %s %d does not fit in a word", ErrRange, what, v)
	}
	return nil
}

// resolve turns a parsed operand into a machine operand. Extension words go
// into Value; for symbolic operands Value holds the absolute target until
// emit turns it into a displacement.
func (asm *Assembler) resolve(op Operand, r role, size cpu.Size, pc uint16, final bool) (cpu.Operand, error) {
	expr := func() (value, error) {
		v, err := asm.evaluate(op.Expr, pc, final)
		if err != nil {
			return v, err
		}
		if final {
			if err := checkWord(v.v, op.Raw); err != nil {
				return v, err
			}
		}
		return v, nil
	}

	switch op.Kind {
	case OpRegister:
		return cpu.Operand{Reg: op.Reg, Mode: cpu.ModeFor(op.Reg, 0)}, nil

	case OpIndexed:
		switch op.Reg {
		case cpu.CG, cpu.PC:
			return cpu.Operand{}, fmt.Errorf("%w: %s cannot be indexed, use a symbolic operand", ErrOperands, op.Reg)
		case cpu.SR:
			op.Kind = OpAbsolute
			return asm.resolve(op, r, size, pc, final)
		}
		v, err := expr()
		if err != nil {
			return cpu.Operand{}, err
		}
		return cpu.Operand{Reg: op.Reg, Mode: cpu.Indexed, Value: v.v & 0xFFFF}, nil

	case OpIndirect, OpIncrement:
		if r == roleDestination {
			return cpu.Operand{}, fmt.Errorf("%w: %s is not a destination", ErrOperands, op.Raw)
		}
		switch op.Reg {
		case cpu.SR, cpu.CG, cpu.PC:
			return cpu.Operand{}, fmt.Errorf("%w: %s is not addressable, write an immediate", ErrOperands, op.Raw)
		}
		return cpu.Operand{Reg: op.Reg, Mode: cpu.ModeFor(op.Reg, uint16(op.Kind))}, nil

	case OpImmediate:
		if r == roleDestination {
			return cpu.Operand{}, fmt.Errorf("%w: immediate %s is not a destination", ErrOperands, op.Raw)
		}
		v, err := expr()
		if err != nil {
			return cpu.Operand{}, err
		}
		// Label values move between passes, so only fixed values may shrink.
		if !v.label {
			if c, ok := constantMode(v.v, size); ok {
				return c, nil
			}
		}
		return cpu.Operand{Reg: cpu.PC, Mode: cpu.IndirectIncrement, Value: v.v & 0xFFFF}, nil

	case OpAbsolute:
		v, err := expr()
		if err != nil {
			return cpu.Operand{}, err
		}
		return cpu.Operand{Reg: cpu.SR, Mode: cpu.AbsoluteAddressing, Value: v.v & 0xFFFF}, nil

	case OpSymbolic:
		v, err := expr()
		if err != nil {
			return cpu.Operand{}, err
		}
		return cpu.Operand{Reg: cpu.PC, Mode: cpu.Indexed, Value: v.v & 0xFFFF}, nil
	}

	return cpu.Operand{}, fmt.Errorf("%w: %s", ErrSyntax, op.Raw)
}

// expand replaces emulated instructions with the real instruction.
func expand(inst cpu.Instruction) (cpu.Instruction, error) {
	if p, ok := inst.(cpu.Pseudo); ok {
		return cpu.Expand(p)
	}
	return inst, nil
}

// operands returns the operands of inst in stream order.
func operands(inst cpu.Instruction) []cpu.Operand {
	switch inst := inst.(type) {
	case cpu.SingleOperand:
		return []cpu.Operand{inst.Dest}
	case cpu.DoubleOperand:
		return []cpu.Operand{inst.Src, inst.Dest}
	}
	return nil
}

// instructionSize is the instruction word plus its extension words.
func instructionSize(inst cpu.Instruction) int {
	inst, err := expand(inst)
	if err != nil {
		return 1
	}
	size := 1
	for _, op := range operands(inst) {
		size += op.ExtensionWords()
	}
	return size
}

// emit encodes inst at pc and appends its extension words.
func emit(inst cpu.Instruction, pc uint16) ([]uint16, error) {
	inst, err := expand(inst)
	if err != nil {
		return nil, err
	}
	w, err := cpu.Encode(inst)
	if err != nil {
		return nil, err
	}

	code := []uint16{w.Unsigned()}
	for _, op := range operands(inst) {
		if op.ExtensionWords() == 0 {
			continue
		}
		v := uint16(op.Value)
		if op.Reg == cpu.PC && op.Mode == cpu.Indexed {
			// displacement from the extension word itself
			v -= pc + uint16(len(code))
		}
		code = append(code, v)
	}
	return code, nil
}
