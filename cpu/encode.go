package cpu

import "fmt"

// Encode is the inverse of Decode. Extension words are not produced; callers
// append them after the instruction word in the order source, destination.
func Encode(inst Instruction) (Word, error) {
	switch inst := inst.(type) {
	case Invalid:
		return inst.Word, nil

	case Jump:
		if inst.Condition > JMP {
			return Word{}, fmt.Errorf("%w: jump condition %d", ErrUnencodable, inst.Condition)
		}
		if inst.Offset < -512 || inst.Offset > 511 {
			return Word{}, fmt.Errorf("%w: jump offset %d out of range", ErrUnencodable, inst.Offset)
		}
		v := uint16(jumpPrefix) << 13
		v |= inst.Condition.Code() << jumpCondShift
		v |= uint16(inst.Offset) & jumpOffsetMask
		return UnsignedWord(v), nil

	case SingleOperand:
		if inst.Opcode > RETI {
			return Word{}, fmt.Errorf("%w: single operand opcode %d", ErrUnencodable, inst.Opcode)
		}
		mode, err := modeCode(inst.Dest)
		if err != nil {
			return Word{}, err
		}
		v := uint16(singleOperandPrefix) << 10
		v |= inst.Opcode.Code() << singleOpShift
		v |= inst.Size.bit() << singleSizeShift
		v |= mode << singleModeShift
		v |= uint16(inst.Dest.Reg) & singleDestMask
		return UnsignedWord(v), nil

	case DoubleOperand:
		if inst.Opcode > AND {
			return Word{}, fmt.Errorf("%w: double operand opcode %d", ErrUnencodable, inst.Opcode)
		}
		src, err := modeCode(inst.Src)
		if err != nil {
			return Word{}, err
		}
		dest, err := modeCode(inst.Dest)
		if err != nil {
			return Word{}, err
		}
		if dest > 1 {
			return Word{}, fmt.Errorf("%w: %s is not a double operand destination mode for %s", ErrUnencodable, inst.Dest.Mode, inst.Dest.Reg)
		}
		v := inst.Opcode.Code() << doubleOpShift
		v |= uint16(inst.Src.Reg&0xF) << doubleSrcShift
		v |= dest << doubleDestModeShift
		v |= inst.Size.bit() << doubleSizeShift
		v |= src << doubleSrcModeShift
		v |= uint16(inst.Dest.Reg) & doubleDestMask
		return UnsignedWord(v), nil

	case Pseudo:
		expanded, err := Expand(inst)
		if err != nil {
			return Word{}, err
		}
		return Encode(expanded)
	}

	return Word{}, fmt.Errorf("%w: %v", ErrUnencodable, inst)
}

func modeCode(op Operand) (uint16, error) {
	if !op.Reg.Valid() {
		return 0, fmt.Errorf("%w: register %d", ErrUnencodable, op.Reg)
	}
	code, ok := op.Mode.Code(op.Reg)
	if !ok {
		return 0, fmt.Errorf("%w: %s cannot be used with %s", ErrUnencodable, op.Mode, op.Reg)
	}
	return code, nil
}
