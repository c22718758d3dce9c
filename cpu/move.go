package cpu

import "fmt"

// opMOV handles the MOV instruction. MOV does not affect the flags.
func (tx *transaction) opMOV(inst DoubleOperand) error {
	value, err := tx.source(inst.Src, inst.Size)
	if err != nil {
		return fmt.Errorf("MOV failed to get source operand: %w", err)
	}

	dst, err := tx.destination(inst.Dest)
	if err != nil {
		return fmt.Errorf("MOV failed to get destination operand: %w", err)
	}

	tx.write(dst, value, inst.Size)
	return nil
}

// opPUSH handles the PUSH instruction. Its operand is read as a source.
func (tx *transaction) opPUSH(inst SingleOperand) error {
	value, err := tx.source(inst.Dest, inst.Size)
	if err != nil {
		return fmt.Errorf("PUSH failed to get operand: %w", err)
	}
	tx.push(value)
	return nil
}

// opSWPB handles the SWPB (swap bytes) instruction. Flags are unaffected.
func (tx *transaction) opSWPB(inst SingleOperand) error {
	dst, v, err := tx.modify(inst.Dest, SizeWord)
	if err != nil {
		return fmt.Errorf("SWPB failed to get operand: %w", err)
	}
	tx.write(dst, (v&0xFF)<<8|(v>>8)&0xFF, SizeWord)
	return nil
}

// opSXT handles the SXT (sign extend byte to word) instruction.
func (tx *transaction) opSXT(inst SingleOperand) error {
	dst, v, err := tx.modify(inst.Dest, SizeByte)
	if err != nil {
		return fmt.Errorf("SXT failed to get operand: %w", err)
	}
	v = int64(int8(v)) & 0xFFFF

	f := nz(v, SizeWord)
	f.c = !f.z
	tx.setFlags(f)
	tx.write(dst, v, SizeWord)
	return nil
}
