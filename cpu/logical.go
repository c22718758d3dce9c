package cpu

import "fmt"

// opLogical handles AND, BIT, BIC, BIS and XOR. BIC and BIS leave the flags
// alone; BIT and AND set C to the inverse of Z.
func (tx *transaction) opLogical(inst DoubleOperand) error {
	src, err := tx.source(inst.Src, inst.Size)
	if err != nil {
		return fmt.Errorf("%s failed to get source operand: %w", inst.Opcode, err)
	}

	loc, err := tx.destination(inst.Dest)
	if err != nil {
		return fmt.Errorf("%s failed to get destination operand: %w", inst.Opcode, err)
	}
	dst := tx.read(loc, inst.Size)

	switch inst.Opcode {
	case BIC:
		tx.write(loc, dst&^src, inst.Size)
	case BIS:
		tx.write(loc, dst|src, inst.Size)
	case AND, BIT:
		r := dst & src
		f := nz(r, inst.Size)
		f.c = !f.z
		tx.setFlags(f)
		if inst.Opcode == AND {
			tx.write(loc, r, inst.Size)
		}
	case XOR:
		r := dst ^ src
		f := nz(r, inst.Size)
		f.c = !f.z
		sign := inst.Size.SignBit()
		f.v = src&sign != 0 && dst&sign != 0
		tx.setFlags(f)
		tx.write(loc, r, inst.Size)
	default:
		return fmt.Errorf("%w: %s is not logical", ErrUnknownOpcode, inst.Opcode)
	}
	return nil
}

// opRRC handles RRC (rotate right through carry).
func (tx *transaction) opRRC(inst SingleOperand) error {
	dst, v, err := tx.modify(inst.Dest, inst.Size)
	if err != nil {
		return fmt.Errorf("RRC failed to get operand: %w", err)
	}

	r := v >> 1
	if tx.ctx.Registers.Status().C() {
		r |= inst.Size.SignBit()
	}
	f := nz(r, inst.Size)
	f.c = v&1 == 1
	tx.setFlags(f)
	tx.write(dst, r, inst.Size)
	return nil
}

// opRRA handles RRA (arithmetic shift right).
func (tx *transaction) opRRA(inst SingleOperand) error {
	dst, v, err := tx.modify(inst.Dest, inst.Size)
	if err != nil {
		return fmt.Errorf("RRA failed to get operand: %w", err)
	}

	r := v>>1 | v&inst.Size.SignBit()
	f := nz(r, inst.Size)
	f.c = v&1 == 1
	tx.setFlags(f)
	tx.write(dst, r, inst.Size)
	return nil
}
