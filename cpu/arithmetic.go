package cpu

import "fmt"

// opArithmetic handles ADD, ADDC, SUB, SUBC, CMP and DADD. Subtraction is
// addition of the one's complement plus one (or plus carry for SUBC).
func (tx *transaction) opArithmetic(inst DoubleOperand) error {
	src, err := tx.source(inst.Src, inst.Size)
	if err != nil {
		return fmt.Errorf("%s failed to get source operand: %w", inst.Opcode, err)
	}

	loc, err := tx.destination(inst.Dest)
	if err != nil {
		return fmt.Errorf("%s failed to get destination operand: %w", inst.Opcode, err)
	}
	dst := tx.read(loc, inst.Size)

	carry := int64(0)
	if tx.ctx.Registers.Status().C() {
		carry = 1
	}
	notSrc := ^src & inst.Size.Mask()

	var result int64
	var f flags
	switch inst.Opcode {
	case ADD:
		result, f = addWithCarry(src, dst, 0, inst.Size)
	case ADDC:
		result, f = addWithCarry(src, dst, carry, inst.Size)
	case SUB, CMP:
		result, f = addWithCarry(notSrc, dst, 1, inst.Size)
	case SUBC:
		result, f = addWithCarry(notSrc, dst, carry, inst.Size)
	case DADD:
		result, f = decimalAdd(src, dst, carry == 1, inst.Size)
	default:
		return fmt.Errorf("%w: %s is not arithmetic", ErrUnknownOpcode, inst.Opcode)
	}

	tx.setFlags(f)
	if inst.Opcode != CMP {
		tx.write(loc, result, inst.Size)
	}
	return nil
}

// addWithCarry returns src + dst + carry and the resulting flags.
func addWithCarry(src, dst, carry int64, size Size) (int64, flags) {
	mask := size.Mask()
	sign := size.SignBit()

	s := src & mask
	d := dst & mask
	sum := s + d + carry
	r := sum & mask

	f := nz(r, size)
	// Carry (C): a carry out of the most significant bit.
	f.c = sum > mask
	// Overflow (V): operands share a sign that the result does not.
	f.v = (s&sign) == (d&sign) && (r&sign) != (s&sign)
	return r, f
}

// decimalAdd adds two packed BCD numbers with carry. V is undefined by the
// architecture and is cleared.
func decimalAdd(src, dst int64, carry bool, size Size) (int64, flags) {
	digits := 4
	if size == SizeByte {
		digits = 2
	}

	var r int64
	for i := 0; i < digits; i++ {
		shift := uint(4 * i)
		d := (src>>shift)&0xF + (dst>>shift)&0xF
		if carry {
			d++
		}
		carry = d > 9
		if carry {
			d -= 10
		}
		r |= (d & 0xF) << shift
	}

	f := nz(r, size)
	f.c = carry
	return r, f
}
