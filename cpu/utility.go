package cpu

// flags are the arithmetic results of an operation.
type flags struct {
	c, z, n, v bool
}

// setFlags writes C, Z, N and V to the status register.
func (tx *transaction) setFlags(f flags) {
	s := tx.ctx.Registers.Status()
	s = s.With(FlagC, f.c)
	s = s.With(FlagZ, f.z)
	s = s.With(FlagN, f.n)
	s = s.With(FlagV, f.v)
	tx.ctx.Registers.SetStatus(s)
}

// nz computes the zero and negative flags of a result.
func nz(result int64, size Size) flags {
	r := result & size.Mask()
	return flags{
		z: r == 0,
		n: r&size.SignBit() != 0,
	}
}

// read returns the value at a location, masked to the operation size.
func (tx *transaction) read(l Location, size Size) int64 {
	return ReadLocation(l, tx.ctx) & size.Mask()
}

// write stores a result. Byte writes to a register clear its high byte; byte
// writes to memory replace the low byte of the addressed word.
func (tx *transaction) write(l Location, value int64, size Size) {
	value &= size.Mask()

	if l.Kind == LocRegister {
		tx.ctx.Registers.Set(l.Reg, value)
		return
	}

	if size == SizeByte {
		old := int64(tx.ReadWord(l.Addr).Unsigned())
		value = (old &^ 0xFF) | value
	}
	tx.writes = append(tx.writes, pendingWrite{addr: l.Addr, w: UnsignedWord(uint16(value))})
}

// push decrements SP and stores a word at the new top of stack.
func (tx *transaction) push(value int64) {
	sp := (tx.ctx.Registers.Get(SP) - int64(WordWidth)) & 0xFFFF
	tx.ctx.Registers.Set(SP, sp)
	tx.write(MemoryLocation(Address(sp)), value, SizeWord)
}

// pop reads the word at the top of stack and increments SP.
func (tx *transaction) pop() int64 {
	v := int64(tx.ReadWord(tx.ctx.Registers.Address(SP)).Unsigned())
	tx.ctx.Registers.Increment(SP)
	return v
}
