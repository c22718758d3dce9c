package cpu

import "fmt"

// LocationKind says whether a destination is a register or memory.
type LocationKind int

const (
	// LocRegister is a write to a register.
	LocRegister LocationKind = iota
	// LocMemory is a write to a memory word.
	LocMemory
)

// Location is a resolved destination.
type Location struct {
	Kind LocationKind
	Reg  Reg
	Addr Address
}

// RegisterLocation returns the location of a register.
func RegisterLocation(r Reg) Location {
	return Location{Kind: LocRegister, Reg: r}
}

// MemoryLocation returns the location of a memory word.
func MemoryLocation(a Address) Location {
	return Location{Kind: LocMemory, Addr: a}
}

func (l Location) String() string {
	if l.Kind == LocMemory {
		return fmt.Sprintf("mem[%s]", l.Addr)
	}
	return l.Reg.String()
}

// wrap reduces a widened address to the 16-bit address space.
func wrap(a Address) Address {
	return Address(uint16(a))
}

// ResolveSource returns the value of a source operand. This is the core of
// resolving the "source" part of an instruction. Auto-increment and extension
// word fetches are applied to the returned context; the read always happens
// before the increment.
func ResolveSource(op Operand, ctx Context) (int64, Context, error) {
	if c, ok := op.Mode.Constant(); ok {
		return c, ctx, nil
	}

	switch op.Mode {
	case Direct:
		return ctx.Registers.Get(op.Reg), ctx, nil

	case Indirect:
		if op.Reg == PC {
			w, next := ctx.NextStreamWord()
			return int64(w.Unsigned()), next, nil
		}
		w := ctx.ReadWord(ctx.Registers.Address(op.Reg))
		return int64(w.Unsigned()), ctx, nil

	case IndirectIncrement:
		if op.Reg == PC {
			// the stream fetch is the increment
			w, next := ctx.NextStreamWord()
			return int64(w.Unsigned()), next, nil
		}
		w := ctx.ReadWord(ctx.Registers.Address(op.Reg))
		ctx.Registers.Increment(op.Reg)
		return int64(w.Unsigned()), ctx, nil

	case Indexed:
		base := ctx.Registers.Address(op.Reg)
		disp, next := ctx.NextStreamWord()
		addr := wrap(base.Add(Offset(disp.Signed())))
		return int64(next.ReadWord(addr).Unsigned()), next, nil

	case AbsoluteAddressing:
		abs, next := ctx.NextStreamWord()
		return int64(next.ReadWord(Address(abs.Unsigned())).Unsigned()), next, nil
	}

	return 0, ctx, fmt.Errorf("unsupported source addressing mode %s for %s", op.Mode, op.Reg)
}

// ResolveDestination returns where a destination operand is written. This is
// the core of resolving the "destination" part of an instruction. Source-only
// modes return an error wrapping ErrInvalidDestinationMode and leave the
// context untouched.
func ResolveDestination(op Operand, ctx Context) (Location, Context, error) {
	switch op.Mode {
	case Direct:
		return RegisterLocation(op.Reg), ctx, nil

	case Const0:
		// writes to the zero register vanish
		return RegisterLocation(CG), ctx, nil

	case Indexed:
		base := ctx.Registers.Address(op.Reg)
		disp, next := ctx.NextStreamWord()
		return MemoryLocation(wrap(base.Add(Offset(disp.Signed())))), next, nil

	case AbsoluteAddressing:
		abs, next := ctx.NextStreamWord()
		return MemoryLocation(Address(abs.Unsigned())), next, nil
	}

	return Location{}, ctx, fmt.Errorf("%w: %s with %s", ErrInvalidDestinationMode, op.Mode, op.Reg)
}

// ReadLocation returns the current value stored at a location.
func ReadLocation(l Location, ctx Context) int64 {
	if l.Kind == LocMemory {
		return int64(ctx.ReadWord(l.Addr).Unsigned())
	}
	return ctx.Registers.Get(l.Reg)
}
