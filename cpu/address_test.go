package cpu_test

import (
	"testing"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextAt(bus *testBus, pc int64) cpu.Context {
	var regs cpu.Registers
	regs.Set(cpu.PC, pc)
	return cpu.NewContext(regs, bus)
}

func TestResolveConstantsNeverTouchMemory(t *testing.T) {
	tests := []struct {
		op   cpu.Operand
		want int64
	}{
		{cpu.Operand{Reg: cpu.CG, Mode: cpu.Const0}, 0},
		{cpu.Operand{Reg: cpu.CG, Mode: cpu.Const1}, 1},
		{cpu.Operand{Reg: cpu.CG, Mode: cpu.Const2}, 2},
		{cpu.Operand{Reg: cpu.CG, Mode: cpu.ConstNeg1}, -1},
		{cpu.Operand{Reg: cpu.SR, Mode: cpu.Const4}, 4},
		{cpu.Operand{Reg: cpu.SR, Mode: cpu.Const8}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.op.Mode.String(), func(t *testing.T) {
			bus := newTestBus()
			ctx := contextAt(bus, 0x100)

			v, next, err := cpu.ResolveSource(tt.op, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, ctx.Registers, next.Registers)
			assert.Zero(t, bus.reads)
		})
	}
}

func TestResolveIndirectIncrementReadsFirst(t *testing.T) {
	bus := newTestBus()
	bus.set(0x300, 0xAAAA)
	bus.set(0x301, 0xBBBB)
	ctx := contextAt(bus, 0x100)
	ctx.Registers.Set(cpu.R5, 0x300)

	op := cpu.Operand{Reg: cpu.R5, Mode: cpu.IndirectIncrement}
	v, next, err := cpu.ResolveSource(op, ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0xAAAA), v)
	assert.Equal(t, int64(0x301), next.Registers.Get(cpu.R5))
	assert.Equal(t, int64(0x100), next.Registers.Get(cpu.PC))
	// the caller's context is untouched
	assert.Equal(t, int64(0x300), ctx.Registers.Get(cpu.R5))
}

func TestResolveIndirect(t *testing.T) {
	bus := newTestBus()
	bus.set(0x300, 0x1234)
	ctx := contextAt(bus, 0x100)
	ctx.Registers.Set(cpu.R5, 0x300)

	v, next, err := cpu.ResolveSource(cpu.Operand{Reg: cpu.R5, Mode: cpu.Indirect}, ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0x1234), v)
	assert.Equal(t, ctx.Registers, next.Registers)
}

func TestResolveImmediateConsumesOneWord(t *testing.T) {
	for _, mode := range []cpu.AddressMode{cpu.IndirectIncrement, cpu.Indirect} {
		t.Run(mode.String(), func(t *testing.T) {
			bus := newTestBus()
			bus.set(0x100, 0x4242)
			bus.set(0x101, 0x9999)
			ctx := contextAt(bus, 0x100)

			v, next, err := cpu.ResolveSource(cpu.Operand{Reg: cpu.PC, Mode: mode}, ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(0x4242), v)
			assert.Equal(t, int64(0x101), next.Registers.Get(cpu.PC))
			assert.Equal(t, 1, bus.reads)
		})
	}
}

func TestResolveIndexedUsesBaseBeforeFetch(t *testing.T) {
	bus := newTestBus()
	bus.set(0x100, 4)
	bus.set(0x104, 0xBEEF)
	bus.set(0x304, 0xCAFE)
	ctx := contextAt(bus, 0x100)
	ctx.Registers.Set(cpu.R5, 0x300)

	v, next, err := cpu.ResolveSource(cpu.Operand{Reg: cpu.R5, Mode: cpu.Indexed}, ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0xCAFE), v)
	assert.Equal(t, int64(0x101), next.Registers.Get(cpu.PC))

	// symbolic mode: PC is the base, taken before the displacement fetch
	v, _, err = cpu.ResolveSource(cpu.Operand{Reg: cpu.PC, Mode: cpu.Indexed}, ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0xBEEF), v)
}

func TestResolveIndexedWraps(t *testing.T) {
	bus := newTestBus()
	bus.set(0x100, 0xFFFE) // -2
	bus.set(0xFFFF, 0x5A5A)
	ctx := contextAt(bus, 0x100)
	ctx.Registers.Set(cpu.R5, 1)

	loc, _, err := cpu.ResolveDestination(cpu.Operand{Reg: cpu.R5, Mode: cpu.Indexed}, ctx)
	require.NoError(t, err)
	assert.Equal(t, cpu.MemoryLocation(0xFFFF), loc)
	assert.Equal(t, int64(0x5A5A), cpu.ReadLocation(loc, ctx))
}

func TestResolveAbsolute(t *testing.T) {
	bus := newTestBus()
	bus.set(0x100, 0x0200)
	bus.set(0x200, 7)
	ctx := contextAt(bus, 0x100)

	op := cpu.Operand{Reg: cpu.SR, Mode: cpu.AbsoluteAddressing}
	v, next, err := cpu.ResolveSource(op, ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
	assert.Equal(t, int64(0x101), next.Registers.Get(cpu.PC))

	loc, next, err := cpu.ResolveDestination(op, ctx)
	require.NoError(t, err)
	assert.Equal(t, cpu.MemoryLocation(0x200), loc)
	assert.Equal(t, int64(0x101), next.Registers.Get(cpu.PC))
}

func TestResolveDestinationRejectsSourceModes(t *testing.T) {
	ops := []cpu.Operand{
		{Reg: cpu.R5, Mode: cpu.Indirect},
		{Reg: cpu.R5, Mode: cpu.IndirectIncrement},
		{Reg: cpu.CG, Mode: cpu.Const1},
		{Reg: cpu.SR, Mode: cpu.Const8},
	}
	for _, op := range ops {
		bus := newTestBus()
		ctx := contextAt(bus, 0x100)
		ctx.Registers.Set(cpu.R5, 0x300)

		_, next, err := cpu.ResolveDestination(op, ctx)
		assert.ErrorIs(t, err, cpu.ErrInvalidDestinationMode, "%s", op.Mode)
		assert.Equal(t, ctx.Registers, next.Registers)
		assert.Zero(t, bus.reads)
	}
}

func TestZeroRegisterDiscardsWrites(t *testing.T) {
	ctx := contextAt(newTestBus(), 0x100)
	loc, _, err := cpu.ResolveDestination(cpu.Operand{Reg: cpu.CG, Mode: cpu.Const0}, ctx)
	require.NoError(t, err)
	assert.Equal(t, cpu.RegisterLocation(cpu.CG), loc)

	ctx.Registers.Set(cpu.CG, 0x1234)
	assert.Zero(t, ctx.Registers.Get(cpu.CG))
}
