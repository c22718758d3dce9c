package cpu_test

import (
	"io"
	"testing"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
	"github.com/sirupsen/logrus"
)

// testBus is a sparse memory that counts its reads.
type testBus struct {
	words map[cpu.Address]cpu.Word
	reads int
}

func newTestBus() *testBus {
	return &testBus{words: make(map[cpu.Address]cpu.Word)}
}

func (b *testBus) ReadWord(addr cpu.Address) cpu.Word {
	b.reads++
	return b.words[addr]
}

func (b *testBus) WriteWord(addr cpu.Address, w cpu.Word) {
	b.words[addr] = w
}

func (b *testBus) set(addr cpu.Address, v uint16) {
	b.words[addr] = cpu.UnsignedWord(v)
}

func (b *testBus) get(addr cpu.Address) uint16 {
	return b.words[addr].Unsigned()
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// newTestCPU loads code at $0100, resets the CPU to it and sets SP to $0200.
func newTestCPU(t *testing.T, code ...uint16) (*cpu.CPU, *testBus) {
	t.Helper()
	bus := newTestBus()
	c := cpu.New(bus, cpu.WithLogger(quietLogger()))
	c.Reset(0x100)
	c.LoadCode(0x100, code)
	c.Registers.Set(cpu.SP, 0x200)
	return c, bus
}
