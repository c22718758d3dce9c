package memory_test

import (
	"testing"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
	"github.com/DaQueenJodi/MSP430-Emulator/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSize(t *testing.T) {
	for _, n := range []int{0, -1, memory.MaxWords + 1} {
		_, err := memory.New(n)
		assert.ErrorIs(t, err, memory.ErrSize, "%d", n)
	}

	m, err := memory.New(memory.MaxWords)
	require.NoError(t, err)
	assert.Equal(t, memory.MaxWords, m.Size())
}

func TestReadWriteWraps(t *testing.T) {
	m, err := memory.New(16)
	require.NoError(t, err)

	m.WriteWord(0x13, cpu.UnsignedWord(0xBEEF))
	assert.Equal(t, uint16(0xBEEF), m.ReadWord(0x3).Unsigned())
	assert.Equal(t, uint16(0xBEEF), m.ReadWord(0x13).Unsigned())
}

func TestLoadBytesLittleEndian(t *testing.T) {
	m, err := memory.New(0x100)
	require.NoError(t, err)

	n := m.LoadBytes(0x10, []byte{0x35, 0x40, 0x34, 0x12, 0xAA})
	assert.Equal(t, 3, n)
	assert.Equal(t, []uint16{0x4035, 0x1234, 0x00AA}, m.Slice(0x10, 3))
}

func TestDump(t *testing.T) {
	m, err := memory.New(0x100)
	require.NoError(t, err)
	m.Load(0x20, []uint16{1, 2, 3, 4, 5, 6, 7, 8, 9})

	want := "$0020: 0001 0002 0003 0004 0005 0006 0007 0008\n$0028: 0009"
	assert.Equal(t, want, m.Dump(0x20, 9))

	m.Reset()
	assert.Equal(t, []uint16{0, 0}, m.Slice(0x20, 2))
}

func TestRunsProgram(t *testing.T) {
	m, err := memory.New(memory.MaxWords)
	require.NoError(t, err)

	c := cpu.New(m)
	c.Reset(0x4400)
	c.LoadCode(0x4400, []uint16{
		0x4035, 0x0003, // mov #3, r5
		0x8315,         // dec r5
		0x23FE,         // jnz -2
		0xD032, 0x0010, // bis #CPUOFF, sr
	})

	n, err := c.Run(100)
	require.NoError(t, err)
	assert.Equal(t, 1+3*2+1, n)
	assert.Zero(t, c.Registers.Get(cpu.R5))
	assert.False(t, c.Running)
}

func TestLockingIsInternal(t *testing.T) {
	m, err := memory.New(16)
	require.NoError(t, err)
	_, exposed := any(m).(interface{ Lock() })
	assert.False(t, exposed, "RAM should not export its mutex")
	var _ cpu.Bus = m
}
