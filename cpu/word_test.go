package cpu_test

import (
	"testing"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
	"github.com/stretchr/testify/assert"
)

func TestWordViews(t *testing.T) {
	w := cpu.UnsignedWord(0xFFFE)
	assert.Equal(t, uint16(0xFFFE), w.Unsigned())
	assert.Equal(t, int16(-2), w.Signed())
	assert.False(t, w.IsSigned())
	assert.Equal(t, "$fffe", w.String())

	s := cpu.SignedWord(-2)
	assert.Equal(t, uint16(0xFFFE), s.Unsigned())
	assert.True(t, s.IsSigned())
	assert.Equal(t, "-2", s.String())
}

func TestSignExtend(t *testing.T) {
	tests := []struct {
		v     uint16
		width uint
		want  cpu.Offset
	}{
		{0x01FF, 10, 511},
		{0x0200, 10, -512},
		{0x03FF, 10, -1},
		{0x0034, 10, 52},
		{0xFC34, 10, 52}, // bits above width are ignored
		{0xFFFE, 16, -2},
		{0x7FFF, 0, 32767},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cpu.SignExtend(tt.v, tt.width), "SignExtend(%#04x, %d)", tt.v, tt.width)
	}
}

func TestAddressAdd(t *testing.T) {
	assert.Equal(t, cpu.Address(0x4435), cpu.Address(0x4401).Add(52))
	assert.Equal(t, cpu.Address(0x43FF), cpu.Address(0x4401).Add(-2))
	assert.Equal(t, "$4400", cpu.Address(0x4400).String())
}

func TestConditionEvaluate(t *testing.T) {
	var none cpu.Status
	all := none.With(cpu.FlagC, true).With(cpu.FlagZ, true).With(cpu.FlagN, true).With(cpu.FlagV, true)
	nOnly := none.With(cpu.FlagN, true)

	tests := []struct {
		c    cpu.Condition
		s    cpu.Status
		want bool
	}{
		{cpu.JNE, none, true},
		{cpu.JNE, all, false},
		{cpu.JEQ, all, true},
		{cpu.JLO, none, true},
		{cpu.JHS, all, true},
		{cpu.JN, nOnly, true},
		{cpu.JN, none, false},
		{cpu.JGE, none, true},
		{cpu.JGE, all, true}, // N == V
		{cpu.JGE, nOnly, false},
		{cpu.JL, nOnly, true},
		{cpu.JL, all, false},
		{cpu.JMP, none, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.c.Evaluate(tt.s), "%s with %s", tt.c, tt.s)
	}
}

func TestEndian(t *testing.T) {
	words := []uint16{0x4035, 0x1234}
	b := cpu.WordsToBytes(words)
	assert.Equal(t, []byte{0x35, 0x40, 0x34, 0x12}, b)
	assert.Equal(t, words, cpu.BytesToWords(b))
	assert.Equal(t, []uint16{0x4035, 0x0012}, cpu.BytesToWords([]byte{0x35, 0x40, 0x12}))
}
