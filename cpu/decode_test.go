package cpu_test

import (
	"testing"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPartition(t *testing.T) {
	counts := map[cpu.Format]int{}
	for v := 0; v <= 0xFFFF; v++ {
		f := cpu.Classify(cpu.UnsignedWord(uint16(v)))
		counts[f]++

		switch {
		case v>>10 == 0b000100:
			assert.Equal(t, cpu.FormatSingleOperand, f, "%04X", v)
		case v>>13 == 0b001:
			assert.Equal(t, cpu.FormatJump, f, "%04X", v)
		default:
			assert.Equal(t, cpu.FormatDoubleOperand, f, "%04X", v)
		}
	}
	assert.Equal(t, 1024, counts[cpu.FormatSingleOperand])
	assert.Equal(t, 8192, counts[cpu.FormatJump])
	assert.Equal(t, 65536-1024-8192, counts[cpu.FormatDoubleOperand])
}

func TestDecodeConformance(t *testing.T) {
	r5 := cpu.Operand{Reg: cpu.R5, Mode: cpu.Direct}
	tests := []struct {
		name string
		word uint16
		want cpu.Instruction
	}{
		{"jeq", 0x2434, cpu.Jump{Condition: cpu.JEQ, Offset: 52}},
		{"jmp $", 0x3FFF, cpu.Jump{Condition: cpu.JMP, Offset: -1}},
		{"rrc.b r5", 0x1045, cpu.SingleOperand{Opcode: cpu.RRC, Size: cpu.SizeByte, Dest: r5}},
		{"push r5", 0x1205, cpu.SingleOperand{Opcode: cpu.PUSH, Size: cpu.SizeWord, Dest: r5}},
		{"call #x", 0x12B0, cpu.SingleOperand{Opcode: cpu.CALL, Dest: cpu.Operand{Reg: cpu.PC, Mode: cpu.IndirectIncrement}}},
		{"mov r4, r5", 0x4405, cpu.DoubleOperand{Opcode: cpu.MOV, Src: cpu.Operand{Reg: cpu.R4}, Dest: r5}},
		{"mov #imm, r5", 0x4035, cpu.DoubleOperand{Opcode: cpu.MOV, Src: cpu.Operand{Reg: cpu.PC, Mode: cpu.IndirectIncrement}, Dest: r5}},
		{"nop", 0x4303, cpu.DoubleOperand{Opcode: cpu.MOV, Src: cpu.Operand{Reg: cpu.CG, Mode: cpu.Const0}, Dest: cpu.Operand{Reg: cpu.CG, Mode: cpu.Const0}}},
		{"clrc", 0xC312, cpu.DoubleOperand{Opcode: cpu.BIC, Src: cpu.Operand{Reg: cpu.CG, Mode: cpu.Const1}, Dest: cpu.Operand{Reg: cpu.SR}}},
		{"clrn", 0xC222, cpu.DoubleOperand{Opcode: cpu.BIC, Src: cpu.Operand{Reg: cpu.SR, Mode: cpu.Const4}, Dest: cpu.Operand{Reg: cpu.SR}}},
		{"eint", 0xD232, cpu.DoubleOperand{Opcode: cpu.BIS, Src: cpu.Operand{Reg: cpu.SR, Mode: cpu.Const8}, Dest: cpu.Operand{Reg: cpu.SR}}},
		{"mov.b r4, &abs", 0x44C2, cpu.DoubleOperand{Opcode: cpu.MOV, Src: cpu.Operand{Reg: cpu.R4}, Size: cpu.SizeByte, Dest: cpu.Operand{Reg: cpu.SR, Mode: cpu.AbsoluteAddressing}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cpu.Decode(cpu.UnsignedWord(tt.word))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode(%04X) mismatch (-want +got):\n%s", tt.word, diff)
			}
		})
	}
}

func TestDecodeUnknownOpcodes(t *testing.T) {
	for _, v := range []uint16{0x0000, 0x0FFF, 0x1380, 0x13FF, 0x1400, 0x1FFF} {
		inst, err := cpu.Decode(cpu.UnsignedWord(v))
		require.Error(t, err, "%04X", v)
		assert.ErrorIs(t, err, cpu.ErrUnknownOpcode)
		assert.IsType(t, cpu.Invalid{}, inst)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	decoded := 0
	for v := 0; v <= 0xFFFF; v++ {
		w := cpu.UnsignedWord(uint16(v))
		inst, err := cpu.Decode(w)
		if err != nil {
			continue
		}
		decoded++

		back, err := cpu.Encode(inst)
		require.NoError(t, err, "%04X %s", v, inst)
		require.Equal(t, uint16(v), back.Unsigned(), "%s", inst)
	}
	// single 0x1000-0x137F, all jumps, double 0x4000-0xFFFF
	assert.Equal(t, 896+8192+49152, decoded)
}

func TestEncodeRejects(t *testing.T) {
	tests := []struct {
		name string
		inst cpu.Instruction
	}{
		{"jump too far", cpu.Jump{Condition: cpu.JMP, Offset: 512}},
		{"jump too far back", cpu.Jump{Condition: cpu.JMP, Offset: -513}},
		{"indirect destination", cpu.DoubleOperand{Opcode: cpu.MOV, Src: cpu.Operand{Reg: cpu.R4}, Dest: cpu.Operand{Reg: cpu.R5, Mode: cpu.Indirect}}},
		{"constant on general register", cpu.SingleOperand{Opcode: cpu.PUSH, Dest: cpu.Operand{Reg: cpu.R5, Mode: cpu.Const4}}},
		{"no such register", cpu.SingleOperand{Opcode: cpu.PUSH, Dest: cpu.Operand{Reg: 16}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cpu.Encode(tt.inst)
			assert.ErrorIs(t, err, cpu.ErrUnencodable)
		})
	}
}

func TestModeAlphabets(t *testing.T) {
	for r := cpu.Reg(0); r < cpu.NumRegisters; r++ {
		for code := uint16(0); code < 4; code++ {
			m := cpu.ModeFor(r, code)
			switch r {
			case cpu.CG:
				assert.True(t, m.IsConstant(), "%s code %d gave %s", r, code, m)
			case cpu.SR:
				if code >= 2 {
					assert.True(t, m.IsConstant(), "%s code %d gave %s", r, code, m)
				} else {
					assert.False(t, m.IsConstant(), "%s code %d gave %s", r, code, m)
				}
			default:
				assert.False(t, m.IsConstant(), "%s code %d gave %s", r, code, m)
			}

			back, ok := m.Code(r)
			require.True(t, ok)
			assert.Equal(t, code, back)
		}
	}

	assert.Equal(t, cpu.AbsoluteAddressing, cpu.ModeFor(cpu.SR, 1))
	assert.Equal(t, cpu.ConstNeg1, cpu.ModeFor(cpu.CG, 3))
	_, ok := cpu.Const4.Code(cpu.R5)
	assert.False(t, ok)
}

func TestInstructionStrings(t *testing.T) {
	tests := []struct {
		inst cpu.Instruction
		want string
	}{
		{cpu.Jump{Condition: cpu.JEQ, Offset: 52}, "jeq +52"},
		{cpu.Jump{Condition: cpu.JMP, Offset: -1}, "jmp -1"},
		{cpu.SingleOperand{Opcode: cpu.RRC, Size: cpu.SizeByte, Dest: cpu.Operand{Reg: cpu.R5}}, "rrc.b r5"},
		{cpu.SingleOperand{Opcode: cpu.RETI}, "reti"},
		{cpu.DoubleOperand{Opcode: cpu.MOV, Src: cpu.Operand{Reg: cpu.PC, Mode: cpu.IndirectIncrement, Value: 0x1234}, Dest: cpu.Operand{Reg: cpu.R5, Mode: cpu.Indexed, Value: -2}}, "mov #$1234, -2(r5)"},
		{cpu.DoubleOperand{Opcode: cpu.ADD, Src: cpu.Operand{Reg: cpu.CG, Mode: cpu.ConstNeg1}, Dest: cpu.Operand{Reg: cpu.SR, Mode: cpu.AbsoluteAddressing, Value: 0x200}}, "add #-1, &$0200"},
		{cpu.Invalid{Word: cpu.UnsignedWord(0x0001)}, ".word $0001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.inst.String())
	}
}
