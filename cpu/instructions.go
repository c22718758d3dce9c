package cpu

// Size is the operand width of an instruction, selected by the B/W bit.
type Size int

const (
	// SizeWord is a 16-bit operation (B/W = 0).
	SizeWord Size = iota
	// SizeByte is an 8-bit operation (B/W = 1).
	SizeByte
)

// Suffix returns the assembler suffix for the size.
func (s Size) Suffix() string {
	if s == SizeByte {
		return ".b"
	}
	return ""
}

// Mask returns the value mask for the size.
func (s Size) Mask() int64 {
	if s == SizeByte {
		return 0xFF
	}
	return 0xFFFF
}

// SignBit returns the most significant bit for the size.
func (s Size) SignBit() int64 {
	if s == SizeByte {
		return 0x80
	}
	return 0x8000
}

func (s Size) bit() uint16 {
	if s == SizeByte {
		return 1
	}
	return 0
}

func sizeFromBit(b uint16) Size {
	if b&1 == 1 {
		return SizeByte
	}
	return SizeWord
}

// Condition is the branch condition of a jump instruction.
type Condition uint8

// Jump conditions in encoding order.
const (
	JNE Condition = iota // Z clear
	JEQ                  // Z set
	JLO                  // C clear
	JHS                  // C set
	JN                   // N set
	JGE                  // N == V
	JL                   // N != V
	JMP                  // always
)

// SingleOpcode is the opcode of a single-operand instruction.
type SingleOpcode uint8

// Single-operand opcodes.
const (
	RRC SingleOpcode = iota
	SWPB
	RRA
	SXT
	PUSH
	CALL
	RETI
)

// DoubleOpcode is the opcode of a double-operand instruction.
type DoubleOpcode uint8

// Double-operand opcodes.
const (
	MOV DoubleOpcode = iota
	ADD
	ADDC
	SUBC
	SUB
	CMP
	DADD
	BIT
	BIC
	BIS
	XOR
	AND
)

// Lookup tables from raw bit patterns. Built once and only read afterwards.
var (
	conditionCodes = map[uint16]Condition{
		0b000: JNE,
		0b001: JEQ,
		0b010: JLO,
		0b011: JHS,
		0b100: JN,
		0b101: JGE,
		0b110: JL,
		0b111: JMP,
	}

	singleOpcodes = map[uint16]SingleOpcode{
		0b000: RRC,
		0b001: SWPB,
		0b010: RRA,
		0b011: SXT,
		0b100: PUSH,
		0b101: CALL,
		0b110: RETI,
	}

	doubleOpcodes = map[uint16]DoubleOpcode{
		0b0100: MOV,
		0b0101: ADD,
		0b0110: ADDC,
		0b0111: SUBC,
		0b1000: SUB,
		0b1001: CMP,
		0b1010: DADD,
		0b1011: BIT,
		0b1100: BIC,
		0b1101: BIS,
		0b1110: XOR,
		0b1111: AND,
	}
)

// Code returns the raw three bit condition field.
func (c Condition) Code() uint16 {
	return uint16(c) & 7
}

// Code returns the raw three bit opcode field.
func (o SingleOpcode) Code() uint16 {
	return uint16(o) & 7
}

// Code returns the raw four bit opcode field.
func (o DoubleOpcode) Code() uint16 {
	return uint16(o) + 0b0100
}

var conditionNames = [...]string{"jne", "jeq", "jlo", "jhs", "jn", "jge", "jl", "jmp"}

var singleNames = [...]string{"rrc", "swpb", "rra", "sxt", "push", "call", "reti"}

var doubleNames = [...]string{"mov", "add", "addc", "subc", "sub", "cmp", "dadd", "bit", "bic", "bis", "xor", "and"}

func (c Condition) String() string {
	if int(c) < len(conditionNames) {
		return conditionNames[c]
	}
	return "j??"
}

func (o SingleOpcode) String() string {
	if int(o) < len(singleNames) {
		return singleNames[o]
	}
	return "???"
}

func (o DoubleOpcode) String() string {
	if int(o) < len(doubleNames) {
		return doubleNames[o]
	}
	return "???"
}

// ConditionAliases maps alternative jump mnemonics to their conditions.
var ConditionAliases = map[string]Condition{
	"jnz": JNE,
	"jz":  JEQ,
	"jnc": JLO,
	"jc":  JHS,
}

// ParseCondition returns the condition for a jump mnemonic.
func ParseCondition(mn string) (Condition, bool) {
	for i, n := range conditionNames {
		if n == mn {
			return Condition(i), true
		}
	}
	c, ok := ConditionAliases[mn]
	return c, ok
}

// ParseSingleOpcode returns the opcode for a single-operand mnemonic.
func ParseSingleOpcode(mn string) (SingleOpcode, bool) {
	for i, n := range singleNames {
		if n == mn {
			return SingleOpcode(i), true
		}
	}
	return 0, false
}

// ParseDoubleOpcode returns the opcode for a double-operand mnemonic.
func ParseDoubleOpcode(mn string) (DoubleOpcode, bool) {
	for i, n := range doubleNames {
		if n == mn {
			return DoubleOpcode(i), true
		}
	}
	return 0, false
}
