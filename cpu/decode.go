package cpu

import "fmt"

// Operand is a register reference together with its resolved addressing
// mode. Value is a scratch slot: the disassembler stores extension words in
// it and the execution layer stores the last resolved value.
type Operand struct {
	Reg   Reg
	Mode  AddressMode
	Value int64
}

// ExtensionWords is the number of instruction stream words consumed when
// the operand is resolved.
func (op Operand) ExtensionWords() int {
	if op.Reg == PC && (op.Mode == Indirect || op.Mode == IndirectIncrement) {
		return 1
	}
	return op.Mode.ExtensionWords()
}

// String formats the operand in assembler syntax. Extension words are shown
// from the Value slot.
func (op Operand) String() string {
	if c, ok := op.Mode.Constant(); ok {
		return fmt.Sprintf("#%d", c)
	}
	switch op.Mode {
	case Direct:
		return op.Reg.String()
	case Indexed:
		return fmt.Sprintf("%d(%s)", int16(op.Value), op.Reg)
	case Indirect:
		if op.Reg == PC {
			return fmt.Sprintf("#$%04x", uint16(op.Value))
		}
		return "@" + op.Reg.String()
	case IndirectIncrement:
		if op.Reg == PC {
			return fmt.Sprintf("#$%04x", uint16(op.Value))
		}
		return "@" + op.Reg.String() + "+"
	case AbsoluteAddressing:
		return fmt.Sprintf("&$%04x", uint16(op.Value))
	}
	return "?"
}

// Instruction is the result of decoding a word. It is implemented by Invalid,
// Jump, SingleOperand, DoubleOperand and Pseudo; use a type switch to
// distinguish them.
type Instruction interface {
	fmt.Stringer
	isInstruction()
}

// Invalid is an instruction that could not be decoded.
type Invalid struct {
	Word Word
}

// Jump is a conditional or unconditional PC-relative jump. Offset is in words.
type Jump struct {
	Condition Condition
	Offset    Offset
}

// SingleOperand is a format II instruction.
type SingleOperand struct {
	Opcode SingleOpcode
	Size   Size
	Dest   Operand
}

// DoubleOperand is a format I instruction.
type DoubleOperand struct {
	Opcode DoubleOpcode
	Src    Operand
	Size   Size
	Dest   Operand
}

func (Invalid) isInstruction()       {}
func (Jump) isInstruction()          {}
func (SingleOperand) isInstruction() {}
func (DoubleOperand) isInstruction() {}

func (i Invalid) String() string {
	return fmt.Sprintf(".word %s", UnsignedWord(i.Word.Unsigned()))
}

func (j Jump) String() string {
	if j.Offset >= 0 {
		return fmt.Sprintf("%s +%d", j.Condition, j.Offset)
	}
	return fmt.Sprintf("%s %d", j.Condition, j.Offset)
}

func (s SingleOperand) String() string {
	if s.Opcode == RETI {
		return "reti"
	}
	return fmt.Sprintf("%s%s %s", s.Opcode, s.Size.Suffix(), s.Dest)
}

func (d DoubleOperand) String() string {
	return fmt.Sprintf("%s%s %s, %s", d.Opcode, d.Size.Suffix(), d.Src, d.Dest)
}

// Bit fields of the three formats.
const (
	singleDestMask  = 0x000F // bits 0-3
	singleModeShift = 4      // bits 4-5
	singleSizeShift = 6
	singleOpShift   = 7 // bits 7-9

	jumpOffsetMask  = 0x03FF // bits 0-9
	jumpOffsetWidth = 10
	jumpCondShift   = 10 // bits 10-12

	doubleDestMask      = 0x000F // bits 0-3
	doubleSrcModeShift  = 4      // bits 4-5
	doubleSizeShift     = 6
	doubleDestModeShift = 7
	doubleSrcShift      = 8  // bits 8-11
	doubleOpShift       = 12 // bits 12-15
)

// Decode classifies a word and slices it into a typed instruction. Unassigned
// opcode values return an error wrapping ErrUnknownOpcode.
func Decode(w Word) (Instruction, error) {
	return DecodeFormat(w, Classify(w))
}

// DecodeFormat slices a word that has already been classified.
func DecodeFormat(w Word, f Format) (Instruction, error) {
	v := w.Unsigned()

	switch f {
	case FormatSingleOperand:
		code := (v >> singleOpShift) & 7
		opcode, ok := singleOpcodes[code]
		if !ok {
			return Invalid{Word: w}, fmt.Errorf("%w: single operand opcode %03b in %04X", ErrUnknownOpcode, code, v)
		}
		dest := Reg(v & singleDestMask)
		return SingleOperand{
			Opcode: opcode,
			Size:   sizeFromBit(v >> singleSizeShift),
			Dest:   Operand{Reg: dest, Mode: ModeFor(dest, v>>singleModeShift)},
		}, nil

	case FormatJump:
		code := (v >> jumpCondShift) & 7
		cond, ok := conditionCodes[code]
		if !ok {
			return Invalid{Word: w}, fmt.Errorf("%w: jump condition %03b in %04X", ErrUnknownOpcode, code, v)
		}
		return Jump{
			Condition: cond,
			Offset:    SignExtend(v&jumpOffsetMask, jumpOffsetWidth),
		}, nil

	case FormatDoubleOperand:
		code := v >> doubleOpShift
		opcode, ok := doubleOpcodes[code]
		if !ok {
			return Invalid{Word: w}, fmt.Errorf("%w: double operand opcode %04b in %04X", ErrUnknownOpcode, code, v)
		}
		src := Reg((v >> doubleSrcShift) & 0xF)
		dest := Reg(v & doubleDestMask)
		return DoubleOperand{
			Opcode: opcode,
			Src:    Operand{Reg: src, Mode: ModeFor(src, v>>doubleSrcModeShift)},
			Size:   sizeFromBit(v >> doubleSizeShift),
			// the destination mode field is a single bit
			Dest: Operand{Reg: dest, Mode: ModeFor(dest, (v>>doubleDestModeShift)&1)},
		}, nil
	}

	return Invalid{Word: w}, fmt.Errorf("%w: unknown format %d for %04X", ErrUnknownOpcode, f, v)
}
