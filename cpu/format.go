package cpu

// Format is the shape of an instruction word.
type Format int

// Instruction formats.
const (
	FormatDoubleOperand Format = iota
	FormatSingleOperand
	FormatJump
)

func (f Format) String() string {
	switch f {
	case FormatDoubleOperand:
		return "DoubleOperand"
	case FormatSingleOperand:
		return "SingleOperand"
	case FormatJump:
		return "Jump"
	}
	return "unknown format"
}

// Fixed bit patterns that identify the formats.
const (
	singleOperandPrefix = 0b000100 // bits 15-10
	jumpPrefix          = 0b001    // bits 15-13
)

// Classify determines the format of an instruction word. Every word has a
// format; whether the word is a valid instruction is decided by Decode.
func Classify(w Word) Format {
	v := w.Unsigned()
	if v>>10 == singleOperandPrefix {
		return FormatSingleOperand
	}
	if v>>13 == jumpPrefix {
		return FormatJump
	}
	return FormatDoubleOperand
}
