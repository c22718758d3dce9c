package cpu

// AddressMode is the resolved addressing mode of an operand. The same two bit
// code means different things depending on the register it decorates, so a
// mode is only ever produced by ModeFor.
type AddressMode uint8

// Addressing modes. The zero value is Direct.
const (
	// Direct: Rn
	Direct AddressMode = iota
	// Indexed: X(Rn)
	Indexed
	// Indirect: @Rn
	Indirect
	// IndirectIncrement: @Rn+
	IndirectIncrement

	// AbsoluteAddressing: &ADDR, register SR with code 01
	AbsoluteAddressing
	// Const4: #4, register SR with code 10
	Const4
	// Const8: #8, register SR with code 11
	Const8

	// Const0: #0, register CG with code 00
	Const0
	// Const1: #1, register CG with code 01
	Const1
	// Const2: #2, register CG with code 10
	Const2
	// ConstNeg1: #-1, register CG with code 11
	ConstNeg1
)

// The three alphabets, indexed by the raw mode code.
var (
	generalModes = [4]AddressMode{Direct, Indexed, Indirect, IndirectIncrement}
	statusModes  = [4]AddressMode{Direct, AbsoluteAddressing, Const4, Const8}
	constModes   = [4]AddressMode{Const0, Const1, Const2, ConstNeg1}
)

// alphabet returns the mode table used for a register.
func alphabet(r Reg) *[4]AddressMode {
	switch r {
	case SR:
		return &statusModes
	case CG:
		return &constModes
	}
	return &generalModes
}

// ModeFor resolves a raw mode code against the alphabet selected by the
// register. Only the low two bits of code are used.
func ModeFor(r Reg, code uint16) AddressMode {
	return alphabet(r)[code&3]
}

// Code returns the raw mode code for m when used with register r. The second
// return value is false when m does not belong to r's alphabet.
func (m AddressMode) Code(r Reg) (uint16, bool) {
	for i, v := range alphabet(r) {
		if v == m {
			return uint16(i), true
		}
	}
	return 0, false
}

// IsConstant reports whether the mode is one of the constant generator modes.
func (m AddressMode) IsConstant() bool {
	switch m {
	case Const0, Const1, Const2, Const4, Const8, ConstNeg1:
		return true
	}
	return false
}

// Constant returns the literal produced by a constant generator mode.
func (m AddressMode) Constant() (int64, bool) {
	switch m {
	case Const0:
		return 0, true
	case Const1:
		return 1, true
	case Const2:
		return 2, true
	case Const4:
		return 4, true
	case Const8:
		return 8, true
	case ConstNeg1:
		return -1, true
	}
	return 0, false
}

// ValidDestination reports whether the mode may be written to. Indirect modes
// and every constant other than Const0 are source-only.
func (m AddressMode) ValidDestination() bool {
	switch m {
	case Direct, Indexed, AbsoluteAddressing, Const0:
		return true
	}
	return false
}

// ExtensionWords is the number of instruction stream words the mode consumes.
// IndirectIncrement on PC is an immediate and consumes one as well, which
// depends on the register and is handled by Operand.ExtensionWords.
func (m AddressMode) ExtensionWords() int {
	switch m {
	case Indexed, AbsoluteAddressing:
		return 1
	}
	return 0
}

func (m AddressMode) String() string {
	switch m {
	case Direct:
		return "Direct"
	case Indexed:
		return "Indexed"
	case Indirect:
		return "Indirect"
	case IndirectIncrement:
		return "IndirectIncrement"
	case AbsoluteAddressing:
		return "AbsoluteAddressing"
	case Const4:
		return "Const4"
	case Const8:
		return "Const8"
	case Const0:
		return "Const0"
	case Const1:
		return "Const1"
	case Const2:
		return "Const2"
	case ConstNeg1:
		return "ConstNeg1"
	}
	return "unknown addressing mode"
}
