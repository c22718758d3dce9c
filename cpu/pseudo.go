package cpu

import "fmt"

// PseudoOpcode is an emulated instruction: a shorthand for a real instruction
// with a fixed operand, usually a constant generator.
type PseudoOpcode uint8

// Emulated instructions.
const (
	NOP PseudoOpcode = iota
	POP
	BR
	RET
	CLRC
	SETC
	CLRZ
	SETZ
	CLRN
	SETN
	DINT
	EINT
	RLA
	RLC
	INV
	CLR
	TST
	DEC
	DECD
	INC
	INCD
	ADC
	DADC
	SBC
)

var pseudoNames = [...]string{
	"nop", "pop", "br", "ret",
	"clrc", "setc", "clrz", "setz", "clrn", "setn", "dint", "eint",
	"rla", "rlc", "inv", "clr", "tst",
	"dec", "decd", "inc", "incd",
	"adc", "dadc", "sbc",
}

func (p PseudoOpcode) String() string {
	if int(p) < len(pseudoNames) {
		return pseudoNames[p]
	}
	return "???"
}

// ParsePseudoOpcode returns the emulated instruction for a mnemonic.
func ParsePseudoOpcode(mn string) (PseudoOpcode, bool) {
	for i, n := range pseudoNames {
		if n == mn {
			return PseudoOpcode(i), true
		}
	}
	return 0, false
}

// OperandKind says what the operand of an emulated instruction is used for.
type OperandKind int

const (
	// NoOperand instructions take nothing.
	NoOperand OperandKind = iota
	// DestinationOperand instructions write their operand.
	DestinationOperand
	// SourceOperand instructions only read it.
	SourceOperand
)

// Kind returns the operand kind of the emulated instruction.
func (p PseudoOpcode) Kind() OperandKind {
	switch p {
	case NOP, RET, CLRC, SETC, CLRZ, SETZ, CLRN, SETN, DINT, EINT:
		return NoOperand
	case BR:
		return SourceOperand
	}
	return DestinationOperand
}

// Sized reports whether the emulated instruction accepts a .b suffix.
func (p PseudoOpcode) Sized() bool {
	return p.Kind() == DestinationOperand
}

// Pseudo is an emulated instruction. The decoder never produces it; it exists
// for the assembler and disassembler, and is turned into a real instruction
// by Expand.
type Pseudo struct {
	Opcode  PseudoOpcode
	Size    Size
	Operand *Operand
}

func (Pseudo) isInstruction() {}

func (p Pseudo) String() string {
	if p.Operand == nil {
		return p.Opcode.String()
	}
	return fmt.Sprintf("%s%s %s", p.Opcode, p.Size.Suffix(), *p.Operand)
}

// constant generator operands
var (
	imm0  = Operand{Reg: CG, Mode: Const0}
	imm1  = Operand{Reg: CG, Mode: Const1}
	imm2  = Operand{Reg: CG, Mode: Const2}
	imm4  = Operand{Reg: SR, Mode: Const4}
	imm8  = Operand{Reg: SR, Mode: Const8}
	immM1 = Operand{Reg: CG, Mode: ConstNeg1}
	popSP = Operand{Reg: SP, Mode: IndirectIncrement}
	toPC  = Operand{Reg: PC, Mode: Direct}
	toSR  = Operand{Reg: SR, Mode: Direct}
	toCG  = Operand{Reg: CG, Mode: Const0}
)

// srcAlias returns the source operand that reads the same place as a
// destination operand.
func srcAlias(dst Operand) Operand {
	return Operand{Reg: dst.Reg, Mode: dst.Mode, Value: dst.Value}
}

// Expand returns the real instruction an emulated instruction stands for.
func Expand(p Pseudo) (Instruction, error) {
	var op Operand
	switch p.Opcode.Kind() {
	case NoOperand:
		if p.Operand != nil {
			return nil, fmt.Errorf("%w: %s takes no operand", ErrUnencodable, p.Opcode)
		}
	default:
		if p.Operand == nil {
			return nil, fmt.Errorf("%w: %s needs an operand", ErrUnencodable, p.Opcode)
		}
		op = *p.Operand
	}

	size := p.Size
	if !p.Opcode.Sized() {
		size = SizeWord
	}

	two := func(opc DoubleOpcode, src, dst Operand) Instruction {
		return DoubleOperand{Opcode: opc, Src: src, Size: size, Dest: dst}
	}

	switch p.Opcode {
	case NOP:
		return two(MOV, imm0, toCG), nil
	case POP:
		return two(MOV, popSP, op), nil
	case BR:
		return two(MOV, op, toPC), nil
	case RET:
		return two(MOV, popSP, toPC), nil
	case CLRC:
		return two(BIC, imm1, toSR), nil
	case SETC:
		return two(BIS, imm1, toSR), nil
	case CLRZ:
		return two(BIC, imm2, toSR), nil
	case SETZ:
		return two(BIS, imm2, toSR), nil
	case CLRN:
		return two(BIC, imm4, toSR), nil
	case SETN:
		return two(BIS, imm4, toSR), nil
	case DINT:
		return two(BIC, imm8, toSR), nil
	case EINT:
		return two(BIS, imm8, toSR), nil
	case RLA:
		return two(ADD, srcAlias(op), op), nil
	case RLC:
		return two(ADDC, srcAlias(op), op), nil
	case INV:
		return two(XOR, immM1, op), nil
	case CLR:
		return two(MOV, imm0, op), nil
	case TST:
		return two(CMP, imm0, op), nil
	case DEC:
		return two(SUB, imm1, op), nil
	case DECD:
		return two(SUB, imm2, op), nil
	case INC:
		return two(ADD, imm1, op), nil
	case INCD:
		return two(ADD, imm2, op), nil
	case ADC:
		return two(ADDC, imm0, op), nil
	case DADC:
		return two(DADD, imm0, op), nil
	case SBC:
		return two(SUBC, imm0, op), nil
	}

	return nil, fmt.Errorf("%w: pseudo opcode %d", ErrUnencodable, p.Opcode)
}

// recognition order matters: the more specific forms come first
var emulationOrder = []PseudoOpcode{
	NOP, RET,
	CLRC, SETC, CLRZ, SETZ, CLRN, SETN, DINT, EINT,
	ADC, DADC, SBC,
	INC, INCD, DEC, DECD,
	INV, CLR, TST,
	RLA, RLC,
	POP, BR,
}

// Emulated returns the emulated instruction whose expansion is exactly inst.
func Emulated(inst Instruction) (Pseudo, bool) {
	d, ok := inst.(DoubleOperand)
	if !ok {
		return Pseudo{}, false
	}

	for _, opc := range emulationOrder {
		p := Pseudo{Opcode: opc, Size: d.Size}
		switch opc.Kind() {
		case DestinationOperand:
			dst := d.Dest
			p.Operand = &dst
		case SourceOperand:
			src := d.Src
			p.Operand = &src
		}
		if !opc.Sized() && d.Size != SizeWord {
			continue
		}
		x, err := Expand(p)
		if err != nil {
			continue
		}
		if x == inst {
			return p, true
		}
	}

	return Pseudo{}, false
}
