package assembler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
)

// Mnemonic represents a parsed instruction mnemonic.
type Mnemonic struct {
	Value string
	Size  cpu.Size
	// Sized is set when an explicit .b or .w suffix was given.
	Sized bool
}

// OperandKind is the syntactic form of an operand.
type OperandKind int

// Operand forms, in the order of their two bit mode codes for the first four.
const (
	// OpRegister: rN
	OpRegister OperandKind = iota
	// OpIndexed: x(rN)
	OpIndexed
	// OpIndirect: @rN
	OpIndirect
	// OpIncrement: @rN+
	OpIncrement
	// OpImmediate: #x
	OpImmediate
	// OpAbsolute: &x
	OpAbsolute
	// OpSymbolic: x, a PC-relative address
	OpSymbolic
)

// Operand represents a parsed instruction operand.
type Operand struct {
	Kind OperandKind
	Reg  cpu.Reg
	Expr string
	Raw  string
}

const regPattern = `(r1[0-5]|r[0-9]|pc|sp|sr|cg)`

var (
	reRegister  = regexp.MustCompile(`(?i)^` + regPattern + `$`)
	reIndexed   = regexp.MustCompile(`(?i)^(.+)\(\s*` + regPattern + `\s*\)$`)
	reIndirect  = regexp.MustCompile(`(?i)^@` + regPattern + `$`)
	reIncrement = regexp.MustCompile(`(?i)^@` + regPattern + `\+$`)
	reImmediate = regexp.MustCompile(`^#(.+)$`)
	reAbsolute  = regexp.MustCompile(`^&(.+)$`)
	reLabel     = regexp.MustCompile(`(?i)^[a-z_.][a-z0-9_.]*$`)
)

// ParseMnemonic splits an instruction like "MOV.B" → ("mov", SizeByte).
func ParseMnemonic(s string) (Mnemonic, error) {
	parts := strings.Split(strings.ToLower(s), ".")
	mn := Mnemonic{Value: parts[0], Size: cpu.SizeWord}
	if len(parts) > 2 {
		return mn, fmt.Errorf("%w: %s", ErrSyntax, s)
	}
	if len(parts) > 1 {
		mn.Sized = true
		switch parts[1] {
		case "b":
			mn.Size = cpu.SizeByte
		case "w":
			mn.Size = cpu.SizeWord
		default:
			return mn, fmt.Errorf("%w: invalid size suffix %s", ErrSyntax, parts[1])
		}
	}
	return mn, nil
}

// parseRegister maps a register name to its number.
func parseRegister(s string) cpu.Reg {
	switch s = strings.ToLower(s); s {
	case "pc":
		return cpu.PC
	case "sp":
		return cpu.SP
	case "sr":
		return cpu.SR
	case "cg":
		return cpu.CG
	}
	n, _ := strconv.Atoi(s[1:])
	return cpu.Reg(n)
}

// parseOperand converts an operand string into a structured Operand.
func parseOperand(s string) (Operand, error) {
	s = strings.TrimSpace(s)
	op := Operand{Raw: s}
	if s == "" {
		return op, fmt.Errorf("%w: empty operand", ErrSyntax)
	}

	switch {
	case reRegister.MatchString(s):
		op.Kind = OpRegister
		op.Reg = parseRegister(s)
	case reIncrement.MatchString(s):
		op.Kind = OpIncrement
		op.Reg = parseRegister(reIncrement.FindStringSubmatch(s)[1])
	case reIndirect.MatchString(s):
		op.Kind = OpIndirect
		op.Reg = parseRegister(reIndirect.FindStringSubmatch(s)[1])
	case reImmediate.MatchString(s):
		op.Kind = OpImmediate
		op.Expr = strings.TrimSpace(reImmediate.FindStringSubmatch(s)[1])
	case reAbsolute.MatchString(s):
		op.Kind = OpAbsolute
		op.Reg = cpu.SR
		op.Expr = strings.TrimSpace(reAbsolute.FindStringSubmatch(s)[1])
	case reIndexed.MatchString(s):
		m := reIndexed.FindStringSubmatch(s)
		op.Kind = OpIndexed
		op.Expr = strings.TrimSpace(m[1])
		op.Reg = parseRegister(m[2])
	default:
		op.Kind = OpSymbolic
		op.Reg = cpu.PC
		op.Expr = s
	}
	return op, nil
}

// splitOperands splits an operand string by commas, but ignores commas inside
// parentheses and quotes.
func splitOperands(s string) []string {
	var result []string
	parenLevel := 0
	inQuote := false
	last := 0
	for i, r := range s {
		switch r {
		case '\'':
			inQuote = !inQuote
		case '(':
			parenLevel++
		case ')':
			parenLevel--
		case ',':
			if parenLevel == 0 && !inQuote {
				result = append(result, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	result = append(result, strings.TrimSpace(s[last:]))
	return result
}

// value is an evaluated expression. Label is set when any term referred to a
// label, whose address may still move between passes.
type value struct {
	v     int64
	label bool
}

// evaluate computes a sum of terms separated by + and -. A term is a number,
// a character literal, an .equ symbol, a label or $ for the current address.
// Undefined labels evaluate to zero unless final is set.
func (asm *Assembler) evaluate(expr string, pc uint16, final bool) (value, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return value{}, fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	var out value
	sign := int64(1)
	start := 0
	flush := func(end int) error {
		term := strings.TrimSpace(expr[start:end])
		if term == "" {
			return fmt.Errorf("%w: malformed expression %q", ErrSyntax, expr)
		}
		v, isLabel, err := asm.term(term, pc, final)
		if err != nil {
			return err
		}
		out.v += sign * v
		out.label = out.label || isLabel
		return nil
	}

	inQuote := false
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if c == '\'' {
			inQuote = !inQuote
			continue
		}
		if inQuote || (c != '+' && c != '-') {
			continue
		}
		if strings.TrimSpace(expr[start:i]) == "" {
			// unary sign
			if c == '-' {
				sign = -sign
			}
			start = i + 1
			continue
		}
		if err := flush(i); err != nil {
			return value{}, err
		}
		sign = 1
		if c == '-' {
			sign = -1
		}
		start = i + 1
	}
	if err := flush(len(expr)); err != nil {
		return value{}, err
	}
	return out, nil
}

// term evaluates a single operand of an expression.
func (asm *Assembler) term(s string, pc uint16, final bool) (int64, bool, error) {
	if s == "$" {
		return int64(pc), false, nil
	}

	// Character literal ('A')
	if len(s) == 3 && s[0] == '\'' && s[2] == '\'' {
		return int64(s[1]), false, nil
	}

	name := strings.ToLower(s)
	if v, ok := asm.symbols[name]; ok {
		return v, false, nil
	}
	if reLabel.MatchString(s) {
		if addr, ok := asm.labels[name]; ok {
			return int64(addr), true, nil
		}
		if final {
			return 0, true, fmt.Errorf("%w: %s", ErrUndefined, s)
		}
		return 0, true, nil
	}

	v, err := parseNumber(s)
	return v, false, err
}

// parseNumber converts $hex, 0xhex, %binary and decimal numbers.
func parseNumber(s string) (int64, error) {
	base := 10
	digits := s
	switch {
	case strings.HasPrefix(s, "$"):
		digits = s[1:]
		base = 16
	case strings.HasPrefix(strings.ToLower(s), "0x"):
		digits = s[2:]
		base = 16
	case strings.HasPrefix(s, "%"):
		digits = s[1:]
		base = 2
	}

	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number format %s", ErrSyntax, s)
	}
	return v, nil
}
