package assembler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
)

// Errors returned by the assembler, wrapped with the line they occurred on.
var (
	ErrSyntax         = errors.New("syntax error")
	ErrUnknown        = errors.New("unknown instruction")
	ErrUndefined      = errors.New("undefined symbol")
	ErrDuplicateLabel = errors.New("duplicate label")
	ErrOperands       = errors.New("wrong operands")
	ErrRange          = errors.New("value out of range")
)

// maxPasses bounds the sizing loop.
const maxPasses = 16

// Assembler holds the state for the assembly process.
type Assembler struct {
	symbols map[string]int64
	labels  map[string]uint16
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{
		symbols: make(map[string]int64),
		labels:  make(map[string]uint16),
	}
}

// Label returns the address of a label after a successful Assemble.
func (asm *Assembler) Label(name string) (uint16, bool) {
	addr, ok := asm.labels[strings.ToLower(name)]
	return addr, ok
}

// Assemble takes MSP430 assembly code and returns the machine code as words,
// starting at baseAddress.
func (asm *Assembler) Assemble(src string, baseAddress uint16) ([]uint16, error) {
	asm.symbols = make(map[string]int64)
	asm.labels = make(map[string]uint16)
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	nodes, err := asm.parseLines(lines)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	// Pass: resolve label addresses and node sizes until stable.
	stable := false
	for pass := 0; pass < maxPasses && !stable; pass++ {
		pc := int(baseAddress)
		stable = true
		for _, n := range nodes {
			if n.Type == NodeLabel {
				if addr, ok := asm.labels[n.Label]; !ok || int(addr) != pc {
					asm.labels[n.Label] = uint16(pc)
					stable = false
				}
				continue
			}

			size, err := asm.nodeSize(n, uint16(pc))
			if err != nil {
				return nil, fmt.Errorf("line %d: error calculating size for '%s': %w", n.Line, n.Source, err)
			}
			if n.Size != size {
				stable = false
			}
			n.Size = size
			pc += size
			if pc > 0x10000 {
				return nil, fmt.Errorf("line %d: %w: program passes the end of memory", n.Line, ErrRange)
			}
		}
	}
	if !stable {
		return nil, fmt.Errorf("%w: label addresses did not settle", ErrRange)
	}

	// Generate machine code.
	var machineCode []uint16
	pc := baseAddress
	for _, n := range nodes {
		var code []uint16
		var err error

		switch n.Type {
		case NodeLabel:
			// Labels do not emit code.
			continue
		case NodeDirective:
			code, err = asm.generateDirectiveCode(n, pc)
		case NodeInstruction:
			code, err = asm.generateInstructionCode(n, pc)
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: error generating code for '%s': %w", n.Line, n.Source, err)
		}
		if len(code) != n.Size {
			return nil, fmt.Errorf("line %d: size changed from %d to %d words", n.Line, n.Size, len(code))
		}
		machineCode = append(machineCode, code...)
		pc += uint16(n.Size)
	}

	return machineCode, nil
}

// nodeSize returns the number of words a node will emit at pc.
func (asm *Assembler) nodeSize(n *Node, pc uint16) (int, error) {
	switch n.Type {
	case NodeDirective:
		return asm.getDirectiveSize(n, pc)
	case NodeInstruction:
		inst, err := asm.buildInstruction(n, pc, false)
		if err != nil {
			return 0, err
		}
		return instructionSize(inst), nil
	}
	return 0, nil
}

// parseLines converts raw source lines into a slice of Node objects.
func (asm *Assembler) parseLines(lines []string) ([]*Node, error) {
	var nodes []*Node
	seen := make(map[string]bool)
	for i, line := range lines {
		lineNo := i + 1
		if commentIndex := strings.IndexRune(line, ';'); commentIndex != -1 {
			line = line[:commentIndex]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if idx := strings.Index(line, ":"); idx > 0 {
			label := strings.TrimSpace(line[:idx])
			if reLabel.MatchString(label) {
				if reRegister.MatchString(label) {
					return nil, fmt.Errorf("line %d: %w: %s is a register name", lineNo, ErrSyntax, label)
				}
				name := strings.ToLower(label)
				if seen[name] {
					return nil, fmt.Errorf("line %d: %w: %s", lineNo, ErrDuplicateLabel, label)
				}
				seen[name] = true
				nodes = append(nodes, &Node{Type: NodeLabel, Line: lineNo, Label: name, Source: label + ":"})
				line = strings.TrimSpace(line[idx+1:])
			}
		}

		if line == "" {
			continue
		}

		var mnemonic, operandStr string
		firstSpace := strings.IndexAny(line, " \t")
		if firstSpace == -1 {
			mnemonic = line
		} else {
			mnemonic = line[:firstSpace]
			operandStr = strings.TrimSpace(line[firstSpace:])
		}

		// NAME .equ value
		if fields := strings.Fields(operandStr); len(fields) > 0 && strings.EqualFold(fields[0], ".equ") {
			expr := strings.TrimSpace(operandStr[len(fields[0]):])
			if err := asm.defineSymbol(mnemonic, expr); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}

		directive := strings.ToLower(mnemonic)
		switch directive {
		case ".equ":
			args := splitOperands(operandStr)
			if len(args) != 2 {
				return nil, fmt.Errorf("line %d: %w: .equ needs a name and a value", lineNo, ErrOperands)
			}
			if err := asm.defineSymbol(args[0], args[1]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		case ".org", ".word", ".space":
			nodes = append(nodes, &Node{
				Type:      NodeDirective,
				Line:      lineNo,
				Source:    line,
				Directive: directive[1:],
				Args:      operandStr,
			})
			continue
		}

		mn, err := ParseMnemonic(mnemonic)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		var operands []Operand
		if operandStr != "" {
			for _, s := range splitOperands(operandStr) {
				op, err := parseOperand(s)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				operands = append(operands, op)
			}
		}
		nodes = append(nodes, &Node{Type: NodeInstruction, Line: lineNo, Source: line, Mnemonic: mn, Operands: operands})
	}
	return nodes, nil
}

// defineSymbol evaluates an .equ. Symbols must be defined before use and may
// not refer to labels.
func (asm *Assembler) defineSymbol(name, expr string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if !reLabel.MatchString(name) {
		return fmt.Errorf("%w: invalid symbol name %q", ErrSyntax, name)
	}
	if _, ok := asm.symbols[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateLabel, name)
	}
	v, err := asm.evaluate(expr, 0, true)
	if err != nil {
		return err
	}
	if v.label {
		return fmt.Errorf("%w: .equ %s refers to a label", ErrSyntax, name)
	}
	asm.symbols[name] = v.v
	return nil
}

// buildInstruction resolves an instruction node at pc. When final is unset,
// labels that are not yet placed evaluate to zero.
func (asm *Assembler) buildInstruction(n *Node, pc uint16, final bool) (cpu.Instruction, error) {
	mn := n.Mnemonic.Value
	if c, ok := cpu.ParseCondition(mn); ok {
		return asm.assembleJump(n, c, pc, final)
	}
	if opc, ok := cpu.ParseSingleOpcode(mn); ok {
		return asm.assembleSingle(n, opc, pc, final)
	}
	if opc, ok := cpu.ParseDoubleOpcode(mn); ok {
		return asm.assembleDouble(n, opc, pc, final)
	}
	if opc, ok := cpu.ParsePseudoOpcode(mn); ok {
		return asm.assemblePseudo(n, opc, pc, final)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknown, mn)
}

// generateInstructionCode produces the words of an instruction node.
func (asm *Assembler) generateInstructionCode(n *Node, pc uint16) ([]uint16, error) {
	inst, err := asm.buildInstruction(n, pc, true)
	if err != nil {
		return nil, err
	}
	return emit(inst, pc)
}

// expectOperands checks the operand count of a node.
func expectOperands(n *Node, count int) error {
	if len(n.Operands) != count {
		return fmt.Errorf("%w: %s expects %d operand(s), got %d", ErrOperands, n.Mnemonic.Value, count, len(n.Operands))
	}
	return nil
}
