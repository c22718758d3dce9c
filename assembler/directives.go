package assembler

import (
	"fmt"
)

// fixed evaluates an argument that must not depend on label placement.
func (asm *Assembler) fixed(dir, expr string, pc uint16) (int64, error) {
	if expr == "" {
		return 0, fmt.Errorf("%w: .%s needs an argument", ErrOperands, dir)
	}
	v, err := asm.evaluate(expr, pc, false)
	if err != nil {
		return 0, err
	}
	if v.label {
		return 0, fmt.Errorf("%w: .%s argument may not refer to a label", ErrSyntax, dir)
	}
	return v.v, nil
}

// getDirectiveSize calculates the word size of a directive for the sizing pass.
func (asm *Assembler) getDirectiveSize(n *Node, pc uint16) (int, error) {
	dir, args := n.Directive, n.Args

	switch dir {
	case "org":
		addr, err := asm.fixed(dir, args, pc)
		if err != nil {
			return 0, err
		}
		if addr < int64(pc) || addr > 0xFFFF {
			return 0, fmt.Errorf("%w: .org $%04x from $%04x", ErrRange, addr, pc)
		}
		return int(addr - int64(pc)), nil

	case "word":
		if args == "" {
			return 0, fmt.Errorf("%w: .word needs at least one value", ErrOperands)
		}
		return len(splitOperands(args)), nil

	case "space":
		count, err := asm.fixed(dir, args, pc)
		if err != nil {
			return 0, err
		}
		if count < 0 || count > 0x10000 {
			return 0, fmt.Errorf("%w: .space %d", ErrRange, count)
		}
		return int(count), nil
	}

	return 0, fmt.Errorf("%w: unknown directive .%s", ErrSyntax, dir)
}

// generateDirectiveCode generates the words for assembler directives. Padding
// from .org and .space is zero filled.
func (asm *Assembler) generateDirectiveCode(n *Node, pc uint16) ([]uint16, error) {
	dir, args := n.Directive, n.Args

	switch dir {
	case "org", "space":
		size, err := asm.getDirectiveSize(n, pc)
		if err != nil {
			return nil, err
		}
		return make([]uint16, size), nil

	case "word":
		var words []uint16
		for i, expr := range splitOperands(args) {
			v, err := asm.evaluate(expr, pc+uint16(i), true)
			if err != nil {
				return nil, err
			}
			if err := checkWord(v.v, expr); err != nil {
				return nil, err
			}
			words = append(words, uint16(v.v))
		}
		return words, nil
	}

	return nil, fmt.Errorf("%w: unknown directive .%s", ErrSyntax, dir)
}
