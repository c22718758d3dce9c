package disassembler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
)

// LabelType defines the context of a label.
type LabelType int

const (
	// JumpTarget is for a jump or branch (JMP, JNE, BR, etc.).
	JumpTarget LabelType = iota
	// SubroutineEntry is for a CALL target.
	SubroutineEntry
)

// ErrTooLarge is returned for an image that does not fit the address space.
var ErrTooLarge = errors.New("image larger than the address space")

// Instruction represents a single decoded instruction at a specific address.
type Instruction struct {
	Address  uint16
	Inst     cpu.Instruction
	Mnemonic string
	Operands string
	Size     int  // in words, including extension words
	Valid    bool // decoded and not truncated
	IsCode   bool // reached from the entry point
}

// Disassemble performs a multi-stage disassembly of a word image loaded at
// base. Execution is assumed to start at base.
func Disassemble(code []uint16, base uint16) (string, error) {
	if len(code) == 0 {
		return "", nil
	}
	if len(code) > 1<<16 {
		return "", fmt.Errorf("%w: %d words", ErrTooLarge, len(code))
	}

	// --- STAGE 1: Linear Sweep ---
	instructions := make([]*Instruction, len(code))
	for i := range code {
		instructions[i] = decodeAt(code, i, base)
	}

	// --- STAGE 2: Control Flow Analysis ---
	labelTargets := make(map[uint16]LabelType)
	q := newQueue()
	q.push(0)

	for {
		idx, ok := q.pop()
		if !ok {
			break
		}
		if idx < 0 || idx >= len(instructions) {
			continue
		}

		inst := instructions[idx]
		if inst.IsCode || !inst.Valid {
			continue
		}
		inst.IsCode = true

		if !isTerminal(inst) {
			q.push(idx + inst.Size)
		}

		if target, ok := branchTarget(inst); ok {
			q.push(int(target - base))
			if isCall(inst) {
				labelTargets[target] = SubroutineEntry
			} else if _, exists := labelTargets[target]; !exists {
				labelTargets[target] = JumpTarget
			}
		}
	}

	// --- STAGE 3: Render Final Output ---
	var out strings.Builder
	for idx := 0; idx < len(code); {
		// Anything that was not reached is data up to the next code word.
		if !instructions[idx].IsCode {
			end := idx
			for end < len(code) && !instructions[end].IsCode {
				end++
			}
			out.WriteString(formatData(code[idx:end], base+uint16(idx)))
			idx = end
			continue
		}

		inst := instructions[idx]
		if labelType, exists := labelTargets[inst.Address]; exists {
			fmt.Fprintf(&out, "%s:\n", labelName(inst.Address, labelType))
		}

		operands := inst.Operands
		if target, ok := branchTarget(inst); ok {
			if labelType, exists := labelTargets[target]; exists {
				operands = targetOperand(inst, labelName(target, labelType))
			}
		}

		if operands != "" {
			fmt.Fprintf(&out, "    %-8s %s\n", inst.Mnemonic, operands)
		} else {
			fmt.Fprintf(&out, "    %s\n", inst.Mnemonic)
		}
		idx += inst.Size
	}

	return out.String(), nil
}

// addrQueue is a simple worklist of word indexes to decode.
type addrQueue struct {
	items []int
	seen  map[int]bool
}

func newQueue() *addrQueue {
	return &addrQueue{seen: make(map[int]bool)}
}

func (q *addrQueue) push(idx int) {
	if !q.seen[idx] {
		q.items = append(q.items, idx)
		q.seen[idx] = true
	}
}

func (q *addrQueue) pop() (int, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	a := q.items[0]
	q.items = q.items[1:]
	return a, true
}
