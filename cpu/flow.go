package cpu

import "fmt"

// jump handles the eight conditional jumps. PC already points at the word
// after the jump, so the offset is relative to that.
func (tx *transaction) jump(inst Jump) error {
	if !inst.Condition.Evaluate(tx.ctx.Registers.Status()) {
		return nil
	}
	pc := tx.ctx.Registers.Address(PC)
	tx.ctx.Registers.Set(PC, int64(wrap(pc.Add(inst.Offset))))
	return nil
}

// opCALL handles the CALL instruction. The target is resolved first so that
// the return address pushed is the word after any extension word.
func (tx *transaction) opCALL(inst SingleOperand) error {
	target, err := tx.source(inst.Dest, SizeWord)
	if err != nil {
		return fmt.Errorf("CALL failed to get target: %w", err)
	}
	tx.push(tx.ctx.Registers.Get(PC))
	tx.ctx.Registers.Set(PC, target)
	return nil
}

// opRETI handles RETI (return from interrupt): pop SR, then pop PC.
func (tx *transaction) opRETI(inst SingleOperand) error {
	tx.ctx.Registers.Set(SR, tx.pop())
	tx.ctx.Registers.Set(PC, tx.pop())
	return nil
}
