package cpu

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Execute fetches, decodes, and executes a single instruction. The
// instruction works on a copy of the registers and buffers its memory
// writes; nothing is committed unless the whole instruction succeeds.
func (c *CPU) Execute() error {
	if !c.Running {
		return nil
	}

	tx := &transaction{bus: c.Bus}
	tx.ctx = NewContext(c.Registers, tx)

	// Fetch
	pc := tx.ctx.Registers.Address(PC)
	opcode, ctx := tx.ctx.NextStreamWord()
	tx.ctx = ctx

	// Decode
	inst, err := Decode(opcode)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"pc":   pc.String(),
			"word": fmt.Sprintf("%04X", opcode.Unsigned()),
		}).Error("decode failed")
		return fmt.Errorf("decode failed at %s: %w", pc, err)
	}
	c.LastInstruction = inst

	// Execute
	switch inst := inst.(type) {
	case Jump:
		err = tx.jump(inst)
	case SingleOperand:
		err = tx.single(inst)
	case DoubleOperand:
		err = tx.double(inst)
	default:
		err = fmt.Errorf("no handler for %v", inst)
	}
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"pc":          pc.String(),
			"word":        fmt.Sprintf("%04X", opcode.Unsigned()),
			"instruction": inst.String(),
		}).Error("execution failed")
		return fmt.Errorf("execution failed for opcode %04X: %w", opcode.Unsigned(), err)
	}

	// Retire
	tx.commit(c)
	c.Steps++

	if c.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		c.log.WithFields(logrus.Fields{
			"pc":          pc.String(),
			"word":        fmt.Sprintf("%04X", opcode.Unsigned()),
			"instruction": inst.String(),
			"sr":          c.Status().String(),
		}).Debug("cpu step")
	}

	if c.Status().Has(FlagCPUOff) {
		c.Running = false
		c.log.WithField("steps", c.Steps).Info("cpu off")
	}
	return nil
}

type pendingWrite struct {
	addr Address
	w    Word
}

// transaction is one instruction in flight.
type transaction struct {
	ctx    Context
	bus    Reader
	writes []pendingWrite
}

// ReadWord sees the transaction's own buffered writes before the bus.
func (tx *transaction) ReadWord(addr Address) Word {
	for i := len(tx.writes) - 1; i >= 0; i-- {
		if tx.writes[i].addr == addr {
			return tx.writes[i].w
		}
	}
	if tx.bus == nil {
		return UnsignedWord(0)
	}
	return tx.bus.ReadWord(addr)
}

func (tx *transaction) commit(c *CPU) {
	c.Registers = tx.ctx.Registers
	for _, pw := range tx.writes {
		c.Bus.WriteWord(pw.addr, pw.w)
	}
}

func (tx *transaction) source(op Operand, size Size) (int64, error) {
	v, ctx, err := ResolveSource(op, tx.ctx)
	if err != nil {
		return 0, err
	}
	tx.ctx = ctx
	return v & size.Mask(), nil
}

func (tx *transaction) destination(op Operand) (Location, error) {
	loc, ctx, err := ResolveDestination(op, tx.ctx)
	if err != nil {
		return Location{}, err
	}
	tx.ctx = ctx
	return loc, nil
}

// modify resolves the operand of a format II read-modify-write instruction.
// @Rn and @Rn+ name the memory word Rn points at; the increment lands after
// the read and the result is written back to the same address.
func (tx *transaction) modify(op Operand, size Size) (Location, int64, error) {
	switch op.Mode {
	case Indirect, IndirectIncrement:
		if op.Reg == PC {
			break
		}
		loc := MemoryLocation(tx.ctx.Registers.Address(op.Reg))
		v := tx.read(loc, size)
		if op.Mode == IndirectIncrement {
			tx.ctx.Registers.Increment(op.Reg)
		}
		return loc, v, nil
	}

	loc, err := tx.destination(op)
	if err != nil {
		return Location{}, 0, err
	}
	return loc, tx.read(loc, size), nil
}

func (tx *transaction) single(inst SingleOperand) error {
	switch inst.Opcode {
	case RRC:
		return tx.opRRC(inst)
	case SWPB:
		return tx.opSWPB(inst)
	case RRA:
		return tx.opRRA(inst)
	case SXT:
		return tx.opSXT(inst)
	case PUSH:
		return tx.opPUSH(inst)
	case CALL:
		return tx.opCALL(inst)
	case RETI:
		return tx.opRETI(inst)
	}
	return fmt.Errorf("%w: single operand opcode %d", ErrUnknownOpcode, inst.Opcode)
}

func (tx *transaction) double(inst DoubleOperand) error {
	switch inst.Opcode {
	case MOV:
		return tx.opMOV(inst)
	case ADD, ADDC, SUB, SUBC, CMP, DADD:
		return tx.opArithmetic(inst)
	case BIT, BIC, BIS, XOR, AND:
		return tx.opLogical(inst)
	}
	return fmt.Errorf("%w: double operand opcode %d", ErrUnknownOpcode, inst.Opcode)
}
