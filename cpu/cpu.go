package cpu

import (
	"github.com/sirupsen/logrus"
)

// CPU registers and the bus they operate on.
type CPU struct {
	// Registers is the register file. The status flags live in SR.
	Registers Registers
	// Bus is the memory the CPU is attached to.
	Bus Bus
	// LastInstruction is the most recently decoded instruction.
	LastInstruction Instruction

	// Steps counts retired instructions.
	Steps int
	// Running or not.
	Running bool

	log *logrus.Entry
}

// Option configures a CPU.
type Option func(*CPU)

// WithLogger makes the CPU log through the given entry.
func WithLogger(l *logrus.Entry) Option {
	return func(c *CPU) {
		c.log = l
	}
}

// New creates a new CPU attached to a bus.
func New(bus Bus, opts ...Option) *CPU {
	c := &CPU{
		Bus: bus,
		log: logrus.WithField("component", "cpu"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Reset clears all registers, sets PC to entry and starts the CPU.
func (c *CPU) Reset(entry Address) {
	c.Registers = Registers{}
	c.Registers.Set(PC, int64(uint16(entry)))
	c.LastInstruction = nil
	c.Steps = 0
	c.Running = true
}

// LoadCode writes words to memory at the specified address and points PC at
// them.
func (c *CPU) LoadCode(addr Address, code []uint16) {
	for i, w := range code {
		c.Bus.WriteWord(wrap(addr+Address(i)), UnsignedWord(w))
	}
	c.Registers.Set(PC, int64(uint16(addr)))
}

// Status returns the status register.
func (c *CPU) Status() Status {
	return c.Registers.Status()
}

// Context returns a resolution context for the current register state.
func (c *CPU) Context() Context {
	return NewContext(c.Registers, c.Bus)
}

// Run executes instructions until the CPU stops or max instructions have been
// retired. A max of zero or less means no limit. It returns the number of
// instructions executed by this call.
func (c *CPU) Run(max int) (int, error) {
	n := 0
	for c.Running && (max <= 0 || n < max) {
		if err := c.Execute(); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
