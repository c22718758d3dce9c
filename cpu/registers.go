package cpu

import (
	"fmt"
	"strings"
)

// Reg is a register number, 0 to 15.
type Reg uint8

// Register numbers. The first four are special purpose.
const (
	// PC is the program counter.
	PC Reg = iota
	// SP is the stack pointer.
	SP
	// SR is the status register. It doubles as constant generator 1.
	SR
	// CG is the always-zero register, constant generator 2.
	CG
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
)

// NumRegisters is the size of the register file.
const NumRegisters = 16

func (r Reg) String() string {
	switch r {
	case PC:
		return "pc"
	case SP:
		return "sp"
	case SR:
		return "sr"
	case CG:
		return "r3"
	}
	return fmt.Sprintf("r%d", uint8(r))
}

// Valid reports whether the register number exists.
func (r Reg) Valid() bool {
	return r < NumRegisters
}

// Registers is the register file. Values are kept 64 bits wide for headroom
// during arithmetic even though the architecture is 16 bits wide.
//
// The zero value is a register file with every register cleared.
type Registers struct {
	r [NumRegisters]int64
}

// Get returns the value of a register. CG always reads as zero.
func (rs Registers) Get(n Reg) int64 {
	if n == CG || !n.Valid() {
		return 0
	}
	return rs.r[n]
}

// Set writes a register. Writes to CG are discarded.
func (rs *Registers) Set(n Reg, v int64) {
	if n == CG || !n.Valid() {
		return
	}
	rs.r[n] = v
}

// Increment adds one word width to a register, wrapping at 16 bits. CG is
// left alone.
func (rs *Registers) Increment(n Reg) {
	rs.Set(n, (rs.Get(n)+int64(WordWidth))&0xFFFF)
}

// Address returns the register value as a word address.
func (rs Registers) Address(n Reg) Address {
	return Address(uint16(rs.Get(n)))
}

// Status returns the status register as a Status value.
func (rs Registers) Status() Status {
	return Status(uint16(rs.Get(SR)))
}

// SetStatus replaces the status register.
func (rs *Registers) SetStatus(s Status) {
	rs.Set(SR, int64(s))
}

func (rs Registers) String() string {
	var s strings.Builder
	for i := Reg(0); i < NumRegisters; i++ {
		if i > 0 {
			if i%4 == 0 {
				s.WriteString("\n")
			} else {
				s.WriteString("  ")
			}
		}
		fmt.Fprintf(&s, "%-3s=%04x", i, uint16(rs.Get(i)))
	}
	return s.String()
}
