package cpu

import "strings"

// Status is the value of the status register.
type Status uint16

// Flag is the bit offset of a status flag.
type Flag uint

// Status register flags.
const (
	// FlagC is carry
	FlagC Flag = 0
	// FlagZ is zero
	FlagZ Flag = 1
	// FlagN is negative
	FlagN Flag = 2
	// FlagGIE is general interrupt enable
	FlagGIE Flag = 3
	// FlagCPUOff turns the CPU off
	FlagCPUOff Flag = 4
	// FlagOscOff turns the oscillator off
	FlagOscOff Flag = 5
	// FlagSCG0 is system clock generator control 0
	FlagSCG0 Flag = 6
	// FlagSCG1 is system clock generator control 1
	FlagSCG1 Flag = 7
	// FlagV is overflow
	FlagV Flag = 8
)

// Has reports whether a flag is set.
func (s Status) Has(f Flag) bool {
	return s&(1<<f) != 0
}

// With returns a copy of s with the flag set or cleared.
func (s Status) With(f Flag, on bool) Status {
	if on {
		return s | 1<<f
	}
	return s &^ (1 << f)
}

// C, Z, N and V are shorthands for the arithmetic flags.
func (s Status) C() bool { return s.Has(FlagC) }
func (s Status) Z() bool { return s.Has(FlagZ) }
func (s Status) N() bool { return s.Has(FlagN) }
func (s Status) V() bool { return s.Has(FlagV) }

// String shows set flags in upper case and clear flags in lower case, most
// significant first. The clock generator bits show as digits when set.
func (s Status) String() string {
	var b strings.Builder
	flags := []struct {
		f        Flag
		set, clr byte
	}{
		{FlagV, 'V', 'v'},
		{FlagSCG1, '1', '-'},
		{FlagSCG0, '0', '-'},
		{FlagOscOff, 'O', 'o'},
		{FlagCPUOff, 'P', 'p'},
		{FlagGIE, 'G', 'g'},
		{FlagN, 'N', 'n'},
		{FlagZ, 'Z', 'z'},
		{FlagC, 'C', 'c'},
	}
	for _, f := range flags {
		if s.Has(f.f) {
			b.WriteByte(f.set)
		} else {
			b.WriteByte(f.clr)
		}
	}
	return b.String()
}

// Evaluate decides whether a jump with this condition is taken. It only reads
// the status value.
func (c Condition) Evaluate(s Status) bool {
	switch c {
	case JNE:
		return !s.Z()
	case JEQ:
		return s.Z()
	case JLO:
		return !s.C()
	case JHS:
		return s.C()
	case JN:
		return s.N()
	case JGE:
		return s.V() == s.N()
	case JL:
		return s.V() != s.N()
	case JMP:
		return true
	}
	return false
}
