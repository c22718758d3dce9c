// Package config reads machine profiles for the emulator.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
	"github.com/DaQueenJodi/MSP430-Emulator/memory"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid machine profile")

// Machine describes how a program image is loaded and run.
type Machine struct {
	// LoadAddress is the word address the image is copied to.
	LoadAddress uint16 `yaml:"load_address"`
	// Entry is the initial PC. Zero means LoadAddress.
	Entry uint16 `yaml:"entry"`
	// MemoryWords is the RAM size.
	MemoryWords int `yaml:"memory_words"`
	// MaxSteps stops a run after this many instructions. Zero is unlimited.
	MaxSteps int `yaml:"max_steps"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
	// Trace logs every retired instruction.
	Trace bool `yaml:"trace"`
	// Registers holds initial register values keyed by name (pc, sp, sr, r4..r15).
	Registers map[string]uint16 `yaml:"registers"`
}

// Default returns a profile with the full address space, a program at $4400
// and the stack at the top of memory.
func Default() Machine {
	return Machine{
		LoadAddress: 0x4400,
		MemoryWords: memory.MaxWords,
		MaxSteps:    1000000,
		LogLevel:    "info",
		Registers: map[string]uint16{
			"sp": 0xFFFF,
		},
	}
}

// Load reads a profile from a YAML file. Missing keys keep their defaults.
func Load(path string) (Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Machine{}, err
	}
	m, err := Parse(data)
	if err != nil {
		return Machine{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a YAML profile on top of the defaults. Unknown keys are an
// error.
func Parse(data []byte) (Machine, error) {
	def := Default()
	m := def
	m.Registers = nil
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return Machine{}, err
	}
	// registers from the file win; the defaults fill in the rest
	if m.Registers == nil {
		m.Registers = make(map[string]uint16, len(def.Registers))
	}
	for name, v := range def.Registers {
		if _, ok := m.Registers[name]; !ok {
			m.Registers[name] = v
		}
	}
	if err := m.Validate(); err != nil {
		return Machine{}, err
	}
	return m, nil
}

// Validate checks ranges and names.
func (m Machine) Validate() error {
	if m.MemoryWords <= 0 || m.MemoryWords > memory.MaxWords {
		return fmt.Errorf("%w: memory_words %d out of range", ErrInvalid, m.MemoryWords)
	}
	if int(m.LoadAddress) >= m.MemoryWords {
		return fmt.Errorf("%w: load_address $%04x outside %d words", ErrInvalid, m.LoadAddress, m.MemoryWords)
	}
	if m.MaxSteps < 0 {
		return fmt.Errorf("%w: max_steps %d is negative", ErrInvalid, m.MaxSteps)
	}
	if _, err := logrus.ParseLevel(m.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for name := range m.Registers {
		if _, ok := ParseRegister(name); !ok {
			return fmt.Errorf("%w: unknown register %q", ErrInvalid, name)
		}
	}
	return nil
}

// EntryPoint returns the address execution starts at.
func (m Machine) EntryPoint() cpu.Address {
	if m.Entry != 0 {
		return cpu.Address(m.Entry)
	}
	return cpu.Address(m.LoadAddress)
}

// Level returns the logrus level, falling back to Info.
func (m Machine) Level() logrus.Level {
	l, err := logrus.ParseLevel(m.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	if m.Trace && l < logrus.DebugLevel {
		return logrus.DebugLevel
	}
	return l
}

// Apply sets the profile's initial registers.
func (m Machine) Apply(regs *cpu.Registers) {
	for name, v := range m.Registers {
		if r, ok := ParseRegister(name); ok {
			regs.Set(r, int64(v))
		}
	}
}

// ParseRegister accepts pc, sp, sr, cg and r0 to r15 in any case.
func ParseRegister(name string) (cpu.Reg, bool) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "pc":
		return cpu.PC, true
	case "sp":
		return cpu.SP, true
	case "sr":
		return cpu.SR, true
	case "cg":
		return cpu.CG, true
	default:
		var r int
		if _, err := fmt.Sscanf(n, "r%d", &r); err != nil || r < 0 || r >= cpu.NumRegisters {
			return 0, false
		}
		if fmt.Sprintf("r%d", r) != n {
			return 0, false
		}
		return cpu.Reg(r), true
	}
}
