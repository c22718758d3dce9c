package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DaQueenJodi/MSP430-Emulator/config"
	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	m := config.Default()
	require.NoError(t, m.Validate())
	assert.Equal(t, cpu.Address(0x4400), m.EntryPoint())
	assert.Equal(t, logrus.InfoLevel, m.Level())
}

func TestParse(t *testing.T) {
	src := `
load_address: 0x100
entry: 0x110
memory_words: 4096
max_steps: 50
log_level: warn
trace: true
registers:
  sp: 0x0800
  r4: 7
`
	m, err := config.Parse([]byte(src))
	require.NoError(t, err)

	want := config.Machine{
		LoadAddress: 0x100,
		Entry:       0x110,
		MemoryWords: 4096,
		MaxSteps:    50,
		LogLevel:    "warn",
		Trace:       true,
		Registers:   map[string]uint16{"sp": 0x800, "r4": 7},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, cpu.Address(0x110), m.EntryPoint())
	assert.Equal(t, logrus.DebugLevel, m.Level())

	var regs cpu.Registers
	m.Apply(&regs)
	assert.Equal(t, int64(0x800), regs.Get(cpu.SP))
	assert.Equal(t, int64(7), regs.Get(cpu.R4))
}

func TestParseKeepsDefaults(t *testing.T) {
	m, err := config.Parse([]byte("max_steps: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, m.MaxSteps)
	assert.Equal(t, uint16(0x4400), m.LoadAddress)
	assert.Equal(t, "info", m.LogLevel)
}

func TestParseMergesRegisters(t *testing.T) {
	m, err := config.Parse([]byte("registers:\n  r5: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]uint16{"sp": 0xFFFF, "r5": 3}, m.Registers)

	m, err = config.Parse([]byte("registers:\n  sp: 0x0400\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]uint16{"sp": 0x0400}, m.Registers)

	m, err = config.Parse([]byte("trace: false\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]uint16{"sp": 0xFFFF}, m.Registers)

	// the defaults are not shared between profiles
	m.Registers["sp"] = 1
	assert.Equal(t, uint16(0xFFFF), config.Default().Registers["sp"])
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name, src string
	}{
		{"unknown key", "speed: 8\n"},
		{"memory too big", "memory_words: 70000\n"},
		{"load outside memory", "memory_words: 16\nload_address: 0x20\n"},
		{"bad level", "log_level: loud\n"},
		{"bad register", "registers:\n  r16: 1\n"},
		{"negative steps", "max_steps: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "machine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("load_address: 0x200\n"), 0o644))

	m, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x200), m.LoadAddress)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseRegister(t *testing.T) {
	tests := []struct {
		name string
		want cpu.Reg
		ok   bool
	}{
		{"pc", cpu.PC, true},
		{"SP", cpu.SP, true},
		{"r15", cpu.R15, true},
		{"r0", cpu.PC, true},
		{"r16", 0, false},
		{"r05", 0, false},
		{"x1", 0, false},
	}
	for _, tt := range tests {
		r, ok := config.ParseRegister(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		if tt.ok {
			assert.Equal(t, tt.want, r, tt.name)
		}
	}
}
