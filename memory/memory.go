// Package memory provides word-addressed RAM for the CPU.
package memory

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
	"github.com/sirupsen/logrus"
)

// MaxWords is the size of the full 16-bit address space.
const MaxWords = 1 << 16

// ErrSize is returned for a RAM size outside 1 to MaxWords words.
var ErrSize = errors.New("invalid memory size")

// RAM is a block of words. Addresses wrap modulo the size of the block.
type RAM struct {
	mu    sync.RWMutex
	words []uint16
	log   *logrus.Entry
}

// New returns zeroed RAM holding the given number of words.
func New(words int) (*RAM, error) {
	if words <= 0 || words > MaxWords {
		return nil, fmt.Errorf("%w: %d words", ErrSize, words)
	}
	return &RAM{
		words: make([]uint16, words),
		log:   logrus.WithField("component", "memory"),
	}, nil
}

// Size returns the number of words.
func (m *RAM) Size() int {
	return len(m.words)
}

func (m *RAM) index(addr cpu.Address) int {
	return int(uint64(addr) % uint64(len(m.words)))
}

// ReadWord returns the word at addr.
func (m *RAM) ReadWord(addr cpu.Address) cpu.Word {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cpu.UnsignedWord(m.words[m.index(addr)])
}

// WriteWord stores a word at addr.
func (m *RAM) WriteWord(addr cpu.Address, w cpu.Word) {
	m.mu.Lock()
	m.words[m.index(addr)] = w.Unsigned()
	m.mu.Unlock()
}

// Load copies words into RAM starting at addr.
func (m *RAM) Load(addr cpu.Address, words []uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, w := range words {
		m.words[m.index(addr+cpu.Address(i))] = w
	}
	m.log.WithFields(logrus.Fields{
		"addr":  addr.String(),
		"words": len(words),
	}).Debug("loaded")
}

// LoadBytes loads a little-endian image starting at addr and returns the
// number of words written. An odd trailing byte becomes the low byte of a
// final word.
func (m *RAM) LoadBytes(addr cpu.Address, b []byte) int {
	words := cpu.BytesToWords(b)
	m.Load(addr, words)
	return len(words)
}

// Slice returns a copy of n words starting at addr.
func (m *RAM) Slice(addr cpu.Address, n int) []uint16 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]uint16, n)
	for i := range out {
		out[i] = m.words[m.index(addr+cpu.Address(i))]
	}
	return out
}

// Reset clears all of RAM.
func (m *RAM) Reset() {
	m.mu.Lock()
	clear(m.words)
	m.mu.Unlock()
}

// Dump formats n words from addr, eight per line, each line prefixed with its
// address.
func (m *RAM) Dump(addr cpu.Address, n int) string {
	words := m.Slice(addr, n)
	var b strings.Builder
	for i, w := range words {
		if i%8 == 0 {
			if i > 0 {
				b.WriteByte('\n')
			}
			a := cpu.Address(m.index(addr + cpu.Address(i)))
			fmt.Fprintf(&b, "%s:", a)
		}
		fmt.Fprintf(&b, " %04x", w)
	}
	return b.String()
}
