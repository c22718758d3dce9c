package cpu

import "fmt"

// Word is a 16-bit machine word. It remembers whether it was built from a
// signed or an unsigned value, but both views are always available.
type Word struct {
	raw    uint16
	signed bool
}

// UnsignedWord wraps an unsigned 16-bit value.
func UnsignedWord(v uint16) Word {
	return Word{raw: v}
}

// SignedWord wraps a signed 16-bit value.
func SignedWord(v int16) Word {
	return Word{raw: uint16(v), signed: true}
}

// Unsigned returns the word as an unsigned value, used for bit extraction.
func (w Word) Unsigned() uint16 {
	return w.raw
}

// Signed returns the word as a two's complement value, used for offsets.
func (w Word) Signed() int16 {
	return int16(w.raw)
}

// IsSigned reports which interpretation the word was built with.
func (w Word) IsSigned() bool {
	return w.signed
}

func (w Word) String() string {
	if w.signed {
		return fmt.Sprintf("%d", w.Signed())
	}
	return fmt.Sprintf("$%04x", w.raw)
}

// Address is a word address. The domain is wider than 16 bits so that index
// arithmetic cannot overflow before it is wrapped by the bus.
type Address uint64

// WordWidth is the distance between two consecutive words. Memory is word
// addressed, so this is a single address unit.
const WordWidth Address = 1

// Add returns the address displaced by a signed offset.
func (a Address) Add(o Offset) Address {
	return Address(int64(a) + int64(o))
}

func (a Address) String() string {
	return fmt.Sprintf("$%04x", uint64(a))
}

// Offset is a signed displacement used by jumps and indexed addressing.
type Offset int16

// SignExtend interprets the low width bits of v as a two's complement number.
func SignExtend(v uint16, width uint) Offset {
	if width == 0 || width >= 16 {
		return Offset(int16(v))
	}
	shift := 16 - width
	return Offset(int16(v<<shift) >> shift)
}
