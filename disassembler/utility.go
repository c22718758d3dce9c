package disassembler

import (
	"fmt"

	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
)

// formatOffset renders a jump offset with an explicit sign.
func formatOffset(v cpu.Offset) string {
	if v >= 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}

// labelName generates a label string based on the address and its context.
func labelName(addr uint16, labelType LabelType) string {
	prefix := "loc_"
	switch labelType {
	case SubroutineEntry:
		prefix = "sub_"
	}
	return fmt.Sprintf("%s%04X", prefix, addr)
}
