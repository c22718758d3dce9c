package disassembler

import (
	"fmt"
	"strings"
)

// formatData formats unreached words into `.word` directives, eight words per
// line, each line commented with its address.
func formatData(data []uint16, baseAddr uint16) string {
	if len(data) == 0 {
		return ""
	}

	var sb strings.Builder
	const wordsPerLine = 8

	for i := 0; i < len(data); i += wordsPerLine {
		end := min(i+wordsPerLine, len(data))
		chunk := data[i:end]

		sb.WriteString("    .word    ")
		for j, w := range chunk {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%04x", w)
		}
		fmt.Fprintf(&sb, " ; $%04x\n", baseAddr+uint16(i))
	}

	return sb.String()
}
