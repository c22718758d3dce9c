package assembler

// NodeType says what a source line turned into.
type NodeType int

const (
	// NodeInstruction is a real or emulated instruction.
	NodeInstruction NodeType = iota
	// NodeLabel marks an address and emits nothing.
	NodeLabel
	// NodeDirective is .org, .word or .space.
	NodeDirective
)

// Node is one parsed element of the source. A line holding a label and an
// instruction produces two nodes.
type Node struct {
	Type NodeType
	Line int
	// Source is the text the node was parsed from, for error messages.
	Source string

	Label string

	// Directive is the lower case name without the dot, Args the raw rest.
	Directive string
	Args      string

	Mnemonic Mnemonic
	Operands []Operand

	// Size in words, settled by the sizing passes.
	Size int
}
