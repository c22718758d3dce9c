package cpu

import "errors"

var (
	// ErrUnknownOpcode is returned when a bitfield has no entry in the opcode
	// tables.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrInvalidDestinationMode is returned when a source-only addressing mode
	// is resolved as a destination.
	ErrInvalidDestinationMode = errors.New("invalid destination addressing mode")

	// ErrUnencodable is returned by Encode for instructions that have no
	// machine representation.
	ErrUnencodable = errors.New("instruction cannot be encoded")
)
