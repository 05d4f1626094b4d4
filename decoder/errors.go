package decoder

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOpcode is returned when bits [31:26] match no recognized opcode.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrUnknownFunction is returned when an opcode 0 word carries an
	// unrecognized function code.
	ErrUnknownFunction = errors.New("unknown function")
)

// DecodeError reports a word that could not be decoded. Err is always one of
// ErrUnknownOpcode or ErrUnknownFunction.
type DecodeError struct {
	Word   Word
	Opcode uint8
	Funct  uint8 // only set for ErrUnknownFunction
	Err    error
}

func (e *DecodeError) Error() string {
	if errors.Is(e.Err, ErrUnknownFunction) {
		return fmt.Sprintf("decoding 0x%08x: %v 0x%02x", uint32(e.Word), ErrUnknownFunction, e.Funct)
	}
	return fmt.Sprintf("decoding 0x%08x: %v 0x%02x", uint32(e.Word), ErrUnknownOpcode, e.Opcode)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
