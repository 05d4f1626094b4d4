// Package decoder decodes raw 32-bit MIPS instruction words into typed
// R-Type, I-Type and J-Type instructions.
//
// Decoding is pure: Decode keeps no state and is safe for concurrent use.
package decoder

// Decode decodes a single instruction word.
//
// Opcode 0 is dispatched on the function code, opcodes 0x02 and 0x03 are
// jumps, and every other recognized opcode is an immediate instruction. On
// failure the returned error is a *DecodeError wrapping ErrUnknownOpcode or
// ErrUnknownFunction, and the instruction is nil.
func Decode(word Word) (Instruction, error) {
	opcode := word.Opcode()

	family, err := Classify(opcode)
	if err != nil {
		return nil, &DecodeError{Word: word, Opcode: opcode, Err: ErrUnknownOpcode}
	}

	switch family {
	case FamilyRegister:
		fn, err := LookupFunction(word.Funct())
		if err != nil {
			return nil, &DecodeError{Word: word, Opcode: opcode, Funct: word.Funct(), Err: ErrUnknownFunction}
		}
		return &RegisterInstruction{
			Opcode:   OpSpecial,
			Rs:       word.Rs(),
			Rt:       word.Rt(),
			Rd:       word.Rd(),
			Shamt:    word.Shamt(),
			Function: fn,
		}, nil
	case FamilyJump:
		op, err := LookupJump(opcode)
		if err != nil {
			return nil, &DecodeError{Word: word, Opcode: opcode, Err: ErrUnknownOpcode}
		}
		return &JumpInstruction{
			Opcode: op,
			Target: word.Target(),
		}, nil
	default:
		op, err := LookupOpcode(opcode)
		if err != nil {
			return nil, &DecodeError{Word: word, Opcode: opcode, Err: ErrUnknownOpcode}
		}
		return &ImmediateInstruction{
			Opcode:    op,
			Rs:        word.Rs(),
			Rt:        word.Rt(),
			Immediate: word.Immediate(),
		}, nil
	}
}
