package decoder

import "fmt"

// Family groups opcodes by the instruction shape they select.
type Family int

const (
	FamilyRegister  Family = iota + 1 // opcode 0, dispatched on the function code
	FamilyJump                        // 26-bit target payload
	FamilyImmediate                   // 16-bit immediate
)

func (f Family) String() string {
	switch f {
	case FamilyRegister:
		return "register"
	case FamilyJump:
		return "jump"
	case FamilyImmediate:
		return "immediate"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// Opcode identifies an immediate-family instruction. OpSpecial is the register
// family trigger and is carried by every RegisterInstruction.
type Opcode uint8

const (
	OpSpecial                      Opcode = 0x00
	OpBranchEqual                  Opcode = 0x04
	OpBranchNotEqual               Opcode = 0x05
	OpAddImmediate                 Opcode = 0x08
	OpAddImmediateUnsigned         Opcode = 0x09
	OpSetLessThanImmediate         Opcode = 0x0A
	OpSetLessThanImmediateUnsigned Opcode = 0x0B
	OpAndImmediate                 Opcode = 0x0C
	OpOrImmediate                  Opcode = 0x0D
	OpLoadUpperImmediate           Opcode = 0x0F
	OpLoadWord                     Opcode = 0x23
	OpLoadByteUnsigned             Opcode = 0x24
	OpLoadHalfwordUnsigned         Opcode = 0x25
	OpStoreByte                    Opcode = 0x28
	OpStoreHalfword                Opcode = 0x29
	OpStoreWord                    Opcode = 0x2B
)

// JumpOpcode identifies a jump-family instruction.
type JumpOpcode uint8

const (
	OpJump        JumpOpcode = 0x02
	OpJumpAndLink JumpOpcode = 0x03
)

// opcodeMnemonics doubles as the recognition table for LookupOpcode: an empty
// entry means the opcode is not part of the immediate family.
var opcodeMnemonics = [64]string{
	OpSpecial:                      "special",
	OpBranchEqual:                  "beq",
	OpBranchNotEqual:               "bne",
	OpAddImmediate:                 "addi",
	OpAddImmediateUnsigned:         "addiu",
	OpSetLessThanImmediate:         "slti",
	OpSetLessThanImmediateUnsigned: "sltiu",
	OpAndImmediate:                 "andi",
	OpOrImmediate:                  "ori",
	OpLoadUpperImmediate:           "lui",
	OpLoadWord:                     "lw",
	OpLoadByteUnsigned:             "lbu",
	OpLoadHalfwordUnsigned:         "lhu",
	OpStoreByte:                    "sb",
	OpStoreHalfword:                "sh",
	OpStoreWord:                    "sw",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeMnemonics) && opcodeMnemonics[op] != "" {
		return opcodeMnemonics[op]
	}
	return fmt.Sprintf("Opcode(0x%02x)", uint8(op))
}

func (op JumpOpcode) String() string {
	switch op {
	case OpJump:
		return "j"
	case OpJumpAndLink:
		return "jal"
	default:
		return fmt.Sprintf("JumpOpcode(0x%02x)", uint8(op))
	}
}

// Classify maps a 6-bit opcode to the family of the instruction it selects.
func Classify(opcode uint8) (Family, error) {
	switch {
	case Opcode(opcode) == OpSpecial:
		return FamilyRegister, nil
	case isJump(opcode):
		return FamilyJump, nil
	}
	if _, err := LookupOpcode(opcode); err != nil {
		return 0, err
	}
	return FamilyImmediate, nil
}

// LookupOpcode returns the immediate-family tag for opcode, or OpSpecial for 0.
// Jump opcodes are not part of this table, see LookupJump.
func LookupOpcode(opcode uint8) (Opcode, error) {
	if int(opcode) >= len(opcodeMnemonics) || opcodeMnemonics[opcode] == "" {
		return 0, fmt.Errorf("%w: 0x%02x", ErrUnknownOpcode, opcode)
	}
	return Opcode(opcode), nil
}

// LookupJump returns the jump-family tag for opcode.
func LookupJump(opcode uint8) (JumpOpcode, error) {
	if !isJump(opcode) {
		return 0, fmt.Errorf("%w: 0x%02x is not a jump", ErrUnknownOpcode, opcode)
	}
	return JumpOpcode(opcode), nil
}

func isJump(opcode uint8) bool {
	return JumpOpcode(opcode) == OpJump || JumpOpcode(opcode) == OpJumpAndLink
}
