package decoder

import "fmt"

// Type is the encoding format of a decoded instruction.
type Type string

const (
	TypeR Type = "R-Type"
	TypeI Type = "I-Type"
	TypeJ Type = "J-Type"
)

// Instruction is a decoded MIPS instruction. It is implemented only by
// *RegisterInstruction, *JumpInstruction and *ImmediateInstruction.
type Instruction interface {
	fmt.Stringer
	Type() Type
	// Mnemonic returns the assembler mnemonic of the operation.
	Mnemonic() string
	// OpcodeBits returns the raw 6-bit primary opcode.
	OpcodeBits() uint8

	instruction()
}

// RegisterInstruction is an R-Type instruction: opcode 0 dispatched on the
// function code.
type RegisterInstruction struct {
	Opcode   Opcode // always OpSpecial
	Rs       Register
	Rt       Register
	Rd       Register
	Shamt    uint8
	Function Function
}

// JumpInstruction is a J-Type instruction. Target is the raw 26-bit payload.
type JumpInstruction struct {
	Opcode JumpOpcode
	Target uint32
}

// ImmediateInstruction is an I-Type instruction.
type ImmediateInstruction struct {
	Opcode    Opcode
	Rs        Register
	Rt        Register
	Immediate int16
}

func (*RegisterInstruction) instruction()  {}
func (*JumpInstruction) instruction()      {}
func (*ImmediateInstruction) instruction() {}

func (*RegisterInstruction) Type() Type  { return TypeR }
func (*JumpInstruction) Type() Type      { return TypeJ }
func (*ImmediateInstruction) Type() Type { return TypeI }

func (i *RegisterInstruction) Mnemonic() string  { return i.Function.String() }
func (i *JumpInstruction) Mnemonic() string      { return i.Opcode.String() }
func (i *ImmediateInstruction) Mnemonic() string { return i.Opcode.String() }

func (i *RegisterInstruction) OpcodeBits() uint8  { return uint8(i.Opcode) }
func (i *JumpInstruction) OpcodeBits() uint8      { return uint8(i.Opcode) }
func (i *ImmediateInstruction) OpcodeBits() uint8 { return uint8(i.Opcode) }

func (r Register) String() string {
	return fmt.Sprintf("$%d", uint8(r))
}

func (i *RegisterInstruction) String() string {
	switch i.Function {
	case FnShiftLeftLogical, FnShiftRightLogical, FnShiftRightArithmetic:
		return fmt.Sprintf("%s %s, %s, %d", i.Function, i.Rd, i.Rt, i.Shamt)
	case FnJumpRegister:
		return fmt.Sprintf("%s %s", i.Function, i.Rs)
	case FnMoveFromHi, FnMoveFromLo:
		return fmt.Sprintf("%s %s", i.Function, i.Rd)
	case FnMultiply, FnMultiplyUnsigned, FnDivide, FnDivideUnsigned:
		return fmt.Sprintf("%s %s, %s", i.Function, i.Rs, i.Rt)
	default:
		return fmt.Sprintf("%s %s, %s, %s", i.Function, i.Rd, i.Rs, i.Rt)
	}
}

func (i *JumpInstruction) String() string {
	return fmt.Sprintf("%s 0x%x", i.Opcode, i.Target)
}

func (i *ImmediateInstruction) String() string {
	switch i.Opcode {
	case OpBranchEqual, OpBranchNotEqual:
		return fmt.Sprintf("%s %s, %s, %d", i.Opcode, i.Rs, i.Rt, i.Immediate)
	case OpLoadUpperImmediate:
		return fmt.Sprintf("%s %s, %d", i.Opcode, i.Rt, i.Immediate)
	case OpLoadWord, OpLoadByteUnsigned, OpLoadHalfwordUnsigned,
		OpStoreByte, OpStoreHalfword, OpStoreWord:
		return fmt.Sprintf("%s %s, %d(%s)", i.Opcode, i.Rt, i.Immediate, i.Rs)
	default:
		return fmt.Sprintf("%s %s, %s, %d", i.Opcode, i.Rt, i.Rs, i.Immediate)
	}
}
