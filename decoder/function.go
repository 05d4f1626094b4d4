package decoder

import "fmt"

// Function identifies a register-family operation, selected by the function
// code of an opcode 0 word.
type Function uint8

const (
	FnShiftLeftLogical     Function = 0x00
	FnShiftRightLogical    Function = 0x02
	FnShiftRightArithmetic Function = 0x03
	FnJumpRegister         Function = 0x08
	FnMoveFromHi           Function = 0x10
	FnMoveFromLo           Function = 0x12
	FnMultiply             Function = 0x18
	FnMultiplyUnsigned     Function = 0x19
	FnDivide               Function = 0x1A
	FnDivideUnsigned       Function = 0x1B
	FnAdd                  Function = 0x20
	FnAddUnsigned          Function = 0x21
	FnSubtract             Function = 0x22
	FnSubtractUnsigned     Function = 0x23
	FnAnd                  Function = 0x24
	FnOr                   Function = 0x25
	FnXor                  Function = 0x26
	FnNor                  Function = 0x27
	FnSetLessThan          Function = 0x2A
	FnSetLessThanUnsigned  Function = 0x2B
)

var functionMnemonics = [64]string{
	FnShiftLeftLogical:     "sll",
	FnShiftRightLogical:    "srl",
	FnShiftRightArithmetic: "sra",
	FnJumpRegister:         "jr",
	FnMoveFromHi:           "mfhi",
	FnMoveFromLo:           "mflo",
	FnMultiply:             "mult",
	FnMultiplyUnsigned:     "multu",
	FnDivide:               "div",
	FnDivideUnsigned:       "divu",
	FnAdd:                  "add",
	FnAddUnsigned:          "addu",
	FnSubtract:             "sub",
	FnSubtractUnsigned:     "subu",
	FnAnd:                  "and",
	FnOr:                   "or",
	FnXor:                  "xor",
	FnNor:                  "nor",
	FnSetLessThan:          "slt",
	FnSetLessThanUnsigned:  "sltu",
}

func (fn Function) String() string {
	if int(fn) < len(functionMnemonics) && functionMnemonics[fn] != "" {
		return functionMnemonics[fn]
	}
	return fmt.Sprintf("Function(0x%02x)", uint8(fn))
}

// LookupFunction returns the register-family tag for a 6-bit function code.
func LookupFunction(funct uint8) (Function, error) {
	if int(funct) >= len(functionMnemonics) || functionMnemonics[funct] == "" {
		return 0, fmt.Errorf("%w: 0x%02x", ErrUnknownFunction, funct)
	}
	return Function(funct), nil
}
