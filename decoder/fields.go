package decoder

// Word is a raw 32-bit MIPS instruction word.
// https://en.wikibooks.org/wiki/MIPS_Assembly/Instruction_Formats
type Word uint32

// Register is an index into the register file.
type Register uint8

// Opcode returns bits [31:26].
func (w Word) Opcode() uint8 {
	return uint8((w >> 26) & 0x3F)
}

// Rs returns the source register in bits [25:21].
func (w Word) Rs() Register {
	return Register((w >> 21) & 0x1F)
}

// Rt returns the target register in bits [20:16].
func (w Word) Rt() Register {
	return Register((w >> 16) & 0x1F)
}

// Rd returns the destination register in bits [15:11].
func (w Word) Rd() Register {
	return Register((w >> 11) & 0x1F)
}

// Shamt returns the shift amount in bits [10:6].
func (w Word) Shamt() uint8 {
	return uint8((w >> 6) & 0x1F)
}

// Funct returns the function code in bits [5:0]. Only meaningful when Opcode is 0.
func (w Word) Funct() uint8 {
	return uint8(w & 0x3F)
}

// Immediate returns bits [15:0] as a sign-extended value.
func (w Word) Immediate() int16 {
	//nolint:gosec
	return int16(uint16(w & 0xFFFF))
}

// Target returns bits [25:0] zero-extended. The payload is not shifted nor
// combined with the program counter.
func (w Word) Target() uint32 {
	return uint32(w & 0x03FFFFFF)
}
