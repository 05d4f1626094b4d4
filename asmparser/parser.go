// Package asmparser defines the model shared by MIPS listing and image parsers.
package asmparser

import "github.com/ChainSafe/mipsdec/decoder"

// Parser holds interface for parsing a program into a call graph
type Parser interface {
	Parse(path string) (CallGraph, error)
}

// Instruction is a single word of a parsed program together with its decoding.
type Instruction interface {
	Address() uint64
	Word() decoder.Word
	// Decoded returns the decoded instruction, nil when Err is set.
	Decoded() decoder.Instruction
	// Err returns the *decoder.DecodeError of an undecodable word.
	Err() error
	// Mnemonic returns the mnemonic printed by the disassembler, or the
	// decoded one when the listing carries none.
	Mnemonic() string
	OpcodeHex() string
	// Funct returns the function code of R-Type instructions, empty otherwise.
	Funct() string
	Line() int
}

type Segment interface {
	Address() uint64
	Label() string
	Line() int
	Instructions() []Instruction
}

type CallGraph interface {
	// Segments returns all segments ordered by address.
	Segments() []Segment
	// ParentsOf returns the segments jumping into segment, ordered by address.
	ParentsOf(segment Segment) []Segment
}

// ResolveJumpTarget computes the absolute address of a J-Type jump at pc. The
// 26-bit target is a word index inside the 256MB region of the delay slot.
func ResolveJumpTarget(pc uint64, target uint32) uint64 {
	return ((pc + 4) &^ 0x0FFFFFFF) | uint64(target)<<2
}
