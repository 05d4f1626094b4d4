package mips

import (
	"fmt"
	"sort"

	"github.com/ChainSafe/mipsdec/asmparser"
	"github.com/ChainSafe/mipsdec/decoder"
)

// instruction is a decoded word implementing asmparser.Instruction
type instruction struct {
	address  uint64
	word     decoder.Word
	decoded  decoder.Instruction
	err      error
	mnemonic string // as printed by the disassembler, may be empty
	line     int
}

func newInstruction(address uint64, word decoder.Word) *instruction {
	decoded, err := decoder.Decode(word)
	return &instruction{address: address, word: word, decoded: decoded, err: err}
}

func (i *instruction) Address() uint64 {
	return i.address
}

func (i *instruction) Word() decoder.Word {
	return i.word
}

func (i *instruction) Decoded() decoder.Instruction {
	return i.decoded
}

func (i *instruction) Err() error {
	return i.err
}

func (i *instruction) Mnemonic() string {
	if i.mnemonic == "" && i.decoded != nil {
		return i.decoded.Mnemonic()
	}
	return i.mnemonic
}

func (i *instruction) OpcodeHex() string {
	return fmt.Sprintf("0x%x", i.word.Opcode())
}

func (i *instruction) Funct() string {
	if i.word.Opcode() == uint8(decoder.OpSpecial) {
		return fmt.Sprintf("0x%x", i.word.Funct())
	}
	return ""
}

func (i *instruction) Line() int {
	return i.line
}

// jumpTarget returns the absolute target of a decoded J-Type instruction.
func (i *instruction) jumpTarget() (uint64, bool) {
	jump, ok := i.decoded.(*decoder.JumpInstruction)
	if !ok {
		return 0, false
	}
	return asmparser.ResolveJumpTarget(i.address, jump.Target), true
}

// segment represents a block of instructions implementing the asmparser.Segment interface.
type segment struct {
	address      uint64
	label        string
	line         int
	instructions []*instruction
	parents      map[uint64]bool // Map of parent segment addresses to prevent duplicates.
}

func newSegment(address uint64, label string) *segment {
	return &segment{
		address:      address,
		label:        label,
		instructions: make([]*instruction, 0),
		parents:      make(map[uint64]bool),
	}
}

func (s *segment) Address() uint64 {
	return s.address
}

func (s *segment) Label() string {
	return s.label
}

func (s *segment) Line() int {
	return s.line
}

func (s *segment) Instructions() []asmparser.Instruction {
	instrs := make([]asmparser.Instruction, len(s.instructions))
	for i, ins := range s.instructions {
		instrs[i] = ins
	}
	return instrs
}

// callGraph represents a graph structure implementing asmparser.CallGraph.
type callGraph struct {
	segments map[uint64]*segment
}

func newCallGraph() *callGraph {
	return &callGraph{segments: make(map[uint64]*segment)}
}

func (g *callGraph) Segments() []asmparser.Segment {
	addrs := make([]uint64, 0, len(g.segments))
	for addr, seg := range g.segments {
		// placeholders created by addParent for targets outside the program
		if seg.label == "" && len(seg.instructions) == 0 {
			continue
		}
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	segments := make([]asmparser.Segment, 0, len(addrs))
	for _, addr := range addrs {
		segments = append(segments, g.segments[addr])
	}
	return segments
}

func (g *callGraph) ParentsOf(seg asmparser.Segment) []asmparser.Segment {
	segObj, ok := seg.(*segment)
	if !ok {
		return nil
	}
	addrs := make([]uint64, 0, len(segObj.parents))
	for addr := range segObj.parents {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	parents := make([]asmparser.Segment, 0, len(addrs))
	for _, addr := range addrs {
		parents = append(parents, g.segments[addr])
	}
	return parents
}

func (g *callGraph) addParent(segmentAddr uint64, parentAddr uint64) {
	seg, exists := g.segments[segmentAddr]
	if !exists {
		seg = newSegment(segmentAddr, "")
	}
	seg.parents[parentAddr] = true
	g.segments[segmentAddr] = seg
}

func (g *callGraph) addSegment(seg *segment) {
	if existingSeg, exists := g.segments[seg.address]; exists {
		seg.parents = existingSeg.parents
	}
	g.segments[seg.address] = seg
}

// link records every decoded jump as an edge from its segment to the target segment.
func (g *callGraph) link() {
	for _, seg := range g.segments {
		for _, instr := range seg.instructions {
			if target, ok := instr.jumpTarget(); ok {
				g.addParent(target, seg.address)
			}
		}
	}
}
