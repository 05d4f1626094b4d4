package mips

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ChainSafe/mipsdec/asmparser"
	"github.com/ChainSafe/mipsdec/decoder"
	"github.com/sirupsen/logrus"
)

// EntryLabel is the label of the segment starting at the image base.
const EntryLabel = "_start"

// binaryParser implements asmparser.Parser for flat images of instruction words.
type binaryParser struct {
	base  uint64
	order binary.ByteOrder
}

// NewBinaryParser returns a parser for raw images loaded at base, with words
// stored in the given byte order.
func NewBinaryParser(base uint64, order binary.ByteOrder) asmparser.Parser {
	return &binaryParser{base: base, order: order}
}

// Parse decodes every word of the image. Segments start at the image base and
// at every jal target that falls inside the image.
func (p *binaryParser) Parse(path string) (asmparser.CallGraph, error) {
	fpath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving absolute filepath: %w", err)
	}
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid image: size %d is not a multiple of the word size", len(data))
	}

	instrs := make([]*instruction, 0, len(data)/4)
	for offset := 0; offset < len(data); offset += 4 {
		address := p.base + uint64(offset)
		instr := newInstruction(address, decoder.Word(p.order.Uint32(data[offset:])))
		instr.line = offset/4 + 1
		if instr.err != nil {
			logrus.WithField("address", fmt.Sprintf("0x%x", address)).Debug(instr.err)
		}
		instrs = append(instrs, instr)
	}
	end := p.base + uint64(len(data))

	starts := map[uint64]bool{p.base: true}
	for _, instr := range instrs {
		jump, ok := instr.decoded.(*decoder.JumpInstruction)
		if !ok || jump.Opcode != decoder.OpJumpAndLink {
			continue
		}
		target := asmparser.ResolveJumpTarget(instr.address, jump.Target)
		if target >= p.base && target < end && (target-p.base)%4 == 0 {
			starts[target] = true
		}
	}
	addrs := make([]uint64, 0, len(starts))
	for addr := range starts {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	graph := newCallGraph()
	var currSegment *segment
	next := 0
	for _, instr := range instrs {
		if next < len(addrs) && instr.address == addrs[next] {
			label := EntryLabel
			if instr.address != p.base {
				label = fmt.Sprintf("sub_%x", instr.address)
			}
			currSegment = newSegment(instr.address, label)
			currSegment.line = instr.line
			graph.addSegment(currSegment)
			next++
		}
		currSegment.instructions = append(currSegment.instructions, instr)
	}
	graph.link()
	return graph, nil
}
