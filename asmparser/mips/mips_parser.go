// Package mips provides the implementation of the asmparser interfaces for MIPS architecture.
package mips

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ChainSafe/mipsdec/asmparser"
	"github.com/ChainSafe/mipsdec/decoder"
	"github.com/sirupsen/logrus"
)

var (
	// Regular expressions for parsing objdump style listings. The word is
	// either printed as 8 hex digits or as four byte pairs (llvm-objdump).
	// Anything after the word is kept as mnemonic and operands, including
	// `.word 0x...` and `<unknown>` for words the tool could not disassemble.
	blockStartRegex  = regexp.MustCompile(`^([0-9a-fA-F]+)\s+<([^>]+)>:$`)
	instructionRegex = regexp.MustCompile(
		`^([0-9a-fA-F]+):\s+([0-9a-fA-F]{8}|(?:[0-9a-fA-F]{2}\s){3}[0-9a-fA-F]{2})(?:\s+(\S+)(?:\s+(.*))?)?$`)
)

// parserImpl implements the asmparser.Parser interface for text listings.
type parserImpl struct {
	order binary.ByteOrder
}

// NewParser returns a new instance of a MIPS listing parser. order is the
// memory byte order of the program, used for words printed as byte pairs.
func NewParser(order binary.ByteOrder) asmparser.Parser {
	return &parserImpl{order: order}
}

// Parse reads a MIPS listing and decodes every instruction word into a CallGraph.
func (p *parserImpl) Parse(path string) (asmparser.CallGraph, error) {
	fpath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving absolute filepath: %w", err)
	}

	codefile, err := os.Open(fpath)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer func() {
		_ = codefile.Close()
	}()

	var currSegment *segment
	graph := newCallGraph()
	scanner := bufio.NewScanner(codefile)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case blockStartRegex.MatchString(line):
			currSegment, err = parseSegmentStart(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			currSegment.line = lineNum
			graph.addSegment(currSegment)
		case instructionRegex.MatchString(line):
			if currSegment == nil {
				return nil, fmt.Errorf("invalid assembly: instruction encountered before segment definition at line %d", lineNum)
			}
			instr, err := parseInstruction(line, p.order)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			instr.line = lineNum
			if instr.err != nil {
				logrus.WithFields(logrus.Fields{
					"line":    lineNum,
					"address": fmt.Sprintf("0x%x", instr.address),
					"segment": currSegment.label,
				}).Debug(instr.err)
			}
			currSegment.instructions = append(currSegment.instructions, instr)
		default:
			// Ignore comments and unrecognized lines
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	graph.link()
	return graph, nil
}

// parseSegmentStart extracts segment information from a line.
func parseSegmentStart(line string) (*segment, error) {
	matches := blockStartRegex.FindStringSubmatch(line)
	if len(matches) != 3 {
		return nil, fmt.Errorf("failed to parse segment start: %s", line)
	}
	address, err := strconv.ParseUint(matches[1], 16, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid segment address: %w", err)
	}
	return newSegment(address, matches[2]), nil
}

// parseInstruction extracts the address and word of a line and decodes the word.
func parseInstruction(line string, order binary.ByteOrder) (*instruction, error) {
	matches := instructionRegex.FindStringSubmatch(line)
	if len(matches) != 5 {
		return nil, fmt.Errorf("failed to parse instruction: %s", line)
	}
	address, err := strconv.ParseUint(matches[1], 16, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid instruction address: %w", err)
	}
	word, err := parseListingWord(matches[2], order)
	if err != nil {
		return nil, err
	}
	instr := newInstruction(address, word)
	instr.mnemonic = matches[3]
	return instr, nil
}

// ParseWord parses a hexadecimal instruction word. An optional 0x prefix and
// whitespace between bytes are accepted.
func ParseWord(str string) (decoder.Word, error) {
	str = strings.Join(strings.Fields(str), "")
	str = strings.TrimPrefix(strings.TrimPrefix(str, "0x"), "0X")
	value, err := strconv.ParseUint(str, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("failed to parse hex instruction %q: %w", str, err)
	}
	return decoder.Word(value), nil
}

// parseListingWord parses the word column of a listing. Byte pairs are printed
// in memory order and assembled with order; 8 digit words are numeric values.
func parseListingWord(str string, order binary.ByteOrder) (decoder.Word, error) {
	fields := strings.Fields(str)
	if len(fields) == 1 {
		return ParseWord(str)
	}
	raw, err := hex.DecodeString(strings.Join(fields, ""))
	if err != nil || len(raw) != 4 {
		return 0, fmt.Errorf("failed to parse instruction bytes %q", str)
	}
	return decoder.Word(order.Uint32(raw)), nil
}
