package renderer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ChainSafe/mipsdec/asmparser"
	"github.com/ChainSafe/mipsdec/decoder"
	"github.com/davecgh/go-spew/spew"
)

// ListingEntry is one decoded word of a listing.
type ListingEntry struct {
	Segment     string
	Address     uint64
	Word        decoder.Word
	Instruction decoder.Instruction
	Err         error
}

// EntriesFromGraph flattens a call graph into listing entries in address order.
func EntriesFromGraph(graph asmparser.CallGraph) []ListingEntry {
	entries := make([]ListingEntry, 0)
	for _, seg := range graph.Segments() {
		for _, instr := range seg.Instructions() {
			entries = append(entries, ListingEntry{
				Segment:     seg.Label(),
				Address:     instr.Address(),
				Word:        instr.Word(),
				Instruction: instr.Decoded(),
				Err:         instr.Err(),
			})
		}
	}
	return entries
}

// ListingRenderer renders decoded instructions.
type ListingRenderer interface {
	Render(entries []ListingEntry, output io.Writer) error
	Format() string
}

// NewListingRenderer returns the listing renderer for format: text, json or dump.
func NewListingRenderer(format string) (ListingRenderer, error) {
	switch format {
	case "", "text":
		return textListing{}, nil
	case "json":
		return jsonListing{}, nil
	case "dump":
		return dumpListing{}, nil
	default:
		return nil, fmt.Errorf("invalid format: %s", format)
	}
}

type textListing struct{}

func (textListing) Render(entries []ListingEntry, output io.Writer) error {
	var b strings.Builder
	segment := ""
	for _, e := range entries {
		if e.Segment != "" && e.Segment != segment {
			segment = e.Segment
			fmt.Fprintf(&b, "%08x <%s>:\n", e.Address, segment)
		}
		if e.Err != nil {
			fmt.Fprintf(&b, "  %8x: %08x  <%v>\n", e.Address, uint32(e.Word), e.Err)
			continue
		}
		fmt.Fprintf(&b, "  %8x: %08x  %s\n", e.Address, uint32(e.Word), e.Instruction)
	}
	_, err := io.WriteString(output, b.String())
	return err
}

func (textListing) Format() string {
	return "text"
}

type jsonFields struct {
	Rs        *decoder.Register `json:"rs,omitempty"`
	Rt        *decoder.Register `json:"rt,omitempty"`
	Rd        *decoder.Register `json:"rd,omitempty"`
	Shamt     *uint8            `json:"shamt,omitempty"`
	Funct     *uint8            `json:"funct,omitempty"`
	Immediate *int16            `json:"immediate,omitempty"`
	Target    *uint32           `json:"target,omitempty"`
}

type jsonEntry struct {
	Segment  string       `json:"segment,omitempty"`
	Address  uint64       `json:"address"`
	Word     string       `json:"word"`
	Type     decoder.Type `json:"type,omitempty"`
	Opcode   uint8        `json:"opcode"`
	Mnemonic string       `json:"mnemonic,omitempty"`
	Asm      string       `json:"asm,omitempty"`
	Fields   *jsonFields  `json:"fields,omitempty"`
	Error    string       `json:"error,omitempty"`
}

type jsonListing struct{}

func (jsonListing) Render(entries []ListingEntry, output io.Writer) error {
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		je := jsonEntry{
			Segment: e.Segment,
			Address: e.Address,
			Word:    fmt.Sprintf("0x%08x", uint32(e.Word)),
			Opcode:  e.Word.Opcode(),
		}
		if e.Err != nil {
			je.Error = e.Err.Error()
			out = append(out, je)
			continue
		}
		je.Type = e.Instruction.Type()
		je.Mnemonic = e.Instruction.Mnemonic()
		je.Asm = e.Instruction.String()
		je.Fields = fieldsOf(e.Instruction)
		out = append(out, je)
	}
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (jsonListing) Format() string {
	return "json"
}

func fieldsOf(instr decoder.Instruction) *jsonFields {
	switch i := instr.(type) {
	case *decoder.RegisterInstruction:
		funct := uint8(i.Function)
		return &jsonFields{Rs: &i.Rs, Rt: &i.Rt, Rd: &i.Rd, Shamt: &i.Shamt, Funct: &funct}
	case *decoder.JumpInstruction:
		return &jsonFields{Target: &i.Target}
	case *decoder.ImmediateInstruction:
		return &jsonFields{Rs: &i.Rs, Rt: &i.Rt, Immediate: &i.Immediate}
	}
	return nil
}

type dumpListing struct{}

func (dumpListing) Render(entries []ListingEntry, output io.Writer) error {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, DisableMethods: true}
	for _, e := range entries {
		if _, err := fmt.Fprintf(output, "0x%x: ", e.Address); err != nil {
			return err
		}
		if e.Err != nil {
			cfg.Fdump(output, e.Err)
			continue
		}
		cfg.Fdump(output, e.Instruction)
	}
	return nil
}

func (dumpListing) Format() string {
	return "dump"
}
