// Package cmd defines all the commands for the cli
package cmd

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ChainSafe/mipsdec/asmparser"
	"github.com/ChainSafe/mipsdec/asmparser/mips"
	"github.com/ChainSafe/mipsdec/disassembler"
	"github.com/urfave/cli/v2"
)

var (
	VMProfileFlag = &cli.PathFlag{
		Name:     "vm-profile",
		Usage:    "Path to the VM profile config file (yaml or json)",
		Required: true,
		EnvVars:  []string{"MIPSDEC_VM_PROFILE"},
	}
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Usage:   "format of the output. Options: text, json, json-pretty",
		Value:   "text",
		EnvVars: []string{"MIPSDEC_FORMAT"},
	}
	SourceTypeFlag = &cli.StringFlag{
		Name:  "source",
		Usage: "Input kind. Options: listing (objdump output), binary (raw instruction words), elf (disassembled with objdump)",
		Value: "listing",
	}
	BaseAddressFlag = &cli.StringFlag{
		Name:  "base",
		Usage: "Load address of a binary image",
		Value: "0x0",
	}
	EndianFlag = &cli.StringFlag{
		Name:  "endian",
		Usage: "Word byte order of a binary image. Options: big, little",
		Value: "big",
	}
	ObjdumpFlag = &cli.StringFlag{
		Name:    "objdump",
		Usage:   "objdump binary used for elf sources. Ex: mips-linux-gnu-objdump",
		Value:   disassembler.DefaultTool,
		EnvVars: []string{"MIPSDEC_OBJDUMP"},
	}
	ReportOutputPathFlag = &cli.PathFlag{
		Name:  "report-output-path",
		Usage: "output file path for report. Default: stdout",
	}
	TraceFlag = &cli.BoolFlag{
		Name:  "with-trace",
		Usage: "enable full stack trace output",
		Value: false,
	}
	VerboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "enable debug logging",
		EnvVars: []string{"MIPSDEC_VERBOSE"},
	}
)

// newParser selects the program parser from the source flags.
func newParser(ctx *cli.Context, order binary.ByteOrder) (asmparser.Parser, error) {
	switch source := ctx.String(SourceTypeFlag.Name); source {
	case "listing", "elf":
		return mips.NewParser(order), nil
	case "binary":
		base, err := strconv.ParseUint(ctx.String(BaseAddressFlag.Name), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid base address: %w", err)
		}
		return mips.NewBinaryParser(base, order), nil
	default:
		return nil, fmt.Errorf("invalid source: %s", source)
	}
}

// resolveInput returns the path to hand to the parser. elf sources are
// disassembled into a temporary listing first.
func resolveInput(ctx *cli.Context, path string) (string, func(), error) {
	if path == "" {
		return "", nil, fmt.Errorf("missing input file")
	}
	if ctx.String(SourceTypeFlag.Name) != "elf" {
		return path, func() {}, nil
	}
	return disassembler.ToListing(ctx.Context, disassembler.New(ctx.String(ObjdumpFlag.Name)), path)
}

func byteOrder(endian string) (binary.ByteOrder, error) {
	switch endian {
	case "big":
		return binary.BigEndian, nil
	case "little":
		return binary.LittleEndian, nil
	default:
		return nil, fmt.Errorf("invalid endian: %s", endian)
	}
}

// openOutput returns the app writer, or the file at path, and its close function.
func openOutput(ctx *cli.Context, path string) (io.Writer, func(), error) {
	if path == "" {
		return ctx.App.Writer, func() {}, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to determine absolute path: %w", err)
	}
	output, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open output file: %w", err)
	}
	return output, func() { _ = output.Close() }, nil
}
