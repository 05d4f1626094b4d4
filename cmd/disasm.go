package cmd

import (
	"fmt"

	"github.com/ChainSafe/mipsdec/renderer"
	"github.com/urfave/cli/v2"
)

func CreateDisasmCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "disasm",
		Usage:       "Decodes every instruction of a listing or binary image",
		ArgsUsage:   "<file>",
		Description: "Decodes every instruction of an objdump listing or raw binary image",
		Action:      action,
		Flags: []cli.Flag{
			SourceTypeFlag,
			BaseAddressFlag,
			EndianFlag,
			ObjdumpFlag,
			ListingFormatFlag,
		},
	}
}

func Disassemble(ctx *cli.Context) error {
	order, err := byteOrder(ctx.String(EndianFlag.Name))
	if err != nil {
		return err
	}
	parser, err := newParser(ctx, order)
	if err != nil {
		return err
	}
	listing, err := renderer.NewListingRenderer(ctx.String(ListingFormatFlag.Name))
	if err != nil {
		return err
	}

	path, cleanup, err := resolveInput(ctx, ctx.Args().First())
	if err != nil {
		return err
	}
	defer cleanup()

	graph, err := parser.Parse(path)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", path, err)
	}
	return listing.Render(renderer.EntriesFromGraph(graph), ctx.App.Writer)
}
