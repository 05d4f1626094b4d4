package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/ChainSafe/mipsdec/asmparser/mips"
	"github.com/ChainSafe/mipsdec/decoder"
	"github.com/ChainSafe/mipsdec/renderer"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var ListingFormatFlag = &cli.StringFlag{
	Name:    "format",
	Usage:   "format of the output. Options: text, json, dump",
	Value:   "text",
	EnvVars: []string{"MIPSDEC_FORMAT"},
}

func CreateDecodeCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "decode",
		Usage:       "Decodes hexadecimal instruction words",
		ArgsUsage:   "[word...]",
		Description: "Decodes the words given as arguments, or one word per line read from stdin",
		Action:      action,
		Flags: []cli.Flag{
			ListingFormatFlag,
		},
	}
}

func DecodeWords(ctx *cli.Context) error {
	words := ctx.Args().Slice()
	if len(words) == 0 {
		scanner := bufio.NewScanner(ctx.App.Reader)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			words = append(words, line)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("error reading words: %w", err)
		}
	}

	listing, err := renderer.NewListingRenderer(ctx.String(ListingFormatFlag.Name))
	if err != nil {
		return err
	}

	entries := make([]renderer.ListingEntry, 0, len(words))
	failed := 0
	for i, str := range words {
		word, err := mips.ParseWord(str)
		if err != nil {
			return err
		}
		instr, err := decoder.Decode(word)
		if err != nil {
			failed++
			logrus.WithField("word", str).Debug(err)
		}
		entries = append(entries, renderer.ListingEntry{
			Address:     uint64(4 * i),
			Word:        word,
			Instruction: instr,
			Err:         err,
		})
	}

	if err := listing.Render(entries, ctx.App.Writer); err != nil {
		return fmt.Errorf("unable to write listing: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d words failed to decode", failed, len(entries))
	}
	return nil
}
