package cmd

import (
	"fmt"

	"github.com/ChainSafe/mipsdec/analyzer"
	"github.com/ChainSafe/mipsdec/analyzer/opcode"
	"github.com/ChainSafe/mipsdec/profile"
	"github.com/ChainSafe/mipsdec/renderer"
	"github.com/urfave/cli/v2"
)

func CreateAnalyzeCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "analyze",
		Usage:       "Checks the program compatibility against the VM profile",
		ArgsUsage:   "<file>",
		Description: "Decodes every instruction of the program and reports words the VM cannot run",
		Action:      action,
		Flags: []cli.Flag{
			VMProfileFlag,
			SourceTypeFlag,
			BaseAddressFlag,
			ObjdumpFlag,
			FormatFlag,
			ReportOutputPathFlag,
			TraceFlag,
		},
	}
}

func AnalyzeCompatibility(ctx *cli.Context) error {
	prof, err := profile.LoadProfile(ctx.Path(VMProfileFlag.Name))
	if err != nil {
		return fmt.Errorf("error loading profile: %w", err)
	}
	source, cleanup, err := resolveInput(ctx, ctx.Args().First())
	if err != nil {
		return err
	}
	defer cleanup()

	issues, err := analyze(ctx, prof, source)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if err := writeReport(ctx, issues, prof); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	return nil
}

func analyze(ctx *cli.Context, prof *profile.VMProfile, path string) ([]*analyzer.Issue, error) {
	order, err := prof.ByteOrder()
	if err != nil {
		return nil, err
	}
	parser, err := newParser(ctx, order)
	if err != nil {
		return nil, err
	}
	return opcode.NewAnalyser(prof, parser).Analyze(path, ctx.Bool(TraceFlag.Name))
}

// writeReport outputs the results in the specified format.
func writeReport(ctx *cli.Context, issues []*analyzer.Issue, prof *profile.VMProfile) error {
	rendererInstance, err := renderer.New(ctx.String(FormatFlag.Name), prof)
	if err != nil {
		return err
	}
	output, closeOutput, err := openOutput(ctx, ctx.Path(ReportOutputPathFlag.Name))
	if err != nil {
		return err
	}
	defer closeOutput()
	return rendererInstance.Render(issues, output)
}
