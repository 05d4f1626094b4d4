package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/ChainSafe/mipsdec/analyzer"
	"github.com/ChainSafe/mipsdec/analyzer/opcode"
	"github.com/ChainSafe/mipsdec/profile"
	"github.com/urfave/cli/v2"
)

var FunctionNameFlag = &cli.StringFlag{
	Name:     "function",
	Usage:    "Label of the segment to trace. Ex: runtime.read",
	Required: true,
}

func CreateTraceCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "trace",
		Usage:       "Generates stack trace for a given function",
		ArgsUsage:   "<file>",
		Description: "Prints the chain of jumps reaching a function from a program entrypoint",
		Action:      action,
		Flags: []cli.Flag{
			VMProfileFlag,
			FunctionNameFlag,
			SourceTypeFlag,
			BaseAddressFlag,
			ObjdumpFlag,
		},
	}
}

func TraceCaller(ctx *cli.Context) error {
	prof, err := profile.LoadProfile(ctx.Path(VMProfileFlag.Name))
	if err != nil {
		return fmt.Errorf("error loading profile: %w", err)
	}
	order, err := prof.ByteOrder()
	if err != nil {
		return err
	}
	parser, err := newParser(ctx, order)
	if err != nil {
		return err
	}

	source, cleanup, err := resolveInput(ctx, ctx.Args().First())
	if err != nil {
		return err
	}
	defer cleanup()

	callStack, err := opcode.NewAnalyser(prof, parser).TraceStack(source, ctx.String(FunctionNameFlag.Name))
	if err != nil {
		return err
	}
	_, err = io.WriteString(ctx.App.Writer, printCallStack(callStack, "")+"\n")
	return err
}

func printCallStack(source *analyzer.CallStack, str string) string {
	str = strings.Join(
		[]string{str, fmt.Sprintf("-> %s:%d : (%s)", source.File, source.Line, source.Function)}, "\n")
	if source.CallStack != nil {
		return printCallStack(source.CallStack, str)
	}
	return str
}
