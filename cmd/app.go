package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// NewApp builds the mipsdec command line application.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "mipsdec"
	app.Usage = "MIPS instruction decoder"
	app.Description = "Decodes MIPS instruction words and checks programs against a VM profile"
	app.Flags = []cli.Flag{VerboseFlag}
	app.Before = func(ctx *cli.Context) error {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		if ctx.Bool(VerboseFlag.Name) {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return nil
	}
	app.Commands = []*cli.Command{
		CreateDecodeCommand(DecodeWords),
		CreateDisasmCommand(Disassemble),
		CreateAnalyzeCommand(AnalyzeCompatibility),
		CreateTraceCommand(TraceCaller),
	}
	return app
}
