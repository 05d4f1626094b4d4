package main

import (
	"context"
	"os"

	"github.com/ChainSafe/mipsdec/cmd"
	"github.com/sirupsen/logrus"
)

func main() {
	err := cmd.NewApp().RunContext(context.Background(), os.Args)
	if err != nil {
		logrus.Fatal(err)
	}
}
