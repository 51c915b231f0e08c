package main

import (
	"context"
	"os"

	"github.com/indaco/herald/internal/cli"
	"github.com/indaco/herald/internal/config"
	"github.com/indaco/herald/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

// runCLI loads the configuration and runs the root command. Split from
// main so tests can drive the full entrypoint.
func runCLI(args []string) error {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		return err
	}
	if cfg == nil {
		cfg = config.Default()
	}

	return cli.New(cfg).Run(context.Background(), args)
}
