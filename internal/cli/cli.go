package cli

import (
	"context"
	"fmt"

	"github.com/indaco/herald/internal/commands/doctor"
	"github.com/indaco/herald/internal/commands/initialize"
	"github.com/indaco/herald/internal/commands/project"
	"github.com/indaco/herald/internal/config"
	"github.com/indaco/herald/internal/printer"
	"github.com/indaco/herald/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

var noColorFlag bool

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the herald cli.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "herald",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Project metadata resolution for changelog tooling",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag || cfg.NoColor)
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			initialize.Run(),
			project.Run(cfg),
			doctor.Run(cfg),
		},
	}
}
