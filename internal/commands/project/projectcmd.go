package project

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/indaco/herald/internal/config"
	"github.com/indaco/herald/internal/loader"
	"github.com/indaco/herald/internal/metadata"
	"github.com/indaco/herald/internal/printer"
	proj "github.com/indaco/herald/internal/project"
	"github.com/urfave/cli/v3"
)

// Run returns the "project" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "project",
		Usage:     "Show the resolved project name and version",
		UsageText: "herald project [--dir path] [--package name] [--format text|json]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "Search root containing the source package",
				DefaultText: ".",
			},
			&cli.StringFlag{
				Name:  "package",
				Usage: "Package identifier to resolve (overrides config)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text or json",
				Value:   "text",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runProjectCmd(ctx, cmd, cfg)
		},
	}
}

// projectInfo is the resolved identity of the project.
type projectInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// runProjectCmd resolves and prints the project name and version.
func runProjectCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	pkg := cmd.String("package")
	if pkg == "" {
		pkg = cfg.Package
	}

	searchRoot := cmd.String("dir")
	if searchRoot == "" {
		searchRoot = cfg.SearchRoot()
	}

	info, err := resolveProject(ctx, cfg, searchRoot, pkg)
	if err != nil {
		return err
	}

	switch cmd.String("format") {
	case "json":
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode project info: %w", err)
		}
		fmt.Println(string(data))
	default:
		fmt.Printf("%s %s\n", printer.Bold("Name:"), info.Name)
		fmt.Printf("%s %s\n", printer.Bold("Version:"), info.Version)
	}

	return nil
}

// resolveProject applies configured overrides before falling back to
// metadata and source resolution.
func resolveProject(ctx context.Context, cfg *config.Config, searchRoot, pkg string) (*projectInfo, error) {
	info := &projectInfo{Name: cfg.Name, Version: cfg.Version}
	if info.Name != "" && info.Version != "" {
		return info, nil
	}

	if pkg == "" {
		return nil, fmt.Errorf("no package configured: set 'package' in %s or pass --package", config.DefaultConfigFile)
	}

	resolver := NewResolverFn(cfg)

	if info.Version == "" {
		version, err := resolver.GetVersion(ctx, searchRoot, pkg)
		if err != nil {
			return nil, err
		}
		info.Version = version
	}

	if info.Name == "" {
		name, err := resolver.GetProjectName(ctx, searchRoot, pkg)
		if err != nil {
			return nil, err
		}
		info.Name = name
	}

	return info, nil
}

// NewResolverFn builds the resolver used by the command. It is a
// function-var seam so tests can substitute providers.
var NewResolverFn = func(cfg *config.Config) *proj.Resolver {
	opts := metadata.IndexOptions{}
	if cfg.Metadata != nil {
		opts.Roots = cfg.Metadata.Roots
		opts.MaxDepth = cfg.Metadata.MaxDepth
	}
	return proj.NewResolver(metadata.NewIndex(nil, opts), loader.New(nil))
}
