package initialize

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/indaco/herald/internal/config"
	"github.com/indaco/herald/internal/core"
	"github.com/indaco/herald/internal/metadata"
	"github.com/indaco/herald/internal/parser"
	"github.com/indaco/herald/internal/printer"
	"github.com/indaco/herald/internal/tui"
	"github.com/urfave/cli/v3"
)

// embeddedTargets maps the supported --into manifests to the field path
// holding the herald configuration section.
var embeddedTargets = map[string]string{
	"package.json":   "herald",
	"pyproject.toml": "tool.herald",
}

// Run returns the "init" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a starter herald configuration",
		UsageText: "herald init [--package name] [--template name] [--into manifest] [--force]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "package",
				Usage: "Package identifier to resolve",
			},
			&cli.StringFlag{
				Name:        "template",
				Aliases:     []string{"t"},
				Usage:       fmt.Sprintf("Starter template: %s", strings.Join(TemplateNames(), ", ")),
				Value:       "basic",
				DefaultText: "basic",
			},
			&cli.StringFlag{
				Name:  "into",
				Usage: "Embed the configuration into an existing manifest (package.json or pyproject.toml)",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration without asking",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInitCmd(ctx, cmd)
		},
	}
}

// runInitCmd writes a starter configuration, standalone or embedded.
func runInitCmd(ctx context.Context, cmd *cli.Command) error {
	tmpl, err := GetTemplate(cmd.String("template"))
	if err != nil {
		return err
	}

	cfg := tmpl.Config
	cfg.Package = cmd.String("package")
	if cfg.Package == "" {
		cfg.Package = suggestPackage(ctx)
	}

	if into := cmd.String("into"); into != "" {
		return writeEmbedded(ctx, into, &cfg)
	}
	return writeStandalone(cmd.Bool("force"), &cfg)
}

// suggestPackage proposes a package name from the nearest manifest that
// declares one.
func suggestPackage(ctx context.Context) string {
	index := metadata.NewIndex(nil, metadata.IndexOptions{MaxDepth: 1})
	sources, err := index.Sources(ctx)
	if err != nil {
		return ""
	}
	for _, src := range sources {
		if src.Name != "" {
			return src.Name
		}
	}
	return ""
}

// writeStandalone creates .herald.yaml, confirming overwrites when the
// terminal allows it.
func writeStandalone(force bool, cfg *config.Config) error {
	if _, err := os.Stat(config.DefaultConfigFile); err == nil && !force {
		if !tui.IsInteractive() {
			return fmt.Errorf("%s already exists; use --force to overwrite", config.DefaultConfigFile)
		}
		overwrite, err := tui.Confirm(
			fmt.Sprintf("%s already exists. Overwrite?", config.DefaultConfigFile),
			"The existing configuration will be replaced with the template.",
		)
		if err != nil {
			return err
		}
		if !overwrite {
			printer.PrintFaint("Keeping the existing configuration.")
			return nil
		}
	}

	if err := config.SaveConfigFn(cfg); err != nil {
		return err
	}

	printer.PrintSuccess(fmt.Sprintf("Created %s", config.DefaultConfigFile))
	if cfg.Package == "" {
		printer.PrintWarning("No package detected; set 'package' before running 'herald project'.")
	}
	return nil
}

// writeEmbedded inserts the configuration section into an existing
// manifest, preserving the rest of the file.
func writeEmbedded(ctx context.Context, manifest string, cfg *config.Config) error {
	field, ok := embeddedTargets[manifest]
	if !ok {
		return fmt.Errorf("unsupported --into target %q (supported: package.json, pyproject.toml)", manifest)
	}

	writer := parser.NewWriter(core.NewOSFileSystem())
	if !writer.Exists(ctx, manifest) {
		return fmt.Errorf("manifest %q does not exist; create it first or drop --into", manifest)
	}

	fileCfg := parser.FileConfig{
		Path:   manifest,
		Format: parser.FormatForFile(manifest),
		Field:  field,
	}
	if err := writer.Write(ctx, fileCfg, configSection(cfg)); err != nil {
		return err
	}

	printer.PrintSuccess(fmt.Sprintf("Embedded herald configuration into %s", manifest))
	return nil
}

// configSection converts the config into a plain map so only set keys
// are embedded.
func configSection(cfg *config.Config) map[string]any {
	section := make(map[string]any)
	if cfg.Package != "" {
		section["package"] = cfg.Package
	}
	if cfg.PackageDir != "" {
		section["package-dir"] = cfg.PackageDir
	}
	if cfg.Directory != "" {
		section["directory"] = cfg.Directory
	}
	if cfg.Name != "" {
		section["name"] = cfg.Name
	}
	if cfg.Version != "" {
		section["version"] = cfg.Version
	}
	if cfg.Metadata != nil {
		meta := make(map[string]any)
		if len(cfg.Metadata.Roots) > 0 {
			meta["roots"] = cfg.Metadata.Roots
		}
		if cfg.Metadata.MaxDepth > 0 {
			meta["max-depth"] = cfg.Metadata.MaxDepth
		}
		section["metadata"] = meta
	}
	return section
}
