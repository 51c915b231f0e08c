package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/herald/internal/config"
	"github.com/indaco/herald/internal/core"
	"github.com/indaco/herald/internal/loader"
	"github.com/indaco/herald/internal/metadata"
	"github.com/indaco/herald/internal/printer"
	proj "github.com/indaco/herald/internal/project"
	"github.com/indaco/herald/internal/semver"
	"github.com/indaco/herald/internal/tui"
	"github.com/urfave/cli/v3"
)

// Run returns the "doctor" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "doctor",
		Usage:     "Validate configuration and project resolution",
		UsageText: "herald doctor [--dir path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Project root to check",
				Value:   ".",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctorCmd(ctx, cmd, cfg)
		},
	}
}

// runDoctorCmd runs every health check and fails when any hard check fails.
func runDoctorCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	rootDir := cmd.String("dir")
	fs := core.NewOSFileSystem()

	configPath := ""
	if _, err := os.Stat(config.DefaultConfigFile); err == nil {
		configPath = config.DefaultConfigFile
	}

	validator := config.NewValidator(fs, cfg, configPath, rootDir)
	results, err := validator.Validate(ctx)
	if err != nil {
		return err
	}

	printer.PrintBold("Configuration checks")
	for _, r := range results {
		printResult(r)
	}

	resolutionOK := checkResolution(ctx, cfg, rootDir)

	if err := printVersionSources(ctx, cfg, rootDir); err != nil {
		return err
	}

	if config.HasErrors(results) || !resolutionOK {
		return fmt.Errorf("doctor found problems; fix the failed checks above")
	}

	printer.PrintSuccess("All checks passed")
	return nil
}

// printResult renders a single validation result.
func printResult(r config.ValidationResult) {
	switch {
	case r.Passed:
		printer.PrintSuccess(fmt.Sprintf("  ✓ %s: %s", r.Category, r.Message))
	case r.Warning:
		printer.PrintWarning(fmt.Sprintf("  ! %s: %s", r.Category, r.Message))
	default:
		printer.PrintError(fmt.Sprintf("  ✗ %s: %s", r.Category, r.Message))
	}
}

// checkResolution dry-runs name and version resolution for the
// configured package. Reports true when resolution is not applicable.
func checkResolution(ctx context.Context, cfg *config.Config, rootDir string) bool {
	printer.PrintBold("Resolution")

	if cfg.Version != "" && cfg.Name != "" {
		printer.PrintSuccess(fmt.Sprintf("  ✓ pinned in config: %s %s", cfg.Name, cfg.Version))
		return true
	}
	if cfg.Package == "" {
		printer.PrintWarning("  ! skipped: no package configured")
		return true
	}

	opts := metadata.IndexOptions{Roots: []string{rootDir}}
	if cfg.Metadata != nil {
		opts.Roots = cfg.Metadata.Roots
		opts.MaxDepth = cfg.Metadata.MaxDepth
	}
	resolver := proj.NewResolver(metadata.NewIndex(nil, opts), loader.New(nil))
	resolver.Warn = func(d proj.Deprecation) {
		printer.PrintWarning(fmt.Sprintf("  ! %s", d.Message))
	}

	version, err := resolver.GetVersion(ctx, cfg.SearchRoot(), cfg.Package)
	if err != nil {
		printer.PrintError(fmt.Sprintf("  ✗ version resolution failed: %v", err))
		return false
	}
	name, err := resolver.GetProjectName(ctx, cfg.SearchRoot(), cfg.Package)
	if err != nil {
		printer.PrintError(fmt.Sprintf("  ✗ name resolution failed: %v", err))
		return false
	}

	printer.PrintSuccess(fmt.Sprintf("  ✓ resolves to %s %s", name, version))
	if !semver.IsValid(version) {
		printer.PrintWarning(fmt.Sprintf("  ! version %q is not semantic versioning", version))
	}
	return true
}

// printVersionSources scans for every version-bearing manifest under
// the project root.
func printVersionSources(ctx context.Context, cfg *config.Config, rootDir string) error {
	opts := metadata.IndexOptions{Roots: []string{rootDir}}
	if cfg.Metadata != nil && len(cfg.Metadata.Roots) > 0 {
		opts.Roots = cfg.Metadata.Roots
		opts.MaxDepth = cfg.Metadata.MaxDepth
	}
	index := metadata.NewIndex(nil, opts)

	var sources []metadata.Source
	var scanErr error
	if err := tui.Spin("Scanning for version sources...", func() {
		sources, scanErr = index.Sources(ctx)
	}); err != nil {
		return err
	}
	if scanErr != nil {
		return scanErr
	}

	printer.PrintBold("Version sources")
	if len(sources) == 0 {
		printer.PrintFaint("  none found")
		return nil
	}
	for _, src := range sources {
		label := src.RelPath
		if src.Name != "" {
			label = fmt.Sprintf("%s (%s)", src.RelPath, src.Name)
		}
		printer.PrintInfo(fmt.Sprintf("  • %s → %s", label, src.Version))
	}
	return nil
}
