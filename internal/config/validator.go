package config

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/herald/internal/core"
	"github.com/indaco/herald/internal/semver"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Config Syntax", "Package Dir").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator validates configuration files and settings.
type Validator struct {
	fs          core.FileSystem
	cfg         *Config
	configPath  string
	rootDir     string
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
// The rootDir parameter is the directory where .herald.yaml is located.
func NewValidator(fs core.FileSystem, cfg *Config, configPath string, rootDir string) *Validator {
	return &Validator{
		fs:          fs,
		cfg:         cfg,
		configPath:  configPath,
		rootDir:     rootDir,
		validations: make([]ValidationResult, 0),
	}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate(ctx context.Context) ([]ValidationResult, error) {
	v.validations = make([]ValidationResult, 0)

	v.validateConfigSyntax(ctx)
	v.validatePackage()
	v.validatePackageDir(ctx)
	v.validateFragmentsDir(ctx)
	v.validateMetadata()
	v.validateVersionOverride()

	return v.validations, nil
}

// HasErrors reports whether any non-warning check failed.
func HasErrors(results []ValidationResult) bool {
	for _, r := range results {
		if !r.Passed && !r.Warning {
			return true
		}
	}
	return false
}

func (v *Validator) add(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

// validateConfigSyntax re-decodes the standalone config file strictly,
// so unknown keys surface here rather than being silently dropped.
func (v *Validator) validateConfigSyntax(ctx context.Context) {
	if v.configPath == "" {
		v.add("Config Syntax", true, "no standalone config file; using manifest or defaults", false)
		return
	}

	data, err := v.fs.ReadFile(ctx, v.configPath)
	if err != nil {
		v.add("Config Syntax", false, fmt.Sprintf("cannot read %s: %v", v.configPath, err), false)
		return
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		v.add("Config Syntax", false, fmt.Sprintf("invalid YAML in %s: %v", v.configPath, err), false)
		return
	}

	v.add("Config Syntax", true, fmt.Sprintf("%s parses cleanly", v.configPath), false)
}

func (v *Validator) validatePackage() {
	if v.cfg.Package == "" && v.cfg.Name == "" {
		v.add("Package", false, "no 'package' configured; resolution needs a package identifier", true)
		return
	}
	if strings.ContainsAny(v.cfg.Package, `/\`) {
		v.add("Package", false, fmt.Sprintf("package %q must be a bare identifier, not a path", v.cfg.Package), false)
		return
	}
	v.add("Package", true, "package identifier looks valid", false)
}

func (v *Validator) validatePackageDir(ctx context.Context) {
	dir := v.cfg.SearchRoot()
	if strings.Contains(filepath.Clean(dir), "..") && !filepath.IsAbs(dir) {
		v.add("Package Dir", false, fmt.Sprintf("package-dir %q contains path traversal", dir), false)
		return
	}

	target := dir
	if !filepath.IsAbs(target) {
		target = filepath.Join(v.rootDir, dir)
	}
	info, err := v.fs.Stat(ctx, target)
	if err != nil {
		// Not fatal: the package may exist only as an installed distribution.
		v.add("Package Dir", false, fmt.Sprintf("package-dir %q does not exist", dir), true)
		return
	}
	if !info.IsDir() {
		v.add("Package Dir", false, fmt.Sprintf("package-dir %q is not a directory", dir), false)
		return
	}
	v.add("Package Dir", true, fmt.Sprintf("package-dir %q exists", dir), false)
}

func (v *Validator) validateFragmentsDir(ctx context.Context) {
	if v.cfg.Directory == "" {
		v.add("Fragments Dir", true, "no fragments directory configured", false)
		return
	}

	target := v.cfg.Directory
	if !filepath.IsAbs(target) {
		target = filepath.Join(v.rootDir, target)
	}
	info, err := v.fs.Stat(ctx, target)
	if err != nil {
		v.add("Fragments Dir", false, fmt.Sprintf("directory %q does not exist", v.cfg.Directory), false)
		return
	}
	if !info.IsDir() {
		v.add("Fragments Dir", false, fmt.Sprintf("directory %q is not a directory", v.cfg.Directory), false)
		return
	}
	v.add("Fragments Dir", true, fmt.Sprintf("fragments directory %q exists", v.cfg.Directory), false)
}

func (v *Validator) validateMetadata() {
	if v.cfg.Metadata == nil {
		v.add("Metadata Scan", true, "using default metadata scan settings", false)
		return
	}
	if v.cfg.Metadata.MaxDepth < 0 {
		v.add("Metadata Scan", false, "metadata.max-depth must not be negative", false)
		return
	}
	if v.cfg.Metadata.MaxDepth > core.MaxDiscoveryDepth {
		v.add("Metadata Scan", false,
			fmt.Sprintf("metadata.max-depth %d exceeds the maximum of %d", v.cfg.Metadata.MaxDepth, core.MaxDiscoveryDepth), true)
		return
	}
	v.add("Metadata Scan", true, "metadata scan settings look valid", false)
}

// validateVersionOverride warns when a pinned version is not semver.
// Resolution itself accepts any non-empty version string.
func (v *Validator) validateVersionOverride() {
	if v.cfg.Version == "" {
		return
	}
	if !semver.IsValid(v.cfg.Version) {
		v.add("Version Override", false,
			fmt.Sprintf("configured version %q is not semantic versioning", v.cfg.Version), true)
		return
	}
	v.add("Version Override", true, fmt.Sprintf("configured version %q is valid semver", v.cfg.Version), false)
}
