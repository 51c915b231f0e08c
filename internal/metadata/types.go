package metadata

import (
	"context"
	"errors"

	"github.com/indaco/herald/internal/parser"
)

// ErrNotInstalled is returned when no manifest declares the requested
// package. Callers treat it as a signal to fall back to source-tree
// resolution; any other lookup error is a real failure.
var ErrNotInstalled = errors.New("package not installed")

// Distribution is the declared metadata of an installed package.
type Distribution struct {
	// Name is the declared project name, preserving the manifest's casing.
	Name string

	// Version is the declared version string.
	Version string

	// Source is the path of the manifest that declared this distribution.
	Source string
}

// Provider resolves installed distribution metadata for a package.
type Provider interface {
	// Lookup returns the distribution declared for pkg. The match is
	// case-insensitive. Returns an error wrapping ErrNotInstalled when
	// no manifest declares pkg.
	Lookup(ctx context.Context, pkg string) (*Distribution, error)
}

// Source represents a version source found while scanning for manifests.
type Source struct {
	// Path is the path to the manifest file.
	Path string

	// RelPath is the relative path from the scan root.
	RelPath string

	// Filename is the base name of the file (e.g., "package.json").
	Filename string

	// Name is the declared project name, when the format carries one.
	Name string

	// Version is the extracted version string.
	Version string

	// Format is the file format (json, yaml, toml, etc.).
	Format parser.Format

	// Description is a human-readable description of the file type.
	Description string
}

// KnownManifest describes a known manifest file type for scanning.
type KnownManifest struct {
	// Filename is the expected filename.
	Filename string

	// Format is the file format.
	Format parser.Format

	// Field is the dot-notation path to the version field.
	Field string

	// NameField is the dot-notation path to the declared project name.
	// Empty for formats that do not declare one; such manifests are
	// version sources but never distributions.
	NameField string

	// Pattern is the regex pattern for regex format.
	Pattern string

	// Description is a human-readable description.
	Description string

	// Priority determines scan order within a directory (lower = higher priority).
	Priority int
}

// FileConfig converts the known manifest into a parser configuration for
// the given path.
func (k KnownManifest) FileConfig(path string) parser.FileConfig {
	return parser.FileConfig{
		Path:      path,
		Format:    k.Format,
		Field:     k.Field,
		NameField: k.NameField,
		Pattern:   k.Pattern,
	}
}

// DefaultKnownManifests returns the list of known manifest files to scan.
func DefaultKnownManifests() []KnownManifest {
	return []KnownManifest{
		{
			Filename:    "package.json",
			Format:      parser.FormatJSON,
			Field:       "version",
			NameField:   "name",
			Description: "Node.js (package.json)",
			Priority:    1,
		},
		{
			Filename:    "Cargo.toml",
			Format:      parser.FormatTOML,
			Field:       "package.version",
			NameField:   "package.name",
			Description: "Rust (Cargo.toml)",
			Priority:    2,
		},
		{
			Filename:    "pyproject.toml",
			Format:      parser.FormatTOML,
			Field:       "project.version",
			NameField:   "project.name",
			Description: "Python (pyproject.toml)",
			Priority:    3,
		},
		{
			Filename:    "Chart.yaml",
			Format:      parser.FormatYAML,
			Field:       "version",
			NameField:   "name",
			Description: "Helm (Chart.yaml)",
			Priority:    4,
		},
		{
			Filename:    "pubspec.yaml",
			Format:      parser.FormatYAML,
			Field:       "version",
			NameField:   "name",
			Description: "Dart/Flutter (pubspec.yaml)",
			Priority:    5,
		},
		{
			Filename:    "composer.json",
			Format:      parser.FormatJSON,
			Field:       "version",
			NameField:   "name",
			Description: "PHP (composer.json)",
			Priority:    6,
		},
		{
			Filename:    "version.txt",
			Format:      parser.FormatRaw,
			Field:       "",
			Description: "Plain text (version.txt)",
			Priority:    10,
		},
		{
			Filename:    "VERSION",
			Format:      parser.FormatRaw,
			Field:       "",
			Description: "Plain text (VERSION)",
			Priority:    11,
		},
		{
			Filename:    "version.go",
			Format:      parser.FormatRegex,
			Pattern:     `Version\s*=\s*"([^"]+)"`,
			Description: "Go (version.go)",
			Priority:    12,
		},
	}
}
