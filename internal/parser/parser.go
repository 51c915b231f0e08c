package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/herald/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// Reader provides metadata reading capabilities for multiple file formats.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a new Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// Read reads project metadata from a file based on the provided configuration.
// The version field is required; the name field is best-effort and yields an
// empty Result.Name when absent or not a string.
func (r *Reader) Read(ctx context.Context, cfg FileConfig) (*Result, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file path is required")
	}

	if !cfg.Format.IsValid() {
		return nil, fmt.Errorf("invalid format: %s", cfg.Format)
	}

	data, err := r.fs.ReadFile(ctx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", cfg.Path, err)
	}

	var version, name string
	switch cfg.Format {
	case FormatJSON:
		version, name, err = r.readJSON(data, cfg.Path, cfg.Field, cfg.NameField)
	case FormatYAML:
		version, name, err = r.readYAML(data, cfg.Path, cfg.Field, cfg.NameField)
	case FormatTOML:
		version, name, err = r.readTOML(data, cfg.Path, cfg.Field, cfg.NameField)
	case FormatRaw:
		version, err = r.readRaw(data)
	case FormatRegex:
		version, err = r.readRegex(data, cfg.Path, cfg.Pattern)
	default:
		return nil, fmt.Errorf("unsupported format: %s", cfg.Format)
	}

	if err != nil {
		return nil, err
	}

	return &Result{
		Version: version,
		Name:    name,
		Path:    cfg.Path,
		Format:  cfg.Format,
		Field:   cfg.Field,
	}, nil
}

// ReadVersion is a convenience method that reads and returns just the version string.
func (r *Reader) ReadVersion(ctx context.Context, cfg FileConfig) (string, error) {
	result, err := r.Read(ctx, cfg)
	if err != nil {
		return "", err
	}
	return result.Version, nil
}

// readJSON extracts metadata from JSON data using dot notation for field paths.
func (r *Reader) readJSON(data []byte, path, field, nameField string) (string, string, error) {
	if field == "" {
		return "", "", fmt.Errorf("field is required for JSON format")
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", "", fmt.Errorf("failed to parse JSON in %q: %w", path, err)
	}

	version, err := stringField(obj, field, path)
	if err != nil {
		return "", "", err
	}

	return version, optionalStringField(obj, nameField), nil
}

// readYAML extracts metadata from YAML data using dot notation for field paths.
func (r *Reader) readYAML(data []byte, path, field, nameField string) (string, string, error) {
	if field == "" {
		return "", "", fmt.Errorf("field is required for YAML format")
	}

	var obj map[string]any
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return "", "", fmt.Errorf("failed to parse YAML in %q: %w", path, err)
	}

	version, err := stringField(obj, field, path)
	if err != nil {
		return "", "", err
	}

	return version, optionalStringField(obj, nameField), nil
}

// readTOML extracts metadata from TOML data using dot notation for field paths.
func (r *Reader) readTOML(data []byte, path, field, nameField string) (string, string, error) {
	if field == "" {
		return "", "", fmt.Errorf("field is required for TOML format")
	}

	var obj map[string]any
	if err := toml.Unmarshal(data, &obj); err != nil {
		return "", "", fmt.Errorf("failed to parse TOML in %q: %w", path, err)
	}

	version, err := stringField(obj, field, path)
	if err != nil {
		return "", "", err
	}

	return version, optionalStringField(obj, nameField), nil
}

// readRaw reads the entire file contents as the version (trimmed).
func (r *Reader) readRaw(data []byte) (string, error) {
	return strings.TrimSpace(string(data)), nil
}

// readRegex extracts a version using a regex pattern with a capturing group.
func (r *Reader) readRegex(data []byte, path, pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("pattern is required for regex format")
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}

	matches := re.FindSubmatch(data)
	if len(matches) < 2 {
		return "", fmt.Errorf("no version match found in %q (pattern %q must have capturing group)", path, pattern)
	}

	return string(matches[1]), nil
}

// stringField resolves a required dot-notation field to a string.
func stringField(obj map[string]any, field, path string) (string, error) {
	value, err := getNestedValue(obj, field)
	if err != nil {
		return "", fmt.Errorf("in file %q: %w", path, err)
	}

	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q in %q is not a string", field, path)
	}

	return s, nil
}

// optionalStringField resolves a dot-notation field to a string, returning
// an empty string when the field is unset, missing, or not a string.
func optionalStringField(obj map[string]any, field string) string {
	if field == "" {
		return ""
	}
	value, err := getNestedValue(obj, field)
	if err != nil {
		return ""
	}
	s, _ := value.(string)
	return s
}

// getNestedValue retrieves a value from a nested map using dot notation.
// Example: "project.version" accesses obj["project"]["version"]
func getNestedValue(obj map[string]any, field string) (any, error) {
	if field == "" {
		return nil, fmt.Errorf("field path cannot be empty")
	}

	parts := strings.Split(field, ".")
	current := any(obj)

	for i, part := range parts {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i], "."), part)
		}

		value, exists := currentMap[part]
		if !exists {
			return nil, fmt.Errorf("field %q not found", field)
		}

		current = value
	}

	return current, nil
}
