package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/herald/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigFile is the standalone configuration file name.
const DefaultConfigFile = ".herald.yaml"

// MetadataConfig tunes the installed-metadata scan.
type MetadataConfig struct {
	// Roots are the directories scanned for project manifests.
	Roots []string `yaml:"roots,omitempty" toml:"roots,omitempty" json:"roots,omitempty"`

	// MaxDepth limits how deep the scan descends below each root.
	MaxDepth int `yaml:"max-depth,omitempty" toml:"max-depth,omitempty" json:"max-depth,omitempty"`
}

// Config is the main configuration structure for herald.
type Config struct {
	// Package is the package identifier to resolve.
	Package string `yaml:"package,omitempty" toml:"package,omitempty" json:"package,omitempty"`

	// PackageDir is the search root containing the source package.
	PackageDir string `yaml:"package-dir,omitempty" toml:"package-dir,omitempty" json:"package-dir,omitempty"`

	// Directory is the changelog fragments directory. It is validated
	// by doctor but never read here.
	Directory string `yaml:"directory,omitempty" toml:"directory,omitempty" json:"directory,omitempty"`

	// Name, when set, bypasses name resolution entirely.
	Name string `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`

	// Version, when set, bypasses version resolution entirely.
	Version string `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty"`

	// Metadata tunes the installed-metadata scan.
	Metadata *MetadataConfig `yaml:"metadata,omitempty" toml:"metadata,omitempty" json:"metadata,omitempty"`

	// NoColor disables styled output.
	NoColor bool `yaml:"no-color,omitempty" toml:"no-color,omitempty" json:"no-color,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{PackageDir: "."}
}

// SearchRoot returns the configured package directory, defaulting to
// the current directory.
func (c *Config) SearchRoot() string {
	if c.PackageDir == "" {
		return "."
	}
	return c.PackageDir
}

// pyprojectFile maps the [tool.herald] table of a pyproject.toml.
type pyprojectFile struct {
	Tool struct {
		Herald *Config `toml:"herald"`
	} `toml:"tool"`
}

// packageJSONFile maps the "herald" key of a package.json.
type packageJSONFile struct {
	Herald *Config `json:"herald"`
}

// LoadConfigFn and SaveConfigFn are function-var seams so tests can
// stub configuration loading and saving.
var (
	LoadConfigFn = loadConfig
	SaveConfigFn = func(cfg *Config) error {
		return defaultConfigSaver.Save(cfg)
	}
)

// loadConfig resolves the configuration in precedence order: the
// standalone .herald.yaml, then a [tool.herald] table in
// pyproject.toml, then a "herald" key in package.json. A nil result
// with a nil error means no configuration exists. The
// HERALD_PACKAGE_DIR environment variable overrides the package
// directory of whatever was loaded.
func loadConfig() (*Config, error) {
	cfg, err := readConfigSources(".")
	if err != nil {
		return nil, err
	}

	if envDir := os.Getenv("HERALD_PACKAGE_DIR"); envDir != "" {
		cleanDir := filepath.Clean(envDir)
		// Reject relative paths with traversal (use absolute paths instead)
		if strings.Contains(cleanDir, "..") {
			return nil, fmt.Errorf("invalid HERALD_PACKAGE_DIR: path traversal not allowed, use absolute path instead")
		}
		if cfg == nil {
			cfg = Default()
		}
		cfg.PackageDir = cleanDir
	}

	return cfg, nil
}

// readConfigSources tries each known configuration source under dir.
func readConfigSources(dir string) (*Config, error) {
	if cfg, err := readYAMLConfig(filepath.Join(dir, DefaultConfigFile)); cfg != nil || err != nil {
		return cfg, err
	}
	if cfg, err := readPyprojectConfig(filepath.Join(dir, "pyproject.toml")); cfg != nil || err != nil {
		return cfg, err
	}
	return readPackageJSONConfig(filepath.Join(dir, "package.json"))
}

// readYAMLConfig loads a standalone .herald.yaml with strict decoding.
func readYAMLConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}

	return &cfg, nil
}

// readPyprojectConfig loads an embedded [tool.herald] table. A
// pyproject.toml without one is not a configuration source.
func readPyprojectConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var file pyprojectFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}

	return file.Tool.Herald, nil
}

// readPackageJSONConfig loads an embedded "herald" key. A package.json
// without one is not a configuration source.
func readPackageJSONConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var file packageJSONFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}

	return file.Herald, nil
}

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

// ConfigSaver handles configuration saving with injected dependencies.
type ConfigSaver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

// osFileOpener is the production implementation of FileOpener.
type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// osFileWriter is the production implementation of FileWriter.
type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

// yamlMarshaler is the production implementation of core.Marshaler using YAML.
type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// NewConfigSaver creates a ConfigSaver with the given dependencies.
// If any dependency is nil, the production default is used.
func NewConfigSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *ConfigSaver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &ConfigSaver{
		marshaler:  marshaler,
		fileOpener: opener,
		fileWriter: writer,
	}
}

// Save saves the configuration to the default config file.
func (s *ConfigSaver) Save(cfg *Config) error {
	return s.SaveTo(cfg, DefaultConfigFile)
}

// SaveTo saves the configuration to the specified file path.
func (s *ConfigSaver) SaveTo(cfg *Config, configFile string) error {
	file, err := s.fileOpener.OpenFile(configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", configFile, err)
	}
	defer file.Close()

	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	if _, err := s.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}

	return nil
}

// defaultConfigSaver is the default ConfigSaver instance.
var defaultConfigSaver = NewConfigSaver(nil, nil, nil)

// ConfigFilePerm defines secure file permissions for config files (owner read/write only).
// References core.PermOwnerRW for consistency across the codebase.
const ConfigFilePerm = core.PermOwnerRW
