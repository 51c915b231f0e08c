// Package parser provides a unified interface for reading project metadata
// from various file formats including JSON, YAML, TOML, raw text, and regex
// patterns. It is used by the metadata index and the init command.
package parser
