// Package project resolves a project's display name and version.
// Installed-distribution metadata always wins; the source tree is only
// consulted when no manifest declares the package, and reading the
// legacy in-source __version__ declaration emits a deprecation
// diagnostic.
package project
