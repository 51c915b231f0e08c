package project

import (
	"fmt"

	"github.com/indaco/herald/internal/printer"
)

// Deprecation is a non-fatal diagnostic emitted alongside a successful
// resolution whenever the legacy __version__ path is exercised. It is a
// side channel: never part of the returned result or error.
type Deprecation struct {
	// Package is the package whose legacy declaration was read.
	Package string

	// Message is the human-readable warning text.
	Message string
}

// WarnFn receives deprecation diagnostics. Commands leave the default
// in place; tests install their own to assert on emissions.
type WarnFn func(Deprecation)

// defaultWarn prints the diagnostic as a styled console warning.
func defaultWarn(d Deprecation) {
	printer.PrintWarning(d.Message)
}

// deprecationFor builds the diagnostic for a legacy __version__ read.
func deprecationFor(pkg string) Deprecation {
	return Deprecation{
		Package: pkg,
		Message: fmt.Sprintf(
			"Accessing %s.__version__ is deprecated and will be removed; declare the version in the package metadata instead.",
			pkg,
		),
	}
}
