// Package loader resolves a package name to a source directory on an
// explicit search path and evaluates its Go sources to extract the
// legacy __version__ declaration. The search path is a stack: entries
// pushed for the duration of a lookup are restored by the caller, so a
// package reachable through the pre-existing path always wins over one
// under a temporarily pushed root.
package loader
