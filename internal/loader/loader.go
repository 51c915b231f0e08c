package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/indaco/herald/internal/core"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// ErrModuleNotFound is returned when no directory on the search path
// matches the requested package name.
var ErrModuleNotFound = errors.New("module not found")

// versionSymbol is the legacy in-source version declaration.
const versionSymbol = "__version__"

// packageClauseRe matches the package clause of a Go source file so it
// can be normalized before evaluation.
var packageClauseRe = regexp.MustCompile(`(?m)^package\s+\w+`)

// Module is a package located and evaluated from the search path.
type Module struct {
	// Name is the on-disk directory name, preserving its casing.
	Name string

	// Dir is the resolved package directory.
	Dir string

	// Version is the legacy __version__ declaration, or nil when the
	// package's sources declare none.
	Version *VersionValue
}

// Loader locates packages on an explicit search path and evaluates
// their sources. Not safe for concurrent use; the search path is a
// single stack shared by every lookup.
type Loader struct {
	fs    core.FileSystem
	paths []string
}

// New creates a Loader with the given initial search path. A nil fs
// uses the real filesystem.
func New(fs core.FileSystem, paths ...string) *Loader {
	if fs == nil {
		fs = core.NewOSFileSystem()
	}
	return &Loader{fs: fs, paths: append([]string(nil), paths...)}
}

// Push prepends dir to the search path and returns a function that
// restores the previous path. Callers must invoke the restore function
// on every exit path, typically via defer.
func (l *Loader) Push(dir string) (restore func()) {
	prev := l.paths
	l.paths = append([]string{dir}, prev...)
	return func() {
		l.paths = prev
	}
}

// SearchPath returns a copy of the current search path, front first.
func (l *Loader) SearchPath() []string {
	return append([]string(nil), l.paths...)
}

// Load resolves pkg to a package directory on the search path and
// extracts its legacy __version__ declaration. Earlier path entries
// win; within an entry an exact directory-name match beats a
// case-insensitive one.
func (l *Loader) Load(ctx context.Context, pkg string) (*Module, error) {
	if pkg == "" {
		return nil, fmt.Errorf("package name is required")
	}

	dir, ok := l.locate(ctx, pkg)
	if !ok {
		return nil, fmt.Errorf("no package %q on the search path: %w", pkg, ErrModuleNotFound)
	}

	version, err := l.evalVersion(ctx, dir)
	if err != nil {
		return nil, err
	}

	return &Module{
		Name:    filepath.Base(dir),
		Dir:     dir,
		Version: version,
	}, nil
}

// locate returns the first directory on the search path whose name
// matches pkg. Path entries that cannot be read are skipped.
func (l *Loader) locate(ctx context.Context, pkg string) (string, bool) {
	for _, root := range l.paths {
		entries, err := l.fs.ReadDir(ctx, root)
		if err != nil {
			continue
		}

		fold := ""
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			name := entry.Name()
			if name == pkg {
				return filepath.Join(root, name), true
			}
			if fold == "" && strings.EqualFold(name, pkg) {
				fold = name
			}
		}
		if fold != "" {
			return filepath.Join(root, fold), true
		}
	}
	return "", false
}

// evalVersion evaluates the package's Go sources in a fresh interpreter
// and extracts the __version__ symbol. Test files and files the
// interpreter cannot evaluate are skipped; an absent symbol yields nil.
func (l *Loader) evalVersion(ctx context.Context, dir string) (*VersionValue, error) {
	entries, err := l.fs.ReadDir(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read package directory %q: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to prepare interpreter: %w", err)
	}

	for _, name := range files {
		src, err := l.fs.ReadFile(ctx, filepath.Join(dir, name))
		if err != nil {
			continue
		}
		// Every file is normalized into the interpreter's main package
		// so the symbol can be looked up unqualified.
		code := packageClauseRe.ReplaceAllString(string(src), "package main")
		if _, err := i.Eval(code); err != nil {
			continue
		}
	}

	v, err := i.Eval(versionSymbol)
	if err != nil {
		return nil, nil
	}
	return versionValueOf(v), nil
}
