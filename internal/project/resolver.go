package project

import (
	"context"
	"errors"
	"unicode"

	"github.com/indaco/herald/internal/loader"
	"github.com/indaco/herald/internal/metadata"
)

// Resolver answers name and version queries for a project. It is a pure
// lookup: no state survives a call except the loader's restored search
// path. Not safe for concurrent use; the loader's search-path stack is
// shared across calls.
type Resolver struct {
	metadata metadata.Provider
	loader   *loader.Loader

	// Warn receives deprecation diagnostics. Defaults to a styled
	// console warning.
	Warn WarnFn
}

// NewResolver creates a Resolver over the given metadata provider and
// source-module loader.
func NewResolver(provider metadata.Provider, l *loader.Loader) *Resolver {
	return &Resolver{
		metadata: provider,
		loader:   l,
		Warn:     defaultWarn,
	}
}

// GetVersion resolves the version of pkg. Installed metadata wins; the
// source tree under searchRoot is only consulted when no manifest
// declares the package. The returned string is never empty on success.
func (r *Resolver) GetVersion(ctx context.Context, searchRoot, pkg string) (string, error) {
	dist, err := r.metadata.Lookup(ctx, pkg)
	switch {
	case err == nil && dist.Version != "":
		return dist.Version, nil
	case err != nil && !errors.Is(err, metadata.ErrNotInstalled):
		return "", err
	}

	mod, err := r.loadModule(ctx, searchRoot, pkg)
	if err != nil {
		return "", err
	}

	v := mod.Version
	if v == nil || v.IsEmpty() {
		return "", &MissingVersionError{Package: pkg}
	}

	rendered, ok := v.Render()
	if !ok {
		return "", &VersionTypeError{Package: pkg, Type: v.Type}
	}

	r.warn(pkg)
	return rendered, nil
}

// GetProjectName resolves the display name of pkg. Installed metadata's
// declared name wins; otherwise the on-disk package directory name is
// used, first letter upper-cased. A broken __version__ declaration
// fails the lookup rather than producing a name from a broken module.
func (r *Resolver) GetProjectName(ctx context.Context, searchRoot, pkg string) (string, error) {
	dist, err := r.metadata.Lookup(ctx, pkg)
	switch {
	case err == nil && dist.Name != "":
		return dist.Name, nil
	case err != nil && !errors.Is(err, metadata.ErrNotInstalled):
		return "", err
	}

	mod, err := r.loadModule(ctx, searchRoot, pkg)
	if err != nil {
		return "", err
	}

	if v := mod.Version; v != nil {
		if v.Kind == loader.KindUnknown {
			return "", &VersionTypeError{Package: pkg, Type: v.Type}
		}
		if !v.IsEmpty() {
			r.warn(pkg)
		}
	}

	return capitalize(mod.Name), nil
}

// loadModule loads pkg through the loader's existing search path first,
// so an already-reachable copy wins over the one under searchRoot. Only
// when that fails is searchRoot pushed, and it is always popped again,
// whatever the outcome.
func (r *Resolver) loadModule(ctx context.Context, searchRoot, pkg string) (*loader.Module, error) {
	mod, err := r.loader.Load(ctx, pkg)
	if err == nil {
		return mod, nil
	}
	if !errors.Is(err, loader.ErrModuleNotFound) {
		return nil, err
	}

	restore := r.loader.Push(searchRoot)
	defer restore()
	return r.loader.Load(ctx, pkg)
}

func (r *Resolver) warn(pkg string) {
	if r.Warn != nil {
		r.Warn(deprecationFor(pkg))
	}
}

// capitalize upper-cases the first letter of a directory name for
// display purposes.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
