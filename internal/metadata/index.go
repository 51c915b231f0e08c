package metadata

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/indaco/herald/internal/core"
	"github.com/indaco/herald/internal/parser"
)

// defaultMaxDepth limits how deep the manifest scan descends from each root.
const defaultMaxDepth = 3

// IndexOptions configures an Index.
type IndexOptions struct {
	// Roots are the directories to scan for manifests. Defaults to ["."]
	// when empty.
	Roots []string

	// MaxDepth limits the scan depth below each root. Values less than 1
	// fall back to the default.
	MaxDepth int

	// Excludes are glob patterns for directory names or paths to skip.
	Excludes []string
}

// Index scans directory trees for known manifest files and answers
// installed-distribution lookups from what they declare.
type Index struct {
	fs       core.FileSystem
	parser   *parser.Reader
	roots    []string
	maxDepth int
	excludes []string
}

// NewIndex creates an Index over the given filesystem. A nil fs uses the
// real filesystem.
func NewIndex(fs core.FileSystem, opts IndexOptions) *Index {
	if fs == nil {
		fs = core.NewOSFileSystem()
	}
	roots := opts.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}
	maxDepth := opts.MaxDepth
	if maxDepth < 1 {
		maxDepth = defaultMaxDepth
	}
	return &Index{
		fs:       fs,
		parser:   parser.NewReader(fs),
		roots:    roots,
		maxDepth: maxDepth,
		excludes: opts.Excludes,
	}
}

// Lookup returns the distribution whose declared name matches pkg,
// case-insensitively. Only manifests that declare both a name and a
// version participate; the first match in scan order wins.
func (ix *Index) Lookup(ctx context.Context, pkg string) (*Distribution, error) {
	for _, root := range ix.roots {
		sources, err := ix.scan(ctx, root)
		if err != nil {
			return nil, err
		}

		for _, src := range sources {
			if src.Name == "" {
				continue
			}
			if strings.EqualFold(src.Name, pkg) {
				return &Distribution{
					Name:    src.Name,
					Version: src.Version,
					Source:  src.Path,
				}, nil
			}
		}
	}

	return nil, fmt.Errorf("no installed metadata for %q: %w", pkg, ErrNotInstalled)
}

// Sources returns every version-bearing manifest found under the
// configured roots, in scan order.
func (ix *Index) Sources(ctx context.Context) ([]Source, error) {
	var all []Source
	for _, root := range ix.roots {
		sources, err := ix.scan(ctx, root)
		if err != nil {
			return nil, err
		}
		all = append(all, sources...)
	}
	return all, nil
}

// scan recursively collects manifest sources under root. Directories that
// cannot be read are skipped rather than failing the scan.
func (ix *Index) scan(ctx context.Context, root string) ([]Source, error) {
	var sources []Source
	seen := make(map[string]bool)

	var walk func(dir string, depth int) error
	walk = func(dir string, depth int) error {
		if depth > ix.maxDepth {
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if seen[dir] {
			return nil
		}
		seen[dir] = true

		dirSources, err := ix.scanDir(ctx, dir, root)
		if err != nil {
			return err
		}
		sources = append(sources, dirSources...)

		entries, err := ix.fs.ReadDir(ctx, dir)
		if err != nil {
			// Skip directories we can't read
			return nil
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			name := entry.Name()
			path := filepath.Join(dir, name)

			if ix.shouldExclude(name, path) {
				continue
			}

			if err := walk(path, depth+1); err != nil {
				return err
			}
		}

		return nil
	}

	if err := walk(root, 0); err != nil {
		return nil, err
	}

	return sources, nil
}

// scanDir reads the known manifests present in a single directory.
// Manifests that fail to parse or carry an empty version are skipped.
func (ix *Index) scanDir(ctx context.Context, dir, root string) ([]Source, error) {
	var sources []Source

	for _, known := range DefaultKnownManifests() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(dir, known.Filename)

		if _, err := ix.fs.Stat(ctx, path); err != nil {
			continue
		}

		result, err := ix.parser.Read(ctx, known.FileConfig(path))
		if err != nil {
			continue
		}
		if result.Version == "" {
			continue
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}

		sources = append(sources, Source{
			Path:        path,
			RelPath:     relPath,
			Filename:    known.Filename,
			Name:        result.Name,
			Version:     result.Version,
			Format:      known.Format,
			Description: known.Description,
		})
	}

	return sources, nil
}

// shouldExclude checks if a directory should be skipped while scanning.
func (ix *Index) shouldExclude(name, path string) bool {
	// Skip hidden directories
	if strings.HasPrefix(name, ".") {
		return true
	}

	// Skip common non-project directories
	skipDirs := []string{"node_modules", "vendor", ".git", "__pycache__", "target", "dist", "build"}
	if slices.Contains(skipDirs, name) {
		return true
	}

	for _, pattern := range ix.excludes {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
	}

	return false
}
