package metadata

import (
	"context"
	"fmt"
	"strings"
)

var _ Provider = (*Index)(nil)
var _ Provider = (*Static)(nil)

// Static is a fixed-table Provider, useful when metadata is pinned in
// configuration rather than scanned from disk.
type Static struct {
	dists map[string]Distribution
}

// NewStatic builds a Static provider from the given distributions.
// Later entries with the same name (ignoring case) replace earlier ones.
func NewStatic(dists ...Distribution) *Static {
	m := make(map[string]Distribution, len(dists))
	for _, d := range dists {
		m[strings.ToLower(d.Name)] = d
	}
	return &Static{dists: m}
}

// Lookup returns the pinned distribution for pkg, matching case-insensitively.
func (s *Static) Lookup(_ context.Context, pkg string) (*Distribution, error) {
	if d, ok := s.dists[strings.ToLower(pkg)]; ok {
		return &d, nil
	}
	return nil, fmt.Errorf("no installed metadata for %q: %w", pkg, ErrNotInstalled)
}
