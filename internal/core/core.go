// Package core provides shared primitives used across the codebase:
// the FileSystem abstraction, its OS and in-memory implementations,
// serialization interfaces, and common constants.
package core

import "os"

// File permission constants shared across the codebase.
const (
	// PermOwnerRW restricts a file to owner read/write (0600).
	PermOwnerRW os.FileMode = 0o600

	// PermOwnerRWX restricts a directory to owner read/write/execute (0700).
	PermOwnerRWX os.FileMode = 0o700
)

// MaxDiscoveryDepth bounds recursive directory walks so a scan cannot
// wander arbitrarily deep into nested trees.
const MaxDiscoveryDepth = 10

// Marshaler abstracts serialization so it can be injected in tests.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}
