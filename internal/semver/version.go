package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SemVersion represents a semantic version (major.minor.patch-preRelease+build).
type SemVersion struct {
	Major      int
	Minor      int
	Patch      int
	PreRelease string
	Build      string
}

// versionRegex matches semantic version strings with optional "v" prefix,
// optional pre-release (e.g., "-beta.1"), and optional build metadata (e.g., "+build.123").
// It captures:
//  1. Major version
//  2. Minor version
//  3. Patch version
//  4. (optional) Pre-release identifier
//  5. (optional) Build metadata
var versionRegex = regexp.MustCompile(
	`^v?([^\.\-+]+)\.([^\.\-+]+)\.([^\.\-+]+)` + // major.minor.patch
		`(?:-([0-9A-Za-z\-\.]+))?` + // optional pre-release
		`(?:\+([0-9A-Za-z\-\.]+))?$`, // optional build metadata
)

// errInvalidVersion is returned when a version string does not conform
// to the expected semantic version format.
var errInvalidVersion = errors.New("invalid version format")

// String returns the string representation of the semantic version.
func (v SemVersion) String() string {
	var sb strings.Builder
	sb.Grow(20)
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Patch))
	if v.PreRelease != "" {
		sb.WriteByte('-')
		sb.WriteString(v.PreRelease)
	}
	if v.Build != "" {
		sb.WriteByte('+')
		sb.WriteString(v.Build)
	}
	return sb.String()
}

// maxVersionLength is the maximum allowed length for a version string.
// This prevents potential ReDoS attacks on the regex parser.
const maxVersionLength = 128

// ParseVersion parses a semantic version string and returns a SemVersion.
//
// Supported formats:
//   - "1.2.3" (basic version)
//   - "v1.2.3" (with optional v prefix)
//   - "1.2.3-alpha.1" (with pre-release identifier)
//   - "1.2.3+build.123" (with build metadata)
//   - "1.2.3-rc.1+build.456" (with both)
//
// Returns errInvalidVersion (wrapped) when:
//   - Input exceeds maxVersionLength (128 characters)
//   - Format doesn't match major.minor.patch pattern
//   - Major, minor, or patch cannot be parsed as integers
func ParseVersion(s string) (SemVersion, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > maxVersionLength {
		return SemVersion{}, fmt.Errorf("%w: version string exceeds maximum length of %d", errInvalidVersion, maxVersionLength)
	}

	matches := versionRegex.FindStringSubmatch(trimmed)
	if len(matches) < 4 {
		return SemVersion{}, errInvalidVersion
	}

	major, err := strconv.Atoi(matches[1])
	if err != nil {
		return SemVersion{}, fmt.Errorf("%w: invalid major version: %s", errInvalidVersion, err.Error())
	}
	minor, err := strconv.Atoi(matches[2])
	if err != nil {
		return SemVersion{}, fmt.Errorf("%w: invalid minor version: %s", errInvalidVersion, err.Error())
	}
	patch, err := strconv.Atoi(matches[3])
	if err != nil {
		return SemVersion{}, fmt.Errorf("%w: invalid patch version: %s", errInvalidVersion, err.Error())
	}

	pre := matches[4]
	build := matches[5]

	return SemVersion{Major: major, Minor: minor, Patch: patch, PreRelease: pre, Build: build}, nil
}

// IsValid reports whether s parses as a semantic version.
// Resolved project versions are not required to be semver; this is
// only used for advisory checks.
func IsValid(s string) bool {
	_, err := ParseVersion(s)
	return err == nil
}
