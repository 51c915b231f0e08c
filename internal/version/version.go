// Package version reports the herald build version.
package version

import (
	"runtime/debug"
	"strings"
)

// devVersion is reported when no release information is available.
const devVersion = "0.1.0-dev"

// version is injected at build time via -ldflags "-X ...version.version=".
var version = ""

// GetVersion returns the herald version without a leading "v".
// Precedence: ldflags injection, then module build info, then devVersion.
func GetVersion() string {
	if version != "" {
		return strings.TrimPrefix(version, "v")
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		v := info.Main.Version
		if v != "" && v != "(devel)" {
			return strings.TrimPrefix(v, "v")
		}
	}
	return devVersion
}
