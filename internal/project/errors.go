package project

import "fmt"

// MissingVersionError is returned when a package's sources declare no
// usable version and no installed metadata exists.
type MissingVersionError struct {
	Package string
}

func (e *MissingVersionError) Error() string {
	return fmt.Sprintf("No __version__ or metadata version info for the '%s' package.", e.Package)
}

// VersionTypeError is returned when a package declares __version__ with
// a shape that is neither a string nor a sequence of integers.
type VersionTypeError struct {
	Package string
	Type    string
}

func (e *VersionTypeError) Error() string {
	return fmt.Sprintf(
		"unsupported __version__ type %s for the '%s' package: must be a string or a sequence of integers",
		e.Type, e.Package,
	)
}
