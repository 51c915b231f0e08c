package loader

import (
	"reflect"
	"strconv"
	"strings"
)

// VersionKind tags the shape of a legacy __version__ declaration.
type VersionKind int

const (
	// KindString is a plain version string, used verbatim.
	KindString VersionKind = iota

	// KindComponents is an ordered sequence of integer components,
	// rendered by joining them with ".".
	KindComponents

	// KindUnknown is any other shape. Callers must reject it rather
	// than guess at a rendering.
	KindUnknown
)

// VersionValue is the legacy __version__ declaration of a loaded module,
// resolved to one of its recognized shapes at load time.
type VersionValue struct {
	Kind       VersionKind
	Str        string // set for KindString
	Components []int  // set for KindComponents
	Type       string // Go type description, set for KindUnknown
}

// IsEmpty reports whether the declaration carries no usable version:
// a blank string or an empty component sequence. Unknown shapes are
// never empty; they are rejected, not skipped.
func (v *VersionValue) IsEmpty() bool {
	switch v.Kind {
	case KindString:
		return strings.TrimSpace(v.Str) == ""
	case KindComponents:
		return len(v.Components) == 0
	default:
		return false
	}
}

// Render returns the version string for the recognized shapes.
// ok is false for KindUnknown.
func (v *VersionValue) Render() (value string, ok bool) {
	switch v.Kind {
	case KindString:
		return strings.TrimSpace(v.Str), true
	case KindComponents:
		parts := make([]string, len(v.Components))
		for i, c := range v.Components {
			parts[i] = strconv.Itoa(c)
		}
		return strings.Join(parts, "."), true
	default:
		return "", false
	}
}

// versionValueOf classifies an evaluated __version__ symbol.
func versionValueOf(v reflect.Value) *VersionValue {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return &VersionValue{Kind: KindUnknown, Type: v.Type().String()}
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return &VersionValue{Kind: KindString, Str: v.String()}
	case reflect.Slice, reflect.Array:
		comps := make([]int, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			for elem.Kind() == reflect.Interface {
				elem = elem.Elem()
			}
			if !elem.IsValid() || !elem.CanInt() {
				return &VersionValue{Kind: KindUnknown, Type: v.Type().String()}
			}
			comps = append(comps, int(elem.Int()))
		}
		return &VersionValue{Kind: KindComponents, Components: comps}
	default:
		return &VersionValue{Kind: KindUnknown, Type: v.Type().String()}
	}
}
