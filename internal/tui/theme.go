package tui

import (
	"github.com/charmbracelet/huh"
)

// currentTheme holds the currently configured theme for TUI components.
// When nil, ActiveTheme() returns the default heraldTheme.
var currentTheme *huh.Theme

// SetTheme sets the current theme by name.
// If the name is invalid or empty, the herald theme is used.
func SetTheme(name string) {
	if name == "" {
		currentTheme = nil
		return
	}
	theme := GetTheme(name)
	if theme != nil {
		currentTheme = theme
	} else {
		// Fall back to herald theme for invalid names
		currentTheme = nil
	}
}

// ActiveTheme returns the current theme for TUI components.
// Returns the herald theme if no theme has been set.
func ActiveTheme() *huh.Theme {
	if currentTheme == nil {
		return heraldTheme()
	}
	return currentTheme
}

// resetTheme resets the current theme to the default (herald).
// This is primarily useful for testing.
func resetTheme() {
	currentTheme = nil
}
