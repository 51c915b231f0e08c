package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Herald palette. Adaptive pairs keep prompts readable on both light and
// dark terminals.
var (
	heraldGoldPrimary = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#f59e0b"}
	heraldGoldBright  = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#fbbf24"}
	heraldGoldAccent  = lipgloss.AdaptiveColor{Light: "#92400e", Dark: "#fcd34d"}

	heraldTextStrong = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#f9fafb"}
	heraldTextNormal = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#e5e7eb"}
	heraldTextMuted  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	heraldTextFaint  = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}

	heraldBorderFocused = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#f59e0b"}
	heraldBorderNormal  = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#4b5563"}

	heraldButtonBg        = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#f59e0b"}
	heraldButtonBgBlurred = lipgloss.AdaptiveColor{Light: "#e5e7eb", Dark: "#374151"}

	heraldButtonText        = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#1f2937"}
	heraldButtonTextBlurred = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
)

// heraldTheme builds the default huh theme used by herald prompts.
func heraldTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(heraldBorderFocused)
	t.Focused.Title = t.Focused.Title.Bold(true).Foreground(heraldGoldPrimary)
	t.Focused.Description = t.Focused.Description.Foreground(heraldTextMuted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(lipgloss.Color("1"))
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(lipgloss.Color("1"))
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(heraldGoldBright)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(heraldGoldAccent)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(heraldGoldBright)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(heraldTextNormal)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(heraldGoldBright)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Bold(true).
		Padding(0, 1).
		Foreground(heraldButtonText).
		Background(heraldButtonBg)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Padding(0, 1).
		Foreground(heraldButtonTextBlurred).
		Background(heraldButtonBgBlurred)

	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = t.Blurred.Title.Foreground(heraldTextMuted)

	t.Help.ShortKey = t.Help.ShortKey.Foreground(heraldTextStrong)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(heraldTextFaint)
	t.Help.ShortSeparator = t.Help.ShortSeparator.Foreground(heraldBorderNormal)
	t.Help.FullKey = t.Help.FullKey.Foreground(heraldTextStrong)
	t.Help.FullDesc = t.Help.FullDesc.Foreground(heraldTextFaint)
	t.Help.FullSeparator = t.Help.FullSeparator.Foreground(heraldBorderNormal)

	return t
}
