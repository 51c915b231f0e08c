package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// Confirm shows a yes/no confirmation prompt using the active theme.
func Confirm(title, description string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(ActiveTheme())

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// Spin runs action behind a spinner when the terminal is interactive,
// and plainly otherwise.
func Spin(title string, action func()) error {
	if !IsInteractive() {
		action()
		return nil
	}
	return spinner.New().Title(title).Action(action).Run()
}
