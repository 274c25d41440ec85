package tui

import (
	huh "github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// NewHuhTheme returns the huh theme matching the dashboard palette.
func NewHuhTheme() *huh.Theme {
	theme := huh.ThemeCharm()

	accent := lipgloss.Color("#7D56F4")
	theme.Focused.Title = theme.Focused.Title.Foreground(accent)
	theme.Focused.FocusedButton = theme.Focused.FocusedButton.Background(accent)
	theme.Focused.SelectSelector = theme.Focused.SelectSelector.Foreground(accent)
	theme.Focused.TextInput.Cursor = theme.Focused.TextInput.Cursor.Foreground(accent)
	theme.Focused.TextInput.Prompt = theme.Focused.TextInput.Prompt.Foreground(accent)

	return theme
}
