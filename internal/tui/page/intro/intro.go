package intro

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/liftoff/internal/tui/page/splash"
	"github.com/garrettladley/liftoff/internal/tui/theme"
)

type State struct {
	Saving   bool
	ErrorMsg string
}

func View(t theme.Theme, state State, width, height int) string {
	title := t.Title(theme.ColorAccent).Render("Welcome to liftoff")
	subtitle := t.Base().Render("A fast, private browser for your terminal")
	button := t.Button(theme.ColorAccent).Render("Press Enter to get started")
	hint := t.Hint().Render("You will only see this once")

	if state.Saving {
		button = t.Hint().Render("Getting things ready...")
	}

	parts := []string{
		splash.LogoView(t),
		"",
		"",
		title,
		"",
		subtitle,
		"",
		"",
		button,
		"",
		hint,
	}
	if state.ErrorMsg != "" {
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.ColorError).Render(state.ErrorMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...),
	)
}
