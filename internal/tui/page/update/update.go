package update

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/liftoff/internal/tui/theme"
)

type State struct {
	Version string
}

func View(t theme.Theme, state State, width, height int) string {
	title := t.Title(theme.ColorInfo).Render("What's new in liftoff " + state.Version)
	body := t.Base().Render("Your tabs, history and bookmarks are synced and ready.")
	button := t.Button(theme.ColorInfo).Render("Press Enter to continue")

	sheet := t.Sheet(theme.ColorInfo).Render(lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		body,
		"",
		button,
	))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, sheet)
}
