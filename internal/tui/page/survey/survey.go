package survey

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/liftoff/internal/messaging"
	"github.com/garrettladley/liftoff/internal/tui/theme"
)

const defaultButtonLabel = "Take the survey"

type State struct {
	Message messaging.Message
}

func View(t theme.Theme, state State, width, height int) string {
	label := state.Message.ButtonLabel
	if label == "" {
		label = defaultButtonLabel
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		t.Title(theme.ColorSurvey).Render(state.Message.Title),
		"",
		t.Base().Width(min(60, max(width-8, 20))).Align(lipgloss.Center).Render(state.Message.Text),
		"",
		"",
		t.Button(theme.ColorSurvey).Render("Enter: "+label),
		"",
		t.Hint().Render("Esc: not now"),
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
