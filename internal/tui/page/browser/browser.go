package browser

import (
	"strconv"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/liftoff/internal/microsurvey"
	"github.com/garrettladley/liftoff/internal/tui/theme"
)

const defaultPromptButton = "Continue"

const MaxRating = 5

type State struct {
	Window microsurvey.State
	Prompt microsurvey.Prompt
	Rating int // 0 until chosen in the survey sheet
}

// View draws the browser home for one window with the micro-survey prompt
// docked at the bottom and the survey sheet above it.
func View(t theme.Theme, state State, width, height int) string {
	home := lipgloss.JoinVertical(lipgloss.Center,
		t.TextAccent().Bold(true).Render("liftoff"),
		"",
		t.Hint().Render("Search or enter address"),
		lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.ColorDim).
			Width(min(60, max(width-8, 20))).
			Render(""),
	)

	var overlay string
	switch {
	case state.Window.IsSurveyShown:
		overlay = surveySheetView(t, state.Prompt, state.Rating, width)
	case state.Window.IsPromptShown:
		overlay = promptView(t, state.Prompt, width)
	}

	if overlay == "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, home)
	}

	homeHeight := max(height-lipgloss.Height(overlay), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.Place(width, homeHeight, lipgloss.Center, lipgloss.Center, home),
		lipgloss.PlaceHorizontal(width, lipgloss.Center, overlay),
	)
}

func promptView(t theme.Theme, p microsurvey.Prompt, width int) string {
	label := p.ButtonLabel
	if label == "" {
		label = defaultPromptButton
	}

	return t.Sheet(theme.ColorSurvey).Width(min(72, max(width-4, 24))).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			t.Title(theme.ColorSurvey).Render(p.Title),
			t.Base().Render(p.Text),
			"",
			lipgloss.JoinHorizontal(lipgloss.Center,
				t.Button(theme.ColorSurvey).Render("Enter: "+label),
				"  ",
				t.Hint().Render("x: close"),
			),
		),
	)
}

func surveySheetView(t theme.Theme, p microsurvey.Prompt, rating, width int) string {
	choices := make([]string, 0, MaxRating*2)
	for i := 1; i <= MaxRating; i++ {
		style := t.Hint()
		if i == rating {
			style = t.Title(theme.ColorSurvey)
		}
		choices = append(choices, style.Render(strconv.Itoa(i)), "  ")
	}

	return t.Sheet(theme.ColorSurvey).Width(min(72, max(width-4, 24))).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			t.Title(theme.ColorSurvey).Render(p.Title),
			"",
			t.Base().Render("How satisfied are you?"),
			lipgloss.JoinHorizontal(lipgloss.Center, choices...),
			"",
			lipgloss.JoinHorizontal(lipgloss.Center,
				t.Button(theme.ColorSuccess).Render("Enter: submit"),
				"  ",
				t.Hint().Render("Esc: back"),
			),
		),
	)
}
