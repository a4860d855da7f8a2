package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

type Theme struct {
	background color.Color
	foreground color.Color
	base       lipgloss.Style
}

func New() Theme {
	var t Theme

	t.background = ColorBgDark
	t.foreground = ColorWhite
	t.base = lipgloss.NewStyle().Foreground(t.foreground)

	return t
}

func (t Theme) Base() lipgloss.Style {
	return t.base
}

func (t Theme) TextAccent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorAccent)
}

func (t Theme) Title(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

func (t Theme) Hint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorDim)
}

func (t Theme) Button(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ColorBgDark).
		Background(c).
		Padding(0, 2).
		Bold(true)
}

// Sheet frames content drawn above the page, such as prompts.
func (t Theme) Sheet(border color.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Background(ColorBgLight).
		Padding(1, 3)
}

func (t Theme) Background() color.Color {
	return t.background
}

func (t Theme) Foreground() color.Color {
	return t.foreground
}
