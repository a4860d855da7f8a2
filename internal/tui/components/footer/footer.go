package footer

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/liftoff/internal/tui/theme"
)

// Hint is a single key binding shown in the footer.
type Hint struct {
	Key  string
	Desc string
}

var (
	keyStyle  = lipgloss.NewStyle().Foreground(theme.ColorAccent)
	descStyle = lipgloss.NewStyle().Foreground(theme.ColorDim)
	sepStyle  = lipgloss.NewStyle().Foreground(theme.ColorDim)
)

type Footer struct {
	hints   []Hint
	width   int
	padding int
}

func New(width int, hints ...Hint) Footer {
	return Footer{
		hints:   hints,
		width:   width,
		padding: 2,
	}
}

func (f Footer) Render() string {
	leftContent := f.leftContent()
	rightContent := f.hintsContent()

	leftWidth := lipgloss.Width(leftContent)
	rightWidth := lipgloss.Width(rightContent)
	spacerWidth := max(f.width-leftWidth-rightWidth-(f.padding*2), 0)

	return lipgloss.NewStyle().
		PaddingLeft(f.padding).
		PaddingRight(f.padding).
		PaddingBottom(1).
		Render(leftContent + strings.Repeat(" ", spacerWidth) + rightContent)
}

func (f Footer) hintsContent() string {
	parts := make([]string, 0, len(f.hints))
	for _, h := range f.hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Desc))
	}
	return strings.Join(parts, sepStyle.Render(" • "))
}
