package splash

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/liftoff/internal/tui/theme"
)

const Logo = `
 ▄▄       ▄▄  ▄▄▄▄▄▄▄  ▄▄▄▄▄▄▄▄    ▄▄▄▄     ▄▄▄▄▄▄▄  ▄▄▄▄▄▄▄
 ██       ██  ██▀▀▀▀▀  ▀▀▀██▀▀▀   ██▀▀██    ██▀▀▀▀▀  ██▀▀▀▀▀
 ██       ██  ██▄▄▄▄      ██     ██    ██   ██▄▄▄▄   ██▄▄▄▄
 ██       ██  ██▀▀▀▀      ██     ██    ██   ██▀▀▀▀   ██▀▀▀▀
 ██▄▄▄▄▄  ██  ██          ██      ██▄▄██    ██       ██
 ▀▀▀▀▀▀▀  ▀▀  ▀▀          ▀▀       ▀▀▀▀     ▀▀       ▀▀`

func LogoView(t theme.Theme) string {
	return t.TextAccent().Render(Logo)
}

// View draws the splash while the launch type is being decided. loading is
// shown under the logo once the wait has run long enough to notice.
func View(t theme.Theme, loading bool, width, height int) string {
	content := LogoView(t)
	if loading {
		content = lipgloss.JoinVertical(lipgloss.Center,
			content,
			"",
			t.Hint().Render("loading experiments..."),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
