package theme

import "charm.land/lipgloss/v2"

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorAccent  = lipgloss.Color("#FF7139") // CTA, logo, selection
	ColorInfo    = lipgloss.Color("#00DDFF") // update sheet, links
	ColorSurvey  = lipgloss.Color("#9059FF") // survey surfaces and prompts
	ColorSuccess = lipgloss.Color("#54FFBD")
	ColorError   = lipgloss.Color("#FF4F5E")
)

var (
	ColorBgDark  = lipgloss.Color("#15141A")
	ColorBgLight = lipgloss.Color("#2B2A33") // sheets and prompts
)
