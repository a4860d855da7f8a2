package microsurvey

import "github.com/garrettladley/liftoff/internal/windowid"

type ActionType uint8

const (
	ActionShowPrompt ActionType = iota + 1
	ActionDismissPrompt
	ActionShowSurvey
	ActionDismissSurvey
	// ActionPressedPromptButton is observed by the manager only; the reducer ignores it.
	ActionPressedPromptButton
)

func (t ActionType) String() string {
	switch t {
	case ActionShowPrompt:
		return "show_prompt"
	case ActionDismissPrompt:
		return "dismiss_prompt"
	case ActionShowSurvey:
		return "show_survey"
	case ActionDismissSurvey:
		return "dismiss_survey"
	case ActionPressedPromptButton:
		return "pressed_prompt_button"
	default:
		return "unknown"
	}
}

type Action struct {
	Type       ActionType
	WindowUUID windowid.UUID
}

func ShowPrompt(w windowid.UUID) Action    { return Action{Type: ActionShowPrompt, WindowUUID: w} }
func DismissPrompt(w windowid.UUID) Action { return Action{Type: ActionDismissPrompt, WindowUUID: w} }
func ShowSurvey(w windowid.UUID) Action    { return Action{Type: ActionShowSurvey, WindowUUID: w} }
func DismissSurvey(w windowid.UUID) Action { return Action{Type: ActionDismissSurvey, WindowUUID: w} }

func PressedPromptButton(w windowid.UUID) Action {
	return Action{Type: ActionPressedPromptButton, WindowUUID: w}
}
