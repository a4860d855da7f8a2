package microsurvey

import "github.com/garrettladley/liftoff/internal/windowid"

// State tracks the prompt and the survey sheet for one window. Both flags may
// be true for the frame between the prompt being pressed and the prompt
// being dismissed.
type State struct {
	WindowUUID    windowid.UUID
	IsPromptShown bool
	IsSurveyShown bool
}

func NewState(w windowid.UUID) State {
	return State{WindowUUID: w}
}

// Reduce returns the state after applying action. Actions addressed to
// another window leave the state untouched.
func Reduce(state State, action Action) State {
	if !action.WindowUUID.IsUnavailable() && action.WindowUUID != state.WindowUUID {
		return state
	}

	switch action.Type {
	case ActionShowPrompt:
		state.IsPromptShown = true
		state.IsSurveyShown = false
	case ActionDismissPrompt:
		state.IsPromptShown = false
		state.IsSurveyShown = false
	case ActionShowSurvey:
		state.IsSurveyShown = true
	case ActionDismissSurvey:
		state.IsSurveyShown = false
	}

	return state
}
