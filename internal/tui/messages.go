package tui

import (
	"github.com/garrettladley/liftoff/internal/launch"
	"github.com/garrettladley/liftoff/internal/messaging"
	"github.com/garrettladley/liftoff/internal/microsurvey"
)

// LaunchResolvedMsg carries the launch type; OK is false for the browser.
type LaunchResolvedMsg struct {
	Type launch.Type
	OK   bool
}

type LaunchFailedMsg struct {
	Err error
}

type SplashLoadingMsg struct{}

type ExperimentsFetchedMsg struct {
	Err error
}

type IntroSavedMsg struct {
	Err error
}

type UpdateSavedMsg struct {
	Err error
}

type SurveyMessageMsg struct {
	Message messaging.Message
	OK      bool
}

type PromptMsg struct {
	Prompt microsurvey.Prompt
	OK     bool
	Err    error
}

type SurveyStateMsg struct {
	State microsurvey.State
}

type surveyStatesClosedMsg struct{}

// ActionErrMsg reports a failed background action. It is logged only.
type ActionErrMsg struct {
	Action string
	Err    error
}
