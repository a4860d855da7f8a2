package tui

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/liftoff/internal/messaging"
	"github.com/garrettladley/liftoff/internal/microsurvey"
)

const (
	splashLoadingDelay = 400 * time.Millisecond
	actionTimeout      = 5 * time.Second
)

var errNoOutcome = errors.New("launch finished without an outcome")

func runLaunchCmd(ctx context.Context, launcher Launcher, delegate *LaunchDelegate, appVersion string) tea.Cmd {
	return func() tea.Msg {
		if err := launcher.Run(ctx, appVersion); err != nil {
			return LaunchFailedMsg{Err: err}
		}
		select {
		case msg := <-delegate.results:
			return msg
		default:
			return LaunchFailedMsg{Err: errNoOutcome}
		}
	}
}

func splashLoadingCmd() tea.Cmd {
	return tea.Tick(splashLoadingDelay, func(time.Time) tea.Msg {
		return SplashLoadingMsg{}
	})
}

func fetchExperimentsCmd(ctx context.Context, fetcher ExperimentsFetcher) tea.Cmd {
	return func() tea.Msg {
		return ExperimentsFetchedMsg{Err: fetcher.Fetch(ctx)}
	}
}

func didSeeIntroCmd(ctx context.Context, intro IntroRecorder, appVersion string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, actionTimeout)
		defer cancel()
		return IntroSavedMsg{Err: intro.DidSeeIntroScreen(ctx, appVersion)}
	}
}

func didShowUpdateCmd(ctx context.Context, update UpdateRecorder, appVersion string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, actionTimeout)
		defer cancel()
		return UpdateSavedMsg{Err: update.DidShowUpdateSheet(ctx, appVersion)}
	}
}

func surveyMessageCmd(ctx context.Context, survey SurveySurface) tea.Cmd {
	return func() tea.Msg {
		msg, ok := survey.Message(ctx)
		return SurveyMessageMsg{Message: msg, OK: ok}
	}
}

func messageActionCmd(ctx context.Context, action string, fn func(context.Context, messaging.Message) error, msg messaging.Message) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, actionTimeout)
		defer cancel()
		if err := fn(ctx, msg); err != nil {
			return ActionErrMsg{Action: action, Err: err}
		}
		return nil
	}
}

func showPromptCmd(ctx context.Context, ms MicroSurvey) tea.Cmd {
	return func() tea.Msg {
		prompt, ok, err := ms.ShowSurface(ctx)
		return PromptMsg{Prompt: prompt, OK: ok, Err: err}
	}
}

func surveyActionCmd(ctx context.Context, action string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, actionTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			return ActionErrMsg{Action: action, Err: err}
		}
		return nil
	}
}

func waitForSurveyStateCmd(states <-chan microsurvey.State) tea.Cmd {
	if states == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-states
		if !ok {
			return surveyStatesClosedMsg{}
		}
		return SurveyStateMsg{State: s}
	}
}

// contextDoneCmd quits the program when the session context ends.
func contextDoneCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return tea.QuitMsg{}
	}
}
