package tui

import (
	"context"
	"log/slog"

	"github.com/garrettladley/liftoff/internal/messaging"
	"github.com/garrettladley/liftoff/internal/microsurvey"
)

type Launcher interface {
	Run(ctx context.Context, appVersion string) error
}

type ExperimentsFetcher interface {
	Fetch(ctx context.Context) error
}

type IntroRecorder interface {
	DidSeeIntroScreen(ctx context.Context, appVersion string) error
}

type UpdateRecorder interface {
	DidShowUpdateSheet(ctx context.Context, appVersion string) error
}

type SurveySurface interface {
	Message(ctx context.Context) (messaging.Message, bool)
}

type MessageRecorder interface {
	OnMessageDisplayed(ctx context.Context, msg messaging.Message) error
	OnMessagePressed(ctx context.Context, msg messaging.Message) error
	OnMessageDismissed(ctx context.Context, msg messaging.Message) error
}

type MicroSurvey interface {
	ShowSurface(ctx context.Context) (microsurvey.Prompt, bool, error)
	HandleMessageDisplayed(ctx context.Context) error
	Open(ctx context.Context) error
	Dismiss(ctx context.Context) error
	CloseSurvey(ctx context.Context) error
}

type Deps struct {
	Ctx        context.Context
	Logger     *slog.Logger
	AppVersion string

	Launcher Launcher
	Delegate *LaunchDelegate
	Fetcher  ExperimentsFetcher

	Intro    IntroRecorder
	Update   UpdateRecorder
	Survey   SurveySurface
	Messages MessageRecorder

	MicroSurvey  MicroSurvey
	SurveyStates <-chan microsurvey.State
}
