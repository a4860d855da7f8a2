package main

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/garrettladley/liftoff/internal/client/sse"
	"github.com/garrettladley/liftoff/internal/microsurvey"
	"github.com/garrettladley/liftoff/internal/tui"
	"github.com/garrettladley/liftoff/internal/version"
	"github.com/garrettladley/liftoff/internal/windowid"
	"github.com/garrettladley/liftoff/internal/xslog"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := openApp(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	appVersion := version.Get()
	logger := a.logger.With(xslog.AppVersion(appVersion))
	ctx = xslog.WithLogger(ctx, logger)

	store := microsurvey.NewStore(logger, microsurvey.DefaultQueueSize)
	go func() {
		if err := store.Run(ctx); err != nil && ctx.Err() == nil {
			logger.ErrorContext(ctx, "microsurvey store stopped", xslog.Error(err))
		}
	}()

	if a.cfg.LiveUpdates {
		go func() {
			stream := sse.NewClient(a.cfg.ServerURL, logger)
			if err := stream.Connect(ctx, a.fetcher.Receive); err != nil && ctx.Err() == nil {
				logger.WarnContext(ctx, "experiments stream stopped", xslog.Error(err))
			}
		}()
	}

	window := windowid.New()
	store.Register(window)
	defer store.Unregister(window)

	states, unsubscribe := store.Subscribe(window)
	defer unsubscribe()

	delegate := tui.NewLaunchDelegate()
	model := tui.New(tui.Deps{
		Ctx:          ctx,
		Logger:       logger,
		AppVersion:   appVersion,
		Launcher:     a.sequencer(delegate),
		Delegate:     delegate,
		Fetcher:      a.fetcher,
		Intro:        a.intro,
		Update:       a.update,
		Survey:       a.survey,
		Messages:     a.messages,
		MicroSurvey:  microsurvey.NewManager(window, a.messages, store, a.flags, logger),
		SurveyStates: states,
	})

	p := tea.NewProgram(&model)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	return nil
}
