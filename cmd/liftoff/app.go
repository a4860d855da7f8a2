package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/garrettladley/liftoff/internal/account"
	"github.com/garrettladley/liftoff/internal/applaunch"
	experimentsclient "github.com/garrettladley/liftoff/internal/client/experiments"
	"github.com/garrettladley/liftoff/internal/config"
	"github.com/garrettladley/liftoff/internal/db"
	"github.com/garrettladley/liftoff/internal/experiments"
	"github.com/garrettladley/liftoff/internal/featureflag"
	"github.com/garrettladley/liftoff/internal/intro"
	"github.com/garrettladley/liftoff/internal/launch"
	"github.com/garrettladley/liftoff/internal/messaging"
	"github.com/garrettladley/liftoff/internal/paths"
	"github.com/garrettladley/liftoff/internal/prefs"
	"github.com/garrettladley/liftoff/internal/survey"
	"github.com/garrettladley/liftoff/internal/update"
	"github.com/garrettladley/liftoff/internal/xslog"
)

// app holds the client-side components shared by the TUI and the headless
// commands.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	flags   featureflag.Flags
	sqlDB   *sql.DB
	prefs   prefs.Store
	layer   *experiments.Layer
	fetcher *experiments.Fetcher
	tokens  *account.SQLiteTokenStore

	messages *messaging.Manager
	intro    *intro.Manager
	update   *update.ViewModel
	survey   *survey.SurfaceManager
	setup    *applaunch.Setup

	closers []io.Closer
}

// openApp wires the client. logger may be nil, in which case logs go to the
// file returned by paths.Log.
func openApp(ctx context.Context, logger *slog.Logger) (*app, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	a := &app{cfg: cfg, flags: cfg.Flags()}

	if logger == nil {
		logPath, err := paths.Log()
		if err != nil {
			return nil, err
		}
		fileLogger, closer, err := xslog.NewFileLogger(logPath)
		if err != nil {
			return nil, err
		}
		logger = fileLogger
		a.closers = append(a.closers, closer)
	}
	a.logger = logger

	dbPath, err := paths.DB()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	sqlDB, err := db.Open(ctx, dbPath, logger)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.sqlDB = sqlDB
	a.closers = append(a.closers, sqlDB)

	a.prefs = prefs.NewSQLiteStore(sqlDB)
	a.layer = experiments.NewLayer()
	if ok, err := a.layer.LoadCached(ctx, a.prefs); err != nil {
		logger.WarnContext(ctx, "failed to load cached experiments", xslog.Error(err))
	} else if ok {
		logger.DebugContext(ctx, "loaded cached experiments")
	}

	client := experimentsclient.New(cfg.ServerURL, experimentsclient.WithTimeout(cfg.ExperimentsTimeout))
	a.fetcher = experiments.NewFetcher(client, a.layer, a.prefs, logger)

	a.tokens = account.NewSQLiteTokenStore(sqlDB)
	a.messages = messaging.NewManager(a.layer, messaging.NewSQLiteStateStore(sqlDB), logger)
	a.intro = intro.NewManager(a.prefs, logger)
	a.update = update.NewViewModel(a.prefs, account.NewChecker(a.tokens), logger)
	a.survey = survey.NewSurfaceManager(a.messages, logger)
	a.setup = applaunch.New(a.prefs, a.messages, a.layer, logger)

	return a, nil
}

func (a *app) sequencer(delegate launch.Delegate) *launch.Sequencer {
	return launch.New(launch.Deps{
		Setup:              a.setup,
		Flags:              a.flags,
		Splash:             a.layer,
		Intro:              a.intro,
		Update:             a.update,
		Survey:             a.survey,
		ExperimentsFetched: a.fetcher.Fetched(),
	}, delegate, a.logger)
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
