package launch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/liftoff/internal/featureflag"
	"github.com/garrettladley/liftoff/internal/xslog"
)

var ErrAlreadyLaunched = errors.New("launch type already resolved")

type DependencySetup interface {
	Setup(ctx context.Context) error
}

type FeatureFlags interface {
	IsEnabled(flag featureflag.Flag) bool
}

type SplashConfig interface {
	MaximumDuration() time.Duration
}

type IntroChecker interface {
	ShouldShowIntroScreen(ctx context.Context) bool
}

type UpdateChecker interface {
	ShouldShowUpdateSheet(ctx context.Context, appVersion string) bool
	HasSyncableAccount(ctx context.Context) (bool, error)
}

type SurveyChecker interface {
	ShouldShowSurveySurface(ctx context.Context) bool
}

// Deps are the collaborators a Sequencer consults.
type Deps struct {
	Setup  DependencySetup
	Flags  FeatureFlags
	Splash SplashConfig
	Intro  IntroChecker
	Update UpdateChecker
	Survey SurveyChecker

	// ExperimentsFetched is closed once remote experiments have arrived. May
	// be nil when experiments are reported through Sequencer.ExperimentsFetched.
	ExperimentsFetched <-chan struct{}
}

// Sequencer decides the first screen of a launch. It is used once per
// session.
type Sequencer struct {
	deps     Deps
	delegate Delegate
	timer    *SplashTimer
	logger   *slog.Logger

	fetched     chan struct{}
	fetchedOnce sync.Once
	launched    atomic.Bool
}

func New(deps Deps, delegate Delegate, logger *slog.Logger) *Sequencer {
	return &Sequencer{
		deps:     deps,
		delegate: delegate,
		timer:    NewSplashTimer(),
		logger:   logger,
		fetched:  make(chan struct{}),
	}
}

// Run waits for experiments, then resolves and reports the launch type.
func (s *Sequencer) Run(ctx context.Context, appVersion string) error {
	if err := s.StartExperiments(ctx); err != nil {
		return err
	}
	return s.StartLoading(ctx, appVersion)
}

// StartExperiments runs dependency setup alongside the splash wait and
// returns once both are done. With the splash screen disabled it returns
// immediately.
func (s *Sequencer) StartExperiments(ctx context.Context) error {
	if !s.deps.Flags.IsEnabled(featureflag.SplashScreen) {
		s.logger.DebugContext(ctx, "splash screen disabled", xslog.Flag(string(featureflag.SplashScreen), false))
		return nil
	}

	var g errgroup.Group
	g.Go(func() error {
		start := time.Now()
		if err := s.deps.Setup.Setup(ctx); err != nil {
			s.logger.WarnContext(ctx, "dependency setup failed", xslog.Error(err))
			return nil
		}
		s.logger.DebugContext(ctx, "dependency setup complete", xslog.Duration(time.Since(start)))
		return nil
	})
	g.Go(func() error {
		s.delayStart(ctx)
		return nil
	})
	_ = g.Wait()

	return ctx.Err()
}

// ExperimentsFetched ends the splash wait early. Calls after the first, or
// after the wait has finished, have no effect.
func (s *Sequencer) ExperimentsFetched() {
	s.fetchedOnce.Do(func() { close(s.fetched) })
	s.timer.Cancel()
}

func (s *Sequencer) delayStart(ctx context.Context) {
	start := time.Now()
	maxWait := s.deps.Splash.MaximumDuration()

	waitCtx, stop := context.WithCancel(ctx)
	defer stop()

	go func() {
		select {
		case <-s.deps.ExperimentsFetched:
			s.ExperimentsFetched()
		case <-s.fetched:
		case <-waitCtx.Done():
			return
		}
		stop()
	}()

	result := s.timer.Wait(waitCtx, maxWait)

	outcome := result.String()
	switch {
	case ctx.Err() != nil:
		outcome = "context_done"
	case s.experimentsFetched():
		outcome = "experiments_fetched"
	}

	s.logger.DebugContext(ctx, "splash wait finished",
		xslog.SplashOutcome(outcome),
		xslog.Duration(time.Since(start)),
	)
}

func (s *Sequencer) experimentsFetched() bool {
	select {
	case <-s.fetched:
		return true
	default:
		return false
	}
}

// StartLoading resolves the launch type and reports it to the delegate. Only
// the first call reports; later calls return ErrAlreadyLaunched.
func (s *Sequencer) StartLoading(ctx context.Context, appVersion string) error {
	if !s.launched.CompareAndSwap(false, true) {
		return ErrAlreadyLaunched
	}

	t, ok := s.Resolve(ctx, appVersion)
	if !ok {
		s.logger.InfoContext(ctx, "launching", xslog.LaunchType(BrowserOutcome))
		s.delegate.LaunchBrowser()
		return nil
	}

	s.logger.InfoContext(ctx, "launching", xslog.LaunchType(t.String()))
	s.delegate.LaunchWith(t)
	return nil
}

// Resolve picks the launch type. ok is false when the browser should open
// directly.
func (s *Sequencer) Resolve(ctx context.Context, appVersion string) (Type, bool) {
	if s.deps.Intro.ShouldShowIntroScreen(ctx) {
		return Intro(), true
	}

	if s.deps.Update.ShouldShowUpdateSheet(ctx, appVersion) {
		hasAccount, err := s.deps.Update.HasSyncableAccount(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to check sync account", xslog.Error(err))
			hasAccount = false
		}
		if hasAccount {
			return Update(appVersion), true
		}
	}

	if s.deps.Survey.ShouldShowSurveySurface(ctx) {
		return Survey(), true
	}

	return Type{}, false
}
