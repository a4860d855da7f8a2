package intro

import (
	"context"
	"log/slog"

	"github.com/garrettladley/liftoff/internal/prefs"
	"github.com/garrettladley/liftoff/internal/xslog"
)

// Manager tracks whether onboarding has been completed.
type Manager struct {
	prefs  prefs.Store
	logger *slog.Logger
}

func NewManager(store prefs.Store, logger *slog.Logger) *Manager {
	return &Manager{prefs: store, logger: logger}
}

// ShouldShowIntroScreen is true until DidSeeIntroScreen has been recorded.
// A read failure shows the intro again rather than skipping it.
func (m *Manager) ShouldShowIntroScreen(ctx context.Context) bool {
	seen, err := prefs.Bool(ctx, m.prefs, prefs.KeyIntroSeen)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to read intro state", xslog.Error(err))
		return true
	}
	return !seen
}

// DidSeeIntroScreen marks onboarding complete. A fresh install has nothing new
// to announce, so appVersion also becomes the last version the update sheet
// was shown for.
func (m *Manager) DidSeeIntroScreen(ctx context.Context, appVersion string) error {
	if err := prefs.SetBool(ctx, m.prefs, prefs.KeyIntroSeen, true); err != nil {
		return err
	}
	if err := m.prefs.Set(ctx, prefs.KeyLastUpdateVersion, appVersion); err != nil {
		return err
	}
	m.logger.InfoContext(ctx, "intro completed", xslog.AppVersion(appVersion))
	return nil
}
