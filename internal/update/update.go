package update

import (
	"context"
	"log/slog"

	"github.com/garrettladley/liftoff/internal/prefs"
	"github.com/garrettladley/liftoff/internal/version"
	"github.com/garrettladley/liftoff/internal/xslog"
)

type AccountChecker interface {
	HasSyncableAccount(ctx context.Context) (bool, error)
}

// ViewModel decides whether the "what's new" sheet is due.
type ViewModel struct {
	prefs   prefs.Store
	account AccountChecker
	logger  *slog.Logger
}

func NewViewModel(store prefs.Store, account AccountChecker, logger *slog.Logger) *ViewModel {
	return &ViewModel{prefs: store, account: account, logger: logger}
}

// ShouldShowUpdateSheet is true when appVersion is a feature release newer than
// the last version the sheet was shown for. With no recorded version there is
// nothing to compare against and the sheet stays hidden.
func (vm *ViewModel) ShouldShowUpdateSheet(ctx context.Context, appVersion string) bool {
	last, err := prefs.String(ctx, vm.prefs, prefs.KeyLastUpdateVersion)
	if err != nil {
		vm.logger.WarnContext(ctx, "failed to read last update version", xslog.Error(err))
		return false
	}
	if last == "" {
		return false
	}
	return version.IsFeatureRelease(last, appVersion)
}

func (vm *ViewModel) HasSyncableAccount(ctx context.Context) (bool, error) {
	return vm.account.HasSyncableAccount(ctx)
}

func (vm *ViewModel) DidShowUpdateSheet(ctx context.Context, appVersion string) error {
	if err := vm.prefs.Set(ctx, prefs.KeyLastUpdateVersion, appVersion); err != nil {
		return err
	}
	vm.logger.InfoContext(ctx, "update sheet shown", xslog.AppVersion(appVersion))
	return nil
}
