package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/liftoff/internal/launch"
	"github.com/garrettladley/liftoff/internal/version"
	"github.com/garrettladley/liftoff/internal/xslog"
)

func launchCmd() *cobra.Command {
	var (
		appVersion string
		offline    bool
	)

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Resolve the launch screen without starting the TUI",
		Long:  "Runs the launch sequence headlessly and prints the screen it would open: intro, update(<version>), survey or browser.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx, xslog.NewLoggerFromEnv(os.Stderr))
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			var fetch func(context.Context)
			if !offline {
				fetch = func(ctx context.Context) {
					if err := a.fetcher.Fetch(ctx); err != nil {
						a.logger.WarnContext(ctx, "experiments fetch failed", xslog.Error(err))
					}
				}
			}

			delegate := printDelegate{w: cmd.OutOrStdout()}
			return withBackgroundFetch(ctx, fetch, func(ctx context.Context) error {
				return a.sequencer(delegate).Run(ctx, appVersion)
			})
		},
	}

	cmd.Flags().StringVar(&appVersion, "app-version", version.Get(), "version to resolve the launch for")
	cmd.Flags().BoolVar(&offline, "offline", false, "skip fetching experiments")

	return cmd
}

// withBackgroundFetch runs fetch alongside run. Once run returns, fetch is
// cancelled and waited on so nothing still writes to the store on close.
func withBackgroundFetch(ctx context.Context, fetch func(context.Context), run func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	if fetch != nil {
		g.Go(func() error {
			fetch(ctx)
			return nil
		})
	}

	err := run(ctx)
	cancel()
	_ = g.Wait()
	return err
}

type printDelegate struct {
	w io.Writer
}

func (d printDelegate) LaunchWith(t launch.Type) {
	_, _ = fmt.Fprintln(d.w, t.String())
}

func (d printDelegate) LaunchBrowser() {
	_, _ = fmt.Fprintln(d.w, launch.BrowserOutcome)
}
