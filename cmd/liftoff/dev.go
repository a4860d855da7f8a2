//go:build !release

package main

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/garrettladley/liftoff/internal/prefs"
	"github.com/garrettladley/liftoff/internal/xslog"
)

func addDevCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(prefsCmd())
	rootCmd.AddCommand(accountCmd())
}

func prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or reset local preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print every stored preference",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx, xslog.NewLoggerFromEnv(os.Stderr))
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			all, err := a.prefs.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to read prefs: %w", err)
			}

			keys := make([]prefs.Key, 0, len(all))
			for k := range all {
				keys = append(keys, k)
			}
			slices.Sort(keys)

			for _, k := range keys {
				v := all[k]
				if k == prefs.KeyExperimentsCache {
					v = fmt.Sprintf("<%d bytes>", len(v))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, v)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Delete every stored preference so the next launch starts fresh",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx, xslog.NewLoggerFromEnv(os.Stderr))
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			all, err := a.prefs.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to read prefs: %w", err)
			}
			for k := range all {
				if err := a.prefs.Delete(ctx, k); err != nil {
					return fmt.Errorf("failed to delete %s: %w", k, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d preferences\n", len(all))
			return nil
		},
	})

	return cmd
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the stored sync account token",
	}

	var (
		refreshToken string
		expiresIn    time.Duration
	)

	login := &cobra.Command{
		Use:   "login <access-token>",
		Short: "Store a sync account token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx, xslog.NewLoggerFromEnv(os.Stderr))
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			token := &oauth2.Token{
				AccessToken:  args[0],
				RefreshToken: refreshToken,
				TokenType:    "Bearer",
			}
			if expiresIn > 0 {
				token.Expiry = time.Now().Add(expiresIn)
			}

			if err := a.tokens.Save(ctx, token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Sync account stored")
			return nil
		},
	}
	login.Flags().StringVar(&refreshToken, "refresh-token", "", "refresh token")
	login.Flags().DurationVar(&expiresIn, "expires-in", time.Hour, "access token lifetime, 0 for no expiry")

	cmd.AddCommand(login)

	cmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Remove the stored sync account token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx, xslog.NewLoggerFromEnv(os.Stderr))
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.tokens.Clear(ctx); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Sync account removed")
			return nil
		},
	})

	return cmd
}
