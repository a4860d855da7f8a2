package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/garrettladley/liftoff/internal/client/github"
	"github.com/garrettladley/liftoff/internal/version"
)

func upgradeCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Check for updates and install if available",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			currentVersion := version.Get()

			client := github.NewClient()
			latest, newer, err := client.CheckForUpdate(ctx, github.LiftoffRepo, currentVersion)
			if err != nil {
				return fmt.Errorf("failed to check for updates: %w", err)
			}

			if !newer {
				fmt.Printf("liftoff is up to date (%s)\n", currentVersion)
				return nil
			}

			if check {
				fmt.Printf("liftoff %s is available: %s\n", latest.TagName, latest.HTMLURL)
				return nil
			}

			fmt.Printf("Updating liftoff %s → %s\n", currentVersion, latest.TagName)
			return goInstallUpgrade(ctx)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "only report whether an update is available")

	return cmd
}

func goInstallUpgrade(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "go", "install", "github.com/garrettladley/liftoff/cmd/liftoff@latest")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("upgrade failed: %w", err)
	}
	fmt.Println("Successfully updated!")
	return nil
}
