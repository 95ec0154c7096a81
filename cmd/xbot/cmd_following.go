package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ibeckermayer/xbot/internal/app"
	"github.com/ibeckermayer/xbot/internal/metrics"
	"github.com/ibeckermayer/xbot/internal/store"
	"github.com/ibeckermayer/xbot/internal/types"
)

var (
	followingOffline bool
	followingExport  string
)

var followingCmd = &cobra.Command{
	Use:   "following",
	Short: "Refresh and list the accounts you follow",
	Long:  "Scrapes the configured account's following list, stores new profiles, drops the ones no longer followed and prints the result.",
	Example: `  xbot following
  xbot following --offline --export ./exports`,
	Args: cobra.NoArgs,
	RunE: runFollowing,
}

func init() {
	followingCmd.Flags().BoolVar(&followingOffline, "offline", false, "list stored profiles without refreshing")
	followingCmd.Flags().StringVar(&followingExport, "export", "", "also write the list as JSON into this directory")
	rootCmd.AddCommand(followingCmd)
}

func runFollowing(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	ctx := cmd.Context()

	start := startApp
	if followingOffline {
		start = func(_ context.Context, _ *metrics.Metrics) (*app.App, func(), error) { return offlineApp() }
	}
	a, cleanup, err := start(ctx, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	if !followingOffline {
		added, err := a.RefreshFollowing(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d new profiles\n", added)
	}

	profiles, err := a.Following(ctx)
	if err != nil {
		return err
	}
	if err := printProfiles(cmd.OutOrStdout(), profiles); err != nil {
		return err
	}

	if followingExport != "" {
		path, err := store.ExportProfiles(followingExport, types.SourceFollowing, profiles)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", path)
	}
	return nil
}
