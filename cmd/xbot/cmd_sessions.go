package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Show recent auto-follow sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 10, "sessions to show")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	sessions, err := st.ListSessions(ctx, sessionsLimit)
	if err != nil {
		return err
	}
	if err := printSessions(cmd.OutOrStdout(), sessions); err != nil {
		return err
	}

	window := cfg.Follow.Window.Std()
	n, err := st.CountFollowsSince(ctx, time.Now().Add(-window))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nfollowed in the last %s: %d of %d\n", window, n, cfg.Follow.TotalCount)
	return nil
}
