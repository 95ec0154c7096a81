package main

import (
	"github.com/spf13/cobra"
)

var engageCmd = &cobra.Command{
	Use:   "engage",
	Short: "Like and reply to the latest posts of target profiles",
	Long:  "Visits every added target (and, with engage.include_following, every followed profile) in turn, likes the latest post and replies when enabled for that profile. Runs until interrupted.",
	Args:  cobra.NoArgs,
	RunE:  runEngage,
}

func init() {
	rootCmd.AddCommand(engageCmd)
}

func runEngage(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	a, cleanup, err := startApp(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer cleanup()

	return a.StartEngage(cmd.Context())
}
