package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var purgeLimit int

var purgeCmd = &cobra.Command{
	Use:   "purge <replies|likes>",
	Short: "Delete the account's replies or remove its likes",
	Long:  "Walks the account's Replies or Likes tab and deletes every reply or unlikes every post, newest first. Stored interaction history is kept.",
	Example: `  xbot purge replies
  xbot purge likes --limit 50`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"replies", "likes"},
	RunE:      runPurge,
}

func init() {
	purgeCmd.Flags().IntVarP(&purgeLimit, "limit", "n", 0, "stop after this many (0 for all)")
	rootCmd.AddCommand(purgeCmd)
}

func runPurge(cmd *cobra.Command, args []string) error {
	if purgeLimit < 0 {
		return fmt.Errorf("--limit must not be negative, got %d", purgeLimit)
	}
	if err := loadConfig(); err != nil {
		return err
	}
	a, cleanup, err := startApp(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if args[0] == "likes" {
		n, err := a.DeleteLikes(ctx, purgeLimit)
		fmt.Fprintf(cmd.OutOrStdout(), "unliked %d posts\n", n)
		return err
	}
	n, err := a.DeleteReplies(ctx, purgeLimit)
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %d replies\n", n)
	return err
}
