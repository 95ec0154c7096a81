package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ibeckermayer/xbot/internal/config"
)

var followCmd = &cobra.Command{
	Use:   "follow",
	Short: "Follow accounts matching the configured keywords at a paced rate",
	Long:  "Runs the paced auto-follow loop in the foreground until interrupted. Flags override the [follow] section of the config for this run.",
	Example: `  xbot follow
  xbot follow --total 100 --batch 10 --window 24h`,
	Args: cobra.NoArgs,
	RunE: runFollow,
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the batch schedule the follow settings produce",
	Example: `  xbot plan --total 60 --batch 5 --window 12h
  xbot plan --per-item 30s`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

var unfollowCmd = &cobra.Command{
	Use:   "unfollow <count>",
	Short: "Unfollow accounts from the top of your following list",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnfollow,
}

func init() {
	addPlanFlags(followCmd.Flags())
	addPlanFlags(planCmd.Flags())
	followCmd.Flags().StringSlice("keywords", nil, "override follow.keywords")
	rootCmd.AddCommand(followCmd, planCmd, unfollowCmd)
}

func addPlanFlags(fs *pflag.FlagSet) {
	fs.Int("total", 0, "accounts to follow per window")
	fs.Int("batch", 0, "accounts per batch")
	fs.Duration("window", 0, "length of one window")
	fs.Duration("per-item", 0, "expected time per follow")
	fs.Duration("min-rest", 0, "shortest allowed rest between batches")
}

// applyPlanFlags copies explicitly set flags over the follow config.
func applyPlanFlags(fs *pflag.FlagSet, follow *config.FollowConfig) error {
	var errs []error
	intFlag := func(name string, dst *int) {
		if fs.Changed(name) {
			v, err := fs.GetInt(name)
			errs = append(errs, err)
			*dst = v
		}
	}
	durFlag := func(name string, dst *config.Duration) {
		if fs.Changed(name) {
			v, err := fs.GetDuration(name)
			errs = append(errs, err)
			*dst = config.Duration(v)
		}
	}
	intFlag("total", &follow.TotalCount)
	intFlag("batch", &follow.BatchSize)
	durFlag("window", &follow.Window)
	durFlag("per-item", &follow.PerItem)
	durFlag("min-rest", &follow.MinRest)

	if fs.Lookup("keywords") != nil && fs.Changed("keywords") {
		v, err := fs.GetStringSlice("keywords")
		errs = append(errs, err)
		follow.Keywords = v
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func runFollow(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if err := applyPlanFlags(cmd.Flags(), &cfg.Follow); err != nil {
		return err
	}
	a, cleanup, err := startApp(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer cleanup()

	return a.StartFollow(cmd.Context())
}

func runPlan(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if err := applyPlanFlags(cmd.Flags(), &cfg.Follow); err != nil {
		return err
	}
	return printPlan(cmd.OutOrStdout(), cfg.FollowPlan(), cfg.Follow.MinRest.Std())
}

func runUnfollow(cmd *cobra.Command, args []string) error {
	count, err := strconv.Atoi(args[0])
	if err != nil || count <= 0 {
		return fmt.Errorf("count must be a positive number, got %q", args[0])
	}
	if err := loadConfig(); err != nil {
		return err
	}
	a, cleanup, err := startApp(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer cleanup()

	start := time.Now()
	links, err := a.Unfollow(cmd.Context(), count)
	for _, link := range links {
		fmt.Fprintln(cmd.OutOrStdout(), link)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "unfollowed %d of %d in %s\n", len(links), count, time.Since(start).Round(time.Second))
	return err
}
