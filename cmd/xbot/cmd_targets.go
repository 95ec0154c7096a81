package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Manage profiles to like and reply to",
}

var targetsAddCmd = &cobra.Command{
	Use:     "add <username>...",
	Short:   "Add engagement targets",
	Example: "  xbot targets add @golang jack",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTargetsAdd,
}

var targetsRmCmd = &cobra.Command{
	Use:     "rm <username>...",
	Aliases: []string{"remove"},
	Short:   "Remove engagement targets",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTargetsRm,
}

var targetsLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List engagement targets",
	Args:    cobra.NoArgs,
	RunE:    runTargetsLs,
}

var targetsReplyCmd = &cobra.Command{
	Use:     "reply <username> <on|off>",
	Short:   "Turn replies to a target on or off",
	Example: "  xbot targets reply golang off",
	Args:    cobra.ExactArgs(2),
	RunE:    runTargetsReply,
}

func init() {
	targetsCmd.AddCommand(targetsAddCmd, targetsRmCmd, targetsLsCmd, targetsReplyCmd)
	rootCmd.AddCommand(targetsCmd)
}

func runTargetsAdd(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	a, cleanup, err := startApp(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, name := range args {
		p, err := a.AddTarget(cmd.Context(), name)
		if err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added @%s (%s)\n", p.Username, p.Link)
	}
	return nil
}

func runTargetsRm(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	a, cleanup, err := offlineApp()
	if err != nil {
		return err
	}
	defer cleanup()

	for _, name := range args {
		if err := a.RemoveTarget(cmd.Context(), name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", name)
	}
	return nil
}

func runTargetsLs(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	a, cleanup, err := offlineApp()
	if err != nil {
		return err
	}
	defer cleanup()

	targets, err := a.Targets(cmd.Context())
	if err != nil {
		return err
	}
	return printProfiles(cmd.OutOrStdout(), targets)
}

func runTargetsReply(cmd *cobra.Command, args []string) error {
	reply, err := parseSwitch(args[1])
	if err != nil {
		return err
	}
	if err := loadConfig(); err != nil {
		return err
	}
	a, cleanup, err := offlineApp()
	if err != nil {
		return err
	}
	defer cleanup()

	return a.SetTargetReply(cmd.Context(), args[0], reply)
}

// parseSwitch accepts on/off as well as anything strconv.ParseBool does.
func parseSwitch(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("want on or off, got %q", s)
	}
	return v, nil
}
