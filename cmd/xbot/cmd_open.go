package main

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:       "open <config|data>",
	Short:     "Open the config file or the data directory",
	Example:   "  xbot open config",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"config", "data"},
	RunE:      runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	var path string
	switch args[0] {
	case "config":
		p, err := resolveConfigPath()
		if err != nil {
			return err
		}
		path = p
	case "data":
		p, err := cfg.StorePath()
		if err != nil {
			return err
		}
		path = filepath.Dir(p)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "opening %s\n", path)
	return browser.OpenFile(path)
}
