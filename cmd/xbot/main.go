// Command xbot automates an X account: paced keyword follows, likes and
// replies on target profiles, and a scheduled refresh of the following
// list.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ibeckermayer/xbot/internal/config"
	"github.com/ibeckermayer/xbot/internal/logging"
)

var (
	logger zerolog.Logger
	cfg    *config.Config

	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:          "xbot",
	Short:        "X.com automation: paced follows, likes and replies",
	Long:         "xbot drives a Chrome session to follow accounts matching keywords at a paced rate, like and reply to the latest posts of target profiles, and keep the stored following list current.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is the user config dir, or $XBOT_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads .env and the config file (called by commands that need
// it). On first run the default config is written so it can be edited.
func loadConfig() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	loaded, err := config.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := config.Default().SaveTo(path); err != nil {
			return fmt.Errorf("create default config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "created default config at %s\n", path)
		loaded, err = config.LoadFile(path)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}

	cfg = loaded
	logger = logging.Setup(cfg.Log.Level, cfg.Log.Pretty)
	return nil
}

// resolveConfigPath returns --config or the default location.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	path, err := config.ConfigPath()
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}
