package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ibeckermayer/xbot/internal/app"
	"github.com/ibeckermayer/xbot/internal/logging"
	"github.com/ibeckermayer/xbot/internal/metrics"
	"github.com/ibeckermayer/xbot/internal/statusapi"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run everything: scheduled refresh, engagement, auto-follow and the status API",
	Long:  "Runs the daemon until interrupted. SIGHUP reloads the config file; processes pick up the new settings the next time they start.",
	Args:  cobra.NoArgs,
	RunE:  runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	ctx := cmd.Context()

	m := metrics.New()
	a, cleanup, err := startApp(ctx, m)
	if err != nil {
		return err
	}
	defer cleanup()

	servers := []func(context.Context) error{reloadOnHangup(a)}
	if cfg.Status.Enabled {
		srv := statusapi.New(cfg.Status.Addr, a, m, logging.Component(logger, "statusapi"))
		servers = append(servers, srv.Run)
	}

	logger.Info().Str("account", cfg.Account.Username).Msg("xbot starting")
	return a.Daemon(ctx, servers...)
}

// reloadOnHangup reloads the config file on every SIGHUP until ctx is done.
func reloadOnHangup(a *app.App) func(context.Context) error {
	return func(ctx context.Context) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}

		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-hup:
				if err := a.ReloadConfig(path); err != nil {
					logger.Error().Err(err).Str("path", path).Msg("config reload failed")
				}
			}
		}
	}
}
