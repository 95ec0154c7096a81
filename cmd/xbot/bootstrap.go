package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ibeckermayer/xbot/internal/app"
	"github.com/ibeckermayer/xbot/internal/auth"
	"github.com/ibeckermayer/xbot/internal/logging"
	"github.com/ibeckermayer/xbot/internal/metrics"
	"github.com/ibeckermayer/xbot/internal/store"
)

func openStore() (*store.Store, error) {
	path, err := cfg.StorePath()
	if err != nil {
		return nil, err
	}
	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func newAuthManager() (*auth.Manager, error) {
	path, err := auth.DefaultCookieStorePath()
	if err != nil {
		return nil, err
	}
	return auth.NewManager(auth.NewCookieStore(path), cfg.Browser, logging.Component(logger, "auth")), nil
}

// startApp opens the store and a signed-in browser session and builds the
// App on top of them. The returned func releases both.
func startApp(ctx context.Context, m *metrics.Metrics) (*app.App, func(), error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	authManager, err := newAuthManager()
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	sess, err := app.Connect(ctx, cfg, authManager, logging.Component(logger, "xclient"))
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	opts := []app.Option{app.WithLogger(logger)}
	if m != nil {
		opts = append(opts, app.WithMetrics(m))
	}
	a := app.New(cfg, st, app.SessionTabs(sess, cfg.Follow.ConnectURL), opts...)

	cleanup := func() {
		sess.Close()
		if err := st.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close store")
		}
	}
	return a, cleanup, nil
}

// errNoBrowser is returned by offline apps when an operation needs a tab.
var errNoBrowser = errors.New("command runs without a browser session")

// offlineApp builds an App over the store only, for commands that never
// touch the browser.
func offlineApp() (*app.App, func(), error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	noTabs := func(context.Context) (app.Browser, func(), error) {
		return nil, nil, errNoBrowser
	}
	a := app.New(cfg, st, noTabs, app.WithLogger(logger))
	return a, func() { st.Close() }, nil
}
