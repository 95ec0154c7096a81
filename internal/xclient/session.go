// Package xclient drives X.com through a Chrome instance controlled over
// the DevTools protocol.
package xclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/ibeckermayer/xbot/internal/browser"
	"github.com/ibeckermayer/xbot/internal/config"
)

// Session owns one Chrome process. Each Controller it hands out drives its
// own tab, so the follow and engage loops can run side by side.
type Session struct {
	cfg    config.BrowserConfig
	logger zerolog.Logger
	spacer *spacer

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	tabs   int
	closed bool
}

// NewSession starts Chrome with the shared browser options, injects
// cookies and loads the home timeline in the first tab.
func NewSession(ctx context.Context, cfg config.BrowserConfig, cookies []*network.Cookie, logger zerolog.Logger) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, browser.Options(cfg)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		cfg:           cfg,
		logger:        logger,
		spacer:        newSpacer(cfg.ActionSpacing.Std(), cfg.ActionJitter.Std()),
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}

	// first Run starts the browser
	if err := chromedp.Run(browserCtx, injectCookies(cookies)); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to inject cookies: %w", err)
	}
	if err := chromedp.Run(browserCtx, chromedp.Navigate("https://x.com/home")); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to open x.com: %w", err)
	}

	logger.Info().Bool("headless", cfg.Headless).Int("cookies", len(cookies)).Msg("browser session started")
	return s, nil
}

// Controller returns a controller for the session's first tab.
func (s *Session) Controller() *Controller {
	return newController(s.browserCtx, s.cfg, s.spacer, s.logger.With().Int("tab", 0).Logger())
}

// NewTab opens another tab sharing the session cookies. The returned
// func closes the tab.
func (s *Session) NewTab(ctx context.Context) (*Controller, func(), error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, nil, fmt.Errorf("session closed")
	}
	s.tabs++
	tab := s.tabs
	s.mu.Unlock()

	tabCtx, cancel := chromedp.NewContext(s.browserCtx)
	if err := chromedp.Run(tabCtx, chromedp.Navigate("https://x.com/home")); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to open tab: %w", err)
	}
	if err := ctx.Err(); err != nil {
		cancel()
		return nil, nil, err
	}

	s.logger.Debug().Int("tab", tab).Msg("tab opened")
	c := newController(tabCtx, s.cfg, s.spacer, s.logger.With().Int("tab", tab).Logger())
	return c, cancel, nil
}

// Close shuts the browser down. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.browserCancel()
	s.allocCancel()
	s.logger.Info().Msg("browser session closed")
}

// Cookies returns the browser's current cookies.
func (s *Session) Cookies(ctx context.Context) ([]*network.Cookie, error) {
	var cookies []*network.Cookie
	err := s.Controller().run(ctx, 0, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = storage.GetCookies().Do(ctx)
		return err
	}))
	return cookies, err
}

// injectCookies sets cookies in the browser context
func injectCookies(cookies []*network.Cookie) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		for _, c := range cookies {
			err := network.SetCookie(c.Name, c.Value).
				WithDomain(c.Domain).
				WithPath(c.Path).
				WithSecure(c.Secure).
				WithHTTPOnly(c.HTTPOnly).
				WithSameSite(c.SameSite).
				Do(ctx)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
