package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/ibeckermayer/xbot/internal/browser"
	"github.com/ibeckermayer/xbot/internal/config"
)

// ErrLoginTimeout is returned when the user does not finish logging in.
var ErrLoginTimeout = errors.New("login timeout exceeded")

// LoginTimeout bounds how long Login waits for the user.
const LoginTimeout = 5 * time.Minute

// Manager handles X.com authentication
type Manager struct {
	cookieStore *CookieStore
	browserCfg  config.BrowserConfig
	logger      zerolog.Logger
}

// NewManager creates a new auth manager
func NewManager(cookieStore *CookieStore, browserCfg config.BrowserConfig, logger zerolog.Logger) *Manager {
	return &Manager{
		cookieStore: cookieStore,
		browserCfg:  browserCfg,
		logger:      logger,
	}
}

// IsAuthenticated checks if we have valid stored credentials
func (m *Manager) IsAuthenticated() bool {
	return m.cookieStore.Valid()
}

// Login opens a visible browser on the X login page, waits for the user
// to reach the home timeline and saves the session cookies.
func (m *Manager) Login(ctx context.Context) error {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, browser.Interactive(m.browserCfg)...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if err := chromedp.Run(browserCtx, chromedp.Navigate("https://x.com/login")); err != nil {
		return fmt.Errorf("failed to navigate to login page: %w", err)
	}
	m.logger.Info().Dur("timeout", LoginTimeout).Msg("waiting for login in browser window")

	if err := m.waitForLogin(browserCtx); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cookies, err := extractCookies(browserCtx)
	if err != nil {
		return fmt.Errorf("failed to extract cookies: %w", err)
	}

	if err := m.cookieStore.Save(cookies); err != nil {
		return fmt.Errorf("failed to save cookies: %w", err)
	}
	m.logger.Info().Int("cookies", len(cookies)).Str("path", m.cookieStore.Path()).Msg("session saved")
	return nil
}

// waitForLogin polls until the browser is on the home timeline with an
// auth_token cookie set.
func (m *Manager) waitForLogin(ctx context.Context) error {
	timeout := time.After(LoginTimeout)
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			return ErrLoginTimeout
		case <-ticker.C:
			var url string
			if err := chromedp.Run(ctx, chromedp.Location(&url)); err != nil {
				continue
			}
			if !IsHomeURL(url) {
				continue
			}
			cookies, err := extractCookies(ctx)
			if err != nil {
				continue
			}
			if HasAuthToken(cookies) {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// IsHomeURL reports whether url is the logged-in home timeline.
func IsHomeURL(url string) bool {
	return url == "https://x.com/home" || url == "https://twitter.com/home"
}

// HasAuthToken reports whether cookies carry a non-empty auth_token.
func HasAuthToken(cookies []*network.Cookie) bool {
	for _, c := range cookies {
		if c.Name == authTokenCookie && c.Value != "" {
			return true
		}
	}
	return false
}

// extractCookies gets all cookies from the browser
func extractCookies(ctx context.Context) ([]*network.Cookie, error) {
	var cookies []*network.Cookie

	err := chromedp.Run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			cookies, err = storage.GetCookies().Do(ctx)
			return err
		}),
	)

	return cookies, err
}

// SaveSession persists cookies taken from an automation browser after a
// credential sign-in.
func (m *Manager) SaveSession(cookies []*network.Cookie) error {
	if !HasAuthToken(cookies) {
		return errors.New("no auth_token cookie in session")
	}
	return m.cookieStore.Save(cookies)
}

// Logout clears stored credentials
func (m *Manager) Logout() error {
	return m.cookieStore.Clear()
}

// GetCookies returns the stored cookies for the automation browser. It
// returns nil without error when no session has been saved yet.
func (m *Manager) GetCookies() ([]*network.Cookie, error) {
	if !m.cookieStore.Valid() {
		return nil, nil
	}
	return m.cookieStore.XCookies()
}
