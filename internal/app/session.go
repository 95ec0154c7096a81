package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ibeckermayer/xbot/internal/auth"
	"github.com/ibeckermayer/xbot/internal/config"
	"github.com/ibeckermayer/xbot/internal/xclient"
)

// ErrNoCredentials is returned by Connect when there is neither a saved
// session nor a username and password to sign in with.
var ErrNoCredentials = errors.New("no saved session and no credentials; run `xbot login` or set XBOT_USERNAME and XBOT_PASSWORD")

// Connect starts the automation browser with the saved cookies. When
// credentials are configured it also makes sure the right account is
// signed in and saves the resulting session.
func Connect(ctx context.Context, cfg *config.Config, authManager *auth.Manager, logger zerolog.Logger) (*xclient.Session, error) {
	cookies, err := authManager.GetCookies()
	if err != nil {
		return nil, fmt.Errorf("load cookies: %w", err)
	}

	acct := cfg.Account
	canSignIn := acct.Username != "" && acct.Password != ""
	if cookies == nil && !canSignIn {
		return nil, ErrNoCredentials
	}

	sess, err := xclient.NewSession(ctx, cfg.Browser, cookies, logger)
	if err != nil {
		return nil, err
	}
	c := sess.Controller()

	if canSignIn {
		if err := c.SignIn(ctx, acct.Username, acct.Password, acct.Email); err != nil {
			sess.Close()
			return nil, fmt.Errorf("sign in: %w", err)
		}
		current, err := sess.Cookies(ctx)
		if err == nil {
			err = authManager.SaveSession(current)
		}
		if err != nil {
			logger.Warn().Err(err).Msg("failed to save session cookies")
		}
	}

	locked, err := c.AccountLocked(ctx)
	if err != nil {
		sess.Close()
		return nil, err
	}
	if locked {
		sess.Close()
		return nil, xclient.ErrAccountLocked
	}
	return sess, nil
}

// SessionTabs opens tabs of sess whose follow loop starts at connectURL.
func SessionTabs(sess *xclient.Session, connectURL string) TabOpener {
	return func(ctx context.Context) (Browser, func(), error) {
		c, closeTab, err := sess.NewTab(ctx)
		if err != nil {
			return nil, nil, err
		}
		if connectURL != "" {
			c.ConnectURL = connectURL
		}
		return c, closeTab, nil
	}
}
