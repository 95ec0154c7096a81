// Package browser provides shared chromedp configuration for every browser
// the bot starts.
package browser

import (
	"strconv"

	"github.com/chromedp/chromedp"

	"github.com/ibeckermayer/xbot/internal/config"
)

// DefaultUserAgent is a realistic Chrome user agent
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Options returns chromedp allocator options for cfg. Automation and
// interactive login both go through here so they share one Chrome profile
// when UserDataDir is set.
func Options(cfg config.BrowserConfig) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),

		// X.com checks navigator.webdriver
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(DefaultUserAgent),
		chromedp.WindowSize(1920, 1080),

		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)

	if cfg.Headless {
		opts = append(opts, chromedp.Flag("disable-gpu", true))
	} else {
		opts = append(opts, chromedp.Flag("start-maximized", true))
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	if cfg.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(cfg.UserDataDir))
		if cfg.ProfileDirectory != "" {
			opts = append(opts, chromedp.Flag("profile-directory", cfg.ProfileDirectory))
		}
	}
	if cfg.DebuggingPort > 0 {
		opts = append(opts, chromedp.Flag("remote-debugging-port", strconv.Itoa(cfg.DebuggingPort)))
	}

	return opts
}

// Interactive returns Options for a visible window, whatever cfg says.
func Interactive(cfg config.BrowserConfig) []chromedp.ExecAllocatorOption {
	cfg.Headless = false
	return Options(cfg)
}
