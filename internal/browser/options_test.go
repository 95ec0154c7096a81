package browser

import (
	"testing"

	"github.com/ibeckermayer/xbot/internal/config"
)

func TestOptionsAddsProfileFlags(t *testing.T) {
	base := len(Options(config.BrowserConfig{Headless: true}))

	tests := []struct {
		name  string
		cfg   config.BrowserConfig
		extra int
	}{
		{"headless only", config.BrowserConfig{Headless: true}, 0},
		{"exec path", config.BrowserConfig{Headless: true, ExecPath: "/usr/bin/chromium"}, 1},
		{"user data dir with profile", config.BrowserConfig{Headless: true, UserDataDir: "/tmp/ud", ProfileDirectory: "Profile 1"}, 2},
		{"profile without data dir is ignored", config.BrowserConfig{Headless: true, ProfileDirectory: "Profile 1"}, 0},
		{"debugging port", config.BrowserConfig{Headless: true, DebuggingPort: 9223}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := len(Options(tt.cfg))
			if got != base+tt.extra {
				t.Errorf("len(Options()) = %d, want %d", got, base+tt.extra)
			}
		})
	}
}
