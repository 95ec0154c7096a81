package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[account]
username = "pacebot"

[follow]
keywords = ["golang", "rust"]
total_count = 10
batch_size = 5
window = "4m"
per_item = "1s"

[log]
level = "debug"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Account.Username != "pacebot" {
		t.Errorf("Account.Username = %q, want %q", cfg.Account.Username, "pacebot")
	}
	if got := strings.Join(cfg.Follow.Keywords, ","); got != "golang,rust" {
		t.Errorf("Follow.Keywords = %q, want %q", got, "golang,rust")
	}
	if cfg.Follow.Window.Std() != 4*time.Minute {
		t.Errorf("Follow.Window = %v, want 4m", cfg.Follow.Window.Std())
	}
	if cfg.Follow.PerItem.Std() != time.Second {
		t.Errorf("Follow.PerItem = %v, want 1s", cfg.Follow.PerItem.Std())
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	// untouched sections keep their defaults
	if cfg.Status.Addr != Default().Status.Addr {
		t.Errorf("Status.Addr = %q, want default %q", cfg.Status.Addr, Default().Status.Addr)
	}
	if cfg.Follow.MinRest != Default().Follow.MinRest {
		t.Errorf("Follow.MinRest = %v, want default", cfg.Follow.MinRest.Std())
	}
}

func TestLoadFileRejectsBadDuration(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[follow]
window = "a day"
`)
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() error = nil, want duration parse error")
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadFile() error = %v, want fs.ErrNotExist", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[account]
username = "from-file"
`)
	t.Setenv("XBOT_USERNAME", "from-env")
	t.Setenv("XBOT_PASSWORD", "hunter2")
	t.Setenv("XBOT_STORE_PATH", "/tmp/xbot-test.db")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Account.Username != "from-env" {
		t.Errorf("Account.Username = %q, want from-env", cfg.Account.Username)
	}
	if cfg.Account.Password != "hunter2" {
		t.Errorf("Account.Password = %q, want hunter2", cfg.Account.Password)
	}
	got, err := cfg.StorePath()
	if err != nil {
		t.Fatalf("StorePath() error = %v", err)
	}
	if got != "/tmp/xbot-test.db" {
		t.Errorf("StorePath() = %q, want /tmp/xbot-test.db", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "XBOT_EMAIL=bot@example.com\nXBOT_USERNAME=dotenv\n")

	// already-set variables win over the file
	t.Setenv("XBOT_USERNAME", "shell")
	t.Setenv("XBOT_EMAIL", "")
	os.Unsetenv("XBOT_EMAIL")

	if err := LoadDotEnv(envPath, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("XBOT_EMAIL"); got != "bot@example.com" {
		t.Errorf("XBOT_EMAIL = %q, want bot@example.com", got)
	}
	if got := os.Getenv("XBOT_USERNAME"); got != "shell" {
		t.Errorf("XBOT_USERNAME = %q, want shell", got)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Account.Username = "pacebot"
	cfg.Account.Password = "secret"
	cfg.Follow.Window = Duration(90 * time.Minute)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if strings.Contains(string(raw), "secret") {
		t.Error("saved config contains the password")
	}
	if !strings.Contains(string(raw), `window = "1h30m0s"`) {
		t.Errorf("saved config missing window duration string:\n%s", raw)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.Follow.Window != cfg.Follow.Window {
		t.Errorf("Follow.Window = %v, want %v", loaded.Follow.Window.Std(), cfg.Follow.Window.Std())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero batch size", func(c *Config) { c.Follow.BatchSize = 0 }, "follow.batch_size"},
		{"zero total", func(c *Config) { c.Follow.TotalCount = 0 }, "follow.total_count"},
		{"zero window", func(c *Config) { c.Follow.Window = 0 }, "follow.window"},
		{"negative per item", func(c *Config) { c.Follow.PerItem = Duration(-time.Second) }, "follow.per_item"},
		{"bad timezone", func(c *Config) { c.Schedule.Timezone = "Mars/Olympus" }, "schedule.timezone"},
		{"status without addr", func(c *Config) { c.Status.Addr = "" }, "status.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestFollowPlan(t *testing.T) {
	cfg := Default()
	cfg.Follow.TotalCount = 10
	cfg.Follow.BatchSize = 5
	cfg.Follow.Window = Duration(240 * time.Second)
	cfg.Follow.PerItem = Duration(time.Second)

	plan := cfg.FollowPlan()
	if plan.TotalCount != 10 || plan.BatchSize != 5 {
		t.Errorf("FollowPlan() counts = %d/%d, want 10/5", plan.TotalCount, plan.BatchSize)
	}
	if plan.Window != 240*time.Second || plan.PerItem != time.Second {
		t.Errorf("FollowPlan() durations = %v/%v, want 4m0s/1s", plan.Window, plan.PerItem)
	}
}
