package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/ibeckermayer/xbot/internal/pacer"
)

// Config holds all application configuration
type Config struct {
	Version  int            `toml:"version"`
	Account  AccountConfig  `toml:"account"`
	Browser  BrowserConfig  `toml:"browser"`
	Follow   FollowConfig   `toml:"follow"`
	Engage   EngageConfig   `toml:"engage"`
	Schedule ScheduleConfig `toml:"schedule"`
	Store    StoreConfig    `toml:"store"`
	Status   StatusConfig   `toml:"status"`
	Log      LogConfig      `toml:"log"`
}

// AccountConfig identifies the X account. The password is never written
// to the config file; it comes from XBOT_PASSWORD (usually via .env).
type AccountConfig struct {
	Username string `toml:"username"`
	Email    string `toml:"email"`
	Password string `toml:"-"`
}

type BrowserConfig struct {
	Headless         bool     `toml:"headless"`
	ExecPath         string   `toml:"exec_path"`
	UserDataDir      string   `toml:"user_data_dir"`
	ProfileDirectory string   `toml:"profile_directory"`
	DebuggingPort    int      `toml:"debugging_port"`
	PageTimeout      Duration `toml:"page_timeout"`
	ActionSpacing    Duration `toml:"action_spacing"`
	ActionJitter     Duration `toml:"action_jitter"`
}

// FollowConfig is the auto-follow budget: TotalCount follows per Window,
// BatchSize at a time.
type FollowConfig struct {
	Keywords   []string `toml:"keywords"`
	TotalCount int      `toml:"total_count"`
	BatchSize  int      `toml:"batch_size"`
	Window     Duration `toml:"window"`
	PerItem    Duration `toml:"per_item"`
	MinRest    Duration `toml:"min_rest"`
	ConnectURL string   `toml:"connect_url"`
}

type EngageConfig struct {
	ReplyText        string   `toml:"reply_text"`
	IncludeFollowing bool     `toml:"include_following"`
	RetryDelay       Duration `toml:"retry_delay"`
	RateLimitWait    Duration `toml:"rate_limit_wait"`
}

type ScheduleConfig struct {
	Timezone         string   `toml:"timezone"`
	RefreshFollowing string   `toml:"refresh_following"`
	JobTimeout       Duration `toml:"job_timeout"`
}

type StoreConfig struct {
	Path string `toml:"path"`
}

type StatusConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Version: 1,
		Browser: BrowserConfig{
			Headless:         false,
			ProfileDirectory: "Default",
			DebuggingPort:    9223,
			PageTimeout:      Duration(10 * time.Second),
			ActionSpacing:    Duration(time.Second),
			ActionJitter:     Duration(1500 * time.Millisecond),
		},
		Follow: FollowConfig{
			Keywords:   []string{},
			TotalCount: 50,
			BatchSize:  5,
			Window:     Duration(24 * time.Hour),
			PerItem:    Duration(65 * time.Second / 5),
			MinRest:    Duration(pacer.DefaultMinRest),
			ConnectURL: "https://x.com/i/connect_people",
		},
		Engage: EngageConfig{
			IncludeFollowing: true,
			RetryDelay:       Duration(5 * time.Second),
			RateLimitWait:    Duration(2 * time.Minute),
		},
		Schedule: ScheduleConfig{
			Timezone:         "UTC",
			RefreshFollowing: "0 */6 * * *",
			JobTimeout:       Duration(30 * time.Minute),
		},
		Status: StatusConfig{
			Enabled: true,
			Addr:    "127.0.0.1:9321",
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// FollowPlan converts the follow budget into a pacing plan.
func (c *Config) FollowPlan() pacer.Plan {
	return pacer.Plan{
		TotalCount: c.Follow.TotalCount,
		BatchSize:  c.Follow.BatchSize,
		Window:     c.Follow.Window.Std(),
		PerItem:    c.Follow.PerItem.Std(),
	}
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error

	if c.Follow.TotalCount <= 0 {
		errs = append(errs, fmt.Errorf("follow.total_count must be positive, got %d", c.Follow.TotalCount))
	}
	if c.Follow.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("follow.batch_size must be positive, got %d", c.Follow.BatchSize))
	}
	if c.Follow.Window <= 0 {
		errs = append(errs, fmt.Errorf("follow.window must be positive, got %s", c.Follow.Window.Std()))
	}
	if c.Follow.PerItem < 0 {
		errs = append(errs, fmt.Errorf("follow.per_item must not be negative, got %s", c.Follow.PerItem.Std()))
	}
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("schedule.timezone %q: %w", c.Schedule.Timezone, err))
	}
	if c.Status.Enabled && c.Status.Addr == "" {
		errs = append(errs, errors.New("status.addr is required when the status server is enabled"))
	}
	if c.Browser.PageTimeout <= 0 {
		errs = append(errs, errors.New("browser.page_timeout must be positive"))
	}

	return errors.Join(errs...)
}

// ConfigDir returns the platform-appropriate config directory
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "xbot"), nil
}

// ConfigPath returns the full path to the config file. XBOT_CONFIG
// overrides the default location.
func ConfigPath() (string, error) {
	if p := os.Getenv("XBOT_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// StorePath returns the database location, defaulting to the config dir.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "xbot.db"), nil
}

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads config from the default path.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads config from path on top of the defaults, then applies
// environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays secrets and machine-specific paths from the environment.
func (c *Config) applyEnv() {
	setString(&c.Account.Username, "XBOT_USERNAME")
	setString(&c.Account.Email, "XBOT_EMAIL")
	setString(&c.Account.Password, "XBOT_PASSWORD")
	setString(&c.Browser.ExecPath, "XBOT_CHROME_PATH")
	setString(&c.Browser.UserDataDir, "XBOT_USER_DATA_DIR")
	setString(&c.Store.Path, "XBOT_STORE_PATH")
	setString(&c.Log.Level, "XBOT_LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Save writes config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes config to path, creating the directory if needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
