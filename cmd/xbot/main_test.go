package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/ibeckermayer/xbot/internal/config"
	"github.com/ibeckermayer/xbot/internal/pacer"
	"github.com/ibeckermayer/xbot/internal/types"
)

func TestLoadConfigFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xbot", "config.toml")
	configPath = path
	t.Cleanup(func() { configPath, cfg = "", nil })

	if err := loadConfig(); err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if cfg.Follow.BatchSize != config.Default().Follow.BatchSize {
		t.Errorf("Follow.BatchSize = %d, want default %d", cfg.Follow.BatchSize, config.Default().Follow.BatchSize)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	bad := config.Default()
	bad.Follow.TotalCount = 0
	if err := bad.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	configPath = path
	t.Cleanup(func() { configPath, cfg = "", nil })

	err := loadConfig()
	if err == nil || !strings.Contains(err.Error(), "follow.total_count") {
		t.Errorf("loadConfig() error = %v, want follow.total_count error", err)
	}
}

func TestApplyPlanFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addPlanFlags(fs)
	fs.StringSlice("keywords", nil, "")
	if err := fs.Parse([]string{"--batch", "10", "--window", "12h", "--keywords", "go,rust"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	follow := config.Default().Follow
	if err := applyPlanFlags(fs, &follow); err != nil {
		t.Fatalf("applyPlanFlags() error = %v", err)
	}
	if follow.BatchSize != 10 {
		t.Errorf("BatchSize = %d, want 10", follow.BatchSize)
	}
	if follow.Window.Std() != 12*time.Hour {
		t.Errorf("Window = %s, want 12h", follow.Window.Std())
	}
	if follow.TotalCount != config.Default().Follow.TotalCount {
		t.Errorf("TotalCount = %d, want unchanged %d", follow.TotalCount, config.Default().Follow.TotalCount)
	}
	if strings.Join(follow.Keywords, ",") != "go,rust" {
		t.Errorf("Keywords = %v, want [go rust]", follow.Keywords)
	}
}

func TestPrintPlan(t *testing.T) {
	tests := []struct {
		name    string
		plan    pacer.Plan
		want    []string
		wantErr error
	}{
		{
			name: "daily budget",
			plan: pacer.Plan{TotalCount: 50, BatchSize: 5, Window: 24 * time.Hour, PerItem: 13 * time.Second},
			want: []string{"10 of 5", "1m5s", "2h22m55s"},
		},
		{
			name:    "window too short",
			plan:    pacer.Plan{TotalCount: 100, BatchSize: 5, Window: 10 * time.Minute, PerItem: time.Second},
			wantErr: pacer.ErrIntervalTooShort,
		},
		{
			name:    "zero batch",
			plan:    pacer.Plan{TotalCount: 10, Window: time.Hour},
			wantErr: pacer.ErrInvalidPlan,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := printPlan(&buf, tt.plan, pacer.DefaultMinRest)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("printPlan() error = %v, want %v", err, tt.wantErr)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("printPlan() output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}
}

func TestPrintProfiles(t *testing.T) {
	var buf bytes.Buffer
	if err := printProfiles(&buf, nil); err != nil {
		t.Fatalf("printProfiles() error = %v", err)
	}
	if got := buf.String(); got != "no profiles\n" {
		t.Errorf("printProfiles(nil) = %q, want %q", got, "no profiles\n")
	}

	buf.Reset()
	profiles := []types.Profile{{Username: "golang", Name: "Go", FollowersCount: 1200, Reply: true}}
	if err := printProfiles(&buf, profiles); err != nil {
		t.Fatalf("printProfiles() error = %v", err)
	}
	if !strings.Contains(buf.String(), "@golang") || !strings.Contains(buf.String(), "1200") {
		t.Errorf("printProfiles() = %q", buf.String())
	}
}

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"on", true, false},
		{"off", false, false},
		{"true", true, false},
		{"0", false, false},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		got, err := parseSwitch(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSwitch(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSwitch(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
