package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupWithWriterLevels(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		logger := SetupWithWriter(tt.in, false, &bytes.Buffer{})
		if got := logger.GetLevel(); got != tt.want {
			t.Errorf("SetupWithWriter(%q) level = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestComponentTagsEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(SetupWithWriter("info", false, &buf), "pacer")
	logger.Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "pacer" {
		t.Errorf("component = %v, want pacer", entry["component"])
	}
	if entry["message"] != "hello" {
		t.Errorf("message = %v, want hello", entry["message"])
	}
}
