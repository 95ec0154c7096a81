package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ibeckermayer/xbot/internal/types"
)

// ExportProfiles writes profiles as indented JSON to a timestamped file in
// dir and returns its path.
func ExportProfiles(dir string, source types.Source, profiles []types.Profile) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	prefix := "profiles"
	if source != "" {
		prefix = string(source)
	}
	// dashes instead of colons keep the name valid on every filesystem
	filename := prefix + "-" + time.Now().Format("2006-01-02T15-04-05") + ".json"
	path := filepath.Join(dir, filename)

	if profiles == nil {
		profiles = []types.Profile{}
	}
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal profiles: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
