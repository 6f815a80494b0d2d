package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FileName is the configuration document inside the config directory.
	FileName = "llm-config.json"
	// PathEnv overrides the resolved location. A value naming an existing
	// directory gets FileName appended, anything else is the literal file
	// path.
	PathEnv = "DLAI_CONFIG_PATH"
)

func ResolvePath() (string, error) {
	if override := os.Getenv(PathEnv); override != "" {
		if info, err := os.Stat(override); err == nil && info.IsDir() {
			return filepath.Join(override, FileName), nil
		}
		return override, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, ".dlai", FileName), nil
}
