package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"depthcharge/internal/common/errorwrapper"
)

// Default locations searched when no config path is provided.
var defaultConfigPaths = []string{
	"depthcharge.yaml",
	"depthcharge.yml",
	"config/depthcharge.yaml",
}

// GetConfigPath resolves the effective config file path. An explicitly
// provided path wins; otherwise default locations are tried in order.
func GetConfigPath(providedPath string) string {
	if providedPath != "" {
		return providedPath
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadGlobalConfig loads configuration from a YAML or JSON file, layered on
// top of defaults. A missing provided path is an error; no path at all simply
// yields defaults.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read config file "+filePath)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".json":
		if err := json.Unmarshal(content, cfg); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to parse JSON config "+filePath)
		}
	default:
		if err := unmarshalYAML(content, cfg); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to parse YAML config "+filePath)
		}
	}

	return cfg, nil
}
