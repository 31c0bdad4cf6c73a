package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	assert.Equal(t, DefaultLogLevel, cfg.LogConfig.LogLevel)
	assert.True(t, cfg.WalkConfig.FirstParentOnly)
	assert.Equal(t, DefaultMinTokenLength, cfg.DetectorConfig.Entropy.MinTokenLength)
	assert.True(t, cfg.DetectorConfig.UseDefaultSignatures)
	assert.True(t, cfg.ArtifactConfig.Enabled)
	assert.Contains(t, cfg.ArtifactConfig.PathPatterns, "*.pyc")
	require.NoError(t, ValidateConfig(cfg))
}

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadGlobalConfig_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, "depthcharge.yaml", `
log_config:
  log_level: debug
walk_config:
  max_commits: 500
  first_parent_only: false
detector_config:
  entropy:
    enabled: true
    min_token_length: 16
    charsets:
      - name: base64
        chars: "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/="
        threshold: 4.0
  use_default_signatures: true
scanner_config:
  workers: 4
  max_findings: 100
`)

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, 500, cfg.WalkConfig.MaxCommits)
	assert.False(t, cfg.WalkConfig.FirstParentOnly)
	assert.Equal(t, 16, cfg.DetectorConfig.Entropy.MinTokenLength)
	assert.Equal(t, 4.0, cfg.DetectorConfig.Entropy.Charsets[0].Threshold)
	assert.Equal(t, 4, cfg.ScannerConfig.Workers)
	assert.Equal(t, 100, cfg.ScannerConfig.MaxFindings)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultRenameSimilarity, cfg.DiffConfig.RenameSimilarity)
}

func TestLoadGlobalConfig_JSON(t *testing.T) {
	path := writeConfigFile(t, "depthcharge.json", `{"scanner_config": {"workers": 2}}`)
	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.ScannerConfig.Workers)
}

func TestLoadGlobalConfig_NoPathYieldsDefaults(t *testing.T) {
	cfg, err := LoadGlobalConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultWorkers, cfg.ScannerConfig.Workers)
}

func TestLoadGlobalConfig_MissingFileIsError(t *testing.T) {
	_, err := LoadGlobalConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadGlobalConfig_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "bad.yaml", "log_config: [not: a: mapping")
	_, err := LoadGlobalConfig(path)
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GlobalConfig)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(*GlobalConfig) {},
		},
		{
			name:    "bad log level",
			mutate:  func(c *GlobalConfig) { c.LogConfig.LogLevel = "verbose" },
			wantErr: true,
		},
		{
			name:    "bad report format",
			mutate:  func(c *GlobalConfig) { c.ReporterConfig.Format = "xml" },
			wantErr: true,
		},
		{
			name: "path and url are mutually exclusive",
			mutate: func(c *GlobalConfig) {
				c.RepoConfig.Path = "/tmp/repo"
				c.RepoConfig.URL = "https://github.com/owner/name"
			},
			wantErr: true,
		},
		{
			name: "entropy enabled without charsets",
			mutate: func(c *GlobalConfig) {
				c.DetectorConfig.Entropy.Charsets = nil
			},
			wantErr: true,
		},
		{
			name: "entropy disabled without charsets is fine",
			mutate: func(c *GlobalConfig) {
				c.DetectorConfig.Entropy.Enabled = false
				c.DetectorConfig.Entropy.Charsets = nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
