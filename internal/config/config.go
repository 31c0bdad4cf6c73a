package config

const (
	// Log defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Walk defaults
	DefaultMaxCommits = 0 // unbounded
	DefaultMaxAgeDays = 0 // unbounded

	// Diff defaults
	DefaultRenameSimilarity = 0.5
	DefaultMaxFileSizeMB    = 10

	// Entropy defaults
	DefaultMinTokenLength   = 20
	DefaultBase64Threshold  = 4.5
	DefaultHexThreshold     = 3.0
	Base64Charset           = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/="
	HexCharset              = "1234567890abcdefABCDEF"
	DefaultUUIDDenyPattern  = `^[0-9a-fA-F]{8}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{12}$`

	// Scanner defaults
	DefaultWorkers   = 8
	DefaultQueueSize = 256
)

// GlobalConfig aggregates configuration for every component of a scan.
type GlobalConfig struct {
	LogConfig      LogConfig      `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	RepoConfig     RepoConfig     `json:"repo_config,omitempty" yaml:"repo_config,omitempty"`
	WalkConfig     WalkConfig     `json:"walk_config,omitempty" yaml:"walk_config,omitempty"`
	DiffConfig     DiffConfig     `json:"diff_config,omitempty" yaml:"diff_config,omitempty"`
	DetectorConfig DetectorConfig `json:"detector_config,omitempty" yaml:"detector_config,omitempty"`
	ArtifactConfig ArtifactConfig `json:"artifact_config,omitempty" yaml:"artifact_config,omitempty"`
	ScannerConfig  ScannerConfig  `json:"scanner_config,omitempty" yaml:"scanner_config,omitempty"`
	ReporterConfig ReporterConfig `json:"reporter_config,omitempty" yaml:"reporter_config,omitempty"`
}

// NewDefaultGlobalConfig creates a GlobalConfig populated with defaults.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:      NewDefaultLogConfig(),
		RepoConfig:     NewDefaultRepoConfig(),
		WalkConfig:     NewDefaultWalkConfig(),
		DiffConfig:     NewDefaultDiffConfig(),
		DetectorConfig: NewDefaultDetectorConfig(),
		ArtifactConfig: NewDefaultArtifactConfig(),
		ScannerConfig:  NewDefaultScannerConfig(),
		ReporterConfig: NewDefaultReporterConfig(),
	}
}
