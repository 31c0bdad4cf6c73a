package config

// ScannerConfig controls concurrency and scan budgets.
type ScannerConfig struct {
	// Workers is the number of concurrent diff/detector workers.
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty" validate:"min=0"`
	// QueueSize bounds the edge task queue; the walker blocks once full.
	QueueSize int `json:"queue_size,omitempty" yaml:"queue_size,omitempty" validate:"min=0"`
	// MaxFindings stops the scan once this many findings were collected.
	// Zero means unbounded.
	MaxFindings int `json:"max_findings,omitempty" yaml:"max_findings,omitempty" validate:"min=0"`
	// MaxDurationSecs is the wall-clock budget for one scan invocation.
	// Zero means unbounded.
	MaxDurationSecs int `json:"max_duration_secs,omitempty" yaml:"max_duration_secs,omitempty" validate:"min=0"`
}

// NewDefaultScannerConfig creates default scanner configuration
func NewDefaultScannerConfig() ScannerConfig {
	return ScannerConfig{
		Workers:   DefaultWorkers,
		QueueSize: DefaultQueueSize,
	}
}
