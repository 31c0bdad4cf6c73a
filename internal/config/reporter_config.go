package config

// ReporterConfig controls findings output rendering.
type ReporterConfig struct {
	// Format is either "console" or "json" (JSON lines, one finding per line).
	Format string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,reportformat"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		Format: "console",
	}
}
