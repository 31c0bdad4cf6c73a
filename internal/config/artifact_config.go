package config

// ArtifactConfig controls routing of compiled-bytecode cache artifacts
// through the decompilation adapter.
type ArtifactConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// PathPatterns are glob patterns matched against the base name of a
	// changed file, plus directory markers matched against the full path.
	PathPatterns []string `json:"path_patterns,omitempty" yaml:"path_patterns,omitempty"`
}

// NewDefaultArtifactConfig creates default artifact configuration
func NewDefaultArtifactConfig() ArtifactConfig {
	return ArtifactConfig{
		Enabled:      true,
		PathPatterns: []string{"*.pyc", "__pycache__/"},
	}
}
