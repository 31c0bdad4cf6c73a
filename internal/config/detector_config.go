package config

// CharsetRule configures entropy detection for one character set.
type CharsetRule struct {
	Name      string  `json:"name" yaml:"name" validate:"required"`
	Chars     string  `json:"chars" yaml:"chars" validate:"required"`
	Threshold float64 `json:"threshold" yaml:"threshold" validate:"gt=0"`
}

// SignatureRule is one named regular-expression detection rule.
type SignatureRule struct {
	Name    string `json:"name" yaml:"name" validate:"required"`
	Pattern string `json:"pattern" yaml:"pattern" validate:"required"`
}

// EntropyConfig configures the statistical detector.
type EntropyConfig struct {
	Enabled        bool          `json:"enabled" yaml:"enabled"`
	MinTokenLength int           `json:"min_token_length,omitempty" yaml:"min_token_length,omitempty" validate:"min=1"`
	Charsets       []CharsetRule `json:"charsets,omitempty" yaml:"charsets,omitempty" validate:"dive"`
	// Denylist patterns suppress known non-secret high-entropy strings,
	// such as UUID literals or the repository's own object identifiers.
	Denylist []string `json:"denylist,omitempty" yaml:"denylist,omitempty"`
}

// DetectorConfig configures both detection strategies.
type DetectorConfig struct {
	Entropy EntropyConfig `json:"entropy,omitempty" yaml:"entropy,omitempty"`
	// Signatures extends or replaces the built-in rule table depending on
	// UseDefaultSignatures.
	Signatures           []SignatureRule `json:"signatures,omitempty" yaml:"signatures,omitempty" validate:"dive"`
	UseDefaultSignatures bool            `json:"use_default_signatures" yaml:"use_default_signatures"`
}

// NewDefaultDetectorConfig creates default detector configuration
func NewDefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		Entropy: EntropyConfig{
			Enabled:        true,
			MinTokenLength: DefaultMinTokenLength,
			Charsets: []CharsetRule{
				{Name: "base64", Chars: Base64Charset, Threshold: DefaultBase64Threshold},
				{Name: "hex", Chars: HexCharset, Threshold: DefaultHexThreshold},
			},
			Denylist: []string{DefaultUUIDDenyPattern},
		},
		UseDefaultSignatures: true,
	}
}
