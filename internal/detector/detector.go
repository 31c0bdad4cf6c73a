// Package detector implements the two line-level detection strategies:
// statistical (Shannon entropy over charset tokens) and signature-based
// (named regular-expression rules). Both implement the same Detector
// capability so the pipeline stays agnostic of detector kinds.
package detector

import (
	"depthcharge/internal/config"
	"depthcharge/internal/models"
)

// Detector finds candidate secrets in a single line of text. Detection is a
// pure function of the line and the detector configuration: identical lines
// always yield identical candidates, independent of surrounding context.
type Detector interface {
	Kind() models.DetectorKind
	Detect(line string) []models.Candidate
}

// Build compiles the configured detectors. A malformed rule or denylist
// pattern is a fatal error, reported here before any scanning starts.
func Build(cfg config.DetectorConfig) ([]Detector, error) {
	var detectors []Detector

	if cfg.Entropy.Enabled {
		entropy, err := NewEntropyDetector(cfg.Entropy)
		if err != nil {
			return nil, err
		}
		detectors = append(detectors, entropy)
	}

	rules := make([]config.SignatureRule, 0, len(cfg.Signatures)+len(DefaultSignatureRules))
	if cfg.UseDefaultSignatures {
		rules = append(rules, DefaultSignatureRules...)
	}
	rules = append(rules, cfg.Signatures...)
	if len(rules) > 0 {
		signature, err := NewSignatureDetector(rules)
		if err != nil {
			return nil, err
		}
		detectors = append(detectors, signature)
	}

	return detectors, nil
}
