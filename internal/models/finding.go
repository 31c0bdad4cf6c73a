package models

import (
	"fmt"
	"time"
)

// DetectorKind identifies which detection strategy produced a finding.
type DetectorKind string

const (
	DetectorKindEntropy   DetectorKind = "entropy"
	DetectorKindSignature DetectorKind = "signature"
)

// FindingOrigin records how the scanned text was obtained.
type FindingOrigin string

const (
	// OriginSource means the text came straight from the blob.
	OriginSource FindingOrigin = "source"
	// OriginDecompiled means the text was reconstructed from a
	// compiled-bytecode cache artifact before scanning.
	OriginDecompiled FindingOrigin = "decompiled"
)

// Confidence is a stable tag describing how likely a finding is a real secret.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
)

// Finding is one detected candidate secret, localized to a commit, file and line.
// Findings are immutable value records.
type Finding struct {
	CommitHash string        `json:"commit_hash"`
	Author     string        `json:"author"`
	CommitTime time.Time     `json:"commit_time"`
	FilePath   string        `json:"file_path"`
	LineNumber int           `json:"line_number"`
	RuleName   string        `json:"rule_name"`
	Secret     string        `json:"secret"`
	Confidence Confidence    `json:"confidence"`
	Origin     FindingOrigin `json:"origin"`
	// Detectors lists every detector kind that contributed to this finding
	// after deduplication.
	Detectors []DetectorKind `json:"detectors"`
}

// Key returns the uniqueness key used to collapse duplicate findings.
func (f *Finding) Key() string {
	return fmt.Sprintf("%s:%s:%d:%s", f.CommitHash, f.FilePath, f.LineNumber, f.RuleName)
}

// Candidate is a detector hit on one line of blob content, before it is
// attributed to a commit. Candidates live inside cached ScanVerdicts, so they
// must not carry any commit-specific context.
type Candidate struct {
	LineNumber int
	LineText   string
	RuleName   string
	Kind       DetectorKind
	Secret     string
	Confidence Confidence
	Entropy    float64
}

// ScanVerdict is the memoized result of running all detectors over one blob's
// content. For a fixed detector configuration it depends only on the blob
// content, never on which commit referenced it.
type ScanVerdict struct {
	BlobHash   string
	Origin     FindingOrigin
	Candidates []Candidate
	// Text holds the reconstructed source for decompiled verdicts so the
	// two sides of an artifact change can be diffed as ordinary text.
	Text string
	// DecompileFailed marks a cache artifact whose reconstruction failed.
	// The blob produced no candidates and will not be retried.
	DecompileFailed bool
	FailureReason   string
}
