package models

// WarningKind classifies a non-fatal scan degradation.
type WarningKind string

const (
	// WarningCommitUnreadable covers commit or tree objects that could not
	// be read during traversal; the commit is skipped.
	WarningCommitUnreadable WarningKind = "commit_unreadable"
	// WarningDecompileFailed covers cache artifacts the adapter could not
	// reconstruct; recorded once per blob hash.
	WarningDecompileFailed WarningKind = "decompile_failed"
	// WarningBlobUnreadable covers blobs whose content could not be loaded.
	WarningBlobUnreadable WarningKind = "blob_unreadable"
	// WarningMalformedText covers lines that were sanitized for a broken
	// text encoding or truncated at the per-line cap before detection.
	WarningMalformedText WarningKind = "malformed_text"
)

// Warning is a recoverable failure attributed to the smallest failing unit
// (a commit identifier or a blob hash). Warnings never abort the scan.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Subject string      `json:"subject"`
	Detail  string      `json:"detail,omitempty"`
}
