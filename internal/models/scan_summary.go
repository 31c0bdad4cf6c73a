package models

import "time"

// TerminationReason distinguishes how a scan ended.
type TerminationReason string

const (
	TerminationCompleted   TerminationReason = "completed"
	TerminationMaxCommits  TerminationReason = "max_commits_reached"
	TerminationMaxFindings TerminationReason = "max_findings_reached"
	TerminationTimeout     TerminationReason = "time_budget_exhausted"
	TerminationCanceled    TerminationReason = "canceled"
)

// Interrupted reports whether the scan stopped before exhausting the history.
func (r TerminationReason) Interrupted() bool {
	return r != TerminationCompleted
}

// ScanSummary describes one finished scan invocation.
type ScanSummary struct {
	ScanID          string            `json:"scan_id"`
	CommitsVisited  int               `json:"commits_visited"`
	EdgesProcessed  int               `json:"edges_processed"`
	BlobsScanned    int               `json:"blobs_scanned"`
	CacheHits       int               `json:"cache_hits"`
	FindingCount    int               `json:"finding_count"`
	WarningCount    int               `json:"warning_count"`
	Termination     TerminationReason `json:"termination"`
	Duration        time.Duration     `json:"duration"`
	StartedAt       time.Time         `json:"started_at"`
	DecompileErrors int               `json:"decompile_errors"`
}
