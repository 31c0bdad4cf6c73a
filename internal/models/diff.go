package models

import "time"

// ChangeKind classifies one line-level change inside a file diff.
type ChangeKind string

const (
	ChangeKindAdded   ChangeKind = "added"
	ChangeKindRemoved ChangeKind = "removed"
)

// LineChange is a single changed line between the two sides of a DiffEdge.
// LineNumber refers to the new version of the file for added lines and to the
// old version for removed lines.
type LineChange struct {
	FilePath   string
	LineNumber int
	Content    string
	Kind       ChangeKind
}

// CommitInfo is the subset of commit metadata the pipeline carries around.
type CommitInfo struct {
	Hash       string
	Author     string
	CommitTime time.Time
	Parents    []string
	Message    string
}

// DiffEdge is one parent/child commit pair whose trees are compared.
// ParentHash is empty for a root commit, which diffs against the empty tree.
type DiffEdge struct {
	ParentHash string
	Commit     CommitInfo
}

// FileDiff is the per-file result of diffing one edge. Added carries the
// line numbers (in the new blob) introduced by this edge; the scanner uses
// them to filter the blob-wide scan verdict down to newly added content.
type FileDiff struct {
	Path     string
	FromPath string
	BlobHash string
	// FromBlobHash is the parent-side blob for modified or renamed files;
	// empty when the file has no parent-side counterpart.
	FromBlobHash string
	// IsArtifact is set when the path matched the cache-artifact convention
	// and the blob must be routed through the decompilation adapter.
	IsArtifact bool
	Added      []LineChange
	Removed    []LineChange
	// WholeBlobNew is set when the file has no counterpart on the parent
	// side (creation, or similarity below the rename threshold), so every
	// candidate in the blob verdict is attributable to this edge.
	WholeBlobNew bool
}
