package config

// WalkConfig bounds the commit-graph traversal.
type WalkConfig struct {
	// StartRefs lists the references traversal starts from. Empty means
	// every reference in the repository.
	StartRefs []string `json:"start_refs,omitempty" yaml:"start_refs,omitempty"`
	// MaxCommits limits how many unique commits are visited. Zero means
	// unbounded.
	MaxCommits int `json:"max_commits,omitempty" yaml:"max_commits,omitempty" validate:"min=0"`
	// MaxAgeDays skips commits older than this many days. Zero means
	// unbounded.
	MaxAgeDays int `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty" validate:"min=0"`
	// SinceCommit stops the walk from descending past this commit hash.
	SinceCommit string `json:"since_commit,omitempty" yaml:"since_commit,omitempty"`
	// FirstParentOnly diffs merge commits against their first parent only.
	// Disabling it diffs against every parent, which is thorough but
	// multiplies work by parent count.
	FirstParentOnly bool `json:"first_parent_only,omitempty" yaml:"first_parent_only,omitempty"`
}

// NewDefaultWalkConfig creates default traversal configuration
func NewDefaultWalkConfig() WalkConfig {
	return WalkConfig{
		MaxCommits:      DefaultMaxCommits,
		MaxAgeDays:      DefaultMaxAgeDays,
		FirstParentOnly: true,
	}
}
