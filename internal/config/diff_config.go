package config

// DiffConfig controls per-edge tree diffing.
type DiffConfig struct {
	// RenameSimilarity is the content-similarity ratio at or above which
	// two files across an edge are considered the same logical file.
	RenameSimilarity float64 `json:"rename_similarity,omitempty" yaml:"rename_similarity,omitempty" validate:"min=0,max=1"`
	// MaxFileSizeMB skips blobs larger than this from line scanning.
	MaxFileSizeMB int `json:"max_file_size_mb,omitempty" yaml:"max_file_size_mb,omitempty" validate:"min=0"`
	// IncludePaths and ExcludePaths are regular expressions matched against
	// changed file paths. When IncludePaths is non-empty it takes
	// precedence: a path matching none of them is skipped even when no
	// exclusion matches it.
	IncludePaths []string `json:"include_paths,omitempty" yaml:"include_paths,omitempty"`
	ExcludePaths []string `json:"exclude_paths,omitempty" yaml:"exclude_paths,omitempty"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		RenameSimilarity: DefaultRenameSimilarity,
		MaxFileSizeMB:    DefaultMaxFileSizeMB,
	}
}
