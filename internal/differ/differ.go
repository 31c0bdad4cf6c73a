// Package differ extracts per-file line-level changes for one commit edge.
// Rename detection runs at the configured similarity threshold so a moved
// file does not show up as whole-file added noise; binary blobs are skipped
// unless their path marks them as decompilable cache artifacts.
package differ

import (
	"context"
	"regexp"

	"depthcharge/internal/artifact"
	"depthcharge/internal/common/errorwrapper"
	"depthcharge/internal/config"
	"depthcharge/internal/gitrepo"
	"depthcharge/internal/models"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"
)

// DiffExtractor computes FileDiffs for DiffEdges. It is stateless apart from
// its configuration and safe for concurrent use by multiple workers.
type DiffExtractor struct {
	store        *gitrepo.ContentStore
	matcher      *artifact.PathMatcher
	includePaths []*regexp.Regexp
	excludePaths []*regexp.Regexp
	renameScore  uint16
	maxFileBytes int64
	logger       zerolog.Logger
}

// NewDiffExtractor builds an extractor. Uncompilable path filter patterns are
// fatal configuration errors.
func NewDiffExtractor(store *gitrepo.ContentStore, cfg config.DiffConfig, matcher *artifact.PathMatcher, logger zerolog.Logger) (*DiffExtractor, error) {
	d := &DiffExtractor{
		store:        store,
		matcher:      matcher,
		renameScore:  uint16(cfg.RenameSimilarity * 100),
		maxFileBytes: int64(cfg.MaxFileSizeMB) << 20,
		logger:       logger.With().Str("module", "DiffExtractor").Logger(),
	}

	var err error
	if d.includePaths, err = compilePathFilters(cfg.IncludePaths); err != nil {
		return nil, err
	}
	if d.excludePaths, err = compilePathFilters(cfg.ExcludePaths); err != nil {
		return nil, err
	}
	return d, nil
}

func compilePathFilters(patterns []string) ([]*regexp.Regexp, error) {
	filters := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errorwrapper.NewRuleError("path_filter", pattern, err)
		}
		filters = append(filters, re)
	}
	return filters, nil
}

// pathIncluded applies include/exclude filters. A non-empty include list has
// precedence: paths matching none of its patterns are excluded even when no
// exclusion matches them.
func (d *DiffExtractor) pathIncluded(path string) bool {
	if len(d.includePaths) > 0 {
		matched := false
		for _, re := range d.includePaths {
			if re.MatchString(path) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, re := range d.excludePaths {
		if re.MatchString(path) {
			return false
		}
	}
	return true
}

// Extract computes the per-file changes for one edge. Unreadable objects are
// returned as warnings, never as errors: the scan continues without the edge.
func (d *DiffExtractor) Extract(ctx context.Context, edge models.DiffEdge) ([]models.FileDiff, []models.Warning) {
	childTree, warning := d.treeOf(edge.Commit.Hash)
	if warning != nil {
		return nil, []models.Warning{*warning}
	}

	var parentTree *object.Tree
	if edge.ParentHash != "" {
		parentTree, warning = d.treeOf(edge.ParentHash)
		if warning != nil {
			return nil, []models.Warning{*warning}
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, childTree, &object.DiffTreeOptions{
		DetectRenames: true,
		RenameScore:   uint(d.renameScore),
	})
	if err != nil {
		if ctx.Err() != nil {
			// The scan is shutting down; an aborted diff is not a data problem.
			return nil, nil
		}
		return nil, []models.Warning{{
			Kind:    models.WarningCommitUnreadable,
			Subject: edge.Commit.Hash,
			Detail:  "tree diff failed: " + err.Error(),
		}}
	}

	var diffs []models.FileDiff
	var warnings []models.Warning
	for _, change := range changes {
		diff, warns := d.fileDiff(ctx, change)
		warnings = append(warnings, warns...)
		if diff != nil {
			diffs = append(diffs, *diff)
		}
	}
	return diffs, warnings
}

func (d *DiffExtractor) treeOf(commitHash string) (*object.Tree, *models.Warning) {
	commit, err := d.store.Commit(plumbing.NewHash(commitHash))
	if err != nil {
		return nil, &models.Warning{Kind: models.WarningCommitUnreadable, Subject: commitHash, Detail: err.Error()}
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, &models.Warning{Kind: models.WarningCommitUnreadable, Subject: commitHash, Detail: "tree: " + err.Error()}
	}
	return tree, nil
}
