// Package walker enumerates the commit graph from a set of starting
// references, producing one diff edge per (parent, commit) pair to be
// scanned. Traversal holds only identifier sets (frontier and visited), never
// object graphs, so arbitrarily large histories stay within memory bounds.
package walker

import (
	"context"
	"time"

	"depthcharge/internal/config"
	"depthcharge/internal/gitrepo"
	"depthcharge/internal/models"

	"github.com/cespare/xxhash/v2"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"
)

// WarnFunc receives non-fatal traversal warnings.
type WarnFunc func(models.Warning)

// CommitWalker walks parent links from the start refs, visiting each unique
// commit exactly once regardless of how many paths reach it.
type CommitWalker struct {
	store  *gitrepo.ContentStore
	cfg    config.WalkConfig
	logger zerolog.Logger
}

// NewCommitWalker creates a walker over the given store.
func NewCommitWalker(store *gitrepo.ContentStore, cfg config.WalkConfig, logger zerolog.Logger) *CommitWalker {
	return &CommitWalker{
		store:  store,
		cfg:    cfg,
		logger: logger.With().Str("module", "CommitWalker").Logger(),
	}
}

// Walk streams diff edges into the edges channel, starting from the given
// resolved commits, until the graph or a traversal bound is exhausted. It
// reports how many commits were visited and whether a bound cut the walk
// short. The channel is not closed here; the caller owns it. Unreadable
// commits are skipped with a warning.
func (w *CommitWalker) Walk(ctx context.Context, start []plumbing.Hash, edges chan<- models.DiffEdge, warn WarnFunc) (int, bool) {
	var cutoff time.Time
	if w.cfg.MaxAgeDays > 0 {
		cutoff = time.Now().AddDate(0, 0, -w.cfg.MaxAgeDays)
	}

	frontier := make([]plumbing.Hash, len(start))
	copy(frontier, start)
	visited := make(map[plumbing.Hash]struct{})
	seenEdges := make(map[uint64]struct{})
	visitedCount := 0

	for len(frontier) > 0 {
		select {
		case <-ctx.Done():
			return visitedCount, true
		default:
		}

		hash := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		if _, ok := visited[hash]; ok {
			continue
		}

		commit, err := w.store.Commit(hash)
		if err != nil {
			visited[hash] = struct{}{}
			warn(models.Warning{
				Kind:    models.WarningCommitUnreadable,
				Subject: hash.String(),
				Detail:  err.Error(),
			})
			continue
		}
		visited[hash] = struct{}{}

		if hash.String() == w.cfg.SinceCommit {
			// Bound reached on this path; do not descend past it.
			continue
		}
		if !cutoff.IsZero() && commit.Committer.When.Before(cutoff) {
			continue
		}

		if w.cfg.MaxCommits > 0 && visitedCount >= w.cfg.MaxCommits {
			w.logger.Info().Int("max_commits", w.cfg.MaxCommits).Msg("Commit budget reached, stopping traversal")
			return visitedCount, true
		}
		visitedCount++

		for _, edge := range w.edgesOf(commit) {
			key := edgeKey(edge.ParentHash, edge.Commit.Hash)
			if _, ok := seenEdges[key]; ok {
				continue
			}
			seenEdges[key] = struct{}{}
			select {
			case edges <- edge:
			case <-ctx.Done():
				return visitedCount, true
			}
		}

		frontier = append(frontier, commit.ParentHashes...)
	}

	return visitedCount, false
}

// edgesOf expands one commit into diff edges per the merge policy. A root
// commit yields a single edge against the empty tree.
func (w *CommitWalker) edgesOf(commit *object.Commit) []models.DiffEdge {
	info := commitInfo(commit)

	if len(commit.ParentHashes) == 0 {
		return []models.DiffEdge{{ParentHash: "", Commit: info}}
	}

	parents := commit.ParentHashes
	if w.cfg.FirstParentOnly {
		parents = parents[:1]
	}

	edges := make([]models.DiffEdge, 0, len(parents))
	for _, parent := range parents {
		edges = append(edges, models.DiffEdge{ParentHash: parent.String(), Commit: info})
	}
	return edges
}

func commitInfo(commit *object.Commit) models.CommitInfo {
	parents := make([]string, 0, len(commit.ParentHashes))
	for _, p := range commit.ParentHashes {
		parents = append(parents, p.String())
	}
	return models.CommitInfo{
		Hash:       commit.Hash.String(),
		Author:     commit.Author.Name + " <" + commit.Author.Email + ">",
		CommitTime: commit.Committer.When,
		Parents:    parents,
		Message:    commit.Message,
	}
}

func edgeKey(parentHash, commitHash string) uint64 {
	digest := xxhash.New()
	_, _ = digest.WriteString(parentHash)
	_, _ = digest.WriteString("|")
	_, _ = digest.WriteString(commitHash)
	return digest.Sum64()
}
