package gitrepo

import (
	"context"
	"strings"

	"depthcharge/internal/common/errorwrapper"
	"depthcharge/internal/config"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/rs/zerolog"
)

// Acquire opens a ContentStore from the repository configuration: a local
// filesystem path, a remote clone URL, or a platform-relative "owner/name"
// identifier expanded against the configured platform base URL. Failure here
// is fatal for the scan.
func Acquire(ctx context.Context, cfg config.RepoConfig, logger zerolog.Logger) (*ContentStore, error) {
	switch {
	case cfg.Path != "":
		return Open(cfg.Path, logger)
	case cfg.URL != "":
		return Clone(ctx, normalizeRepoURL(cfg.URL, cfg.Platform), logger)
	default:
		return nil, errorwrapper.WrapError(errorwrapper.ErrInvalidConfiguration, "no repository path or url configured")
	}
}

// Open opens a local repository, searching parent directories for .git the
// way the git CLI does.
func Open(path string, logger zerolog.Logger) (*ContentStore, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errorwrapper.WrapError(errorwrapper.ErrRepositoryUnreadable, path+": "+err.Error())
	}
	logger.Info().Str("path", path).Msg("Opened local repository")
	return NewContentStore(repo, logger), nil
}

// Clone fetches a remote repository into in-memory storage. Only objects are
// needed for history scanning, so no worktree is checked out and nothing
// touches disk.
func Clone(ctx context.Context, url string, logger zerolog.Logger) (*ContentStore, error) {
	logger.Info().Str("url", url).Msg("Cloning repository into memory")
	repo, err := git.CloneContext(ctx, memory.NewStorage(), nil, &git.CloneOptions{
		URL: url,
	})
	if err != nil {
		return nil, errorwrapper.WrapError(errorwrapper.ErrRepositoryUnreadable, url+": "+err.Error())
	}
	return NewContentStore(repo, logger), nil
}

// normalizeRepoURL expands bare "owner/name" identifiers against the platform
// base URL. Full URLs and SSH remotes pass through untouched.
func normalizeRepoURL(url, platform string) string {
	if strings.Contains(url, "://") || strings.HasPrefix(url, "git@") {
		return url
	}
	if platform == "" {
		platform = "https://github.com"
	}
	return strings.TrimSuffix(platform, "/") + "/" + strings.TrimPrefix(url, "/")
}
