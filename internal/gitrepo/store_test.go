package gitrepo

import (
	"context"
	"testing"
	"time"

	"depthcharge/internal/common/errorwrapper"
	"depthcharge/internal/config"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepoWithCommit(t *testing.T) (*ContentStore, plumbing.Hash) {
	t.Helper()
	repo, err := git.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, util.WriteFile(wt.Filesystem, "file.txt", []byte("content\n"), 0644))
	_, err = wt.Add("file.txt")
	require.NoError(t, err)

	sig := &object.Signature{
		Name:  "Test Author",
		Email: "author@example.com",
		When:  time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	hash, err := wt.Commit("initial", &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
	return NewContentStore(repo, zerolog.Nop()), hash
}

func TestContentStore_Commit(t *testing.T) {
	store, hash := initRepoWithCommit(t)

	commit, err := store.Commit(hash)
	require.NoError(t, err)
	assert.Equal(t, "initial", commit.Message)

	_, err = store.Commit(plumbing.NewHash("0123456789abcdef0123456789abcdef01234567"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errorwrapper.ErrObjectUnreadable)
}

func TestContentStore_BlobBytes(t *testing.T) {
	store, hash := initRepoWithCommit(t)
	commit, err := store.Commit(hash)
	require.NoError(t, err)
	tree, err := commit.Tree()
	require.NoError(t, err)
	entry, err := tree.FindEntry("file.txt")
	require.NoError(t, err)

	data, err := store.BlobBytes(entry.Hash)
	require.NoError(t, err)
	assert.Equal(t, []byte("content\n"), data)

	_, err = store.BlobBytes(plumbing.NewHash("0123456789abcdef0123456789abcdef01234567"))
	assert.ErrorIs(t, err, errorwrapper.ErrObjectUnreadable)
}

func TestContentStore_ResolveStartRefs(t *testing.T) {
	store, hash := initRepoWithCommit(t)

	hashes, err := store.ResolveStartRefs(nil)
	require.NoError(t, err)
	require.NotEmpty(t, hashes)
	assert.Contains(t, hashes, hash)

	hashes, err = store.ResolveStartRefs([]string{hash.String()})
	require.NoError(t, err)
	assert.Equal(t, []plumbing.Hash{hash}, hashes)

	_, err = store.ResolveStartRefs([]string{"refs/heads/nonexistent"})
	require.Error(t, err)
}

func TestContentStore_EmptyRepositoryHasNoRefs(t *testing.T) {
	repo, err := git.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)
	store := NewContentStore(repo, zerolog.Nop())

	_, err = store.ResolveStartRefs(nil)
	require.Error(t, err)
}

func TestAcquire(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		cfg := config.RepoConfig{Path: t.TempDir()}
		_, err := Acquire(context.Background(), cfg, zerolog.Nop())
		require.Error(t, err)
		assert.ErrorIs(t, err, errorwrapper.ErrRepositoryUnreadable)
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := Acquire(context.Background(), config.RepoConfig{}, zerolog.Nop())
		require.Error(t, err)
		assert.ErrorIs(t, err, errorwrapper.ErrInvalidConfiguration)
	})
}

func TestNormalizeRepoURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		platform string
		want     string
	}{
		{"full https url untouched", "https://gitlab.com/owner/name", "", "https://gitlab.com/owner/name"},
		{"ssh remote untouched", "git@github.com:owner/name.git", "", "git@github.com:owner/name.git"},
		{"shorthand uses default platform", "owner/name", "", "https://github.com/owner/name"},
		{"shorthand with platform", "owner/name", "https://gitlab.example.com/", "https://gitlab.example.com/owner/name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeRepoURL(tt.url, tt.platform))
		})
	}
}
