package gitrepo

import (
	"io"

	"depthcharge/internal/common/errorwrapper"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"
)

// ContentStore is a read-only accessor over repository objects addressed by
// content hash. It is safe for unsynchronized concurrent reads: go-git object
// reads do not mutate shared state.
type ContentStore struct {
	repo   *git.Repository
	logger zerolog.Logger
}

// NewContentStore wraps an already opened repository. Used directly by tests
// and by the acquisition helpers in this package.
func NewContentStore(repo *git.Repository, logger zerolog.Logger) *ContentStore {
	return &ContentStore{
		repo:   repo,
		logger: logger.With().Str("module", "ContentStore").Logger(),
	}
}

// Repository exposes the underlying go-git repository for tree-level
// operations that need it.
func (s *ContentStore) Repository() *git.Repository {
	return s.repo
}

// Commit reads one commit object by hash.
func (s *ContentStore) Commit(hash plumbing.Hash) (*object.Commit, error) {
	commit, err := s.repo.CommitObject(hash)
	if err != nil {
		return nil, errorwrapper.WrapError(errorwrapper.ErrObjectUnreadable, "commit "+hash.String()+": "+err.Error())
	}
	return commit, nil
}

// BlobBytes reads the full content of one blob by hash.
func (s *ContentStore) BlobBytes(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, errorwrapper.WrapError(errorwrapper.ErrObjectUnreadable, "blob "+hash.String()+": "+err.Error())
	}
	reader, err := blob.Reader()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to open blob reader")
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

// ResolveStartRefs resolves the configured start references to commit hashes.
// With no refs configured, every hash reference in the repository plus HEAD
// is used, so history of all branches and tags is covered.
func (s *ContentStore) ResolveStartRefs(refs []string) ([]plumbing.Hash, error) {
	if len(refs) > 0 {
		hashes := make([]plumbing.Hash, 0, len(refs))
		for _, ref := range refs {
			hash, err := s.repo.ResolveRevision(plumbing.Revision(ref))
			if err != nil {
				return nil, errorwrapper.WrapError(err, "cannot resolve reference "+ref)
			}
			hashes = append(hashes, *hash)
		}
		return hashes, nil
	}

	seen := make(map[plumbing.Hash]struct{})
	var hashes []plumbing.Hash

	if head, err := s.repo.Head(); err == nil {
		seen[head.Hash()] = struct{}{}
		hashes = append(hashes, head.Hash())
	}

	iter, err := s.repo.References()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "cannot list references")
	}
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		if _, ok := seen[ref.Hash()]; ok {
			return nil
		}
		seen[ref.Hash()] = struct{}{}
		hashes = append(hashes, ref.Hash())
		return nil
	})
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to iterate references")
	}

	if len(hashes) == 0 {
		return nil, errorwrapper.NewError("repository has no resolvable references")
	}
	return hashes, nil
}
