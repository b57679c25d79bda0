package main

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/goerr/v2"
)

func openRepository(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open repository", goerr.V("path", path))
	}

	return repo, nil
}

// listTags returns every tag in the repository with the committer time of
// its target commit. Annotated tags are peeled.
func listTags(repo *git.Repository) ([]Tag, error) {

	iter, err := repo.Tags()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tags")
	}
	defer iter.Close()

	var tags []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		commit, err := tagCommit(repo, ref)
		if err != nil {
			return goerr.Wrap(err, "failed to resolve tag commit", goerr.V("tag", ref.Name().Short()))
		}

		tags = append(tags, Tag{
			Name: ref.Name().Short(),
			Hash: commit.Hash,
			When: commit.Committer.When,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tags, nil
}

func tagCommit(repo *git.Repository, ref *plumbing.Reference) (*object.Commit, error) {
	tag, err := repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		return tag.Commit()
	case errors.Is(err, plumbing.ErrObjectNotFound):
		// lightweight tag
		return repo.CommitObject(ref.Hash())
	default:
		return nil, err
	}
}

// lastRelease sorts tags by commit time and returns the second newest one.
// The newest tag is the rolling nightly tag and never a release.
func lastRelease(tags []Tag) (Tag, error) {
	if len(tags) < 2 {
		return Tag{}, goerr.New("at least two tags are required to find the last release",
			goerr.V("tags", len(tags)))
	}

	sorted := slices.Clone(tags)
	slices.SortStableFunc(sorted, func(a, b Tag) int {
		return a.When.Compare(b.When)
	})

	return sorted[len(sorted)-2], nil
}

func resolveLastRelease(repo *git.Repository) (Tag, error) {
	tags, err := listTags(repo)
	if err != nil {
		return Tag{}, err
	}
	slog.Debug("Tags found", slog.Int("count", len(tags)))

	return lastRelease(tags)
}

// withCheckout checks out ref, runs fn and checks the original reference back
// out on every exit path. A branch is restored as a branch, a detached HEAD as
// the same commit.
func withCheckout(repo *git.Repository, ref string, fn func() error) (err error) {

	wt, err := repo.Worktree()
	if err != nil {
		return goerr.Wrap(err, "failed to get worktree")
	}

	original, err := repo.Head()
	if err != nil {
		return goerr.Wrap(err, "failed to read HEAD")
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return goerr.Wrap(err, "failed to resolve reference", goerr.V("ref", ref))
	}

	defer func() {
		if rerr := restoreHead(repo, wt, original); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()

	slog.Debug("Checking out reference", slog.String("ref", ref), slog.String("hash", hash.String()))
	if err := wt.Checkout(&git.CheckoutOptions{Hash: *hash}); err != nil {
		return goerr.Wrap(err, "failed to checkout reference", goerr.V("ref", ref))
	}

	return fn()
}

func restoreHead(repo *git.Repository, wt *git.Worktree, original *plumbing.Reference) error {

	current, err := repo.Head()
	if err != nil {
		return goerr.Wrap(err, "failed to read HEAD")
	}

	if current.Name() == original.Name() && current.Hash() == original.Hash() {
		return nil
	}

	opts := &git.CheckoutOptions{}
	if original.Name().IsBranch() {
		opts.Branch = original.Name()
	} else {
		opts.Hash = original.Hash()
	}

	slog.Debug("Restoring reference", slog.String("ref", original.Name().Short()), slog.String("hash", original.Hash().String()))
	if err := wt.Checkout(opts); err != nil {
		return goerr.Wrap(err, "failed to restore original reference",
			goerr.V("ref", original.Name().Short()), goerr.V("hash", original.Hash().String()))
	}

	return nil
}
