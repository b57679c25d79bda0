package main

import (
	"log/slog"
	"slices"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/m-mizutani/goerr/v2"
)

// listIcons returns the entry names of dir. Names are compared as-is, no
// content is read.
func listIcons(fs billy.Filesystem, dir string) (map[string]struct{}, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list icons directory", goerr.V("dir", fs.Join(fs.Root(), dir)))
	}

	icons := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		icons[entry.Name()] = struct{}{}
	}

	return icons, nil
}

// diffIcons returns the names in current that are missing from previous,
// sorted.
func diffIcons(current, previous map[string]struct{}) []string {

	added := make([]string, 0)
	for name := range current {
		if _, ok := previous[name]; ok {
			continue
		}
		added = append(added, name)
	}
	slices.Sort(added)

	return added
}

// newIconsSince lists iconsDir at the current worktree state and at ref and
// returns the icons added since ref. The worktree is checked out to ref and
// back, so nothing else may use it meanwhile.
func newIconsSince(repo *git.Repository, iconsDir string, ref string) ([]string, error) {

	wt, err := repo.Worktree()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get worktree")
	}

	current, err := listIcons(wt.Filesystem, iconsDir)
	if err != nil {
		return nil, err
	}
	slog.Debug("Listed current icons", slog.Int("count", len(current)))

	var previous map[string]struct{}
	err = withCheckout(repo, ref, func() error {
		var err error
		previous, err = listIcons(wt.Filesystem, iconsDir)
		return err
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("Listed released icons", slog.String("ref", ref), slog.Int("count", len(previous)))

	return diffIcons(current, previous), nil
}
