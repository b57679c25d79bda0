package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/gt"
)

type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	gt.NoError(t, err)

	wt, err := repo.Worktree()
	gt.NoError(t, err)

	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (r *testRepo) writeFile(name, content string) {
	r.t.Helper()

	path := filepath.Join(r.dir, name)
	gt.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	gt.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))
}

func (r *testRepo) readFile(name string) string {
	r.t.Helper()

	data, err := os.ReadFile(filepath.Join(r.dir, name))
	gt.NoError(r.t, err)
	return string(data)
}

func (r *testRepo) exists(name string) bool {
	_, err := os.Stat(filepath.Join(r.dir, name))
	return err == nil
}

func (r *testRepo) commit(msg string, when time.Time) plumbing.Hash {
	r.t.Helper()

	gt.NoError(r.t, r.wt.AddWithOptions(&git.AddOptions{All: true}))
	hash, err := r.wt.Commit(msg, &git.CommitOptions{
		Author: signature(when),
	})
	gt.NoError(r.t, err)

	return hash
}

func (r *testRepo) tag(name string, hash plumbing.Hash) {
	r.t.Helper()

	_, err := r.repo.CreateTag(name, hash, nil)
	gt.NoError(r.t, err)
}

func (r *testRepo) annotatedTag(name string, hash plumbing.Hash, when time.Time) {
	r.t.Helper()

	_, err := r.repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  signature(when),
		Message: "release " + name,
	})
	gt.NoError(r.t, err)
}

func (r *testRepo) head() *plumbing.Reference {
	r.t.Helper()

	head, err := r.repo.Head()
	gt.NoError(r.t, err)
	return head
}

func signature(when time.Time) *object.Signature {
	return &object.Signature{Name: "icons bot", Email: "bot@example.com", When: when}
}

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 12, 0, 0, 0, time.UTC)
}

// iconRepo builds the release history used across tests:
// v2.10.0 ships a.svg, v2.11.0 is unchanged, nightly adds b.svg and c.svg.
func iconRepo(t *testing.T) *testRepo {
	t.Helper()

	r := newTestRepo(t)

	r.writeFile("svgs/a.svg", "<svg>a</svg>")
	r.writeFile("README.md", "icons")
	first := r.commit("add a", day(1))
	r.tag("v2.10.0", first)

	r.writeFile("README.md", "icons, now documented")
	second := r.commit("docs", day(2))
	r.tag("v2.11.0", second)

	r.writeFile("svgs/b.svg", "<svg>b</svg>")
	r.writeFile("svgs/c.svg", "<svg>c</svg>")
	third := r.commit("add b and c", day(3))
	r.tag("nightly", third)

	return r
}
