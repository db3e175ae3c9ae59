// Package gitsrc loads a file's content at a given git revision, so a
// committed config can be compared against the working copy.
package gitsrc

import (
	"fmt"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ShowFile returns the contents of path (relative to the repository that
// contains start, or absolute) at revision rev. rev accepts anything
// git rev-parse does: branch names, tags, short hashes, HEAD~2.
func ShowFile(start, rev, path string) ([]byte, error) {
	repo, err := gogit.PlainOpenWithOptions(start, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("load commit %s: %w", hash, err)
	}

	rel, err := repoRelative(repo, path)
	if err != nil {
		return nil, err
	}
	f, err := commit.File(rel)
	if err != nil {
		return nil, fmt.Errorf("%s not found at %s: %w", rel, rev, err)
	}
	content, err := f.Contents()
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}

// repoRelative normalizes path into the slash-separated form stored in
// the git tree.
func repoRelative(repo *gogit.Repository, path string) (string, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("bare repository: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(wt.Filesystem.Root(), abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		// Not under the worktree: assume it is already repo-relative.
		return filepath.ToSlash(path), nil
	}
	return filepath.ToSlash(rel), nil
}
