// Package worktreeinfo resolves read-only repo/branch facts backing the
// Worktree{repo_path, branch} grouping key (spec.md §3), via go-git,
// grounded on the teacher's utils/git/git_repo.go wrapper style.
// Worktree *creation* is an external collaborator per spec.md §1 and is
// not implemented here.
package worktreeinfo

import (
	"errors"
	"fmt"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// RepoInfo describes the repository a path belongs to.
type RepoInfo struct {
	RepoRoot      string
	CurrentBranch string
}

var errEmptyPath = errors.New("path is required")

// DetectRepoInfo opens the git repository containing path (walking up
// through any nested worktree indirection) and returns its root and
// current branch. Returns an error if path is not inside a git repository.
func DetectRepoInfo(path string) (RepoInfo, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return RepoInfo{}, errEmptyPath
	}

	repo, err := git.PlainOpenWithOptions(p, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return RepoInfo{}, fmt.Errorf("not a git repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return RepoInfo{}, fmt.Errorf("resolving HEAD: %w", err)
	}

	root := ""
	if wt, err := repo.Worktree(); err == nil && wt.Filesystem != nil {
		root = wt.Filesystem.Root()
	}

	return RepoInfo{
		RepoRoot:      root,
		CurrentBranch: head.Name().Short(),
	}, nil
}

// ValidateBranchName reports whether name is a syntactically valid git
// branch/reference name, following the same rule set as
// original_source/src/git/worktree.rs's validate_branch_name (used by the
// worktree-search/creation modal, external to this package, to reject bad
// input before shelling out).
func ValidateBranchName(name string) error {
	switch {
	case name == "":
		return errors.New("branch name cannot be empty")
	case strings.HasPrefix(name, "-"):
		return errors.New("cannot start with '-'")
	case strings.HasPrefix(name, "."):
		return errors.New("cannot start with '.'")
	case strings.HasSuffix(name, "."):
		return errors.New("cannot end with '.'")
	case strings.HasSuffix(name, "/"):
		return errors.New("cannot end with '/'")
	case strings.Contains(name, ".."):
		return errors.New("cannot contain '..'")
	case strings.Contains(name, "//"):
		return errors.New("cannot contain '//'")
	case strings.Contains(name, " "):
		return errors.New("cannot contain spaces")
	case strings.ContainsAny(name, "~^:\\"):
		return errors.New("cannot contain ~, ^, :, or \\")
	case strings.Contains(name, "@{"):
		return errors.New("cannot contain '@{'")
	case name == "@":
		return errors.New("cannot be '@'")
	case strings.HasSuffix(name, ".lock"):
		return errors.New("cannot end with '.lock'")
	case containsControl(name):
		return errors.New("cannot contain control characters")
	}
	return nil
}

func containsControl(s string) bool {
	for _, r := range s {
		if r == 0x7f || r < 0x20 {
			return true
		}
	}
	return false
}
