package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// IsRemote reports whether target looks like a clone URL rather than a local path.
func IsRemote(target string) bool {
	for _, prefix := range []string{"http://", "https://", "git@", "ssh://", "git://"} {
		if strings.HasPrefix(target, prefix) {
			return true
		}
	}
	return false
}

// OpenRepository validates that path is inside a git working tree and returns
// the absolute path of the worktree root.
func OpenRepository(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("%w: '%s': %v", ErrNotRepository, path, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree to run `git log` in.
		return "", fmt.Errorf("%w: '%s': %v", ErrNotRepository, path, err)
	}

	return wt.Filesystem.Root(), nil
}

// CloneRepository clones url into dir, which must be empty or absent.
func CloneRepository(ctx context.Context, url, dir string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL: url,
	})
	if err != nil {
		return fmt.Errorf("failed to clone repository %s: %w", url, err)
	}
	return nil
}

// RepoName derives a display name from a path or clone URL.
func RepoName(target string) string {
	name := strings.TrimRight(target, "/")
	if idx := strings.LastIndexAny(name, "/:"); idx != -1 {
		name = name[idx+1:]
	}
	name = strings.TrimSuffix(name, ".git")
	if name == "" || name == "." {
		if abs, err := filepath.Abs(target); err == nil {
			name = filepath.Base(abs)
		}
	}
	return name
}
