package git

import "context"

// LogSource produces the raw `git log --oneline --stat` text for a repository.
// This abstraction allows tests to feed canned log output without a git binary.
type LogSource interface {
	// Extract returns the raw log text for the repository at repoPath.
	Extract(ctx context.Context, repoPath string) (string, error)
}
