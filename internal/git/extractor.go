package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

const defaultGitBinary = "git"

// logArgs selects one summary line per commit followed by per-file stat lines.
var logArgs = []string{"log", "--no-color", "--oneline", "--stat"}

// Extractor runs `git log` in a repository and returns its raw output.
type Extractor struct {
	opts ExtractOptions
}

// NewExtractor creates an extractor. An empty Binary means "git" from PATH.
func NewExtractor(opts ExtractOptions) *Extractor {
	if opts.Binary == "" {
		opts.Binary = defaultGitBinary
	}
	return &Extractor{opts: opts}
}

// Extract returns the log of the history reachable from the current checkout of repoPath,
// exactly as git printed it.
func (e *Extractor) Extract(ctx context.Context, repoPath string) (string, error) {
	bin, err := exec.LookPath(e.opts.Binary)
	if err != nil {
		return "", &ToolUnavailableError{Binary: e.opts.Binary, Err: err}
	}

	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	args := append([]string(nil), logArgs...)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = repoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", &ToolUnavailableError{Binary: e.opts.Binary, Err: err}
		}
		return "", &CommandFailedError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	return stdout.String(), nil
}

// Compile-time interface conformance check.
var _ LogSource = (*Extractor)(nil)
